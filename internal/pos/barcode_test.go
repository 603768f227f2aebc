package pos

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
)

// mockLookup implements ProductLookup for testing
type mockLookup struct {
	byBarcode map[string]*models.Product
	byBulk    map[string]*models.Product
	byScale   map[string]*models.Product
	catalog   []models.Product
}

func (m *mockLookup) ByBarcode(_ context.Context, code string) (*models.Product, error) {
	if p, ok := m.byBarcode[code]; ok {
		return p, nil
	}
	return nil, ErrProductNotFound
}

func (m *mockLookup) ByBulkBarcode(_ context.Context, code string) (*models.Product, error) {
	if p, ok := m.byBulk[code]; ok {
		return p, nil
	}
	return nil, ErrProductNotFound
}

func (m *mockLookup) ByScaleCode(_ context.Context, code string) (*models.Product, error) {
	if p, ok := m.byScale[code]; ok {
		return p, nil
	}
	return nil, ErrProductNotFound
}

func (m *mockLookup) Search(_ context.Context, query string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.catalog {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) || p.Barcode == query {
			out = append(out, p)
		}
	}
	return out, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func normalProduct() *models.Product {
	return &models.Product{
		ID:            1,
		Name:          "Whole Milk 1L",
		Barcode:       "6221001",
		BarcodeKind:   models.BarcodeKindNormal,
		UnitPrice:     dec("25.50"),
		StockQuantity: dec("100"),
	}
}

func bulkProduct() *models.Product {
	return &models.Product{
		ID:            2,
		Name:          "Water Bottle",
		Barcode:       "6221002",
		BarcodeKind:   models.BarcodeKindNormal,
		UnitPrice:     dec("10.00"),
		BulkBarcode:   "6229002",
		BulkQuantity:  12,
		BulkPrice:     dec("110.00"),
		StockQuantity: dec("240"),
	}
}

func scaleProduct() *models.Product {
	return &models.Product{
		ID:            3,
		Name:          "Tomatoes",
		BarcodeKind:   models.BarcodeKindScale,
		ScaleCode:     "123456",
		UnitPrice:     dec("12.00"), // per kg
		StockQuantity: dec("50"),
	}
}

func newTestInterpreter() (*Interpreter, *mockLookup) {
	milk := normalProduct()
	water := bulkProduct()
	tomato := scaleProduct()

	lookup := &mockLookup{
		byBarcode: map[string]*models.Product{
			milk.Barcode:  milk,
			water.Barcode: water,
		},
		byBulk:  map[string]*models.Product{water.BulkBarcode: water},
		byScale: map[string]*models.Product{tomato.ScaleCode: tomato},
		catalog: []models.Product{*milk, *water, *tomato},
	}
	return NewInterpreter(lookup), lookup
}

func TestInterpret_TooShortToken(t *testing.T) {
	interp, _ := newTestInterpreter()

	_, err := interp.Interpret(context.Background(), "6221")

	assert.ErrorIs(t, err, ErrTokenTooShort)
}

func TestInterpret_NormalBarcode(t *testing.T) {
	interp, _ := newTestInterpreter()

	result, err := interp.Interpret(context.Background(), "6221001")

	require.NoError(t, err)
	assert.Equal(t, ActionAddUnit, result.Action)
	assert.Equal(t, uint(1), result.Product.ID)
}

func TestInterpret_BulkBarcode(t *testing.T) {
	interp, _ := newTestInterpreter()

	result, err := interp.Interpret(context.Background(), "6229002")

	require.NoError(t, err)
	assert.Equal(t, ActionAddBulk, result.Action)
	assert.Equal(t, uint(2), result.Product.ID)
}

func TestInterpret_UnitBarcodeOfBulkProductFallsToSearch(t *testing.T) {
	// A bulk-enabled product scanned by its unit barcode is not added
	// directly; it surfaces via search for manual disambiguation.
	interp, _ := newTestInterpreter()

	result, err := interp.Interpret(context.Background(), "6221002")

	require.NoError(t, err)
	assert.Equal(t, ActionSearchResult, result.Action)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, uint(2), result.Matches[0].ID)
}

func TestInterpret_ScaleBarcode(t *testing.T) {
	interp, _ := newTestInterpreter()

	// '2' + 123456 + 01500 grams + check digit
	result, err := interp.Interpret(context.Background(), "2123456015007")

	require.NoError(t, err)
	assert.Equal(t, ActionAddWeighted, result.Action)
	assert.Equal(t, uint(3), result.Product.ID)
	assert.True(t, result.WeightKg.Equal(dec("1.5")), "weight = %s", result.WeightKg)
}

func TestInterpret_ScalePatternUnknownCodeFallsThrough(t *testing.T) {
	interp, _ := newTestInterpreter()

	_, err := interp.Interpret(context.Background(), "2999999015007")

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestInterpret_FuzzySearchByName(t *testing.T) {
	interp, _ := newTestInterpreter()

	result, err := interp.Interpret(context.Background(), "water")

	require.NoError(t, err)
	assert.Equal(t, ActionSearchResult, result.Action)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "Water Bottle", result.Matches[0].Name)
}

func TestInterpret_SingleScaleMatchNeedsWeight(t *testing.T) {
	interp, _ := newTestInterpreter()

	result, err := interp.Interpret(context.Background(), "tomato")

	require.NoError(t, err)
	assert.Equal(t, ActionNeedWeight, result.Action)
	assert.Equal(t, uint(3), result.Product.ID)
}

func TestInterpret_NoMatch(t *testing.T) {
	interp, _ := newTestInterpreter()

	_, err := interp.Interpret(context.Background(), "nothing-here")

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDecodeScaleBarcode(t *testing.T) {
	code, grams, ok := decodeScaleBarcode("2123456015007")
	require.True(t, ok)
	assert.Equal(t, "123456", code)
	assert.Equal(t, int64(1500), grams)

	// wrong prefix
	_, _, ok = decodeScaleBarcode("3123456015007")
	assert.False(t, ok)

	// wrong length
	_, _, ok = decodeScaleBarcode("212345601500")
	assert.False(t, ok)

	// non-digit payload
	_, _, ok = decodeScaleBarcode("2123456O15007")
	assert.False(t, ok)
}
