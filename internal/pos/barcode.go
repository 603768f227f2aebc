package pos

import (
	"context"
	"errors"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
)

const (
	// minScanLength guards against partial keystrokes being treated as a
	// completed barcode.
	minScanLength = 5

	scaleBarcodeLength = 13
	scalePrefix        = '2'
)

var gramsPerKg = decimal.NewFromInt(1000)

// ProductLookup resolves scan tokens against the catalog.
type ProductLookup interface {
	// ByBarcode finds an active product by its exact unit barcode.
	ByBarcode(ctx context.Context, code string) (*models.Product, error)
	// ByBulkBarcode finds an active product by its bulk-pack barcode.
	ByBulkBarcode(ctx context.Context, code string) (*models.Product, error)
	// ByScaleCode finds an active scale-kind product by its 6-digit short code.
	ByScaleCode(ctx context.Context, code string) (*models.Product, error)
	// Search matches case-insensitively against product names, or exactly
	// against barcodes, for manual disambiguation.
	Search(ctx context.Context, query string) ([]models.Product, error)
}

// Scan actions, in the order the interpreter can produce them.
const (
	ActionAddUnit     = "add_unit"
	ActionAddBulk     = "add_bulk"
	ActionAddWeighted = "add_weighted"
	// ActionNeedWeight means the token resolved to exactly one scale-kind
	// product; the cashier must enter the weight manually.
	ActionNeedWeight   = "need_weight"
	ActionSearchResult = "search_result"
)

type ScanResult struct {
	Action   string
	Product  *models.Product
	WeightKg decimal.Decimal
	Matches  []models.Product
}

// Interpreter classifies a scanned or typed token into zero-or-one cart actions.
type Interpreter struct {
	lookup ProductLookup
}

func NewInterpreter(lookup ProductLookup) *Interpreter {
	return &Interpreter{lookup: lookup}
}

// Interpret runs the token through the match rules in order; the first rule
// that resolves wins. Tokens shorter than minScanLength are rejected before
// any lookup.
func (i *Interpreter) Interpret(ctx context.Context, token string) (*ScanResult, error) {
	if len(token) < minScanLength {
		return nil, ErrTokenTooShort
	}

	// 1. Exact unit barcode, normal kind, not bulk-enabled.
	product, err := i.lookup.ByBarcode(ctx, token)
	if err != nil && !errors.Is(err, ErrProductNotFound) {
		return nil, err
	}
	if product != nil && product.BarcodeKind == models.BarcodeKindNormal && !product.BulkEnabled() {
		return &ScanResult{Action: ActionAddUnit, Product: product}, nil
	}

	// 2. Bulk-pack barcode.
	product, err = i.lookup.ByBulkBarcode(ctx, token)
	if err != nil && !errors.Is(err, ErrProductNotFound) {
		return nil, err
	}
	if product != nil {
		return &ScanResult{Action: ActionAddBulk, Product: product}, nil
	}

	// 3. Embedded-weight barcode: '2' + code(6) + grams(5) + check(1).
	if code, grams, ok := decodeScaleBarcode(token); ok {
		product, err = i.lookup.ByScaleCode(ctx, code)
		if err != nil && !errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		if product != nil {
			kg := decimal.NewFromInt(grams).Div(gramsPerKg)
			return &ScanResult{Action: ActionAddWeighted, Product: product, WeightKg: kg}, nil
		}
	}

	// 4. Fuzzy fallback for manual disambiguation.
	matches, err := i.lookup.Search(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrProductNotFound
	}
	if len(matches) == 1 && matches[0].BarcodeKind == models.BarcodeKindScale {
		// A single scale-kind hit needs a manual weight, never a guess.
		return &ScanResult{Action: ActionNeedWeight, Product: &matches[0]}, nil
	}
	return &ScanResult{Action: ActionSearchResult, Matches: matches}, nil
}

// decodeScaleBarcode extracts the 6-digit product code and the weight in
// grams from a 13-digit scale barcode. The trailing check digit is not
// validated; store scales emit it but the lookup code is authoritative.
func decodeScaleBarcode(token string) (code string, grams int64, ok bool) {
	if len(token) != scaleBarcodeLength || token[0] != scalePrefix {
		return "", 0, false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return "", 0, false
		}
	}
	code = token[1:7]
	grams, err := strconv.ParseInt(token[7:12], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return code, grams, true
}
