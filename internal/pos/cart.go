package pos

import (
	"github.com/shopspring/decimal"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
)

// CartLine is one working line of a sale in progress. Exactly one of
// Quantity/Weight drives the total: normal and bulk lines carry an integer
// quantity, scale lines carry a weight in kilograms.
type CartLine struct {
	Product  models.Product   `json:"product"`
	Quantity int              `json:"quantity"`
	Weight   *decimal.Decimal `json:"weight,omitempty"`
	// UnitPrice is the resolved price: offer price when active, bulk price per
	// unit for bulk lines, price per kg for weighted lines.
	UnitPrice decimal.Decimal `json:"unit_price"`
	// Discount is stored per unit on quantity lines and as the full line
	// amount on weighted lines (already multiplied by the weight).
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
	// bulk lines never merge with unit lines for the same product
	bulk bool
}

func (l *CartLine) Weighted() bool {
	return l.Weight != nil
}

// Cart is the in-memory ordered working set of a single POS session.
// It is not safe for concurrent use; the owning session serializes access.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) Lines() []CartLine {
	return c.lines
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.lines = nil
}

// AddNormal adds one unit of the product, merging into an existing non-bulk,
// non-weight line if present.
func (c *Cart) AddNormal(p *models.Product) {
	price := p.ResolvedUnitPrice()
	var discount decimal.Decimal
	if p.OnOffer() {
		discount = p.UnitPrice.Sub(*p.OfferPrice)
	}

	for i := range c.lines {
		line := &c.lines[i]
		if line.Product.ID == p.ID && !line.Weighted() && !line.bulk {
			line.Quantity++
			line.UnitPrice = price
			line.Discount = discount
			line.Total = price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			return
		}
	}

	c.lines = append(c.lines, CartLine{
		Product:   *p,
		Quantity:  1,
		UnitPrice: price,
		Discount:  discount,
		Total:     price,
	})
}

// AddBulk appends a bulk-pack line. Bulk lines never merge: each scan is a
// distinct pack, and the total is the configured pack price, not
// quantity x unit price.
func (c *Cart) AddBulk(p *models.Product) error {
	if !p.BulkEnabled() {
		return ErrBulkIncomplete
	}
	if !p.StockQuantity.IsPositive() {
		return ErrOutOfStock
	}

	qty := decimal.NewFromInt(int64(p.BulkQuantity))
	c.lines = append(c.lines, CartLine{
		Product:   *p,
		Quantity:  p.BulkQuantity,
		UnitPrice: p.BulkPrice.Div(qty),
		Total:     p.BulkPrice,
		bulk:      true,
	})
	return nil
}

// AddWeighted appends a weighted line. Weighted lines never merge since
// distinct scans carry distinct weights.
func (c *Cart) AddWeighted(p *models.Product, weightKg decimal.Decimal) error {
	if !p.StockQuantity.IsPositive() {
		return ErrOutOfStock
	}

	price := p.ResolvedUnitPrice()
	var discount decimal.Decimal
	if p.OnOffer() {
		discount = p.UnitPrice.Sub(*p.OfferPrice).Mul(weightKg)
	}

	w := weightKg
	c.lines = append(c.lines, CartLine{
		Product:   *p,
		Weight:    &w,
		UnitPrice: price,
		Discount:  discount,
		Total:     price.Mul(weightKg),
	})
	return nil
}

// ChangeQuantity adjusts a quantity line by delta, clamping at 1 and
// refusing to exceed the product's recorded stock. Weighted lines reject
// quantity edits entirely.
func (c *Cart) ChangeQuantity(index, delta int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineNotFound
	}
	line := &c.lines[index]
	if line.Weighted() {
		return ErrWeightLineQuantity
	}

	newQty := line.Quantity + delta
	if newQty < 1 {
		newQty = 1
	}
	if delta > 0 && decimal.NewFromInt(int64(newQty)).GreaterThan(line.Product.StockQuantity) {
		return ErrStockLimit
	}

	line.Quantity = newQty
	line.Total = line.UnitPrice.Mul(decimal.NewFromInt(int64(newQty)))
	return nil
}

func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineNotFound
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// Subtotal is the sum of line totals. Offer pricing is already reflected in
// each line's unit price, so this is also the amount due.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for i := range c.lines {
		sum = sum.Add(c.lines[i].Total)
	}
	return sum
}

// Discount is informational: it reports how much offer pricing saved, it is
// never subtracted from the total again.
func (c *Cart) Discount() decimal.Decimal {
	sum := decimal.Zero
	for i := range c.lines {
		line := &c.lines[i]
		if line.Weighted() {
			sum = sum.Add(line.Discount)
		} else {
			sum = sum.Add(line.Discount.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
	}
	return sum
}

func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal()
}
