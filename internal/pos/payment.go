package pos

import (
	"github.com/shopspring/decimal"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
)

// Payment is a chosen payment split for a checkout.
type Payment struct {
	Method string          `json:"method"`
	Cash   decimal.Decimal `json:"cash"`
	Card   decimal.Decimal `json:"card"`
}

// DefaultPayment pre-fills the amount fields for a freshly selected method:
// cash and card default to the exact total, mixed starts empty for manual
// entry.
func DefaultPayment(method string, total decimal.Decimal) Payment {
	p := Payment{Method: method}
	switch method {
	case models.PaymentCash:
		p.Cash = total
	case models.PaymentCard:
		p.Card = total
	}
	return p
}

// ValidatePayment checks that the entered amounts reconcile with the total
// and returns the change due. Rules:
//
//	cash:  tendered cash >= total, change = cash - total
//	card:  card == total exactly, no change
//	mixed: cash + card == total exactly, no change
func ValidatePayment(p Payment, total decimal.Decimal) (change decimal.Decimal, err error) {
	if p.Cash.IsNegative() || p.Card.IsNegative() {
		return decimal.Zero, ErrPaymentMismatch
	}

	switch p.Method {
	case models.PaymentCash:
		if p.Cash.LessThan(total) {
			return decimal.Zero, ErrPaymentMismatch
		}
		return p.Cash.Sub(total), nil
	case models.PaymentCard:
		if !p.Card.Equal(total) {
			return decimal.Zero, ErrPaymentMismatch
		}
		return decimal.Zero, nil
	case models.PaymentMixed:
		if !p.Cash.Add(p.Card).Equal(total) {
			return decimal.Zero, ErrPaymentMismatch
		}
		return decimal.Zero, nil
	default:
		return decimal.Zero, ErrUnknownMethod
	}
}

// CashSettled is the portion of a validated payment that lands in the cash
// drawer: the full total for cash sales (tender minus change), the cash part
// of a mixed sale, nothing for card sales.
func CashSettled(p Payment, total decimal.Decimal) decimal.Decimal {
	switch p.Method {
	case models.PaymentCash:
		return total
	case models.PaymentMixed:
		return p.Cash
	default:
		return decimal.Zero
	}
}
