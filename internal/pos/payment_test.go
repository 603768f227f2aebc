package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
)

func TestValidatePayment_CashWithChange(t *testing.T) {
	change, err := ValidatePayment(Payment{Method: models.PaymentCash, Cash: dec("150")}, dec("100"))

	require.NoError(t, err)
	assert.True(t, change.Equal(dec("50")))
}

func TestValidatePayment_CashExact(t *testing.T) {
	change, err := ValidatePayment(Payment{Method: models.PaymentCash, Cash: dec("100")}, dec("100"))

	require.NoError(t, err)
	assert.True(t, change.IsZero())
}

func TestValidatePayment_CashShort(t *testing.T) {
	_, err := ValidatePayment(Payment{Method: models.PaymentCash, Cash: dec("99.99")}, dec("100"))

	assert.ErrorIs(t, err, ErrPaymentMismatch)
}

func TestValidatePayment_CardMustBeExact(t *testing.T) {
	change, err := ValidatePayment(Payment{Method: models.PaymentCard, Card: dec("100")}, dec("100"))
	require.NoError(t, err)
	assert.True(t, change.IsZero())

	_, err = ValidatePayment(Payment{Method: models.PaymentCard, Card: dec("100.01")}, dec("100"))
	assert.ErrorIs(t, err, ErrPaymentMismatch)
}

func TestValidatePayment_Mixed(t *testing.T) {
	change, err := ValidatePayment(Payment{Method: models.PaymentMixed, Cash: dec("40"), Card: dec("60")}, dec("100"))
	require.NoError(t, err)
	assert.True(t, change.IsZero())

	// shortfall
	_, err = ValidatePayment(Payment{Method: models.PaymentMixed, Cash: dec("40"), Card: dec("50")}, dec("100"))
	assert.ErrorIs(t, err, ErrPaymentMismatch)

	// excess is rejected too
	_, err = ValidatePayment(Payment{Method: models.PaymentMixed, Cash: dec("50"), Card: dec("60")}, dec("100"))
	assert.ErrorIs(t, err, ErrPaymentMismatch)
}

func TestValidatePayment_NegativeAmounts(t *testing.T) {
	_, err := ValidatePayment(Payment{Method: models.PaymentMixed, Cash: dec("-10"), Card: dec("110")}, dec("100"))
	assert.ErrorIs(t, err, ErrPaymentMismatch)
}

func TestValidatePayment_UnknownMethod(t *testing.T) {
	_, err := ValidatePayment(Payment{Method: "cheque", Cash: dec("100")}, dec("100"))
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestDefaultPayment(t *testing.T) {
	total := dec("123.45")

	p := DefaultPayment(models.PaymentCash, total)
	assert.True(t, p.Cash.Equal(total))
	assert.True(t, p.Card.IsZero())

	p = DefaultPayment(models.PaymentCard, total)
	assert.True(t, p.Card.Equal(total))
	assert.True(t, p.Cash.IsZero())

	// mixed starts empty for manual entry
	p = DefaultPayment(models.PaymentMixed, total)
	assert.True(t, p.Cash.IsZero())
	assert.True(t, p.Card.IsZero())
}

func TestCashSettled(t *testing.T) {
	total := dec("100")

	// cash: drawer keeps the total, not the tender
	settled := CashSettled(Payment{Method: models.PaymentCash, Cash: dec("150")}, total)
	assert.True(t, settled.Equal(total))

	settled = CashSettled(Payment{Method: models.PaymentMixed, Cash: dec("40"), Card: dec("60")}, total)
	assert.True(t, settled.Equal(dec("40")))

	settled = CashSettled(Payment{Method: models.PaymentCard, Card: total}, total)
	assert.True(t, settled.IsZero())
}
