package pos

import (
	"fmt"
	"strings"

	"github.com/bodo2020/market-maadaoui-sells-sub000/config"
	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
)

const receiptWidth = 32

// RenderReceipt produces the plain-text payload handed to the printer.
func RenderReceipt(sale *models.Sale) string {
	var b strings.Builder

	name := "Receipt"
	if config.AppConfig != nil && config.AppConfig.Defaults.CompanyName != "" {
		name = config.AppConfig.Defaults.CompanyName
	}

	divider := strings.Repeat("-", receiptWidth)

	b.WriteString(center(name))
	b.WriteString(center(sale.SaleDate.Format("2006-01-02 15:04")))
	fmt.Fprintf(&b, "Invoice: %s\n", sale.InvoiceNo)
	if sale.CustomerName != "" {
		fmt.Fprintf(&b, "Customer: %s\n", sale.CustomerName)
	}
	b.WriteString(divider + "\n")

	for _, item := range sale.Items {
		b.WriteString(item.ProductName + "\n")
		if item.Weight != nil {
			fmt.Fprintf(&b, "  %s kg x %s = %s\n",
				item.Weight.StringFixed(3), item.UnitPrice.StringFixed(2), item.Total.StringFixed(2))
		} else {
			fmt.Fprintf(&b, "  %d x %s = %s\n",
				item.Quantity, item.UnitPrice.StringFixed(2), item.Total.StringFixed(2))
		}
	}

	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", sale.Subtotal.StringFixed(2))
	if sale.Discount.IsPositive() {
		fmt.Fprintf(&b, "You saved: %s\n", sale.Discount.StringFixed(2))
	}
	fmt.Fprintf(&b, "TOTAL: %s\n", sale.Total.StringFixed(2))

	switch sale.PaymentMethod {
	case models.PaymentCash:
		fmt.Fprintf(&b, "Cash: %s  Change: %s\n", sale.CashAmount.StringFixed(2), sale.ChangeDue.StringFixed(2))
	case models.PaymentCard:
		fmt.Fprintf(&b, "Card: %s\n", sale.CardAmount.StringFixed(2))
	case models.PaymentMixed:
		fmt.Fprintf(&b, "Cash: %s  Card: %s\n", sale.CashAmount.StringFixed(2), sale.CardAmount.StringFixed(2))
	}

	b.WriteString(center("Thank you!"))
	return b.String()
}

func center(s string) string {
	if len(s) >= receiptWidth {
		return s + "\n"
	}
	pad := (receiptWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s + "\n"
}
