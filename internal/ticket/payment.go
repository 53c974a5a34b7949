package ticket

import (
	"fmt"
	"strings"
)

// PaymentKind is the closed classification of the free-text payment method a
// customer types into the ticket modal.
type PaymentKind int

const (
	PaymentOther PaymentKind = iota
	PaymentCashApp
	PaymentPayPal
	PaymentLitecoin
)

func (k PaymentKind) String() string {
	switch k {
	case PaymentCashApp:
		return "cashapp"
	case PaymentPayPal:
		return "paypal"
	case PaymentLitecoin:
		return "litecoin"
	}
	return "other"
}

// ClassifyPayment keyword-matches the customer's payment text.
func ClassifyPayment(method string) PaymentKind {
	m := strings.ToLower(method)
	switch {
	case strings.Contains(m, "cashapp"), strings.Contains(m, "ca"):
		return PaymentCashApp
	case strings.Contains(m, "paypal"), strings.Contains(m, "pp"):
		return PaymentPayPal
	case strings.Contains(m, "litecoin"), strings.Contains(m, "ltc"):
		return PaymentLitecoin
	}
	return PaymentOther
}

// PaymentInstructions is the message posted into a fresh ticket telling the
// customer where to send payment.
type PaymentInstructions struct {
	CashAppURL  string
	PayPalURL   string
	LitecoinTag string
}

func (p PaymentInstructions) For(method string) string {
	switch ClassifyPayment(method) {
	case PaymentCashApp:
		return fmt.Sprintf("**cashapp**\n%s\n-# send payment + screenshot", p.CashAppURL)
	case PaymentPayPal:
		return fmt.Sprintf("**paypal**\n%s\n-# send payment + screenshot", p.PayPalURL)
	case PaymentLitecoin:
		return fmt.Sprintf("**litecoin**\n%s\n-# send payment + tx hash", p.LitecoinTag)
	}
	return fmt.Sprintf("**payment info**\n%s\n-# contact staff for payment details", method)
}
