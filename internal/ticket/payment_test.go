package ticket

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPayment(t *testing.T) {
	tests := []struct {
		in   string
		want PaymentKind
	}{
		{"CashApp", PaymentCashApp},
		{"ca", PaymentCashApp},
		{"paypal f&f", PaymentPayPal},
		{"pp", PaymentPayPal},
		{"Litecoin", PaymentLitecoin},
		{"ltc", PaymentLitecoin},
		{"venmo", PaymentOther},
		{"", PaymentOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyPayment(tt.in), "input %q", tt.in)
	}
}

func TestPaymentInstructionsFor(t *testing.T) {
	p := PaymentInstructions{
		CashAppURL:  "https://cash.app/$shop",
		PayPalURL:   "https://paypal.me/shop",
		LitecoinTag: "Lshop123",
	}

	assert.Contains(t, p.For("cashapp"), p.CashAppURL)
	assert.Contains(t, p.For("paypal"), p.PayPalURL)
	assert.Contains(t, p.For("ltc"), p.LitecoinTag)

	other := p.For("venmo")
	assert.True(t, strings.Contains(other, "venmo"), "unknown methods echo the customer's text")
	assert.Contains(t, other, "contact staff")
}
