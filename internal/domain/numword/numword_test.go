package numword_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nexvolt/evretail-api/internal/domain/numword"
)

// Indian grouping, not Western: 1,234,567 reads as 12,34,567 —
// "twelve lakh thirty four thousand ...", never "one million ...".
func TestAmount_IndianGrouping(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "Zero"},
		{1, "one"},
		{13, "thirteen"},
		{19, "nineteen"},
		{20, "twenty"},
		{45, "forty five"},
		{90, "ninety"},
		{100, "one hundred"},
		{105, "one hundred five"},
		{999, "nine hundred ninety nine"},
		{1000, "one thousand"},
		{7021, "seven thousand twenty one"},
		{99999, "ninety nine thousand nine hundred ninety nine"},
		{100000, "one lakh"},
		{100001, "one lakh one"},
		{250500, "two lakh fifty thousand five hundred"},
		{1234567, "twelve lakh thirty four thousand five hundred sixty seven"},
		{10000000, "one crore"},
		{12345678, "one crore twenty three lakh forty five thousand six hundred seventy eight"},
		{990000000, "ninety nine crore"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, numword.Amount(tc.n), "Amount(%d)", tc.n)
	}
}

func TestAmount_Negative(t *testing.T) {
	assert.Equal(t, "minus forty two", numword.Amount(-42))
}

// Amount is a pure function: repeated calls must agree.
func TestAmount_Deterministic(t *testing.T) {
	assert.Equal(t, numword.Amount(1234567), numword.Amount(1234567))
}

func TestRupees(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "Rupees Zero only"},
		{"55000", "Rupees fifty five thousand only"},
		{"100000.00", "Rupees one lakh only"},
		{"1234567.50", "Rupees twelve lakh thirty four thousand five hundred sixty seven and fifty paise only"},
		{"99.99", "Rupees ninety nine and ninety nine paise only"},
		// Sub-paise precision is truncated, not rounded.
		{"10.999", "Rupees ten and ninety nine paise only"},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("bad test amount %q: %v", tc.amount, err)
		}
		assert.Equal(t, tc.want, numword.Rupees(d), "Rupees(%s)", tc.amount)
	}
}
