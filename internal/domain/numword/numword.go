// Package numword converts integer amounts to English words using the Indian
// numbering system (hundred, thousand, lakh, crore) for invoice display text.
package numword

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tens = []string{
	"", "ten", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
	"eighty", "ninety",
}

// Magnitude bands of the Indian grouping, largest first.
var bands = []struct {
	value int64
	name  string
}{
	{10000000, "crore"},
	{100000, "lakh"},
	{1000, "thousand"},
	{100, "hundred"},
}

// Amount returns n in words. Zero is spelled "Zero"; all other words are lowercase,
// e.g. Amount(1234567) == "twelve lakh thirty four thousand five hundred sixty seven".
func Amount(n int64) string {
	if n == 0 {
		return "Zero"
	}
	if n < 0 {
		return "minus " + strings.Join(parts(-n), " ")
	}
	return strings.Join(parts(n), " ")
}

// parts recurses by magnitude band and collects the word fragments in order.
func parts(n int64) []string {
	if n < 20 {
		return []string{ones[n]}
	}
	if n < 100 {
		out := []string{tens[n/10]}
		if n%10 != 0 {
			out = append(out, ones[n%10])
		}
		return out
	}
	for _, b := range bands {
		if n >= b.value {
			out := append(parts(n/b.value), b.name)
			if rem := n % b.value; rem != 0 {
				out = append(out, parts(rem)...)
			}
			return out
		}
	}
	return nil // unreachable: every n >= 100 matches a band
}

// Rupees renders a money amount for the invoice totals block, e.g.
// "Rupees one lakh and fifty paise only". Paise are included only when non-zero;
// the amount is truncated to two decimal places first.
func Rupees(amount decimal.Decimal) string {
	amount = amount.Truncate(2)
	whole := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(whole)).Mul(decimal.NewFromInt(100)).IntPart()

	var sb strings.Builder
	sb.WriteString("Rupees ")
	sb.WriteString(Amount(whole))
	if paise != 0 {
		sb.WriteString(" and ")
		sb.WriteString(Amount(paise))
		sb.WriteString(" paise")
	}
	sb.WriteString(" only")
	return sb.String()
}
