// Package currency formats amounts the way the detail panel shows them:
// whole units, locale digit grouping, currency symbol in front.
package currency

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

type locale struct {
	symbol string
	// first group size from the right, then the repeating size
	primary, secondary int
}

var locales = map[string]locale{
	"USD": {symbol: "$", primary: 3, secondary: 3},
	"INR": {symbol: "₹", primary: 3, secondary: 2},
	"EUR": {symbol: "€", primary: 3, secondary: 3},
	"GBP": {symbol: "£", primary: 3, secondary: 3},
}

// Codes lists the supported currency codes in display order.
var Codes = []string{"USD", "INR", "EUR", "GBP"}

// Supported reports whether code has a dedicated locale.
func Supported(code string) bool {
	_, ok := locales[code]
	return ok
}

// Format rounds amount half away from zero to whole units and groups the
// digits for the currency's locale. Unknown codes use US grouping with the
// code as prefix.
func Format(amount float64, code string) string {
	loc, ok := locales[code]
	prefix := loc.symbol
	if !ok {
		loc = locales["USD"]
		prefix = code + " "
	}

	switch {
	case math.IsNaN(amount):
		return prefix + "NaN"
	case math.IsInf(amount, 1):
		return prefix + "∞"
	case math.IsInf(amount, -1):
		return "-" + prefix + "∞"
	}

	d := decimal.NewFromFloat(amount).Round(0)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + prefix + group(d.Abs().String(), loc.primary, loc.secondary)
}

// FormatPercentage renders a signed percentage with two decimals,
// e.g. "+1.23%" or "-0.40%".
func FormatPercentage(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

func group(digits string, primary, secondary int) string {
	if len(digits) <= primary {
		return digits
	}
	head := digits[:len(digits)-primary]
	tail := digits[len(digits)-primary:]

	var parts []string
	for len(head) > secondary {
		parts = append(parts, head[len(head)-secondary:])
		head = head[:len(head)-secondary]
	}
	parts = append(parts, head)

	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
		b.WriteByte(',')
	}
	b.WriteString(tail)
	return b.String()
}
