package e2e

import (
	"fmt"
	"strconv"
	"strings"
)

// freeShippingThreshold is the cart subtotal above which the storefront
// waives the flat delivery fee; below it the displayed grand total carries
// the fee.
const (
	freeShippingThreshold = 1000
	deliveryFee           = 50
)

// parseBaht extracts the numeric amount from a displayed price like
// "฿1,290.50".
func parseBaht(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0, fmt.Errorf("no amount in %q", s)
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("bad amount in %q: %w", s, err)
	}
	return amount, nil
}

// formatBaht renders an amount the way the storefront does: baht sign,
// thousands separators, no trailing zeros.
func formatBaht(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', -1, 64)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return "฿" + b.String() + frac
}

// displayedGrandTotal maps a cart subtotal to the grand total the cart page
// shows, applying the delivery fee under the free-shipping threshold.
func displayedGrandTotal(subtotal float64) float64 {
	if subtotal >= freeShippingThreshold {
		return subtotal
	}
	return subtotal + deliveryFee
}
