// Package pipeline implements the offline catalog build: the two-pass
// metadata/review extraction and the per-product review aggregation.
package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// priceToken matches the first number-looking substring of a price string.
var priceToken = regexp.MustCompile(`[\d.]+`)

// NormalizePrice extracts a validated positive price from the raw price
// field, which may be absent, numeric, or a string like "$1,299.99".
// It reports false for anything it cannot turn into a positive float and
// never panics; invalid input is a result, not an error.
func NormalizePrice(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		if v > 0 {
			return v, true
		}
	case int:
		if v > 0 {
			return float64(v), true
		}
	case string:
		// Strip thousands separators, then grab the first numeric token.
		s := strings.ReplaceAll(v, ",", "")
		m := priceToken.FindString(s)
		if m == "" {
			return 0, false
		}
		price, err := strconv.ParseFloat(m, 64)
		if err != nil || price <= 0 {
			return 0, false
		}
		return price, true
	}
	return 0, false
}
