// Package money provides fixed-point currency parsing and formatting.
//
// Amounts are carried as int64 paise (hundredths of a rupee) everywhere in the
// engine. Floats never enter the computation path; rounding happens only at
// the presentation boundary.
package money

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidAmount is returned for amounts that are empty, malformed,
// negative, or zero.
var ErrInvalidAmount = errors.New("invalid amount")

// Parse converts a decimal string to paise with half-up rounding on the
// third decimal place. Both dot (12.34) and comma (12,34) are accepted as
// the decimal separator; a comma is never a grouping character, so mixed
// input like "1,234.56" is rejected. Zero and negative amounts are rejected.
//
// Examples:
//
//	Parse("12.34") -> 1234, nil
//	Parse("12,34") -> 1234, nil
//	Parse("12.345") -> 1234, nil (rounds down)
//	Parse("12.346") -> 1235, nil (rounds up)
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Comma is only ever the decimal separator, never grouping
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Sign is conveyed by the entry type, never by the amount
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; half-up rounding on the third
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// Format renders paise as a whole-rupee display string with Indian digit
// grouping (last three digits, then groups of two): 123456789 paise ->
// "₹12,34,568". Paise are rounded half-up to the nearest rupee.
func Format(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	rupees := (cents + 50) / 100
	s := groupIndian(strconv.FormatInt(rupees, 10))
	if neg {
		return "-₹" + s
	}
	return "₹" + s
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
