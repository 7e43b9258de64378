// Package amount converts between human decimal strings and the scaled
// integer representation used on the contract boundary.
//
// Conversion is string-based end to end. Amounts are money; routing them
// through binary floating point would silently lose precision, so no code
// path here may touch float32/float64.
package amount

import (
	"fmt"
	"math/big"
	"strings"
)

// DefaultDecimals matches the token's fixed-point precision.
const DefaultDecimals = 18

// Parse converts a decimal string such as "12.5" into its scaled integer
// form (12.5 becomes 12500000000000000000 at 18 decimals). The fractional
// part must fit within decimals digits; anything else is rejected rather
// than rounded.
func Parse(s string, decimals int) (*big.Int, error) {
	if decimals < 0 {
		return nil, fmt.Errorf("negative decimals %d", decimals)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("negative amount %q", s)
	}

	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return nil, fmt.Errorf("malformed amount %q", s)
		}
	}
	if intPart == "" && fracPart == "" {
		return nil, fmt.Errorf("malformed amount %q", s)
	}
	if intPart == "" {
		intPart = "0"
	}
	if !digitsOnly(intPart) || !digitsOnly(fracPart) {
		return nil, fmt.Errorf("malformed amount %q", s)
	}
	if len(fracPart) > decimals {
		return nil, fmt.Errorf("amount %q exceeds %d decimal places", s, decimals)
	}

	// Pad the fraction out to the full precision and treat the whole thing
	// as one integer literal.
	scaled := intPart + fracPart + strings.Repeat("0", decimals-len(fracPart))
	v, ok := new(big.Int).SetString(scaled, 10)
	if !ok {
		return nil, fmt.Errorf("malformed amount %q", s)
	}
	return v, nil
}

// Format renders a scaled integer back into a decimal string, trimming
// trailing fractional zeros. Format(Parse(x)) preserves the numeric value
// exactly for any x representable at the given precision.
func Format(v *big.Int, decimals int) string {
	if v == nil {
		return "0"
	}
	sign := ""
	abs := new(big.Int).Abs(v)
	if v.Sign() < 0 {
		sign = "-"
	}

	digits := abs.String()
	if decimals == 0 {
		return sign + digits
	}
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}
	cut := len(digits) - decimals
	intPart, fracPart := digits[:cut], digits[cut:]
	fracPart = strings.TrimRight(fracPart, "0")
	if fracPart == "" {
		return sign + intPart
	}
	return sign + intPart + "." + fracPart
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
