package utils

import (
	"fmt"
	"math/big"
	"strings"
)

// WeiDecimals is the fixed-point scale used by every monetary field crossing
// the contract boundary.
const WeiDecimals = 18

var weiScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(WeiDecimals), nil)

// ParseUnits converts a human decimal string ("2.5") into its 18-fraction-digit
// fixed-point integer representation. The human form is never stored; it is
// converted here, at the boundary, and the integer is authoritative.
func ParseUnits(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("parse units: empty value")
	}
	if strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("parse units: negative value %q", s)
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > WeiDecimals {
		return nil, fmt.Errorf("parse units: %q exceeds %d fraction digits", s, WeiDecimals)
	}
	frac += strings.Repeat("0", WeiDecimals-len(frac))

	w, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return nil, fmt.Errorf("parse units: invalid number %q", s)
	}
	f := big.NewInt(0)
	if frac != strings.Repeat("0", WeiDecimals) {
		f, ok = new(big.Int).SetString(frac, 10)
		if !ok {
			return nil, fmt.Errorf("parse units: invalid number %q", s)
		}
	}
	return new(big.Int).Add(new(big.Int).Mul(w, weiScale), f), nil
}

// FormatUnits renders an 18-fraction-digit fixed-point integer as a human
// decimal string, trimming trailing zeros ("2500000000000000000" -> "2.5").
func FormatUnits(v *big.Int) string {
	if v == nil {
		return "0"
	}
	q, r := new(big.Int).QuoRem(v, weiScale, new(big.Int))
	if r.Sign() == 0 {
		return q.String()
	}
	frac := strings.TrimRight(fmt.Sprintf("%018s", r.String()), "0")
	return q.String() + "." + frac
}
