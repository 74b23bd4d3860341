package accounting

import "strings"

// B3 fractional-lot tickers append an F to the whole-lot symbol (PETR4F,
// HGLG11F). Anything longer is a legitimately long code that happens to end
// in F, not a fractional marker.
const maxFractionalLen = 7

// NormalizeTicker canonicalizes an asset symbol: uppercases, trims and
// strips the fractional-lot suffix so whole-lot and fractional trades of the
// same asset merge into one position. Idempotent.
func NormalizeTicker(raw string) string {
	t := strings.ToUpper(strings.TrimSpace(raw))

	n := len(t)
	if n >= 2 && n <= maxFractionalLen && t[n-1] == 'F' && isDigit(t[n-2]) {
		return t[:n-1]
	}
	return t
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
