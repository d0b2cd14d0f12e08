package domain

import (
	"strings"
	"unicode"
)

// NormalizeCategory turns a free-form category label into its canonical slug:
// lower-case, with each run of non-alphanumeric characters collapsed to a
// single hyphen and no leading or trailing hyphen.
// "  Food & Drink " becomes "food-drink". Returns "" if nothing remains.
func NormalizeCategory(label string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
