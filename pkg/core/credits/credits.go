// Package credits formats and parses in-universe currency amounts.
package credits

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders an integer credit amount as CrN with thousands separators,
// e.g. Format(12345) == "Cr12,345".
func Format(amount int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := strconv.Itoa(amount)
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString("Cr")
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

// Parse reads a CrN,NNN formatted price back into integer credits.
func Parse(price string) (int, error) {
	cleaned := strings.TrimSpace(price)
	cleaned = strings.TrimPrefix(cleaned, "Cr")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty price string")
	}
	amount, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("unparseable price %q: %w", price, err)
	}
	return amount, nil
}
