package utils

import (
	"github.com/shopspring/decimal"
)

// descriptionBudget is the character budget for the description column in
// the report table. Preview and exported artifacts share this function, so
// they can never truncate differently.
const descriptionBudget = 30

// TruncateDescription caps a description at the column budget, marking the
// cut with an ellipsis. Counts runes, not bytes.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= descriptionBudget {
		return s
	}
	return string(runes[:descriptionBudget]) + "..."
}

// Money renders a decimal at display precision with the currency symbol.
// The only place a financial value is rounded.
func Money(symbol string, d decimal.Decimal) string {
	return symbol + d.StringFixed(2)
}

// SanitizeFilename replaces characters that are invalid in download
// filenames.
func SanitizeFilename(filename string) string {
	replacements := map[rune]rune{
		'/':  '_',
		'\\': '_',
		':':  '_',
		'*':  '_',
		'?':  '_',
		'"':  '_',
		'<':  '_',
		'>':  '_',
		'|':  '_',
		' ':  '_',
	}

	result := make([]rune, 0, len(filename))
	for _, char := range filename {
		if replacement, exists := replacements[char]; exists {
			result = append(result, replacement)
		} else {
			result = append(result, char)
		}
	}
	return string(result)
}
