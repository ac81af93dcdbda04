package core

// convert.go parses the messy numeric text found in exported spreadsheets:
//   - currency symbols and thousands separators ("$1,234.50")
//   - accounting negatives ("(12.50)")
//   - Excel formula prefixes (="42")
//
// Parsing goes through pgtype.Numeric so arbitrary precision input is
// validated before it is narrowed to float64.

import (
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// currencySymbols are stripped before numeric parsing.
var currencySymbols = strings.NewReplacer(
	"$", "",
	"€", "", // Euro
	"£", "", // Pound
	"¥", "", // Yen
	",", "",
)

// ToNumeric converts a cell to pgtype.Numeric.
// Returns Valid=false for empty or non-numeric input.
func ToNumeric(s string) pgtype.Numeric {
	s = CleanCell(s)
	if s == "" {
		return pgtype.Numeric{Valid: false}
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.TrimSpace(currencySymbols.Replace(s))
	if isNegative {
		if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
			return pgtype.Numeric{Valid: false}
		}
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return n
}

// ParseNumeric returns the float64 value of a numeric-looking cell.
func ParseNumeric(s string) (float64, bool) {
	n := ToNumeric(s)
	if !n.Valid {
		return 0, false
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return 0, false
	}
	return f.Float64, true
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// surrounding whitespace, the Excel formula prefix (="..."), and
// surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}
