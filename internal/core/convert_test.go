package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		want   float64
	}{
		// Valid: basic numbers
		{"positive integer", "123", true, 123},
		{"zero", "0", true, 0},
		{"negative integer", "-456", true, -456},
		{"decimal number", "123.45", true, 123.45},
		{"leading decimal point", ".99", true, 0.99},
		{"surrounding whitespace", "  42  ", true, 42},

		// Valid: currency and separators
		{"dollar sign", "$1,234.56", true, 1234.56},
		{"euro sign", "€1234.56", true, 1234.56},
		{"pound sign", "£1234.56", true, 1234.56},
		{"thousands separators", "1,000,000", true, 1000000},

		// Valid: accounting negatives
		{"accounting negative", "(12.50)", true, -12.5},
		{"accounting negative with currency", "($1,000.00)", true, -1000},

		// Valid: spreadsheet artifacts
		{"excel formula prefix", `="42"`, true, 42},
		{"quoted", `"7"`, true, 7},

		// Invalid
		{"empty", "", false, 0},
		{"whitespace only", "   ", false, 0},
		{"letters", "abc", false, 0},
		{"mixed", "12abc", false, 0},
		{"two decimal points", "1.2.3", false, 0},
		{"double negative accounting", "(-5)", false, 0},
		{"bare currency", "$", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumeric(tt.input)
			assert.Equal(t, tt.wantOK, ok, "ParseNumeric(%q) ok", tt.input)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9, "ParseNumeric(%q)", tt.input)
			}
		})
	}
}

func TestToNumeric_Validity(t *testing.T) {
	assert.True(t, ToNumeric("1,234").Valid)
	assert.False(t, ToNumeric("N/A").Valid)
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"  padded  ", "padded"},
		{`="0012"`, "0012"},
		{"=SUM", "SUM"},
		{`"quoted"`, "quoted"},
		{"'single'", "single"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanCell(tt.input), "CleanCell(%q)", tt.input)
	}
}
