package utils

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTruncateDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short string untouched", "Rewire kitchen", "Rewire kitchen"},
		{"exactly at budget untouched", strings.Repeat("a", 30), strings.Repeat("a", 30)},
		{"one over budget", strings.Repeat("a", 31), strings.Repeat("a", 30) + "..."},
		{"empty string", "", ""},
		{
			"counts runes not bytes",
			strings.Repeat("é", 31),
			strings.Repeat("é", 30) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateDescription(tt.in); got != tt.want {
				t.Errorf("TruncateDescription(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		symbol string
		value  string
		want   string
	}{
		{"€", "150", "€150.00"},
		{"£", "180.5", "£180.50"},
		{"$", "0", "$0.00"},
		{"€", "1234.567", "€1234.57"},
	}

	for _, tt := range tests {
		got := Money(tt.symbol, decimal.RequireFromString(tt.value))
		if got != tt.want {
			t.Errorf("Money(%q, %s) = %q, want %q", tt.symbol, tt.value, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"jobs export 2024.xlsx", "jobs_export_2024.xlsx"},
		{"a/b\\c:d", "a_b_c_d"},
		{"clean-name.pdf", "clean-name.pdf"},
		{"what?*<>|", "what_____"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
