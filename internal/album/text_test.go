package album

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Summer 2024", "Summer 2024"},
		{"decomposed to composed", "Jir\u030Ci\u0301", "Ji\u0159\u00ed"},
		{"keeps newline and tab", "line1\nline2\tend", "line1\nline2\tend"},
		{"strips bell and escape", "a\x07b\x1bc", "abc"},
		{"strips carriage return", "a\r\nb", "a\nb"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeText(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeFontFamily(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Noto Sans", "Noto Sans"},
		{"  Noto   Sans ", "Noto Sans"},
		{"Georgia\t", "Georgia"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeFontFamily(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeFontFamily(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
