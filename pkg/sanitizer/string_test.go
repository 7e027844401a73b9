package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Clio", "Clio"},
		{"leading and trailing", "  Clio  ", "Clio"},
		{"interior runs collapse", "Renault   Clio", "Renault Clio"},
		{"tabs and newlines", "Renault\t\nClio", "Renault Clio"},
		{"empty", "", ""},
		{"whitespace only", " \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	if got := NormalizeLabel("  ma1 "); got != "MA1" {
		t.Errorf("NormalizeLabel = %q, want MA1", got)
	}
}

func TestNormalizePlate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"123 tun 456", "123TUN456"},
		{" 123TUN456 ", "123TUN456"},
		{"123\ttun\t456", "123TUN456"},
	}

	for _, tt := range tests {
		if got := NormalizePlate(tt.input); got != tt.want {
			t.Errorf("NormalizePlate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
