package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already E.164", "+21655123456", "+21655123456"},
		{"with country code, no plus", "21655123456", "+21655123456"},
		{"national tunisian", "55123456", "+21655123456"},
		{"spaces and dashes", " +216 55-123-456 ", "+21655123456"},
		{"french mobile", "+33612345678", "+33612345678"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"garbage", "not a phone", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone_StableAcrossFormattings(t *testing.T) {
	// The result doubles as a notification routing key, so every
	// formatting of one number must normalize identically.
	variants := []string{
		"+21655123456",
		"21655123456",
		"55123456",
		"+216 55 123 456",
	}

	want := NormalizePhone(variants[0])
	for _, v := range variants {
		if got := NormalizePhone(v); got != want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", v, got, want)
		}
	}
}
