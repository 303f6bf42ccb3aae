package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only spaces", "    ", ""},
		{"leading and trailing", "  depot road 5  ", "depot road 5"},
		{"internal runs collapse", "depot   road\t5", "depot road 5"},
		{"newlines collapse", "depot\nroad 5", "depot road 5"},
		{"already clean", "depot road 5", "depot road 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePlate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" fl 1234 ab ", "FL1234AB"},
		{"fl-1234", "FL-1234"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizePlate(tt.input); got != tt.want {
			t.Errorf("NormalizePlate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"israeli mobile", "0501234567", "+972501234567"},
		{"already e164", "+972501234567", "+972501234567"},
		{"with spaces", " 050 123 4567 ", "+972501234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
