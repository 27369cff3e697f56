package textutil

import "testing"

func TestNormalizeFoldsAccentsAndCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hermès Birkin", "hermes birkin"},
		{"  CHANEL   Classic  Flap ", "chanel classic flap"},
		{"Céline Luggage Tote", "celine luggage tote"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripPunct(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"quality!", "quality"},
		{"1:1", "11"},
		{"pre-loved", "preloved"},
		{"clean", "clean"},
	}
	for _, tt := range tests {
		if got := StripPunct(tt.in); got != tt.want {
			t.Errorf("StripPunct(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
