package language

import (
	"testing"
)

func TestSetContainsIsExact(t *testing.T) {
	s := NewSet("es-MX", "spa")

	tests := []struct {
		tag  string
		want bool
	}{
		{"es-MX", true},
		{"spa", true},
		{"es-mx", false},
		{"ES-MX", false},
		{"es", false},
		{"spa ", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := s.Contains(tt.tag); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestNewSetTrimsAndDedups(t *testing.T) {
	s := NewSet(" spa ", "es-MX", "spa", "", "  ")
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	tags := s.Tags()
	if tags[0] != "spa" || tags[1] != "es-MX" {
		t.Fatalf("Tags() = %v, want [spa es-MX]", tags)
	}
	if s.String() != "spa, es-MX" {
		t.Fatalf("String() = %q", s.String())
	}

	tags[0] = "mutated"
	if !s.Contains("spa") {
		t.Fatal("Tags() must return a copy")
	}
}

func TestZeroSetMatchesNothing(t *testing.T) {
	var s Set
	if s.Contains("spa") {
		t.Fatal("zero Set should not contain anything")
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}
}
