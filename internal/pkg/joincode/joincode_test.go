package joincode

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code, err := New()
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if len(code) != Length {
			t.Fatalf("New() = %q, want length %d", code, Length)
		}
		for _, r := range code {
			if !strings.ContainsRune(Alphabet, r) {
				t.Fatalf("New() = %q, contains %q outside alphabet", code, r)
			}
		}
		seen[code] = true
	}
	// With a ~2.2e9 code space, 1000 draws colliding would point at a broken generator.
	if len(seen) < 990 {
		t.Errorf("got %d distinct codes out of 1000, generator looks biased", len(seen))
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{name: "valid upper alnum", code: "A1B2C3", want: true},
		{name: "valid all digits", code: "012345", want: true},
		{name: "too short", code: "A1B2C", want: false},
		{name: "too long", code: "A1B2C3D", want: false},
		{name: "lowercase", code: "a1b2c3", want: false},
		{name: "empty", code: "", want: false},
		{name: "symbols", code: "A1B2C!", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.code); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
