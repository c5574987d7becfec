package version

import "testing"

func TestSatisfies(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		minimum   string
		want      bool
	}{
		{"no constraint", "1.0", "", true},
		{"no constraint, unknown version", "", "", true},
		{"unknown version with constraint", "", "1.0", false},
		{"exact match", "1.0", "1.0", true},
		{"newer satisfies", "1.2", "1.0", true},
		{"older fails", "0.9", "1.0", false},
		{"numeric not lexical", "1.10", "1.9", true},
		{"missing components are zero", "1.2", "1.2.0", true},
		{"longer candidate wins", "1.2.1", "1.2", true},
		{"longer minimum fails", "1.2", "1.2.1", false},
		{"multi-digit components", "2.0.10", "2.0.9", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Satisfies(tt.candidate, tt.minimum); got != tt.want {
				t.Errorf("Satisfies(%q, %q) = %v, want %v", tt.candidate, tt.minimum, got, tt.want)
			}
		})
	}
}

func TestSatisfiesMalformed(t *testing.T) {
	// Non-numeric components never panic; lexical fallback decides
	tests := []struct {
		candidate string
		minimum   string
		want      bool
	}{
		{"1.0a", "1.0a", true},   // equal lexically
		{"1.0a", "1.0b", false},  // "a" < "b"
		{"1.0b", "1.0a", true},   // "b" > "a"
		{"alpha", "beta", false}, // purely lexical
		{"1.x.3", "1.x.2", true}, // numeric resumes after equal malformed component
	}

	for _, tt := range tests {
		if got := Satisfies(tt.candidate, tt.minimum); got != tt.want {
			t.Errorf("Satisfies(%q, %q) = %v, want %v", tt.candidate, tt.minimum, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "1.0.0", 0},
		{"1.1", "1.0", 1},
		{"1.0", "1.1", -1},
		{"10.0", "9.0", 1},
	}

	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
