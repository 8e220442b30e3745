package skills

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect string
	}{
		{input: "Machine Learning", expect: "machine_learning"},
		{input: "  Public   Speaking ", expect: "public_speaking"},
		{input: "problem-solving", expect: "problem_solving"},
		{input: "Data  Science", expect: "data_science"},
		{input: "E-mail", expect: "e_mail"},
		{input: "", expect: ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expect {
			t.Fatalf("Normalize(%q): expected %q, got %q", tt.input, tt.expect, got)
		}
	}
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect string
		known  bool
	}{
		{input: "Coding", expect: "programming", known: true},
		{input: "programming", expect: "programming", known: true},
		{input: "Public Speaking", expect: "communication", known: true},
		{input: "ML", expect: "machine_learning", known: true},
		{input: "Basket Weaving", expect: "basket_weaving", known: false},
	}

	for _, tt := range tests {
		got, known := Canonical(tt.input)
		if got != tt.expect || known != tt.known {
			t.Fatalf("Canonical(%q): expected (%q, %v), got (%q, %v)", tt.input, tt.expect, tt.known, got, known)
		}
	}
}

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	got := Canonicalize(map[string]int{
		"Coding":         3,
		"Python":         5,
		"Stats":          4,
		"Basket Weaving": 2,
		"   ":            5,
	})

	expect := map[string]int{
		"programming":    5,
		"statistics":     4,
		"basket_weaving": 2,
	}

	if len(got) != len(expect) {
		t.Fatalf("expected %v, got %v", expect, got)
	}
	for key, value := range expect {
		if got[key] != value {
			t.Fatalf("key %s: expected %d, got %d", key, value, got[key])
		}
	}
}

func TestBuildIndexRejectsCollisions(t *testing.T) {
	t.Parallel()

	_, err := BuildIndex(map[string][]string{
		"programming": {"coding"},
		"development": {"Coding"},
	})
	if err == nil {
		t.Fatalf("expected collision error")
	}
	if !strings.Contains(err.Error(), "coding") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuiltInTableHasNoCollisions(t *testing.T) {
	t.Parallel()

	if _, err := BuildIndex(synonyms); err != nil {
		t.Fatalf("built-in synonym table: %v", err)
	}
}
