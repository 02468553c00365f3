package cli

import (
	"testing"

	"github.com/oskari/tsreach/internal/graph"
)

func TestParseDirection(t *testing.T) {
	cases := map[string]graph.Direction{
		"dependencies": graph.Outgoing,
		"0":            graph.Outgoing,
		"dependents":   graph.Incoming,
		"1":            graph.Incoming,
		"Dependencies": graph.Outgoing,
	}
	for input, want := range cases {
		got, err := parseDirection(input)
		if err != nil {
			t.Fatalf("parseDirection(%q): %v", input, err)
		}
		if got != want {
			t.Errorf("parseDirection(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestParseDirectionInvalid(t *testing.T) {
	if _, err := parseDirection("sideways"); err == nil {
		t.Fatal("expected error for invalid direction")
	}
}
