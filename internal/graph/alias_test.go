package graph

import "testing"

func TestExpandAliasesCanonicalAndStripped(t *testing.T) {
	s := NewIdStore()
	m := s.NewSourceModule("/src/utils/format.ts")

	if err := ExpandAliases(s, []Module{m}, TSConfig{}); err != nil {
		t.Fatalf("ExpandAliases: %v", err)
	}

	for _, alias := range []string{"/src/utils/format.ts", "/src/utils/format"} {
		got, ok := s.TryModuleOfPath(alias)
		if !ok {
			t.Fatalf("expected alias %q to resolve", alias)
		}
		if got.ModuleID != m.ModuleID {
			t.Fatalf("alias %q resolved to wrong module", alias)
		}
	}
}

func TestExpandAliasesIndexFile(t *testing.T) {
	s := NewIdStore()
	m := s.NewSourceModule("/src/components/Button/index.tsx")

	if err := ExpandAliases(s, []Module{m}, TSConfig{}); err != nil {
		t.Fatalf("ExpandAliases: %v", err)
	}

	got, ok := s.TryModuleOfPath("/src/components/Button")
	if !ok {
		t.Fatal("expected index-parent alias to resolve")
	}
	if got.ModuleID != m.ModuleID {
		t.Fatal("index-parent alias resolved to wrong module")
	}
}

func TestExpandAliasesBaseURLRelative(t *testing.T) {
	s := NewIdStore()
	m := s.NewSourceModule("/repo/src/utils/format.ts")

	cfg := TSConfig{BaseURL: "/repo/src"}
	if err := ExpandAliases(s, []Module{m}, cfg); err != nil {
		t.Fatalf("ExpandAliases: %v", err)
	}

	got, ok := s.TryModuleOfPath("utils/format")
	if !ok {
		t.Fatal("expected base-url-relative alias to resolve")
	}
	if got.ModuleID != m.ModuleID {
		t.Fatal("base-url-relative alias resolved to wrong module")
	}
}

func TestPickWinnerPrefersNonIndex(t *testing.T) {
	s := NewIdStore()
	indexMod := s.NewSourceModule("/src/Button/index.ts")
	directMod := s.NewSourceModule("/src/Button.ts")

	winner := pickWinner(s, []Module{indexMod, directMod})
	if winner.ModuleID != directMod.ModuleID {
		t.Fatal("expected non-index file to win over index file")
	}
}

func TestPickWinnerExtensionPrecedence(t *testing.T) {
	s := NewIdStore()
	tsMod := s.NewSourceModule("/src/foo.ts")
	jsMod := s.NewSourceModule("/src/foo.js")

	winner := pickWinner(s, []Module{jsMod, tsMod})
	if winner.ModuleID != tsMod.ModuleID {
		t.Fatal("expected .ts to take precedence over .js")
	}
}
