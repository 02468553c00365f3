package graph

import "testing"

func TestInternPathIdempotent(t *testing.T) {
	s := NewIdStore()

	a := s.InternPath("/src/app.ts")
	b := s.InternPath("/src/app.ts")
	if a != b {
		t.Fatalf("expected stable PathId, got %d then %d", a, b)
	}

	c := s.InternPath("/src/other.ts")
	if c == a {
		t.Fatalf("expected distinct PathId for distinct path")
	}
}

func TestNewSourceModuleAssignsDenseIds(t *testing.T) {
	s := NewIdStore()

	m0 := s.NewSourceModule("/src/a.ts")
	m1 := s.NewSourceModule("/src/b.ts")

	if m0.ModuleID != 0 || m1.ModuleID != 1 {
		t.Fatalf("expected dense 0,1 module ids, got %d,%d", m0.ModuleID, m1.ModuleID)
	}
	if s.ModuleCount() != 2 {
		t.Fatalf("expected ModuleCount 2, got %d", s.ModuleCount())
	}
}

func TestNewExternalModuleIsIdempotent(t *testing.T) {
	s := NewIdStore()

	react1 := s.NewExternalModule("react")
	react2 := s.NewExternalModule("react")

	if react1.ModuleID != react2.ModuleID {
		t.Fatalf("expected same module for repeated external root, got %d and %d", react1.ModuleID, react2.ModuleID)
	}
}

func TestRegisterAliasFirstSeenWins(t *testing.T) {
	s := NewIdStore()

	winner := s.NewSourceModule("/src/components/Button/index.ts")
	loser := s.NewSourceModule("/src/components/Button/index.d.ts")

	s.RegisterAlias("/src/components/Button", winner)
	s.RegisterAlias("/src/components/Button", loser)

	m, ok := s.TryModuleOfPath("/src/components/Button")
	if !ok {
		t.Fatal("expected alias to resolve")
	}
	if m.ModuleID != winner.ModuleID {
		t.Fatalf("expected first-registered winner %d, got %d", winner.ModuleID, m.ModuleID)
	}
}

func TestTryModuleOfPathUnknown(t *testing.T) {
	s := NewIdStore()
	if _, ok := s.TryModuleOfPath("/nope.ts"); ok {
		t.Fatal("expected unknown path to miss")
	}
}
