package graph

import "testing"

func TestResolveImportsRelative(t *testing.T) {
	s := NewIdStore()
	app := s.NewSourceModule("/src/app.ts")
	util := s.NewSourceModule("/src/util.ts")

	if err := ExpandAliases(s, []Module{app, util}, TSConfig{}); err != nil {
		t.Fatalf("ExpandAliases: %v", err)
	}

	pairs := []OwnerImports{
		{OwnerPath: "/src/app.ts", Imports: []string{"./util"}},
	}

	edges, errs := ResolveImports(s, pairs)
	if len(errs) != 0 {
		t.Fatalf("expected no resolution errors, got %v", errs)
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	if edges[0].From != app.ModuleID || edges[0].To != util.ModuleID {
		t.Fatalf("unexpected edge %+v", edges[0])
	}
}

func TestResolveImportsUnresolvedRelative(t *testing.T) {
	s := NewIdStore()
	app := s.NewSourceModule("/src/app.ts")
	if err := ExpandAliases(s, []Module{app}, TSConfig{}); err != nil {
		t.Fatalf("ExpandAliases: %v", err)
	}

	pairs := []OwnerImports{
		{OwnerPath: "/src/app.ts", Imports: []string{"./missing"}},
	}

	edges, errs := ResolveImports(s, pairs)
	if len(edges) != 0 {
		t.Fatalf("expected no edges, got %d", len(edges))
	}
	owner := errs["/src/app.ts"]
	if len(owner) != 1 {
		t.Fatalf("expected 1 resolution error, got %d", len(owner))
	}
}

func TestResolveImportsExternalPackage(t *testing.T) {
	s := NewIdStore()
	app := s.NewSourceModule("/src/app.ts")
	if err := ExpandAliases(s, []Module{app}, TSConfig{}); err != nil {
		t.Fatalf("ExpandAliases: %v", err)
	}

	pairs := []OwnerImports{
		{OwnerPath: "/src/app.ts", Imports: []string{"react", "@scope/pkg/deep/path"}},
	}

	edges, errs := ResolveImports(s, pairs)
	if len(errs) != 0 {
		t.Fatalf("expected no resolution errors, got %v", errs)
	}
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(edges))
	}

	reactMod, ok := s.TryModuleOfPath("react")
	if !ok {
		t.Fatal("expected react package root to be registered")
	}
	scopedMod, ok := s.TryModuleOfPath("@scope/pkg")
	if !ok {
		t.Fatal("expected scoped package root to be registered")
	}

	got := map[ModuleId]bool{}
	for _, e := range edges {
		got[e.To] = true
	}
	if !got[reactMod.ModuleID] || !got[scopedMod.ModuleID] {
		t.Fatal("expected edges into both package-root modules")
	}
}

func TestResolveImportsSkipsNonCodeExtensions(t *testing.T) {
	s := NewIdStore()
	app := s.NewSourceModule("/src/app.ts")
	if err := ExpandAliases(s, []Module{app}, TSConfig{}); err != nil {
		t.Fatalf("ExpandAliases: %v", err)
	}

	pairs := []OwnerImports{
		{OwnerPath: "/src/app.ts", Imports: []string{"./logo.png", "./styles.css"}},
	}

	edges, errs := ResolveImports(s, pairs)
	if len(edges) != 0 || len(errs) != 0 {
		t.Fatalf("expected asset imports to be silently skipped, got edges=%v errs=%v", edges, errs)
	}
}

func TestPackageRootScoped(t *testing.T) {
	root, err := packageRoot("@scope/pkg/deep/path")
	if err != nil {
		t.Fatalf("packageRoot: %v", err)
	}
	if root != "@scope/pkg" {
		t.Fatalf("expected @scope/pkg, got %q", root)
	}
}

func TestPackageRootPlain(t *testing.T) {
	root, err := packageRoot("lodash/debounce")
	if err != nil {
		t.Fatalf("packageRoot: %v", err)
	}
	if root != "lodash" {
		t.Fatalf("expected lodash, got %q", root)
	}
}
