package graph

import "testing"

func TestBuildAndReachablePathsEndToEnd(t *testing.T) {
	files := []string{
		"/src/app.ts",
		"/src/util.ts",
		"/src/unrelated.ts",
	}
	owners := []OwnerImports{
		{OwnerPath: "/src/app.ts", Imports: []string{"./util", "react"}},
	}

	idx, diags, err := Build(files, TSConfig{}, owners, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if diags.HasErrors() {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}

	paths, err := idx.ReachablePaths("/src/app.ts", Outgoing, 0)
	if err != nil {
		t.Fatalf("ReachablePaths: %v", err)
	}

	got := make(map[string]bool, len(paths))
	for _, p := range paths {
		got[p] = true
	}
	if !got["/src/app.ts"] || !got["/src/util.ts"] || !got["react"] {
		t.Fatalf("expected app.ts, util.ts and react in reachable set, got %v", paths)
	}
	if got["/src/unrelated.ts"] {
		t.Fatal("expected unrelated.ts to not be reachable")
	}
}

func TestReachablePathsUnknownSeed(t *testing.T) {
	idx, _, err := Build([]string{"/src/app.ts"}, TSConfig{}, nil, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	_, err = idx.ReachablePaths("/src/nope.ts", Outgoing, 0)
	if err == nil {
		t.Fatal("expected ErrUnknownSeed for unregistered seed path")
	}
	if _, ok := err.(ErrUnknownSeed); !ok {
		t.Fatalf("expected ErrUnknownSeed, got %T: %v", err, err)
	}
}
