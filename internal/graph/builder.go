package graph

import (
	"fmt"
)

// Diagnostics accumulates the non-fatal errors produced while building an
// Index: visitor diagnostics (non-literal dynamic import/require
// arguments) and resolver diagnostics (unresolved relative imports and
// malformed bare specifiers), both grouped by owner file.
type Diagnostics struct {
	VisitorErrors   map[string][]string
	ResolutionErrors map[string][]ResolutionError
}

// HasErrors reports whether any non-fatal diagnostic was recorded.
func (d Diagnostics) HasErrors() bool {
	return len(d.VisitorErrors) > 0 || len(d.ResolutionErrors) > 0
}

// Index is the fully-built, read-only result of running the pipeline: an
// IdStore with its Alias→Module map committed, and the ModuleGraph built
// from the resolved edges.
type Index struct {
	Store *IdStore
	Graph *ModuleGraph
}

// ErrUnknownSeed is returned by ReachablePaths when the seed path does not
// resolve to any known module.
type ErrUnknownSeed struct {
	Seed string
}

func (e ErrUnknownSeed) Error() string {
	return fmt.Sprintf("unknown seed path: %s", e.Seed)
}

// Build assigns a Module to every scanned file, expands and commits the
// alias table, resolves every owner's raw imports into edges, and builds
// the ModuleGraph. The caller (internal/cli) is responsible for loading
// tsconfig and scanning the filesystem, and for producing the (owner, raw
// imports) pairs via the Visitor collaborator.
func Build(filePaths []string, cfg TSConfig, ownerImports []OwnerImports, visitorErrors map[string][]string) (*Index, Diagnostics, error) {
	store := NewIdStore()

	modules := make([]Module, len(filePaths))
	for i, p := range filePaths {
		modules[i] = store.NewSourceModule(p)
	}

	if err := ExpandAliases(store, modules, cfg); err != nil {
		return nil, Diagnostics{}, fmt.Errorf("alias expansion: %w", err)
	}

	edges, resolutionErrors := ResolveImports(store, ownerImports)
	g := BuildModuleGraph(store.ModuleCount(), edges)

	return &Index{Store: store, Graph: g}, Diagnostics{
		VisitorErrors:    visitorErrors,
		ResolutionErrors: resolutionErrors,
	}, nil
}

// ReachablePaths resolves seedPath to a module and returns the source
// paths reachable from it in the given direction, bounded by maxDepth
// (0 = unbounded). Returns ErrUnknownSeed if seedPath names no known
// module.
func (idx *Index) ReachablePaths(seedPath string, direction Direction, maxDepth uint) ([]string, error) {
	seed, ok := idx.Store.TryModuleOfPath(seedPath)
	if !ok {
		return nil, ErrUnknownSeed{Seed: seedPath}
	}

	ids := idx.Graph.Reachable(seed.ModuleID, direction, maxDepth)

	paths := make([]string, 0, len(ids))
	for _, id := range ids {
		m := idx.Store.ModuleOf(id)
		paths = append(paths, idx.Store.PathOf(m.PathID))
	}
	return paths, nil
}
