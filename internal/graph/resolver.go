package graph

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// skippedExtensions are non-code extensions the resolver drops silently.
// Matched against the raw import string's suffix, so both "./logo.png"
// and "pkg/logo.png" skip.
var skippedExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".webp", ".avif",
	".ttf", ".otf", ".woff", ".woff2", ".eot",
	".mp3", ".wav", ".ogg", ".mp4", ".webm", ".mov", ".avi",
	".css", ".scss", ".sass", ".less",
	".ejs", ".html", ".htm",
	".json", ".md", ".mdx", ".txt", ".svg",
	".wasm", ".vert", ".frag", ".glsl", ".vtt",
}

// OwnerImports pairs a source file with the raw dependency strings the
// Visitor extracted from it.
type OwnerImports struct {
	OwnerPath string
	Imports   []string
}

// Edge is a resolved, owner-to-target module dependency. Insertion order
// and duplicate count are not meaningful.
type Edge struct {
	From ModuleId
	To   ModuleId
}

// ResolutionError records an import that didn't resolve: a relative import
// that matches no known alias, or a bare specifier with no valid package
// root (empty, or an "@" scope with no package segment). Non-fatal,
// grouped by owner.
type ResolutionError struct {
	Owner     string
	Attempted string
	Import    string
}

func (e ResolutionError) Error() string {
	return fmt.Sprintf("%s: cannot resolve %q (tried %s)", e.Owner, e.Import, e.Attempted)
}

// ResolveImports resolves every (owner, raw imports) pair in parallel,
// producing resolved edges and a grouping of per-owner resolution errors.
// The store's Alias→Module map must already be fully committed by
// ExpandAliases before this runs.
func ResolveImports(store *IdStore, pairs []OwnerImports) ([]Edge, map[string][]ResolutionError) {
	var (
		mu     sync.Mutex
		edges  []Edge
		errors = make(map[string][]ResolutionError)
	)

	g := new(errgroup.Group)
	g.SetLimit(workerLimit())

	for _, pair := range pairs {
		pair := pair
		g.Go(func() error {
			localEdges, localErrs := resolveOwner(store, pair)

			mu.Lock()
			edges = append(edges, localEdges...)
			if len(localErrs) > 0 {
				errors[pair.OwnerPath] = append(errors[pair.OwnerPath], localErrs...)
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // resolveOwner never returns an error; the pipeline never aborts mid-phase

	return edges, errors
}

func resolveOwner(store *IdStore, pair OwnerImports) ([]Edge, []ResolutionError) {
	owner, ok := store.TryModuleOfPath(pair.OwnerPath)
	if !ok {
		// The owner itself was never registered as a source module; nothing
		// to resolve against. This should not happen for files the scanner
		// discovered, but fail soft rather than panic.
		return nil, nil
	}

	var edges []Edge
	var errs []ResolutionError

	for _, raw := range pair.Imports {
		if hasSkippedExtension(raw) {
			continue
		}

		if strings.HasPrefix(raw, "./") || strings.HasPrefix(raw, "../") {
			resolved := filepath.Clean(filepath.Join(filepath.Dir(pair.OwnerPath), raw))
			if target, ok := store.TryModuleOfPath(resolved); ok {
				edges = append(edges, Edge{From: owner.ModuleID, To: target.ModuleID})
			} else {
				errs = append(errs, ResolutionError{Owner: pair.OwnerPath, Attempted: resolved, Import: raw})
			}
			continue
		}

		if target, ok := store.TryModuleOfPath(raw); ok {
			edges = append(edges, Edge{From: owner.ModuleID, To: target.ModuleID})
			continue
		}

		root, err := packageRoot(raw)
		if err != nil {
			errs = append(errs, ResolutionError{Owner: pair.OwnerPath, Attempted: raw, Import: raw})
			continue
		}
		external := store.NewExternalModule(root)
		store.RegisterAlias(raw, external)
		edges = append(edges, Edge{From: owner.ModuleID, To: external.ModuleID})
	}

	return edges, errs
}

func hasSkippedExtension(raw string) bool {
	lower := strings.ToLower(raw)
	for _, ext := range skippedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// packageRoot extracts the package-root spelling from a bare import
// specifier: the first path component, or the first two if @-scoped.
func packageRoot(spec string) (string, error) {
	if spec == "" {
		return "", fmt.Errorf("empty import specifier")
	}

	parts := strings.Split(spec, "/")
	if strings.HasPrefix(spec, "@") {
		if len(parts) < 2 {
			return "", fmt.Errorf("malformed scoped package name %q", spec)
		}
		return parts[0] + "/" + parts[1], nil
	}

	return parts[0], nil
}
