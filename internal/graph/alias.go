package graph

import (
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// extensionPrecedence mirrors TypeScript's own module-resolution order
// (microsoft/TypeScript compiler/utilities.ts): higher wins. .d.cts and
// .d.mts sit just below .cts and .mts; .d.ts sits below both .ts and .tsx.
var extensionPrecedence = map[string]int{
	"ts":    11,
	"tsx":   10,
	"d.ts":  9,
	"js":    8,
	"jsx":   7,
	"cts":   6,
	"d.cts": 5,
	"cjs":   4,
	"mts":   3,
	"d.mts": 2,
	"mjs":   1,
}

// supportedExtensions lists the source-file extensions. Nothing in this
// package reads it; internal/scan filters on its own identical set.
var supportedExtensions = map[string]bool{
	"ts": true, "tsx": true, "cts": true, "mts": true,
	"js": true, "jsx": true, "cjs": true, "mjs": true,
}

// declarationSuffixes are the two-extension suffixes that count as a
// single logical extension for both stripping and precedence purposes.
var declarationSuffixes = []string{".d.ts", ".d.mts", ".d.cts"}

// IsDeclarationFile reports whether path names a .d.ts/.d.mts/.d.cts file.
func IsDeclarationFile(path string) bool {
	for _, suf := range declarationSuffixes {
		if strings.HasSuffix(path, suf) {
			return true
		}
	}
	return false
}

// extensionOf returns the logical extension used for precedence lookups:
// "d.ts" for foo.d.ts, "ts" for foo.ts, the last extension without its dot
// for any other file (e.g. "vue"), and "" when there is none.
func extensionOf(path string) string {
	if IsDeclarationFile(path) {
		switch {
		case strings.HasSuffix(path, ".d.ts"):
			return "d.ts"
		case strings.HasSuffix(path, ".d.mts"):
			return "d.mts"
		case strings.HasSuffix(path, ".d.cts"):
			return "d.cts"
		}
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return ext
}

// stripExtension removes a file's extension(s) the way TypeScript's
// extension-less import resolution expects: declaration files drop both
// trailing extensions ("foo.d.ts" -> "foo"), everything else drops one.
func stripExtension(path string) string {
	if IsDeclarationFile(path) {
		for _, suf := range declarationSuffixes {
			if strings.HasSuffix(path, suf) {
				return strings.TrimSuffix(path, suf)
			}
		}
	}
	ext := filepath.Ext(path)
	if ext == "" {
		return path
	}
	return strings.TrimSuffix(path, ext)
}

// isIndexFile reports whether path's filename stem (post extension-strip)
// is "index".
func isIndexFile(path string) bool {
	stripped := stripExtension(path)
	return filepath.Base(stripped) == "index"
}

// TSConfig is the normalized, immutable configuration the AliasExpander
// and ImportResolver consume. It is produced by the external TSConfigLoader
// collaborator (internal/tsconfig in this repository).
type TSConfig struct {
	BaseURL string            // absolute, lexically cleaned; "" if unset
	Paths   map[string]string // reserved for future use; wildcard/multi-target paths are unsupported
}

// candidate pairs a synthesized alias spelling with the module it names.
type candidate struct {
	alias  string
	module Module
}

// ExpandAliases synthesizes every legitimate import spelling for each
// source module and commits a single deterministic winner per alias into
// the store's Alias→Module map. Must run to completion before import
// resolution starts; the final map is read-mostly from that point on.
func ExpandAliases(store *IdStore, modules []Module, cfg TSConfig) error {
	perFile := make([][]candidate, len(modules))

	g := new(errgroup.Group)
	g.SetLimit(workerLimit())
	for i, m := range modules {
		i, m := i, m
		g.Go(func() error {
			perFile[i] = candidatesFor(store, m, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	groups := make(map[string][]Module)
	for _, list := range perFile {
		for _, c := range list {
			groups[c.alias] = append(groups[c.alias], c.module)
		}
	}

	for alias, mods := range groups {
		winner := pickWinner(store, mods)
		store.RegisterAlias(alias, winner)
	}

	return nil
}

// candidatesFor synthesizes every alias spelling for a single module's
// file: the canonical path, a base-url-relative spelling, an index-parent
// spelling, and the extension-stripped variant of each.
func candidatesFor(store *IdStore, m Module, cfg TSConfig) []candidate {
	path := store.PathOf(m.PathID)

	var aliases []string
	// Step 1: canonical absolute path.
	aliases = append(aliases, path)

	// Step 2: base-url-relative, if applicable.
	if cfg.BaseURL != "" {
		if rel, ok := underBase(path, cfg.BaseURL); ok {
			aliases = append(aliases, rel)
		}
	}

	// Step 3: index-file parent directory.
	if isIndexFile(path) {
		parent := filepath.Dir(path)
		aliases = append(aliases, parent)
		if cfg.BaseURL != "" {
			if rel, ok := underBase(parent, cfg.BaseURL); ok {
				aliases = append(aliases, rel)
			}
		}
	}

	// Step 4: extension-stripped variant of every alias gathered so far.
	stripped := make([]string, 0, len(aliases))
	for _, a := range aliases {
		s := stripExtension(a)
		if s != a {
			stripped = append(stripped, s)
		}
	}
	aliases = append(aliases, stripped...)

	out := make([]candidate, 0, len(aliases))
	seen := make(map[string]bool, len(aliases))
	for _, a := range aliases {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, candidate{alias: a, module: m})
	}
	return out
}

// underBase returns path with cfg's base_url prefix stripped, when path
// genuinely lies under that prefix (directory-boundary aware).
func underBase(path, baseURL string) (string, bool) {
	rel, err := filepath.Rel(baseURL, path)
	if err != nil {
		return "", false
	}
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return rel, true
}

// pickWinner resolves an alias collision: a non-index filename beats an
// index filename; otherwise the standard TypeScript extension order
// wins; ties break on ModuleId (deterministic, first-registered wins).
func pickWinner(store *IdStore, mods []Module) Module {
	if len(mods) == 1 {
		return mods[0]
	}

	sort.SliceStable(mods, func(i, j int) bool {
		pi := store.PathOf(mods[i].PathID)
		pj := store.PathOf(mods[j].PathID)

		ii, ij := isIndexFile(pi), isIndexFile(pj)
		if ii != ij {
			return !ii // non-index (ii==false) sorts first
		}

		pi_, pj_ := extensionPrecedence[extensionOf(pi)], extensionPrecedence[extensionOf(pj)]
		if pi_ != pj_ {
			return pi_ > pj_
		}

		return mods[i].ModuleID < mods[j].ModuleID
	})

	return mods[0]
}
