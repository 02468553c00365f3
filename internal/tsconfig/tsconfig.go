// Package tsconfig loads the subset of tsconfig.json that module
// resolution cares about: compilerOptions.baseUrl and .paths, following a
// single-parent "extends" chain. tsconfig.json permits comments and
// trailing commas, so the raw bytes are normalized to strict JSON with
// tidwall/jsonc before decoding.
package tsconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/oskari/tsreach/internal/graph"
)

// rawFile mirrors the on-disk shape of tsconfig.json far enough to reach
// compilerOptions.baseUrl/.paths and the extends pointer.
type rawFile struct {
	Extends         string `json:"extends"`
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

// Loader reads a tsconfig.json from disk, resolving "extends" and
// normalizing the result into a graph.TSConfig.
type Loader struct{}

// NewLoader returns a ready-to-use Loader.
func NewLoader() *Loader { return &Loader{} }

// Load reads the tsconfig.json at path and every file in its "extends"
// chain, merging baseUrl/paths with the child overriding the parent. Per
// the unsupported-shapes list this spec carries from the original
// implementation, Load panics if a "paths" entry names more than one
// target, or if "extends" names anything other than a relative file path
// (no package-name extends resolution is implemented).
func (l *Loader) Load(path string) (graph.TSConfig, error) {
	cfg, err := l.load(path, make(map[string]bool))
	if err != nil {
		return graph.TSConfig{}, err
	}
	return cfg, nil
}

func (l *Loader) load(path string, visited map[string]bool) (graph.TSConfig, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return graph.TSConfig{}, err
	}
	if visited[abs] {
		return graph.TSConfig{}, fmt.Errorf("tsconfig: cyclic extends at %s", abs)
	}
	visited[abs] = true

	raw, err := readRaw(abs)
	if err != nil {
		return graph.TSConfig{}, err
	}

	var cfg graph.TSConfig
	if raw.Extends != "" {
		parentPath, err := resolveExtends(abs, raw.Extends)
		if err != nil {
			return graph.TSConfig{}, err
		}
		cfg, err = l.load(parentPath, visited)
		if err != nil {
			return graph.TSConfig{}, err
		}
	}

	dir := filepath.Dir(abs)
	if raw.CompilerOptions.BaseURL != "" {
		cfg.BaseURL = filepath.Clean(filepath.Join(dir, raw.CompilerOptions.BaseURL))
	}

	if len(raw.CompilerOptions.Paths) > 0 {
		paths := make(map[string]string, len(raw.CompilerOptions.Paths))
		for pattern, targets := range raw.CompilerOptions.Paths {
			if len(targets) != 1 {
				panic(fmt.Sprintf("tsconfig: unsupported multi-target paths entry %q in %s", pattern, abs))
			}
			paths[pattern] = targets[0]
		}
		cfg.Paths = paths
	}

	return cfg, nil
}

func readRaw(abs string) (rawFile, error) {
	data, err := os.ReadFile(abs)
	if err != nil {
		return rawFile{}, err
	}

	stripped := jsonc.ToJSON(data)

	var raw rawFile
	if err := json.Unmarshal(stripped, &raw); err != nil {
		return rawFile{}, fmt.Errorf("tsconfig: parse %s: %w", abs, err)
	}
	return raw, nil
}

// resolveExtends resolves an "extends" pointer relative to the config
// that named it. Only relative file paths are supported; anything without
// a leading "." (a bare package name or an absolute path) is an
// unsupported shape.
func resolveExtends(fromAbs, extends string) (string, error) {
	if !strings.HasPrefix(extends, ".") {
		panic(fmt.Sprintf("tsconfig: unsupported non-relative extends %q in %s", extends, fromAbs))
	}

	target := extends
	if !strings.HasSuffix(target, ".json") {
		target += ".json"
	}
	return filepath.Clean(filepath.Join(filepath.Dir(fromAbs), target)), nil
}
