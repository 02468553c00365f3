// Package scan discovers the TypeScript/JavaScript source files a
// reachability query should consider, walking one or more root paths and
// honoring .gitignore exclusions.
package scan

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// validExtensions are the source extensions recognized by the scanner,
// matching internal/graph's supportedExtensions set.
var validExtensions = map[string]bool{
	".ts": true, ".tsx": true, ".cts": true, ".mts": true,
	".js": true, ".jsx": true, ".cjs": true, ".mjs": true,
}

// skippedDirs are directory names never descended into, regardless of
// .gitignore content.
var skippedDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	".git":         true,
}

// FileScanner walks one or more root paths and returns the absolute,
// lexically cleaned paths of every recognized source file, honoring any
// .gitignore found at a root in addition to the fixed skip-list.
type FileScanner struct {
	ignorers []*gitignore.GitIgnore
}

// NewFileScanner loads the .gitignore file at each root, if present, and
// returns a scanner ready to walk those roots. A root with no .gitignore
// simply has no extra exclusions.
func NewFileScanner(roots []string) (*FileScanner, error) {
	s := &FileScanner{}
	for _, root := range roots {
		candidate := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		ign, err := gitignore.CompileIgnoreFile(candidate)
		if err != nil {
			return nil, err
		}
		s.ignorers = append(s.ignorers, ign)
	}
	return s, nil
}

// Scan walks every root and returns the discovered source file paths,
// absolute and lexically cleaned.
func (s *FileScanner) Scan(roots []string) ([]string, error) {
	var files []string

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}

		err = filepath.Walk(abs, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				name := info.Name()
				if path != abs && (strings.HasPrefix(name, ".") || skippedDirs[name]) {
					return filepath.SkipDir
				}
				return nil
			}

			if s.ignored(path) {
				return nil
			}

			ext := strings.ToLower(filepath.Ext(path))
			if validExtensions[ext] {
				files = append(files, filepath.Clean(path))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func (s *FileScanner) ignored(path string) bool {
	for _, ign := range s.ignorers {
		if ign.MatchesPath(path) {
			return true
		}
	}
	return false
}
