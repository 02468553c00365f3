// Package cli implements the tsreach command: it wires the external
// collaborators (internal/scan, internal/tsconfig, internal/visitor)
// into an internal/graph.Index and then either answers a single
// reachability query or drops into a REPL.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oskari/tsreach/internal/diag"
	"github.com/oskari/tsreach/internal/graph"
	"github.com/oskari/tsreach/internal/scan"
	"github.com/oskari/tsreach/internal/tsconfig"
	"github.com/oskari/tsreach/internal/visitor"
)

// Options contains CLI configuration, gathered from cobra/pflag flags in
// cmd/tsreach.
type Options struct {
	SearchPaths         []string
	TSConfigPath        string
	File                string
	Direction           string
	MaxDepth            uint
	DumpResolvedImports string
	Verbose             bool
	Quiet               bool
	NoColor             bool
}

// Run builds the module index from opts and either answers one
// reachability query (opts.File set) or starts the REPL. Returns a
// process exit code.
func Run(opts *Options) int {
	logger := diag.New(os.Stderr, opts.Verbose)

	idx, diags, err := buildIndex(opts, logger)
	if err != nil {
		printError(err, opts.NoColor)
		return 2
	}

	logger.VisitorDiagnostics(diags.VisitorErrors)
	logger.ResolutionErrors(resolutionMessages(diags.ResolutionErrors))

	if opts.DumpResolvedImports != "" {
		if err := dumpResolvedImports(opts.DumpResolvedImports, idx); err != nil {
			printError(err, opts.NoColor)
			return 2
		}
	}

	if opts.File == "" {
		return runREPL(os.Stdin, os.Stdout, idx, opts)
	}

	direction, err := parseDirection(opts.Direction)
	if err != nil {
		printError(err, opts.NoColor)
		return 2
	}

	paths, err := idx.ReachablePaths(opts.File, direction, opts.MaxDepth)
	if err != nil {
		printError(err, opts.NoColor)
		return 2
	}

	printResult(os.Stdout, paths, opts)
	return 0
}

func buildIndex(opts *Options, logger *diag.Logger) (*graph.Index, graph.Diagnostics, error) {
	var cfg graph.TSConfig
	if opts.TSConfigPath != "" {
		start := time.Now()
		loaded, err := tsconfig.NewLoader().Load(opts.TSConfigPath)
		if err != nil {
			return nil, graph.Diagnostics{}, fmt.Errorf("loading tsconfig: %w", err)
		}
		cfg = loaded
		logger.Phase("tsconfig", time.Since(start), nil)
	}

	scanner, err := scan.NewFileScanner(opts.SearchPaths)
	if err != nil {
		return nil, graph.Diagnostics{}, fmt.Errorf("preparing scanner: %w", err)
	}

	start := time.Now()
	files, err := scanner.Scan(opts.SearchPaths)
	if err != nil {
		return nil, graph.Diagnostics{}, fmt.Errorf("scanning: %w", err)
	}
	if len(files) == 0 {
		return nil, graph.Diagnostics{}, fmt.Errorf("no source files found under %s", strings.Join(opts.SearchPaths, ", "))
	}
	logger.Phase("scan", time.Since(start), logrus.Fields{"files": len(files)})

	start = time.Now()
	ownerImports, visitorErrors, err := extractAll(files)
	if err != nil {
		return nil, graph.Diagnostics{}, err
	}
	logger.Phase("extract", time.Since(start), logrus.Fields{"files": len(files)})

	start = time.Now()
	idx, diags, err := graph.Build(files, cfg, ownerImports, visitorErrors)
	if err != nil {
		return nil, graph.Diagnostics{}, err
	}
	logger.Phase("build", time.Since(start), logrus.Fields{"modules": idx.Store.ModuleCount()})

	return idx, diags, nil
}

// extractAll runs the Visitor over every scanned file. Each goroutine
// owns its own Visitor (and thus its own tree-sitter parser), since
// tree-sitter parsers are not safe for concurrent reuse.
func extractAll(files []string) ([]graph.OwnerImports, map[string][]string, error) {
	var (
		mu       sync.Mutex
		pairs    = make([]graph.OwnerImports, 0, len(files))
		warnings = make(map[string][]string)
	)

	eg := new(errgroup.Group)
	for _, f := range files {
		f := f
		eg.Go(func() error {
			v, err := visitor.New()
			if err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			defer v.Close()

			content, err := os.ReadFile(f)
			if err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}

			result, err := v.Extract(f, content)
			if err != nil {
				// A single unparseable file is non-fatal: skip it, keep going.
				mu.Lock()
				warnings[f] = append(warnings[f], err.Error())
				mu.Unlock()
				return nil
			}

			mu.Lock()
			pairs = append(pairs, graph.OwnerImports{OwnerPath: f, Imports: result.Imports})
			if len(result.Diagnostics) > 0 {
				warnings[f] = append(warnings[f], result.Diagnostics...)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	return pairs, warnings, nil
}

func resolutionMessages(byOwner map[string][]graph.ResolutionError) map[string][]string {
	out := make(map[string][]string, len(byOwner))
	for owner, errs := range byOwner {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		out[owner] = msgs
	}
	return out
}

// parseDirection accepts both the spelled-out and numeric spellings the
// REPL and flag both take: "dependencies"/"0" for Outgoing,
// "dependents"/"1" for Incoming.
func parseDirection(s string) (graph.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dependencies", "0":
		return graph.Outgoing, nil
	case "dependents", "1":
		return graph.Incoming, nil
	default:
		return 0, fmt.Errorf("invalid direction %q: expected \"dependencies\"/\"0\" or \"dependents\"/\"1\"", s)
	}
}

// dumpResolvedImports writes the full Alias→Module map to path, one
// "alias -> module path" line per entry, sorted by alias for a
// deterministic diff-able dump.
func dumpResolvedImports(path string, idx *graph.Index) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dumping resolved imports: %w", err)
	}
	defer f.Close()

	entries := idx.Store.Aliases()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Alias < entries[j].Alias
	})

	for _, e := range entries {
		fmt.Fprintf(f, "%s -> %s\n", e.Alias, e.ModulePath)
	}
	return nil
}

func printResult(w io.Writer, paths []string, opts *Options) {
	if opts.Quiet {
		for _, p := range paths {
			fmt.Fprintln(w, p)
		}
		return
	}
	fmt.Fprintf(w, "%d reachable module(s):\n", len(paths))
	for _, p := range paths {
		fmt.Fprintf(w, "  %s\n", p)
	}
}

// printError formats and prints an error message.
func printError(err error, noColor bool) {
	if noColor {
		fmt.Fprintf(os.Stderr, "✖ Error: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "\033[31m✖ Error:\033[0m %v\n", err)
	}
}

// printSuccess formats and prints a success message.
func printSuccess(message string, noColor bool) {
	if noColor {
		fmt.Printf("✓ %s\n", message)
	} else {
		fmt.Printf("\033[32m✓\033[0m %s\n", message)
	}
}

// runREPL implements the interactive loop: read a seed path, read a
// direction, print the reachable set, repeat until "q".
func runREPL(in io.Reader, out io.Writer, idx *graph.Index, opts *Options) int {
	printSuccess(fmt.Sprintf("index ready: %d modules", idx.Store.ModuleCount()), opts.NoColor)
	fmt.Fprintln(out, "enter a file path, then a direction (dependencies|dependents); 'q' to quit")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "path> ")
		if !scanner.Scan() {
			return 0
		}
		path := strings.TrimSpace(scanner.Text())
		if path == "q" || path == "" {
			return 0
		}

		fmt.Fprint(out, "direction (dependencies|dependents)> ")
		if !scanner.Scan() {
			return 0
		}
		dirInput := strings.TrimSpace(scanner.Text())
		if dirInput == "q" {
			return 0
		}
		direction, err := parseDirection(dirInput)
		if err != nil {
			printError(err, opts.NoColor)
			continue
		}

		paths, err := idx.ReachablePaths(path, direction, opts.MaxDepth)
		if err != nil {
			printError(err, opts.NoColor)
			continue
		}
		printResult(out, paths, opts)
	}
}
