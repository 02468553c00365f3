package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oskari/tsreach/internal/cli"
)

const version = "0.1.0"

func main() {
	opts := &cli.Options{}

	root := &cobra.Command{
		Use:     "tsreach [search_paths...]",
		Short:   "Query module reachability across a TypeScript/JavaScript project",
		Version: version,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SearchPaths = args
			os.Exit(cli.Run(opts))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("tsreach %s\n", version))

	flags := root.Flags()
	flags.StringVarP(&opts.TSConfigPath, "tsconfig-path", "p", "", "path to a tsconfig.json to resolve baseUrl/paths against")
	flags.StringVarP(&opts.File, "file", "f", "", "seed file to query; omit to start the interactive REPL")
	flags.StringVarP(&opts.Direction, "direction", "d", "dependencies", "traversal direction: dependencies or dependents")
	flags.UintVarP(&opts.MaxDepth, "max-depth", "m", 0, "maximum traversal depth (0 = unbounded)")
	flags.StringVar(&opts.DumpResolvedImports, "dump-resolved-imports", "", "write the full resolved Alias→Module map to this path before querying")
	flags.BoolVarP(&opts.Verbose, "verbose", "V", false, "enable diagnostic logging")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "print only the reachable paths, one per line")
	flags.BoolVar(&opts.NoColor, "no-color", false, "disable ANSI color in output")
	_ = root.MarkFlagRequired("tsconfig-path")

	if err := root.Execute(); err != nil {
		os.Exit(2)
	}
}
