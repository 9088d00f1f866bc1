// Command derive-ord generates total-order comparison functions for Go types
// annotated with //derive:ord.
//
// Usage:
//
//	derive-ord [flags] [paths...]
//
// Each path is a Go file or a directory. With no paths the current directory
// is used. It is typically run from a go:generate line:
//
//	//go:generate derive-ord $GOFILE
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amp-labs/amp-derive/build"
	"github.com/amp-labs/amp-derive/config"
	"github.com/amp-labs/amp-derive/errors"
	"github.com/amp-labs/amp-derive/generate"
	"github.com/amp-labs/amp-derive/logger"
	"github.com/spf13/cobra"
)

// buildInfo may be set to a JSON build.Info with
// -ldflags "-X main.buildInfo=...".
var buildInfo string //nolint:gochecknoglobals

type flags struct {
	configPath  string
	suffix      string
	comparePkg  string
	workers     int
	dryRun      bool
	noUnify     bool
	metricsFile string
}

func newRootCmd() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:   "derive-ord [paths...]",
		Short: "Generate three-way comparisons for //derive:ord types",
		Long: `derive-ord reads Go files, finds structs annotated with //derive:ord and
interfaces annotated with //derive:ord Variant1, Variant2, ... and writes a
comparison for each into <file>_ord.go next to the source.

Settings come from defaults, then the --config YAML file, then DERIVE_ORD_*
environment variables, then flags.`,
		Version:       build.Current(buildInfo).String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args)
		},
	}

	fl := root.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML config file")
	fl.StringVar(&f.suffix, "suffix", config.DefaultSuffix, "suffix of generated files")
	fl.StringVar(&f.comparePkg, "compare-pkg", config.DefaultComparePkg, "import path of the compare package")
	fl.IntVar(&f.workers, "workers", 0, "number of files processed concurrently (default GOMAXPROCS)")
	fl.BoolVar(&f.dryRun, "dry-run", false, "report what would be written without writing")
	fl.BoolVar(&f.noUnify, "no-unify-fieldless", false, "give every fieldless variant its own case")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus counters to this file after the run")

	return root
}

func run(cmd *cobra.Command, f flags, args []string) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}

	fl := cmd.Flags()

	if fl.Changed("suffix") {
		cfg.Suffix = f.suffix
	}

	if fl.Changed("compare-pkg") {
		cfg.ComparePackage = f.comparePkg
	}

	if fl.Changed("workers") {
		cfg.Workers = f.workers
	}

	if fl.Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}

	if fl.Changed("no-unify-fieldless") {
		cfg.UnifyFieldless = !f.noUnify
	}

	gen, err := generate.New(cfg)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	var errs errors.Collection

	// Run reports what it wrote even when some files fail.
	report, err := gen.Run(cmd.Context(), args)
	errs.Add(err)

	if report != nil {
		for _, path := range report.Written {
			if cfg.DryRun {
				fmt.Fprintln(cmd.OutOrStdout(), "would write", path)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			}
		}
	}

	if f.metricsFile != "" {
		errs.Add(gen.WriteMetrics(f.metricsFile))
	}

	return errs.GetError()
}

func main() {
	logger.ConfigureLogging("derive-ord")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
