package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lhaig/tagc/internal/backend"
	"github.com/lhaig/tagc/internal/codegen"
	"github.com/lhaig/tagc/internal/compiler"
	"github.com/lhaig/tagc/internal/config"
	"github.com/lhaig/tagc/internal/observability"
)

type buildFlags struct {
	designTime bool
	stableIDs  bool
	outDir     string
	check      bool
	workers    int
}

func buildCmd(root *rootFlags) *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build [flags] <file|dir>...",
		Short: "Generate Go source for IR documents",
		Long: `Generate one <name>.tagc.go file per IR document. Directories are
searched for .json, .yaml and .yml documents.

With --check nothing is written: documents whose generated file is
missing or out of date are reported with a line diff and the command fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			applyBuildFlags(cmd, cfg, flags)
			return runBuild(cmd, cfg, flags.check, args)
		},
	}

	cmd.Flags().BoolVar(&flags.designTime, "design-time", false, "emit the design-time shape instead of runtime code")
	cmd.Flags().BoolVar(&flags.stableIDs, "stable-ids", false, "number tag occurrences per document for reproducible output")
	cmd.Flags().StringVarP(&flags.outDir, "out", "o", "", "output directory (default: next to each document)")
	cmd.Flags().BoolVar(&flags.check, "check", false, "compare with the files on disk instead of writing")
	cmd.Flags().IntVarP(&flags.workers, "workers", "j", 0, "documents generated in parallel (default from config)")

	return cmd
}

// applyBuildFlags lets explicitly set flags win over the configuration.
func applyBuildFlags(cmd *cobra.Command, cfg *config.Config, flags *buildFlags) {
	if cmd.Flags().Changed("design-time") {
		cfg.Generation.DesignTime = flags.designTime
	}
	if cmd.Flags().Changed("stable-ids") {
		cfg.Generation.StableIDs = flags.stableIDs
	}
	if cmd.Flags().Changed("out") {
		cfg.Output.Dir = flags.outDir
	}
	if flags.workers > 0 {
		cfg.Generation.Workers = flags.workers
	}
}

func compilerOptions(cfg *config.Config, w io.Writer) compiler.Options {
	symbols := codegen.DefaultSymbols()
	symbols.Receiver = cfg.Generation.Receiver

	return compiler.Options{
		Backend: backend.ForMode(cfg.Generation.DesignTime, backend.Options{
			Symbols:       symbols,
			RuntimeImport: cfg.Generation.RuntimeImport,
			StableIDs:     cfg.Generation.StableIDs,
		}),
		OutDir:  cfg.Output.Dir,
		Suffix:  cfg.Output.Suffix,
		Format:  cfg.Output.Format,
		Workers: cfg.Generation.Workers,
		Logger:  observability.NewLogger(w, cfg.Logging),
	}
}

func runBuild(cmd *cobra.Command, cfg *config.Config, check bool, args []string) error {
	out := cmd.OutOrStdout()

	paths, err := compiler.Discover(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no IR documents found in %v", args)
	}

	results, err := compiler.CompileAll(cmd.Context(), paths, compilerOptions(cfg, cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	failed, stale := 0, 0
	for _, res := range results {
		printDiagnostics(out, res.Path, res.Diagnostics)
		if res.HasErrors() {
			failed++
			continue
		}

		if check {
			diff, isStale, err := compiler.Stale(res)
			if err != nil {
				return err
			}
			if isStale {
				stale++
				printStale(out, res.OutPath, diff)
			}
			continue
		}

		n, err := compiler.Write(res)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s (%s)\n", res.OutPath, humanize.Bytes(uint64(n)))
	}

	switch {
	case failed > 0:
		failure.Fprintf(out, "%d of %d document(s) failed.\n", failed, len(results))
		return errFailed
	case stale > 0:
		failure.Fprintf(out, "%d of %d generated file(s) out of date.\n", stale, len(results))
		return errFailed
	case check:
		success.Fprintf(out, "%d generated file(s) up to date.\n", len(results))
	}
	return nil
}
