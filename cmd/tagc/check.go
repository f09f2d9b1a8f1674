package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lhaig/tagc/internal/compiler"
	"github.com/lhaig/tagc/internal/config"
	"github.com/lhaig/tagc/internal/ir"
	"github.com/lhaig/tagc/internal/linter"
)

func checkCmd(root *rootFlags) *cobra.Command {
	var designTime bool

	cmd := &cobra.Command{
		Use:   "check <file|dir>...",
		Short: "Validate, lint and generate IR documents without writing",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("design-time") {
				cfg.Generation.DesignTime = designTime
			}
			return runCheck(cmd, cfg, args)
		},
	}

	cmd.Flags().BoolVar(&designTime, "design-time", false, "check the design-time shape")

	return cmd
}

func runCheck(cmd *cobra.Command, cfg *config.Config, args []string) error {
	out := cmd.OutOrStdout()

	paths, err := compiler.Discover(args)
	if err != nil {
		return err
	}
	results, err := compiler.CompileAll(cmd.Context(), paths, compilerOptions(cfg, cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	failed := false
	for _, res := range results {
		printDiagnostics(out, res.Path, res.Diagnostics)
		failed = failed || res.HasErrors()
	}
	if failed {
		return errFailed
	}

	success.Fprintln(out, "No errors found.")
	return nil
}

func lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <file|dir>...",
		Short: "Run lint checks on IR documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args)
		},
	}
}

func runLint(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	paths, err := compiler.Discover(args)
	if err != nil {
		return err
	}

	warnings := 0
	for _, path := range paths {
		doc, err := ir.LoadFile(path)
		if err != nil {
			return err
		}
		if problems := ir.Validate(doc); len(problems) > 0 {
			for _, problem := range problems {
				failure.Fprintf(out, "%s: %s\n", path, problem)
			}
			return errFailed
		}

		diag := linter.Lint(doc)
		printDiagnostics(out, path, diag)
		warnings += diag.WarningCount()
	}

	if warnings == 0 {
		success.Fprintln(out, "No lint warnings.")
		return nil
	}
	fmt.Fprintf(out, "%d warning(s) found.\n", warnings)
	return nil
}
