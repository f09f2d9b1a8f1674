package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lhaig/tagc/internal/compiler"
	"github.com/lhaig/tagc/internal/formatter"
)

func fmtCmd() *cobra.Command {
	var write, list bool

	cmd := &cobra.Command{
		Use:   "fmt [flags] <file|dir>...",
		Short: "Rewrite IR documents in canonical form",
		Long: `Print IR documents in canonical form. With -w the files are rewritten
in place; with -l only the names of files that are not canonical are
printed and the command fails when there are any.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, write, list)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result to the source file")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list files whose formatting differs")

	return cmd
}

func runFmt(cmd *cobra.Command, args []string, write, list bool) error {
	out := cmd.OutOrStdout()

	paths, err := compiler.Discover(args)
	if err != nil {
		return err
	}

	differ := 0
	for _, path := range paths {
		formatted, changed, err := formatter.File(path)
		if err != nil {
			return err
		}
		switch {
		case list:
			if changed {
				differ++
				fmt.Fprintln(out, path)
			}
		case write:
			if changed {
				if err := os.WriteFile(path, formatted, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
			}
		default:
			fmt.Fprint(out, string(formatted))
		}
	}

	if differ > 0 {
		return errFailed
	}
	return nil
}
