package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lhaig/tagc/internal/ir"
)

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the IR tree of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := ir.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ir.Print(doc))
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check an IR document against the schema and the tree rules",
		Long: `Check an IR document against the embedded JSON schema, then against
the structural rules the generator relies on (tag helper nesting, bound
attributes, field names).

Examples:
  tagc validate index.yaml
  tagc validate views/home.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read IR document: %w", err)
	}

	doc, err := ir.Decode(data, ir.FormatForPath(path))
	var schemaErr *ir.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		failure.Fprintf(out, "IR document does not match the schema (%s)\n", path)
		for _, problem := range schemaErr.Problems {
			failure.Fprintf(out, "  - %s\n", problem)
		}
		return errFailed
	case err != nil:
		return fmt.Errorf("%s: %w", path, err)
	}

	if problems := ir.Validate(doc); len(problems) > 0 {
		failure.Fprintf(out, "IR document is malformed (%s)\n", path)
		for _, problem := range problems {
			failure.Fprintf(out, "  - %s\n", problem)
		}
		return errFailed
	}

	success.Fprintf(out, "IR document is valid (%s)\n", path)
	return nil
}
