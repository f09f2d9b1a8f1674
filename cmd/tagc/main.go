// Command tagc generates Go page code from tag helper IR documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

// errFailed is returned after the failing documents have been reported,
// so main only sets the exit code.
var errFailed = errors.New("tagc: failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// rootFlags are shared by every command.
type rootFlags struct {
	configPath string
	noColor    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "tagc",
		Short: "tagc - the tag helper page compiler",
		Long: `tagc turns tag helper IR documents (JSON or YAML) into Go source that
renders the page through the taghelpers runtime.

Examples:
  tagc build views/                    Generate views/*.tagc.go
  tagc build --design-time index.yaml  Emit the design-time shape
  tagc build --check views/            Fail when generated files are stale
  tagc check views/                    Validate, lint and generate without writing
  tagc dump index.yaml                 Print the IR tree`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.noColor {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is ./tagc.yaml)")
	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")

	root.AddCommand(buildCmd(flags))
	root.AddCommand(checkCmd(flags))
	root.AddCommand(lintCmd())
	root.AddCommand(dumpCmd())
	root.AddCommand(fmtCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(versionCmd())

	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tagc %s\n", version)
		},
	}
}
