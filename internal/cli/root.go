// Package cli implements the neoscore command-line interface.
//
// # Commands
//
//   - render: build a scene file and write it as PDF
//   - tree: print the positioned-object tree of a scene
//   - map: print the offset between two named nodes
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels in the command's context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the neoscore CLI.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Log output goes to logOut.
func NewRootCommand(logOut io.Writer) *cobra.Command {
	var verbose bool
	var configPath string

	root := &cobra.Command{
		Use:          "neoscore",
		Short:        "neoscore lays out positioned objects across pages and flowable lines",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(logOut, level))
			ctx = withConfigPath(ctx, configPath)
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("neoscore %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML configuration file")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newTreeCmd())
	root.AddCommand(newMapCmd())
	return root
}
