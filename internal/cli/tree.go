package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Xavman42/neoscore/layout"
)

func newTreeCmd() *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the object tree with logical and document positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, _, err := loadScene(cmd.Context(), args[0], data)
			if err != nil {
				return err
			}
			if _, err := scene.Render(); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return printTree(cmd.OutOrStdout(), scene.Document)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "JSON data file")
	return cmd
}

func printTree(w io.Writer, d *layout.Document) error {
	for _, n := range d.Snapshot() {
		label := n.Name
		if label == "" {
			label = fmt.Sprintf("#%d", n.ID)
		}
		line := fmt.Sprintf("%s%s [%s] at %s", strings.Repeat("  ", n.Depth), label, n.Role, n.Position)
		if n.CanvasPosition != nil {
			line += fmt.Sprintf(" -> %s", *n.CanvasPosition)
		}
		if n.Segments > 0 {
			line += fmt.Sprintf(" %s x%d", n.State, n.Segments)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
