package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Xavman42/neoscore/layout"
)

func newMapCmd() *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "map [file] [src] [dst]",
		Short: "Print the position of dst relative to src",
		Long:  "Nodes are addressed by name. Pages are named page0, page1, ... and the document root is root.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, _, err := loadScene(cmd.Context(), args[0], data)
			if err != nil {
				return err
			}
			d := scene.Document
			src, err := resolveNode(d, args[1])
			if err != nil {
				return err
			}
			dst, err := resolveNode(d, args[2])
			if err != nil {
				return err
			}
			p, err := d.MapBetween(src, dst)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), p)
			return err
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "JSON data file")
	return cmd
}

func resolveNode(d *layout.Document, name string) (layout.NodeID, error) {
	if name == "root" {
		return d.Root(), nil
	}
	id, ok := d.Lookup(name)
	if !ok {
		return layout.NoParent, fmt.Errorf("no node named %q", name)
	}
	return id, nil
}
