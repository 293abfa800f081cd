package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Xavman42/neoscore/layout"
	canvasrenderer "github.com/Xavman42/neoscore/renderer/canvas"
)

type renderOpts struct {
	output string // PDF path, defaults to the scene path with .pdf
	data   string // JSON file feeding ${...} placeholders
	debug  string // optional JSON dump of the painted result
	guides bool
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a scene file to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PDF path")
	cmd.Flags().StringVar(&opts.data, "data", "", "JSON data file")
	cmd.Flags().StringVar(&opts.debug, "debug", "", "write the painted result as JSON")
	cmd.Flags().BoolVar(&opts.guides, "guides", false, "outline the live area of each page")
	return cmd
}

func runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	scene, cfg, err := loadScene(ctx, path, opts.data)
	if err != nil {
		return err
	}
	res, err := scene.Render()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	for _, seg := range res.Segments {
		if seg.State == layout.OutsideLayout {
			logger.Warn("object painted outside the flowable layout", "name", seg.Name, "node", seg.Node)
		}
	}

	if opts.debug != "" {
		if err := layout.WriteDebugJSON(res, opts.debug); err != nil {
			return fmt.Errorf("write debug json: %w", err)
		}
		logger.Debug("wrote debug json", "path", opts.debug)
	}

	r := canvasrenderer.NewRenderer(canvasrenderer.Options{Guides: opts.guides || cfg.Render.Guides})
	pdf, err := r.Render(res)
	if err != nil {
		return err
	}
	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".pdf"
	}
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d pages, %d segments to %s", len(res.Pages), len(res.Segments), out))
	return nil
}
