package canvasrenderer

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/Xavman42/neoscore/layout"
)

func sampleResult() *layout.Result {
	paper := layout.A4().Landscape()
	fill := layout.Color{R: 200}
	return &layout.Result{
		Paper: paper,
		Pages: []layout.Page{
			{
				Index: 0, Width: paper.Width.ToMM(), Height: paper.Height.ToMM(),
				Lines:   []layout.Line{{X1: 20, Y1: 30, X2: 277, Y2: 30, Width: 0.3}},
				Rects:   []layout.Rect{{X: 30, Y: 25, Width: 40, Height: 8, FillColor: &fill}},
				Circles: []layout.Circle{{CX: 50, CY: 50, R: 2}},
			},
			{Index: 1, Width: paper.Width.ToMM(), Height: paper.Height.ToMM(),
				Lines: []layout.Line{{X1: 20, Y1: 30, X2: 80, Y2: 30}}},
		},
		Meta: layout.DocumentMeta{Title: "Slurs", Creator: "neoscore", Keywords: []string{"a", "b"}},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	for _, guides := range []bool{false, true} {
		out, err := NewRenderer(Options{Guides: guides}).Render(sampleResult())
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF-")) {
			t.Fatalf("expected PDF header, got %q", out[:min(len(out), 8)])
		}
	}
}

func TestRenderRejectsEmptyResult(t *testing.T) {
	r := NewRenderer(Options{})
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
	if _, err := r.Render(&layout.Result{}); err == nil {
		t.Fatalf("expected error for result without pages")
	}
}

func TestStrokeAndFillFallbacks(t *testing.T) {
	if got := strokeWidth(0); got != fallbackStrokeWidth {
		t.Fatalf("expected fallback stroke width, got %g", got)
	}
	if got := strokeWidth(1.5); got != 1.5 {
		t.Fatalf("expected explicit stroke width, got %g", got)
	}
	if got := fillColor(nil); got != (color.RGBA{}) {
		t.Fatalf("expected transparent fill, got %v", got)
	}
	want := color.RGBA{R: 1, G: 2, B: 3, A: 0xff}
	if got := fillColor(&layout.Color{R: 1, G: 2, B: 3}); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
