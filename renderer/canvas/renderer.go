package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/Xavman42/neoscore/layout"
	"github.com/Xavman42/neoscore/renderer"
)

// fallbackStrokeWidth 用于线宽未设置（<=0）的图形，单位 mm。
const fallbackStrokeWidth = 0.2

var guideColor = color.RGBA{R: 0x99, G: 0xcc, B: 0xff, A: 0xff}

// Renderer 使用 github.com/tdewolff/canvas 绘制布局结果。
type Renderer struct {
	opts Options
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options 是 canvas 渲染器的选项。
type Options struct {
	// Guides 为每页描出版心边框。
	Guides bool
}

// NewRenderer 创建基于 canvas 的渲染器。
func NewRenderer(opts Options) *Renderer { return &Renderer{opts: opts} }

// Render 把结果渲染为 PDF 字节。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, result.Pages[0].Width, result.Pages[0].Height, nil)
	applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(page.Width, page.Height)
		}
		c := canvas.New(page.Width, page.Height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		if r.opts.Guides {
			drawGuides(ctx, result.Paper)
		}
		drawRects(ctx, page.Rects)
		drawCircles(ctx, page.Circles)
		drawLines(ctx, page.Lines)
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

func drawGuides(ctx *canvas.Context, paper layout.Paper) {
	m := paper.Margin
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(guideColor)
	ctx.SetStrokeWidth(0.1)
	ctx.DrawPath(m.Left.ToMM(), m.Top.ToMM(), canvas.Rectangle(paper.LiveWidth().ToMM(), paper.LiveHeight().ToMM()))
}

func drawLines(ctx *canvas.Context, lines []layout.Line) {
	for _, ln := range lines {
		ctx.SetStrokeColor(colorFromLayout(ln.Color))
		ctx.SetStrokeWidth(strokeWidth(ln.Width))
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(ln.X2-ln.X1, ln.Y2-ln.Y1)
		ctx.DrawPath(ln.X1, ln.Y1, p)
	}
}

func drawRects(ctx *canvas.Context, rects []layout.Rect) {
	for _, rc := range rects {
		ctx.SetFillColor(fillColor(rc.FillColor))
		ctx.SetStrokeColor(colorFromLayout(rc.StrokeColor))
		ctx.SetStrokeWidth(strokeWidth(rc.StrokeWidth))
		ctx.DrawPath(rc.X, rc.Y, canvas.Rectangle(rc.Width, rc.Height))
	}
}

func drawCircles(ctx *canvas.Context, circles []layout.Circle) {
	for _, c := range circles {
		ctx.SetFillColor(fillColor(c.FillColor))
		ctx.SetStrokeColor(colorFromLayout(c.StrokeColor))
		ctx.SetStrokeWidth(strokeWidth(c.StrokeWidth))
		ctx.DrawPath(c.CX, c.CY, canvas.Circle(c.R))
	}
}

func strokeWidth(w float64) float64 {
	if w <= 0 {
		return fallbackStrokeWidth
	}
	return w
}

func fillColor(c *layout.Color) color.Color {
	if c == nil {
		return canvas.Transparent
	}
	return colorFromLayout(*c)
}

func colorFromLayout(c layout.Color) color.Color {
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 0xff}
}
