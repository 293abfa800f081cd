package layout

// Collector 接收各 Painter 在文档空间中的绘制调用，按页面归类并转换为页面坐标。
type Collector struct {
	doc   *Document
	meta  DocumentMeta
	pages map[int]*pageAccumulator
}

type pageAccumulator struct {
	lines   []Line
	rects   []Rect
	circles []Circle
}

// NewCollector 创建与文档绑定的收集器。
func NewCollector(doc *Document, meta DocumentMeta) *Collector {
	return &Collector{doc: doc, meta: meta, pages: map[int]*pageAccumulator{}}
}

// Reset 清空已收集的图形，重新渲染前调用。
func (c *Collector) Reset() {
	c.pages = map[int]*pageAccumulator{}
}

// toPage 将文档坐标转换为所在页面的页面坐标（mm）。
func (c *Collector) toPage(p Point) (*pageAccumulator, float64, float64) {
	idx := c.doc.PageIndexAt(p)
	local := p.Sub(c.doc.PageOrigin(idx))
	acc, ok := c.pages[idx]
	if !ok {
		acc = &pageAccumulator{}
		c.pages[idx] = acc
	}
	return acc, local.X.ToMM(), local.Y.ToMM()
}

func (c *Collector) AddLine(start, stop Point, st Style) {
	acc, x1, y1 := c.toPage(start)
	d := stop.Sub(start)
	acc.lines = append(acc.lines, Line{
		X1: x1, Y1: y1,
		X2: x1 + d.X.ToMM(), Y2: y1 + d.Y.ToMM(),
		Color: st.Stroke,
		Width: st.StrokeWidth.ToMM(),
	})
}

func (c *Collector) AddRect(topLeft Point, w, h Length, st Style) {
	acc, x, y := c.toPage(topLeft)
	acc.rects = append(acc.rects, Rect{
		X: x, Y: y,
		Width: w.ToMM(), Height: h.ToMM(),
		StrokeColor: st.Stroke,
		StrokeWidth: st.StrokeWidth.ToMM(),
		FillColor:   st.Fill,
	})
}

func (c *Collector) AddCircle(center Point, r Length, st Style) {
	acc, x, y := c.toPage(center)
	acc.circles = append(acc.circles, Circle{
		CX: x, CY: y, R: r.ToMM(),
		StrokeColor: st.Stroke,
		StrokeWidth: st.StrokeWidth.ToMM(),
		FillColor:   st.Fill,
	})
}

// Result 汇总所有页面（包括没有图形的页面）与各节点最近一次渲染的分段。
func (c *Collector) Result() *Result {
	d := c.doc
	res := &Result{Paper: d.paper, Meta: c.meta, Nodes: d.Snapshot()}
	count := len(d.pages)
	for idx := range c.pages {
		count = max(count, idx+1)
	}
	for i := 0; i < count; i++ {
		page := Page{Index: i, Width: d.paper.Width.ToMM(), Height: d.paper.Height.ToMM()}
		if acc, ok := c.pages[i]; ok {
			page.Lines, page.Rects, page.Circles = acc.lines, acc.rects, acc.circles
		}
		res.Pages = append(res.Pages, page)
	}
	for id := range d.Descendants(RootID) {
		n := d.nodes[id]
		if len(n.interfaces) == 0 {
			continue
		}
		for _, in := range n.interfaces {
			res.Segments = append(res.Segments, SegmentRecord{Name: n.name, State: n.state, Interface: in})
		}
	}
	return res
}

// LinePainter 绘制水平线段；跨行时每一段从 start 画到 stop。
type LinePainter struct {
	Collector *Collector
	Width     Length
	Style     Style
}

var _ SegmentPainter = (*LinePainter)(nil)

func (p *LinePainter) RenderComplete(pos Point) error {
	p.Collector.AddLine(pos, pos.Add(Point{X: p.Width}), p.Style)
	return nil
}

func (p *LinePainter) RenderBeforeBreak(_ Length, start, stop Point) error {
	p.Collector.AddLine(start, stop, p.Style)
	return nil
}

func (p *LinePainter) RenderSpanningContinuation(_ Length, start, stop Point) error {
	p.Collector.AddLine(start, stop, p.Style)
	return nil
}

func (p *LinePainter) RenderAfterBreak(_ Length, start, stop Point) error {
	p.Collector.AddLine(start, stop, p.Style)
	return nil
}

// RectPainter 绘制矩形；跨行时每一段绘制与该段等宽的矩形。
type RectPainter struct {
	Collector *Collector
	Width     Length
	Height    Length
	Style     Style
}

var _ SegmentPainter = (*RectPainter)(nil)

func (p *RectPainter) RenderComplete(pos Point) error {
	p.Collector.AddRect(pos, p.Width, p.Height, p.Style)
	return nil
}

func (p *RectPainter) segment(start, stop Point) error {
	p.Collector.AddRect(start, stop.X-start.X, p.Height, p.Style)
	return nil
}

func (p *RectPainter) RenderBeforeBreak(_ Length, start, stop Point) error {
	return p.segment(start, stop)
}

func (p *RectPainter) RenderSpanningContinuation(_ Length, start, stop Point) error {
	return p.segment(start, stop)
}

func (p *RectPainter) RenderAfterBreak(_ Length, start, stop Point) error {
	return p.segment(start, stop)
}

// CirclePainter 只能整体绘制，圆心位于节点位置。
type CirclePainter struct {
	Collector *Collector
	Radius    Length
	Style     Style
}

func (p *CirclePainter) RenderComplete(pos Point) error {
	p.Collector.AddCircle(pos, p.Radius, p.Style)
	return nil
}
