package layout

import (
	"fmt"
	"strings"
)

// Margin 以毫米为单位。
type Margin struct {
	Top    Length `json:"top"`
	Right  Length `json:"right"`
	Bottom Length `json:"bottom"`
	Left   Length `json:"left"`
}

// UniformMargin 四边相同。
func UniformMargin(v Length) Margin { return Margin{Top: v, Right: v, Bottom: v, Left: v} }

// MarginFromValues 采用 CSS 语义：
// 1 个值：四边相同；2 个值：上下、左右；3 个值：上、右、下，左为 0；
// 4 个及以上：上、右、下、左（多余的忽略）。
func MarginFromValues(vals []Length) Margin {
	switch len(vals) {
	case 0:
		return Margin{}
	case 1:
		return UniformMargin(vals[0])
	case 2:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}
	case 3:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2]}
	default:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
	}
}

// Paper 描述纸张尺寸、边距以及页与页之间的水平间隔（gutter）。
// 所有页面在文档空间中从左到右依次排列。
type Paper struct {
	Width  Length `json:"width"`
	Height Length `json:"height"`
	Margin Margin `json:"margin"`
	Gutter Length `json:"gutter"`
}

var paperPresets = map[string][2]float64{
	"A3":     {297, 420},
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
	"LEGAL":  {215.9, 355.6},
}

// DefaultMargin 是预设纸张的默认边距。
const DefaultMargin Length = 20

// PaperPreset 返回预设纸张（纵向，默认 20mm 边距）。
func PaperPreset(name string) (Paper, error) {
	base, ok := paperPresets[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Paper{}, newError(CodeInvalidArgument, "暂不支持的纸张尺寸：%s", name)
	}
	return Paper{
		Width:  Mm(base[0]),
		Height: Mm(base[1]),
		Margin: UniformMargin(DefaultMargin),
	}, nil
}

// A4 是默认纸张。
func A4() Paper {
	p, _ := PaperPreset("A4")
	return p
}

// Landscape 交换宽高。
func (p Paper) Landscape() Paper {
	p.Width, p.Height = p.Height, p.Width
	return p
}

// LiveWidth 返回版心宽度。
func (p Paper) LiveWidth() Length { return p.Width - p.Margin.Left - p.Margin.Right }

// LiveHeight 返回版心高度。
func (p Paper) LiveHeight() Length { return p.Height - p.Margin.Top - p.Margin.Bottom }

// Validate 拒绝没有可用版心的纸张。
func (p Paper) Validate() error {
	if p.LiveWidth() <= 0 || p.LiveHeight() <= 0 {
		return newError(CodeInvalidArgument, "纸张 %sx%s 在边距 %+v 下没有版心", p.Width, p.Height, p.Margin)
	}
	if p.Gutter < 0 {
		return newError(CodeInvalidArgument, "gutter 不能为负：%s", p.Gutter)
	}
	return nil
}

// Paper 返回文档各页使用的纸张。
func (d *Document) Paper() Paper { return d.paper }

// PageOrigin 返回第 i 页纸张左上角在文档空间中的位置。
func (d *Document) PageOrigin(i int) Point {
	return Point{X: Length(i) * (d.paper.Width + d.paper.Gutter)}
}

// Page 返回第 i 页的节点，按需创建它及之前的页面。页面位置即其版心原点。
func (d *Document) Page(i int) (NodeID, error) {
	if i < 0 {
		return NoParent, newError(CodeInvalidArgument, "页码不能为负：%d", i)
	}
	for len(d.pages) <= i {
		idx := len(d.pages)
		pos := d.PageOrigin(idx).Add(Point{X: d.paper.Margin.Left, Y: d.paper.Margin.Top})
		n, err := d.newNode(RolePage, RootID, pos)
		if err != nil {
			return NoParent, err
		}
		n.pageIndex = idx
		n.name = fmt.Sprintf("page%d", idx)
		d.names[n.name] = n.id
		d.pages = append(d.pages, n.id)
	}
	return d.pages[i], nil
}

// Pages 按顺序返回已创建的页面。
func (d *Document) Pages() []NodeID {
	out := make([]NodeID, len(d.pages))
	copy(out, d.pages)
	return out
}

// PageIndex 返回页面节点的页码。
func (d *Document) PageIndex(id NodeID) (int, bool) {
	n, err := d.node(id)
	if err != nil || n.role != RolePage {
		return 0, false
	}
	return n.pageIndex, true
}

// PageIndexAt 返回文档空间中 x 坐标所在的页（落在 gutter 中时归入左侧页面）。
func (d *Document) PageIndexAt(p Point) int {
	stride := d.paper.Width + d.paper.Gutter
	if stride <= 0 || p.X < 0 {
		return 0
	}
	return int(p.X / stride)
}
