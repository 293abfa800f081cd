package layout

import (
	"errors"
	"sort"
)

// LayoutController 是 flowable frame 的一行：逻辑区间 [X, X+Length)，
// 放在第 Page 页的 Pos 处。
type LayoutController struct {
	X      Length `json:"x"`
	Length Length `json:"length"`
	Page   int    `json:"page"`
	Pos    Point  `json:"pos"` // 行起点，相对第 Page 页的版心
}

// End 返回行尾的逻辑 x。
func (c LayoutController) End() Length { return c.X + c.Length }

// FlowableFrame 是 RoleFrame 节点的能力记录。内部是一条长为
// BreakableLength 的逻辑行，按 LayoutController 序列排布到一页或多页上。
type FlowableFrame struct {
	doc         *Document
	id          NodeID
	length      Length
	lineHeight  Length
	spacing     Length
	controllers []LayoutController
}

// NewFlowableFrame 在 parent（页面或页面上的节点）之下创建 frame 并排布各行。
func (d *Document) NewFlowableFrame(parent NodeID, pos Point, length, lineHeight, spacing Length) (*FlowableFrame, error) {
	if length <= 0 || lineHeight <= 0 || spacing < 0 {
		return nil, newError(CodeInvalidArgument, "flowable frame 需要正的 length 和 height，实际 length=%s height=%s spacing=%s", length, lineHeight, spacing)
	}
	if lineHeight > d.paper.LiveHeight() {
		return nil, newError(CodeInvalidArgument, "行高 %s 超过版心高度 %s", lineHeight, d.paper.LiveHeight())
	}
	n, err := d.newNode(RoleFrame, parent, pos)
	if err != nil {
		return nil, err
	}
	f := &FlowableFrame{
		doc:        d,
		id:         n.id,
		length:     length,
		lineHeight: lineHeight,
		spacing:    spacing,
	}
	n.frame = f
	n.breakableWidth = length
	if err := f.Relayout(); err != nil {
		if derr := d.Destroy(n.id); derr != nil {
			return nil, errors.Join(err, derr)
		}
		return nil, err
	}
	return f, nil
}

// AsFrame 返回 id 的 frame 能力。
func (d *Document) AsFrame(id NodeID) (*FlowableFrame, error) {
	n, err := d.node(id)
	if err != nil {
		return nil, err
	}
	if n.role != RoleFrame {
		return nil, newError(CodeInvalidArgument, "节点 %d 是 %s，不是 flowable frame", id, n.role)
	}
	return n.frame, nil
}

func (f *FlowableFrame) ID() NodeID              { return f.id }
func (f *FlowableFrame) BreakableLength() Length { return f.length }
func (f *FlowableFrame) LineHeight() Length      { return f.lineHeight }
func (f *FlowableFrame) Spacing() Length         { return f.spacing }

// Controllers 返回行表的副本。
func (f *FlowableFrame) Controllers() []LayoutController {
	out := make([]LayoutController, len(f.controllers))
	copy(out, f.controllers)
	return out
}

// LayoutEnd 返回最后一行行尾的逻辑 x。
func (f *FlowableFrame) LayoutEnd() Length {
	if len(f.controllers) == 0 {
		return 0
	}
	return f.controllers[len(f.controllers)-1].End()
}

// startPage 返回 frame 所在页及其相对该页版心的位置。
func (f *FlowableFrame) startPage() (int, Point, error) {
	d := f.doc
	pageID, ok := d.FirstAncestorWithRole(f.id, RolePage)
	if !ok {
		return 0, Origin, newError(CodeInvalidArgument, "flowable frame %d 不在任何页面上", f.id)
	}
	pos, err := d.DescendantPosition(f.id, pageID)
	if err != nil {
		return 0, Origin, err
	}
	return d.nodes[pageID].pageIndex, pos, nil
}

// Relayout 根据 frame 所在页、位置和尺寸重新计算行表。每行宽度为 frame
// 右侧的版心宽度，最后一行截到剩余长度；越过版心底部的行移到下一页顶部。
func (f *FlowableFrame) Relayout() error {
	d := f.doc
	page, origin, err := f.startPage()
	if err != nil {
		return err
	}
	lineLen := d.paper.LiveWidth() - origin.X
	if lineLen <= 0 {
		return newError(CodeInvalidArgument, "flowable frame %d 起点在版心右侧（x=%s）", f.id, origin.X)
	}
	var cs []LayoutController
	y := origin.Y
	for x := Length(0); f.length-x > lengthEpsilon; {
		if len(cs) > 0 {
			y += f.lineHeight + f.spacing
			if y+f.lineHeight > d.paper.LiveHeight() {
				page++
				y = 0
			}
		}
		l := lineLen
		if f.length-x <= lineLen+lengthEpsilon {
			// 最后一行吸收累加误差，行表恰好止于 f.length
			l = f.length - x
		}
		cs = append(cs, LayoutController{X: x, Length: l, Page: page, Pos: Point{X: origin.X, Y: y}})
		x += l
	}
	if _, err := d.Page(page); err != nil {
		return err
	}
	f.controllers = cs
	tracer().Debugf("frame %d laid out in %d lines over pages %d..%d", f.id, len(cs), cs[0].Page, page)
	return nil
}

// SetControllers 替换行表。各行须从 0 开始、首尾相接且长度为正。
// 之后调用 Relayout 会恢复自动排布。
func (f *FlowableFrame) SetControllers(cs []LayoutController) error {
	if len(cs) == 0 {
		return newError(CodeInvalidArgument, "flowable frame %d 至少需要一行", f.id)
	}
	next := Length(0)
	maxPage := 0
	for i, c := range cs {
		if c.Length <= 0 {
			return newError(CodeInvalidArgument, "第 %d 行长度不是正数：%s", i, c.Length)
		}
		if c.X != next {
			return newError(CodeInvalidArgument, "第 %d 行起点为 %s，应为 %s", i, c.X, next)
		}
		if c.Page < 0 {
			return newError(CodeInvalidArgument, "第 %d 行页码为负：%d", i, c.Page)
		}
		next = c.End()
		maxPage = max(maxPage, c.Page)
	}
	if _, err := f.doc.Page(maxPage); err != nil {
		return err
	}
	f.controllers = make([]LayoutController, len(cs))
	copy(f.controllers, cs)
	return nil
}

// LastBreakIndexAt 返回起点不大于 x 的最后一行的下标，首行之前按第 0 行算。
func (f *FlowableFrame) LastBreakIndexAt(x Length) int {
	i := sort.Search(len(f.controllers), func(i int) bool { return f.controllers[i].X > x })
	if i == 0 {
		return 0
	}
	return i - 1
}

// DistanceToLineEnd 返回 x 减去所在行行尾。行内为零或负数，最后一行之后为正。
func (f *FlowableFrame) DistanceToLineEnd(x Length) Length {
	if len(f.controllers) == 0 {
		return x
	}
	return x - f.controllers[f.LastBreakIndexAt(x)].End()
}

// MapLocalToDocument 按所在页和行把 frame 局部坐标映射到文档空间。
// 超出最后一行的点沿最后一行延伸。
func (f *FlowableFrame) MapLocalToDocument(p Point) (Point, error) {
	if len(f.controllers) == 0 {
		return Origin, newError(CodeInvalidArgument, "flowable frame %d 没有行", f.id)
	}
	c := f.controllers[f.LastBreakIndexAt(p.X)]
	pageID, err := f.doc.Page(c.Page)
	if err != nil {
		return Origin, err
	}
	return f.doc.nodes[pageID].pos.Add(c.Pos).Add(Point{X: p.X - c.X, Y: p.Y}), nil
}
