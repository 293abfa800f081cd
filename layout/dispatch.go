package layout

import (
	"fmt"

	"github.com/google/uuid"
)

// Painter 整体绘制节点，pos 为文档空间坐标。
type Painter interface {
	RenderComplete(pos Point) error
}

// SegmentPainter 还能绘制在 flowable frame 中跨行拆开的片段。localStartX
// 是该片段之前已占用的可拆分宽度；start、stop 为文档空间坐标。
type SegmentPainter interface {
	Painter
	RenderBeforeBreak(localStartX Length, start, stop Point) error
	RenderSpanningContinuation(localStartX Length, start, stop Point) error
	RenderAfterBreak(localStartX Length, start, stop Point) error
}

// SegmentKind 指明片段交给哪个绘制回调。
type SegmentKind int

const (
	SegmentComplete SegmentKind = iota
	SegmentBeforeBreak
	SegmentSpanningContinuation
	SegmentAfterBreak
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentBeforeBreak:
		return "before-break"
	case SegmentSpanningContinuation:
		return "spanning-continuation"
	case SegmentAfterBreak:
		return "after-break"
	default:
		return "complete"
	}
}

func (k SegmentKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// DispatchState 是节点绘制方式的规划结果。
type DispatchState int

const (
	// NotInFlowable：上方没有 frame，整体绘制一次。
	NotInFlowable DispatchState = iota
	// FitsEntirelyInOneLine：节点在所在行结束前结束。
	FitsEntirelyInOneLine
	// SpansMultipleLines：节点在一个或多个行尾处拆开。
	SpansMultipleLines
	// OutsideLayout：起点在最后一行之后，或在最后一行溢出且无处再拆。
	// 按映射位置整体绘制。
	OutsideLayout
)

func (s DispatchState) String() string {
	switch s {
	case FitsEntirelyInOneLine:
		return "fits-in-line"
	case SpansMultipleLines:
		return "spans-lines"
	case OutsideLayout:
		return "outside-layout"
	default:
		return "not-in-flowable"
	}
}

func (s DispatchState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Interface 记录节点的一个已分派片段。Handle 由节点和片段序号生成，
// 布局不变时重复渲染得到相同结果。
type Interface struct {
	Handle      uuid.UUID   `json:"handle"`
	Node        NodeID      `json:"node"`
	Kind        SegmentKind `json:"kind"`
	LocalStartX Length      `json:"localStartX"`
	Start       Point       `json:"start"`
	Stop        Point       `json:"stop"`
}

// Length 返回片段的水平宽度。
func (i Interface) Length() Length { return i.Stop.X - i.Start.X }

var handleNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("neoscore/layout/interface"))

func segmentHandle(id NodeID, index int) uuid.UUID {
	return uuid.NewSHA1(handleNamespace, []byte(fmt.Sprintf("%d/%d", id, index)))
}

type planner struct {
	id   NodeID
	segs []Interface
}

func (p *planner) add(kind SegmentKind, local Length, start, stop Point) {
	p.segs = append(p.segs, Interface{
		Handle:      segmentHandle(p.id, len(p.segs)),
		Node:        p.id,
		Kind:        kind,
		LocalStartX: local,
		Start:       start,
		Stop:        stop,
	})
}

// Plan 计算 id 会被拆成哪些片段，不实际绘制。
func (d *Document) Plan(id NodeID) (DispatchState, []Interface, error) {
	n, err := d.node(id)
	if err != nil {
		return NotInFlowable, nil, err
	}
	w := n.breakableWidth
	p := &planner{id: id}
	whole := func(state DispatchState) (DispatchState, []Interface, error) {
		pos, err := d.MapFromOrigin(id)
		if err != nil {
			return state, nil, err
		}
		p.add(SegmentComplete, 0, pos, pos.Add(Point{X: w}))
		return state, p.segs, nil
	}

	f, ok := d.EnclosingFrame(id)
	if !ok {
		return whole(NotInFlowable)
	}
	local, err := d.DescendantPosition(id, f.id)
	if err != nil {
		return NotInFlowable, nil, err
	}
	cs := f.controllers
	dist := f.DistanceToLineEnd(local.X)
	first := f.LastBreakIndexAt(local.X)
	remaining := w + dist
	switch {
	case dist > 0:
		tracer().Errorf("节点 %d 起点 %s 超出 frame 的排布终点 %s", id, local.X, f.LayoutEnd())
		return whole(OutsideLayout)
	case remaining <= 0:
		return whole(FitsEntirelyInOneLine)
	case first == len(cs)-1:
		tracer().Errorf("节点 %d 在 frame %d 最后一行溢出 %s", id, f.id, remaining)
		return whole(OutsideLayout)
	}

	start, err := f.MapLocalToDocument(local)
	if err != nil {
		return SpansMultipleLines, nil, err
	}
	p.add(SegmentBeforeBreak, 0, start, start.Add(Point{X: -dist}))

	i := first + 1
	for ; i < len(cs)-1 && remaining > cs[i].Length; i++ {
		start, err = f.MapLocalToDocument(Point{X: cs[i].X, Y: local.Y})
		if err != nil {
			return SpansMultipleLines, nil, err
		}
		p.add(SegmentSpanningContinuation, w-remaining, start, start.Add(Point{X: cs[i].Length}))
		remaining -= cs[i].Length
	}

	start, err = f.MapLocalToDocument(Point{X: cs[i].X, Y: local.Y})
	if err != nil {
		return SpansMultipleLines, nil, err
	}
	p.add(SegmentAfterBreak, w-remaining, start, start.Add(Point{X: remaining}))
	tracer().Debugf("节点 %d 拆为 %d 段，占第 %d..%d 行", id, len(p.segs), first, i)
	return SpansMultipleLines, p.segs, nil
}

// RenderNode 通过 painter 绘制 id，每个片段记录一个 Interface。先清除上次
// 渲染的记录；painter 出错时保留已绘制片段的记录。
func (d *Document) RenderNode(id NodeID) (DispatchState, error) {
	state, segs, err := d.Plan(id)
	if err != nil {
		return state, err
	}
	n := d.nodes[id]
	n.interfaces = nil
	n.state = state
	if n.painter == nil {
		return state, nil
	}
	sp, canSplit := n.painter.(SegmentPainter)
	if state == SpansMultipleLines && !canSplit {
		return state, newError(CodeUnimplementedSegmentRenderer, "节点 %d 的 painter %T 不能绘制拆分片段", id, n.painter)
	}
	for _, s := range segs {
		switch s.Kind {
		case SegmentComplete:
			err = n.painter.RenderComplete(s.Start)
		case SegmentBeforeBreak:
			err = sp.RenderBeforeBreak(s.LocalStartX, s.Start, s.Stop)
		case SegmentSpanningContinuation:
			err = sp.RenderSpanningContinuation(s.LocalStartX, s.Start, s.Stop)
		case SegmentAfterBreak:
			err = sp.RenderAfterBreak(s.LocalStartX, s.Start, s.Stop)
		}
		if err != nil {
			return state, fmt.Errorf("绘制节点 %d 的 %s 片段：%w", id, s.Kind, err)
		}
		n.interfaces = append(n.interfaces, s)
	}
	return state, nil
}

// Render 从根节点先序绘制所有带 painter 的节点，遇到第一个错误即停止。
func (d *Document) Render() error {
	for id := range d.Descendants(RootID) {
		if d.nodes[id].painter == nil {
			continue
		}
		if _, err := d.RenderNode(id); err != nil {
			if name := d.nodes[id].name; name != "" {
				return fmt.Errorf("渲染 %q：%w", name, err)
			}
			return err
		}
	}
	return nil
}

// State 返回 id 上次渲染的分派状态。
func (d *Document) State(id NodeID) DispatchState {
	n, err := d.node(id)
	if err != nil {
		return NotInFlowable
	}
	return n.state
}

// Interfaces 返回 id 上次渲染记录的片段。
func (d *Document) Interfaces(id NodeID) []Interface {
	n, err := d.node(id)
	if err != nil {
		return nil
	}
	out := make([]Interface, len(n.interfaces))
	copy(out, n.interfaces)
	return out
}
