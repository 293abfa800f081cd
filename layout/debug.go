package layout

import (
	"encoding/json"
	"os"
)

// NodeInfo 是调试输出中单个节点的快照。
type NodeInfo struct {
	ID             NodeID        `json:"id"`
	Name           string        `json:"name,omitempty"`
	Role           string        `json:"role"`
	Parent         NodeID        `json:"parent"`
	Depth          int           `json:"depth"`
	Position       Point         `json:"position"`
	CanvasPosition *Point        `json:"canvasPosition,omitempty"` // 无法映射时为空
	BreakableWidth Length        `json:"breakableWidth"`
	State          DispatchState `json:"state"`
	Segments       int           `json:"segments"`
}

// Snapshot 以先序列出从根开始的全部节点。
func (d *Document) Snapshot() []NodeInfo {
	info := func(id NodeID, depth int) NodeInfo {
		n := d.nodes[id]
		ni := NodeInfo{
			ID:             id,
			Name:           n.name,
			Role:           n.role.String(),
			Parent:         n.parent,
			Depth:          depth,
			Position:       n.pos,
			BreakableWidth: n.breakableWidth,
			State:          n.state,
			Segments:       len(n.interfaces),
		}
		if p, err := d.CanvasPosition(id); err == nil {
			ni.CanvasPosition = &p
		}
		return ni
	}
	out := []NodeInfo{info(RootID, 0)}
	var walk func(id NodeID, depth int)
	walk = func(id NodeID, depth int) {
		for _, c := range d.Children(id) {
			out = append(out, info(c, depth))
			walk(c, depth+1)
		}
	}
	walk(RootID, 1)
	return out
}

// WriteDebugJSON 将布局结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
