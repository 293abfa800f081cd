package layout

// 节点间映射在逻辑空间中进行：忽略 flowable frame 引入的换行，
// 断行两侧的对象按 frame 是一整行来计算。只有 MapFromOrigin 考虑页面。

// logicalPos 返回节点在偏移链中的贡献，根节点不计。
func logicalPos(n *node) Point {
	if n.role == RoleRoot {
		return Origin
	}
	return n.pos
}

// MapBetween 返回 dst 相对 src 的位置。
func (d *Document) MapBetween(src, dst NodeID) (Point, error) {
	s, err := d.node(src)
	if err != nil {
		return Origin, err
	}
	t, err := d.node(dst)
	if err != nil {
		return Origin, err
	}
	switch {
	case src == dst:
		return Origin, nil
	case s.parent != NoParent && s.parent == t.parent:
		return logicalPos(t).Sub(logicalPos(s)), nil
	case t.parent == src:
		return logicalPos(t), nil
	case s.parent == dst:
		return logicalPos(s).Neg(), nil
	}

	srcChain := map[NodeID]struct{}{src: {}}
	for a := range d.Ancestors(src) {
		srcChain[a] = struct{}{}
	}

	lca := NoParent
	dstPos := Origin
	if _, ok := srcChain[dst]; ok {
		lca = dst
	} else {
		dstPos = logicalPos(t)
		for a := range d.Ancestors(dst) {
			if _, ok := srcChain[a]; ok {
				lca = a
				break
			}
			dstPos = dstPos.Add(logicalPos(d.nodes[a]))
		}
	}
	if lca == NoParent {
		return Origin, newError(CodeNoCommonAncestor, "节点 %d 与 %d 没有公共祖先", src, dst)
	}

	srcPos := Origin
	if src != lca {
		srcPos = logicalPos(s)
		for a := range d.Ancestors(src) {
			if a == lca {
				break
			}
			srcPos = srcPos.Add(logicalPos(d.nodes[a]))
		}
	}
	tracer().Debugf("map %d -> %d via common ancestor %d", src, dst, lca)
	return dstPos.Sub(srcPos), nil
}

// MapBetweenX 只取 MapBetween 的 x 分量。
func (d *Document) MapBetweenX(src, dst NodeID) (Length, error) {
	p, err := d.MapBetween(src, dst)
	return p.X, err
}

// DescendantPosition 返回 descendant 相对 ancestor 的位置，ancestor 必须在
// Ancestors(descendant) 中。
func (d *Document) DescendantPosition(descendant, ancestor NodeID) (Point, error) {
	n, err := d.node(descendant)
	if err != nil {
		return Origin, err
	}
	if _, err := d.node(ancestor); err != nil {
		return Origin, err
	}
	pos := logicalPos(n)
	for a := range d.Ancestors(descendant) {
		if a == ancestor {
			return pos, nil
		}
		pos = pos.Add(logicalPos(d.nodes[a]))
	}
	return Origin, newError(CodeNotAnAncestor, "节点 %d 不是 %d 的祖先", ancestor, descendant)
}

// DescendantPositionX 只计算 x 轴。
func (d *Document) DescendantPositionX(descendant, ancestor NodeID) (Length, error) {
	n, err := d.node(descendant)
	if err != nil {
		return 0, err
	}
	if _, err := d.node(ancestor); err != nil {
		return 0, err
	}
	x := logicalPos(n).X
	for a := range d.Ancestors(descendant) {
		if a == ancestor {
			return x, nil
		}
		x += logicalPos(d.nodes[a]).X
	}
	return 0, newError(CodeNotAnAncestor, "节点 %d 不是 %d 的祖先", ancestor, descendant)
}

// FirstAncestor 返回满足 pred 的最近祖先。
func (d *Document) FirstAncestor(id NodeID, pred func(NodeID) bool) (NodeID, bool) {
	for a := range d.Ancestors(id) {
		if pred(a) {
			return a, true
		}
	}
	return NoParent, false
}

func (d *Document) FirstAncestorWithRole(id NodeID, role Role) (NodeID, bool) {
	return d.FirstAncestor(id, func(a NodeID) bool { return d.nodes[a].role == role })
}

// EnclosingFrame 返回 id 之上最近的 flowable frame。
func (d *Document) EnclosingFrame(id NodeID) (*FlowableFrame, bool) {
	a, ok := d.FirstAncestorWithRole(id, RoleFrame)
	if !ok {
		return nil, false
	}
	return d.nodes[a].frame, true
}

func (d *Document) IsInFlowable(id NodeID) bool {
	_, ok := d.EnclosingFrame(id)
	return ok
}

// MapFromOrigin 返回 id 在文档空间中的位置。位于 flowable frame 内时由
// frame 按所在行和页换算，否则逐级累加到根节点。
func (d *Document) MapFromOrigin(id NodeID) (Point, error) {
	n, err := d.node(id)
	if err != nil {
		return Origin, err
	}
	if n.role == RoleRoot {
		return Origin, nil
	}
	pos := n.pos
	for a := range d.Ancestors(id) {
		an := d.nodes[a]
		switch an.role {
		case RoleFrame:
			return an.frame.MapLocalToDocument(pos)
		case RoleRoot:
			return pos, nil
		}
		pos = pos.Add(an.pos)
	}
	return Origin, newError(CodeNoCommonAncestor, "节点 %d 没有挂在文档根节点上", id)
}

// CanvasPosition 等同 MapFromOrigin，调试快照用它填充 NodeInfo.CanvasPosition。
func (d *Document) CanvasPosition(id NodeID) (Point, error) { return d.MapFromOrigin(id) }
