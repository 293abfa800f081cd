package layout

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// NodeID 是节点在 Document 中的下标，文档存续期间不会复用。
type NodeID int

const (
	// NoParent 表示没有父节点（游离节点或根节点）。
	NoParent NodeID = -1
	// RootID 是文档根节点。
	RootID NodeID = 0
)

// Role 标记节点类型，祖先查找直接比较 Role。
type Role int

const (
	RoleObject Role = iota
	RoleRoot
	RolePage
	RoleFrame
)

func (r Role) String() string {
	switch r {
	case RoleRoot:
		return "root"
	case RolePage:
		return "page"
	case RoleFrame:
		return "frame"
	default:
		return "object"
	}
}

// node 是 arena 中的一个槽位，父子关系只记录 id。
type node struct {
	id             NodeID
	name           string
	role           Role
	pos            Point
	breakableWidth Length
	parent         NodeID
	children       map[NodeID]struct{}

	painter    Painter
	interfaces []Interface
	state      DispatchState

	frame     *FlowableFrame // RoleFrame
	pageIndex int            // RolePage
}

// Document 是存放定位对象树的 arena。节点 0 为根，页面是根的子节点。
//
// Document 不支持并发修改。
type Document struct {
	nodes []*node
	names map[string]NodeID
	paper Paper
	pages []NodeID
}

// NewDocument 创建只含根节点的文档。
func NewDocument(paper Paper) *Document {
	d := &Document{names: map[string]NodeID{}, paper: paper}
	d.nodes = append(d.nodes, &node{
		id:       RootID,
		role:     RoleRoot,
		parent:   NoParent,
		children: map[NodeID]struct{}{},
	})
	return d
}

func (d *Document) Root() NodeID { return RootID }

func (d *Document) node(id NodeID) (*node, error) {
	if id < 0 || int(id) >= len(d.nodes) || d.nodes[id] == nil {
		return nil, newError(CodeInvalidArgument, "节点 %d 不属于当前文档", id)
	}
	return d.nodes[id], nil
}

// Valid 判断 id 是否指向存活的节点。
func (d *Document) Valid(id NodeID) bool {
	_, err := d.node(id)
	return err == nil
}

// Len 返回存活节点数（含根节点）。
func (d *Document) Len() int {
	n := 0
	for _, nd := range d.nodes {
		if nd != nil {
			n++
		}
	}
	return n
}

func (d *Document) newNode(role Role, parent NodeID, pos Point) (*node, error) {
	if parent != NoParent {
		if _, err := d.node(parent); err != nil {
			return nil, err
		}
	}
	n := &node{
		id:       NodeID(len(d.nodes)),
		role:     role,
		pos:      pos,
		parent:   NoParent,
		children: map[NodeID]struct{}{},
	}
	d.nodes = append(d.nodes, n)
	if parent != NoParent {
		d.attach(n, parent)
	}
	return n, nil
}

// NewObject 创建普通定位对象。parent 可以是 NoParent；painter 为 nil 时不绘制。
func (d *Document) NewObject(parent NodeID, pos Point, breakableWidth Length, painter Painter) (NodeID, error) {
	n, err := d.newNode(RoleObject, parent, pos)
	if err != nil {
		return NoParent, err
	}
	n.breakableWidth = breakableWidth
	n.painter = painter
	return n.id, nil
}

func (d *Document) attach(n *node, parent NodeID) {
	n.parent = parent
	d.nodes[parent].children[n.id] = struct{}{}
}

// SetParent 把 id 移到 parent 之下（NoParent 表示摘下），新旧父节点的
// 子节点集合同时更新。把节点移到自身或其后代之下返回 CodeCycle。
func (d *Document) SetParent(id, parent NodeID) error {
	n, err := d.node(id)
	if err != nil {
		return err
	}
	if n.role == RoleRoot || n.role == RolePage {
		return newError(CodeInvalidArgument, "%s 节点 %d 不能更换父节点", n.role, id)
	}
	if parent != NoParent {
		if _, err := d.node(parent); err != nil {
			return err
		}
		if parent == id {
			return newError(CodeCycle, "节点 %d 不能成为自己的父节点", id)
		}
		for a := range d.Ancestors(parent) {
			if a == id {
				return newError(CodeCycle, "节点 %d 是 %d 的祖先", id, parent)
			}
		}
	}
	if n.parent != NoParent {
		delete(d.nodes[n.parent].children, id)
		n.parent = NoParent
	}
	if parent != NoParent {
		d.attach(n, parent)
	}
	return nil
}

// Detach 等价于 SetParent(id, NoParent)。
func (d *Document) Detach(id NodeID) error { return d.SetParent(id, NoParent) }

// Destroy 摘下 id 并释放整棵子树。根节点和页面归文档所有，不能销毁。
func (d *Document) Destroy(id NodeID) error {
	n, err := d.node(id)
	if err != nil {
		return err
	}
	if n.role == RoleRoot || n.role == RolePage {
		return newError(CodeInvalidArgument, "%s 节点 %d 不能销毁", n.role, id)
	}
	subtree := slices.Collect(d.Descendants(id))
	if err := d.Detach(id); err != nil {
		return err
	}
	for _, c := range append(subtree, id) {
		if nd := d.nodes[c]; nd != nil && nd.name != "" {
			delete(d.names, nd.name)
		}
		d.nodes[c] = nil
	}
	return nil
}

func (d *Document) Parent(id NodeID) NodeID {
	n, err := d.node(id)
	if err != nil {
		return NoParent
	}
	return n.parent
}

// Children 按 id 顺序返回子节点。
func (d *Document) Children(id NodeID) []NodeID {
	n, err := d.node(id)
	if err != nil {
		return nil
	}
	out := make([]NodeID, 0, len(n.children))
	for c := range n.children {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Role 返回节点类型，无效 id 返回 RoleObject。
func (d *Document) Role(id NodeID) Role {
	n, err := d.node(id)
	if err != nil {
		return RoleObject
	}
	return n.role
}

// Position 返回相对父节点的位置。
func (d *Document) Position(id NodeID) Point {
	n, err := d.node(id)
	if err != nil {
		return Origin
	}
	return n.pos
}

// SetPosition 修改相对父节点的位置；根节点和页面的位置固定。
func (d *Document) SetPosition(id NodeID, pos Point) error {
	n, err := d.node(id)
	if err != nil {
		return err
	}
	if n.role == RoleRoot || n.role == RolePage {
		return newError(CodeInvalidArgument, "%s 节点 %d 的位置固定", n.role, id)
	}
	n.pos = pos
	return nil
}

// BreakableWidth 返回可以在 flowable frame 中跨行拆分的水平宽度。
func (d *Document) BreakableWidth(id NodeID) Length {
	n, err := d.node(id)
	if err != nil {
		return 0
	}
	return n.breakableWidth
}

func (d *Document) SetBreakableWidth(id NodeID, w Length) error {
	n, err := d.node(id)
	if err != nil {
		return err
	}
	if w < 0 {
		return newError(CodeInvalidArgument, "可拆分宽度不能为负：%s", w)
	}
	n.breakableWidth = w
	return nil
}

// SetPainter 设置 Render 使用的绘制回调。
func (d *Document) SetPainter(id NodeID, p Painter) error {
	n, err := d.node(id)
	if err != nil {
		return err
	}
	n.painter = p
	return nil
}

// Name 返回节点名，未命名时为空。
func (d *Document) Name(id NodeID) string {
	n, err := d.node(id)
	if err != nil {
		return ""
	}
	return n.name
}

// SetName 为节点命名，名称在文档内唯一。page<N> 保留给页面。
func (d *Document) SetName(id NodeID, name string) error {
	n, err := d.node(id)
	if err != nil {
		return err
	}
	if n.role != RolePage && isPageName(name) {
		return newError(CodeInvalidArgument, "名称 %q 保留给页面", name)
	}
	if other, ok := d.names[name]; ok && other != id {
		return newError(CodeInvalidArgument, "名称 %q 已被节点 %d 使用", name, other)
	}
	if n.name != "" {
		delete(d.names, n.name)
	}
	n.name = name
	if name != "" {
		d.names[name] = id
	}
	return nil
}

// isPageName 判断 name 是否形如 page0、page12。
func isPageName(name string) bool {
	digits, ok := strings.CutPrefix(name, "page")
	if !ok || digits == "" {
		return false
	}
	_, err := strconv.ParseUint(digits, 10, 64)
	return err == nil
}

// Lookup 按名称查找节点。
func (d *Document) Lookup(name string) (NodeID, bool) {
	id, ok := d.names[name]
	return id, ok
}

// Ancestors 依次产出父节点、祖父节点……直到根节点（游离子树则到其顶端）。
// 可以多次遍历。
func (d *Document) Ancestors(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		n, err := d.node(id)
		if err != nil {
			return
		}
		for a := n.parent; a != NoParent; a = d.nodes[a].parent {
			if !yield(a) {
				return
			}
			if d.nodes[a].role == RoleRoot {
				return
			}
		}
	}
}

// Descendants 先序遍历 id 之下的子树，子节点按 id 顺序。
func (d *Document) Descendants(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		d.walk(id, yield)
	}
}

func (d *Document) walk(id NodeID, yield func(NodeID) bool) bool {
	for _, c := range d.Children(id) {
		if !yield(c) {
			return false
		}
		if !d.walk(c, yield) {
			return false
		}
	}
	return true
}
