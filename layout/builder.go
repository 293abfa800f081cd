package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Xavman42/neoscore/binding"
	"github.com/Xavman42/neoscore/dsl"
)

// Scene 是由 DSL 构建出的对象树以及接收绘制调用的收集器。
type Scene struct {
	Document  *Document
	Collector *Collector
	Meta      DocumentMeta
}

// Render 重新绘制整棵树并返回页面结果。可多次调用，结果相同。
func (s *Scene) Render() (*Result, error) {
	s.Collector.Reset()
	if err := s.Document.Render(); err != nil {
		return nil, err
	}
	return s.Collector.Result(), nil
}

// argArity 是各属性名后跟随的值个数，未列出的为 1。
var argArity = map[string]int{
	"at":   2,
	"size": 2,
}

type builder struct {
	doc       *Document
	collector *Collector
	data      any
	opts      BuildOptions
}

// Build 将 DSL 文档转换为对象树。data 为 ${...} 占位符提供数据，可为 nil。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Scene, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	opts = opts.withDefaults()
	meta := collectMeta(doc, data)

	paper := opts.Paper
	var scene *dsl.SceneSection
	for _, section := range doc.Sections {
		switch {
		case section.Paper != nil:
			p, err := resolvePaper(section.Paper, paper, data)
			if err != nil {
				return nil, fmt.Errorf("%s: paper: %w", section.Paper.Pos, err)
			}
			paper = p
		case section.Scene != nil:
			if scene != nil {
				return nil, fmt.Errorf("文档只能包含一个 scene")
			}
			scene = section.Scene
		}
	}
	if err := paper.Validate(); err != nil {
		return nil, err
	}

	d := NewDocument(paper)
	b := &builder{doc: d, collector: NewCollector(d, meta), data: data, opts: opts}
	page0, err := d.Page(0)
	if err != nil {
		return nil, err
	}
	if scene != nil && scene.Block != nil {
		for _, stmt := range scene.Block.Statements {
			if stmt.Command == nil {
				continue
			}
			if err := b.command(stmt.Command, page0, true); err != nil {
				return nil, err
			}
		}
	}
	tracer().Infof("场景 %q 构建完成：%d 个节点，%d 页", doc.Name, d.Len(), len(d.Pages()))
	return &Scene{Document: d, Collector: b.collector, Meta: meta}, nil
}

func (b *builder) command(cmd *dsl.Command, parent NodeID, top bool) error {
	var err error
	switch cmd.Name {
	case "page":
		if !top {
			return fmt.Errorf("%s: page 只能出现在 scene 顶层", cmd.Pos)
		}
		err = b.page(cmd)
	case "flowable":
		err = b.flowable(cmd, parent)
	case "object":
		err = b.object(cmd, parent)
	default:
		return fmt.Errorf("%s: 未知命令 %q", cmd.Pos, cmd.Name)
	}
	if err != nil {
		return fmt.Errorf("%s: %s: %w", cmd.Pos, cmd.Name, err)
	}
	return nil
}

func (b *builder) block(block *dsl.Block, parent NodeID) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		if stmt.Command == nil {
			continue
		}
		if err := b.command(stmt.Command, parent, false); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) page(cmd *dsl.Command) error {
	if len(cmd.Args) != 1 {
		return fmt.Errorf("需要页码，例如 page 0")
	}
	raw, err := binding.Resolve(cmd.Args[0].Value, b.data)
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 0 {
		return fmt.Errorf("页码 %q 无效", raw)
	}
	id, err := b.doc.Page(idx)
	if err != nil {
		return err
	}
	return b.block(cmd.Block, id)
}

func (b *builder) flowable(cmd *dsl.Command, parent NodeID) error {
	name, attrs, err := parseArgs(cmd.Args, b.data)
	if err != nil {
		return err
	}
	pos, err := attrPoint(attrs, "at")
	if err != nil {
		return err
	}
	length, err := attrLength(attrs, "length", 0)
	if err != nil {
		return err
	}
	lineHeight, err := attrLength(attrs, "height", b.opts.Frame.LineHeight)
	if err != nil {
		return err
	}
	spacing, err := attrLength(attrs, "spacing", b.opts.Frame.Spacing)
	if err != nil {
		return err
	}
	f, err := b.doc.NewFlowableFrame(parent, pos, length, lineHeight, spacing)
	if err != nil {
		return err
	}
	if name != "" {
		if err := b.doc.SetName(f.ID(), name); err != nil {
			return err
		}
	}
	return b.block(cmd.Block, f.ID())
}

func (b *builder) object(cmd *dsl.Command, parent NodeID) error {
	name, attrs, err := parseArgs(cmd.Args, b.data)
	if err != nil {
		return err
	}
	pos, err := attrPoint(attrs, "at")
	if err != nil {
		return err
	}
	style, err := b.style(attrs)
	if err != nil {
		return err
	}
	width, err := attrLength(attrs, "width", 0)
	if err != nil {
		return err
	}

	var painter Painter
	kind := "none"
	if v, ok := attrs["kind"]; ok {
		kind = strings.ToLower(v[0])
	}
	switch kind {
	case "none":
	case "line":
		painter = &LinePainter{Collector: b.collector, Width: width, Style: style}
	case "rect":
		size, ok := attrs["size"]
		if !ok {
			return fmt.Errorf("rect 需要 size W H")
		}
		w, err := ParseLength(size[0])
		if err != nil {
			return err
		}
		h, err := ParseLength(size[1])
		if err != nil {
			return err
		}
		if _, ok := attrs["width"]; !ok {
			width = w
		}
		painter = &RectPainter{Collector: b.collector, Width: w, Height: h, Style: style}
	case "circle":
		r, err := attrLength(attrs, "radius", 0)
		if err != nil {
			return err
		}
		if r <= 0 {
			return fmt.Errorf("circle 需要正的 radius")
		}
		painter = &CirclePainter{Collector: b.collector, Radius: r, Style: style}
	default:
		return fmt.Errorf("未知的 kind %q", kind)
	}
	if width < 0 {
		return fmt.Errorf("width 不能为负数：%s", width)
	}

	id, err := b.doc.NewObject(parent, pos, width, painter)
	if err != nil {
		return err
	}
	if name != "" {
		if err := b.doc.SetName(id, name); err != nil {
			return err
		}
	}
	return b.block(cmd.Block, id)
}

func (b *builder) style(attrs map[string][]string) (Style, error) {
	st := b.opts.Style
	if v, ok := attrs["color"]; ok {
		c, err := parseColor(v[0])
		if err != nil {
			return st, err
		}
		st.Stroke = c
	}
	if v, ok := attrs["fill"]; ok {
		c, err := parseColor(v[0])
		if err != nil {
			return st, err
		}
		st.Fill = &c
	}
	w, err := attrLength(attrs, "stroke", st.StrokeWidth)
	if err != nil {
		return st, err
	}
	st.StrokeWidth = w
	return st, nil
}

// parseArgs 将 `NAME key v key v1 v2 ...` 拆为名称与属性表。
// 值中的 ${...} 在此处替换。
func parseArgs(args []*dsl.Lexeme, data any) (string, map[string][]string, error) {
	attrs := map[string][]string{}
	cursor := 0
	var name string
	if len(args) > 0 && args[0].Type == "Ident" {
		if _, isKey := knownAttrs[args[0].Value]; !isKey {
			name = args[0].Value
			cursor = 1
		}
	}
	for cursor < len(args) {
		key := args[cursor].Value
		if _, ok := knownAttrs[key]; !ok {
			return "", nil, fmt.Errorf("%s: 未知属性 %q", args[cursor].Pos, key)
		}
		n := argArity[key]
		if n == 0 {
			n = 1
		}
		if cursor+n >= len(args) {
			return "", nil, fmt.Errorf("%s: 属性 %s 需要 %d 个值", args[cursor].Pos, key, n)
		}
		vals := make([]string, n)
		for i := range vals {
			v, err := binding.Resolve(args[cursor+1+i].Value, data)
			if err != nil {
				return "", nil, fmt.Errorf("%s: %w", args[cursor+1+i].Pos, err)
			}
			vals[i] = v
		}
		attrs[key] = vals
		cursor += n + 1
	}
	return name, attrs, nil
}

var knownAttrs = map[string]struct{}{
	"at": {}, "width": {}, "length": {}, "height": {}, "spacing": {},
	"kind": {}, "size": {}, "radius": {}, "color": {}, "fill": {}, "stroke": {},
}

func attrLength(attrs map[string][]string, key string, def Length) (Length, error) {
	v, ok := attrs[key]
	if !ok {
		return def, nil
	}
	l, err := ParseLength(v[0])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return l, nil
}

func attrPoint(attrs map[string][]string, key string) (Point, error) {
	v, ok := attrs[key]
	if !ok {
		return Origin, nil
	}
	x, err := ParseLength(v[0])
	if err != nil {
		return Origin, fmt.Errorf("%s: %w", key, err)
	}
	y, err := ParseLength(v[1])
	if err != nil {
		return Origin, fmt.Errorf("%s: %w", key, err)
	}
	return Point{X: x, Y: y}, nil
}

// resolvePaper 以 base 为基础应用 `paper SIZE [landscape|portrait] [margin v1..v4] [gutter g]`。
func resolvePaper(section *dsl.PaperSection, base Paper, data any) (Paper, error) {
	paper, err := PaperPreset(section.Size)
	if err != nil {
		return Paper{}, err
	}
	paper.Margin = base.Margin
	paper.Gutter = base.Gutter
	params := make([]string, len(section.Params))
	for i, p := range section.Params {
		if params[i], err = binding.Resolve(p.Value, data); err != nil {
			return Paper{}, err
		}
	}
	for i := 0; i < len(params); i++ {
		switch strings.ToLower(params[i]) {
		case "landscape":
			paper = paper.Landscape()
		case "portrait":
		case "margin":
			var vals []Length
			for j := i + 1; j < len(params) && len(vals) < 4; j++ {
				v, err := ParseLength(params[j])
				if err != nil {
					break
				}
				vals = append(vals, v)
			}
			if len(vals) == 0 {
				return Paper{}, fmt.Errorf("margin 缺少数值")
			}
			paper.Margin = MarginFromValues(vals)
			i += len(vals)
		case "gutter":
			if i+1 >= len(params) {
				return Paper{}, fmt.Errorf("gutter 缺少数值")
			}
			g, err := ParseLength(params[i+1])
			if err != nil {
				return Paper{}, err
			}
			paper.Gutter = g
			i++
		default:
			return Paper{}, fmt.Errorf("无法识别的纸张参数 %q", params[i])
		}
	}
	return paper, nil
}

// ParseColor 解析 #rgb、#rrggbb 和 #rrggbbaa（忽略 alpha）。
func ParseColor(value string) (Color, error) { return parseColor(value) }

func parseColor(value string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
		}
	}
	switch len(hex) {
	case 3:
		return Color{
			R: mustHex(strings.Repeat(hex[0:1], 2)),
			G: mustHex(strings.Repeat(hex[1:2], 2)),
			B: mustHex(strings.Repeat(hex[2:3], 2)),
		}, nil
	case 6, 8:
		return Color{
			R: mustHex(hex[0:2]),
			G: mustHex(hex[2:4]),
			B: mustHex(hex[4:6]),
		}, nil
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
}

func mustHex(s string) int {
	v, _ := strconv.ParseInt(s, 16, 64)
	return int(v)
}

// collectMeta 读取 meta 段。元数据只用于展示，数据中缺失的占位符原样保留。
func collectMeta(doc *dsl.Document, data any) DocumentMeta {
	meta := DocumentMeta{Creator: "neoscore"}
	text := func(key, v string) string {
		out := binding.Interpolate(v, data)
		if binding.HasPlaceholder(out) {
			tracer().Infof("meta %s 含有未解析的占位符：%s", key, out)
		}
		return out
	}
	for _, section := range doc.Sections {
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for _, stmt := range section.Meta.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			key := strings.ToLower(stmt.Assignment.Key)
			val := stmt.Assignment.Value
			switch key {
			case "title":
				meta.Title = text(key, valueToString(val))
			case "author":
				meta.Author = text(key, valueToString(val))
			case "subject":
				meta.Subject = text(key, valueToString(val))
			case "creator":
				meta.Creator = text(key, valueToString(val))
			case "keywords":
				meta.Keywords = nil
				for _, k := range valueToStringSlice(val) {
					meta.Keywords = append(meta.Keywords, text(key, k))
				}
			}
		}
	}
	return meta
}

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Ident != nil:
		return *val.Ident
	default:
		return ""
	}
}

func valueToStringSlice(val *dsl.Value) []string {
	if val == nil {
		return nil
	}
	if val.Array == nil {
		if s := valueToString(val); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(val.Array.Values))
	for _, item := range val.Array.Values {
		if s := valueToString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
