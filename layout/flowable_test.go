package layout

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayoutAcrossPages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "neoscore.layout")
	defer teardown()

	d := NewDocument(A4()) // 版心 170 x 257
	page, err := d.Page(0)
	require.NoError(t, err)
	f, err := d.NewFlowableFrame(page, PointMm(10, 200), 400, 30, 10)
	require.NoError(t, err)

	want := []LayoutController{
		{X: 0, Length: 160, Page: 0, Pos: PointMm(10, 200)},
		{X: 160, Length: 160, Page: 1, Pos: PointMm(10, 0)},
		{X: 320, Length: 80, Page: 1, Pos: PointMm(10, 40)},
	}
	assert.Equal(t, want, f.Controllers())
	assert.Equal(t, Length(400), f.LayoutEnd())
	assert.Len(t, d.Pages(), 2, "the frame's last page must exist")
	assert.Equal(t, Length(400), d.BreakableWidth(f.ID()))
	assert.Equal(t, RoleFrame, d.Role(f.ID()))

	// 移动 frame 后，显式 Relayout 才生效
	require.NoError(t, d.SetPosition(f.ID(), PointMm(50, 0)))
	assert.Equal(t, want, f.Controllers())
	require.NoError(t, f.Relayout())
	cs := f.Controllers()
	require.Len(t, cs, 4)
	assert.Equal(t, Length(120), cs[0].Length)
	assert.Equal(t, Length(40), cs[3].Length)
	assert.Equal(t, 0, cs[3].Page)
}

func TestRelayoutNoSliverLine(t *testing.T) {
	d := NewDocument(A4())
	page, err := d.Page(0)
	require.NoError(t, err)
	// 行长 170-169.9 不是精确的二进制小数
	f, err := d.NewFlowableFrame(page, PointMm(169.9, 0), 0.3, 10, 0)
	require.NoError(t, err)

	cs := f.Controllers()
	require.Len(t, cs, 3)
	for i, c := range cs {
		assert.True(t, c.Length.ApproxEqual(0.1), "line %d: %s", i, c.Length)
	}
	assert.Equal(t, Length(0.3), f.LayoutEnd())
	assert.Equal(t, Length(0.3), cs[2].End())
}

func TestNewFlowableFrameValidation(t *testing.T) {
	d := NewDocument(A4())
	page, err := d.Page(0)
	require.NoError(t, err)
	before := d.Len()

	cases := []struct {
		name                string
		x                   float64
		length, height, gap Length
	}{
		{"zero length", 0, 0, 10, 0},
		{"zero line height", 0, 100, 0, 0},
		{"negative spacing", 0, 100, 10, -1},
		{"taller than page", 0, 100, 300, 0},
		{"right of live area", 170, 100, 10, 0},
	}
	for _, c := range cases {
		_, err := d.NewFlowableFrame(page, PointMm(c.x, 0), c.length, c.height, c.gap)
		assert.True(t, IsCode(err, CodeInvalidArgument), "%s: got %v", c.name, err)
	}
	assert.Equal(t, before, d.Len(), "failed frames must not stay in the tree")

	lone, err := d.NewObject(NoParent, Origin, 0, nil)
	require.NoError(t, err)
	_, err = d.NewFlowableFrame(lone, Origin, 100, 10, 0)
	assert.True(t, IsCode(err, CodeInvalidArgument), "a frame needs a page, got %v", err)

	_, err = d.AsFrame(page)
	assert.True(t, IsCode(err, CodeInvalidArgument))
}

// manualFrame 是第 0 页上行长为 10、20、10、60 的 frame。
func manualFrame(t *testing.T) (*Document, *FlowableFrame) {
	t.Helper()
	d := NewDocument(A4())
	page, err := d.Page(0)
	require.NoError(t, err)
	f, err := d.NewFlowableFrame(page, Origin, 100, 10, 10)
	require.NoError(t, err)
	require.NoError(t, f.SetControllers([]LayoutController{
		{X: 0, Length: 10, Page: 0, Pos: PointMm(0, 0)},
		{X: 10, Length: 20, Page: 0, Pos: PointMm(0, 20)},
		{X: 30, Length: 10, Page: 1, Pos: PointMm(0, 0)},
		{X: 40, Length: 60, Page: 1, Pos: PointMm(0, 20)},
	}))
	return d, f
}

func TestSetControllersValidation(t *testing.T) {
	_, f := manualFrame(t)
	before := f.Controllers()

	bad := [][]LayoutController{
		nil,
		{{X: 5, Length: 10}},
		{{X: 0, Length: 10}, {X: 11, Length: 10}},
		{{X: 0, Length: 0}},
		{{X: 0, Length: 10, Page: -1}},
	}
	for i, cs := range bad {
		err := f.SetControllers(cs)
		assert.True(t, IsCode(err, CodeInvalidArgument), "case %d: got %v", i, err)
	}
	assert.Equal(t, before, f.Controllers(), "rejected tables must not replace the current one")
}

func TestBreakQueries(t *testing.T) {
	_, f := manualFrame(t)

	cases := []struct {
		x     Length
		index int
		dist  Length
	}{
		{-5, 0, -15},
		{0, 0, -10},
		{6, 0, -4},
		{10, 1, -20},
		{29.5, 1, -0.5},
		{40, 3, -60},
		{100, 3, 0},
		{120, 3, 20},
	}
	for _, c := range cases {
		assert.Equal(t, c.index, f.LastBreakIndexAt(c.x), "index at %s", c.x)
		assert.True(t, f.DistanceToLineEnd(c.x).ApproxEqual(c.dist), "distance at %s: %s", c.x, f.DistanceToLineEnd(c.x))
	}
}

func TestMapLocalToDocument(t *testing.T) {
	d, f := manualFrame(t)
	paper := d.Paper()
	live := Point{X: paper.Margin.Left, Y: paper.Margin.Top}

	p, err := f.MapLocalToDocument(PointMm(6, 2))
	require.NoError(t, err)
	assert.Equal(t, live.Add(PointMm(6, 2)), p)

	p, err = f.MapLocalToDocument(PointMm(12, 2))
	require.NoError(t, err)
	assert.Equal(t, live.Add(PointMm(2, 22)), p)

	p, err = f.MapLocalToDocument(PointMm(45, 0))
	require.NoError(t, err)
	assert.Equal(t, d.PageOrigin(1).Add(live).Add(PointMm(5, 20)), p)

	// frame 通过行表换算后代的位置
	obj, err := d.NewObject(f.ID(), PointMm(12, 2), 0, nil)
	require.NoError(t, err)
	p, err = d.MapFromOrigin(obj)
	require.NoError(t, err)
	assert.Equal(t, live.Add(PointMm(2, 22)), p)
}
