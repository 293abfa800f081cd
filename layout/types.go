package layout

// 该文件定义绘制结果，供渲染后端与调试 JSON 共用。
// Result 中的图形坐标均为页面坐标（单位：mm，原点为纸张左上角）。

// Result 保存渲染后的页面、分段记录与文档元信息。
type Result struct {
	Paper    Paper           `json:"paper"`
	Pages    []Page          `json:"pages"`
	Segments []SegmentRecord `json:"segments"`
	Nodes    []NodeInfo      `json:"nodes"`
	Meta     DocumentMeta    `json:"meta"`
}

// Page 记录页面尺寸与最终可以直接绘制的图形。
type Page struct {
	Index   int      `json:"index"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Lines   []Line   `json:"lines,omitempty"`
	Rects   []Rect   `json:"rects,omitempty"`
	Circles []Circle `json:"circles,omitempty"`
}

// SegmentRecord 是某个节点的一次分段绘制，附带节点名便于调试。
type SegmentRecord struct {
	Name  string        `json:"name,omitempty"`
	State DispatchState `json:"state"`
	Interface
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Style 描述描边与填充。
type Style struct {
	Stroke      Color  `json:"stroke"`
	StrokeWidth Length `json:"strokeWidth"` // <=0 时由渲染器给默认值
	Fill        *Color `json:"fill,omitempty"`
}

// Line 表示一条线段。
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color Color   `json:"color"`
	Width float64 `json:"width"` // 线宽（mm）
}

// Rect 表示一个矩形（不包含圆角）。
type Rect struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	StrokeColor Color   `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
	FillColor   *Color  `json:"fillColor,omitempty"` // 为空表示不填充
}

// Circle 表示一个圆。
type Circle struct {
	CX          float64 `json:"cx"`
	CY          float64 `json:"cy"`
	R           float64 `json:"r"`
	StrokeColor Color   `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
	FillColor   *Color  `json:"fillColor,omitempty"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
