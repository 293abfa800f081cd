package layout

// BuildOptions 配置构建阶段的默认值；DSL 中显式给出的值优先。
type BuildOptions struct {
	Paper Paper
	Frame FrameDefaults
	Style Style
}

// FrameDefaults 是 flowable 未指定 height/spacing 时使用的值。
type FrameDefaults struct {
	LineHeight Length
	Spacing    Length
}

// DefaultStrokeWidth 用于未指定 stroke 的图形。
const DefaultStrokeWidth Length = 0.3

// DefaultBuildOptions 返回内置默认值：A4 纵向、30mm 行高、5mm 行距、深灰描边。
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Paper: A4(),
		Frame: FrameDefaults{LineHeight: 30, Spacing: 5},
		Style: Style{Stroke: Color{R: 0x22, G: 0x22, B: 0x22}, StrokeWidth: DefaultStrokeWidth},
	}
}

func (o BuildOptions) withDefaults() BuildOptions {
	def := DefaultBuildOptions()
	if o.Paper.Width <= 0 || o.Paper.Height <= 0 {
		o.Paper = def.Paper
	}
	if o.Frame.LineHeight <= 0 {
		o.Frame.LineHeight = def.Frame.LineHeight
	}
	if o.Frame.Spacing < 0 {
		o.Frame.Spacing = 0
	}
	if o.Style.StrokeWidth <= 0 {
		o.Style.StrokeWidth = def.Style.StrokeWidth
	}
	return o
}
