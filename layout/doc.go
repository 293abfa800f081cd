/*
Package layout 为分页、可换行的输出定位图形对象。

所有可绘制对象都位于 Document 中，Document 是以 NodeID 寻址的节点 arena。
节点位置相对于父节点；根节点位于各页之上，本身不贡献偏移。

FlowableFrame 把内部排成一串跨页的行（LayoutController）。frame 下的对象
按一整行定位；渲染时对象向 frame 查询断行位置，按断行前、整行跨越、
最后断行后分段绘制。

本包只决定片段的位置，不决定外观；绘制交给每个节点的 Painter。

# Tracing

本包使用 key 'neoscore.layout' 输出 trace。
*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer 使用 key 'neoscore.layout'
func tracer() tracing.Trace {
	return tracing.Select("neoscore.layout")
}
