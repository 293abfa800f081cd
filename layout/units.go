package layout

import (
	"math"
	"strconv"
	"strings"
)

// 所有 Length 都以毫米存储，其他单位只在解析和换算时出现。

// Unit 记录场景文件中书写的原始单位。
type Unit int

const (
	UnitNone Unit = iota // 无单位，按毫米处理
	UnitMM               // 毫米
	UnitCM               // 厘米
	UnitIN               // 英寸
	UnitPT               // 磅
)

// pt 与 mm 的换算系数。
const (
	PtToMm = 25.4 / 72
	MmToPt = 1.0 / PtToMm
)

// String 返回单位后缀。
func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length 是以毫米为单位的距离，运算即 float64 运算，整数毫米相加保持精确。
type Length float64

// ZeroLength 是零长度。
const ZeroLength Length = 0

func Mm(v float64) Length   { return Length(v) }
func Cm(v float64) Length   { return Length(v * 10) }
func Inch(v float64) Length { return Length(v * 25.4) }
func Pt(v float64) Length   { return Length(v * PtToMm) }

func (l Length) ToMM() float64 { return float64(l) }
func (l Length) ToPT() float64 { return float64(l) * MmToPt }

// To 换算为目标单位下的数值。
func (l Length) To(target Unit) float64 {
	switch target {
	case UnitCM:
		return float64(l) / 10
	case UnitIN:
		return float64(l) / 25.4
	case UnitPT:
		return l.ToPT()
	default:
		return float64(l)
	}
}

func (l Length) Add(o Length) Length       { return l + o }
func (l Length) Sub(o Length) Length       { return l - o }
func (l Length) Neg() Length               { return -l }
func (l Length) Scale(f float64) Length    { return Length(float64(l) * f) }
func (l Length) Less(o Length) bool        { return l < o }
func (l Length) IsZero() bool              { return l == 0 }
func (l Length) Abs() Length               { return Length(math.Abs(float64(l))) }
func (l Length) ApproxEqual(o Length) bool { return (l - o).Abs() < lengthEpsilon }

// lengthEpsilon 吸收单位换算和累加带来的浮点误差。
const lengthEpsilon Length = 1e-9

// Cmp 按大小返回 -1、0 或 +1。
func (l Length) Cmp(o Length) int {
	switch {
	case l < o:
		return -1
	case l > o:
		return 1
	default:
		return 0
	}
}

func (l Length) String() string {
	return strconv.FormatFloat(float64(l), 'f', -1, 64) + "mm"
}

// RawLength 保留作者书写的数值与单位，例如用于调试输出。
type RawLength struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Length 换算为毫米。
func (r RawLength) Length() Length {
	switch r.Unit {
	case UnitCM:
		return Cm(r.Value)
	case UnitIN:
		return Inch(r.Value)
	case UnitPT:
		return Pt(r.Value)
	default:
		return Mm(r.Value)
	}
}

// ParseRawLength 解析长度字符串并保留单位。
func ParseRawLength(value string) (RawLength, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return RawLength{}, newError(CodeInvalidArgument, "长度为空")
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return RawLength{}, wrapError(CodeInvalidArgument, err, "无效的长度 %q", value)
	}
	return RawLength{Value: f, Unit: unit}, nil
}

// ParseLength 解析 "12mm"、"1.5cm"、"1in"、"18pt" 或 "7" 这类字符串。
func ParseLength(value string) (Length, error) {
	raw, err := ParseRawLength(value)
	if err != nil {
		return 0, err
	}
	return raw.Length(), nil
}
