package layout

import "fmt"

// Point 是一对长度，值类型，运算均返回新值。
type Point struct {
	X Length `json:"x"`
	Y Length `json:"y"`
}

// Origin 是零向量。
var Origin = Point{}

// PointMm 用两个毫米数构造 Point。
func PointMm(x, y float64) Point { return Point{X: Mm(x), Y: Mm(y)} }

func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }
func (p Point) Neg() Point        { return Point{X: -p.X, Y: -p.Y} }
func (p Point) IsZero() bool      { return p.X == 0 && p.Y == 0 }

// Equal 精确比较。
func (p Point) Equal(o Point) bool { return p.X == o.X && p.Y == o.Y }

// ApproxEqual 容忍单位换算带来的舍入误差。
func (p Point) ApproxEqual(o Point) bool { return p.X.ApproxEqual(o.X) && p.Y.ApproxEqual(o.Y) }

func (p Point) String() string { return fmt.Sprintf("(%s, %s)", p.X, p.Y) }
