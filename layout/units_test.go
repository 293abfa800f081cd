package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		back := Pt(pt).ToPT()
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt back=%g diff=%g", pt, back, diff)
		}
	}
	for _, mm := range samples {
		back := Pt(Mm(mm).ToPT()).ToMM()
		if diff := math.Abs(back - mm); diff > 1e-9 {
			t.Fatalf("mm→pt→mm 往返误差过大: in=%gmm back=%g diff=%g", mm, back, diff)
		}
	}
}

// TestLengthToConversions 覆盖 Length 在常见单位上的转换正确性。
func TestLengthToConversions(t *testing.T) {
	cases := []struct {
		name string
		l    Length
		unit Unit
		want float64
	}{
		{"in→mm", Inch(1), UnitMM, 25.4},
		{"in→pt", Inch(1), UnitPT, 72},
		{"cm→mm", Cm(2.5), UnitMM, 25},
		{"mm→cm", Mm(25), UnitCM, 2.5},
		{"pt→in", Pt(36), UnitIN, 0.5},
		{"none", Mm(7), UnitNone, 7},
	}
	for _, c := range cases {
		if got := c.l.To(c.unit); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("%s: got %g, want %g", c.name, got, c.want)
		}
	}
}

func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		want Length
	}{
		{"12mm", 12},
		{"1.5cm", 15},
		{"1in", 25.4},
		{"72pt", 25.4},
		{"7", 7},
		{"-5mm", -5},
		{" 3 MM ", 3},
	}
	for _, c := range cases {
		got, err := ParseLength(c.in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", c.in, err)
		}
		if !got.ApproxEqual(c.want) {
			t.Fatalf("%q: got %s, want %s", c.in, got, c.want)
		}
	}
	for _, bad := range []string{"", "mm", "abc", "12px"} {
		if _, err := ParseLength(bad); !IsCode(err, CodeInvalidArgument) {
			t.Fatalf("%q: expected invalid argument, got %v", bad, err)
		}
	}
}

func TestLengthArithmetic(t *testing.T) {
	a, b := Mm(10), Cm(2)
	if got := a.Add(b); got != 30 {
		t.Fatalf("add: got %s", got)
	}
	if got := a.Sub(b); got != -10 {
		t.Fatalf("sub: got %s", got)
	}
	if got := a.Sub(b).Abs(); got != 10 {
		t.Fatalf("abs: got %s", got)
	}
	if !a.Less(b) || a.Cmp(b) != -1 || b.Cmp(a) != 1 || a.Cmp(a) != 0 {
		t.Fatalf("ordering broken for %s and %s", a, b)
	}
	if got := a.Scale(0.5).Neg(); got != -5 {
		t.Fatalf("scale/neg: got %s", got)
	}
	if !ZeroLength.IsZero() || a.IsZero() {
		t.Fatalf("IsZero broken")
	}
	if got := Mm(12.5).String(); got != "12.5mm" {
		t.Fatalf("String: got %s", got)
	}
}
