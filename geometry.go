package displaylist

import "math"

// Point is a 2D point in local drawing coordinates.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis-aligned rectangle stored as left, top, right, bottom.
// A rectangle is empty unless Left < Right and Top < Bottom.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// MaxCullRect is the default cull rectangle of a Builder. It stands in for
// "unbounded" while staying finite so that it survives transforms.
var MaxCullRect = Rect{Left: -1e9, Top: -1e9, Right: 1e9, Bottom: 1e9}

// LTRB creates a rectangle from its edges.
func LTRB(l, t, r, b float32) Rect {
	return Rect{Left: l, Top: t, Right: r, Bottom: b}
}

// XYWH creates a rectangle from an origin and a size.
func XYWH(x, y, w, h float32) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// RectFromPoints returns the smallest rectangle containing all points.
// It returns the zero Rect when pts is empty.
func RectFromPoints(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Left: pts[0].X, Top: pts[0].Y, Right: pts[0].X, Bottom: pts[0].Y}
	for _, p := range pts[1:] {
		r.Left = min(r.Left, p.X)
		r.Top = min(r.Top, p.Y)
		r.Right = max(r.Right, p.X)
		r.Bottom = max(r.Bottom, p.Y)
	}
	return r
}

// IsEmpty reports whether the rectangle encloses no area.
// NaN edges also count as empty.
func (r Rect) IsEmpty() bool {
	return !(r.Left < r.Right && r.Top < r.Bottom)
}

// Width returns Right - Left.
func (r Rect) Width() float32 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float32 { return r.Bottom - r.Top }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// MakeSorted returns r with its edges swapped as needed so that
// Left <= Right and Top <= Bottom.
func (r Rect) MakeSorted() Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// Union returns the smallest rectangle containing r and o.
// Empty rectangles do not contribute.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	return Rect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

// Intersect returns the overlap of r and o and whether it is non-empty.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	out := Rect{
		Left:   max(r.Left, o.Left),
		Top:    max(r.Top, o.Top),
		Right:  min(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}, false
	}
	return out, true
}

// Outset grows the rectangle by dx horizontally and dy vertically on each side.
func (r Rect) Outset(dx, dy float32) Rect {
	return Rect{Left: r.Left - dx, Top: r.Top - dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Offset moves the rectangle by (dx, dy).
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return !r.IsEmpty() && !o.IsEmpty() &&
		r.Left <= o.Left && r.Top <= o.Top && r.Right >= o.Right && r.Bottom >= o.Bottom
}

// IsFinite reports whether all edges are finite numbers.
func (r Rect) IsFinite() bool {
	for _, v := range [4]float32{r.Left, r.Top, r.Right, r.Bottom} {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// IRect is an integer rectangle, used for nine-patch centers and lattice bounds.
type IRect struct {
	Left, Top, Right, Bottom int32
}

// Rect converts the integer rectangle to float coordinates.
func (r IRect) Rect() Rect {
	return Rect{Left: float32(r.Left), Top: float32(r.Top), Right: float32(r.Right), Bottom: float32(r.Bottom)}
}

// Corner indexes into RRect.Radii.
const (
	UpperLeft = iota
	UpperRight
	LowerRight
	LowerLeft
)

// RRect is a rectangle with an elliptical radius per corner.
type RRect struct {
	Rect  Rect
	Radii [4]Point
}

// RRectXY creates a rounded rectangle with the same radii on every corner.
func RRectXY(r Rect, rx, ry float32) RRect {
	rad := Point{X: rx, Y: ry}
	return RRect{Rect: r, Radii: [4]Point{rad, rad, rad, rad}}
}

// Bounds returns the enclosing rectangle.
func (rr RRect) Bounds() Rect { return rr.Rect }

// IsRect reports whether every corner radius is zero.
func (rr RRect) IsRect() bool {
	for _, r := range rr.Radii {
		if r.X != 0 || r.Y != 0 {
			return false
		}
	}
	return true
}

// RSXform is a compressed rotation+scale+translation used by atlas draws:
//
//	| SCos -SSin TX |
//	| SSin  SCos TY |
type RSXform struct {
	SCos, SSin, TX, TY float32
}

// Map applies the transform to a point.
func (x RSXform) Map(p Point) Point {
	return Point{
		X: x.SCos*p.X - x.SSin*p.Y + x.TX,
		Y: x.SSin*p.X + x.SCos*p.Y + x.TY,
	}
}

// QuadBounds returns the bounds of a w by h rectangle placed by the transform.
func (x RSXform) QuadBounds(w, h float32) Rect {
	return RectFromPoints([]Point{
		x.Map(Point{}),
		x.Map(Point{X: w}),
		x.Map(Point{X: w, Y: h}),
		x.Map(Point{Y: h}),
	})
}
