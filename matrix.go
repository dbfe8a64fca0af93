package displaylist

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Transform payloads use the x/image matrix types, both row-major:
//
//	f32.Aff3: | m0 m1 m2 |     f32.Mat4: | m0  m1  m2  m3  |
//	          | m3 m4 m5 |               | m4  m5  m6  m7  |
//	                                     | m8  m9  m10 m11 |
//	                                     | m12 m13 m14 m15 |
//
// A 2D point (x, y) maps through a Mat4 as (x, y, 0, 1).

// IdentityAffine returns the 2x3 identity.
func IdentityAffine() f32.Aff3 {
	return f32.Aff3{1, 0, 0, 0, 1, 0}
}

// IdentityMatrix returns the 4x4 identity.
func IdentityMatrix() f32.Mat4 {
	return f32.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// AffineToMatrix widens a 2x3 affine matrix into 4x4 form.
func AffineToMatrix(a f32.Aff3) f32.Mat4 {
	return f32.Mat4{
		a[0], a[1], 0, a[2],
		a[3], a[4], 0, a[5],
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// concat returns a*b, so that b is applied to points before a.
func concat(a, b f32.Mat4) f32.Mat4 {
	var out f32.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[r*4+k] * b[k*4+c]
			}
			out[r*4+c] = sum
		}
	}
	return out
}

func translateMatrix(tx, ty float32) f32.Mat4 {
	m := IdentityMatrix()
	m[3], m[7] = tx, ty
	return m
}

func scaleMatrix(sx, sy float32) f32.Mat4 {
	m := IdentityMatrix()
	m[0], m[5] = sx, sy
	return m
}

func rotateMatrix(degrees float32) f32.Mat4 {
	rad := float64(degrees) * math.Pi / 180
	sin, cos := float32(math.Sin(rad)), float32(math.Cos(rad))
	m := IdentityMatrix()
	m[0], m[1] = cos, -sin
	m[4], m[5] = sin, cos
	return m
}

func skewMatrix(sx, sy float32) f32.Mat4 {
	m := IdentityMatrix()
	m[1], m[4] = sx, sy
	return m
}

// hasPerspective reports whether the bottom row differs from (0 0 0 1)
// in the components that affect 2D points.
func hasPerspective(m f32.Mat4) bool {
	return m[12] != 0 || m[13] != 0 || m[15] != 1
}

// mapPoint maps p through m. It reports false when the point lands on or
// behind the eye plane (w <= 0).
func mapPoint(m f32.Mat4, p Point) (Point, bool) {
	x := m[0]*p.X + m[1]*p.Y + m[3]
	y := m[4]*p.X + m[5]*p.Y + m[7]
	if !hasPerspective(m) {
		return Point{X: x, Y: y}, true
	}
	w := m[12]*p.X + m[13]*p.Y + m[15]
	if w <= 1e-6 {
		return Point{}, false
	}
	return Point{X: x / w, Y: y / w}, true
}

// mapRect returns the bounds of r mapped through m. The second result is
// false when any corner cannot be projected.
func mapRect(m f32.Mat4, r Rect) (Rect, bool) {
	corners := [4]Point{
		{X: r.Left, Y: r.Top},
		{X: r.Right, Y: r.Top},
		{X: r.Right, Y: r.Bottom},
		{X: r.Left, Y: r.Bottom},
	}
	for i, c := range corners {
		p, ok := mapPoint(m, c)
		if !ok {
			return Rect{}, false
		}
		corners[i] = p
	}
	return RectFromPoints(corners[:]), true
}
