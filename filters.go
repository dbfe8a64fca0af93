package displaylist

import (
	"math"

	"github.com/gogpu/gg"
)

// Filter and shader objects are opaque to the encoder: the Builder stores a
// reference and Dispatch hands the same reference back. The small method sets
// below are what the bounds calculator and the gg renderer need from them.

// Shader is a paint source that replaces the solid color.
type Shader interface {
	// Brush realizes the shader as a gg brush in local coordinates.
	Brush() gg.Brush
}

// ColorFilter transforms the paint color before drawing.
type ColorFilter interface {
	FilterColor(c Color) Color
}

// ImageFilter post-processes the pixels produced by a draw call or layer.
type ImageFilter interface {
	// FilterBounds returns the area the filter can touch given content
	// bounds. It reports false if the output is unbounded.
	FilterBounds(input Rect) (Rect, bool)
}

// PathEffect alters geometry before it is stroked or filled.
type PathEffect interface {
	// ApplyTo configures dc so that following strokes use the effect.
	ApplyTo(dc *gg.Context)
	// EffectBounds returns the bounds of the effect applied to geometry
	// with bounds r, or false if they cannot be determined.
	EffectBounds(r Rect) (Rect, bool)
}

// MaskFilter alters the coverage mask of a draw call.
type MaskFilter interface {
	MaskBounds(r Rect) Rect
}

// LinearGradientShader paints a linear gradient between Start and End.
// Stops may be nil, in which case colors are spaced evenly.
type LinearGradientShader struct {
	Start, End Point
	Colors     []Color
	Stops      []float32
}

// Brush implements Shader.
func (s *LinearGradientShader) Brush() gg.Brush {
	b := gg.NewLinearGradientBrush(float64(s.Start.X), float64(s.Start.Y), float64(s.End.X), float64(s.End.Y))
	n := len(s.Colors)
	for i, c := range s.Colors {
		var offset float64
		switch {
		case i < len(s.Stops):
			offset = float64(s.Stops[i])
		case n > 1:
			offset = float64(i) / float64(n-1)
		}
		b.AddColorStop(offset, gg.FromColor(c.NRGBA()))
	}
	return b
}

// MatrixColorFilter applies a 4x5 row-major color matrix to normalized
// RGBA values; the fifth column is an additive bias.
type MatrixColorFilter [20]float32

// InvertMatrix inverts RGB and keeps alpha.
var InvertMatrix = MatrixColorFilter{
	-1, 0, 0, 0, 1,
	0, -1, 0, 0, 1,
	0, 0, -1, 0, 1,
	0, 0, 0, 1, 0,
}

// FilterColor implements ColorFilter.
func (m MatrixColorFilter) FilterColor(c Color) Color {
	in := [4]float32{
		float32(c.R()) / 255,
		float32(c.G()) / 255,
		float32(c.B()) / 255,
		float32(c.A()) / 255,
	}
	var out [4]uint8
	for row := 0; row < 4; row++ {
		v := m[row*5+4]
		for col := 0; col < 4; col++ {
			v += m[row*5+col] * in[col]
		}
		out[row] = unitToByte(v)
	}
	return ARGB(out[3], out[0], out[1], out[2])
}

func unitToByte(v float32) uint8 {
	v = min(max(v, 0), 1)
	return uint8(math.Round(float64(v) * 255))
}

// BlendColorFilter blends a constant color over the paint color.
// Only Src, Dst, SrcOver and Modulate are evaluated exactly; other modes
// fall back to SrcOver.
type BlendColorFilter struct {
	Color Color
	Mode  BlendMode
}

// FilterColor implements ColorFilter.
func (f BlendColorFilter) FilterColor(dst Color) Color {
	switch f.Mode {
	case BlendDst:
		return dst
	case BlendSrc:
		return f.Color
	case BlendModulate:
		mul := func(a, b uint8) uint8 { return uint8((uint16(a)*uint16(b) + 127) / 255) }
		return ARGB(mul(f.Color.A(), dst.A()), mul(f.Color.R(), dst.R()),
			mul(f.Color.G(), dst.G()), mul(f.Color.B(), dst.B()))
	default:
		sa := float32(f.Color.A()) / 255
		da := float32(dst.A()) / 255
		oa := sa + da*(1-sa)
		if oa == 0 {
			return ColorTransparent
		}
		ch := func(s, d uint8) uint8 {
			return unitToByte((float32(s)/255*sa + float32(d)/255*da*(1-sa)) / oa)
		}
		return ARGB(unitToByte(oa), ch(f.Color.R(), dst.R()), ch(f.Color.G(), dst.G()), ch(f.Color.B(), dst.B()))
	}
}

// BlurImageFilter is a Gaussian blur applied to a draw call's output.
type BlurImageFilter struct {
	SigmaX, SigmaY float32
}

// FilterBounds implements ImageFilter. A Gaussian kernel is treated as
// reaching three sigma.
func (f BlurImageFilter) FilterBounds(input Rect) (Rect, bool) {
	return input.Outset(3*f.SigmaX, 3*f.SigmaY), true
}

// DashPathEffect turns strokes into dashes. Intervals alternate on and off
// lengths; Phase offsets into the pattern.
type DashPathEffect struct {
	Intervals []float32
	Phase     float32
}

// ApplyTo implements PathEffect.
func (e *DashPathEffect) ApplyTo(dc *gg.Context) {
	lengths := make([]float64, len(e.Intervals))
	for i, v := range e.Intervals {
		lengths[i] = float64(v)
	}
	dc.SetDash(lengths...)
	dc.SetDashOffset(float64(e.Phase))
}

// EffectBounds implements PathEffect. Dashing only removes geometry.
func (e *DashPathEffect) EffectBounds(r Rect) (Rect, bool) {
	return r, true
}

// BlurMaskFilter blurs the coverage mask; it is also what the mask-blur
// shortcut ops decode to.
type BlurMaskFilter struct {
	Style BlurStyle
	Sigma float32
}

// MaskBounds implements MaskFilter.
func (f BlurMaskFilter) MaskBounds(r Rect) Rect {
	if f.Style == BlurInner {
		return r
	}
	return r.Outset(3*f.Sigma, 3*f.Sigma)
}
