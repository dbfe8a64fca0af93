package displaylist

import "image/color"

// Color is a non-premultiplied 32-bit ARGB color, 0xAARRGGBB.
type Color uint32

// Common colors.
const (
	ColorTransparent Color = 0x00000000
	ColorBlack       Color = 0xFF000000
	ColorWhite       Color = 0xFFFFFFFF
	ColorRed         Color = 0xFFFF0000
	ColorGreen       Color = 0xFF00FF00
	ColorBlue        Color = 0xFF0000FF
)

// ARGB packs the four channels into a Color.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	return c&0x00FFFFFF | Color(a)<<24
}

// Inverted returns c with its color channels inverted and alpha preserved.
func (c Color) Inverted() Color {
	return c ^ 0x00FFFFFF
}

// NRGBA converts c to the standard library color representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// DrawStyle selects how closed geometry is painted.
type DrawStyle uint32

const (
	StyleFill DrawStyle = iota
	StyleStroke
	StyleStrokeAndFill
)

// String returns the style name.
func (s DrawStyle) String() string {
	switch s {
	case StyleFill:
		return "Fill"
	case StyleStroke:
		return "Stroke"
	case StyleStrokeAndFill:
		return "StrokeAndFill"
	default:
		return unknownStr
	}
}

// StrokeCap is the shape of open stroke ends.
type StrokeCap uint32

const (
	CapButt StrokeCap = iota
	CapRound
	CapSquare
)

// StrokeJoin is the shape of stroke corners.
type StrokeJoin uint32

const (
	JoinMiter StrokeJoin = iota
	JoinRound
	JoinBevel
)

// BlendMode is a Porter-Duff or advanced compositing mode.
type BlendMode uint32

const (
	BlendClear BlendMode = iota
	BlendSrc
	BlendDst
	BlendSrcOver
	BlendDstOver
	BlendSrcIn
	BlendDstIn
	BlendSrcOut
	BlendDstOut
	BlendSrcATop
	BlendDstATop
	BlendXor
	BlendPlus
	BlendModulate
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendMultiply
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

var blendModeNames = [...]string{
	BlendClear:      "Clear",
	BlendSrc:        "Src",
	BlendDst:        "Dst",
	BlendSrcOver:    "SrcOver",
	BlendDstOver:    "DstOver",
	BlendSrcIn:      "SrcIn",
	BlendDstIn:      "DstIn",
	BlendSrcOut:     "SrcOut",
	BlendDstOut:     "DstOut",
	BlendSrcATop:    "SrcATop",
	BlendDstATop:    "DstATop",
	BlendXor:        "Xor",
	BlendPlus:       "Plus",
	BlendModulate:   "Modulate",
	BlendScreen:     "Screen",
	BlendOverlay:    "Overlay",
	BlendDarken:     "Darken",
	BlendLighten:    "Lighten",
	BlendColorDodge: "ColorDodge",
	BlendColorBurn:  "ColorBurn",
	BlendHardLight:  "HardLight",
	BlendSoftLight:  "SoftLight",
	BlendDifference: "Difference",
	BlendExclusion:  "Exclusion",
	BlendMultiply:   "Multiply",
	BlendHue:        "Hue",
	BlendSaturation: "Saturation",
	BlendColor:      "Color",
	BlendLuminosity: "Luminosity",
}

// String returns the mode name.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return unknownStr
}

// BlurStyle selects which side of a shape edge a mask blur affects.
type BlurStyle uint32

const (
	BlurNormal BlurStyle = iota // fuzzy inside and outside
	BlurSolid                   // solid inside, fuzzy outside
	BlurOuter                   // nothing inside, fuzzy outside
	BlurInner                   // fuzzy inside, nothing outside
)

// ClipOp selects how a clip shape combines with the current clip.
type ClipOp uint32

const (
	ClipIntersect ClipOp = iota
	ClipDifference
)

// PointMode selects how DrawPoints interprets its point array.
type PointMode uint32

const (
	PointModePoints  PointMode = iota // each point is a dot
	PointModeLines                    // each pair is a segment
	PointModePolygon                  // the points form an open polyline
)

// FilterMode selects image sampling between texels.
type FilterMode uint8

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// MipmapMode selects sampling between mip levels.
type MipmapMode uint8

const (
	MipmapNone MipmapMode = iota
	MipmapNearest
	MipmapLinear
)

// SamplingOptions describes how an image is sampled.
type SamplingOptions struct {
	Filter FilterMode
	Mipmap MipmapMode
}

// SrcRectConstraint tells DrawImageRect whether sampling may read outside src.
type SrcRectConstraint uint8

const (
	ConstraintStrict SrcRectConstraint = iota
	ConstraintFast
)

// Attributes is the persistent paint state read by every draw call.
// Save and restore never modify it.
type Attributes struct {
	AntiAlias    bool
	Dither       bool
	InvertColors bool
	Style        DrawStyle
	StrokeWidth  float32
	StrokeMiter  float32
	StrokeCap    StrokeCap
	StrokeJoin   StrokeJoin
	Color        Color
	BlendMode    BlendMode
	Shader       Shader
	ColorFilter  ColorFilter
	ImageFilter  ImageFilter
	PathEffect   PathEffect
	MaskFilter   MaskFilter
}

// DefaultAttributes returns the state every Dispatch starts from:
// opaque black fill, hairline stroke width, miter limit 4, SrcOver.
func DefaultAttributes() Attributes {
	return Attributes{
		Style:       StyleFill,
		StrokeWidth: 0,
		StrokeMiter: 4,
		StrokeCap:   CapButt,
		StrokeJoin:  JoinMiter,
		Color:       ColorBlack,
		BlendMode:   BlendSrcOver,
	}
}

// The setters below let a Dispatcher embed Attributes and forward the
// attribute half of its method set.

func (a *Attributes) SetAntiAlias(aa bool)         { a.AntiAlias = aa }
func (a *Attributes) SetDither(dither bool)        { a.Dither = dither }
func (a *Attributes) SetInvertColors(invert bool)  { a.InvertColors = invert }
func (a *Attributes) SetStrokeCap(c StrokeCap)     { a.StrokeCap = c }
func (a *Attributes) SetStrokeJoin(j StrokeJoin)   { a.StrokeJoin = j }
func (a *Attributes) SetStyle(s DrawStyle)         { a.Style = s }
func (a *Attributes) SetStrokeWidth(w float32)     { a.StrokeWidth = w }
func (a *Attributes) SetStrokeMiter(limit float32) { a.StrokeMiter = limit }
func (a *Attributes) SetColor(c Color)             { a.Color = c }
func (a *Attributes) SetBlendMode(m BlendMode)     { a.BlendMode = m }
func (a *Attributes) SetShader(s Shader)           { a.Shader = s }
func (a *Attributes) SetColorFilter(f ColorFilter) { a.ColorFilter = f }
func (a *Attributes) SetImageFilter(f ImageFilter) { a.ImageFilter = f }
func (a *Attributes) SetPathEffect(e PathEffect)   { a.PathEffect = e }
func (a *Attributes) SetMaskFilter(f MaskFilter)   { a.MaskFilter = f }

// SetMaskBlurFilter installs a BlurMaskFilter without the caller allocating one.
func (a *Attributes) SetMaskBlurFilter(style BlurStyle, sigma float32) {
	a.MaskFilter = BlurMaskFilter{Style: style, Sigma: sigma}
}

// EffectiveColor returns the color a draw call paints with once the color
// filter and color inversion have been applied.
func (a *Attributes) EffectiveColor() Color {
	c := a.Color
	if a.ColorFilter != nil {
		c = a.ColorFilter.FilterColor(c)
	}
	if a.InvertColors {
		c = c.Inverted()
	}
	return c
}

const unknownStr = "Unknown"
