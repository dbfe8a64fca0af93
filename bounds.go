package displaylist

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/math/f32"
)

// Shadow geometry, in logical pixels.
const (
	shadowLightHeight = 600
	shadowLightRadius = 800
)

// boundsAccumulator is the Dispatcher behind DisplayList.Bounds. It tracks
// the transform and clip stacks and the attributes that widen draw calls,
// and unions the device-space footprint of every draw.
type boundsAccumulator struct {
	Attributes

	cull    Rect
	matrix  f32.Mat4
	clip    Rect
	clipped bool
	bounds  Rect
	stack   []boundsFrame
}

// boundsFrame is one save level. Layer frames also hold the bounds
// accumulated outside the layer and the filter applied on restore.
type boundsFrame struct {
	matrix  f32.Mat4
	clip    Rect
	clipped bool

	layer  bool
	outer  Rect
	filter ImageFilter
}

var _ Dispatcher = (*boundsAccumulator)(nil)

func newBoundsAccumulator(cull Rect) *boundsAccumulator {
	return &boundsAccumulator{
		Attributes: DefaultAttributes(),
		cull:       cull,
		matrix:     IdentityMatrix(),
	}
}

// Bounds returns the accumulated bounds, or the zero Rect when nothing was
// drawn.
func (b *boundsAccumulator) Bounds() Rect {
	if b.bounds.IsEmpty() {
		return Rect{}
	}
	return b.bounds
}

// addUnbounded unions the cull rectangle, limited by the current clip.
func (b *boundsAccumulator) addUnbounded() {
	r := b.cull
	if b.clipped {
		var ok bool
		if r, ok = r.Intersect(b.clip); !ok {
			return
		}
	}
	b.bounds = b.bounds.Union(r)
}

// addDevice unions a device-space rectangle, limited by the current clip.
func (b *boundsAccumulator) addDevice(r Rect) {
	if b.clipped {
		var ok bool
		if r, ok = r.Intersect(b.clip); !ok {
			return
		}
	}
	b.bounds = b.bounds.Union(r)
}

// addLocal maps a local rectangle through the current transform.
func (b *boundsAccumulator) addLocal(r Rect) {
	dev, ok := mapRect(b.matrix, r)
	if !ok {
		b.addUnbounded()
		return
	}
	b.addDevice(dev)
}

// addDraw widens r by the current attributes and adds it. stroked reports
// whether the geometry is stroked regardless of the draw style. Flat
// geometry still covers pixels when stroked.
func (b *boundsAccumulator) addDraw(r Rect, stroked bool) {
	pad := b.strokePad(stroked)
	if pad == 0 && r.IsEmpty() {
		return
	}
	if pad > 0 {
		r = r.Outset(pad, pad)
	}
	b.addFiltered(r, true)
}

// addFiltered applies the path effect, mask filter and image filter outsets
// when withAttributes is set, then adds r.
func (b *boundsAccumulator) addFiltered(r Rect, withAttributes bool) {
	if withAttributes {
		var ok bool
		if b.PathEffect != nil {
			if r, ok = b.PathEffect.EffectBounds(r); !ok {
				b.addUnbounded()
				return
			}
		}
		if b.MaskFilter != nil {
			r = b.MaskFilter.MaskBounds(r)
		}
		if b.ImageFilter != nil {
			if r, ok = b.ImageFilter.FilterBounds(r); !ok {
				b.addUnbounded()
				return
			}
		}
	}
	if r.IsEmpty() {
		return
	}
	b.addLocal(r)
}

// strokePad returns how far a stroke can extend past the geometry. Hairlines
// (zero width) are padded by half a pixel.
func (b *boundsAccumulator) strokePad(stroked bool) float32 {
	if !stroked && b.Style == StyleFill {
		return 0
	}
	pad := b.StrokeWidth / 2
	if b.StrokeWidth <= 0 {
		pad = 0.5
	}
	factor := float32(1)
	if b.StrokeJoin == JoinMiter && b.StrokeMiter > 1 {
		factor = b.StrokeMiter
	}
	if b.StrokeCap == CapSquare {
		factor = max(factor, math.Sqrt2)
	}
	return pad * factor
}

// Save and restore

func (b *boundsAccumulator) Save() {
	b.stack = append(b.stack, boundsFrame{matrix: b.matrix, clip: b.clip, clipped: b.clipped})
}

func (b *boundsAccumulator) SaveLayer(bounds *Rect, restoreWithPaint bool) {
	f := boundsFrame{
		matrix:  b.matrix,
		clip:    b.clip,
		clipped: b.clipped,
		layer:   true,
		outer:   b.bounds,
	}
	if restoreWithPaint {
		f.filter = b.ImageFilter
	}
	b.stack = append(b.stack, f)
	b.bounds = Rect{}
	if bounds != nil {
		b.ClipRect(*bounds, ClipIntersect, false)
	}
}

func (b *boundsAccumulator) Restore() {
	if len(b.stack) == 0 {
		return
	}
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.matrix, b.clip, b.clipped = f.matrix, f.clip, f.clipped
	if !f.layer {
		return
	}
	content := b.bounds
	b.bounds = f.outer
	if content.IsEmpty() {
		return
	}
	if f.filter != nil {
		var ok bool
		if content, ok = f.filter.FilterBounds(content); !ok {
			b.addUnbounded()
			return
		}
	}
	b.addDevice(content)
}

// Transforms

func (b *boundsAccumulator) Translate(tx, ty float32) {
	b.matrix = concat(b.matrix, translateMatrix(tx, ty))
}

func (b *boundsAccumulator) Scale(sx, sy float32) {
	b.matrix = concat(b.matrix, scaleMatrix(sx, sy))
}

func (b *boundsAccumulator) Rotate(degrees float32) {
	b.matrix = concat(b.matrix, rotateMatrix(degrees))
}

func (b *boundsAccumulator) Skew(sx, sy float32) {
	b.matrix = concat(b.matrix, skewMatrix(sx, sy))
}

func (b *boundsAccumulator) Transform2DAffine(m f32.Aff3) {
	b.matrix = concat(b.matrix, AffineToMatrix(m))
}

func (b *boundsAccumulator) TransformFullPerspective(m f32.Mat4) {
	b.matrix = concat(b.matrix, m)
}

// Clips. Difference clips never shrink the clip bounds.

func (b *boundsAccumulator) clipTo(local Rect, op ClipOp) {
	if op == ClipDifference {
		return
	}
	dev, ok := mapRect(b.matrix, local)
	if !ok {
		return
	}
	if b.clipped {
		dev, _ = dev.Intersect(b.clip)
	}
	b.clip = dev
	b.clipped = true
}

func (b *boundsAccumulator) ClipRect(r Rect, op ClipOp, _ bool) {
	b.clipTo(r.MakeSorted(), op)
}

func (b *boundsAccumulator) ClipRRect(rr RRect, op ClipOp, _ bool) {
	b.clipTo(rr.Bounds().MakeSorted(), op)
}

func (b *boundsAccumulator) ClipPath(p *gg.Path, op ClipOp, _ bool) {
	b.clipTo(PathBounds(p), op)
}

// Draw calls

func (b *boundsAccumulator) DrawPaint() { b.addUnbounded() }

func (b *boundsAccumulator) DrawColor(Color, BlendMode) { b.addUnbounded() }

func (b *boundsAccumulator) DrawLine(p0, p1 Point) {
	b.addDraw(RectFromPoints([]Point{p0, p1}), true)
}

func (b *boundsAccumulator) DrawRect(r Rect) { b.addDraw(r.MakeSorted(), false) }

func (b *boundsAccumulator) DrawOval(bounds Rect) { b.addDraw(bounds.MakeSorted(), false) }

func (b *boundsAccumulator) DrawCircle(center Point, radius float32) {
	b.addDraw(LTRB(center.X-radius, center.Y-radius, center.X+radius, center.Y+radius), false)
}

func (b *boundsAccumulator) DrawRRect(rr RRect) { b.addDraw(rr.Bounds().MakeSorted(), false) }

func (b *boundsAccumulator) DrawDRRect(outer, _ RRect) { b.addDraw(outer.Bounds().MakeSorted(), false) }

func (b *boundsAccumulator) DrawArc(oval Rect, _, _ float32, _ bool) {
	b.addDraw(oval.MakeSorted(), false)
}

func (b *boundsAccumulator) DrawPath(p *gg.Path) {
	if p == nil || len(p.Elements()) == 0 {
		return
	}
	b.addDraw(PathBounds(p), false)
}

func (b *boundsAccumulator) DrawPoints(_ PointMode, pts []Point) {
	if len(pts) == 0 {
		return
	}
	b.addDraw(RectFromPoints(pts), true)
}

func (b *boundsAccumulator) DrawVertices(v *Vertices, _ BlendMode) {
	if v == nil {
		return
	}
	b.addFiltered(v.Bounds(), true)
}

func (b *boundsAccumulator) DrawImage(img image.Image, at Point, _ SamplingOptions, withAttributes bool) {
	if img == nil {
		return
	}
	sz := img.Bounds().Size()
	b.addFiltered(XYWH(at.X, at.Y, float32(sz.X), float32(sz.Y)), withAttributes)
}

func (b *boundsAccumulator) DrawImageRect(_ image.Image, _, dst Rect, _ SamplingOptions,
	withAttributes bool, _ SrcRectConstraint) {
	b.addFiltered(dst.MakeSorted(), withAttributes)
}

func (b *boundsAccumulator) DrawImageNine(_ image.Image, _ IRect, dst Rect, _ FilterMode, withAttributes bool) {
	b.addFiltered(dst.MakeSorted(), withAttributes)
}

func (b *boundsAccumulator) DrawImageLattice(_ image.Image, _ *Lattice, dst Rect, _ FilterMode, withAttributes bool) {
	b.addFiltered(dst.MakeSorted(), withAttributes)
}

func (b *boundsAccumulator) DrawAtlas(_ image.Image, xforms []RSXform, tex []Rect, _ []Color, _ BlendMode,
	_ SamplingOptions, cull *Rect, withAttributes bool) {
	if cull != nil {
		b.addFiltered(cull.MakeSorted(), withAttributes)
		return
	}
	var r Rect
	for i := range min(len(xforms), len(tex)) {
		r = r.Union(xforms[i].QuadBounds(tex[i].Width(), tex[i].Height()))
	}
	b.addFiltered(r, withAttributes)
}

func (b *boundsAccumulator) DrawPicture(p Picture, matrix *f32.Aff3, withAttributes bool) {
	if p == nil {
		return
	}
	r := p.CullRect()
	if matrix != nil {
		var ok bool
		if r, ok = mapRect(AffineToMatrix(*matrix), r); !ok {
			b.addUnbounded()
			return
		}
	}
	b.addFiltered(r, withAttributes)
}

func (b *boundsAccumulator) DrawDisplayList(dl *DisplayList) {
	if dl == nil {
		return
	}
	if r := dl.Bounds(); !r.IsEmpty() {
		b.addLocal(r)
	}
}

func (b *boundsAccumulator) DrawTextBlob(blob *TextBlob, x, y float32) {
	if blob == nil || blob.Bounds().IsEmpty() {
		return
	}
	b.addDraw(blob.Bounds().Offset(x, y), false)
}

// DrawShadow pads the occluder bounds by the spot shadow penumbra of a light
// shadowLightHeight above the canvas.
func (b *boundsAccumulator) DrawShadow(p *gg.Path, _ Color, elevation float32, _ bool, dpr float32) {
	r := PathBounds(p)
	if r.IsEmpty() {
		return
	}
	if dpr <= 0 {
		dpr = 1
	}
	z := elevation * dpr
	if z >= shadowLightHeight {
		b.addUnbounded()
		return
	}
	penumbra := shadowLightRadius * z / (shadowLightHeight - z) / dpr
	b.addLocal(r.Outset(penumbra+elevation, penumbra+elevation))
}

