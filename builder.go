package displaylist

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/gogpu/gg"
	"golang.org/x/image/math/f32"
)

const (
	defaultArenaSize = 512

	sizeBool   = 1
	sizeU32    = 4
	sizePoint  = 8
	sizeRect   = 16
	sizeIRect  = 16
	sizeRRect  = sizeRect + 4*sizePoint
	sizeXform  = 16
	sizeAff3   = 6 * 4
	sizeMat4   = 16 * 4
	sizeSample = 2
)

// Builder records drawing calls into a compact byte arena. Its method set
// mirrors Dispatcher; each call appends exactly one op record.
//
// Example:
//
//	b := displaylist.NewBuilder()
//	b.SetColor(displaylist.ColorBlue)
//	b.DrawRect(displaylist.LTRB(0, 0, 10, 10))
//	b.Save()
//	b.Translate(100, 100)
//	b.DrawCircle(displaylist.Pt(0, 0), 5)
//	b.Restore()
//	dl := b.Build()
//
// A Builder is not safe for concurrent use. After Build the builder starts
// over with a fresh, empty arena.
type Builder struct {
	storage []byte
	refs    []any

	opCount     int
	saveLevel   int
	nestedBytes int
	nestedOps   int

	cull     Rect
	capacity int
}

var _ Dispatcher = (*Builder)(nil)

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	o := defaultBuilderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{
		storage:  make([]byte, 0, o.capacity),
		cull:     o.cull,
		capacity: o.capacity,
	}
}

// Build finalizes the recording. Saves left open are closed first so that
// every list it produces has balanced save/restore nesting. The arena is
// handed to the DisplayList without copying and the Builder is reset.
func (b *Builder) Build() *DisplayList {
	for b.saveLevel > 0 {
		b.Restore()
	}
	dl := &DisplayList{
		storage:     slices.Clip(b.storage),
		refs:        slices.Clip(b.refs),
		opCount:     b.opCount,
		nestedBytes: b.nestedBytes,
		nestedOps:   b.nestedOps,
		cull:        b.cull,
		uniqueID:    nextUniqueID(),
	}
	Logger().Debug("displaylist: built",
		"id", dl.uniqueID,
		"bytes", len(dl.storage),
		"ops", dl.opCount,
		"nested_bytes", dl.nestedBytes,
		"nested_ops", dl.nestedOps)

	b.storage = make([]byte, 0, b.capacity)
	b.refs = nil
	b.opCount = 0
	b.nestedBytes = 0
	b.nestedOps = 0
	return dl
}

// OpCount returns the number of ops recorded so far.
func (b *Builder) OpCount() int { return b.opCount }

// Bytes returns the number of arena bytes used so far.
func (b *Builder) Bytes() int { return len(b.storage) }

// SaveLevel returns the current save nesting depth.
func (b *Builder) SaveLevel() int { return b.saveLevel }

// CullRect returns the cull rectangle the builder was created with.
func (b *Builder) CullRect() Rect { return b.cull }

// push reserves a record for op t with a payload of n bytes, writes the
// header, appends refs and bumps the op count by inc. The returned writer
// is positioned at the start of the payload.
func (b *Builder) push(t opType, n int, inc int, refs ...any) *recordWriter {
	if len(refs) != t.numRefs() {
		panic(fmt.Sprintf("displaylist: %v takes %d refs, got %d", t, t.numRefs(), len(refs)))
	}
	size := (headerSize + n + 3) &^ 3
	if size > maxRecord {
		panic(fmt.Sprintf("displaylist: %v record of %d bytes exceeds the record size limit", t, size))
	}
	start := len(b.storage)
	if need := start + size; need > cap(b.storage) {
		grown := make([]byte, start, max(2*cap(b.storage), need, defaultArenaSize))
		copy(grown, b.storage)
		b.storage = grown
	}
	b.storage = b.storage[:start+size]
	rec := b.storage[start:]
	clear(rec)
	binary.LittleEndian.PutUint32(rec, uint32(t)|uint32(size)<<8)

	b.refs = append(b.refs, refs...)
	b.opCount += inc
	return &recordWriter{buf: rec[headerSize:]}
}

// recordWriter fills the payload of one record sequentially.
type recordWriter struct {
	buf []byte
	off int
}

func (w *recordWriter) u8(v uint8) *recordWriter {
	w.buf[w.off] = v
	w.off++
	return w
}

func (w *recordWriter) bool(v bool) *recordWriter {
	if v {
		return w.u8(1)
	}
	return w.u8(0)
}

func (w *recordWriter) u32(v uint32) *recordWriter {
	binary.LittleEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
	return w
}

func (w *recordWriter) i32(v int32) *recordWriter { return w.u32(uint32(v)) }

func (w *recordWriter) f32(v float32) *recordWriter { return w.u32(math.Float32bits(v)) }

func (w *recordWriter) point(p Point) *recordWriter { return w.f32(p.X).f32(p.Y) }

func (w *recordWriter) rect(r Rect) *recordWriter {
	return w.f32(r.Left).f32(r.Top).f32(r.Right).f32(r.Bottom)
}

func (w *recordWriter) irect(r IRect) *recordWriter {
	return w.i32(r.Left).i32(r.Top).i32(r.Right).i32(r.Bottom)
}

func (w *recordWriter) rrect(rr RRect) *recordWriter {
	w.rect(rr.Rect)
	for _, r := range rr.Radii {
		w.point(r)
	}
	return w
}

func (w *recordWriter) sampling(s SamplingOptions) *recordWriter {
	return w.u8(uint8(s.Filter)).u8(uint8(s.Mipmap))
}

// --------------------------------------------------------------------------
// Attributes
// --------------------------------------------------------------------------

func (b *Builder) SetAntiAlias(aa bool)         { b.push(opSetAntiAlias, sizeBool, 1).bool(aa) }
func (b *Builder) SetDither(dither bool)        { b.push(opSetDither, sizeBool, 1).bool(dither) }
func (b *Builder) SetInvertColors(invert bool)  { b.push(opSetInvertColors, sizeBool, 1).bool(invert) }
func (b *Builder) SetStrokeCap(c StrokeCap)     { b.push(opSetStrokeCap, sizeU32, 1).u32(uint32(c)) }
func (b *Builder) SetStrokeJoin(j StrokeJoin)   { b.push(opSetStrokeJoin, sizeU32, 1).u32(uint32(j)) }
func (b *Builder) SetStyle(s DrawStyle)         { b.push(opSetStyle, sizeU32, 1).u32(uint32(s)) }
func (b *Builder) SetStrokeWidth(width float32) { b.push(opSetStrokeWidth, sizeU32, 1).f32(width) }
func (b *Builder) SetStrokeMiter(limit float32) { b.push(opSetStrokeMiter, sizeU32, 1).f32(limit) }
func (b *Builder) SetColor(c Color)             { b.push(opSetColor, sizeU32, 1).u32(uint32(c)) }
func (b *Builder) SetBlendMode(m BlendMode)     { b.push(opSetBlendMode, sizeU32, 1).u32(uint32(m)) }

// SetShader records s, or a clear op when s is nil.
func (b *Builder) SetShader(s Shader) {
	if s == nil {
		b.push(opClearShader, 0, 1)
		return
	}
	b.push(opSetShader, 0, 1, s)
}

// SetColorFilter records f, or a clear op when f is nil.
func (b *Builder) SetColorFilter(f ColorFilter) {
	if f == nil {
		b.push(opClearColorFilter, 0, 1)
		return
	}
	b.push(opSetColorFilter, 0, 1, f)
}

// SetImageFilter records f, or a clear op when f is nil.
func (b *Builder) SetImageFilter(f ImageFilter) {
	if f == nil {
		b.push(opClearImageFilter, 0, 1)
		return
	}
	b.push(opSetImageFilter, 0, 1, f)
}

// SetPathEffect records e, or a clear op when e is nil.
func (b *Builder) SetPathEffect(e PathEffect) {
	if e == nil {
		b.push(opClearPathEffect, 0, 1)
		return
	}
	b.push(opSetPathEffect, 0, 1, e)
}

// SetMaskFilter records f, or a clear op when f is nil. A BlurMaskFilter
// value is recorded with the allocation-free blur shortcut ops.
func (b *Builder) SetMaskFilter(f MaskFilter) {
	switch mf := f.(type) {
	case nil:
		b.push(opClearMaskFilter, 0, 1)
	case BlurMaskFilter:
		b.SetMaskBlurFilter(mf.Style, mf.Sigma)
	default:
		b.push(opSetMaskFilter, 0, 1, f)
	}
}

// SetMaskBlurFilter records one of the four blur shortcut ops.
func (b *Builder) SetMaskBlurFilter(style BlurStyle, sigma float32) {
	var t opType
	switch style {
	case BlurSolid:
		t = opSetMaskBlurFilterSolid
	case BlurOuter:
		t = opSetMaskBlurFilterOuter
	case BlurInner:
		t = opSetMaskBlurFilterInner
	default:
		t = opSetMaskBlurFilterNormal
	}
	b.push(t, sizeU32, 1).f32(sigma)
}

// --------------------------------------------------------------------------
// Save and restore
// --------------------------------------------------------------------------

// Save records a save and increments the save level.
func (b *Builder) Save() {
	b.push(opSave, 0, 1)
	b.saveLevel++
}

// SaveLayer records a layer save, with bounds when they are given.
func (b *Builder) SaveLayer(bounds *Rect, restoreWithPaint bool) {
	if bounds != nil {
		b.push(opSaveLayerBounds, sizeRect+sizeBool, 1).rect(*bounds).bool(restoreWithPaint)
	} else {
		b.push(opSaveLayer, sizeBool, 1).bool(restoreWithPaint)
	}
	b.saveLevel++
}

// Restore records a restore. A restore without a matching save is dropped.
func (b *Builder) Restore() {
	if b.saveLevel == 0 {
		return
	}
	b.push(opRestore, 0, 1)
	b.saveLevel--
}

// --------------------------------------------------------------------------
// Transforms
// --------------------------------------------------------------------------

func (b *Builder) Translate(tx, ty float32) { b.push(opTranslate, 2*sizeU32, 1).f32(tx).f32(ty) }
func (b *Builder) Scale(sx, sy float32)     { b.push(opScale, 2*sizeU32, 1).f32(sx).f32(sy) }
func (b *Builder) Rotate(degrees float32)   { b.push(opRotate, sizeU32, 1).f32(degrees) }
func (b *Builder) Skew(sx, sy float32)      { b.push(opSkew, 2*sizeU32, 1).f32(sx).f32(sy) }

// Transform2DAffine records a 2x3 affine composition.
func (b *Builder) Transform2DAffine(m f32.Aff3) {
	w := b.push(opTransform2DAffine, sizeAff3, 1)
	for _, v := range m {
		w.f32(v)
	}
}

// TransformFullPerspective records a 4x4 composition.
func (b *Builder) TransformFullPerspective(m f32.Mat4) {
	w := b.push(opTransformFullPerspective, sizeMat4, 1)
	for _, v := range m {
		w.f32(v)
	}
}

// --------------------------------------------------------------------------
// Clips
// --------------------------------------------------------------------------

func (b *Builder) ClipRect(r Rect, op ClipOp, aa bool) {
	t := opClipIntersectRect
	if op == ClipDifference {
		t = opClipDifferenceRect
	}
	b.push(t, sizeRect+sizeBool, 1).rect(r).bool(aa)
}

func (b *Builder) ClipRRect(rr RRect, op ClipOp, aa bool) {
	t := opClipIntersectRRect
	if op == ClipDifference {
		t = opClipDifferenceRRect
	}
	b.push(t, sizeRRect+sizeBool, 1).rrect(rr).bool(aa)
}

// ClipPath records a copy of p.
func (b *Builder) ClipPath(p *gg.Path, op ClipOp, aa bool) {
	t := opClipIntersectPath
	if op == ClipDifference {
		t = opClipDifferencePath
	}
	b.push(t, sizeBool, 1, clonePath(p)).bool(aa)
}

// --------------------------------------------------------------------------
// Draw calls
// --------------------------------------------------------------------------

func (b *Builder) DrawPaint() { b.push(opDrawPaint, 0, 1) }

func (b *Builder) DrawColor(c Color, mode BlendMode) {
	b.push(opDrawColor, 2*sizeU32, 1).u32(uint32(c)).u32(uint32(mode))
}

func (b *Builder) DrawLine(p0, p1 Point) { b.push(opDrawLine, 2*sizePoint, 1).point(p0).point(p1) }
func (b *Builder) DrawRect(r Rect)       { b.push(opDrawRect, sizeRect, 1).rect(r) }
func (b *Builder) DrawOval(bounds Rect)  { b.push(opDrawOval, sizeRect, 1).rect(bounds) }
func (b *Builder) DrawRRect(rr RRect)    { b.push(opDrawRRect, sizeRRect, 1).rrect(rr) }
func (b *Builder) DrawDRRect(o, i RRect) { b.push(opDrawDRRect, 2*sizeRRect, 1).rrect(o).rrect(i) }
func (b *Builder) DrawPath(p *gg.Path)   { b.push(opDrawPath, 0, 1, clonePath(p)) }

func (b *Builder) DrawCircle(center Point, radius float32) {
	b.push(opDrawCircle, sizePoint+sizeU32, 1).point(center).f32(radius)
}

func (b *Builder) DrawArc(oval Rect, startDegrees, sweepDegrees float32, useCenter bool) {
	b.push(opDrawArc, sizeRect+2*sizeU32+sizeBool, 1).
		rect(oval).f32(startDegrees).f32(sweepDegrees).bool(useCenter)
}

// DrawPoints records pts inline; the mode selects the op variant.
func (b *Builder) DrawPoints(mode PointMode, pts []Point) {
	var t opType
	switch mode {
	case PointModeLines:
		t = opDrawLines
	case PointModePolygon:
		t = opDrawPolygon
	default:
		t = opDrawPoints
	}
	w := b.push(t, sizeU32+len(pts)*sizePoint, 1).u32(uint32(len(pts)))
	for _, p := range pts {
		w.point(p)
	}
}

// DrawVertices records a copy of v. A nil mesh is recorded and draws nothing.
func (b *Builder) DrawVertices(v *Vertices, mode BlendMode) {
	b.push(opDrawVertices, sizeU32, 1, v.Clone()).u32(uint32(mode))
}

func (b *Builder) DrawImage(img image.Image, at Point, sampling SamplingOptions, withAttributes bool) {
	t := opDrawImage
	if withAttributes {
		t = opDrawImageWithAttr
	}
	b.push(t, sizePoint+sizeSample, 1, img).point(at).sampling(sampling)
}

func (b *Builder) DrawImageRect(img image.Image, src, dst Rect, sampling SamplingOptions,
	withAttributes bool, constraint SrcRectConstraint) {
	b.push(opDrawImageRect, 2*sizeRect+sizeSample+2, 1, img).
		rect(src).rect(dst).sampling(sampling).bool(withAttributes).u8(uint8(constraint))
}

func (b *Builder) DrawImageNine(img image.Image, center IRect, dst Rect, filter FilterMode, withAttributes bool) {
	t := opDrawImageNine
	if withAttributes {
		t = opDrawImageNineWithAttr
	}
	b.push(t, sizeIRect+sizeRect+1, 1, img).irect(center).rect(dst).u8(uint8(filter))
}

// DrawImageLattice records a copy of lattice.
func (b *Builder) DrawImageLattice(img image.Image, lattice *Lattice, dst Rect, filter FilterMode, withAttributes bool) {
	b.push(opDrawImageLattice, sizeRect+2, 1, img, lattice.Clone()).
		rect(dst).u8(uint8(filter)).bool(withAttributes)
}

// DrawAtlas records the sprite arrays inline. The sprite count is
// min(len(xforms), len(tex)); colors are kept only if there is one per sprite.
func (b *Builder) DrawAtlas(atlas image.Image, xforms []RSXform, tex []Rect, colors []Color, mode BlendMode,
	sampling SamplingOptions, cull *Rect, withAttributes bool) {
	n := min(len(xforms), len(tex))
	hasColors := len(colors) >= n && colors != nil
	size := 2*sizeU32 + sizeSample + 2 + n*(sizeXform+sizeRect)
	t := opDrawAtlas
	if cull != nil {
		t = opDrawAtlasCulled
		size += sizeRect
	}
	if hasColors {
		size += n * sizeU32
	}
	w := b.push(t, size, 1, atlas).u32(uint32(n)).u32(uint32(mode))
	if cull != nil {
		w.rect(*cull)
	}
	w.sampling(sampling).bool(withAttributes).bool(hasColors)
	for _, x := range xforms[:n] {
		w.f32(x.SCos).f32(x.SSin).f32(x.TX).f32(x.TY)
	}
	for _, r := range tex[:n] {
		w.rect(r)
	}
	if hasColors {
		for _, c := range colors[:n] {
			w.u32(uint32(c))
		}
	}
}

// DrawPicture records p and adds its cost to the nested counters.
func (b *Builder) DrawPicture(p Picture, matrix *f32.Aff3, withAttributes bool) {
	if matrix != nil {
		w := b.push(opDrawPictureMatrix, sizeAff3+sizeBool, 1, p)
		for _, v := range matrix {
			w.f32(v)
		}
		w.bool(withAttributes)
	} else {
		b.push(opDrawPicture, sizeBool, 1, p).bool(withAttributes)
	}
	if p != nil {
		b.nestedBytes += p.ApproximateBytesUsed()
		b.nestedOps += p.ApproximateOpCount(true)
	}
}

// DrawDisplayList records dl and adds its nested-inclusive cost to the
// nested counters.
func (b *Builder) DrawDisplayList(dl *DisplayList) {
	b.push(opDrawDisplayList, 0, 1, dl)
	if dl != nil {
		b.nestedBytes += dl.Bytes(true)
		b.nestedOps += dl.OpCount(true)
	}
}

func (b *Builder) DrawTextBlob(blob *TextBlob, x, y float32) {
	b.push(opDrawTextBlob, 2*sizeU32, 1, blob).f32(x).f32(y)
}

// DrawShadow records a copy of p.
func (b *Builder) DrawShadow(p *gg.Path, c Color, elevation float32, transparentOccluder bool, dpr float32) {
	t := opDrawShadow
	if transparentOccluder {
		t = opDrawShadowTransparentOccluder
	}
	b.push(t, 3*sizeU32, 1, clonePath(p)).u32(uint32(c)).f32(elevation).f32(dpr)
}
