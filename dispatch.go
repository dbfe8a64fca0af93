package displaylist

import (
	"encoding/binary"
	"image"
	"iter"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/math/f32"
)

// OpInfo describes one record of a display list without decoding it.
type OpInfo struct {
	Offset int   // byte offset of the record header
	Size   int   // record size including header and padding
	Code   uint8 // op type
}

// Name returns the op name.
func (o OpInfo) Name() string { return OpName(o.Code) }

// Ops iterates over the records of the list in order.
func (dl *DisplayList) Ops() iter.Seq[OpInfo] {
	return func(yield func(OpInfo) bool) {
		for off := 0; off+headerSize <= len(dl.storage); {
			h := binary.LittleEndian.Uint32(dl.storage[off:])
			size := int(h >> 8)
			if size < headerSize {
				return
			}
			if !yield(OpInfo{Offset: off, Size: size, Code: uint8(h)}) {
				return
			}
			off += size
		}
	}
}

// Dispatch replays every op to d in recording order. The list must come
// from Builder.Build; use Validate to check a list of unknown origin first.
func (dl *DisplayList) Dispatch(d Dispatcher) {
	dec := decoder{refs: dl.refs}
	for off := 0; off < len(dl.storage); {
		h := binary.LittleEndian.Uint32(dl.storage[off:])
		t, size := opType(h), int(h>>8)
		dec.r = recordReader{buf: dl.storage[off+headerSize : off+size]}
		dec.dispatch(t, d)
		off += size
	}
}

// decoder holds the refs cursor and scratch slices shared by all records of
// one Dispatch call. Scratch slices are handed to the Dispatcher and reused
// by the next record.
type decoder struct {
	r      recordReader
	refs   []any
	ref    int
	points []Point
	xforms []RSXform
	tex    []Rect
	colors []Color
}

func (dec *decoder) next() any {
	v := dec.refs[dec.ref]
	dec.ref++
	return v
}

func (dec *decoder) image() image.Image {
	img, _ := dec.next().(image.Image)
	return img
}

func (dec *decoder) path() *gg.Path {
	p, _ := dec.next().(*gg.Path)
	return p
}

func (dec *decoder) dispatch(t opType, d Dispatcher) {
	r := &dec.r
	switch t {
	case opSetAntiAlias:
		d.SetAntiAlias(r.bool())
	case opSetDither:
		d.SetDither(r.bool())
	case opSetInvertColors:
		d.SetInvertColors(r.bool())
	case opSetStrokeCap:
		d.SetStrokeCap(StrokeCap(r.u32()))
	case opSetStrokeJoin:
		d.SetStrokeJoin(StrokeJoin(r.u32()))
	case opSetStyle:
		d.SetStyle(DrawStyle(r.u32()))
	case opSetStrokeWidth:
		d.SetStrokeWidth(r.f32())
	case opSetStrokeMiter:
		d.SetStrokeMiter(r.f32())
	case opSetColor:
		d.SetColor(Color(r.u32()))
	case opSetBlendMode:
		d.SetBlendMode(BlendMode(r.u32()))
	case opSetShader:
		s, _ := dec.next().(Shader)
		d.SetShader(s)
	case opClearShader:
		d.SetShader(nil)
	case opSetColorFilter:
		f, _ := dec.next().(ColorFilter)
		d.SetColorFilter(f)
	case opClearColorFilter:
		d.SetColorFilter(nil)
	case opSetImageFilter:
		f, _ := dec.next().(ImageFilter)
		d.SetImageFilter(f)
	case opClearImageFilter:
		d.SetImageFilter(nil)
	case opSetPathEffect:
		e, _ := dec.next().(PathEffect)
		d.SetPathEffect(e)
	case opClearPathEffect:
		d.SetPathEffect(nil)
	case opSetMaskFilter:
		f, _ := dec.next().(MaskFilter)
		d.SetMaskFilter(f)
	case opClearMaskFilter:
		d.SetMaskFilter(nil)
	case opSetMaskBlurFilterNormal:
		d.SetMaskBlurFilter(BlurNormal, r.f32())
	case opSetMaskBlurFilterSolid:
		d.SetMaskBlurFilter(BlurSolid, r.f32())
	case opSetMaskBlurFilterOuter:
		d.SetMaskBlurFilter(BlurOuter, r.f32())
	case opSetMaskBlurFilterInner:
		d.SetMaskBlurFilter(BlurInner, r.f32())

	case opSave:
		d.Save()
	case opSaveLayer:
		d.SaveLayer(nil, r.bool())
	case opSaveLayerBounds:
		bounds := r.rect()
		d.SaveLayer(&bounds, r.bool())
	case opRestore:
		d.Restore()

	case opTranslate:
		tx, ty := r.f32(), r.f32()
		d.Translate(tx, ty)
	case opScale:
		sx, sy := r.f32(), r.f32()
		d.Scale(sx, sy)
	case opRotate:
		d.Rotate(r.f32())
	case opSkew:
		sx, sy := r.f32(), r.f32()
		d.Skew(sx, sy)
	case opTransform2DAffine:
		d.Transform2DAffine(r.aff3())
	case opTransformFullPerspective:
		var m f32.Mat4
		for i := range m {
			m[i] = r.f32()
		}
		d.TransformFullPerspective(m)

	case opClipIntersectRect, opClipDifferenceRect:
		rect := r.rect()
		d.ClipRect(rect, clipOpOf(t), r.bool())
	case opClipIntersectRRect, opClipDifferenceRRect:
		rr := r.rrect()
		d.ClipRRect(rr, clipOpOf(t), r.bool())
	case opClipIntersectPath, opClipDifferencePath:
		d.ClipPath(dec.path(), clipOpOf(t), r.bool())

	case opDrawPaint:
		d.DrawPaint()
	case opDrawColor:
		c := Color(r.u32())
		d.DrawColor(c, BlendMode(r.u32()))
	case opDrawLine:
		p0 := r.point()
		d.DrawLine(p0, r.point())
	case opDrawRect:
		d.DrawRect(r.rect())
	case opDrawOval:
		d.DrawOval(r.rect())
	case opDrawCircle:
		c := r.point()
		d.DrawCircle(c, r.f32())
	case opDrawRRect:
		d.DrawRRect(r.rrect())
	case opDrawDRRect:
		outer := r.rrect()
		d.DrawDRRect(outer, r.rrect())
	case opDrawArc:
		oval := r.rect()
		start, sweep := r.f32(), r.f32()
		d.DrawArc(oval, start, sweep, r.bool())
	case opDrawPath:
		d.DrawPath(dec.path())
	case opDrawPoints, opDrawLines, opDrawPolygon:
		n := int(r.u32())
		dec.points = dec.points[:0]
		for range n {
			dec.points = append(dec.points, r.point())
		}
		d.DrawPoints(pointModeOf(t), dec.points)
	case opDrawVertices:
		v, _ := dec.next().(*Vertices)
		d.DrawVertices(v, BlendMode(r.u32()))
	case opDrawImage, opDrawImageWithAttr:
		img := dec.image()
		at := r.point()
		d.DrawImage(img, at, r.sampling(), t == opDrawImageWithAttr)
	case opDrawImageRect:
		img := dec.image()
		src, dst := r.rect(), r.rect()
		sampling := r.sampling()
		withAttr := r.bool()
		d.DrawImageRect(img, src, dst, sampling, withAttr, SrcRectConstraint(r.u8()))
	case opDrawImageNine, opDrawImageNineWithAttr:
		img := dec.image()
		center := r.irect()
		dst := r.rect()
		d.DrawImageNine(img, center, dst, FilterMode(r.u8()), t == opDrawImageNineWithAttr)
	case opDrawImageLattice:
		img := dec.image()
		lattice, _ := dec.next().(*Lattice)
		dst := r.rect()
		filter := FilterMode(r.u8())
		d.DrawImageLattice(img, lattice, dst, filter, r.bool())
	case opDrawAtlas, opDrawAtlasCulled:
		dec.drawAtlas(t, d)
	case opDrawPicture:
		p, _ := dec.next().(Picture)
		d.DrawPicture(p, nil, r.bool())
	case opDrawPictureMatrix:
		p, _ := dec.next().(Picture)
		m := r.aff3()
		d.DrawPicture(p, &m, r.bool())
	case opDrawDisplayList:
		child, _ := dec.next().(*DisplayList)
		d.DrawDisplayList(child)
	case opDrawTextBlob:
		blob, _ := dec.next().(*TextBlob)
		x, y := r.f32(), r.f32()
		d.DrawTextBlob(blob, x, y)
	case opDrawShadow, opDrawShadowTransparentOccluder:
		p := dec.path()
		c := Color(r.u32())
		elevation, dpr := r.f32(), r.f32()
		d.DrawShadow(p, c, elevation, t == opDrawShadowTransparentOccluder, dpr)
	}
}

func (dec *decoder) drawAtlas(t opType, d Dispatcher) {
	r := &dec.r
	atlas := dec.image()
	n := int(r.u32())
	mode := BlendMode(r.u32())
	var cull *Rect
	if t == opDrawAtlasCulled {
		c := r.rect()
		cull = &c
	}
	sampling := r.sampling()
	withAttr := r.bool()
	hasColors := r.bool()

	dec.xforms = dec.xforms[:0]
	for range n {
		dec.xforms = append(dec.xforms, RSXform{SCos: r.f32(), SSin: r.f32(), TX: r.f32(), TY: r.f32()})
	}
	dec.tex = dec.tex[:0]
	for range n {
		dec.tex = append(dec.tex, r.rect())
	}
	var colors []Color
	if hasColors {
		dec.colors = dec.colors[:0]
		for range n {
			dec.colors = append(dec.colors, Color(r.u32()))
		}
		colors = dec.colors
	}
	d.DrawAtlas(atlas, dec.xforms, dec.tex, colors, mode, sampling, cull, withAttr)
}

func clipOpOf(t opType) ClipOp {
	switch t {
	case opClipDifferenceRect, opClipDifferenceRRect, opClipDifferencePath:
		return ClipDifference
	}
	return ClipIntersect
}

func pointModeOf(t opType) PointMode {
	switch t {
	case opDrawLines:
		return PointModeLines
	case opDrawPolygon:
		return PointModePolygon
	}
	return PointModePoints
}

// recordReader reads a payload in the order recordWriter wrote it.
type recordReader struct {
	buf []byte
	off int
}

func (r *recordReader) u8() uint8 {
	v := r.buf[r.off]
	r.off++
	return v
}

func (r *recordReader) bool() bool { return r.u8() != 0 }

func (r *recordReader) u32() uint32 {
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *recordReader) i32() int32 { return int32(r.u32()) }

func (r *recordReader) f32() float32 { return math.Float32frombits(r.u32()) }

func (r *recordReader) point() Point {
	x := r.f32()
	return Point{X: x, Y: r.f32()}
}

func (r *recordReader) rect() Rect {
	l, t := r.f32(), r.f32()
	rt, b := r.f32(), r.f32()
	return Rect{Left: l, Top: t, Right: rt, Bottom: b}
}

func (r *recordReader) irect() IRect {
	l, t := r.i32(), r.i32()
	rt, b := r.i32(), r.i32()
	return IRect{Left: l, Top: t, Right: rt, Bottom: b}
}

func (r *recordReader) rrect() RRect {
	rr := RRect{Rect: r.rect()}
	for i := range rr.Radii {
		rr.Radii[i] = r.point()
	}
	return rr
}

func (r *recordReader) aff3() f32.Aff3 {
	var m f32.Aff3
	for i := range m {
		m[i] = r.f32()
	}
	return m
}

func (r *recordReader) sampling() SamplingOptions {
	f := FilterMode(r.u8())
	return SamplingOptions{Filter: f, Mipmap: MipmapMode(r.u8())}
}
