package displaylist

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/math/f32"
)

// RenderTo draws the list into dc. The context's transform, clip and layer
// state are restored before returning. Rendering continues past failed draw
// calls; the first error is returned.
//
// gg has no equivalent for some features. Difference clips are skipped,
// mask and image filters are dropped, perspective is reduced to its affine
// part and shadows are drawn unblurred. Each is logged at debug level.
func (dl *DisplayList) RenderTo(dc *gg.Context) error {
	dc.Push()
	defer dc.Pop()
	r := NewRenderer(dc)
	dl.Dispatch(r)
	return r.Finish()
}

// Renderer is a Dispatcher drawing into a gg.Context. Attributes are
// tracked locally and applied to the context at each draw call, so that
// Push and Pop only bracket the transform and clip.
//
// A Renderer is for a single pass; call Finish when dispatch is done.
type Renderer struct {
	Attributes

	dc     *gg.Context
	err    error
	layers []bool // per save level, whether a layer was pushed
	logged map[string]bool
}

var _ Dispatcher = (*Renderer)(nil)

// NewRenderer creates a Renderer drawing into dc with default attributes.
func NewRenderer(dc *gg.Context) *Renderer {
	return &Renderer{Attributes: DefaultAttributes(), dc: dc}
}

// Finish closes save levels left open and returns the first draw error.
func (r *Renderer) Finish() error {
	r.unwind()
	return r.err
}

func (r *Renderer) check(err error) {
	if err != nil && r.err == nil {
		r.err = err
	}
}

// approximate logs, once per render, that op was drawn with reduced fidelity.
func (r *Renderer) approximate(op, what string) {
	key := op + "/" + what
	if r.logged[key] {
		return
	}
	if r.logged == nil {
		r.logged = make(map[string]bool)
	}
	r.logged[key] = true
	Logger().Debug("displaylist: render approximation", "op", op, "unsupported", what)
}

// unwind closes save levels left open by the dispatched recording.
func (r *Renderer) unwind() {
	for len(r.layers) > 0 {
		r.Restore()
	}
}

// --------------------------------------------------------------------------
// Attribute application
// --------------------------------------------------------------------------

func (r *Renderer) applyPaint(op string) {
	dc := r.dc
	if r.Shader != nil {
		dc.SetFillBrush(r.Shader.Brush())
	} else {
		dc.SetColor(r.EffectiveColor().NRGBA())
	}
	width := r.StrokeWidth
	if width <= 0 {
		width = 1 // hairline
	}
	dc.SetLineWidth(float64(width))
	dc.SetLineCap(ggLineCap(r.StrokeCap))
	dc.SetLineJoin(ggLineJoin(r.StrokeJoin))
	dc.SetMiterLimit(float64(r.StrokeMiter))
	if r.PathEffect != nil {
		r.PathEffect.ApplyTo(dc)
	} else {
		dc.ClearDash()
	}
	if r.MaskFilter != nil {
		r.approximate(op, "mask filter")
	}
	if r.ImageFilter != nil {
		r.approximate(op, "image filter")
	}
}

// finish fills and/or strokes the current path according to the style.
func (r *Renderer) finish() {
	switch r.Style {
	case StyleStroke:
		r.check(r.dc.Stroke())
	case StyleStrokeAndFill:
		r.check(r.dc.FillPreserve())
		r.check(r.dc.Stroke())
	default:
		r.check(r.dc.Fill())
	}
}

func ggLineCap(c StrokeCap) gg.LineCap {
	switch c {
	case CapRound:
		return gg.LineCapRound
	case CapSquare:
		return gg.LineCapSquare
	}
	return gg.LineCapButt
}

func ggLineJoin(j StrokeJoin) gg.LineJoin {
	switch j {
	case JoinRound:
		return gg.LineJoinRound
	case JoinBevel:
		return gg.LineJoinBevel
	}
	return gg.LineJoinMiter
}

// ggBlend maps the blend modes gg can composite; everything else draws
// as source-over.
func ggBlend(m BlendMode) gg.BlendMode {
	switch m {
	case BlendMultiply:
		return gg.BlendMultiply
	case BlendScreen:
		return gg.BlendScreen
	case BlendOverlay:
		return gg.BlendOverlay
	}
	return gg.BlendNormal
}

// --------------------------------------------------------------------------
// Path construction. Points go through the context's MoveTo family so the
// current transform applies.
// --------------------------------------------------------------------------

func (r *Renderer) appendPath(p *gg.Path) {
	if p == nil {
		return
	}
	dc := r.dc
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			dc.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			dc.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			dc.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			dc.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			dc.ClosePath()
		}
	}
}

func (r *Renderer) appendRect(rect Rect) {
	rect = rect.MakeSorted()
	r.dc.DrawRectangle(float64(rect.Left), float64(rect.Top), float64(rect.Width()), float64(rect.Height()))
}

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498307936

// appendRRect adds a rounded rectangle with elliptical corners, clockwise
// from the top edge.
func (r *Renderer) appendRRect(rr RRect) {
	if rr.IsRect() {
		r.appendRect(rr.Rect)
		return
	}
	dc := r.dc
	rc := rr.Rect.MakeSorted()
	l, t, rt, b := float64(rc.Left), float64(rc.Top), float64(rc.Right), float64(rc.Bottom)
	rad := func(i int) (float64, float64) {
		return float64(rr.Radii[i].X), float64(rr.Radii[i].Y)
	}

	ulx, uly := rad(UpperLeft)
	urx, ury := rad(UpperRight)
	lrx, lry := rad(LowerRight)
	llx, lly := rad(LowerLeft)

	dc.MoveTo(l+ulx, t)
	dc.LineTo(rt-urx, t)
	dc.CubicTo(rt-urx+urx*kappa, t, rt, t+ury-ury*kappa, rt, t+ury)
	dc.LineTo(rt, b-lry)
	dc.CubicTo(rt, b-lry+lry*kappa, rt-lrx+lrx*kappa, b, rt-lrx, b)
	dc.LineTo(l+llx, b)
	dc.CubicTo(l+llx-llx*kappa, b, l, b-lly+lly*kappa, l, b-lly)
	dc.LineTo(l, t+uly)
	dc.CubicTo(l, t+uly-uly*kappa, l+ulx-ulx*kappa, t, l+ulx, t)
	dc.ClosePath()
}

// appendArc adds an elliptical arc inscribed in oval, split into segments
// of at most 90 degrees. With useCenter the arc forms a closed wedge.
func (r *Renderer) appendArc(oval Rect, startDegrees, sweepDegrees float32, useCenter bool) {
	dc := r.dc
	oval = oval.MakeSorted()
	cx, cy := float64(oval.Center().X), float64(oval.Center().Y)
	rx, ry := float64(oval.Width()/2), float64(oval.Height()/2)
	a0 := float64(startDegrees) * math.Pi / 180
	sweep := float64(sweepDegrees) * math.Pi / 180
	sweep = max(min(sweep, 2*math.Pi), -2*math.Pi)

	at := func(a float64) (float64, float64) { return cx + rx*math.Cos(a), cy + ry*math.Sin(a) }
	x0, y0 := at(a0)
	if useCenter {
		dc.MoveTo(cx, cy)
		dc.LineTo(x0, y0)
	} else {
		dc.MoveTo(x0, y0)
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if n > 0 {
		step := sweep / float64(n)
		k := 4.0 / 3.0 * math.Tan(step/4)
		for i := range n {
			a1 := a0 + float64(i)*step
			a2 := a1 + step
			x1, y1 := at(a1)
			x2, y2 := at(a2)
			dc.CubicTo(
				x1-k*rx*math.Sin(a1), y1+k*ry*math.Cos(a1),
				x2+k*rx*math.Sin(a2), y2-k*ry*math.Cos(a2),
				x2, y2)
		}
	}
	if useCenter {
		dc.ClosePath()
	}
}

// --------------------------------------------------------------------------
// Save and restore
// --------------------------------------------------------------------------

func (r *Renderer) Save() {
	r.dc.Push()
	r.layers = append(r.layers, false)
}

func (r *Renderer) SaveLayer(bounds *Rect, restoreWithPaint bool) {
	r.dc.Push()
	if bounds != nil {
		b := bounds.MakeSorted()
		r.dc.ClipRect(float64(b.Left), float64(b.Top), float64(b.Width()), float64(b.Height()))
	}
	blend, opacity := gg.BlendNormal, 1.0
	if restoreWithPaint {
		blend = ggBlend(r.BlendMode)
		opacity = float64(r.Color.A()) / 255
		if r.ImageFilter != nil {
			r.approximate("SaveLayer", "image filter")
		}
	}
	r.dc.PushLayer(blend, opacity)
	r.layers = append(r.layers, true)
}

func (r *Renderer) Restore() {
	if len(r.layers) == 0 {
		return
	}
	layer := r.layers[len(r.layers)-1]
	r.layers = r.layers[:len(r.layers)-1]
	if layer {
		r.dc.PopLayer()
	}
	r.dc.Pop()
}

// --------------------------------------------------------------------------
// Transforms
// --------------------------------------------------------------------------

func (r *Renderer) Translate(tx, ty float32) { r.dc.Translate(float64(tx), float64(ty)) }
func (r *Renderer) Scale(sx, sy float32)     { r.dc.Scale(float64(sx), float64(sy)) }

func (r *Renderer) Rotate(degrees float32) {
	r.dc.Rotate(float64(degrees) * math.Pi / 180)
}

func (r *Renderer) Skew(sx, sy float32) { r.dc.Shear(float64(sx), float64(sy)) }

func (r *Renderer) Transform2DAffine(m f32.Aff3) {
	r.dc.Transform(gg.Matrix{
		A: float64(m[0]), B: float64(m[1]), C: float64(m[2]),
		D: float64(m[3]), E: float64(m[4]), F: float64(m[5]),
	})
}

func (r *Renderer) TransformFullPerspective(m f32.Mat4) {
	if hasPerspective(m) {
		r.approximate("TransformFullPerspective", "perspective")
	}
	r.dc.Transform(gg.Matrix{
		A: float64(m[0]), B: float64(m[1]), C: float64(m[3]),
		D: float64(m[4]), E: float64(m[5]), F: float64(m[7]),
	})
}

// --------------------------------------------------------------------------
// Clips
// --------------------------------------------------------------------------

func (r *Renderer) ClipRect(rect Rect, op ClipOp, _ bool) {
	if op == ClipDifference {
		r.approximate("ClipRect", "difference clip")
		return
	}
	rect = rect.MakeSorted()
	r.dc.ClipRect(float64(rect.Left), float64(rect.Top), float64(rect.Width()), float64(rect.Height()))
}

func (r *Renderer) ClipRRect(rr RRect, op ClipOp, _ bool) {
	if op == ClipDifference {
		r.approximate("ClipRRect", "difference clip")
		return
	}
	r.dc.ClearPath()
	r.appendRRect(rr)
	r.dc.Clip()
}

func (r *Renderer) ClipPath(p *gg.Path, op ClipOp, _ bool) {
	if op == ClipDifference {
		r.approximate("ClipPath", "difference clip")
		return
	}
	r.dc.ClearPath()
	r.appendPath(p)
	r.dc.Clip()
}

// --------------------------------------------------------------------------
// Draw calls
// --------------------------------------------------------------------------

// fillCanvas fills the whole target in device space with the current paint.
func (r *Renderer) fillCanvas() {
	dc := r.dc
	dc.Push()
	dc.Identity()
	dc.ClearPath()
	dc.DrawRectangle(0, 0, float64(dc.Width()), float64(dc.Height()))
	r.check(dc.Fill())
	dc.Pop()
}

func (r *Renderer) DrawPaint() {
	r.applyPaint("DrawPaint")
	r.fillCanvas()
}

func (r *Renderer) DrawColor(c Color, mode BlendMode) {
	if mode != BlendSrcOver {
		r.approximate("DrawColor", mode.String())
	}
	r.dc.SetColor(c.NRGBA())
	r.fillCanvas()
}

func (r *Renderer) DrawLine(p0, p1 Point) {
	r.applyPaint("DrawLine")
	r.dc.ClearPath()
	r.dc.DrawLine(float64(p0.X), float64(p0.Y), float64(p1.X), float64(p1.Y))
	r.check(r.dc.Stroke())
}

func (r *Renderer) DrawRect(rect Rect) {
	r.applyPaint("DrawRect")
	r.dc.ClearPath()
	r.appendRect(rect)
	r.finish()
}

func (r *Renderer) DrawOval(bounds Rect) {
	r.applyPaint("DrawOval")
	r.dc.ClearPath()
	c := bounds.Center()
	r.dc.DrawEllipse(float64(c.X), float64(c.Y), float64(bounds.Width()/2), float64(bounds.Height()/2))
	r.finish()
}

func (r *Renderer) DrawCircle(center Point, radius float32) {
	r.applyPaint("DrawCircle")
	r.dc.ClearPath()
	r.dc.DrawCircle(float64(center.X), float64(center.Y), float64(radius))
	r.finish()
}

func (r *Renderer) DrawRRect(rr RRect) {
	r.applyPaint("DrawRRect")
	r.dc.ClearPath()
	r.appendRRect(rr)
	r.finish()
}

func (r *Renderer) DrawDRRect(outer, inner RRect) {
	r.applyPaint("DrawDRRect")
	r.dc.ClearPath()
	r.appendRRect(outer)
	r.appendRRect(inner)
	r.dc.SetFillRule(gg.FillRuleEvenOdd)
	r.finish()
	r.dc.SetFillRule(gg.FillRuleNonZero)
}

func (r *Renderer) DrawArc(oval Rect, startDegrees, sweepDegrees float32, useCenter bool) {
	r.applyPaint("DrawArc")
	r.dc.ClearPath()
	r.appendArc(oval, startDegrees, sweepDegrees, useCenter)
	r.finish()
}

func (r *Renderer) DrawPath(p *gg.Path) {
	r.applyPaint("DrawPath")
	r.dc.ClearPath()
	r.appendPath(p)
	r.finish()
}

func (r *Renderer) DrawPoints(mode PointMode, pts []Point) {
	r.applyPaint("DrawPoints")
	dc := r.dc
	dc.ClearPath()
	switch mode {
	case PointModeLines:
		for i := 0; i+1 < len(pts); i += 2 {
			dc.DrawLine(float64(pts[i].X), float64(pts[i].Y), float64(pts[i+1].X), float64(pts[i+1].Y))
		}
		r.check(dc.Stroke())
	case PointModePolygon:
		for i, p := range pts {
			if i == 0 {
				dc.MoveTo(float64(p.X), float64(p.Y))
			} else {
				dc.LineTo(float64(p.X), float64(p.Y))
			}
		}
		r.check(dc.Stroke())
	default:
		size := float64(max(r.StrokeWidth, 1))
		for _, p := range pts {
			if r.StrokeCap == CapRound {
				dc.DrawCircle(float64(p.X), float64(p.Y), size/2)
			} else {
				dc.DrawRectangle(float64(p.X)-size/2, float64(p.Y)-size/2, size, size)
			}
		}
		r.check(dc.Fill())
	}
}

// DrawVertices fills each triangle with the average of its vertex colors,
// or with the paint when the mesh has no colors.
func (r *Renderer) DrawVertices(v *Vertices, _ BlendMode) {
	if v == nil {
		return
	}
	r.applyPaint("DrawVertices")
	dc := r.dc
	perVertex := len(v.Colors) == len(v.Positions) && len(v.Colors) > 0
	v.Triangles(func(a, b, c int) {
		if max(a, b, c) >= len(v.Positions) {
			return
		}
		if perVertex {
			dc.SetColor(averageColor(v.Colors[a], v.Colors[b], v.Colors[c]).NRGBA())
		}
		pa, pb, pc := v.Positions[a], v.Positions[b], v.Positions[c]
		dc.ClearPath()
		dc.MoveTo(float64(pa.X), float64(pa.Y))
		dc.LineTo(float64(pb.X), float64(pb.Y))
		dc.LineTo(float64(pc.X), float64(pc.Y))
		dc.ClosePath()
		r.check(dc.Fill())
	})
	if len(v.TexCoords) > 0 {
		r.approximate("DrawVertices", "texture coordinates")
	}
}

func averageColor(cs ...Color) Color {
	var a, rr, g, b int
	for _, c := range cs {
		a += int(c.A())
		rr += int(c.R())
		g += int(c.G())
		b += int(c.B())
	}
	n := len(cs)
	return ARGB(uint8(a/n), uint8(rr/n), uint8(g/n), uint8(b/n))
}

// drawImage draws the src part of img (all of it when src is nil) into dst.
func (r *Renderer) drawImage(op string, img image.Image, src *image.Rectangle, dst Rect,
	filter FilterMode, withAttributes bool) {
	if img == nil || dst.IsEmpty() {
		return
	}
	opts := gg.DrawImageOptions{
		X:             float64(dst.Left),
		Y:             float64(dst.Top),
		DstWidth:      float64(dst.Width()),
		DstHeight:     float64(dst.Height()),
		SrcRect:       src,
		Interpolation: gg.InterpBilinear,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	}
	if filter == FilterNearest {
		opts.Interpolation = gg.InterpNearest
	}
	if withAttributes {
		opts.Opacity = float64(r.Color.A()) / 255
		opts.BlendMode = ggBlend(r.BlendMode)
		if r.ColorFilter != nil || r.InvertColors {
			r.approximate(op, "color filter on image")
		}
	}
	r.dc.DrawImageEx(gg.ImageBufFromImage(img), opts)
}

func (r *Renderer) DrawImage(img image.Image, at Point, sampling SamplingOptions, withAttributes bool) {
	if img == nil {
		return
	}
	sz := img.Bounds().Size()
	r.drawImage("DrawImage", img, nil, XYWH(at.X, at.Y, float32(sz.X), float32(sz.Y)),
		sampling.Filter, withAttributes)
}

func (r *Renderer) DrawImageRect(img image.Image, src, dst Rect, sampling SamplingOptions,
	withAttributes bool, _ SrcRectConstraint) {
	if img == nil {
		return
	}
	sr := imageRect(img, src)
	r.drawImage("DrawImageRect", img, &sr, dst.MakeSorted(), sampling.Filter, withAttributes)
}

// imageRect converts a source rectangle relative to the image origin into
// pixel coordinates of img.
func imageRect(img image.Image, src Rect) image.Rectangle {
	src = src.MakeSorted()
	o := img.Bounds().Min
	return image.Rect(
		o.X+int(math.Floor(float64(src.Left))), o.Y+int(math.Floor(float64(src.Top))),
		o.X+int(math.Ceil(float64(src.Right))), o.Y+int(math.Ceil(float64(src.Bottom))),
	).Intersect(img.Bounds())
}

func (r *Renderer) DrawImageNine(img image.Image, center IRect, dst Rect, filter FilterMode, withAttributes bool) {
	r.drawLattice("DrawImageNine", img, &Lattice{
		XDivs: []int32{center.Left, center.Right},
		YDivs: []int32{center.Top, center.Bottom},
	}, dst, filter, withAttributes)
}

func (r *Renderer) DrawImageLattice(img image.Image, lattice *Lattice, dst Rect, filter FilterMode, withAttributes bool) {
	r.drawLattice("DrawImageLattice", img, lattice, dst, filter, withAttributes)
}

// drawLattice splits the source and destination into matching grids and
// draws each cell. Spans between even and odd divs stretch; the others keep
// their size unless dst is too small to hold them.
func (r *Renderer) drawLattice(op string, img image.Image, l *Lattice, dst Rect, filter FilterMode, withAttributes bool) {
	if img == nil || l == nil {
		return
	}
	dst = dst.MakeSorted()
	src := img.Bounds()
	if l.Bounds != nil {
		src = image.Rect(int(l.Bounds.Left), int(l.Bounds.Top), int(l.Bounds.Right), int(l.Bounds.Bottom)).
			Add(src.Min).Intersect(src)
	}
	xs := latticeSpans(l.XDivs, src.Min.X, src.Max.X, dst.Left, dst.Right)
	ys := latticeSpans(l.YDivs, src.Min.Y, src.Max.Y, dst.Top, dst.Bottom)

	for row, y := range ys {
		for col, x := range xs {
			cell := row*len(xs) + col
			kind := LatticeDefault
			if cell < len(l.RectTypes) {
				kind = l.RectTypes[cell]
			}
			d := LTRB(x.dst0, y.dst0, x.dst1, y.dst1)
			switch kind {
			case LatticeTransparent:
				continue
			case LatticeFixedColor:
				if cell < len(l.Colors) {
					r.dc.SetColor(l.Colors[cell].NRGBA())
					r.dc.ClearPath()
					r.appendRect(d)
					r.check(r.dc.Fill())
				}
				continue
			}
			s := image.Rect(x.src0, y.src0, x.src1, y.src1)
			if s.Empty() {
				continue
			}
			r.drawImage(op, img, &s, d, filter, withAttributes)
		}
	}
}

type latticeSpan struct {
	src0, src1 int
	dst0, dst1 float32
}

// latticeSpans divides [srcMin, srcMax) at divs (relative to srcMin) and maps
// the spans onto [dstMin, dstMax).
func latticeSpans(divs []int32, srcMin, srcMax int, dstMin, dstMax float32) []latticeSpan {
	edges := []int{srcMin}
	for _, d := range divs {
		e := min(max(srcMin+int(d), edges[len(edges)-1]), srcMax)
		edges = append(edges, e)
	}
	edges = append(edges, srcMax)

	var fixed, stretch float32
	for i := 0; i+1 < len(edges); i++ {
		w := float32(edges[i+1] - edges[i])
		if i%2 == 0 {
			fixed += w
		} else {
			stretch += w
		}
	}
	avail := dstMax - dstMin
	fixedScale, stretchScale := float32(1), float32(0)
	switch {
	case fixed > avail:
		fixedScale = avail / fixed
	case stretch > 0:
		stretchScale = (avail - fixed) / stretch
	}

	spans := make([]latticeSpan, 0, len(edges)-1)
	at := dstMin
	for i := 0; i+1 < len(edges); i++ {
		w := float32(edges[i+1] - edges[i])
		if i%2 == 0 {
			w *= fixedScale
		} else {
			w *= stretchScale
		}
		spans = append(spans, latticeSpan{src0: edges[i], src1: edges[i+1], dst0: at, dst1: at + w})
		at += w
	}
	return spans
}

func (r *Renderer) DrawAtlas(atlas image.Image, xforms []RSXform, tex []Rect, colors []Color, _ BlendMode,
	sampling SamplingOptions, cull *Rect, withAttributes bool) {
	if atlas == nil {
		return
	}
	if colors != nil {
		r.approximate("DrawAtlas", "sprite colors")
	}
	dc := r.dc
	for i := range min(len(xforms), len(tex)) {
		x := xforms[i]
		if cull != nil {
			if _, ok := x.QuadBounds(tex[i].Width(), tex[i].Height()).Intersect(*cull); !ok {
				continue
			}
		}
		src := imageRect(atlas, tex[i])
		dc.Push()
		dc.Transform(gg.Matrix{
			A: float64(x.SCos), B: float64(-x.SSin), C: float64(x.TX),
			D: float64(x.SSin), E: float64(x.SCos), F: float64(x.TY),
		})
		r.drawImage("DrawAtlas", atlas, &src, XYWH(0, 0, tex[i].Width(), tex[i].Height()),
			sampling.Filter, withAttributes)
		dc.Pop()
	}
}

// nested replays into a fresh renderer so the embedded recording starts
// from default attributes and cannot leak state into this one.
func (r *Renderer) nested(opacity float64, blend gg.BlendMode, replay func(Dispatcher)) {
	dc := r.dc
	dc.Push()
	layered := opacity < 1 || blend != gg.BlendNormal
	if layered {
		dc.PushLayer(blend, opacity)
	}
	sub := NewRenderer(dc)
	replay(sub)
	r.check(sub.Finish())
	if layered {
		dc.PopLayer()
	}
	dc.Pop()
}

func (r *Renderer) DrawPicture(p Picture, matrix *f32.Aff3, withAttributes bool) {
	if p == nil {
		return
	}
	opacity, blend := 1.0, gg.BlendNormal
	if withAttributes {
		opacity, blend = float64(r.Color.A())/255, ggBlend(r.BlendMode)
	}
	if matrix != nil {
		r.dc.Push()
		r.Transform2DAffine(*matrix)
		defer r.dc.Pop()
	}
	r.nested(opacity, blend, p.Playback)
}

func (r *Renderer) DrawDisplayList(dl *DisplayList) {
	if dl == nil {
		return
	}
	r.nested(1, gg.BlendNormal, dl.Dispatch)
}

// DrawTextBlob draws at the transformed baseline origin. gg draws text in
// device space, so rotation and scale do not apply to the glyphs.
func (r *Renderer) DrawTextBlob(blob *TextBlob, x, y float32) {
	if blob == nil || blob.Face() == nil {
		return
	}
	r.applyPaint("DrawTextBlob")
	dc := r.dc
	dc.SetColor(r.EffectiveColor().NRGBA())
	dc.SetFont(blob.Face())
	px, py := dc.TransformPoint(float64(x), float64(y))
	dc.DrawString(blob.Text(), px, py)
}

// DrawShadow fills the occluder shape offset away from the light, unblurred.
func (r *Renderer) DrawShadow(p *gg.Path, c Color, elevation float32, _ bool, dpr float32) {
	if p == nil {
		return
	}
	r.approximate("DrawShadow", "blur")
	if dpr <= 0 {
		dpr = 1
	}
	dc := r.dc
	dc.Push()
	dc.Translate(0, float64(elevation/dpr)/2)
	dc.SetColor(c.WithAlpha(c.A() / 4).NRGBA())
	dc.ClearPath()
	r.appendPath(p)
	r.check(dc.Fill())
	dc.Pop()
}
