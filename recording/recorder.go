package recording

import (
	"image"
	"reflect"
	"slices"
	"unsafe"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/gg"
	"golang.org/x/image/math/f32"
)

// Recorder captures Dispatcher calls as typed commands. It is itself a
// displaylist.Dispatcher, so a display list can be dispatched into it:
//
//	rec := recording.NewRecorder(800, 600)
//	dl.Dispatch(rec)
//	r := rec.FinishRecording()
//	for _, cmd := range r.Commands() {
//	    fmt.Println(cmd.Type())
//	}
//
// Slice arguments are copied. Paths and images go to the resource pool.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	commands      []Command
	resources     *ResourcePool

	nestedOps   int
	nestedBytes int
}

var _ displaylist.Dispatcher = (*Recorder)(nil)

// NewRecorder creates a new Recorder for a canvas of the given dimensions.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:     width,
		height:    height,
		commands:  make([]Command, 0, 64),
		resources: NewResourcePool(),
	}
}

// FinishRecording returns an immutable Recording containing all recorded
// commands. After calling FinishRecording, the Recorder should not be used
// again.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{
		width:       r.width,
		height:      r.height,
		commands:    slices.Clip(r.commands),
		resources:   r.resources,
		nestedOps:   r.nestedOps,
		nestedBytes: r.nestedBytes,
	}
}

// Width returns the width of the recording canvas.
func (r *Recorder) Width() int { return r.width }

// Height returns the height of the recording canvas.
func (r *Recorder) Height() int { return r.height }

// Len returns the number of commands recorded so far.
func (r *Recorder) Len() int {
	return len(r.commands)
}

func (r *Recorder) add(c Command) {
	r.commands = append(r.commands, c)
}

// --------------------------------------------------------------------------
// Attributes
// --------------------------------------------------------------------------

func (r *Recorder) SetAntiAlias(aa bool)        { r.add(SetAntiAliasCommand{aa}) }
func (r *Recorder) SetDither(dither bool)       { r.add(SetDitherCommand{dither}) }
func (r *Recorder) SetInvertColors(invert bool) { r.add(SetInvertColorsCommand{invert}) }

func (r *Recorder) SetStrokeCap(c displaylist.StrokeCap)   { r.add(SetStrokeCapCommand{c}) }
func (r *Recorder) SetStrokeJoin(j displaylist.StrokeJoin) { r.add(SetStrokeJoinCommand{j}) }
func (r *Recorder) SetStyle(s displaylist.DrawStyle)       { r.add(SetStyleCommand{s}) }
func (r *Recorder) SetStrokeWidth(width float32)           { r.add(SetStrokeWidthCommand{width}) }
func (r *Recorder) SetStrokeMiter(limit float32)           { r.add(SetStrokeMiterCommand{limit}) }
func (r *Recorder) SetColor(c displaylist.Color)           { r.add(SetColorCommand{c}) }
func (r *Recorder) SetBlendMode(m displaylist.BlendMode)   { r.add(SetBlendModeCommand{m}) }

func (r *Recorder) SetShader(s displaylist.Shader)           { r.add(SetShaderCommand{s}) }
func (r *Recorder) SetColorFilter(f displaylist.ColorFilter) { r.add(SetColorFilterCommand{f}) }
func (r *Recorder) SetImageFilter(f displaylist.ImageFilter) { r.add(SetImageFilterCommand{f}) }
func (r *Recorder) SetPathEffect(e displaylist.PathEffect)   { r.add(SetPathEffectCommand{e}) }
func (r *Recorder) SetMaskFilter(f displaylist.MaskFilter)   { r.add(SetMaskFilterCommand{f}) }

func (r *Recorder) SetMaskBlurFilter(style displaylist.BlurStyle, sigma float32) {
	r.add(SetMaskBlurFilterCommand{Style: style, Sigma: sigma})
}

// --------------------------------------------------------------------------
// Save and restore
// --------------------------------------------------------------------------

func (r *Recorder) Save() { r.add(SaveCommand{}) }

func (r *Recorder) SaveLayer(bounds *displaylist.Rect, restoreWithPaint bool) {
	cmd := SaveLayerCommand{RestoreWithPaint: restoreWithPaint}
	if bounds != nil {
		b := *bounds
		cmd.Bounds = &b
	}
	r.add(cmd)
}

func (r *Recorder) Restore() { r.add(RestoreCommand{}) }

// --------------------------------------------------------------------------
// Transforms
// --------------------------------------------------------------------------

func (r *Recorder) Translate(tx, ty float32)            { r.add(TranslateCommand{tx, ty}) }
func (r *Recorder) Scale(sx, sy float32)                { r.add(ScaleCommand{sx, sy}) }
func (r *Recorder) Rotate(degrees float32)              { r.add(RotateCommand{degrees}) }
func (r *Recorder) Skew(sx, sy float32)                 { r.add(SkewCommand{sx, sy}) }
func (r *Recorder) Transform2DAffine(m f32.Aff3)        { r.add(Transform2DAffineCommand{m}) }
func (r *Recorder) TransformFullPerspective(m f32.Mat4) { r.add(TransformFullPerspectiveCommand{m}) }

// --------------------------------------------------------------------------
// Clips
// --------------------------------------------------------------------------

func (r *Recorder) ClipRect(rect displaylist.Rect, op displaylist.ClipOp, aa bool) {
	r.add(ClipRectCommand{Rect: rect, Op: op, AntiAlias: aa})
}

func (r *Recorder) ClipRRect(rr displaylist.RRect, op displaylist.ClipOp, aa bool) {
	r.add(ClipRRectCommand{RRect: rr, Op: op, AntiAlias: aa})
}

func (r *Recorder) ClipPath(p *gg.Path, op displaylist.ClipOp, aa bool) {
	r.add(ClipPathCommand{Path: r.resources.AddPath(p), Op: op, AntiAlias: aa})
}

// --------------------------------------------------------------------------
// Draw calls
// --------------------------------------------------------------------------

func (r *Recorder) DrawPaint() { r.add(DrawPaintCommand{}) }

func (r *Recorder) DrawColor(c displaylist.Color, mode displaylist.BlendMode) {
	r.add(DrawColorCommand{Color: c, Mode: mode})
}

func (r *Recorder) DrawLine(p0, p1 displaylist.Point) { r.add(DrawLineCommand{p0, p1}) }
func (r *Recorder) DrawRect(rect displaylist.Rect)    { r.add(DrawRectCommand{rect}) }
func (r *Recorder) DrawOval(bounds displaylist.Rect)  { r.add(DrawOvalCommand{bounds}) }
func (r *Recorder) DrawRRect(rr displaylist.RRect)    { r.add(DrawRRectCommand{rr}) }

func (r *Recorder) DrawCircle(center displaylist.Point, radius float32) {
	r.add(DrawCircleCommand{Center: center, Radius: radius})
}

func (r *Recorder) DrawDRRect(outer, inner displaylist.RRect) {
	r.add(DrawDRRectCommand{Outer: outer, Inner: inner})
}

func (r *Recorder) DrawArc(oval displaylist.Rect, startDegrees, sweepDegrees float32, useCenter bool) {
	r.add(DrawArcCommand{Oval: oval, StartDegrees: startDegrees, SweepDegrees: sweepDegrees, UseCenter: useCenter})
}

func (r *Recorder) DrawPath(p *gg.Path) { r.add(DrawPathCommand{r.resources.AddPath(p)}) }

func (r *Recorder) DrawPoints(mode displaylist.PointMode, pts []displaylist.Point) {
	r.add(DrawPointsCommand{Mode: mode, Points: slices.Clone(pts)})
}

func (r *Recorder) DrawVertices(v *displaylist.Vertices, mode displaylist.BlendMode) {
	r.add(DrawVerticesCommand{Vertices: v, Mode: mode})
}

func (r *Recorder) DrawImage(img image.Image, at displaylist.Point, sampling displaylist.SamplingOptions,
	withAttributes bool) {
	r.add(DrawImageCommand{
		Image:          r.resources.AddImage(img),
		At:             at,
		Sampling:       sampling,
		WithAttributes: withAttributes,
	})
}

func (r *Recorder) DrawImageRect(img image.Image, src, dst displaylist.Rect, sampling displaylist.SamplingOptions,
	withAttributes bool, constraint displaylist.SrcRectConstraint) {
	r.add(DrawImageRectCommand{
		Image:          r.resources.AddImage(img),
		Src:            src,
		Dst:            dst,
		Sampling:       sampling,
		WithAttributes: withAttributes,
		Constraint:     constraint,
	})
}

func (r *Recorder) DrawImageNine(img image.Image, center displaylist.IRect, dst displaylist.Rect,
	filter displaylist.FilterMode, withAttributes bool) {
	r.add(DrawImageNineCommand{
		Image:          r.resources.AddImage(img),
		Center:         center,
		Dst:            dst,
		Filter:         filter,
		WithAttributes: withAttributes,
	})
}

func (r *Recorder) DrawImageLattice(img image.Image, lattice *displaylist.Lattice, dst displaylist.Rect,
	filter displaylist.FilterMode, withAttributes bool) {
	r.add(DrawImageLatticeCommand{
		Image:          r.resources.AddImage(img),
		Lattice:        lattice,
		Dst:            dst,
		Filter:         filter,
		WithAttributes: withAttributes,
	})
}

func (r *Recorder) DrawAtlas(atlas image.Image, xforms []displaylist.RSXform, tex []displaylist.Rect,
	colors []displaylist.Color, mode displaylist.BlendMode, sampling displaylist.SamplingOptions,
	cull *displaylist.Rect, withAttributes bool) {
	cmd := DrawAtlasCommand{
		Atlas:          r.resources.AddImage(atlas),
		Xforms:         slices.Clone(xforms),
		Tex:            slices.Clone(tex),
		Colors:         slices.Clone(colors),
		Mode:           mode,
		Sampling:       sampling,
		WithAttributes: withAttributes,
	}
	if cull != nil {
		c := *cull
		cmd.Cull = &c
	}
	r.add(cmd)
}

func (r *Recorder) DrawPicture(p displaylist.Picture, matrix *f32.Aff3, withAttributes bool) {
	cmd := DrawPictureCommand{Picture: p, WithAttributes: withAttributes}
	if matrix != nil {
		m := *matrix
		cmd.Matrix = &m
	}
	r.add(cmd)
	if p != nil {
		r.nestedOps += p.ApproximateOpCount(true)
		r.nestedBytes += p.ApproximateBytesUsed()
	}
}

func (r *Recorder) DrawDisplayList(dl *displaylist.DisplayList) {
	r.add(DrawDisplayListCommand{dl})
	if dl != nil {
		r.nestedOps += dl.OpCount(true)
		r.nestedBytes += dl.Bytes(true)
	}
}

func (r *Recorder) DrawTextBlob(blob *displaylist.TextBlob, x, y float32) {
	r.add(DrawTextBlobCommand{Blob: blob, X: x, Y: y})
}

func (r *Recorder) DrawShadow(p *gg.Path, c displaylist.Color, elevation float32, transparentOccluder bool, dpr float32) {
	r.add(DrawShadowCommand{
		Path:                r.resources.AddPath(p),
		Color:               c,
		Elevation:           elevation,
		TransparentOccluder: transparentOccluder,
		DPR:                 dpr,
	})
}

// --------------------------------------------------------------------------
// Recording
// --------------------------------------------------------------------------

// Recording is an immutable container for recorded drawing commands.
// It can be replayed to any Dispatcher or Sink, embedded in a display
// list as a displaylist.Picture, or converted back into a display list.
type Recording struct {
	width, height int
	commands      []Command
	resources     *ResourcePool

	nestedOps   int
	nestedBytes int
}

var _ displaylist.Picture = (*Recording)(nil)

// Width returns the width of the recording canvas.
func (r *Recording) Width() int {
	return r.width
}

// Height returns the height of the recording canvas.
func (r *Recording) Height() int {
	return r.height
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Resources returns the resource pool.
func (r *Recording) Resources() *ResourcePool {
	return r.resources
}

// CullRect implements displaylist.Picture.
func (r *Recording) CullRect() displaylist.Rect {
	return displaylist.XYWH(0, 0, float32(r.width), float32(r.height))
}

// ApproximateOpCount implements displaylist.Picture.
func (r *Recording) ApproximateOpCount(nested bool) int {
	if nested {
		return len(r.commands) + r.nestedOps
	}
	return len(r.commands)
}

// ApproximateBytesUsed implements displaylist.Picture. It counts the command
// values and the slices they own, not the shared resources.
func (r *Recording) ApproximateBytesUsed() int {
	n := int(unsafe.Sizeof(Recording{})) + cap(r.commands)*int(unsafe.Sizeof(Command(nil)))
	for _, cmd := range r.commands {
		n += int(reflect.TypeOf(cmd).Size())
		switch c := cmd.(type) {
		case DrawPointsCommand:
			n += len(c.Points) * int(unsafe.Sizeof(displaylist.Point{}))
		case DrawAtlasCommand:
			n += len(c.Xforms)*int(unsafe.Sizeof(displaylist.RSXform{})) +
				len(c.Tex)*int(unsafe.Sizeof(displaylist.Rect{})) +
				len(c.Colors)*int(unsafe.Sizeof(displaylist.Color(0)))
		}
	}
	return n + r.nestedBytes
}

// Replay records the commands into b, producing the same calls a Builder
// would have received originally.
func (r *Recording) Replay(b *displaylist.Builder) {
	r.Playback(b)
}

// Playback replays the commands to d in order. It implements
// displaylist.Picture.
func (r *Recording) Playback(d displaylist.Dispatcher) {
	res := r.resources
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case SetAntiAliasCommand:
			d.SetAntiAlias(c.AntiAlias)
		case SetDitherCommand:
			d.SetDither(c.Dither)
		case SetInvertColorsCommand:
			d.SetInvertColors(c.Invert)
		case SetStrokeCapCommand:
			d.SetStrokeCap(c.Cap)
		case SetStrokeJoinCommand:
			d.SetStrokeJoin(c.Join)
		case SetStyleCommand:
			d.SetStyle(c.Style)
		case SetStrokeWidthCommand:
			d.SetStrokeWidth(c.Width)
		case SetStrokeMiterCommand:
			d.SetStrokeMiter(c.Limit)
		case SetColorCommand:
			d.SetColor(c.Color)
		case SetBlendModeCommand:
			d.SetBlendMode(c.Mode)
		case SetShaderCommand:
			d.SetShader(c.Shader)
		case SetColorFilterCommand:
			d.SetColorFilter(c.Filter)
		case SetImageFilterCommand:
			d.SetImageFilter(c.Filter)
		case SetPathEffectCommand:
			d.SetPathEffect(c.Effect)
		case SetMaskFilterCommand:
			d.SetMaskFilter(c.Filter)
		case SetMaskBlurFilterCommand:
			d.SetMaskBlurFilter(c.Style, c.Sigma)

		case SaveCommand:
			d.Save()
		case SaveLayerCommand:
			d.SaveLayer(c.Bounds, c.RestoreWithPaint)
		case RestoreCommand:
			d.Restore()

		case TranslateCommand:
			d.Translate(c.TX, c.TY)
		case ScaleCommand:
			d.Scale(c.SX, c.SY)
		case RotateCommand:
			d.Rotate(c.Degrees)
		case SkewCommand:
			d.Skew(c.SX, c.SY)
		case Transform2DAffineCommand:
			d.Transform2DAffine(c.Matrix)
		case TransformFullPerspectiveCommand:
			d.TransformFullPerspective(c.Matrix)

		case ClipRectCommand:
			d.ClipRect(c.Rect, c.Op, c.AntiAlias)
		case ClipRRectCommand:
			d.ClipRRect(c.RRect, c.Op, c.AntiAlias)
		case ClipPathCommand:
			d.ClipPath(res.GetPath(c.Path), c.Op, c.AntiAlias)

		case DrawPaintCommand:
			d.DrawPaint()
		case DrawColorCommand:
			d.DrawColor(c.Color, c.Mode)
		case DrawLineCommand:
			d.DrawLine(c.P0, c.P1)
		case DrawRectCommand:
			d.DrawRect(c.Rect)
		case DrawOvalCommand:
			d.DrawOval(c.Bounds)
		case DrawCircleCommand:
			d.DrawCircle(c.Center, c.Radius)
		case DrawRRectCommand:
			d.DrawRRect(c.RRect)
		case DrawDRRectCommand:
			d.DrawDRRect(c.Outer, c.Inner)
		case DrawArcCommand:
			d.DrawArc(c.Oval, c.StartDegrees, c.SweepDegrees, c.UseCenter)
		case DrawPathCommand:
			d.DrawPath(res.GetPath(c.Path))
		case DrawPointsCommand:
			d.DrawPoints(c.Mode, c.Points)
		case DrawVerticesCommand:
			d.DrawVertices(c.Vertices, c.Mode)
		case DrawImageCommand:
			d.DrawImage(res.GetImage(c.Image), c.At, c.Sampling, c.WithAttributes)
		case DrawImageRectCommand:
			d.DrawImageRect(res.GetImage(c.Image), c.Src, c.Dst, c.Sampling, c.WithAttributes, c.Constraint)
		case DrawImageNineCommand:
			d.DrawImageNine(res.GetImage(c.Image), c.Center, c.Dst, c.Filter, c.WithAttributes)
		case DrawImageLatticeCommand:
			d.DrawImageLattice(res.GetImage(c.Image), c.Lattice, c.Dst, c.Filter, c.WithAttributes)
		case DrawAtlasCommand:
			d.DrawAtlas(res.GetImage(c.Atlas), c.Xforms, c.Tex, c.Colors, c.Mode, c.Sampling, c.Cull, c.WithAttributes)
		case DrawPictureCommand:
			d.DrawPicture(c.Picture, c.Matrix, c.WithAttributes)
		case DrawDisplayListCommand:
			d.DrawDisplayList(c.DisplayList)
		case DrawTextBlobCommand:
			d.DrawTextBlob(c.Blob, c.X, c.Y)
		case DrawShadowCommand:
			d.DrawShadow(res.GetPath(c.Path), c.Color, c.Elevation, c.TransparentOccluder, c.DPR)
		}
	}
}

// PlaybackTo replays the recording to sink between Begin and End.
func (r *Recording) PlaybackTo(sink Sink) error {
	if err := sink.Begin(r.width, r.height); err != nil {
		return err
	}
	r.Playback(sink)
	return sink.End()
}
