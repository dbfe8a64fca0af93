package displaylist

import (
	"image"

	"github.com/gogpu/gg"
	"golang.org/x/image/math/f32"
)

// Dispatcher consumes a display list. DisplayList.Dispatch decodes each
// record and calls the matching method, in recording order.
//
// The Builder has the same method set, so anything that drives a Dispatcher
// can record into a Builder instead.
//
// # Contract
//
// A Dispatcher must implement every method; there are no optional ops.
// Attribute setters change persistent state that Save and Restore do not
// touch. Save, SaveLayer and Restore bracket only the transform and clip.
// Transforms and clips compose with the current state, never replace it.
//
// Slices passed to DrawPoints and DrawAtlas are only valid for the
// duration of the call. Resource arguments (paths, images, vertices,
// lattices, pictures, display lists, text blobs, filters) are shared with
// the display list and must not be mutated.
type Dispatcher interface {
	// Attributes

	SetAntiAlias(aa bool)
	SetDither(dither bool)
	SetInvertColors(invert bool)
	SetStrokeCap(c StrokeCap)
	SetStrokeJoin(j StrokeJoin)
	SetStyle(s DrawStyle)
	SetStrokeWidth(width float32)
	SetStrokeMiter(limit float32)
	SetColor(c Color)
	SetBlendMode(m BlendMode)
	// SetShader installs s; nil clears the shader.
	SetShader(s Shader)
	// SetColorFilter installs f; nil clears the color filter.
	SetColorFilter(f ColorFilter)
	// SetImageFilter installs f; nil clears the image filter.
	SetImageFilter(f ImageFilter)
	// SetPathEffect installs e; nil clears the path effect.
	SetPathEffect(e PathEffect)
	// SetMaskFilter installs f; nil clears the mask filter.
	SetMaskFilter(f MaskFilter)
	// SetMaskBlurFilter installs a blur mask filter.
	SetMaskBlurFilter(style BlurStyle, sigma float32)

	// Save and restore

	Save()
	// SaveLayer starts an offscreen layer. bounds may be nil. When
	// restoreWithPaint is set the attributes current at this call are used
	// to composite the layer on Restore.
	SaveLayer(bounds *Rect, restoreWithPaint bool)
	Restore()

	// Transforms

	Translate(tx, ty float32)
	Scale(sx, sy float32)
	Rotate(degrees float32)
	Skew(sx, sy float32)
	Transform2DAffine(m f32.Aff3)
	TransformFullPerspective(m f32.Mat4)

	// Clips

	ClipRect(r Rect, op ClipOp, aa bool)
	ClipRRect(rr RRect, op ClipOp, aa bool)
	ClipPath(p *gg.Path, op ClipOp, aa bool)

	// Draw calls

	DrawPaint()
	DrawColor(c Color, mode BlendMode)
	DrawLine(p0, p1 Point)
	DrawRect(r Rect)
	DrawOval(bounds Rect)
	DrawCircle(center Point, radius float32)
	DrawRRect(rr RRect)
	DrawDRRect(outer, inner RRect)
	DrawArc(oval Rect, startDegrees, sweepDegrees float32, useCenter bool)
	DrawPath(p *gg.Path)
	DrawPoints(mode PointMode, pts []Point)
	DrawVertices(v *Vertices, mode BlendMode)
	DrawImage(img image.Image, at Point, sampling SamplingOptions, withAttributes bool)
	DrawImageRect(img image.Image, src, dst Rect, sampling SamplingOptions, withAttributes bool, constraint SrcRectConstraint)
	DrawImageNine(img image.Image, center IRect, dst Rect, filter FilterMode, withAttributes bool)
	DrawImageLattice(img image.Image, lattice *Lattice, dst Rect, filter FilterMode, withAttributes bool)
	// DrawAtlas draws one sprite per xform. colors may be nil; cull may be
	// nil when the caller has no bounds for the sprites.
	DrawAtlas(atlas image.Image, xforms []RSXform, tex []Rect, colors []Color, mode BlendMode,
		sampling SamplingOptions, cull *Rect, withAttributes bool)
	// DrawPicture replays a foreign picture; matrix may be nil.
	DrawPicture(p Picture, matrix *f32.Aff3, withAttributes bool)
	DrawDisplayList(dl *DisplayList)
	DrawTextBlob(blob *TextBlob, x, y float32)
	DrawShadow(p *gg.Path, c Color, elevation float32, transparentOccluder bool, dpr float32)
}
