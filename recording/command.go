package recording

import (
	"github.com/gogpu/displaylist"
	"golang.org/x/image/math/f32"
)

// CommandType identifies the type of a command.
// There is one command type per displaylist.Dispatcher method.
type CommandType uint8

const (
	// Attribute commands
	CmdSetAntiAlias CommandType = iota
	CmdSetDither
	CmdSetInvertColors
	CmdSetStrokeCap
	CmdSetStrokeJoin
	CmdSetStyle
	CmdSetStrokeWidth
	CmdSetStrokeMiter
	CmdSetColor
	CmdSetBlendMode
	CmdSetShader
	CmdSetColorFilter
	CmdSetImageFilter
	CmdSetPathEffect
	CmdSetMaskFilter
	CmdSetMaskBlurFilter

	// State commands
	CmdSave
	CmdSaveLayer
	CmdRestore

	// Transform commands
	CmdTranslate
	CmdScale
	CmdRotate
	CmdSkew
	CmdTransform2DAffine
	CmdTransformFullPerspective

	// Clip commands
	CmdClipRect
	CmdClipRRect
	CmdClipPath

	// Drawing commands
	CmdDrawPaint
	CmdDrawColor
	CmdDrawLine
	CmdDrawRect
	CmdDrawOval
	CmdDrawCircle
	CmdDrawRRect
	CmdDrawDRRect
	CmdDrawArc
	CmdDrawPath
	CmdDrawPoints
	CmdDrawVertices
	CmdDrawImage
	CmdDrawImageRect
	CmdDrawImageNine
	CmdDrawImageLattice
	CmdDrawAtlas
	CmdDrawPicture
	CmdDrawDisplayList
	CmdDrawTextBlob
	CmdDrawShadow

	cmdCount
)

var commandTypeNames = [...]string{
	CmdSetAntiAlias:             "SetAntiAlias",
	CmdSetDither:                "SetDither",
	CmdSetInvertColors:          "SetInvertColors",
	CmdSetStrokeCap:             "SetStrokeCap",
	CmdSetStrokeJoin:            "SetStrokeJoin",
	CmdSetStyle:                 "SetStyle",
	CmdSetStrokeWidth:           "SetStrokeWidth",
	CmdSetStrokeMiter:           "SetStrokeMiter",
	CmdSetColor:                 "SetColor",
	CmdSetBlendMode:             "SetBlendMode",
	CmdSetShader:                "SetShader",
	CmdSetColorFilter:           "SetColorFilter",
	CmdSetImageFilter:           "SetImageFilter",
	CmdSetPathEffect:            "SetPathEffect",
	CmdSetMaskFilter:            "SetMaskFilter",
	CmdSetMaskBlurFilter:        "SetMaskBlurFilter",
	CmdSave:                     "Save",
	CmdSaveLayer:                "SaveLayer",
	CmdRestore:                  "Restore",
	CmdTranslate:                "Translate",
	CmdScale:                    "Scale",
	CmdRotate:                   "Rotate",
	CmdSkew:                     "Skew",
	CmdTransform2DAffine:        "Transform2DAffine",
	CmdTransformFullPerspective: "TransformFullPerspective",
	CmdClipRect:                 "ClipRect",
	CmdClipRRect:                "ClipRRect",
	CmdClipPath:                 "ClipPath",
	CmdDrawPaint:                "DrawPaint",
	CmdDrawColor:                "DrawColor",
	CmdDrawLine:                 "DrawLine",
	CmdDrawRect:                 "DrawRect",
	CmdDrawOval:                 "DrawOval",
	CmdDrawCircle:               "DrawCircle",
	CmdDrawRRect:                "DrawRRect",
	CmdDrawDRRect:               "DrawDRRect",
	CmdDrawArc:                  "DrawArc",
	CmdDrawPath:                 "DrawPath",
	CmdDrawPoints:               "DrawPoints",
	CmdDrawVertices:             "DrawVertices",
	CmdDrawImage:                "DrawImage",
	CmdDrawImageRect:            "DrawImageRect",
	CmdDrawImageNine:            "DrawImageNine",
	CmdDrawImageLattice:         "DrawImageLattice",
	CmdDrawAtlas:                "DrawAtlas",
	CmdDrawPicture:              "DrawPicture",
	CmdDrawDisplayList:          "DrawDisplayList",
	CmdDrawTextBlob:             "DrawTextBlob",
	CmdDrawShadow:               "DrawShadow",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if c < cmdCount {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// --------------------------------------------------------------------------
// Reference Types
// --------------------------------------------------------------------------

// PathRef is a reference to a path in the resource pool.
type PathRef uint32

// ImageRef is a reference to an image in the resource pool.
type ImageRef uint32

// InvalidRef is the sentinel value for an invalid reference.
const InvalidRef = ^uint32(0)

// IsValid returns true if the reference is not InvalidRef.
func (r PathRef) IsValid() bool { return uint32(r) != InvalidRef }

// IsValid returns true if the reference is not InvalidRef.
func (r ImageRef) IsValid() bool { return uint32(r) != InvalidRef }

// --------------------------------------------------------------------------
// Attribute Commands
// --------------------------------------------------------------------------

type SetAntiAliasCommand struct{ AntiAlias bool }
type SetDitherCommand struct{ Dither bool }
type SetInvertColorsCommand struct{ Invert bool }
type SetStrokeCapCommand struct{ Cap displaylist.StrokeCap }
type SetStrokeJoinCommand struct{ Join displaylist.StrokeJoin }
type SetStyleCommand struct{ Style displaylist.DrawStyle }
type SetStrokeWidthCommand struct{ Width float32 }
type SetStrokeMiterCommand struct{ Limit float32 }
type SetColorCommand struct{ Color displaylist.Color }
type SetBlendModeCommand struct{ Mode displaylist.BlendMode }

// SetShaderCommand installs Shader; a nil Shader clears it.
type SetShaderCommand struct{ Shader displaylist.Shader }

// SetColorFilterCommand installs Filter; a nil Filter clears it.
type SetColorFilterCommand struct{ Filter displaylist.ColorFilter }

// SetImageFilterCommand installs Filter; a nil Filter clears it.
type SetImageFilterCommand struct{ Filter displaylist.ImageFilter }

// SetPathEffectCommand installs Effect; a nil Effect clears it.
type SetPathEffectCommand struct{ Effect displaylist.PathEffect }

// SetMaskFilterCommand installs Filter; a nil Filter clears it.
type SetMaskFilterCommand struct{ Filter displaylist.MaskFilter }

type SetMaskBlurFilterCommand struct {
	Style displaylist.BlurStyle
	Sigma float32
}

func (SetAntiAliasCommand) Type() CommandType      { return CmdSetAntiAlias }
func (SetDitherCommand) Type() CommandType         { return CmdSetDither }
func (SetInvertColorsCommand) Type() CommandType   { return CmdSetInvertColors }
func (SetStrokeCapCommand) Type() CommandType      { return CmdSetStrokeCap }
func (SetStrokeJoinCommand) Type() CommandType     { return CmdSetStrokeJoin }
func (SetStyleCommand) Type() CommandType          { return CmdSetStyle }
func (SetStrokeWidthCommand) Type() CommandType    { return CmdSetStrokeWidth }
func (SetStrokeMiterCommand) Type() CommandType    { return CmdSetStrokeMiter }
func (SetColorCommand) Type() CommandType          { return CmdSetColor }
func (SetBlendModeCommand) Type() CommandType      { return CmdSetBlendMode }
func (SetShaderCommand) Type() CommandType         { return CmdSetShader }
func (SetColorFilterCommand) Type() CommandType    { return CmdSetColorFilter }
func (SetImageFilterCommand) Type() CommandType    { return CmdSetImageFilter }
func (SetPathEffectCommand) Type() CommandType     { return CmdSetPathEffect }
func (SetMaskFilterCommand) Type() CommandType     { return CmdSetMaskFilter }
func (SetMaskBlurFilterCommand) Type() CommandType { return CmdSetMaskBlurFilter }

// --------------------------------------------------------------------------
// State Commands
// --------------------------------------------------------------------------

// SaveCommand saves the transform and clip.
type SaveCommand struct{}

// SaveLayerCommand saves the transform and clip and starts a layer.
type SaveLayerCommand struct {
	// Bounds is nil when the layer is unbounded.
	Bounds *displaylist.Rect
	// RestoreWithPaint composites the layer with the attributes current
	// at save time.
	RestoreWithPaint bool
}

// RestoreCommand restores the transform and clip of the matching save.
type RestoreCommand struct{}

func (SaveCommand) Type() CommandType      { return CmdSave }
func (SaveLayerCommand) Type() CommandType { return CmdSaveLayer }
func (RestoreCommand) Type() CommandType   { return CmdRestore }

// --------------------------------------------------------------------------
// Transform Commands
// --------------------------------------------------------------------------

type TranslateCommand struct{ TX, TY float32 }
type ScaleCommand struct{ SX, SY float32 }
type RotateCommand struct{ Degrees float32 }
type SkewCommand struct{ SX, SY float32 }
type Transform2DAffineCommand struct{ Matrix f32.Aff3 }
type TransformFullPerspectiveCommand struct{ Matrix f32.Mat4 }

func (TranslateCommand) Type() CommandType                { return CmdTranslate }
func (ScaleCommand) Type() CommandType                    { return CmdScale }
func (RotateCommand) Type() CommandType                   { return CmdRotate }
func (SkewCommand) Type() CommandType                     { return CmdSkew }
func (Transform2DAffineCommand) Type() CommandType        { return CmdTransform2DAffine }
func (TransformFullPerspectiveCommand) Type() CommandType { return CmdTransformFullPerspective }

// --------------------------------------------------------------------------
// Clip Commands
// --------------------------------------------------------------------------

type ClipRectCommand struct {
	Rect      displaylist.Rect
	Op        displaylist.ClipOp
	AntiAlias bool
}

type ClipRRectCommand struct {
	RRect     displaylist.RRect
	Op        displaylist.ClipOp
	AntiAlias bool
}

// ClipPathCommand clips to a path held in the resource pool.
type ClipPathCommand struct {
	Path      PathRef
	Op        displaylist.ClipOp
	AntiAlias bool
}

func (ClipRectCommand) Type() CommandType  { return CmdClipRect }
func (ClipRRectCommand) Type() CommandType { return CmdClipRRect }
func (ClipPathCommand) Type() CommandType  { return CmdClipPath }

// --------------------------------------------------------------------------
// Drawing Commands
// --------------------------------------------------------------------------

type DrawPaintCommand struct{}

type DrawColorCommand struct {
	Color displaylist.Color
	Mode  displaylist.BlendMode
}

type DrawLineCommand struct{ P0, P1 displaylist.Point }
type DrawRectCommand struct{ Rect displaylist.Rect }
type DrawOvalCommand struct{ Bounds displaylist.Rect }

type DrawCircleCommand struct {
	Center displaylist.Point
	Radius float32
}

type DrawRRectCommand struct{ RRect displaylist.RRect }
type DrawDRRectCommand struct{ Outer, Inner displaylist.RRect }

type DrawArcCommand struct {
	Oval                       displaylist.Rect
	StartDegrees, SweepDegrees float32
	UseCenter                  bool
}

// DrawPathCommand draws a path held in the resource pool.
type DrawPathCommand struct{ Path PathRef }

// DrawPointsCommand owns its copy of the points.
type DrawPointsCommand struct {
	Mode   displaylist.PointMode
	Points []displaylist.Point
}

type DrawVerticesCommand struct {
	Vertices *displaylist.Vertices
	Mode     displaylist.BlendMode
}

type DrawImageCommand struct {
	Image          ImageRef
	At             displaylist.Point
	Sampling       displaylist.SamplingOptions
	WithAttributes bool
}

type DrawImageRectCommand struct {
	Image          ImageRef
	Src, Dst       displaylist.Rect
	Sampling       displaylist.SamplingOptions
	WithAttributes bool
	Constraint     displaylist.SrcRectConstraint
}

type DrawImageNineCommand struct {
	Image          ImageRef
	Center         displaylist.IRect
	Dst            displaylist.Rect
	Filter         displaylist.FilterMode
	WithAttributes bool
}

type DrawImageLatticeCommand struct {
	Image          ImageRef
	Lattice        *displaylist.Lattice
	Dst            displaylist.Rect
	Filter         displaylist.FilterMode
	WithAttributes bool
}

// DrawAtlasCommand owns its copies of the sprite arrays. Colors and Cull
// may be nil.
type DrawAtlasCommand struct {
	Atlas          ImageRef
	Xforms         []displaylist.RSXform
	Tex            []displaylist.Rect
	Colors         []displaylist.Color
	Mode           displaylist.BlendMode
	Sampling       displaylist.SamplingOptions
	Cull           *displaylist.Rect
	WithAttributes bool
}

type DrawPictureCommand struct {
	Picture        displaylist.Picture
	Matrix         *f32.Aff3
	WithAttributes bool
}

type DrawDisplayListCommand struct{ DisplayList *displaylist.DisplayList }

type DrawTextBlobCommand struct {
	Blob *displaylist.TextBlob
	X, Y float32
}

// DrawShadowCommand draws the shadow of a path held in the resource pool.
type DrawShadowCommand struct {
	Path                PathRef
	Color               displaylist.Color
	Elevation           float32
	TransparentOccluder bool
	DPR                 float32
}

func (DrawPaintCommand) Type() CommandType        { return CmdDrawPaint }
func (DrawColorCommand) Type() CommandType        { return CmdDrawColor }
func (DrawLineCommand) Type() CommandType         { return CmdDrawLine }
func (DrawRectCommand) Type() CommandType         { return CmdDrawRect }
func (DrawOvalCommand) Type() CommandType         { return CmdDrawOval }
func (DrawCircleCommand) Type() CommandType       { return CmdDrawCircle }
func (DrawRRectCommand) Type() CommandType        { return CmdDrawRRect }
func (DrawDRRectCommand) Type() CommandType       { return CmdDrawDRRect }
func (DrawArcCommand) Type() CommandType          { return CmdDrawArc }
func (DrawPathCommand) Type() CommandType         { return CmdDrawPath }
func (DrawPointsCommand) Type() CommandType       { return CmdDrawPoints }
func (DrawVerticesCommand) Type() CommandType     { return CmdDrawVertices }
func (DrawImageCommand) Type() CommandType        { return CmdDrawImage }
func (DrawImageRectCommand) Type() CommandType    { return CmdDrawImageRect }
func (DrawImageNineCommand) Type() CommandType    { return CmdDrawImageNine }
func (DrawImageLatticeCommand) Type() CommandType { return CmdDrawImageLattice }
func (DrawAtlasCommand) Type() CommandType        { return CmdDrawAtlas }
func (DrawPictureCommand) Type() CommandType      { return CmdDrawPicture }
func (DrawDisplayListCommand) Type() CommandType  { return CmdDrawDisplayList }
func (DrawTextBlobCommand) Type() CommandType     { return CmdDrawTextBlob }
func (DrawShadowCommand) Type() CommandType       { return CmdDrawShadow }
