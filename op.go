package displaylist

// opType identifies a record in the display list buffer. The payload that
// follows the record header is fully determined by the opType; records are
// not self-describing beyond their tag and size.
//
// Record layout, little-endian:
//
//	header  uint32  opType | recordSize<<8
//	payload ...     see the Builder method that writes the op
//	padding         to a multiple of 4 bytes
//
// Resource handles are not stored in the bytes. Each op consumes a fixed
// number of entries (numRefs) from the list's parallel refs slice.
type opType uint8

const (
	opInvalid opType = iota

	// Attribute setters
	opSetAntiAlias
	opSetDither
	opSetInvertColors
	opSetStrokeCap
	opSetStrokeJoin
	opSetStyle
	opSetStrokeWidth
	opSetStrokeMiter
	opSetColor
	opSetBlendMode
	opSetShader
	opClearShader
	opSetColorFilter
	opClearColorFilter
	opSetImageFilter
	opClearImageFilter
	opSetPathEffect
	opClearPathEffect
	opSetMaskFilter
	opClearMaskFilter
	opSetMaskBlurFilterNormal
	opSetMaskBlurFilterSolid
	opSetMaskBlurFilterOuter
	opSetMaskBlurFilterInner

	// Stack control
	opSave
	opSaveLayer
	opSaveLayerBounds
	opRestore

	// Transforms
	opTranslate
	opScale
	opRotate
	opSkew
	opTransform2DAffine
	opTransformFullPerspective

	// Clips
	opClipIntersectRect
	opClipIntersectRRect
	opClipIntersectPath
	opClipDifferenceRect
	opClipDifferenceRRect
	opClipDifferencePath

	// Draw calls
	opDrawPaint
	opDrawColor
	opDrawLine
	opDrawRect
	opDrawOval
	opDrawCircle
	opDrawRRect
	opDrawDRRect
	opDrawArc
	opDrawPath
	opDrawPoints
	opDrawLines
	opDrawPolygon
	opDrawVertices
	opDrawImage
	opDrawImageWithAttr
	opDrawImageRect
	opDrawImageNine
	opDrawImageNineWithAttr
	opDrawImageLattice
	opDrawAtlas
	opDrawAtlasCulled
	opDrawPicture
	opDrawPictureMatrix
	opDrawDisplayList
	opDrawTextBlob
	opDrawShadow
	opDrawShadowTransparentOccluder

	opCount
)

var opNames = [...]string{
	opInvalid:                       "Invalid",
	opSetAntiAlias:                  "SetAntiAlias",
	opSetDither:                     "SetDither",
	opSetInvertColors:               "SetInvertColors",
	opSetStrokeCap:                  "SetStrokeCap",
	opSetStrokeJoin:                 "SetStrokeJoin",
	opSetStyle:                      "SetStyle",
	opSetStrokeWidth:                "SetStrokeWidth",
	opSetStrokeMiter:                "SetStrokeMiter",
	opSetColor:                      "SetColor",
	opSetBlendMode:                  "SetBlendMode",
	opSetShader:                     "SetShader",
	opClearShader:                   "ClearShader",
	opSetColorFilter:                "SetColorFilter",
	opClearColorFilter:              "ClearColorFilter",
	opSetImageFilter:                "SetImageFilter",
	opClearImageFilter:              "ClearImageFilter",
	opSetPathEffect:                 "SetPathEffect",
	opClearPathEffect:               "ClearPathEffect",
	opSetMaskFilter:                 "SetMaskFilter",
	opClearMaskFilter:               "ClearMaskFilter",
	opSetMaskBlurFilterNormal:       "SetMaskBlurFilterNormal",
	opSetMaskBlurFilterSolid:        "SetMaskBlurFilterSolid",
	opSetMaskBlurFilterOuter:        "SetMaskBlurFilterOuter",
	opSetMaskBlurFilterInner:        "SetMaskBlurFilterInner",
	opSave:                          "Save",
	opSaveLayer:                     "SaveLayer",
	opSaveLayerBounds:               "SaveLayerBounds",
	opRestore:                       "Restore",
	opTranslate:                     "Translate",
	opScale:                         "Scale",
	opRotate:                        "Rotate",
	opSkew:                          "Skew",
	opTransform2DAffine:             "Transform2DAffine",
	opTransformFullPerspective:      "TransformFullPerspective",
	opClipIntersectRect:             "ClipIntersectRect",
	opClipIntersectRRect:            "ClipIntersectRRect",
	opClipIntersectPath:             "ClipIntersectPath",
	opClipDifferenceRect:            "ClipDifferenceRect",
	opClipDifferenceRRect:           "ClipDifferenceRRect",
	opClipDifferencePath:            "ClipDifferencePath",
	opDrawPaint:                     "DrawPaint",
	opDrawColor:                     "DrawColor",
	opDrawLine:                      "DrawLine",
	opDrawRect:                      "DrawRect",
	opDrawOval:                      "DrawOval",
	opDrawCircle:                    "DrawCircle",
	opDrawRRect:                     "DrawRRect",
	opDrawDRRect:                    "DrawDRRect",
	opDrawArc:                       "DrawArc",
	opDrawPath:                      "DrawPath",
	opDrawPoints:                    "DrawPoints",
	opDrawLines:                     "DrawLines",
	opDrawPolygon:                   "DrawPolygon",
	opDrawVertices:                  "DrawVertices",
	opDrawImage:                     "DrawImage",
	opDrawImageWithAttr:             "DrawImageWithAttr",
	opDrawImageRect:                 "DrawImageRect",
	opDrawImageNine:                 "DrawImageNine",
	opDrawImageNineWithAttr:         "DrawImageNineWithAttr",
	opDrawImageLattice:              "DrawImageLattice",
	opDrawAtlas:                     "DrawAtlas",
	opDrawAtlasCulled:               "DrawAtlasCulled",
	opDrawPicture:                   "DrawPicture",
	opDrawPictureMatrix:             "DrawPictureMatrix",
	opDrawDisplayList:               "DrawDisplayList",
	opDrawTextBlob:                  "DrawTextBlob",
	opDrawShadow:                    "DrawShadow",
	opDrawShadowTransparentOccluder: "DrawShadowTransparentOccluder",
}

// String returns the op name.
func (t opType) String() string {
	if t < opCount {
		return opNames[t]
	}
	return unknownStr
}

// numRefs returns how many entries of the refs slice the op consumes.
func (t opType) numRefs() int {
	switch t {
	case opSetShader, opSetColorFilter, opSetImageFilter, opSetPathEffect, opSetMaskFilter,
		opClipIntersectPath, opClipDifferencePath,
		opDrawPath, opDrawVertices,
		opDrawImage, opDrawImageWithAttr, opDrawImageRect, opDrawImageNine, opDrawImageNineWithAttr,
		opDrawAtlas, opDrawAtlasCulled,
		opDrawPicture, opDrawPictureMatrix, opDrawDisplayList, opDrawTextBlob,
		opDrawShadow, opDrawShadowTransparentOccluder:
		return 1
	case opDrawImageLattice:
		return 2
	default:
		return 0
	}
}

// isSave reports whether the op opens a save level.
func (t opType) isSave() bool {
	return t == opSave || t == opSaveLayer || t == opSaveLayerBounds
}

// OpName returns the name of the op type encoded as code, for tools that
// inspect raw buffers.
func OpName(code uint8) string {
	return opType(code).String()
}

// NumOpTypes is the size of the op catalog.
const NumOpTypes = int(opCount) - 1

const (
	headerSize = 4
	maxRecord  = 1<<24 - 1
)
