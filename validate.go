package displaylist

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Errors reported by Validate.
var (
	ErrTruncatedRecord   = errors.New("displaylist: truncated record")
	ErrUnknownOp         = errors.New("displaylist: unknown op type")
	ErrShortPayload      = errors.New("displaylist: payload too short for op")
	ErrMissingRefs       = errors.New("displaylist: op refers past the end of refs")
	ErrExtraRefs         = errors.New("displaylist: refs not consumed by any op")
	ErrUnbalancedRestore = errors.New("displaylist: restore without matching save")
	ErrUnbalancedSave    = errors.New("displaylist: save without matching restore")
	ErrOpCountMismatch   = errors.New("displaylist: op count does not match records")
)

// minPayload is the smallest payload each op can have. Variable-length ops
// are checked further in Validate.
var minPayload = [opCount]int{
	opSetAntiAlias:                  sizeBool,
	opSetDither:                     sizeBool,
	opSetInvertColors:               sizeBool,
	opSetStrokeCap:                  sizeU32,
	opSetStrokeJoin:                 sizeU32,
	opSetStyle:                      sizeU32,
	opSetStrokeWidth:                sizeU32,
	opSetStrokeMiter:                sizeU32,
	opSetColor:                      sizeU32,
	opSetBlendMode:                  sizeU32,
	opSetMaskBlurFilterNormal:       sizeU32,
	opSetMaskBlurFilterSolid:        sizeU32,
	opSetMaskBlurFilterOuter:        sizeU32,
	opSetMaskBlurFilterInner:        sizeU32,
	opSaveLayer:                     sizeBool,
	opSaveLayerBounds:               sizeRect + sizeBool,
	opTranslate:                     2 * sizeU32,
	opScale:                         2 * sizeU32,
	opRotate:                        sizeU32,
	opSkew:                          2 * sizeU32,
	opTransform2DAffine:             sizeAff3,
	opTransformFullPerspective:      sizeMat4,
	opClipIntersectRect:             sizeRect + sizeBool,
	opClipIntersectRRect:            sizeRRect + sizeBool,
	opClipIntersectPath:             sizeBool,
	opClipDifferenceRect:            sizeRect + sizeBool,
	opClipDifferenceRRect:           sizeRRect + sizeBool,
	opClipDifferencePath:            sizeBool,
	opDrawColor:                     2 * sizeU32,
	opDrawLine:                      2 * sizePoint,
	opDrawRect:                      sizeRect,
	opDrawOval:                      sizeRect,
	opDrawCircle:                    sizePoint + sizeU32,
	opDrawRRect:                     sizeRRect,
	opDrawDRRect:                    2 * sizeRRect,
	opDrawArc:                       sizeRect + 2*sizeU32 + sizeBool,
	opDrawPoints:                    sizeU32,
	opDrawLines:                     sizeU32,
	opDrawPolygon:                   sizeU32,
	opDrawVertices:                  sizeU32,
	opDrawImage:                     sizePoint + sizeSample,
	opDrawImageWithAttr:             sizePoint + sizeSample,
	opDrawImageRect:                 2*sizeRect + sizeSample + 2,
	opDrawImageNine:                 sizeIRect + sizeRect + 1,
	opDrawImageNineWithAttr:         sizeIRect + sizeRect + 1,
	opDrawImageLattice:              sizeRect + 2,
	opDrawAtlas:                     2*sizeU32 + sizeSample + 2,
	opDrawAtlasCulled:               2*sizeU32 + sizeRect + sizeSample + 2,
	opDrawPicture:                   sizeBool,
	opDrawPictureMatrix:             sizeAff3 + sizeBool,
	opDrawTextBlob:                  2 * sizeU32,
	opDrawShadow:                    3 * sizeU32,
	opDrawShadowTransparentOccluder: 3 * sizeU32,
}

// Validate walks the list without dispatching and reports the first
// structural problem found. Lists produced by Builder.Build always
// validate; Dispatch does not call Validate.
func (dl *DisplayList) Validate() error {
	var (
		ops   int
		refs  int
		depth int
	)
	for off := 0; off < len(dl.storage); {
		if off+headerSize > len(dl.storage) {
			return fmt.Errorf("%w: header at offset %d", ErrTruncatedRecord, off)
		}
		h := binary.LittleEndian.Uint32(dl.storage[off:])
		t, size := opType(h), int(h>>8)
		if size < headerSize || off+size > len(dl.storage) {
			return fmt.Errorf("%w: %v at offset %d claims %d bytes", ErrTruncatedRecord, t, off, size)
		}
		if t == opInvalid || t >= opCount {
			return fmt.Errorf("%w: code %d at offset %d", ErrUnknownOp, uint8(t), off)
		}
		payload := dl.storage[off+headerSize : off+size]
		if need := payloadSize(t, payload); len(payload) < need {
			return fmt.Errorf("%w: %v at offset %d has %d bytes, needs %d",
				ErrShortPayload, t, off, len(payload), need)
		}
		refs += t.numRefs()
		if refs > len(dl.refs) {
			return fmt.Errorf("%w: %v at offset %d", ErrMissingRefs, t, off)
		}
		switch {
		case t.isSave():
			depth++
		case t == opRestore:
			if depth == 0 {
				return fmt.Errorf("%w: offset %d", ErrUnbalancedRestore, off)
			}
			depth--
		}
		ops++
		off += size
	}
	if refs != len(dl.refs) {
		return fmt.Errorf("%w: %d of %d used", ErrExtraRefs, refs, len(dl.refs))
	}
	if depth != 0 {
		return fmt.Errorf("%w: %d open", ErrUnbalancedSave, depth)
	}
	if ops != dl.opCount {
		return fmt.Errorf("%w: %d records, op count %d", ErrOpCountMismatch, ops, dl.opCount)
	}
	return nil
}

// payloadSize returns the number of payload bytes op t needs, reading the
// element count of variable-length ops from payload.
func payloadSize(t opType, payload []byte) int {
	need := minPayload[t]
	if len(payload) < need {
		return need
	}
	switch t {
	case opDrawPoints, opDrawLines, opDrawPolygon:
		n := int(binary.LittleEndian.Uint32(payload))
		return need + n*sizePoint
	case opDrawAtlas, opDrawAtlasCulled:
		n := int(binary.LittleEndian.Uint32(payload))
		per := sizeXform + sizeRect
		if payload[need-1] != 0 {
			per += sizeU32
		}
		return need + n*per
	}
	return need
}
