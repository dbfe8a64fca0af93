package displaylist

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/gg"
)

// DisplayList is an immutable recording produced by Builder.Build.
//
// A DisplayList may be dispatched any number of times, concurrently, and
// embedded in other display lists. Its bounds are computed on first use
// and cached.
type DisplayList struct {
	storage []byte
	refs    []any

	opCount     int
	nestedBytes int
	nestedOps   int

	cull     Rect
	uniqueID uint32

	boundsOnce sync.Once
	bounds     Rect
	// boundsPasses counts bounds computations; it never exceeds one.
	boundsPasses atomic.Int32
}

var lastUniqueID atomic.Uint32

// nextUniqueID returns a process-wide id that is never zero.
func nextUniqueID() uint32 {
	for {
		if id := lastUniqueID.Add(1); id != 0 {
			return id
		}
	}
}

// UniqueID identifies this list for the life of the process. Caches key
// rendered output on it.
func (dl *DisplayList) UniqueID() uint32 { return dl.uniqueID }

// CullRect returns the cull rectangle the list was recorded with.
func (dl *DisplayList) CullRect() Rect { return dl.cull }

// Bytes returns the memory used by the list. With nested set the sizes of
// embedded display lists and pictures are included.
func (dl *DisplayList) Bytes(nested bool) int {
	n := int(unsafe.Sizeof(DisplayList{})) + len(dl.storage)
	if nested {
		n += dl.nestedBytes
	}
	return n
}

// OpCount returns the number of recorded ops. With nested set the ops of
// embedded display lists and pictures are included.
func (dl *DisplayList) OpCount(nested bool) int {
	if nested {
		return dl.opCount + dl.nestedOps
	}
	return dl.opCount
}

// Bounds returns the conservative bounds of everything the list draws, in
// the list's own coordinates. The first call walks the list; later calls
// return the cached value.
func (dl *DisplayList) Bounds() Rect {
	dl.boundsOnce.Do(func() {
		dl.boundsPasses.Add(1)
		acc := newBoundsAccumulator(dl.cull)
		dl.Dispatch(acc)
		dl.bounds = acc.Bounds()
	})
	return dl.bounds
}

// ErrUnboundedFrame is returned by Frame for a list recorded without a cull
// rect that draws to the whole plane, as DrawPaint and DrawColor do.
var ErrUnboundedFrame = errors.New("displaylist: no bounded frame")

// Frame returns the area to present the list in: its cull rect, or its
// bounds when it was recorded without one. The frame may be empty.
func (dl *DisplayList) Frame() (Rect, error) {
	r := dl.cull
	if r == MaxCullRect {
		r = dl.Bounds()
	}
	if r.IsEmpty() {
		return r, nil
	}
	for _, v := range [...]float32{r.Left, r.Top, r.Right, r.Bottom} {
		if math.IsInf(float64(v), 0) || v <= MaxCullRect.Left || v >= MaxCullRect.Right {
			return r, ErrUnboundedFrame
		}
	}
	return r, nil
}

// Equals reports whether dl and other record the same ops with the same
// arguments. Paths, vertices and lattices are copied when recorded and
// compare by value; images, pictures, text blobs and nested lists compare
// by identity.
func (dl *DisplayList) Equals(other *DisplayList) bool {
	if dl == other {
		return true
	}
	if other == nil || dl == nil {
		return false
	}
	if dl.opCount != other.opCount || len(dl.storage) != len(other.storage) ||
		dl.nestedOps != other.nestedOps || dl.nestedBytes != other.nestedBytes ||
		len(dl.refs) != len(other.refs) {
		return false
	}
	if dl.Bounds() != other.Bounds() {
		return false
	}
	if !bytes.Equal(dl.storage, other.storage) {
		return false
	}
	for i := range dl.refs {
		if !sameRef(dl.refs[i], other.refs[i]) {
			return false
		}
	}
	return true
}

// sameRef compares two resource references. Recorded copies compare by
// value. Other comparable values use ==; slices, maps and funcs are equal
// only when they share backing data.
func sameRef(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *gg.Path:
		b, ok := b.(*gg.Path)
		return ok && samePath(a, b)
	case *Vertices:
		b, ok := b.(*Vertices)
		return ok && a.Equal(b)
	case *Lattice:
		b, ok := b.(*Lattice)
		return ok && a.Equal(b)
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Slice, reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	}
	return false
}

func samePath(a, b *gg.Path) bool {
	if a == nil || b == nil {
		return a == b
	}
	return slices.Equal(a.Elements(), b.Elements())
}
