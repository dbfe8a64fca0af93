package displaylist

import (
	"slices"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// VertexMode selects how Vertices positions form triangles.
type VertexMode uint32

const (
	VertexTriangles VertexMode = iota
	VertexTriangleStrip
	VertexTriangleFan
)

// Vertices is a triangle mesh with optional per-vertex colors and texture
// coordinates. Indices, when present, select positions.
type Vertices struct {
	Mode      VertexMode
	Positions []Point
	TexCoords []Point
	Colors    []Color
	Indices   []uint16
}

// Bounds returns the bounds of all positions.
func (v *Vertices) Bounds() Rect {
	return RectFromPoints(v.Positions)
}

// Triangles calls fn for every triangle the mesh describes, resolving indices.
func (v *Vertices) Triangles(fn func(a, b, c int)) {
	n := len(v.Positions)
	at := func(i int) int { return i }
	if len(v.Indices) > 0 {
		n = len(v.Indices)
		at = func(i int) int { return int(v.Indices[i]) }
	}
	switch v.Mode {
	case VertexTriangles:
		for i := 0; i+2 < n; i += 3 {
			fn(at(i), at(i+1), at(i+2))
		}
	case VertexTriangleStrip:
		for i := 0; i+2 < n; i++ {
			fn(at(i), at(i+1), at(i+2))
		}
	case VertexTriangleFan:
		for i := 1; i+1 < n; i++ {
			fn(at(0), at(i), at(i+1))
		}
	}
}

// Equal reports whether v and o describe the same mesh.
func (v *Vertices) Equal(o *Vertices) bool {
	if v == nil || o == nil {
		return v == o
	}
	return v.Mode == o.Mode &&
		slices.Equal(v.Positions, o.Positions) &&
		slices.Equal(v.TexCoords, o.TexCoords) &&
		slices.Equal(v.Colors, o.Colors) &&
		slices.Equal(v.Indices, o.Indices)
}

// Clone returns a deep copy.
func (v *Vertices) Clone() *Vertices {
	if v == nil {
		return nil
	}
	return &Vertices{
		Mode:      v.Mode,
		Positions: slices.Clone(v.Positions),
		TexCoords: slices.Clone(v.TexCoords),
		Colors:    slices.Clone(v.Colors),
		Indices:   slices.Clone(v.Indices),
	}
}

// LatticeRectType marks how a lattice cell is drawn.
type LatticeRectType uint8

const (
	LatticeDefault     LatticeRectType = iota // draw the image cell
	LatticeTransparent                        // skip the cell
	LatticeFixedColor                         // fill the cell with its color
)

// Lattice divides an image into a grid of stretchable and fixed cells.
// Even-indexed spans (starting at the image edge) keep their size and the
// odd-indexed spans between divs stretch.
type Lattice struct {
	XDivs     []int32
	YDivs     []int32
	RectTypes []LatticeRectType // optional, one per cell, row-major
	Colors    []Color           // optional, used by LatticeFixedColor cells
	Bounds    *IRect            // optional source subset
}

// Equal reports whether l and o divide an image the same way.
func (l *Lattice) Equal(o *Lattice) bool {
	if l == nil || o == nil {
		return l == o
	}
	if (l.Bounds == nil) != (o.Bounds == nil) || l.Bounds != nil && *l.Bounds != *o.Bounds {
		return false
	}
	return slices.Equal(l.XDivs, o.XDivs) &&
		slices.Equal(l.YDivs, o.YDivs) &&
		slices.Equal(l.RectTypes, o.RectTypes) &&
		slices.Equal(l.Colors, o.Colors)
}

// Clone returns a deep copy.
func (l *Lattice) Clone() *Lattice {
	if l == nil {
		return nil
	}
	out := &Lattice{
		XDivs:     slices.Clone(l.XDivs),
		YDivs:     slices.Clone(l.YDivs),
		RectTypes: slices.Clone(l.RectTypes),
		Colors:    slices.Clone(l.Colors),
	}
	if l.Bounds != nil {
		b := *l.Bounds
		out.Bounds = &b
	}
	return out
}

// TextBlob is a run of text in a single face, positioned relative to the
// baseline origin passed to DrawTextBlob.
type TextBlob struct {
	text   string
	face   text.Face
	bounds Rect
}

// NewTextBlob measures s in face. The face is shared, not copied.
func NewTextBlob(s string, face text.Face) *TextBlob {
	m := face.Metrics()
	return &TextBlob{
		text: s,
		face: face,
		bounds: Rect{
			Left:   0,
			Top:    float32(-m.Ascent),
			Right:  float32(face.Advance(s)),
			Bottom: float32(m.Descent),
		},
	}
}

// Text returns the blob's string.
func (b *TextBlob) Text() string { return b.text }

// Face returns the blob's font face.
func (b *TextBlob) Face() text.Face { return b.face }

// Bounds returns conservative bounds relative to the baseline origin.
func (b *TextBlob) Bounds() Rect { return b.bounds }

// Picture is a foreign recorded picture that a display list can embed.
type Picture interface {
	// CullRect returns the picture's bounds in its own coordinates.
	CullRect() Rect
	// ApproximateOpCount returns the number of ops, optionally including
	// ops of pictures nested inside it.
	ApproximateOpCount(nested bool) int
	// ApproximateBytesUsed returns the memory held by the picture.
	ApproximateBytesUsed() int
	// Playback replays the picture into d.
	Playback(d Dispatcher)
}

// PathBounds returns the control-point bounds of p.
func PathBounds(p *gg.Path) Rect {
	if p == nil {
		return Rect{}
	}
	var pts []Point
	add := func(q gg.Point) { pts = append(pts, Point{X: float32(q.X), Y: float32(q.Y)}) }
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			add(e.Point)
		case gg.LineTo:
			add(e.Point)
		case gg.QuadTo:
			add(e.Control)
			add(e.Point)
		case gg.CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	return RectFromPoints(pts)
}

func clonePath(p *gg.Path) *gg.Path {
	if p == nil {
		return gg.NewPath()
	}
	return p.Clone()
}
