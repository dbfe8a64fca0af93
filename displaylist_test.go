package displaylist

import (
	"errors"
	"image"
	"sync"
	"testing"
	"unsafe"

	"github.com/gogpu/gg"
)

func buildScenario() *DisplayList {
	b := NewBuilder()
	b.SetColor(0xFF0000FF)
	b.DrawRect(LTRB(0, 0, 10, 10))
	b.Save()
	b.Translate(100, 100)
	b.DrawCircle(Pt(0, 0), 5)
	b.Restore()
	return b.Build()
}

func TestScenario(t *testing.T) {
	dl := buildScenario()

	if got := dl.OpCount(false); got != 6 {
		t.Errorf("OpCount(false) = %d, want 6", got)
	}
	if got := dl.OpCount(true); got != 6 {
		t.Errorf("OpCount(true) = %d, want 6", got)
	}
	// SetColor 8 + DrawRect 20 + Save 4 + Translate 12 + DrawCircle 16 + Restore 4
	if got, want := dl.Bytes(false), int(unsafe.Sizeof(DisplayList{}))+64; got != want {
		t.Errorf("Bytes(false) = %d, want %d", got, want)
	}
	if got, want := dl.Bounds(), LTRB(0, 0, 105, 105); !nearRect(got, want) {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if dl.CullRect() != MaxCullRect {
		t.Errorf("CullRect() = %v, want MaxCullRect", dl.CullRect())
	}
	if err := dl.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestUniqueID(t *testing.T) {
	seen := make(map[uint32]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				id := NewBuilder().Build().UniqueID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != 800 {
		t.Errorf("got %d distinct ids, want 800", len(seen))
	}
	if seen[0] {
		t.Error("a list was assigned id 0")
	}
}

func TestNextUniqueIDSkipsZero(t *testing.T) {
	orig := lastUniqueID.Load()
	t.Cleanup(func() { lastUniqueID.Store(orig) })

	lastUniqueID.Store(^uint32(0))
	if id := nextUniqueID(); id != 1 {
		t.Errorf("nextUniqueID after wrap = %d, want 1", id)
	}
}

func TestBoundsComputedOnce(t *testing.T) {
	dl := buildScenario()

	var wg sync.WaitGroup
	results := make([]Rect, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = dl.Bounds()
		}()
	}
	wg.Wait()

	for i, r := range results {
		if r != results[0] {
			t.Errorf("Bounds() call %d = %v, want %v", i, r, results[0])
		}
	}
	if got := dl.Bounds(); got != results[0] {
		t.Errorf("Bounds() = %v, want %v", got, results[0])
	}
	if n := dl.boundsPasses.Load(); n != 1 {
		t.Errorf("bounds computed %d times, want 1", n)
	}
}

func TestEquals(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	record := func(r Rect, img image.Image) *DisplayList {
		b := NewBuilder()
		b.SetColor(ColorRed)
		b.DrawRect(r)
		b.DrawImage(img, Pt(0, 0), SamplingOptions{}, false)
		return b.Build()
	}

	a := record(LTRB(0, 0, 10, 10), img)
	tests := []struct {
		name  string
		other *DisplayList
		want  bool
	}{
		{"self", a, true},
		{"same calls", record(LTRB(0, 0, 10, 10), img), true},
		{"one coordinate differs", record(LTRB(0, 0, 10, 11), img), false},
		{"different image", record(LTRB(0, 0, 10, 10), image.NewRGBA(image.Rect(0, 0, 2, 2))), false},
		{"nil", nil, false},
		{"empty", NewBuilder().Build(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Equals(tt.other); got != tt.want {
				t.Errorf("Equals() = %v, want %v", got, tt.want)
			}
			if tt.other != nil {
				if got := tt.other.Equals(a); got != tt.want {
					t.Errorf("reverse Equals() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestEqualsRecordedCopies(t *testing.T) {
	p := gg.NewPath()
	p.Rectangle(0, 0, 5, 5)
	other := gg.NewPath()
	other.Rectangle(0, 0, 5, 6)
	v := &Vertices{Mode: VertexTriangles, Positions: []Point{{0, 0}, {4, 0}, {0, 4}}}
	l := &Lattice{XDivs: []int32{2}, YDivs: []int32{2}}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	record := func(p *gg.Path, v *Vertices, l *Lattice) *DisplayList {
		b := NewBuilder()
		b.DrawPath(p)
		b.ClipPath(p, ClipIntersect, true)
		b.DrawVertices(v, BlendSrcOver)
		b.DrawImageLattice(img, l, LTRB(0, 0, 8, 8), FilterLinear, false)
		return b.Build()
	}

	tests := []struct {
		name string
		a, b *DisplayList
		want bool
	}{
		{"same resources", record(p, v, l), record(p, v, l), true},
		{"equal copies", record(p, v, l), record(p.Clone(), v.Clone(), l.Clone()), true},
		{"different path", record(p, v, l), record(other, v, l), false},
		{
			"different vertices",
			record(p, v, l),
			record(p, &Vertices{Mode: VertexTriangles, Positions: []Point{{0, 0}, {4, 0}, {0, 5}}}, l),
			false,
		},
		{"different lattice", record(p, v, l), record(p, v, &Lattice{XDivs: []int32{3}, YDivs: []int32{2}}), false},
		{"nil resources", record(nil, nil, nil), record(nil, nil, nil), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equals(tt.b); got != tt.want {
				t.Errorf("Equals() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNestedAccounting(t *testing.T) {
	gb := NewBuilder()
	gb.DrawRect(LTRB(0, 0, 1, 1))
	gb.DrawRect(LTRB(1, 1, 2, 2))
	grandchild := gb.Build()

	cb := NewBuilder()
	cb.DrawDisplayList(grandchild)
	cb.DrawPaint()
	child := cb.Build()

	pb := NewBuilder()
	pb.SetColor(ColorRed)
	pb.DrawDisplayList(child)
	parent := pb.Build()

	if got, want := child.Bytes(true), child.Bytes(false)+grandchild.Bytes(true); got != want {
		t.Errorf("child.Bytes(true) = %d, want %d", got, want)
	}
	if got, want := parent.Bytes(true), parent.Bytes(false)+child.Bytes(true); got != want {
		t.Errorf("parent.Bytes(true) = %d, want %d", got, want)
	}
	if got, want := parent.OpCount(true), parent.OpCount(false)+child.OpCount(true); got != want {
		t.Errorf("parent.OpCount(true) = %d, want %d", got, want)
	}
	if got := parent.OpCount(true); got != 2+2+2 {
		t.Errorf("parent.OpCount(true) = %d, want 6", got)
	}
}

func TestPictureAccounting(t *testing.T) {
	pic := &fakePicture{cull: LTRB(0, 0, 8, 8), ops: 7, bytes: 300}
	b := NewBuilder()
	b.DrawPicture(pic, nil, false)
	b.DrawPicture(pic, nil, false)
	dl := b.Build()

	if got, want := dl.OpCount(true), 2+14; got != want {
		t.Errorf("OpCount(true) = %d, want %d", got, want)
	}
	if got, want := dl.Bytes(true), dl.Bytes(false)+600; got != want {
		t.Errorf("Bytes(true) = %d, want %d", got, want)
	}
}

func TestSameRef(t *testing.T) {
	s := []int{1, 2}
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", nil, 1, false},
		{"equal values", BlurImageFilter{SigmaX: 1}, BlurImageFilter{SigmaX: 1}, true},
		{"different types", BlurImageFilter{}, BlurMaskFilter{}, false},
		{"same slice", s, s, true},
		{"equal slices", s, []int{1, 2}, false},
		{"nil and empty vertices", (*Vertices)(nil), &Vertices{}, false},
		{"equal lattice bounds", &Lattice{Bounds: &IRect{Right: 2}}, &Lattice{Bounds: &IRect{Right: 2}}, true},
		{"lattice bounds set once", &Lattice{Bounds: &IRect{Right: 2}}, &Lattice{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameRef(tt.a, tt.b); got != tt.want {
				t.Errorf("sameRef() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrame(t *testing.T) {
	tests := []struct {
		name    string
		opts    []BuilderOption
		record  func(b *Builder)
		want    Rect
		wantErr error
	}{
		{
			name:   "cull rect",
			opts:   []BuilderOption{WithCullRect(LTRB(0, 0, 64, 32))},
			record: func(b *Builder) { b.DrawPaint() },
			want:   LTRB(0, 0, 64, 32),
		},
		{
			name:   "bounds without cull rect",
			record: func(b *Builder) { b.DrawRect(LTRB(2, 3, 10, 20)) },
			want:   LTRB(2, 3, 10, 20),
		},
		{
			name:   "nothing drawn",
			record: func(*Builder) {},
			want:   Rect{},
		},
		{
			name: "clipped paint",
			record: func(b *Builder) {
				b.ClipRect(LTRB(0, 0, 5, 5), ClipIntersect, false)
				b.DrawPaint()
			},
			want: LTRB(0, 0, 5, 5),
		},
		{
			name:    "paint",
			record:  func(b *Builder) { b.DrawPaint() },
			wantErr: ErrUnboundedFrame,
		},
		{
			name:    "color",
			record:  func(b *Builder) { b.DrawColor(ColorBlue, BlendSrcOver) },
			wantErr: ErrUnboundedFrame,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(tt.opts...)
			tt.record(b)
			got, err := b.Build().Frame()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Frame() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got != tt.want {
				t.Errorf("Frame() = %v, want %v", got, tt.want)
			}
		})
	}
}
