package displaylist

import (
	"testing"

	"github.com/gogpu/gg"
	"golang.org/x/image/math/f32"
)

// unboundedEffect is a PathEffect whose output bounds are unknown.
type unboundedEffect struct{}

func (unboundedEffect) ApplyTo(*gg.Context)            {}
func (unboundedEffect) EffectBounds(Rect) (Rect, bool) { return Rect{}, false }

func TestBounds(t *testing.T) {
	rectPath := gg.NewPath()
	rectPath.Rectangle(10, 10, 20, 20)
	linePath := gg.NewPath()
	linePath.MoveTo(0, 5)
	linePath.LineTo(100, 5)

	child := NewBuilder()
	child.DrawRect(LTRB(0, 0, 10, 10))
	childList := child.Build()

	tests := []struct {
		name   string
		cull   Rect
		record func(b *Builder)
		want   Rect
	}{
		{
			name:   "empty",
			record: func(*Builder) {},
			want:   Rect{},
		},
		{
			name:   "single rect",
			record: func(b *Builder) { b.DrawRect(LTRB(1, 2, 3, 4)) },
			want:   LTRB(1, 2, 3, 4),
		},
		{
			name:   "unsorted rect",
			record: func(b *Builder) { b.DrawRect(LTRB(3, 4, 1, 2)) },
			want:   LTRB(1, 2, 3, 4),
		},
		{
			name: "attributes only",
			record: func(b *Builder) {
				b.SetColor(ColorRed)
				b.SetStrokeWidth(5)
			},
			want: Rect{},
		},
		{
			name: "stroke round join",
			record: func(b *Builder) {
				b.SetStyle(StyleStroke)
				b.SetStrokeWidth(4)
				b.SetStrokeJoin(JoinRound)
				b.DrawRect(LTRB(10, 10, 20, 20))
			},
			want: LTRB(8, 8, 22, 22),
		},
		{
			name: "stroked flat path",
			record: func(b *Builder) {
				b.SetStyle(StyleStroke)
				b.SetStrokeWidth(4)
				b.SetStrokeJoin(JoinRound)
				b.DrawPath(linePath)
			},
			want: LTRB(-2, 3, 102, 7),
		},
		{
			name: "stroked zero-height rect",
			record: func(b *Builder) {
				b.SetStyle(StyleStrokeAndFill)
				b.SetStrokeWidth(4)
				b.SetStrokeJoin(JoinRound)
				b.DrawRect(LTRB(200, 10, 300, 10))
			},
			want: LTRB(198, 8, 302, 12),
		},
		{
			name: "filled flat path",
			record: func(b *Builder) {
				b.DrawPath(linePath)
				b.DrawRect(LTRB(200, 10, 300, 10))
			},
			want: Rect{},
		},
		{
			name: "stroked empty path",
			record: func(b *Builder) {
				b.SetStyle(StyleStroke)
				b.DrawPath(gg.NewPath())
			},
			want: Rect{},
		},
		{
			name: "stroke miter join",
			record: func(b *Builder) {
				b.SetStyle(StyleStroke)
				b.SetStrokeWidth(2)
				b.SetStrokeMiter(3)
				b.DrawRect(LTRB(10, 10, 20, 20))
			},
			want: LTRB(7, 7, 23, 23),
		},
		{
			name: "hairline line",
			record: func(b *Builder) {
				b.SetStrokeJoin(JoinBevel)
				b.DrawLine(Pt(0, 0), Pt(10, 0))
			},
			want: LTRB(-0.5, -0.5, 10.5, 0.5),
		},
		{
			name: "points",
			record: func(b *Builder) {
				b.SetStrokeJoin(JoinRound)
				b.SetStrokeWidth(2)
				b.DrawPoints(PointModePoints, []Point{Pt(5, 5), Pt(10, 20)})
			},
			want: LTRB(4, 4, 11, 21),
		},
		{
			name:   "paint fills the cull rect",
			cull:   LTRB(0, 0, 100, 50),
			record: func(b *Builder) { b.DrawPaint() },
			want:   LTRB(0, 0, 100, 50),
		},
		{
			name: "color clipped",
			cull: LTRB(0, 0, 100, 50),
			record: func(b *Builder) {
				b.ClipRect(LTRB(10, 10, 20, 20), ClipIntersect, false)
				b.DrawColor(ColorRed, BlendSrc)
			},
			want: LTRB(10, 10, 20, 20),
		},
		{
			name: "intersect clip",
			record: func(b *Builder) {
				b.ClipRect(LTRB(0, 0, 5, 5), ClipIntersect, true)
				b.DrawRect(LTRB(0, 0, 10, 10))
			},
			want: LTRB(0, 0, 5, 5),
		},
		{
			name: "difference clip ignored",
			record: func(b *Builder) {
				b.ClipRect(LTRB(0, 0, 5, 5), ClipDifference, true)
				b.DrawRect(LTRB(0, 0, 10, 10))
			},
			want: LTRB(0, 0, 10, 10),
		},
		{
			name: "clip path",
			record: func(b *Builder) {
				b.ClipPath(rectPath, ClipIntersect, true)
				b.DrawRect(LTRB(0, 0, 100, 100))
			},
			want: LTRB(10, 10, 30, 30),
		},
		{
			name: "clip restored",
			record: func(b *Builder) {
				b.Save()
				b.ClipRect(LTRB(0, 0, 5, 5), ClipIntersect, true)
				b.Restore()
				b.DrawRect(LTRB(0, 0, 10, 10))
			},
			want: LTRB(0, 0, 10, 10),
		},
		{
			name: "fully clipped",
			record: func(b *Builder) {
				b.ClipRect(LTRB(0, 0, 5, 5), ClipIntersect, true)
				b.DrawRect(LTRB(10, 10, 20, 20))
			},
			want: Rect{},
		},
		{
			name: "transform restored",
			record: func(b *Builder) {
				b.Translate(10, 10)
				b.Save()
				b.Translate(5, 5)
				b.Restore()
				b.DrawRect(LTRB(0, 0, 1, 1))
			},
			want: LTRB(10, 10, 11, 11),
		},
		{
			name: "scale",
			record: func(b *Builder) {
				b.Scale(2, 3)
				b.DrawOval(LTRB(1, 1, 2, 2))
			},
			want: LTRB(2, 3, 4, 6),
		},
		{
			name: "rotate",
			record: func(b *Builder) {
				b.Rotate(90)
				b.DrawRect(LTRB(0, 0, 10, 5))
			},
			want: LTRB(-5, 0, 0, 10),
		},
		{
			name: "affine",
			record: func(b *Builder) {
				b.Transform2DAffine(f32.Aff3{1, 0, 7, 0, 1, -3})
				b.DrawRRect(RRectXY(LTRB(0, 0, 2, 2), 1, 1))
			},
			want: LTRB(7, -3, 9, -1),
		},
		{
			name: "perspective behind the eye",
			cull: LTRB(0, 0, 50, 50),
			record: func(b *Builder) {
				m := IdentityMatrix()
				m[12] = 1
				b.TransformFullPerspective(m)
				b.DrawRect(LTRB(-5, 0, 1, 1))
			},
			want: LTRB(0, 0, 50, 50),
		},
		{
			name: "image filter",
			record: func(b *Builder) {
				b.SetImageFilter(BlurImageFilter{SigmaX: 1, SigmaY: 1})
				b.DrawRect(LTRB(10, 10, 20, 20))
			},
			want: LTRB(7, 7, 23, 23),
		},
		{
			name: "mask blur",
			record: func(b *Builder) {
				b.SetMaskBlurFilter(BlurNormal, 2)
				b.DrawCircle(Pt(0, 0), 10)
			},
			want: LTRB(-16, -16, 16, 16),
		},
		{
			name: "unbounded path effect",
			cull: LTRB(0, 0, 64, 64),
			record: func(b *Builder) {
				b.SetPathEffect(unboundedEffect{})
				b.DrawRect(LTRB(1, 1, 2, 2))
			},
			want: LTRB(0, 0, 64, 64),
		},
		{
			name: "image without attributes ignores filters",
			record: func(b *Builder) {
				b.SetImageFilter(BlurImageFilter{SigmaX: 5, SigmaY: 5})
				b.DrawImageRect(nil, Rect{}, LTRB(0, 0, 8, 8), SamplingOptions{}, false, ConstraintFast)
			},
			want: LTRB(0, 0, 8, 8),
		},
		{
			name: "save layer filter",
			record: func(b *Builder) {
				b.SetImageFilter(BlurImageFilter{SigmaX: 2, SigmaY: 2})
				b.SaveLayer(nil, true)
				b.SetImageFilter(nil)
				b.DrawRect(LTRB(10, 10, 20, 20))
				b.Restore()
			},
			want: LTRB(4, 4, 26, 26),
		},
		{
			name: "save layer without paint",
			record: func(b *Builder) {
				b.SetImageFilter(BlurImageFilter{SigmaX: 2, SigmaY: 2})
				b.SaveLayer(nil, false)
				b.SetImageFilter(nil)
				b.DrawRect(LTRB(10, 10, 20, 20))
				b.Restore()
			},
			want: LTRB(10, 10, 20, 20),
		},
		{
			name: "save layer bounds clip",
			record: func(b *Builder) {
				b.DrawRect(LTRB(50, 50, 60, 60))
				b.SaveLayer(&Rect{Right: 5, Bottom: 5}, false)
				b.DrawRect(LTRB(0, 0, 10, 10))
				b.Restore()
			},
			want: LTRB(0, 0, 60, 60),
		},
		{
			name: "nested list",
			record: func(b *Builder) {
				b.Translate(5, 5)
				b.DrawDisplayList(childList)
			},
			want: LTRB(5, 5, 15, 15),
		},
		{
			name: "picture with matrix",
			record: func(b *Builder) {
				m := f32.Aff3{2, 0, 0, 0, 2, 0}
				b.DrawPicture(&fakePicture{cull: LTRB(0, 0, 8, 8)}, &m, false)
			},
			want: LTRB(0, 0, 16, 16),
		},
		{
			name: "atlas",
			record: func(b *Builder) {
				b.DrawAtlas(nil, []RSXform{{SCos: 1, TX: 10}, {SCos: 1, TY: 10}}, []Rect{XYWH(0, 0, 4, 4), XYWH(4, 0, 2, 2)},
					nil, BlendSrcOver, SamplingOptions{}, nil, false)
			},
			want: LTRB(0, 0, 14, 12),
		},
		{
			name: "atlas culled",
			record: func(b *Builder) {
				cull := LTRB(-1, -1, 1, 1)
				b.DrawAtlas(nil, []RSXform{{SCos: 1, TX: 10}}, []Rect{XYWH(0, 0, 4, 4)},
					nil, BlendSrcOver, SamplingOptions{}, &cull, false)
			},
			want: LTRB(-1, -1, 1, 1),
		},
		{
			name: "vertices",
			record: func(b *Builder) {
				b.DrawVertices(&Vertices{Positions: []Point{Pt(1, 2), Pt(5, 2), Pt(3, 9)}}, BlendSrcOver)
			},
			want: LTRB(1, 2, 5, 9),
		},
		{
			name: "path",
			record: func(b *Builder) {
				b.DrawPath(rectPath)
			},
			want: LTRB(10, 10, 30, 30),
		},
		{
			name: "flat shadow",
			record: func(b *Builder) {
				b.DrawShadow(rectPath, ColorBlack, 0, false, 1)
			},
			want: LTRB(10, 10, 30, 30),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []BuilderOption
			if tt.cull != (Rect{}) {
				opts = append(opts, WithCullRect(tt.cull))
			}
			b := NewBuilder(opts...)
			tt.record(b)
			if got := b.Build().Bounds(); !nearRect(got, tt.want) {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundsShadowContainsOccluder(t *testing.T) {
	p := gg.NewPath()
	p.Rectangle(0, 0, 10, 10)

	b := NewBuilder()
	b.DrawShadow(p, ColorBlack, 10, false, 1)
	got := b.Build().Bounds()

	if !got.Contains(LTRB(0, 0, 10, 10)) || got == LTRB(0, 0, 10, 10) {
		t.Errorf("shadow Bounds() = %v, want a strict superset of the occluder", got)
	}
}

func TestBoundsTextBlob(t *testing.T) {
	blob := NewTextBlob("bounds", testFace(t, 12))
	b := NewBuilder()
	b.DrawTextBlob(blob, 20, 30)
	got := b.Build().Bounds()

	if want := blob.Bounds().Offset(20, 30); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestBoundsContainsEveryDraw(t *testing.T) {
	draws := []Rect{
		LTRB(0, 0, 10, 10),
		LTRB(-40, 5, -30, 6),
		LTRB(100, 100, 100.5, 300),
	}
	transforms := []func(b *Builder){
		func(*Builder) {},
		func(b *Builder) { b.Translate(3, -7) },
		func(b *Builder) { b.Scale(0.5, 4) },
		func(b *Builder) { b.Rotate(30) },
		func(b *Builder) { b.Skew(0.2, 0.1) },
	}
	for _, tf := range transforms {
		b := NewBuilder()
		tf(b)
		for _, r := range draws {
			b.DrawRect(r)
		}
		dl := b.Build()

		probe := NewBuilder()
		tf(probe)
		acc := newBoundsAccumulator(MaxCullRect)
		probe.Build().Dispatch(acc)
		m := acc.matrix

		bounds := dl.Bounds().Outset(eps, eps)
		for _, r := range draws {
			dev, _ := mapRect(m, r)
			if !bounds.Contains(dev) {
				t.Errorf("Bounds() = %v does not contain %v", dl.Bounds(), dev)
			}
		}
	}
}
