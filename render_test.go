package displaylist

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/gogpu/gg"
)

func renderList(t *testing.T, dl *DisplayList, w, h int) image.Image {
	t.Helper()
	dc := gg.NewContext(w, h)
	if err := dl.RenderTo(dc); err != nil {
		t.Fatalf("RenderTo: %v", err)
	}
	if err := dc.FlushGPU(); err != nil {
		t.Fatalf("FlushGPU: %v", err)
	}
	return dc.Image()
}

func pixel(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func isRed(c color.RGBA) bool   { return c.R > 200 && c.G < 50 && c.B < 50 && c.A > 200 }
func isBlue(c color.RGBA) bool  { return c.B > 200 && c.R < 50 && c.G < 50 && c.A > 200 }
func isBlack(c color.RGBA) bool { return c.R < 50 && c.G < 50 && c.B < 50 && c.A > 200 }
func isClear(c color.RGBA) bool { return c.A == 0 }

func TestRenderOrderSensitive(t *testing.T) {
	colorFirst := NewBuilder()
	colorFirst.SetColor(ColorRed)
	colorFirst.DrawRect(LTRB(0, 0, 10, 10))

	rectFirst := NewBuilder()
	rectFirst.DrawRect(LTRB(0, 0, 10, 10))
	rectFirst.SetColor(ColorRed)

	a := pixel(renderList(t, colorFirst.Build(), 10, 10), 5, 5)
	b := pixel(renderList(t, rectFirst.Build(), 10, 10), 5, 5)
	if !isRed(a) {
		t.Errorf("color then rect = %v, want red", a)
	}
	if !isBlack(b) {
		t.Errorf("rect then color = %v, want the default black", b)
	}
}

func TestRenderAttributesSurviveRestore(t *testing.T) {
	b := NewBuilder()
	b.SetColor(ColorRed)
	b.Save()
	b.SetColor(ColorBlue)
	b.Restore()
	b.DrawRect(LTRB(0, 0, 10, 10))

	if c := pixel(renderList(t, b.Build(), 10, 10), 5, 5); !isBlue(c) {
		t.Errorf("pixel = %v, want blue", c)
	}
}

func TestRenderTransformRestored(t *testing.T) {
	b := NewBuilder()
	b.SetColor(ColorRed)
	b.Translate(10, 10)
	b.Save()
	b.Translate(5, 5)
	b.Restore()
	b.DrawRect(LTRB(0, 0, 4, 4))
	img := renderList(t, b.Build(), 32, 32)

	if c := pixel(img, 12, 12); !isRed(c) {
		t.Errorf("pixel at (12,12) = %v, want red", c)
	}
	if c := pixel(img, 17, 17); !isClear(c) {
		t.Errorf("pixel at (17,17) = %v, want transparent", c)
	}
}

func TestRenderClipRestored(t *testing.T) {
	b := NewBuilder()
	b.SetColor(ColorRed)
	b.Save()
	b.ClipRect(LTRB(0, 0, 5, 5), ClipIntersect, false)
	b.DrawRect(LTRB(0, 0, 20, 20))
	b.Restore()
	b.SetColor(ColorBlue)
	b.DrawRect(LTRB(10, 10, 20, 20))
	img := renderList(t, b.Build(), 20, 20)

	if c := pixel(img, 2, 2); !isRed(c) {
		t.Errorf("pixel inside clip = %v, want red", c)
	}
	if c := pixel(img, 7, 7); !isClear(c) {
		t.Errorf("pixel outside clip = %v, want transparent", c)
	}
	if c := pixel(img, 15, 15); !isBlue(c) {
		t.Errorf("pixel after restore = %v, want blue", c)
	}
}

func TestRenderStroke(t *testing.T) {
	b := NewBuilder()
	b.SetColor(ColorRed)
	b.SetStyle(StyleStroke)
	b.SetStrokeWidth(2)
	b.DrawRect(LTRB(4, 4, 28, 28))
	img := renderList(t, b.Build(), 32, 32)

	if c := pixel(img, 4, 16); !isRed(c) {
		t.Errorf("pixel on the edge = %v, want red", c)
	}
	if c := pixel(img, 16, 16); !isClear(c) {
		t.Errorf("pixel in the middle = %v, want transparent", c)
	}
}

func TestRenderDrawColor(t *testing.T) {
	b := NewBuilder()
	b.Translate(100, 100)
	b.DrawColor(ColorBlue, BlendSrc)
	img := renderList(t, b.Build(), 8, 8)

	// DrawColor ignores the transform and covers the whole target.
	for _, p := range []image.Point{{0, 0}, {7, 7}} {
		if c := pixel(img, p.X, p.Y); !isBlue(c) {
			t.Errorf("pixel at %v = %v, want blue", p, c)
		}
	}
}

func TestRenderNestedList(t *testing.T) {
	child := NewBuilder()
	child.SetColor(ColorRed)
	child.DrawRect(LTRB(0, 0, 4, 4))
	childList := child.Build()

	b := NewBuilder()
	b.SetColor(ColorBlue) // not inherited by the child
	b.Translate(8, 8)
	b.DrawDisplayList(childList)
	b.DrawRect(LTRB(8, 8, 12, 12))
	img := renderList(t, b.Build(), 32, 32)

	if c := pixel(img, 10, 10); !isRed(c) {
		t.Errorf("nested pixel = %v, want red", c)
	}
	if c := pixel(img, 18, 18); !isBlue(c) {
		t.Errorf("pixel after nested list = %v, want blue", c)
	}
}

func TestRenderImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.RGBA{R: 255, A: 255}), image.Point{}, draw.Src)

	b := NewBuilder()
	b.DrawImage(src, Pt(2, 2), SamplingOptions{}, false)
	b.DrawImageRect(src, LTRB(0, 0, 4, 4), LTRB(10, 10, 18, 18), SamplingOptions{}, false, ConstraintFast)
	img := renderList(t, b.Build(), 20, 20)

	if c := pixel(img, 3, 3); !isRed(c) {
		t.Errorf("DrawImage pixel = %v, want red", c)
	}
	if c := pixel(img, 16, 16); !isRed(c) {
		t.Errorf("DrawImageRect pixel = %v, want red", c)
	}
	if c := pixel(img, 8, 8); !isClear(c) {
		t.Errorf("pixel between images = %v, want transparent", c)
	}
}

func TestRenderTextBlob(t *testing.T) {
	b := NewBuilder()
	b.SetColor(ColorBlack)
	b.DrawTextBlob(NewTextBlob("MMM", testFace(t, 24)), 4, 28)
	img := renderList(t, b.Build(), 80, 40)

	inked := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 80; x++ {
			if pixel(img, x, y).A > 0 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("text blob drew nothing")
	}
}

func TestRenderToRestoresContext(t *testing.T) {
	b := NewBuilder()
	b.Translate(50, 50)
	b.Scale(3, 3)
	b.ClipRect(LTRB(0, 0, 1, 1), ClipIntersect, false)
	dl := b.Build()

	dc := gg.NewContext(16, 16)
	before := dc.GetTransform()
	if err := dl.RenderTo(dc); err != nil {
		t.Fatalf("RenderTo: %v", err)
	}
	if after := dc.GetTransform(); after != before {
		t.Errorf("transform after RenderTo = %v, want %v", after, before)
	}

	// The clip was popped as well.
	dc.SetColor(color.RGBA{R: 255, A: 255})
	dc.DrawRectangle(8, 8, 4, 4)
	if err := dc.Fill(); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if c := pixel(dc.Image(), 10, 10); !isRed(c) {
		t.Errorf("pixel drawn after RenderTo = %v, want red", c)
	}
}

func TestRendererFinishClosesLayers(t *testing.T) {
	dc := gg.NewContext(10, 10)
	r := NewRenderer(dc)
	r.SetColor(ColorRed)
	r.SaveLayer(nil, false)
	r.Save()
	r.DrawRect(LTRB(0, 0, 10, 10))
	if err := r.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if c := pixel(dc.Image(), 5, 5); !isRed(c) {
		t.Errorf("pixel = %v, want red after the open layer was closed", c)
	}
}
