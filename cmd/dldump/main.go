// Command dldump records a demo display list and prints what it contains:
// the dispatch trace or the raw op records, the op and byte counts, and the
// bounds. It can also validate the encoding and render it to a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/cache"
	"github.com/gogpu/displaylist/recording"
	_ "github.com/gogpu/displaylist/recording/sinks/raster"
	"github.com/gogpu/displaylist/recording/sinks/trace"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	var (
		width    = flag.Int("width", 400, "cull rect width")
		height   = flag.Int("height", 300, "cull rect height")
		output   = flag.String("output", "", "render the list to this PNG file")
		ops      = flag.Bool("ops", false, "print raw op records instead of the dispatch trace")
		validate = flag.Bool("validate", false, "check the encoding before printing")
		thumb    = flag.Int("thumb", 0, "also render a square thumbnail of this size through the raster cache")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		displaylist.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	dl := buildDemo(float32(*width), float32(*height), source.Face(18))

	if *validate {
		if err := dl.Validate(); err != nil {
			log.Fatalf("Invalid display list: %v", err)
		}
	}

	p := message.NewPrinter(language.English)
	if *ops {
		printOps(p, dl)
	} else if err := printTrace(dl); err != nil {
		log.Fatalf("Failed to trace: %v", err)
	}
	printSummary(p, dl)

	if *output != "" {
		if err := renderPNG(dl, *output); err != nil {
			log.Fatalf("Failed to render: %v", err)
		}
		log.Printf("Rendered to %s (%dx%d)\n", *output, *width, *height)
	}

	if *thumb > 0 {
		rc := cache.New()
		for range 2 {
			if _, err := rc.GetOrRender(dl, *thumb, *thumb); err != nil {
				log.Fatalf("Failed to render thumbnail: %v", err)
			}
		}
		st := rc.Stats()
		p.Printf("thumbnail: %dx%d, %d bytes cached, %d hits, %d misses\n",
			*thumb, *thumb, st.Bytes, st.Hits, st.Misses)
	}
}

func printOps(p *message.Printer, dl *displaylist.DisplayList) {
	for op := range dl.Ops() {
		p.Printf("%8d  %4d  %s\n", op.Offset, op.Size, op.Name())
	}
}

func printTrace(dl *displaylist.DisplayList) error {
	sink := trace.New()
	if err := recording.Render(dl, sink); err != nil {
		return err
	}
	_, err := sink.WriteTo(os.Stdout)
	return err
}

func printSummary(p *message.Printer, dl *displaylist.DisplayList) {
	b := dl.Bounds()
	p.Printf("\nid:      %d\n", dl.UniqueID())
	p.Printf("ops:     %d (%d with nested)\n", dl.OpCount(false), dl.OpCount(true))
	p.Printf("bytes:   %d (%d with nested)\n", dl.Bytes(false), dl.Bytes(true))
	p.Printf("bounds:  [%.1f, %.1f, %.1f, %.1f]\n", b.Left, b.Top, b.Right, b.Bottom)
}

func renderPNG(dl *displaylist.DisplayList, path string) error {
	sink, err := recording.RenderNamed(dl, "raster")
	if err != nil {
		return err
	}
	fs, ok := sink.(recording.FileSink)
	if !ok {
		return fmt.Errorf("sink %T cannot save files", sink)
	}
	return fs.SaveToFile(path)
}

// buildDemo records a scene that exercises every op group: attributes,
// save/restore and layers, transforms, clips, shapes, images, text, a
// nested list and a shadow.
func buildDemo(w, h float32, face text.Face) *displaylist.DisplayList {
	b := displaylist.NewBuilder(displaylist.WithCullRect(displaylist.XYWH(0, 0, w, h)))

	b.DrawColor(displaylist.ARGB(0xFF, 0x20, 0x28, 0x38), displaylist.BlendSrc)

	// Shapes
	b.SetAntiAlias(true)
	b.SetColor(displaylist.ARGB(0xCC, 0xFF, 0x55, 0x55))
	b.DrawCircle(displaylist.Point{X: 70, Y: 70}, 40)
	b.SetColor(displaylist.ARGB(0xCC, 0x55, 0xFF, 0x55))
	b.DrawRRect(displaylist.RRectXY(displaylist.XYWH(120, 30, 100, 80), 12, 12))
	b.SetStyle(displaylist.StyleStroke)
	b.SetStrokeWidth(4)
	b.SetStrokeJoin(displaylist.JoinRound)
	b.SetColor(displaylist.ColorWhite)
	b.DrawRect(displaylist.XYWH(120, 30, 100, 80))
	b.SetStyle(displaylist.StyleFill)

	// Transformed path with a clip
	star := gg.NewPath()
	for i := 0; i < 5; i++ {
		x, y := starPoint(i*2%5, 30)
		if i == 0 {
			star.MoveTo(x, y)
		} else {
			star.LineTo(x, y)
		}
	}
	star.Close()
	b.Save()
	b.Translate(300, 70)
	b.Rotate(15)
	b.ClipRect(displaylist.LTRB(-40, -40, 40, 40), displaylist.ClipIntersect, true)
	b.SetColor(displaylist.ARGB(0xFF, 0xFF, 0xCC, 0x00))
	b.DrawPath(star)
	b.Restore()

	// A blurred layer
	b.SetImageFilter(displaylist.BlurImageFilter{SigmaX: 3, SigmaY: 3})
	b.SaveLayer(nil, true)
	b.SetImageFilter(nil)
	b.SetColor(displaylist.ARGB(0xFF, 0x55, 0x88, 0xFF))
	b.DrawOval(displaylist.XYWH(30, 140, 120, 60))
	b.Restore()

	// Image
	b.DrawImageRect(checkerboard(16), displaylist.XYWH(0, 0, 16, 16), displaylist.XYWH(180, 140, 60, 60),
		displaylist.SamplingOptions{Filter: displaylist.FilterNearest}, false, displaylist.ConstraintFast)

	// Nested list drawn twice
	badge := displaylist.NewBuilder(displaylist.WithCullRect(displaylist.XYWH(0, 0, 40, 40)))
	badge.SetColor(displaylist.ColorBlue)
	badge.DrawArc(displaylist.XYWH(0, 0, 40, 40), -90, 270, true)
	nested := badge.Build()
	for _, x := range []float32{270, 330} {
		b.Save()
		b.Translate(x, 150)
		b.DrawDisplayList(nested)
		b.Restore()
	}

	// Text and shadow
	b.SetColor(displaylist.ColorWhite)
	b.DrawTextBlob(displaylist.NewTextBlob("display list", face), 30, h-40)
	shadow := gg.NewPath()
	shadow.RoundedRectangle(250, float64(h)-70, 100, 40, 8)
	b.DrawShadow(shadow, displaylist.ColorBlack, 6, false, 1)

	return b.Build()
}

func starPoint(i int, r float64) (float64, float64) {
	a := float64(i) * 2 * math.Pi / 5
	return r * math.Sin(a), -r * math.Cos(a)
}

func checkerboard(n int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := color.NRGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}
			if (x/4+y/4)%2 == 1 {
				c = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
