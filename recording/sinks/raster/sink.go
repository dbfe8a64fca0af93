// Package raster provides a raster sink for recordings and display lists.
// It renders the dispatch stream into a gg.Context through
// displaylist.Renderer and exposes the result as an image or PNG.
//
// # Example
//
//	// Import to register the sink
//	import _ "github.com/gogpu/displaylist/recording/sinks/raster"
//
//	// Create via registry
//	sink, _ := recording.NewSink("raster")
//
//	// Or create directly
//	sink := raster.New(raster.WithBackground(displaylist.ColorWhite))
//
//	// Play back
//	if err := rec.PlaybackTo(sink); err != nil {
//	    return err
//	}
//	sink.SaveToFile("output.png")
package raster

import (
	"errors"
	"image"
	"io"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/recording"
	"github.com/gogpu/gg"
)

func init() {
	recording.Register("raster", func() recording.Sink {
		return New()
	})
}

var (
	// ErrNotStarted is returned by output methods called before Begin.
	ErrNotStarted = errors.New("raster: sink not started")

	// ErrEmptyCanvas is returned by Begin for a zero or negative size.
	ErrEmptyCanvas = errors.New("raster: canvas size must be positive")
)

// Sink renders dispatch calls into a pixel image. The embedded Renderer
// receives the calls and is valid between Begin and End.
type Sink struct {
	*displaylist.Renderer

	ctx        *gg.Context
	width      int
	height     int
	background displaylist.Color
}

var (
	_ recording.Sink       = (*Sink)(nil)
	_ recording.WriterSink = (*Sink)(nil)
	_ recording.FileSink   = (*Sink)(nil)
	_ recording.ImageSink  = (*Sink)(nil)
)

// Option configures a Sink.
type Option func(*Sink)

// WithBackground sets the color the canvas is cleared to on Begin.
// The default is transparent.
func WithBackground(c displaylist.Color) Option {
	return func(s *Sink) {
		s.background = c
	}
}

// New creates a raster sink. The sink must be started with Begin.
func New(opts ...Option) *Sink {
	s := &Sink{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin allocates a width x height canvas and a Renderer drawing into it.
func (s *Sink) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrEmptyCanvas
	}
	s.width = width
	s.height = height
	s.ctx = gg.NewContext(width, height)
	if s.background != displaylist.ColorTransparent {
		s.ctx.ClearWithColor(gg.FromColor(s.background.NRGBA()))
	}
	s.Renderer = displaylist.NewRenderer(s.ctx)
	return nil
}

// End closes any layers left open, flushes pending GPU work and returns
// the first rendering error.
func (s *Sink) End() error {
	if s.Renderer == nil {
		return ErrNotStarted
	}
	return errors.Join(s.Renderer.Finish(), s.ctx.FlushGPU())
}

// Image returns the rendered image, or nil before Begin.
func (s *Sink) Image() image.Image {
	if s.ctx == nil {
		return nil
	}
	return s.ctx.Image()
}

// WriteTo writes the rendered image as PNG.
func (s *Sink) WriteTo(w io.Writer) (int64, error) {
	if s.ctx == nil {
		return 0, ErrNotStarted
	}
	cw := &countingWriter{w: w}
	err := s.ctx.EncodePNG(cw)
	return cw.n, err
}

// SaveToFile saves the rendered image as PNG.
func (s *Sink) SaveToFile(path string) error {
	if s.ctx == nil {
		return ErrNotStarted
	}
	return s.ctx.SavePNG(path)
}

// Width returns the canvas width.
func (s *Sink) Width() int { return s.width }

// Height returns the canvas height.
func (s *Sink) Height() int { return s.height }

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
