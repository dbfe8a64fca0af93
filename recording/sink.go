package recording

import (
	"image"
	"io"
	"math"

	"github.com/gogpu/displaylist"
)

// Sink is the interface that all export targets implement. A Sink receives
// the full Dispatcher stream of a recording or display list and translates
// it into its output format (raster pixels, a text trace, and so on).
//
// Sinks are created through the registry with NewSink(name) and registered
// with Register in their init functions:
//
//	func init() {
//	    recording.Register("trace", func() recording.Sink {
//	        return New()
//	    })
//	}
type Sink interface {
	displaylist.Dispatcher

	// Begin prepares the sink for a canvas of the given dimensions.
	// It must be called before any dispatch.
	Begin(width, height int) error

	// End finalizes the output. After End, output methods such as
	// WriteTo and SaveToFile may be used.
	End() error
}

// WriterSink extends Sink with the ability to write output to an io.Writer.
type WriterSink interface {
	Sink

	// WriteTo writes the finished output to w. Call it only after End.
	WriteTo(w io.Writer) (int64, error)
}

// FileSink extends Sink with the ability to save output to a file.
type FileSink interface {
	Sink

	// SaveToFile writes the finished output to path. Call it only after End.
	SaveToFile(path string) error
}

// ImageSink extends Sink with access to a rasterized image.
type ImageSink interface {
	Sink

	// Image returns the rendered image, or nil before End.
	Image() image.Image
}

// Render dispatches dl into sink between Begin and End. The canvas spans
// the origin to the bottom-right of dl.Frame. Lists without a bounded frame
// fail with displaylist.ErrUnboundedFrame before Begin is called.
func Render(dl *displaylist.DisplayList, sink Sink) error {
	frame, err := dl.Frame()
	if err != nil {
		return err
	}
	w, h := int(math.Ceil(float64(frame.Right))), int(math.Ceil(float64(frame.Bottom)))
	if err := sink.Begin(w, h); err != nil {
		return err
	}
	dl.Dispatch(sink)
	return sink.End()
}
