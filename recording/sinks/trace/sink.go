// Package trace provides a text sink that lists every dispatched call, one
// per line. It is used for debugging display lists and by the dldump tool.
//
//	sink := trace.New()
//	_ = recording.Render(dl, sink)
//	sink.WriteTo(os.Stdout)
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gogpu/displaylist/recording"
)

func init() {
	recording.Register("trace", func() recording.Sink {
		return New()
	})
}

// ErrNotFinished is returned by output methods called before End.
var ErrNotFinished = errors.New("trace: sink not finished")

// Sink records dispatch calls and prints them after End.
type Sink struct {
	*recording.Recorder

	recording *recording.Recording
	indent    string
}

var (
	_ recording.Sink       = (*Sink)(nil)
	_ recording.WriterSink = (*Sink)(nil)
	_ recording.FileSink   = (*Sink)(nil)
)

// Option configures a Sink.
type Option func(*Sink)

// WithIndent sets the string used to indent each nesting level of
// Save and SaveLayer. The default is two spaces.
func WithIndent(indent string) Option {
	return func(s *Sink) {
		s.indent = indent
	}
}

// New creates a trace sink. The sink must be started with Begin.
func New(opts ...Option) *Sink {
	s := &Sink{indent: "  "}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin starts a new trace.
func (s *Sink) Begin(width, height int) error {
	s.Recorder = recording.NewRecorder(width, height)
	s.recording = nil
	return nil
}

// End freezes the trace.
func (s *Sink) End() error {
	if s.Recorder == nil {
		return ErrNotFinished
	}
	s.recording = s.Recorder.FinishRecording()
	return nil
}

// Recording returns the captured recording, or nil before End.
func (s *Sink) Recording() *recording.Recording {
	return s.recording
}

// WriteTo writes one line per command, indented by save depth.
func (s *Sink) WriteTo(w io.Writer) (int64, error) {
	if s.recording == nil {
		return 0, ErrNotFinished
	}
	bw := bufio.NewWriter(w)
	var n int64
	depth := 0
	for i, cmd := range s.recording.Commands() {
		t := cmd.Type()
		if t == recording.CmdRestore && depth > 0 {
			depth--
		}
		m, err := fmt.Fprintf(bw, "%4d %s%s%s\n", i, strings.Repeat(s.indent, depth), t, args(cmd))
		n += int64(m)
		if err != nil {
			return n, err
		}
		if t == recording.CmdSave || t == recording.CmdSaveLayer {
			depth++
		}
	}
	return n, bw.Flush()
}

// SaveToFile writes the trace to path.
func (s *Sink) SaveToFile(path string) error {
	f, err := os.Create(path) // #nosec G304 -- caller-chosen output path
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// args formats the command's fields. Commands without fields print nothing.
func args(cmd recording.Command) string {
	switch c := cmd.(type) {
	case recording.SaveCommand, recording.RestoreCommand, recording.DrawPaintCommand:
		return ""
	case recording.SaveLayerCommand:
		if c.Bounds == nil {
			return fmt.Sprintf(" bounds=nil restoreWithPaint=%t", c.RestoreWithPaint)
		}
		return fmt.Sprintf(" bounds=%v restoreWithPaint=%t", *c.Bounds, c.RestoreWithPaint)
	case recording.SetColorCommand:
		return fmt.Sprintf(" %#08x", uint32(c.Color))
	case recording.DrawPointsCommand:
		return fmt.Sprintf(" mode=%d n=%d", c.Mode, len(c.Points))
	case recording.DrawAtlasCommand:
		return fmt.Sprintf(" atlas=%d n=%d mode=%d", c.Atlas, len(c.Xforms), c.Mode)
	case recording.DrawDisplayListCommand:
		if c.DisplayList == nil {
			return " nil"
		}
		return fmt.Sprintf(" id=%d ops=%d", c.DisplayList.UniqueID(), c.DisplayList.OpCount(false))
	case recording.DrawTextBlobCommand:
		if c.Blob == nil {
			return fmt.Sprintf(" nil x=%g y=%g", c.X, c.Y)
		}
		return fmt.Sprintf(" %q x=%g y=%g", c.Blob.Text(), c.X, c.Y)
	}
	return " " + strings.TrimSuffix(strings.TrimPrefix(fmt.Sprintf("%+v", cmd), "{"), "}")
}
