// Package recording captures display-list dispatch as typed commands.
//
// A Recorder implements displaylist.Dispatcher. Dispatching a display list
// into it (or calling its methods directly) produces a Recording: a flat
// slice of command structs plus a pool of the paths and images they refer
// to. Recordings are easy to inspect and compare in tests, which is their
// main use.
//
// # Basic Usage
//
//	rec := recording.NewRecorder(800, 600)
//	dl.Dispatch(rec)
//	r := rec.FinishRecording()
//
//	for _, cmd := range r.Commands() {
//	    fmt.Println(cmd.Type())
//	}
//
// # Playback
//
// A Recording plays back to any Dispatcher. Replay feeds a Builder, which
// turns the commands back into an equivalent display list:
//
//	b := displaylist.NewBuilder()
//	r.Replay(b)
//	again := b.Build()
//
// Recording also implements displaylist.Picture, so it can be embedded in
// another display list with DrawPicture.
//
// # Sinks
//
// A Sink is a Dispatcher with a Begin/End lifecycle that produces output.
// Sinks register themselves by name in init, following the database/sql
// driver pattern:
//
//	import _ "github.com/gogpu/displaylist/recording/sinks/raster"
//
//	sink, err := recording.NewSink("raster")
//	if err != nil {
//	    return err
//	}
//	if err := r.PlaybackTo(sink); err != nil {
//	    return err
//	}
//	sink.(recording.FileSink).SaveToFile("out.png")
//
// Two sinks ship with the module: raster (PNG via gg) and trace (one text
// line per command).
//
// # Thread Safety
//
// Recorder is not safe for concurrent use. A finished Recording may be
// played back from multiple goroutines as long as no one mutates the
// resources it references.
package recording
