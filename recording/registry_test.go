package recording

import (
	"errors"
	"sync"
	"testing"

	"github.com/gogpu/displaylist"
)

// mockSink records dispatch through an embedded Recorder and counts
// lifecycle calls.
type mockSink struct {
	*Recorder

	name       string
	beginCalls int
	endCalls   int
	width      int
	height     int
	beginErr   error
}

func newMockSink(name string) *mockSink {
	return &mockSink{name: name}
}

func (s *mockSink) Begin(width, height int) error {
	s.beginCalls++
	if s.beginErr != nil {
		return s.beginErr
	}
	s.width = width
	s.height = height
	s.Recorder = NewRecorder(width, height)
	return nil
}

func (s *mockSink) End() error {
	s.endCalls++
	return nil
}

// resetRegistry clears all registered sinks for test isolation.
func resetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	sinks = make(map[string]SinkFactory)
}

func TestRegisterAndNewSink(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("test", func() Sink {
		return newMockSink("test")
	})

	sink, err := NewSink("test")
	if err != nil {
		t.Fatalf("NewSink failed: %v", err)
	}
	mock, ok := sink.(*mockSink)
	if !ok {
		t.Fatal("sink is not a mockSink")
	}
	if mock.name != "test" {
		t.Errorf("got name %q, want %q", mock.name, "test")
	}

	// Each call produces a fresh instance.
	other, _ := NewSink("test")
	if other == sink {
		t.Error("NewSink returned the same instance twice")
	}
}

func TestNewSinkUnknown(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	if _, err := NewSink("unknown"); !errors.Is(err, ErrUnknownSink) {
		t.Errorf("NewSink error = %v, want ErrUnknownSink", err)
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name     string
		register func()
	}{
		{"nil factory", func() { Register("nil", nil) }},
		{"duplicate", func() {
			factory := func() Sink { return newMockSink("dup") }
			Register("dup", factory)
			Register("dup", factory)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetRegistry()
			defer resetRegistry()

			defer func() {
				if r := recover(); r == nil {
					t.Error("expected panic")
				}
			}()
			tt.register()
		})
	}
}

func TestSinksSorted(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	if n := len(Sinks()); n != 0 {
		t.Errorf("len(Sinks()) = %d, want 0", n)
	}

	Register("charlie", func() Sink { return newMockSink("c") })
	Register("alpha", func() Sink { return newMockSink("a") })
	Register("bravo", func() Sink { return newMockSink("b") })

	names := Sinks()
	want := []string{"alpha", "bravo", "charlie"}
	if len(names) != len(want) {
		t.Fatalf("Sinks() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if !IsRegistered("bravo") || IsRegistered("delta") {
		t.Error("IsRegistered disagrees with Sinks()")
	}
}

func TestPlaybackToSink(t *testing.T) {
	rec := NewRecorder(800, 600)
	rec.SetColor(displaylist.ColorRed)
	rec.DrawRect(displaylist.LTRB(0, 0, 10, 10))
	r := rec.FinishRecording()

	sink := newMockSink("lifecycle")
	if err := r.PlaybackTo(sink); err != nil {
		t.Fatalf("PlaybackTo failed: %v", err)
	}
	if sink.beginCalls != 1 || sink.endCalls != 1 {
		t.Errorf("Begin/End calls = %d/%d, want 1/1", sink.beginCalls, sink.endCalls)
	}
	if sink.width != 800 || sink.height != 600 {
		t.Errorf("got dimensions %dx%d, want 800x600", sink.width, sink.height)
	}
	if sink.Len() != 2 {
		t.Errorf("sink received %d commands, want 2", sink.Len())
	}
}

func TestPlaybackToBeginError(t *testing.T) {
	want := errors.New("boom")
	sink := newMockSink("broken")
	sink.beginErr = want

	r := NewRecorder(10, 10).FinishRecording()
	if err := r.PlaybackTo(sink); !errors.Is(err, want) {
		t.Errorf("PlaybackTo error = %v, want %v", err, want)
	}
	if sink.endCalls != 0 {
		t.Errorf("End called %d times after failed Begin", sink.endCalls)
	}
}

func TestRenderDisplayList(t *testing.T) {
	b := displaylist.NewBuilder(displaylist.WithCullRect(displaylist.LTRB(0, 0, 64, 32)))
	b.DrawPaint()
	b.Save()
	b.DrawOval(displaylist.LTRB(0, 0, 8, 8))
	b.Restore()
	dl := b.Build()

	sink := newMockSink("render")
	if err := Render(dl, sink); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if sink.width != 64 || sink.height != 32 {
		t.Errorf("got dimensions %dx%d, want 64x32", sink.width, sink.height)
	}
	if sink.Len() != dl.OpCount(false) {
		t.Errorf("sink received %d commands, want %d", sink.Len(), dl.OpCount(false))
	}
}

func TestConcurrentRegistration(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			name := "concurrent" + string(rune('A'+i%26)) + string(rune('0'+i/26))
			func() {
				defer func() { _ = recover() }()
				Register(name, func() Sink { return newMockSink(name) })
			}()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = Sinks()
			_ = IsRegistered("nonexistent")
		}
	}()
	wg.Wait()

	if n := len(Sinks()); n != 100 {
		t.Errorf("len(Sinks()) = %d, want 100", n)
	}
}

func TestRenderUnboundedFrame(t *testing.T) {
	b := displaylist.NewBuilder()
	b.DrawRect(displaylist.LTRB(0, 0, 8, 8))
	b.DrawPaint()
	dl := b.Build()

	sink := newMockSink("unbounded")
	if err := Render(dl, sink); !errors.Is(err, displaylist.ErrUnboundedFrame) {
		t.Fatalf("Render error = %v, want ErrUnboundedFrame", err)
	}
	if sink.beginCalls != 0 {
		t.Errorf("Begin called %d times, want 0", sink.beginCalls)
	}
}

func TestRenderFramesByBounds(t *testing.T) {
	b := displaylist.NewBuilder()
	b.DrawRect(displaylist.LTRB(4, 4, 30.5, 12))
	dl := b.Build()

	sink := newMockSink("bounds")
	if err := Render(dl, sink); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if sink.width != 31 || sink.height != 12 {
		t.Errorf("got dimensions %dx%d, want 31x12", sink.width, sink.height)
	}
}

func TestRenderNamed(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("named", func() Sink { return newMockSink("named") })
	b := displaylist.NewBuilder(displaylist.WithCullRect(displaylist.LTRB(0, 0, 16, 8)))
	b.DrawRect(displaylist.LTRB(1, 1, 4, 4))
	dl := b.Build()

	sink, err := RenderNamed(dl, "named")
	if err != nil {
		t.Fatalf("RenderNamed failed: %v", err)
	}
	mock := sink.(*mockSink)
	if mock.beginCalls != 1 || mock.endCalls != 1 {
		t.Errorf("Begin/End calls = %d/%d, want 1/1", mock.beginCalls, mock.endCalls)
	}
	if mock.width != 16 || mock.height != 8 {
		t.Errorf("got dimensions %dx%d, want 16x8", mock.width, mock.height)
	}

	if _, err := RenderNamed(dl, "missing"); !errors.Is(err, ErrUnknownSink) {
		t.Errorf("RenderNamed error = %v, want ErrUnknownSink", err)
	}
}
