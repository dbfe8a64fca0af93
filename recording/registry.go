package recording

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/displaylist"
)

// ErrUnknownSink is returned for a sink name nothing registered.
var ErrUnknownSink = errors.New("recording: unknown sink")

// SinkFactory creates a new sink instance.
type SinkFactory func() Sink

var (
	registryMu sync.RWMutex
	sinks      = make(map[string]SinkFactory)
)

// Register makes a sink available under name. The sinks in this module
// register from init, so importing one is enough:
//
//	import _ "github.com/gogpu/displaylist/recording/sinks/raster"
//
// Register panics if factory is nil or if name is already registered.
func Register(name string, factory SinkFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("recording: Register factory is nil")
	}
	if _, dup := sinks[name]; dup {
		panic("recording: Register called twice for " + name)
	}
	sinks[name] = factory
}

// NewSink creates a new sink instance by name.
func NewSink(name string) (Sink, error) {
	registryMu.RLock()
	factory, ok := sinks[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %v)", ErrUnknownSink, name, Sinks())
	}
	return factory(), nil
}

// RenderNamed creates the sink registered as name and renders dl into it.
// The finished sink is returned for its output methods.
func RenderNamed(dl *displaylist.DisplayList, name string) (Sink, error) {
	sink, err := NewSink(name)
	if err != nil {
		return nil, err
	}
	if err := Render(dl, sink); err != nil {
		return nil, err
	}
	return sink, nil
}

// IsRegistered reports whether a sink named name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := sinks[name]
	return ok
}

// Sinks returns the registered sink names in sorted order.
func Sinks() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(sinks))
	for name := range sinks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
