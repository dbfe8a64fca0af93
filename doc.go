// Package displaylist records 2D drawing calls into a compact, replayable
// byte encoding.
//
// # Overview
//
// A Builder serializes drawing calls (attribute changes, save and restore,
// transforms, clips and draws) into op records in a growable byte arena.
// Build freezes the arena into an immutable DisplayList, which any number of
// goroutines may replay through the Dispatcher interface:
//
//	b := displaylist.NewBuilder()
//	b.SetColor(displaylist.ColorBlue)
//	b.DrawRect(displaylist.LTRB(0, 0, 10, 10))
//	dl := b.Build()
//
//	dl.Dispatch(myDispatcher)
//	fmt.Println(dl.Bounds(), dl.OpCount(false))
//
// # Record format
//
// Each record is a little-endian uint32 header holding the op type in the
// low 8 bits and the record size in the upper 24, followed by a payload
// whose shape is fixed by the op type, padded to 4 bytes. Resource handles
// (paths, images, vertices, lattices, pictures, nested lists, text blobs and
// filters) are kept in a slice alongside the bytes; every op type consumes a
// fixed number of them.
//
// # State model
//
// Attributes (color, stroke parameters, blend mode, shader and filters)
// persist until changed and are not affected by Save or Restore. Save,
// SaveLayer and Restore bracket only the transform and clip. Transforms and
// clips compose with the current state.
//
// # Consumers
//
// DisplayList.Bounds runs an internal bounds accumulator. RenderTo draws
// into a github.com/gogpu/gg Context. The recording subpackage captures
// dispatch as typed commands, and the cache subpackage keeps rendered
// rasters keyed by DisplayList.UniqueID.
//
// # Logging
//
// The package logs through log/slog and is silent by default. Use SetLogger
// to enable output.
package displaylist
