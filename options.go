package displaylist

// BuilderOption configures a Builder during creation.
//
// Example:
//
//	// Unbounded recording (cull rect defaults to MaxCullRect)
//	b := displaylist.NewBuilder()
//
//	// Recording for a 800x600 frame
//	b := displaylist.NewBuilder(displaylist.WithCullRect(displaylist.XYWH(0, 0, 800, 600)))
type BuilderOption func(*builderOptions)

// builderOptions holds optional configuration for Builder creation.
type builderOptions struct {
	cull     Rect
	capacity int
}

// defaultBuilderOptions returns the default builder options.
func defaultBuilderOptions() builderOptions {
	return builderOptions{
		cull:     MaxCullRect,
		capacity: defaultArenaSize,
	}
}

// WithCullRect sets the outer bound of the recording. Unbounded draw calls
// such as DrawPaint and DrawColor contribute this rectangle to the list's
// bounds.
func WithCullRect(r Rect) BuilderOption {
	return func(o *builderOptions) {
		o.cull = r.MakeSorted()
	}
}

// WithInitialCapacity presizes the byte arena. Useful when the caller knows
// roughly how large the recording will be, e.g. when re-recording a frame.
func WithInitialCapacity(n int) BuilderOption {
	return func(o *builderOptions) {
		if n > 0 {
			o.capacity = n
		}
	}
}
