package recording

import (
	"image"

	"github.com/gogpu/gg"
)

// ResourcePool stores the paths and images referenced by recording commands.
// Paths are cloned on Add so later edits by the caller do not reach the
// recording.
//
// ResourcePool is not safe for concurrent use. If concurrent access is needed,
// external synchronization must be provided.
type ResourcePool struct {
	paths  []*gg.Path
	images []image.Image
}

// NewResourcePool creates an empty resource pool with pre-allocated capacity.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		paths:  make([]*gg.Path, 0, 32),
		images: make([]image.Image, 0, 8),
	}
}

// AddPath adds a copy of path to the pool and returns its reference.
// A nil path is stored as nil.
func (p *ResourcePool) AddPath(path *gg.Path) PathRef {
	if path != nil {
		path = path.Clone()
	}
	p.paths = append(p.paths, path)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return PathRef(uint32(len(p.paths) - 1))
}

// GetPath returns the path for the given reference, or nil if the reference
// is out of range.
func (p *ResourcePool) GetPath(ref PathRef) *gg.Path {
	if int(ref) >= len(p.paths) {
		return nil
	}
	return p.paths[ref]
}

// PathCount returns the number of paths in the pool.
func (p *ResourcePool) PathCount() int {
	return len(p.paths)
}

// AddImage adds an image to the pool and returns its reference. An image
// already in the pool is not added twice.
func (p *ResourcePool) AddImage(img image.Image) ImageRef {
	for i, have := range p.images {
		if sameImage(have, img) {
			// #nosec G115 -- pool size is bounded by available memory
			return ImageRef(uint32(i))
		}
	}
	p.images = append(p.images, img)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return ImageRef(uint32(len(p.images) - 1))
}

// sameImage compares images by identity. Only pointer images are
// deduplicated; anything else could panic on ==.
func sameImage(a, b image.Image) bool {
	switch a.(type) {
	case *image.RGBA, *image.NRGBA, *image.Gray, *image.Alpha, *image.Paletted, *image.YCbCr:
		return a == b
	}
	return false
}

// GetImage returns the image for the given reference, or nil if the
// reference is out of range.
func (p *ResourcePool) GetImage(ref ImageRef) image.Image {
	if int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// ImageCount returns the number of images in the pool.
func (p *ResourcePool) ImageCount() int {
	return len(p.images)
}

// Clear removes all resources from the pool.
// This does not release the underlying memory; use NewResourcePool for that.
func (p *ResourcePool) Clear() {
	p.paths = p.paths[:0]
	p.images = p.images[:0]
}

// Clone creates a copy of the resource pool. Paths are cloned; images are
// shared.
func (p *ResourcePool) Clone() *ResourcePool {
	clone := &ResourcePool{
		paths:  make([]*gg.Path, len(p.paths)),
		images: make([]image.Image, len(p.images)),
	}
	for i, path := range p.paths {
		if path != nil {
			clone.paths[i] = path.Clone()
		}
	}
	copy(clone.images, p.images)
	return clone
}
