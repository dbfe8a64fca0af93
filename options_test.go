package displaylist

import (
	"testing"
)

// TestNewBuilderDefault tests that NewBuilder records against MaxCullRect.
func TestNewBuilderDefault(t *testing.T) {
	b := NewBuilder()
	if b == nil {
		t.Fatal("NewBuilder returned nil")
	}
	if b.CullRect() != MaxCullRect {
		t.Errorf("CullRect() = %v, want %v", b.CullRect(), MaxCullRect)
	}
	if cap(b.storage) != defaultArenaSize {
		t.Errorf("arena capacity = %d, want %d", cap(b.storage), defaultArenaSize)
	}
	if b.OpCount() != 0 || b.Bytes() != 0 || b.SaveLevel() != 0 {
		t.Errorf("new builder not empty: ops=%d bytes=%d level=%d", b.OpCount(), b.Bytes(), b.SaveLevel())
	}
}

// TestWithCullRect tests that the cull rect option is applied and sorted.
func TestWithCullRect(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"sorted", LTRB(0, 0, 100, 50), LTRB(0, 0, 100, 50)},
		{"flipped x", LTRB(100, 0, 0, 50), LTRB(0, 0, 100, 50)},
		{"flipped both", LTRB(100, 50, 0, 0), LTRB(0, 0, 100, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(WithCullRect(tt.in))
			if got := b.CullRect(); got != tt.want {
				t.Errorf("CullRect() = %v, want %v", got, tt.want)
			}
			if got := b.Build().CullRect(); got != tt.want {
				t.Errorf("DisplayList.CullRect() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestWithInitialCapacity tests arena presizing.
func TestWithInitialCapacity(t *testing.T) {
	b := NewBuilder(WithInitialCapacity(4096))
	if cap(b.storage) != 4096 {
		t.Errorf("arena capacity = %d, want 4096", cap(b.storage))
	}

	// Non-positive values keep the default.
	b = NewBuilder(WithInitialCapacity(0))
	if cap(b.storage) != defaultArenaSize {
		t.Errorf("arena capacity = %d, want %d", cap(b.storage), defaultArenaSize)
	}

	// The capacity survives Build.
	b = NewBuilder(WithInitialCapacity(64))
	b.DrawPaint()
	b.Build()
	if cap(b.storage) != 64 {
		t.Errorf("arena capacity after Build = %d, want 64", cap(b.storage))
	}
}

// TestMultipleOptions tests that options compose.
func TestMultipleOptions(t *testing.T) {
	cull := XYWH(10, 10, 20, 20)
	b := NewBuilder(WithCullRect(cull), WithInitialCapacity(1024))
	if b.CullRect() != cull {
		t.Errorf("CullRect() = %v, want %v", b.CullRect(), cull)
	}
	if cap(b.storage) != 1024 {
		t.Errorf("arena capacity = %d, want 1024", cap(b.storage))
	}
}
