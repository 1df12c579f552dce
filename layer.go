package paint

import (
	"image"

	"github.com/google/uuid"
)

// Layer is one raster surface plus compositing metadata in the layer stack.
//
// Layers are owned exclusively by the Compositor that holds them. Other
// subsystems receive either a borrowed reference valid for the current call
// (the StrokePainter, for the duration of one stroke) or a deep clone (the
// History engine, for snapshots). Mutating a layer's persistent properties
// goes through the Compositor so caches and history stay consistent.
type Layer struct {
	id      uuid.UUID
	name    string
	surface *Pixmap
	opacity float64
	mode    BlendMode
	locked  bool
	hidden  bool
}

// NewLayer creates a transparent layer of the given size.
func NewLayer(width, height int) *Layer {
	return &Layer{
		id:      uuid.New(),
		surface: NewPixmap(width, height),
		opacity: 1,
		mode:    BlendNormal,
	}
}

// NewLayerFromImage creates a layer from an existing bitmap. The layer
// takes the image's dimensions.
func NewLayerFromImage(img image.Image) *Layer {
	l := NewLayer(img.Bounds().Dx(), img.Bounds().Dy())
	l.surface.drawImage(img)
	return l
}

// ID returns the layer's stable identity, independent of stack position.
func (l *Layer) ID() uuid.UUID { return l.id }

// Name returns the layer's display name.
func (l *Layer) Name() string { return l.name }

// Surface returns the layer's pixel buffer. The reference is borrowed: the
// Compositor owns it and callers must not retain it across structural
// edits or undo.
func (l *Layer) Surface() *Pixmap { return l.surface }

// Opacity returns the layer opacity in [0, 1].
func (l *Layer) Opacity() float64 { return l.opacity }

// Mode returns the layer's blend mode.
func (l *Layer) Mode() BlendMode { return l.mode }

// Locked reports whether the layer rejects stroke input.
func (l *Layer) Locked() bool { return l.locked }

// Hidden reports whether the layer is excluded from compositing.
func (l *Layer) Hidden() bool { return l.hidden }

// Clone returns a deep copy of the layer, preserving its identity.
// Used for history snapshots; DuplicateLayer assigns the copy a fresh ID.
func (l *Layer) Clone() *Layer {
	return &Layer{
		id:      l.id,
		name:    l.name,
		surface: l.surface.Clone(),
		opacity: l.opacity,
		mode:    l.mode,
		locked:  l.locked,
		hidden:  l.hidden,
	}
}
