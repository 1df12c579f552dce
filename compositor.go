package paint

import (
	"image"
	"sort"

	"github.com/google/uuid"
)

// LayerInfo is the external, read-only view of one layer, exposed to UI
// collaborators for layer lists and thumbnails.
type LayerInfo struct {
	ID      uuid.UUID
	Name    string
	Opacity float64
	Mode    BlendMode
	Locked  bool
	Hidden  bool

	// Surface is a borrowed handle for readback (thumbnailing). It must
	// only be read between gesture callbacks, never while a stroke
	// targeting the layer is in progress.
	Surface *Pixmap
}

// LayerListener is notified after every change to stack membership, order,
// selection, or layer properties.
type LayerListener func(layers []LayerInfo, selected int)

// Compositor owns the ordered layer stack, the selection, and the cache
// tier used to avoid recompositing unaffected layers every frame.
//
// Render order is bottom-to-top by stack order. The cache tier holds two
// derived rasters: the composite of all layers strictly below the selected
// layer and the composite of all layers strictly above it. Both are pure
// functions of the stack excluding the selected layer's live content.
type Compositor struct {
	width  int
	height int
	clip   image.Rectangle

	layers   []*Layer
	selected int // -1 only when the stack is empty

	caching     bool
	below       *Pixmap
	above       *Pixmap
	cachesValid bool

	// Reference composite for external readback, with a fully-cached flag
	// that short-circuits recomposition on unmodified frames.
	composite      *Pixmap
	compositeValid bool

	// livePreview merges the selected layer with an in-progress
	// alpha-blend stroke for display without touching the layer surface.
	livePreview *Pixmap

	history       *History
	layerListener LayerListener
	painter       *StrokePainter
	gestureActive bool
}

// NewCompositor creates an empty compositor for a canvas of the given size.
// Caching is enabled by default.
func NewCompositor(width, height int) *Compositor {
	return &Compositor{
		width:    width,
		height:   height,
		clip:     image.Rect(0, 0, width, height),
		selected: -1,
		caching:  true,
		history:  NewHistory(0),
	}
}

// Size returns the canvas dimensions.
func (c *Compositor) Size() (width, height int) {
	return c.width, c.height
}

// History returns the compositor's history engine.
func (c *Compositor) History() *History {
	return c.history
}

// SetLayerListener installs the layer-change listener and fires it once
// with the current state.
func (c *Compositor) SetLayerListener(l LayerListener) {
	c.layerListener = l
	c.notifyLayers()
}

// SetClip sets the editable raster's clip region, used by ConvertToBitmap.
// The rectangle is intersected with the canvas bounds.
func (c *Compositor) SetClip(r image.Rectangle) {
	c.clip = r.Intersect(image.Rect(0, 0, c.width, c.height))
}

// EnableCaching toggles the below/above cache tier. Disabling forces full
// bottom-to-top composition every frame.
func (c *Compositor) EnableCaching(on bool) {
	if c.caching != on {
		c.caching = on
		c.cachesValid = false
	}
}

// LayerCount returns the number of layers in the stack.
func (c *Compositor) LayerCount() int {
	return len(c.layers)
}

// SelectedIndex returns the index of the selected layer, or -1 when the
// stack is empty.
func (c *Compositor) SelectedIndex() int {
	return c.selected
}

// Layers returns the ordered, bottom-to-top list of layer views.
func (c *Compositor) Layers() []LayerInfo {
	infos := make([]LayerInfo, len(c.layers))
	for i, l := range c.layers {
		infos[i] = LayerInfo{
			ID:      l.id,
			Name:    l.name,
			Opacity: l.opacity,
			Mode:    l.mode,
			Locked:  l.locked,
			Hidden:  l.hidden,
			Surface: l.surface,
		}
	}
	return infos
}

// Select makes the layer at index i the active editing target. Selection
// alone records no history but invalidates the cache tier, which is
// defined relative to the selected index.
func (c *Compositor) Select(i int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	if i == c.selected {
		return nil
	}
	c.selected = i
	c.cachesValid = false
	c.notifyLayers()
	return nil
}

// AddLayer appends a fresh transparent layer to the top of the stack,
// selects it, and records history.
func (c *Compositor) AddLayer() *Layer {
	l := NewLayer(c.width, c.height)
	c.recordStructural("add layer", func() {
		c.layers = append(c.layers, l)
		c.selected = len(c.layers) - 1
	})
	return l
}

// AddLayerFromImage appends a layer initialized from an existing bitmap,
// placed at the canvas origin, selects it, and records history.
func (c *Compositor) AddLayerFromImage(img image.Image) *Layer {
	l := NewLayer(c.width, c.height)
	l.surface.drawImage(img)
	c.recordStructural("add layer", func() {
		c.layers = append(c.layers, l)
		c.selected = len(c.layers) - 1
	})
	return l
}

// RemoveLayerAt removes the layer at index i. If the removed layer was
// selected, the layer below it is selected instead (or the sole remaining
// layer, or none if the stack becomes empty). Records history.
func (c *Compositor) RemoveLayerAt(i int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.recordStructural("remove layer", func() {
		c.layers = append(c.layers[:i], c.layers[i+1:]...)
		switch {
		case len(c.layers) == 0:
			c.selected = -1
		case i == c.selected:
			if i-1 >= 0 {
				c.selected = i - 1
			} else {
				c.selected = 0
			}
		case i < c.selected:
			c.selected--
		}
	})
	return nil
}

// MoveLayer swaps the layers at from and to. Out-of-range or equal indices
// make the call a silent no-op, keeping interactive gesture handling robust
// against redundant calls.
func (c *Compositor) MoveLayer(from, to int) {
	if from == to || c.checkIndex(from) != nil || c.checkIndex(to) != nil {
		Logger().Debug("move layer ignored", "from", from, "to", to)
		return
	}
	c.recordStructural("move layer", func() {
		c.layers[from], c.layers[to] = c.layers[to], c.layers[from]
		switch c.selected {
		case from:
			c.selected = to
		case to:
			c.selected = from
		}
	})
}

// MoveSelectedUp swaps the selected layer with the one above it.
func (c *Compositor) MoveSelectedUp() {
	c.MoveLayer(c.selected, c.selected+1)
}

// MoveSelectedDown swaps the selected layer with the one below it.
func (c *Compositor) MoveSelectedDown() {
	c.MoveLayer(c.selected, c.selected-1)
}

// MergeLayers flattens the given layers into the lowest-indexed one, in
// stack order, removes the others, and selects the merged result. The
// merged layer is baked: its opacity resets to 1 and its mode to
// BlendNormal, with each source layer's opacity and mode applied during
// the flatten. Requires at least two distinct valid indices. Records one
// history entry covering the whole stack.
func (c *Compositor) MergeLayers(indices ...int) error {
	if len(indices) < 2 {
		return ErrInvalidOperation
	}
	seen := make(map[int]bool, len(indices))
	for _, i := range indices {
		if err := c.checkIndex(i); err != nil {
			return err
		}
		if seen[i] {
			return ErrInvalidOperation
		}
		seen[i] = true
	}

	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Ints(sorted)
	base := sorted[0]

	c.recordStructural("merge layers", func() {
		target := c.layers[base]

		// Bake the target's own opacity and mode before flattening the
		// sources onto it, so resetting it to opacity 1 and BlendNormal
		// below leaves the visible composite unchanged.
		flat := NewPixmap(c.width, c.height)
		flat.Draw(target.surface, target.mode, target.opacity)
		for _, idx := range sorted[1:] {
			l := c.layers[idx]
			if l.hidden {
				continue
			}
			flat.Draw(l.surface, l.mode, l.opacity)
		}
		target.surface = flat
		target.opacity = 1
		target.mode = BlendNormal

		// Remove merged sources top-down so indices stay valid.
		for k := len(sorted) - 1; k >= 1; k-- {
			idx := sorted[k]
			c.layers = append(c.layers[:idx], c.layers[idx+1:]...)
		}
		c.selected = base
	})
	return nil
}

// DuplicateLayer deep-copies the layer at index i, inserts the copy
// directly above the original, and selects it. Records history.
func (c *Compositor) DuplicateLayer(i int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.recordStructural("duplicate layer", func() {
		cp := c.layers[i].Clone()
		cp.id = uuid.New()
		if cp.name != "" {
			cp.name += " copy"
		}
		c.layers = append(c.layers, nil)
		copy(c.layers[i+2:], c.layers[i+1:])
		c.layers[i+1] = cp
		c.selected = i + 1
	})
	return nil
}

// SetLayerOpacity changes a layer's opacity and records history.
//
// Changing the selected layer's opacity does not touch the below/above
// caches: they exclude the selected layer by construction. Only the
// reference composite is marked stale in that case.
func (c *Compositor) SetLayerOpacity(i int, opacity float64) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	before := c.captureStack()
	c.layers[i].opacity = clamp01(opacity)
	c.history.push(&historyRecord{"layer opacity", before, c.captureStack()})

	c.compositeValid = false
	if i != c.selected {
		c.cachesValid = false
	}
	c.notifyLayers()
	return nil
}

// SetLayerMode changes a layer's blend mode and records history.
func (c *Compositor) SetLayerMode(i int, mode BlendMode) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.recordStructural("layer blend mode", func() {
		c.layers[i].mode = mode
	})
	return nil
}

// SetLayerHidden toggles a layer's visibility and records history.
func (c *Compositor) SetLayerHidden(i int, hidden bool) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.recordStructural("layer visibility", func() {
		c.layers[i].hidden = hidden
	})
	return nil
}

// SetLayerLocked toggles a layer's lock flag. Locking prevents the
// StrokePainter from binding to the layer but does not invalidate caches
// and records no history.
func (c *Compositor) SetLayerLocked(i int, locked bool) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.layers[i].locked = locked
	c.notifyLayers()
	return nil
}

// RenameLayer sets a layer's display name. No history, no cache effect.
func (c *Compositor) RenameLayer(i int, name string) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.layers[i].name = name
	c.notifyLayers()
	return nil
}

// BeginGesture marks the caches provisionally stale for the duration of an
// interactive transform gesture; intermediate frames render uncached.
func (c *Compositor) BeginGesture() {
	c.gestureActive = true
}

// EndGesture ends the gesture and schedules a cache rebuild.
func (c *Compositor) EndGesture() {
	c.gestureActive = false
	c.invalidateAll()
}

// Undo reverts the most recent mutation. Returns false if nothing can be
// undone. When an external history owner is installed, the call defers to
// it entirely.
func (c *Compositor) Undo() bool {
	if ext := c.history.external; ext != nil {
		if !ext.CanUndo() {
			return false
		}
		ext.Undo()
		c.history.notify()
		return true
	}
	r := c.history.popUndo()
	if r == nil {
		return false
	}
	r.before.restore(c)
	c.invalidateAll()
	c.notifyLayers()
	return true
}

// Redo reapplies the most recently undone mutation. Returns false if
// nothing can be redone.
func (c *Compositor) Redo() bool {
	if ext := c.history.external; ext != nil {
		if !ext.CanRedo() {
			return false
		}
		ext.Redo()
		c.history.notify()
		return true
	}
	r := c.history.popRedo()
	if r == nil {
		return false
	}
	r.after.restore(c)
	c.invalidateAll()
	c.notifyLayers()
	return true
}

// Render composites the full stack bottom-to-top into dst, drawing the
// active stroke's live content when the selected layer is reached.
//
// Three paths:
//  1. Caching disabled (or a gesture in flight): direct O(layers)
//     composition.
//  2. Caches valid, all layers BlendNormal: cached below + live selected
//     layer + cached above, O(1) in layer count.
//  3. Any non-default blend mode: fall back to per-layer composition,
//     because blend modes are not associative across a cached composite
//     boundary.
func (c *Compositor) Render(dst *Pixmap) {
	dst.Clear()
	if len(c.layers) == 0 {
		return
	}

	if !c.caching || c.gestureActive || c.hasNonDefaultBlend() {
		c.renderDirect(dst)
		return
	}

	if !c.cachesValid {
		c.rebuildCaches()
	}
	dst.Draw(c.below, BlendNormal, 1)
	if l := c.layers[c.selected]; !l.hidden {
		c.drawLayerLive(dst, l)
	}
	dst.Draw(c.above, BlendNormal, 1)
}

// Composite returns the reference composite for external readback,
// rebuilding it only when marked stale. While a stroke is in progress the
// fully-cached flag stays off so in-progress frames are never reused.
func (c *Compositor) Composite() *Pixmap {
	if c.composite == nil {
		c.composite = NewPixmap(c.width, c.height)
		c.compositeValid = false
	}
	if !c.compositeValid {
		c.Render(c.composite)
		c.compositeValid = !c.strokeInProgress()
	}
	return c.composite
}

// ConvertToBitmap returns a flattened copy of the fully composited,
// clip-cropped result.
func (c *Compositor) ConvertToBitmap() *Pixmap {
	return c.Composite().SubRegion(c.clip)
}

// renderDirect composites every layer bottom-to-top.
func (c *Compositor) renderDirect(dst *Pixmap) {
	for i, l := range c.layers {
		if l.hidden {
			continue
		}
		if i == c.selected {
			c.drawLayerLive(dst, l)
			continue
		}
		dst.Draw(l.surface, l.mode, l.opacity)
	}
}

// drawLayerLive composites the selected layer, overlaying the in-progress
// alpha-blend stroke accumulation when one is active. The compositor never
// reads the layer's surface into a cache here; live content bypasses the
// cache tier for this layer only.
func (c *Compositor) drawLayerLive(dst *Pixmap, l *Layer) {
	p := c.painter
	if p == nil || !p.active || p.layer != l || !p.strokeBrush.AlphaBlend {
		dst.Draw(l.surface, l.mode, l.opacity)
		return
	}

	if c.livePreview == nil || !c.livePreview.SameSize(l.surface) {
		c.livePreview = NewPixmap(l.surface.Width(), l.surface.Height())
	}
	copy(c.livePreview.data, l.surface.data)
	c.livePreview.Draw(p.scratch, BlendNormal, p.strokeOpacity)
	dst.Draw(c.livePreview, l.mode, l.opacity)
}

// rebuildCaches recomposites the below/above tier for the current
// selection.
func (c *Compositor) rebuildCaches() {
	if c.below == nil {
		c.below = NewPixmap(c.width, c.height)
		c.above = NewPixmap(c.width, c.height)
	}
	c.below.Clear()
	c.above.Clear()

	for i, l := range c.layers {
		if l.hidden || i == c.selected {
			continue
		}
		if i < c.selected {
			c.below.Draw(l.surface, l.mode, l.opacity)
		} else {
			c.above.Draw(l.surface, l.mode, l.opacity)
		}
	}
	c.cachesValid = true
	Logger().Debug("cache tier rebuilt", "layers", len(c.layers), "selected", c.selected)
}

// hasNonDefaultBlend reports whether any visible layer declares a blend
// mode other than BlendNormal.
func (c *Compositor) hasNonDefaultBlend() bool {
	for _, l := range c.layers {
		if !l.hidden && l.mode != BlendNormal {
			return true
		}
	}
	return false
}

// strokeInProgress reports whether the registered painter is mid-stroke.
func (c *Compositor) strokeInProgress() bool {
	return c.painter != nil && c.painter.active
}

// strokeTarget returns the selected layer and its index for the painter,
// or nil when no stroke may begin.
func (c *Compositor) strokeTarget() (*Layer, int) {
	if c.selected < 0 {
		return nil, -1
	}
	return c.layers[c.selected], c.selected
}

// strokeFinished records a completed stroke on layer index i as one
// content history entry and marks the reference composite stale. The
// below/above caches exclude the selected layer, so they stay valid.
func (c *Compositor) strokeFinished(i int, before, after *Pixmap) {
	c.history.push(&historyRecord{
		label:  "stroke",
		before: contentState{index: i, surface: before},
		after:  contentState{index: i, surface: after},
	})
	c.compositeValid = false
}

// contentChanged marks composites stale after a direct content edit (e.g.
// a filter) on layer index i.
func (c *Compositor) contentChanged(i int) {
	c.compositeValid = false
	if i != c.selected {
		c.cachesValid = false
	}
}

// recordStructural captures before/after stack snapshots around a
// structural mutation and pushes one history record.
func (c *Compositor) recordStructural(label string, mutate func()) {
	before := c.captureStack()
	mutate()
	c.history.push(&historyRecord{label, before, c.captureStack()})
	c.invalidateAll()
	c.notifyLayers()
}

// captureStack deep-clones the ordered stack and selection.
func (c *Compositor) captureStack() stackState {
	layers := make([]*Layer, len(c.layers))
	for i, l := range c.layers {
		layers[i] = l.Clone()
	}
	return stackState{layers: layers, selected: c.selected}
}

func (c *Compositor) invalidateAll() {
	c.cachesValid = false
	c.compositeValid = false
}

func (c *Compositor) checkIndex(i int) error {
	if i < 0 || i >= len(c.layers) {
		return ErrIndexOutOfRange
	}
	return nil
}

func (c *Compositor) notifyLayers() {
	if c.layerListener != nil {
		c.layerListener(c.Layers(), c.selected)
	}
}
