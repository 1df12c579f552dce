package paint

// DefaultHistoryLimit bounds the undo stack; the oldest record is dropped
// when a new mutation would exceed it.
const DefaultHistoryLimit = 64

// HistoryListener is notified whenever undo/redo availability may have
// changed, so UI controls can reflect enabled state. It fires after every
// push, pop and clear.
type HistoryListener func(canUndo, canRedo bool)

// ExternalHistory lets a tool with its own undo semantics (e.g. a selection
// painter) take over history entirely. While installed, the engine defers
// to it and records no states of its own; the two histories are never
// active simultaneously for the same gesture.
type ExternalHistory interface {
	CanUndo() bool
	CanRedo() bool
	Undo()
	Redo()
}

// historyState is an immutable snapshot sufficient to restore one side of a
// mutation: either a single layer's content or the whole ordered stack.
type historyState interface {
	restore(c *Compositor)
}

// contentState restores a single layer's surface; stack membership is
// unchanged. Used for strokes and filters.
type contentState struct {
	index   int
	surface *Pixmap // deep clone, owned by the record
}

func (s contentState) restore(c *Compositor) {
	if s.index < 0 || s.index >= len(c.layers) {
		return
	}
	// Clone again so the record stays immutable across repeated undo/redo.
	c.layers[s.index].surface = s.surface.Clone()
}

// stackState restores the entire ordered stack and selection. Used for
// structural edits: add, remove, reorder, merge, duplicate, property
// changes.
type stackState struct {
	layers   []*Layer // deep clones, owned by the record
	selected int
}

func (s stackState) restore(c *Compositor) {
	layers := make([]*Layer, len(s.layers))
	for i, l := range s.layers {
		layers[i] = l.Clone()
	}
	c.layers = layers
	c.selected = s.selected
}

// historyRecord pairs the before/after halves of one mutation.
type historyRecord struct {
	label  string
	before historyState
	after  historyState
}

// History is a bounded stack of reversible state records over layer-stack
// mutations. A new mutating action clears the redo stack (standard linear
// history).
type History struct {
	limit    int
	undo     []*historyRecord
	redo     []*historyRecord
	listener HistoryListener
	external ExternalHistory
}

// NewHistory creates a history bounded to limit records. Non-positive
// limits fall back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// SetListener installs the availability listener and fires it once with the
// current state.
func (h *History) SetListener(l HistoryListener) {
	h.listener = l
	h.notify()
}

// SetExternal installs or removes (nil) an external history owner.
func (h *History) SetExternal(ext ExternalHistory) {
	h.external = ext
	h.notify()
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool {
	if h.external != nil {
		return h.external.CanUndo()
	}
	return len(h.undo) > 0
}

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool {
	if h.external != nil {
		return h.external.CanRedo()
	}
	return len(h.redo) > 0
}

// Depth returns the number of undoable records.
func (h *History) Depth() int {
	return len(h.undo)
}

// Clear drops all records.
func (h *History) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
	h.notify()
}

// push records a completed mutation. The redo stack is cleared: there is no
// redo after a divergent edit.
func (h *History) push(r *historyRecord) {
	if h.external != nil {
		// An installed external owner records its own states; the engine
		// must not track the same gesture concurrently.
		return
	}
	h.redo = h.redo[:0]
	h.undo = append(h.undo, r)
	if len(h.undo) > h.limit {
		copy(h.undo, h.undo[1:])
		h.undo = h.undo[:h.limit]
	}
	Logger().Debug("history push", "label", r.label, "depth", len(h.undo))
	h.notify()
}

// popUndo moves the newest record to the redo stack and returns it.
func (h *History) popUndo() *historyRecord {
	if len(h.undo) == 0 {
		return nil
	}
	r := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, r)
	h.notify()
	return r
}

// popRedo moves the newest redone record back to the undo stack.
func (h *History) popRedo() *historyRecord {
	if len(h.redo) == 0 {
		return nil
	}
	r := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, r)
	h.notify()
	return r
}

func (h *History) notify() {
	if h.listener != nil {
		h.listener(h.CanUndo(), h.CanRedo())
	}
}
