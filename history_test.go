package paint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHistoryPushPop covers the basic undo/redo stack discipline.
func TestHistoryPushPop(t *testing.T) {
	h := NewHistory(10)
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	h.push(&historyRecord{label: "a"})
	h.push(&historyRecord{label: "b"})
	assert.Equal(t, 2, h.Depth())

	r := h.popUndo()
	require.NotNil(t, r)
	assert.Equal(t, "b", r.label)
	assert.True(t, h.CanRedo())

	r = h.popRedo()
	require.NotNil(t, r)
	assert.Equal(t, "b", r.label)
	assert.False(t, h.CanRedo())
}

// TestHistoryRedoClearedOnPush verifies linear history: a divergent edit
// discards the redo stack.
func TestHistoryRedoClearedOnPush(t *testing.T) {
	h := NewHistory(10)
	h.push(&historyRecord{label: "a"})
	h.push(&historyRecord{label: "b"})
	h.popUndo()
	require.True(t, h.CanRedo())

	h.push(&historyRecord{label: "c"})
	assert.False(t, h.CanRedo())
	assert.Equal(t, 2, h.Depth())
}

// TestHistoryLimit verifies that the oldest record is dropped beyond the
// bound.
func TestHistoryLimit(t *testing.T) {
	h := NewHistory(2)
	h.push(&historyRecord{label: "a"})
	h.push(&historyRecord{label: "b"})
	h.push(&historyRecord{label: "c"})
	assert.Equal(t, 2, h.Depth())

	assert.Equal(t, "c", h.popUndo().label)
	assert.Equal(t, "b", h.popUndo().label)
	assert.Nil(t, h.popUndo(), "the oldest record must have been dropped")
}

// TestHistoryDefaultLimit verifies the fallback for non-positive limits.
func TestHistoryDefaultLimit(t *testing.T) {
	h := NewHistory(0)
	assert.Equal(t, DefaultHistoryLimit, h.limit)
	h = NewHistory(-5)
	assert.Equal(t, DefaultHistoryLimit, h.limit)
}

// TestHistoryListener verifies availability notifications around pushes,
// pops and clears.
func TestHistoryListener(t *testing.T) {
	h := NewHistory(10)
	var canUndo, canRedo bool
	var calls int
	h.SetListener(func(u, r bool) {
		canUndo, canRedo = u, r
		calls++
	})
	assert.Equal(t, 1, calls, "installing the listener fires it once")
	assert.False(t, canUndo)

	h.push(&historyRecord{label: "a"})
	assert.True(t, canUndo)
	assert.False(t, canRedo)

	h.popUndo()
	assert.False(t, canUndo)
	assert.True(t, canRedo)

	h.Clear()
	assert.False(t, canUndo)
	assert.False(t, canRedo)
}

// fakeExternal is an ExternalHistory stub counting delegated calls.
type fakeExternal struct {
	canUndo, canRedo bool
	undos, redos     int
}

func (f *fakeExternal) CanUndo() bool { return f.canUndo }
func (f *fakeExternal) CanRedo() bool { return f.canRedo }
func (f *fakeExternal) Undo()         { f.undos++ }
func (f *fakeExternal) Redo()         { f.redos++ }

// TestHistoryExternalOwner verifies that an installed external history
// takes over recording and undo/redo entirely.
func TestHistoryExternalOwner(t *testing.T) {
	c := NewCompositor(8, 8)
	c.AddLayer()
	require.True(t, c.History().CanUndo())

	ext := &fakeExternal{canUndo: true}
	c.History().SetExternal(ext)

	depth := c.History().Depth()
	c.AddLayer()
	assert.Equal(t, depth, c.History().Depth(), "pushes are ignored while an external owner is installed")

	require.True(t, c.Undo())
	assert.Equal(t, 1, ext.undos)
	assert.Equal(t, 2, c.LayerCount(), "the engine must not restore its own states")

	assert.False(t, c.Redo(), "redo defers to the external owner's availability")
	ext.canRedo = true
	require.True(t, c.Redo())
	assert.Equal(t, 1, ext.redos)

	c.History().SetExternal(nil)
	assert.True(t, c.History().CanUndo(), "removing the owner restores the engine's own records")
}

// TestCompositorUndoRedoRoundTrip drives a mixed edit sequence through a
// full undo and redo pass.
func TestCompositorUndoRedoRoundTrip(t *testing.T) {
	c := NewCompositor(16, 16)
	base := c.AddLayer()
	base.Surface().Fill(White)
	c.AddLayer()
	require.NoError(t, c.SetLayerOpacity(1, 0.5))
	c.MoveLayer(0, 1)

	require.Equal(t, 4, c.History().Depth())

	for c.Undo() {
	}
	assert.Equal(t, 0, c.LayerCount())
	assert.Equal(t, -1, c.SelectedIndex())

	for c.Redo() {
	}
	assert.Equal(t, 2, c.LayerCount())
	assert.InDelta(t, 0.5, c.layers[0].opacity, 1e-9, "the moved half-opacity layer ends at the bottom")
	assert.Equal(t, White, c.layers[1].surface.GetPixel(8, 8))
}
