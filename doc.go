// Package paint implements a layered raster painting core: brush-stroke
// rendering, layer compositing with blend modes, and undo/redo history.
//
// The package is organized around a small number of cooperating engines:
//
//   - Brush describes what a stroke paints with (size, spacing, jitter,
//     taper, texture) and delegates the actual dab rendering to a Stamper.
//   - Smoother turns raw pointer samples into evenly spaced stamp positions
//     along a smoothed Bezier path.
//   - DrawingEngine applies per-stamp randomized transforms (scatter,
//     rotation, size jitter, taper, squish) and renders one stamp.
//   - StrokePainter drives the Smoother and DrawingEngine against the
//     selected layer of a Compositor, handling alpha-blend accumulation.
//   - Compositor owns the ordered layer stack, the below/above cache tier,
//     and the reference composite used for readback.
//   - History records before/after snapshots of every mutation so edits
//     can be undone and redone exactly.
//
// All raster surfaces are Pixmaps holding premultiplied RGBA8 pixels. The
// core is single-threaded by design: pointer callbacks, render calls and
// structural edits are expected to arrive from one UI event loop, and every
// mutation completes synchronously inside the triggering call.
//
// The package produces no log output by default; call SetLogger to enable
// structured diagnostics via log/slog.
package paint
