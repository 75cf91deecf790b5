// Package render turns a session's current state into a drawn frame.
//
// # Overview
//
// Rendering is a pure function of one structure's snapshot, the graph
// highlight and the theme. The [Orchestrator] pulls the latest snapshot for
// the active structure, runs it through the snapshot parser, the tree
// reconstructor or the highlight interpreter, computes a layout and paints
// the result on a [canvas.Surface]:
//
//	snapshot → parse → layout → draw → SVG
//
// Frames are memoized in a [cache.Cache] keyed by a hash of those inputs, so
// repeated renders of an unchanged structure cost one lookup.
//
// A snapshot that cannot be parsed does not fail the render. The frame falls
// back to its "Error visualizing ..." state, the problem is logged as a
// warning and reported through the observability render hooks.
//
// # Usage
//
//	o := render.New(cache.NewNullCache(), nil, logger)
//	frame, err := o.Render(ctx, sess)
//	os.WriteFile("heap.svg", frame.SVG, 0o644)
//
// To draw on another surface, for example a [canvas.Recorder] in tests:
//
//	rec := canvas.NewRecorder()
//	err := o.Draw(sess, sess.Active(), rec)
//
// # Format Conversion
//
// [Convert] turns SVG into PDF or PNG using the external rsvg-convert tool
// (from librsvg).
//
// The [nodelink] subpackage exports the graph through Graphviz instead.
//
// [nodelink]: github.com/matzehuels/structviz/pkg/render/nodelink
package render
