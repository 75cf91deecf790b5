// Package layout computes coordinates for the four structure diagrams.
//
// Every function here is pure: the same input always yields the same
// coordinates, and nothing is drawn. All coordinates live in a fixed logical
// space of [Width] by [Height] units with the origin at the top left; the
// canvas package maps that space onto its output.
//
// # Diagrams
//
//   - [Heap]: complete binary tree from the heap array, one row per level
//   - [Tree]: recursive spread for a reconstructed AVL tree, with
//     [TreeSimple] as the fallback when no reconstructed nodes exist
//   - [Graph]: vertices on a circle whose radius shrinks as the vertex count
//     grows, with straight, curved and looped edges
//   - [Hash]: buckets in a row-major grid, five per row
package layout
