// Package snapshot decodes the textual state snapshots produced by the
// structure backend into structured values.
//
// A snapshot is a point-in-time encoding of one structure's internal state.
// The backend emits a new one after every mutation and it fully replaces the
// previous one; nothing here diffs snapshots.
//
// # Encodings
//
//	Array    [5,3,8]                 heap array, traversal orders, distances
//	NodeList [1:0:0,3:1:-1,5:0:0]    in-order (value:height:balance) triples
//	Matrix   [[0,5],[5,0]]           square adjacency weights, 0 = no edge
//	Buckets  [[12:1,2:7],[],[3:3]]   hash buckets of opaque display tokens
//	Edges    [0-1:4,1-2:2]           spanning tree edges as u-v:weight
//
// Every parser strips one leading and one trailing bracket. An empty interior
// is a valid, empty value.
//
// # Tolerance
//
// [ParseArray] drops elements that are not integers instead of failing, since
// the backend's formatting is not under our control. The structured shapes
// ([ParseMatrix], [ParseNodeList], [ParseEdges]) fail with a
// MALFORMED_SNAPSHOT error naming the expected shape, so callers can fall back
// to an empty display.
//
// # Round Trip
//
// The Format functions emit the backend's canonical encoding, so for any
// snapshot s that parses:
//
//	m, _ := snapshot.ParseMatrix(s)
//	again, _ := snapshot.ParseMatrix(snapshot.FormatMatrix(m))
//	// again equals m
package snapshot
