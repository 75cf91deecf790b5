// Package backend defines the contract of the structure backend: the opaque
// engine that owns the mutating algorithms for the heap, the AVL tree, the
// graph and the hash table.
//
// The rest of structviz never looks inside a backend. It calls the operations
// below and reads state back only through textual snapshots (see package
// snapshot). Handles are explicitly released when they are replaced or when
// the session ends, so backends with native resources do not leak them.
//
// Package native provides an in-process implementation.
package backend

// Sentinel values returned by backend operations.
const (
	// EmptyHeap is returned by ExtractTop when the heap has no elements.
	EmptyHeap = -999999

	// NotFound is returned by HashTable.Search when the key is absent.
	NotFound = -1

	// NoRotation is the rotation message of a tree that has not rotated
	// since its last mutation.
	NoRotation = "No rotations performed"
)

// Releaser frees backend-side resources held by a handle. Calling Release
// more than once is allowed.
type Releaser interface {
	Release()
}

// Heap is a binary heap that can switch between min and max ordering.
type Heap interface {
	Releaser
	Insert(value int)
	ExtractTop() int
	Clear()
	ConvertToMinHeap()
	ConvertToMaxHeap()
	IsMinHeap() bool
	// Array returns the heap array snapshot, root first.
	Array() string
}

// Tree is a self-balancing binary search tree.
type Tree interface {
	Releaser
	Insert(value int)
	Remove(value int)
	Clear()
	// Tree returns the in-order value:height:balance snapshot.
	Tree() string
	// LastRotation describes the rotation performed by the last mutation.
	LastRotation() string
}

// Graph is a weighted graph with a fixed vertex count.
type Graph interface {
	Releaser
	AddEdge(u, v, weight int)
	RemoveEdge(u, v int)
	// RemoveVertex returns a new graph with vertex i removed and the
	// vertices above it renumbered down by one. The receiver is unchanged.
	RemoveVertex(i int) Graph
	SetDirected(directed bool)
	IsDirected() bool
	VertexCount() int
	// Matrix returns the adjacency matrix snapshot.
	Matrix() string
	BFS(start int) string
	DFS(start int) string
	Dijkstra(start int) string
	PrimMST() string
	Clear()
}

// HashTable maps integer keys to integer values.
type HashTable interface {
	Releaser
	Insert(key, value int)
	Search(key int) int
	Clear()
	// Table returns the bucket list snapshot.
	Table() string
}

// Module creates backend handles. Ready reports whether the backend has
// finished loading; constructors must not be called before it returns true.
type Module interface {
	Ready() bool
	NewHeap(min bool) (Heap, error)
	NewTree() (Tree, error)
	NewGraph(vertices int, directed bool) (Graph, error)
	NewHashTable() (HashTable, error)
}
