package snapshot

// Shape names used in MALFORMED_SNAPSHOT messages.
const (
	ShapeArray    = "array"
	ShapeMatrix   = "matrix"
	ShapeNodeList = "node list"
	ShapeBuckets  = "bucket list"
	ShapeEdges    = "edge list"
)

// Unreachable is the distance the backend reports for a vertex that cannot be
// reached from the start vertex.
const Unreachable = 999999

// Array is an ordered sequence of integers.
type Array []int

// Matrix is a square adjacency matrix of edge weights. A zero cell means
// there is no edge from row to column.
type Matrix [][]int

// Size returns the side length of the matrix.
func (m Matrix) Size() int { return len(m) }

// Symmetric reports whether m[i][j] == m[j][i] for every cell.
func (m Matrix) Symmetric() bool {
	for i := range m {
		for j := i + 1; j < len(m); j++ {
			if m[i][j] != m[j][i] {
				return false
			}
		}
	}
	return true
}

// HasEdges reports whether any cell is nonzero.
func (m Matrix) HasEdges() bool {
	for _, row := range m {
		for _, w := range row {
			if w != 0 {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Zero returns an all-zero n×n matrix.
func Zero(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	return m
}

// NodeEntry is one node of an in-order tree snapshot. Height and Balance are
// carried as reported by the backend and never recomputed.
type NodeEntry struct {
	Value   int
	Height  int
	Balance int
}

// NodeList is an in-order sequence of tree nodes.
type NodeList []NodeEntry

// Values returns the node values in snapshot order.
func (l NodeList) Values() []int {
	out := make([]int, len(l))
	for i, e := range l {
		out[i] = e.Value
	}
	return out
}

// Bucket is the ordered content of one hash bucket. Tokens are display
// strings and are not interpreted.
type Bucket []string

// Buckets is the ordered list of hash buckets.
type Buckets []Bucket

// Entries returns the total number of tokens across all buckets.
func (b Buckets) Entries() int {
	n := 0
	for _, bucket := range b {
		n += len(bucket)
	}
	return n
}

// Edge is one weighted edge of a spanning tree result.
type Edge struct {
	U, V   int
	Weight int
}
