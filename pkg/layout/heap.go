package layout

import "math/bits"

// Heap layout constants.
const (
	HeapRootX       = 400.0
	HeapRootY       = 150.0
	HeapStep        = 100.0
	HeapLevelHeight = 80.0
	HeapNodeRadius  = 25.0
)

// HeapNode is one element of the heap array.
type HeapNode struct {
	Index int
	Value int
	Level int
	Point
}

// HeapLayout positions a heap as a complete binary tree.
type HeapLayout struct {
	Nodes  []HeapNode
	Edges  []Segment
	Radius float64
}

// Heap lays out values in array order. Index i sits on level
// floor(log2(i+1)) and is connected to children 2i+1 and 2i+2.
func Heap(values []int) HeapLayout {
	out := HeapLayout{Radius: HeapNodeRadius}
	if len(values) == 0 {
		return out
	}

	out.Nodes = make([]HeapNode, len(values))
	for i, v := range values {
		level, p := heapPosition(i)
		out.Nodes[i] = HeapNode{Index: i, Value: v, Level: level, Point: p}
	}
	for i, n := range out.Nodes {
		for _, c := range [2]int{2*i + 1, 2*i + 2} {
			if c >= len(out.Nodes) {
				break
			}
			out.Edges = append(out.Edges, Segment{
				From: n.Add(0, HeapNodeRadius),
				To:   out.Nodes[c].Add(0, -HeapNodeRadius),
			})
		}
	}
	return out
}

func heapPosition(i int) (int, Point) {
	level := bits.Len(uint(i+1)) - 1
	width := 1 << level
	pos := i + 1 - width
	x := HeapRootX + (float64(pos)-float64(width)/2+0.5)*HeapStep
	y := HeapRootY + float64(level)*HeapLevelHeight
	return level, Point{x, y}
}
