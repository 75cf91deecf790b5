// Package tree rebuilds a display tree from an in-order node list.
//
// The backend only transmits values in ascending order with their height and
// balance factor; parent and child links are not part of the snapshot. Any
// binary search tree consistent with that order looks the same to the user,
// so [Reconstruct] picks the balanced one: the middle element of each range
// becomes the subtree root. Height and balance are carried through from the
// snapshot unchanged.
package tree

import "github.com/matzehuels/structviz/pkg/snapshot"

// Node is one node of a reconstructed tree. X, Y and Level are filled in by
// the layout engine.
type Node struct {
	Value   int
	Height  int
	Balance int
	Left    *Node
	Right   *Node

	X, Y  float64
	Level int
}

// Reconstruct builds a balanced tree whose in-order traversal is entries.
// An empty list yields nil.
func Reconstruct(entries snapshot.NodeList) *Node {
	return build(entries, 0, len(entries)-1)
}

func build(entries snapshot.NodeList, start, end int) *Node {
	if start > end {
		return nil
	}
	mid := (start + end) / 2
	e := entries[mid]
	return &Node{
		Value:   e.Value,
		Height:  e.Height,
		Balance: e.Balance,
		Left:    build(entries, start, mid-1),
		Right:   build(entries, mid+1, end),
	}
}

// Walk visits every node in pre-order. It stops early if fn returns false.
func Walk(root *Node, fn func(*Node) bool) {
	var visit func(*Node) bool
	visit = func(n *Node) bool {
		if n == nil {
			return true
		}
		return fn(n) && visit(n.Left) && visit(n.Right)
	}
	visit(root)
}

// Count returns the number of nodes.
func Count(root *Node) int {
	n := 0
	Walk(root, func(*Node) bool { n++; return true })
	return n
}

// InOrder returns the values in in-order sequence.
func InOrder(root *Node) []int {
	var out []int
	var visit func(*Node)
	visit = func(n *Node) {
		if n == nil {
			return
		}
		visit(n.Left)
		out = append(out, n.Value)
		visit(n.Right)
	}
	visit(root)
	return out
}

// Depth returns the number of levels, 0 for an empty tree.
func Depth(root *Node) int {
	if root == nil {
		return 0
	}
	return 1 + max(Depth(root.Left), Depth(root.Right))
}

// Unbalanced reports whether the node's balance factor is outside [-1, 1].
func (n *Node) Unbalanced() bool {
	return n.Balance > 1 || n.Balance < -1
}
