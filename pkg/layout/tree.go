package layout

import (
	"github.com/matzehuels/structviz/pkg/snapshot"
	"github.com/matzehuels/structviz/pkg/tree"
)

// Tree layout constants.
const (
	TreeRootX       = 400.0
	TreeRootY       = 120.0
	TreeLevelHeight = 70.0
	TreeSpread      = 150.0
	TreeDamping     = 0.7
	TreeNodeRadius  = 22.0

	// Fallback split used by TreeSimple.
	SimpleRootY   = 150.0
	SimpleSpread  = 200.0
	SimpleDamping = 0.6
)

// TreeNode is one positioned tree node.
type TreeNode struct {
	Value   int
	Height  int
	Balance int
	Level   int
	Point
}

// Root reports whether the node is the tree root.
func (n TreeNode) Root() bool { return n.Level == 0 }

// Unbalanced reports whether the balance factor is outside [-1, 1].
func (n TreeNode) Unbalanced() bool { return n.Balance > 1 || n.Balance < -1 }

// TreeLayout positions an AVL tree. Nodes are in pre-order.
type TreeLayout struct {
	Nodes  []TreeNode
	Edges  []Segment
	Radius float64
}

type extent struct {
	x, left, right float64
}

// Tree lays out a reconstructed tree and records X, Y and Level on each
// node. It mutates root and returns a snapshot of the positions.
//
// Every level shrinks the horizontal spread by [TreeDamping] so deep trees
// compress instead of leaving the canvas.
func Tree(root *tree.Node) TreeLayout {
	out := TreeLayout{Radius: TreeNodeRadius}
	if root == nil {
		return out
	}

	var place func(n *tree.Node, x, y float64, level int, spread float64) extent
	place = func(n *tree.Node, x, y float64, level int, spread float64) extent {
		if n == nil {
			return extent{x, x, x}
		}
		spread *= TreeDamping
		left := place(n.Left, x-spread, y+TreeLevelHeight, level+1, spread)

		// A node sits halfway between the right edge of its left subtree and
		// where its right subtree will start.
		cx := left.right
		if n.Right != nil {
			cx = (left.right + left.right + spread*2) / 2
		}
		right := place(n.Right, cx+spread, y+TreeLevelHeight, level+1, spread)

		n.X, n.Y, n.Level = cx, y, level
		return extent{cx, left.left, right.right}
	}
	place(root, TreeRootX, TreeRootY, 0, TreeSpread)

	// Shift so the root always sits at TreeRootX, even when it has no right
	// subtree to balance the left one.
	dx := TreeRootX - root.X
	tree.Walk(root, func(n *tree.Node) bool {
		n.X += dx
		return true
	})

	tree.Walk(root, func(n *tree.Node) bool {
		out.Nodes = append(out.Nodes, TreeNode{
			Value: n.Value, Height: n.Height, Balance: n.Balance,
			Level: n.Level, Point: Point{n.X, n.Y},
		})
		for _, c := range [2]*tree.Node{n.Left, n.Right} {
			if c != nil {
				out.Edges = append(out.Edges, Segment{
					From: Point{n.X, n.Y + TreeNodeRadius},
					To:   Point{c.X, c.Y - TreeNodeRadius},
				})
			}
		}
		return true
	})
	return out
}

// TreeSimple lays out an in-order node list without reconstructed links.
// The middle element of each range is placed and the halves are split left
// and right with a spread damped by [SimpleDamping] per level.
func TreeSimple(entries snapshot.NodeList) TreeLayout {
	out := TreeLayout{Radius: TreeNodeRadius}

	var place func(es snapshot.NodeList, p Point, level int, spread float64)
	place = func(es snapshot.NodeList, p Point, level int, spread float64) {
		if len(es) == 0 {
			return
		}
		mid := len(es) / 2
		e := es[mid]
		out.Nodes = append(out.Nodes, TreeNode{
			Value: e.Value, Height: e.Height, Balance: e.Balance,
			Level: level, Point: p,
		})

		spread *= SimpleDamping
		halves := [2]snapshot.NodeList{es[:mid], es[mid+1:]}
		for side, half := range halves {
			if len(half) == 0 {
				continue
			}
			dx := -spread
			if side == 1 {
				dx = spread
			}
			child := p.Add(dx, TreeLevelHeight)
			out.Edges = append(out.Edges, Segment{
				From: p.Add(0, TreeNodeRadius),
				To:   child.Add(0, -TreeNodeRadius),
			})
			place(half, child, level+1, spread)
		}
	}
	place(entries, Point{TreeRootX, SimpleRootY}, 0, SimpleSpread)
	return out
}
