package native

import (
	"fmt"

	"github.com/matzehuels/structviz/pkg/backend"
	"github.com/matzehuels/structviz/pkg/snapshot"
)

type avlNode struct {
	value       int
	height      int
	left, right *avlNode
}

// avl is an AVL tree that remembers the last rotation it performed.
// Leaf height is 1, an absent child has height 0.
type avl struct {
	handle
	root         *avlNode
	lastRotation string
}

func newAVL() *avl {
	return &avl{lastRotation: backend.NoRotation}
}

func height(n *avlNode) int {
	if n == nil {
		return 0
	}
	return n.height
}

func balance(n *avlNode) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

func fix(n *avlNode) {
	n.height = 1 + max(height(n.left), height(n.right))
}

func (t *avl) rotateRight(y *avlNode) *avlNode {
	t.lastRotation = fmt.Sprintf("Right rotation on node %d", y.value)
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func (t *avl) rotateLeft(x *avlNode) *avlNode {
	t.lastRotation = fmt.Sprintf("Left rotation on node %d", x.value)
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func (t *avl) insert(n *avlNode, v int) *avlNode {
	if n == nil {
		return &avlNode{value: v, height: 1}
	}
	switch {
	case v < n.value:
		n.left = t.insert(n.left, v)
	case v > n.value:
		n.right = t.insert(n.right, v)
	default:
		return n
	}

	fix(n)
	b := balance(n)
	switch {
	case b > 1 && v < n.left.value:
		return t.rotateRight(n)
	case b < -1 && v > n.right.value:
		return t.rotateLeft(n)
	case b > 1 && v > n.left.value:
		label := fmt.Sprintf("Left-Right rotation (LR) on node %d", n.value)
		n.left = t.rotateLeft(n.left)
		n = t.rotateRight(n)
		t.lastRotation = label
		return n
	case b < -1 && v < n.right.value:
		label := fmt.Sprintf("Right-Left rotation (RL) on node %d", n.value)
		n.right = t.rotateRight(n.right)
		n = t.rotateLeft(n)
		t.lastRotation = label
		return n
	}
	return n
}

func (t *avl) remove(n *avlNode, v int) *avlNode {
	if n == nil {
		return nil
	}
	switch {
	case v < n.value:
		n.left = t.remove(n.left, v)
	case v > n.value:
		n.right = t.remove(n.right, v)
	default:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}
		n.value = succ.value
		n.right = t.remove(n.right, succ.value)
	}

	fix(n)
	b := balance(n)
	switch {
	case b > 1 && balance(n.left) >= 0:
		return t.rotateRight(n)
	case b > 1:
		label := fmt.Sprintf("Left-Right rotation (LR) on node %d", n.value)
		n.left = t.rotateLeft(n.left)
		n = t.rotateRight(n)
		t.lastRotation = label
		return n
	case b < -1 && balance(n.right) <= 0:
		return t.rotateLeft(n)
	case b < -1:
		label := fmt.Sprintf("Right-Left rotation (RL) on node %d", n.value)
		n.right = t.rotateRight(n.right)
		n = t.rotateLeft(n)
		t.lastRotation = label
		return n
	}
	return n
}

func (t *avl) Insert(value int) {
	t.lastRotation = backend.NoRotation
	t.root = t.insert(t.root, value)
}

func (t *avl) Remove(value int) {
	t.lastRotation = backend.NoRotation
	t.root = t.remove(t.root, value)
}

func (t *avl) Clear() {
	t.root = nil
	t.lastRotation = backend.NoRotation
}

func (t *avl) Tree() string {
	var list snapshot.NodeList
	var walk func(n *avlNode)
	walk = func(n *avlNode) {
		if n == nil {
			return
		}
		walk(n.left)
		list = append(list, snapshot.NodeEntry{Value: n.value, Height: n.height, Balance: balance(n)})
		walk(n.right)
	}
	walk(t.root)
	return snapshot.FormatNodeList(list)
}

func (t *avl) LastRotation() string { return t.lastRotation }

var _ backend.Tree = (*avl)(nil)
