package tree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/structviz/pkg/snapshot"
)

func TestReconstructSnapshot(t *testing.T) {
	list, err := snapshot.ParseNodeList("[1:0:0,3:1:-1,5:0:0]")
	require.NoError(t, err)
	require.Len(t, list, 3)

	root := Reconstruct(list)
	require.NotNil(t, root)
	assert.Equal(t, 3, root.Value)
	assert.Equal(t, 1, root.Height)
	assert.Equal(t, -1, root.Balance)
	require.NotNil(t, root.Left)
	require.NotNil(t, root.Right)
	assert.Equal(t, 1, root.Left.Value)
	assert.Equal(t, 5, root.Right.Value)
	assert.Nil(t, root.Left.Left)
	assert.Nil(t, root.Right.Right)
}

func TestReconstructEmpty(t *testing.T) {
	assert.Nil(t, Reconstruct(nil))
	assert.Nil(t, Reconstruct(snapshot.NodeList{}))
	assert.Equal(t, 0, Count(nil))
	assert.Equal(t, 0, Depth(nil))
	assert.Empty(t, InOrder(nil))
}

func TestReconstructEvenLength(t *testing.T) {
	root := Reconstruct(entries(10, 20, 30, 40))
	assert.Equal(t, 20, root.Value)
	assert.Equal(t, 10, root.Left.Value)
	assert.Equal(t, 30, root.Right.Value)
	assert.Equal(t, 40, root.Right.Right.Value)
}

func TestReconstructProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 1; n <= 64; n++ {
		seen := map[int]bool{}
		var vals []int
		for len(vals) < n {
			v := rng.Intn(1000) - 500
			if !seen[v] {
				seen[v] = true
				vals = append(vals, v)
			}
		}
		sort.Ints(vals)

		root := Reconstruct(entries(vals...))
		require.Equal(t, n, Count(root))
		require.Equal(t, vals, InOrder(root))

		// Balanced: depth is ceil(log2(n+1)).
		want := 0
		for 1<<want < n+1 {
			want++
		}
		require.Equal(t, want, Depth(root), "n=%d", n)
	}
}

func TestReconstructUnsortedStillBuilds(t *testing.T) {
	root := Reconstruct(entries(5, 1, 9, 2))
	assert.Equal(t, 4, Count(root))
	assert.Equal(t, []int{5, 1, 9, 2}, InOrder(root))
}

func TestWalkStops(t *testing.T) {
	root := Reconstruct(entries(1, 2, 3, 4, 5, 6, 7))
	var visited []int
	Walk(root, func(n *Node) bool {
		visited = append(visited, n.Value)
		return len(visited) < 3
	})
	assert.Equal(t, []int{4, 2, 1}, visited)
}

func TestUnbalanced(t *testing.T) {
	for _, tt := range []struct {
		balance int
		want    bool
	}{{-2, true}, {-1, false}, {0, false}, {1, false}, {2, true}} {
		assert.Equal(t, tt.want, (&Node{Balance: tt.balance}).Unbalanced(), "balance %d", tt.balance)
	}
}

func entries(vals ...int) snapshot.NodeList {
	out := make(snapshot.NodeList, len(vals))
	for i, v := range vals {
		out[i] = snapshot.NodeEntry{Value: v, Height: 1}
	}
	return out
}
