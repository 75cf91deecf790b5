package layout_test

import (
	"fmt"

	"github.com/matzehuels/structviz/pkg/layout"
)

func ExampleHeap() {
	l := layout.Heap([]int{10, 20, 30})
	for _, n := range l.Nodes {
		fmt.Printf("%d at (%.0f,%.0f) level %d\n", n.Value, n.X, n.Y, n.Level)
	}
	fmt.Println(len(l.Edges), "edges")
	// Output:
	// 10 at (400,150) level 0
	// 20 at (350,230) level 1
	// 30 at (450,230) level 1
	// 2 edges
}
