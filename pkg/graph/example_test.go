package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/vankamp/pkg/graph"
)

func ExampleReadEdgeList() {
	g, err := graph.ReadEdgeList(strings.NewReader("# triangle\n0 1\n1 2\n2 0\n"))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("vertices:", g.VertexCount())
	fmt.Println("edges:", g.EdgeCount())
	// Output:
	// vertices: 3
	// edges: 3
}

func ExampleReadEdgeList_malformed() {
	_, err := graph.ReadEdgeList(strings.NewReader("0 1\n1 1\n"))
	fmt.Println(err)
	// Output:
	// MALFORMED_INPUT: line 2: self-loop on vertex 1
}
