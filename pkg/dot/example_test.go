package dot_test

import (
	"fmt"

	"github.com/efharkin/swc2dot/pkg/dot"
	"github.com/efharkin/swc2dot/pkg/morph"
	"github.com/efharkin/swc2dot/pkg/styles"
	"github.com/efharkin/swc2dot/pkg/swc"
)

func ExampleMarshal() {
	g, err := morph.Build([]swc.Compartment{
		{ID: 1, Kind: swc.KindSoma, Radius: 1.0, Parent: swc.NoParent},
		{ID: 2, Kind: swc.KindDendrite, X: 1, Radius: 0.5, Parent: 1},
		{ID: 3, Kind: swc.KindDendrite, X: 2, Radius: 0.5, Parent: 1},
	})
	if err != nil {
		panic(err)
	}

	fmt.Print(dot.Marshal(g, styles.New()))
	// Output:
	// graph{
	//     {
	//         node [shape=circle,style=filled,fillcolor=black,fontcolor=white];
	//         1;
	//     }
	//     {
	//         node [shape=box,style=filled,fillcolor=lightsteelblue];
	//         2; 3;
	//     }
	//     1 -- {2, 3};
	//     2;
	//     3;
	// }
}
