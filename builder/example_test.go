// SPDX-License-Identifier: MIT
package builder_test

import (
	"fmt"

	"github.com/katalvlaran/gaussnet/builder"
)

// ExampleChain builds a three-state autoregression whose middle state is
// observed, and reports how the submodel partitions it.
func ExampleChain() {
	sm, net, err := builder.BuildSubmodel(nil, nil, builder.Chain("x", 3, 1, 1))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("nodes:", net.Len(), "dim:", sm.Dim())
	for _, n := range sm.Changeable() {
		fmt.Println("changeable:", n.ID())
	}
	// Output:
	// nodes: 5 dim: 3
	// changeable: x0002
}

// ExampleExcelColumnIDFn prints the first identifiers of the spreadsheet scheme.
func ExampleExcelColumnIDFn() {
	for _, i := range []int{0, 25, 26, 27} {
		fmt.Print(builder.ExcelColumnIDFn(i), " ")
	}
	fmt.Println()
	// Output:
	// A Z AA AB
}
