// SPDX-License-Identifier: MIT

package gaussian

import "gonum.org/v1/gonum/mat"

// couplingBlock returns the (child, parent) block of the joint factor,
// −R_c·K_cp, where R_c is the child's local factor and K_cp the accumulated
// coefficient of the parent in the child's mean. A diagonal R_c scales rows;
// a dense one is applied as a triangular multiply.
func couplingBlock(f localFactor, k *mat.Dense) *mat.Dense {
	var out mat.Dense
	if f.diagonal() {
		out.Apply(func(i, _ int, v float64) float64 { return -f.diag[i] * v }, k)
		return &out
	}
	out.Mul(f.upper, k)
	out.Scale(-1, &out)

	return &out
}
