// SPDX-License-Identifier: MIT

package gaussian

import (
	"fmt"
	"math"
	"time"
)

// DrawConditional samples every changeable member from its joint conditional
// given the current values of the fixed members and writes the draws back.
// Values are written only after the whole draw succeeded; on error no node
// changes. Writing changeable values does not invalidate the factorization.
//
// Errors: ErrSingularSystem and any refresh error.
func (s *Submodel) DrawConditional() (err error) {
	defer s.observe(opDraw, time.Now(), &err)
	if s.changeable.dim == 0 {
		return nil
	}
	cond, err := s.conditional(opDraw, s.changeable, s.fixed)
	if err != nil {
		return err
	}

	s.rngMu.Lock()
	x, err := cond.Sample(s.rng)
	s.rngMu.Unlock()
	if err != nil {
		return gaussianErrorf(opDraw, err)
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return gaussianErrorf(opDraw, fmt.Errorf("%w: non-finite draw at index %d", ErrSingularSystem, i))
		}
	}

	var off int
	for _, e := range s.changeable.entries {
		if err = e.node.SetValue(x[off : off+e.dim]); err != nil {
			return gaussianErrorf(opDraw, err)
		}
		off += e.dim
	}

	return nil
}
