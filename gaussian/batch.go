// SPDX-License-Identifier: MIT

package gaussian

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/gaussnet/model"
)

// Query is one Conditional request of a batch.
type Query struct {
	Nodes    []model.Node
	Evidence []model.Node
}

// Conditionals answers independent queries in parallel; they share the cached
// joint factor and block factorizations. Results are in query order. The
// first failure cancels the remaining queries and is returned with its index.
func (s *Submodel) Conditionals(ctx context.Context, queries []Query) ([]*Conditional, error) {
	if _, err := s.current(); err != nil {
		return nil, err
	}
	out := make([]*Conditional, len(queries))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, q := range queries {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			c, err := s.Conditional(q.Nodes, q.Evidence)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
