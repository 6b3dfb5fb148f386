// SPDX-License-Identifier: MIT
package gaussian

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gaussnet/model"
)

// cacheNet is b ~ N(a + 2·w + 0.5, 1) with a ~ N(0, 1) and w a constant input.
type cacheNet struct {
	a, b, w *model.Stochastic
	lc      *model.LinearCombination
	sm      *Submodel
	m       *Collector
}

func newCacheNet(t *testing.T, opts ...Option) *cacheNet {
	t.Helper()
	var (
		n   cacheNet
		err error
	)
	n.a, err = model.NewNormal("a", 1, model.MeanConst(0), []float64{1})
	require.NoError(t, err)
	n.w, err = model.NewValue("w", []float64{1})
	require.NoError(t, err)
	n.lc, err = model.NewLinearCombination("lc", 1, model.Scale(1, n.a), model.Scale(2, n.w), model.Offset(0.5))
	require.NoError(t, err)
	n.b, err = model.NewNormal("b", 1, model.MeanOf(n.lc), []float64{1})
	require.NoError(t, err)
	n.m = NewCollector()
	n.sm, err = New([]model.Node{n.a, n.b}, append(opts, WithMetrics(n.m))...)
	require.NoError(t, err)

	return &n
}

func (n *cacheNet) refreshes(kind string) float64 {
	return testutil.ToFloat64(n.m.refreshes.WithLabelValues(kind))
}

func (n *cacheNet) factorizations(role string) float64 {
	return testutil.ToFloat64(n.m.factorizations.WithLabelValues(role, statusOK))
}

func (n *cacheNet) query(t *testing.T) []float64 {
	t.Helper()
	c, err := n.sm.FullConditional(n.b)
	require.NoError(t, err)

	return c.Mean()
}

func TestState_RefreshKinds(t *testing.T) {
	n := newCacheNet(t)
	assert.Equal(t, 1.0, n.refreshes(refreshParams))
	assert.Equal(t, 0.0, n.refreshes(refreshValues))
	assert.Equal(t, 1.0, n.factorizations(blockChangeable))

	// E[b | a=0] = 2·1 + 0.5.
	assert.InDelta(t, 2.5, n.query(t)[0], 1e-12)
	assert.Equal(t, 1.0, n.refreshes(refreshParams), "no mutation, no refresh")

	require.NoError(t, n.b.SetValue([]float64{7}))
	n.query(t)
	assert.Equal(t, 1.0, n.refreshes(refreshParams), "changeable values are not inputs")
	assert.Equal(t, 0.0, n.refreshes(refreshValues))

	require.NoError(t, n.w.SetValue([]float64{3}))
	assert.InDelta(t, 6.5, n.query(t)[0], 1e-12)
	assert.Equal(t, 1.0, n.refreshes(refreshValues))
	assert.Equal(t, 1.0, n.factorizations(blockChangeable), "value refresh keeps factorizations")

	require.NoError(t, n.lc.SetOffset(2, 1.5))
	assert.InDelta(t, 7.5, n.query(t)[0], 1e-12)
	assert.Equal(t, 2.0, n.refreshes(refreshValues))

	require.NoError(t, n.b.SetPrecision(model.DiagPrecision(4)))
	n.query(t)
	assert.Equal(t, 2.0, n.refreshes(refreshParams))
	assert.Equal(t, 2.0, n.factorizations(blockChangeable))

	require.NoError(t, n.lc.SetCoefficient(0, mat.NewDense(1, 1, []float64{3})))
	tau, err := n.sm.DensePrecision()
	require.NoError(t, err)
	assert.Equal(t, 3.0, n.refreshes(refreshParams))
	// Order (b, a): τ = [[4, −12], [−12, 1 + 36]].
	assert.InDelta(t, -12, tau.At(0, 1), 1e-12)
	assert.InDelta(t, 37, tau.At(1, 1), 1e-12)
}

func TestState_SolverCacheByGroup(t *testing.T) {
	n := newCacheNet(t)
	_, err := n.sm.Prior(n.a, n.b)
	require.NoError(t, err)
	_, err = n.sm.Prior(n.a, n.b)
	require.NoError(t, err)
	assert.Equal(t, 1.0, n.factorizations(blockQuery), "same block, one factorization")

	_, err = n.sm.Prior(n.b, n.a)
	require.NoError(t, err)
	assert.Equal(t, 2.0, n.factorizations(blockQuery), "blocks are keyed in query order")

	_, err = n.sm.Prior(n.b)
	require.NoError(t, err)
	assert.Equal(t, 1.0, n.factorizations(blockMarginal))
}

func TestState_JoinedStaleRefreshIsRetried(t *testing.T) {
	n := newCacheNet(t)
	stale, err := n.sm.current()
	require.NoError(t, err)

	// An in-flight refresh that read its stamps before the mutation below.
	started, release := make(chan struct{}), make(chan struct{})
	go n.sm.sf.Do(refreshKey, func() (any, error) {
		close(started)
		<-release
		return stale, nil
	})
	<-started
	require.NoError(t, n.w.SetValue([]float64{3}))

	done := make(chan *state, 1)
	go func() {
		st, err := n.sm.current()
		assert.NoError(t, err)
		done <- st
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)

	st := <-done
	require.NotNil(t, st)
	assert.Equal(t, n.sm.valueStamp(), st.valueStamp)
	assert.InDelta(t, 6.5, n.query(t)[0], 1e-12)
}

func TestState_MutationsVisibleUnderConcurrentQueries(t *testing.T) {
	n := newCacheNet(t)
	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				_, err := n.sm.Prior(n.b)
				assert.NoError(t, err)
			}
		}()
	}

	for k := 1; k <= 50; k++ {
		w := float64(k)
		require.NoError(t, n.w.SetValue([]float64{w}))
		assert.InDelta(t, 2*w+0.5, n.query(t)[0], 1e-12, "w = %v", w)

		require.NoError(t, n.b.SetPrecision(model.DiagPrecision(w)))
		c, err := n.sm.FullConditional(n.b)
		require.NoError(t, err)
		cov, err := c.Covariance()
		require.NoError(t, err)
		assert.InDelta(t, 1/w, cov.At(0, 0), 1e-12, "tau = %v", w)
	}
	close(stop)
	wg.Wait()
}

func TestCollector_Queries(t *testing.T) {
	n := newCacheNet(t)
	n.query(t)
	_, err := n.sm.Posterior()
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(n.m.queries.WithLabelValues(opFullCond, statusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(n.m.queries.WithLabelValues(opPosterior, statusError)))
	assert.Positive(t, testutil.ToFloat64(n.m.factorNNZ.WithLabelValues("joint_factor")))
	assert.Equal(t, 2, testutil.CollectAndCount(n.m.queryDuration))
}

func TestCollector_NilSafe(t *testing.T) {
	var m *Collector
	assert.NotPanics(t, func() {
		m.recordRefresh(refreshParams)
		m.recordFactorization(blockQuery, nil)
		m.recordQuery(opPrior, time.Now(), nil)
		m.setNNZ("joint_factor", 3)
	})
	assert.Nil(t, m.Registry())
	assert.NotNil(t, NewCollector().Registry())
}

func TestNew_LogsAndWarmup(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	n := newCacheNet(t, WithLogger(log), WithWarmupDraws(2), WithSeed(8))

	out := buf.String()
	assert.Contains(t, out, "submodel built")
	assert.Contains(t, out, "refreshed derived state")
	assert.Contains(t, out, "factored block")
	assert.NotEqual(t, []float64{2.5}, n.b.Value(), "warmup draws move the changeable node")
	assert.Equal(t, 2.0, testutil.ToFloat64(n.m.queries.WithLabelValues(opDraw, statusOK)))
}
