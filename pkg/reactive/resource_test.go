package reactive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GhostKellz/ripple/pkg/reactive"
)

func TestResourceFetchesOnCreateAndRefetchesOnSourceChange(t *testing.T) {
	rt := reactive.NewRuntime()
	src := reactive.NewSignal(rt, "a")
	calls := 0

	r, err := reactive.CreateResource(rt, src, func(s string) (string, error) {
		calls++
		return s + "!", nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	st := r.Peek()
	require.Equal(t, reactive.StatusReady, st.Status)
	require.Equal(t, "a!", st.Value)

	require.NoError(t, src.Set("b"))
	require.Equal(t, 2, calls)
	st = r.Peek()
	require.Equal(t, reactive.StatusReady, st.Status)
	require.Equal(t, "b!", st.Value)
}

func TestResourceFailedStateCarriesError(t *testing.T) {
	rt := reactive.NewRuntime()
	src := reactive.NewSignal(rt, 1)
	boom := assertErr("fetch failed")

	r, err := reactive.CreateResource(rt, src, func(int) (int, error) {
		return 0, boom
	})
	require.NoError(t, err, "fetcher errors populate Failed state, not propagate as a Go error")
	st := r.Peek()
	require.Equal(t, reactive.StatusFailed, st.Status)
	require.ErrorIs(t, st.Err, boom)
}

// Property 7 — the suspense boundary's pending counter equals the number of
// in-flight resource fetches registered against it at any observation point.
func TestSuspenseBoundaryCounterMatchesInFlightResources(t *testing.T) {
	rt := reactive.NewRuntime()
	boundary := reactive.NewSuspenseBoundary(rt)

	guard := boundary.Enter()
	src := reactive.NewSignal(rt, 1)
	r, err := reactive.CreateResource(rt, src, func(v int) (int, error) {
		return v * 2, nil
	})
	require.NoError(t, err)
	guard.Release()

	// The fetcher in this implementation runs synchronously inside the
	// effect, so by the time CreateResource returns the increment and
	// decrement have already both happened: the counter is back at zero.
	require.Equal(t, uint64(0), boundary.PendingSignal().Peek())

	r.Dispose()
	require.Equal(t, uint64(0), boundary.PendingSignal().Peek())
}

func TestResourceDisposeDecrementsRegisteredSuspense(t *testing.T) {
	rt := reactive.NewRuntime()
	boundary := reactive.NewSuspenseBoundary(rt)
	guard := boundary.Enter()
	src := reactive.NewSignal(rt, 1)

	r, err := reactive.CreateResource(rt, src, func(v int) (int, error) {
		return v, nil
	})
	require.NoError(t, err)
	guard.Release()
	require.Equal(t, uint64(0), boundary.PendingSignal().Peek())

	r.Dispose()
	require.Equal(t, uint64(0), boundary.PendingSignal().Peek(), "dispose must not under/overflow an already-settled counter")
}
