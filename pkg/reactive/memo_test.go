package reactive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GhostKellz/ripple/pkg/reactive"
)

// Scenario 2 — memo squares.
func TestScenarioMemoSquares(t *testing.T) {
	rt := reactive.NewRuntime()
	src := reactive.NewSignal(rt, 10)

	m, err := reactive.NewMemo(rt, func() (int, error) {
		v := src.Get()
		return v * v, nil
	})
	require.NoError(t, err)
	require.Equal(t, 100, m.Get())

	require.NoError(t, src.Set(5))
	require.Equal(t, 25, m.Get())
}

func TestMemoNeverObservesZeroValue(t *testing.T) {
	rt := reactive.NewRuntime()
	m, err := reactive.NewMemo(rt, func() (string, error) {
		return "ready", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ready", m.Peek(), "memo must be computed before NewMemo returns")
}

func TestMemoChaining(t *testing.T) {
	rt := reactive.NewRuntime()
	src := reactive.NewSignal(rt, 2)
	double, err := reactive.NewMemo(rt, func() (int, error) { return src.Get() * 2, nil })
	require.NoError(t, err)
	quad, err := reactive.NewMemo(rt, func() (int, error) { return double.Get() * 2, nil })
	require.NoError(t, err)

	require.Equal(t, 8, quad.Get())
	require.NoError(t, src.Set(3))
	require.Equal(t, 12, quad.Get())
}
