package reactive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GhostKellz/ripple/pkg/reactive"
)

// Scenario 3 — batch coalesces multiple writes into a single re-run.
func TestScenarioBatchCoalesces(t *testing.T) {
	rt := reactive.NewRuntime()
	c := reactive.NewSignal(rt, 0)
	count := 0

	_, err := reactive.CreateEffect(rt, func() (reactive.Cleanup, error) {
		count++
		c.Get()
		return nil, nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, c.Set(1))
	require.Equal(t, 2, count)

	err = rt.Batch(func() error {
		if err := c.Set(2); err != nil {
			return err
		}
		return c.Set(3)
	})
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.Equal(t, 3, c.Peek())
}

func TestUntrackedSuppressesDependency(t *testing.T) {
	rt := reactive.NewRuntime()
	s := reactive.NewSignal(rt, 1)
	runs := 0

	_, err := reactive.CreateEffect(rt, func() (reactive.Cleanup, error) {
		runs++
		rt.Untracked(func() {
			s.Get()
		})
		return nil, nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, runs)

	require.NoError(t, s.Set(2))
	require.Equal(t, 1, runs, "untracked read must not subscribe")
}

func TestNestedBatchDefersUntilOutermostEnds(t *testing.T) {
	rt := reactive.NewRuntime()
	s := reactive.NewSignal(rt, 0)
	runs := 0
	_, err := reactive.CreateEffect(rt, func() (reactive.Cleanup, error) {
		runs++
		s.Get()
		return nil, nil
	})
	require.NoError(t, err)

	err = rt.Batch(func() error {
		return rt.Batch(func() error {
			if err := s.Set(1); err != nil {
				return err
			}
			return s.Set(2)
		})
	})
	require.NoError(t, err)
	require.Equal(t, 2, runs)
}
