package reactive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GhostKellz/ripple/pkg/reactive"
)

func TestContextStackIsLIFO(t *testing.T) {
	rt := reactive.NewRuntime()

	g1 := reactive.PushContext(rt, "outer")
	v, ok := reactive.UseContext[string](rt)
	require.True(t, ok)
	require.Equal(t, "outer", v)

	g2 := reactive.PushContext(rt, "inner")
	v, ok = reactive.UseContext[string](rt)
	require.True(t, ok)
	require.Equal(t, "inner", v, "use must return the topmost matching entry")

	g2.Release()
	v, ok = reactive.UseContext[string](rt)
	require.True(t, ok)
	require.Equal(t, "outer", v, "releasing the top must expose the entry beneath it")

	g1.Release()
	_, ok = reactive.UseContext[string](rt)
	require.False(t, ok)
}

func TestContextReleaseOutOfOrderPanics(t *testing.T) {
	rt := reactive.NewRuntime()
	g1 := reactive.PushContext(rt, 1)
	_ = reactive.PushContext(rt, 2)

	require.Panics(t, func() { g1.Release() })
}

func TestContextUseMissingReturnsZeroValue(t *testing.T) {
	rt := reactive.NewRuntime()
	v, ok := reactive.UseContext[int](rt)
	require.False(t, ok)
	require.Equal(t, 0, v)
}

type themeA struct{ name string }
type themeB struct{ name string }

func TestContextKeyedByType(t *testing.T) {
	rt := reactive.NewRuntime()
	reactive.PushContext(rt, themeA{name: "a"})
	reactive.PushContext(rt, themeB{name: "b"})

	a, ok := reactive.UseContext[themeA](rt)
	require.True(t, ok)
	require.Equal(t, "a", a.name)

	b, ok := reactive.UseContext[themeB](rt)
	require.True(t, ok)
	require.Equal(t, "b", b.name)
}
