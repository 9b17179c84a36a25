package render_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GhostKellz/ripple/pkg/host"
	"github.com/GhostKellz/ripple/pkg/render"
	"github.com/GhostKellz/ripple/pkg/rerr"
	"github.com/GhostKellz/ripple/pkg/template"
)

// Scenario 5 — mount with island.
func TestScenarioMountWithIsland(t *testing.T) {
	fh := newFakeHost()
	root := fh.NewRoot("root") // parent=1, matching the scenario's parent id

	plan := compile(t, `<!--island:hero--><div>Hello {{name}}</div><!--/island-->`)
	prog, err := render.Build(plan)
	require.NoError(t, err)

	result, err := render.Mount(prog, fh, root, []string{"Ripple"})
	require.NoError(t, err)

	divID, ok := result.NodeForHydrationID(1)
	require.True(t, ok)
	require.Equal(t, "div", fh.nodes[divID].tag)
	require.Equal(t, "1", fh.nodes[divID].attrs["data-hid"])
	require.Equal(t, root, fh.nodes[divID].parent)

	require.Len(t, fh.nodes[divID].children, 2)
	helloText := fh.nodes[divID].children[0]
	rippleText := fh.nodes[divID].children[1]
	require.Equal(t, "Hello ", fh.nodes[helloText].text)
	require.Equal(t, "Ripple", fh.nodes[rippleText].text)

	require.Equal(t, []host.NodeID{rippleText}, result.DynamicNodes)
	require.Equal(t, []render.IslandRecord{{Name: "hero", Parent: root, StartSlot: 0, EndSlot: 1}}, result.Islands)
}

func TestMountMismatchedValuesFails(t *testing.T) {
	fh := newFakeHost()
	root := fh.NewRoot("root")
	plan := compile(t, `<div>{{name}}</div>`)
	prog, err := render.Build(plan)
	require.NoError(t, err)

	_, err = render.Mount(prog, fh, root, nil)
	require.ErrorIs(t, err, rerr.ErrMismatchedValues)
}

func TestMountPortalMissingTargetFails(t *testing.T) {
	fh := newFakeHost()
	root := fh.NewRoot("root")
	plan := compile(t, `<!--portal:nowhere--><span></span><!--/portal-->`)
	prog, err := render.Build(plan)
	require.NoError(t, err)

	_, err = render.Mount(prog, fh, root, nil)
	require.ErrorIs(t, err, rerr.ErrMissingNode)
}

func TestMountPortalRetargetsChildren(t *testing.T) {
	fh := newFakeHost()
	root := fh.NewRoot("root")
	modalRoot := fh.RegisterPortalTarget("modal-root")

	plan := compile(t, `<div>before</div><!--portal:modal-root--><span>inside</span><!--/portal--><div>after</div>`)
	prog, err := render.Build(plan)
	require.NoError(t, err)

	result, err := render.Mount(prog, fh, root, nil)
	require.NoError(t, err)

	require.Len(t, fh.nodes[root].children, 2) // "before" div and "after" div, portal content excluded
	require.Len(t, fh.nodes[modalRoot].children, 1)
	require.Equal(t, []render.PortalRecord{{Target: "modal-root", Node: modalRoot, StartSlot: 0, EndSlot: 0}}, result.Portals)
}

func TestMountSuspenseWithoutFallback(t *testing.T) {
	fh := newFakeHost()
	root := fh.NewRoot("root")
	plan := compile(t, `<!--suspense:start profile-->{{x}}<!--/suspense-->`)
	prog, err := render.Build(plan)
	require.NoError(t, err)

	result, err := render.Mount(prog, fh, root, []string{"v"})
	require.NoError(t, err)
	require.Equal(t, []render.SuspenseRecord{{Name: "profile", MainStartSlot: 0, MainEndSlot: 1, FallbackStartSlot: 1, FallbackEndSlot: 1}}, result.Suspense)
}

func TestMountSuspenseWithFallback(t *testing.T) {
	fh := newFakeHost()
	root := fh.NewRoot("root")
	plan := compile(t, `<!--suspense:start profile-->{{a}}<!--suspense:fallback-->{{b}}<!--/suspense-->`)
	prog, err := render.Build(plan)
	require.NoError(t, err)

	result, err := render.Mount(prog, fh, root, []string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, []render.SuspenseRecord{{Name: "profile", MainStartSlot: 0, MainEndSlot: 1, FallbackStartSlot: 1, FallbackEndSlot: 2}}, result.Suspense)
}

func TestMountEmptyTextProducesNoCreateTextCall(t *testing.T) {
	// A self-closing element followed immediately by a closing tag leaves
	// no text run between them: Build never even emits a text op here, so
	// no create_text("") call is possible (Mount also skips any empty text
	// op it is given).
	fh := newFakeHost()
	root := fh.NewRoot("root")
	plan := compile(t, `<div><br/></div>`)
	prog, err := render.Build(plan)
	require.NoError(t, err)

	before := fh.next
	_, err = render.Mount(prog, fh, root, nil)
	require.NoError(t, err)
	// div + br only: two CreateElement calls, zero CreateText calls.
	require.Equal(t, host.NodeID(2), fh.next-before)
}

func TestMountRawStackUnderflow(t *testing.T) {
	fh := newFakeHost()
	root := fh.NewRoot("root")
	prog := &render.Program{Ops: []render.RenderOp{{Kind: render.OpCloseElement, Tag: "div"}}}

	_, err := render.Mount(prog, fh, root, nil)
	require.ErrorIs(t, err, rerr.ErrStackUnderflow)
}

// panicOnCreateElementHost wraps fakeHost but panics from CreateElement,
// simulating a misbehaving embedder host implementation.
type panicOnCreateElementHost struct {
	*fakeHost
}

func (panicOnCreateElementHost) CreateElement(tag string) host.NodeID {
	panic("boom: host.CreateElement exploded")
}

func TestMountRecoversHostPanicAsAllocationFailed(t *testing.T) {
	fh := &panicOnCreateElementHost{fakeHost: newFakeHost()}
	root := fh.NewRoot("root")
	plan := compile(t, `<div>hi</div>`)
	prog, err := render.Build(plan)
	require.NoError(t, err)

	_, err = render.Mount(prog, fh, root, nil)
	require.ErrorIs(t, err, rerr.ErrAllocationFailed)
}

func TestTemplateRoundTripScenario(t *testing.T) {
	// Scenario 4 — template split, followed by Render of the compiled plan.
	plan, err := template.Compile(`<div class="greeting">Hello {{ name }}! {{title}}</div>`)
	require.NoError(t, err)
	require.Equal(t, []string{`<div class="greeting">Hello `, "! ", "</div>"}, plan.StaticParts)
	require.Equal(t, []string{"name", "title"}, plan.Placeholders)

	rendered, err := template.Render(plan, []string{"Ripple", "v1"})
	require.NoError(t, err)
	require.Equal(t, `<div class="greeting">Hello Ripple! v1</div>`, rendered)
}
