package scene

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/zeuphys/internal/core/geom"
	"github.com/zeusync/zeuphys/internal/core/shape"
	"github.com/zeusync/zeuphys/internal/core/systems/physics"
)

type fakeBody struct {
	id    uuid.UUID
	t     geom.Transform
	v     geom.Vector
	alive bool
}

func newFakeBody(t geom.Transform) *fakeBody {
	return &fakeBody{id: uuid.New(), t: t, alive: true}
}

func (b *fakeBody) ID() uuid.UUID             { return b.id }
func (b *fakeBody) Transform() geom.Transform { return b.t }
func (b *fakeBody) Velocity() geom.Vector     { return b.v }
func (b *fakeBody) IsAlive() bool             { return b.alive }

func TestNode_ComposesParentTransform(t *testing.T) {
	reg := NewRegistry()
	body := newFakeBody(geom.NewRotation(math.Pi/2, geom.V(10, 0)))
	body.v = geom.V(1, 2)
	reg.Track(body)

	n := reg.NewNode()
	n.SetRelativeTransform(geom.NewTranslation(geom.V(1, 0)))
	assert.Equal(t, geom.V(1, 0), n.Transform().Origin())

	require.NoError(t, n.SetParent(body))
	parent, ok := n.Parent()
	require.True(t, ok)
	assert.Same(t, body, parent)

	assert.True(t, n.Transform().Origin().ApproxEqual(geom.V(10, 1), 1e-12))
	assert.Equal(t, geom.V(1, 2), n.Velocity())

	// The parent's latest pose is used without any synchronisation.
	body.t = geom.NewTranslation(geom.V(-3, -3))
	assert.True(t, n.Transform().Origin().ApproxEqual(geom.V(-2, -3), 1e-12))

	require.NoError(t, n.SetParent(nil))
	assert.Equal(t, geom.V(1, 0), n.Transform().Origin())
	assert.Equal(t, geom.Zero, n.Velocity())
}

func TestNode_ChainOfNodes(t *testing.T) {
	reg := NewRegistry()
	body := newFakeBody(geom.NewTranslation(geom.V(5, 5)))
	reg.Track(body)

	arm := reg.NewNode()
	arm.SetRelativeTransform(geom.NewTranslation(geom.V(0, 2)))
	require.NoError(t, arm.SetParent(body))

	hand := reg.NewNode()
	hand.SetRelativeTransform(geom.NewTranslation(geom.V(1, 0)))
	require.NoError(t, hand.SetParent(arm))

	assert.True(t, hand.Transform().Origin().ApproxEqual(geom.V(6, 7), 1e-12))
}

func TestNode_MissingParent(t *testing.T) {
	reg := NewRegistry()
	body := newFakeBody(geom.NewTranslation(geom.V(5, 5)))
	reg.Track(body)

	n := reg.NewNode()
	n.SetRelativeTransform(geom.NewTranslation(geom.V(1, 1)))
	require.NoError(t, n.SetParent(body))

	body.alive = false
	_, ok := n.Parent()
	assert.False(t, ok)
	assert.Equal(t, geom.V(1, 1), n.Transform().Origin())

	tr, err := n.Resolve()
	require.NoError(t, err)
	assert.Equal(t, geom.V(1, 1), tr.Origin())

	n.SetStrict(true)
	_, err = n.Resolve()
	assert.ErrorIs(t, err, ErrParentGone)
}

func TestNode_RejectsCycles(t *testing.T) {
	reg := NewRegistry()
	a, b, c := reg.NewNode(), reg.NewNode(), reg.NewNode()

	require.NoError(t, b.SetParent(a))
	require.NoError(t, c.SetParent(b))

	assert.ErrorIs(t, a.SetParent(c), ErrCycle)
	assert.ErrorIs(t, a.SetParent(a), ErrCycle)
	assert.Equal(t, uuid.Nil, a.ParentID())
}

func TestNode_WithoutResolver(t *testing.T) {
	n := NewNode(nil)
	assert.ErrorIs(t, n.SetParent(newFakeBody(geom.Identity)), ErrNoResolver)
	assert.Equal(t, geom.Identity, n.Transform())
}

func TestNode_FollowsPhysicsEntity(t *testing.T) {
	w, err := physics.NewWorld()
	require.NoError(t, err)
	e, err := w.CreateEntityBuilder().SetVelocity(geom.V(1, 0)).Build()
	require.NoError(t, err)

	reg := NewRegistry(w)
	n := reg.NewNode()
	n.SetRelativeTransform(geom.NewTranslation(geom.V(0, 1)))
	require.NoError(t, n.SetParent(e))

	_, err = w.Update(1)
	require.NoError(t, err)
	assert.InDelta(t, e.Position().X, n.Transform().Origin().X, 1e-12)
	assert.InDelta(t, 1, n.Transform().Origin().Y, 1e-12)
	assert.Equal(t, e.Velocity(), n.Velocity())

	require.NoError(t, e.Destroy())
	assert.Equal(t, geom.V(0, 1), n.Transform().Origin())
}

type drawCall struct {
	kind  string
	t     geom.Transform
	alpha float64
	depth float64
}

type recordingCanvas struct {
	calls  []drawCall
	images map[string]image.Image
}

func (c *recordingCanvas) Image(name string) (image.Image, error) {
	img, ok := c.images[name]
	if !ok {
		return nil, errors.New("not found")
	}
	return img, nil
}

func (c *recordingCanvas) DrawImage(_ image.Image, t geom.Transform, alpha, depth float64) {
	c.calls = append(c.calls, drawCall{"image", t, alpha, depth})
}

func (c *recordingCanvas) DrawShape(_ shape.Shape, t geom.Transform, _ ShapeStyle, alpha, depth float64) {
	c.calls = append(c.calls, drawCall{"shape", t, alpha, depth})
}

func (c *recordingCanvas) DrawText(_ string, t geom.Transform, _ TextStyle, alpha, depth float64) {
	c.calls = append(c.calls, drawCall{"text", t, alpha, depth})
}

func TestGraphics_DrawAllByDepth(t *testing.T) {
	reg := NewRegistry()
	body := newFakeBody(geom.NewTranslation(geom.V(2, 0)))
	reg.Track(body)

	circle, err := shape.NewCircle(1, geom.Zero)
	require.NoError(t, err)

	sg := NewShapeGraphics(reg, circle, ShapeStyle{Fill: color.White})
	sg.SetDepth(2)
	sg.SetAlpha(0.5)
	require.NoError(t, sg.SetParent(body))

	ig := NewImageGraphics(reg, "crate", 2, 4)
	ig.SetAnchor(geom.V(0.5, 0.5))
	require.NoError(t, ig.SetParent(body))

	tg := NewTextGraphics(reg, "hello", 12, color.Black)
	tg.SetDepth(1)

	c := &recordingCanvas{images: map[string]image.Image{"crate": image.NewRGBA(image.Rect(0, 0, 1, 1))}}
	require.NoError(t, DrawAll(c, sg, ig, tg))

	require.Len(t, c.calls, 3)
	assert.Equal(t, []string{"image", "text", "shape"}, []string{c.calls[0].kind, c.calls[1].kind, c.calls[2].kind})
	assert.Equal(t, 0.5, c.calls[2].alpha)
	assert.Equal(t, geom.V(2, 0), c.calls[2].t.Origin())

	// A centered anchor spreads the 2x4 image evenly around the body origin.
	assert.True(t, c.calls[0].t.OnPoint(geom.Zero).ApproxEqual(geom.V(1, -2), 1e-12))
	assert.True(t, c.calls[0].t.OnPoint(geom.V(1, 1)).ApproxEqual(geom.V(3, 2), 1e-12))
}

func TestGraphics_MissingImage(t *testing.T) {
	ig := NewImageGraphics(NewRegistry(), "missing", 1, 1)
	c := &recordingCanvas{}
	assert.Error(t, ig.Draw(c))
	assert.Empty(t, c.calls)
}
