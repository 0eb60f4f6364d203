package transform

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedViewer mgl32.Mat4

func (v fixedViewer) WorldInverseMatrix() mgl32.Mat4 { return mgl32.Mat4(v) }

func translation(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}

func TestUpdateMatrixChainComposition(t *testing.T) {
	g := NewGraph()
	a := g.NewObject()
	b := g.NewObject()
	c := g.NewObject()
	a.SetPosition(1, 0, 0)
	b.SetPosition(0, 2, 0)
	c.SetPosition(0, 0, 3)
	require.NoError(t, b.SetParent(a))
	require.NoError(t, c.SetParent(b))

	g.UpdateMatrices(a.ID(), nil)

	assert.True(t, translation(c.ModelMatrix()).ApproxEqualThreshold(mgl32.Vec3{1, 2, 3}, 1e-6))
	assert.Equal(t, b.ModelMatrix(), c.LocalMatrix())
	assert.Equal(t, mgl32.Ident4(), c.ModelViewMatrix())
}

func TestUpdateMatrixComposesTRS(t *testing.T) {
	g := NewGraph()
	o := g.NewObject()
	o.SetPosition(1, 2, 3)
	o.SetRotation(0, float32(math.Pi/2), 0)
	o.SetScale(2, 2, 2)

	o.UpdateMatrix(nil)

	want := mgl32.Translate3D(1, 2, 3).
		Mul4(mgl32.HomogRotate3DY(float32(math.Pi / 2))).
		Mul4(mgl32.Scale3D(2, 2, 2))
	assert.True(t, o.ModelMatrix().ApproxEqualThreshold(want, 1e-5), "got %v", o.ModelMatrix())
}

func TestUpdateMatrixModelView(t *testing.T) {
	g := NewGraph()
	o := g.NewObject()
	o.SetPosition(0, 0, -5)
	view := mgl32.Translate3D(0, 0, -10)

	o.UpdateMatrix(fixedViewer(view))

	assert.True(t, translation(o.ModelViewMatrix()).ApproxEqualThreshold(mgl32.Vec3{0, 0, -15}, 1e-6))
}

func TestUpdateMatrixManual(t *testing.T) {
	g := NewGraph()
	o := g.NewObject()
	o.SetMatrixAutoUpdate(false)
	manual := mgl32.Translate3D(7, 8, 9)
	o.SetModelMatrix(manual)
	o.SetPosition(1, 1, 1)

	o.UpdateMatrix(nil)

	assert.Equal(t, manual, o.ModelMatrix())
}

func TestLookAtSeedsRotation(t *testing.T) {
	g := NewGraph()
	o := g.NewObject()
	o.SetPosition(0, 0, 0)
	o.LookAt(mgl32.Vec3{0, 0, 0})

	q := o.LookAtQuaternion()
	for _, c := range []float32{q.W, q.V[0], q.V[1], q.V[2]} {
		assert.False(t, math.IsNaN(float64(c)))
	}
	assert.InDelta(t, 1, q.Len(), 1e-5)

	o.SetRotation(0, 0, float32(math.Pi/2))
	o.UpdateMatrix(nil)
	want := q.Mul(mgl32.QuatRotate(float32(math.Pi/2), mgl32.Vec3{0, 0, 1}))
	assert.True(t, o.Quaternion().ApproxEqualThreshold(want, 1e-5))
}

func TestSetParentDetachesFirst(t *testing.T) {
	g := NewGraph()
	a := g.NewObject()
	b := g.NewObject()
	c := g.NewObject()

	require.NoError(t, c.SetParent(a))
	require.NoError(t, c.SetParent(b))

	assert.Empty(t, a.Children())
	require.Len(t, b.Children(), 1)
	assert.Equal(t, c.ID(), b.Children()[0].ID())
	p, ok := c.Parent()
	require.True(t, ok)
	assert.Equal(t, b.ID(), p.ID())
}

func TestSetParentRejectsCycles(t *testing.T) {
	g := NewGraph()
	a := g.NewObject()
	b := g.NewObject()
	require.NoError(t, b.SetParent(a))

	assert.ErrorIs(t, a.SetParent(b), ErrCycle)
	assert.ErrorIs(t, a.SetParent(a), ErrCycle)
	assert.ErrorIs(t, a.SetParent(NewGraph().NewObject()), ErrInvalidNode)
}

func TestUnsetParentTwiceOnRoot(t *testing.T) {
	g := NewGraph()
	a := g.NewObject()
	b := g.NewObject()
	require.NoError(t, b.SetParent(a))

	b.UnsetParent()
	b.UnsetParent()
	a.UnsetParent()

	_, ok := b.Parent()
	assert.False(t, ok)
	assert.Empty(t, a.Children())
	assert.True(t, a.Valid())
	assert.True(t, b.Valid())
}

func TestDisposeDetachesAndOrphansChildren(t *testing.T) {
	g := NewGraph()
	root := g.NewObject()
	mid := g.NewObject()
	leaf := g.NewObject()
	require.NoError(t, mid.SetParent(root))
	require.NoError(t, leaf.SetParent(mid))

	mid.Dispose()

	assert.False(t, mid.Valid())
	assert.Empty(t, root.Children())
	assert.True(t, leaf.Valid())
	_, ok := leaf.Parent()
	assert.False(t, ok)
	assert.Equal(t, 2, g.Len())

	// the freed slot is reused without resurrecting the stale handle
	fresh := g.NewObject()
	assert.Equal(t, mid.ID().index, fresh.ID().index)
	assert.False(t, mid.Valid())
	_, ok = g.Object(mid.ID())
	assert.False(t, ok)

	mid.Dispose()
	mid.SetPosition(1, 1, 1)
	assert.Equal(t, mgl32.Vec3{}, fresh.Position())
}

func TestTraverseParentFirst(t *testing.T) {
	g := NewGraph()
	a := g.NewObject()
	b := g.NewObject()
	c := g.NewObject()
	d := g.NewObject()
	require.NoError(t, b.SetParent(a))
	require.NoError(t, c.SetParent(b))
	require.NoError(t, d.SetParent(a))

	var order []NodeID
	g.Traverse(a.ID(), func(o Object3D) bool {
		order = append(order, o.ID())
		return true
	})

	assert.Equal(t, []NodeID{a.ID(), b.ID(), c.ID(), d.ID()}, order)
}
