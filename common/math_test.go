package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func finite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}

func TestLookAtBasisDegenerate(t *testing.T) {
	tests := []struct {
		name        string
		eye, target mgl32.Vec3
	}{
		{"eye equals target", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 0}},
		{"looking straight down", mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, 0, 0}},
		{"looking straight up", mgl32.Vec3{0, -5, 0}, mgl32.Vec3{0, 0, 0}},
		{"regular", mgl32.Vec3{3, 2, 1}, mgl32.Vec3{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			side, up, forward := LookAtBasis(tt.eye, tt.target, WorldUp)
			for _, v := range []mgl32.Vec3{side, up, forward} {
				assert.True(t, finite(v), "basis vector %v is not finite", v)
				assert.InDelta(t, 1, v.Len(), 1e-5)
			}
			q := LookAtQuat(tt.eye, tt.target, WorldUp)
			assert.InDelta(t, 1, q.Len(), 1e-5)
		})
	}
}

func TestLookAtQuatIdentityAlongZ(t *testing.T) {
	q := LookAtQuat(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0}, WorldUp)
	assert.True(t, q.ApproxEqualThreshold(mgl32.QuatIdent(), 1e-5) ||
		q.Scale(-1).ApproxEqualThreshold(mgl32.QuatIdent(), 1e-5))
}

func TestLookAtMatchesMathgl(t *testing.T) {
	eye := mgl32.Vec3{4, 3, 8}
	center := mgl32.Vec3{1, 0, -2}
	got := LookAt(eye, center, WorldUp)
	want := mgl32.LookAtV(eye, center, WorldUp)
	assert.True(t, got.ApproxEqualThreshold(want, 1e-5), "got %v want %v", got, want)
}

func TestLookAtCoincidentIsIdentity(t *testing.T) {
	p := mgl32.Vec3{1, 1, 1}
	assert.Equal(t, mgl32.Ident4(), LookAt(p, p, WorldUp))
}

func TestNormalMatrix(t *testing.T) {
	model := mgl32.Translate3D(5, 6, 7).Mul4(mgl32.Scale3D(2, 4, 8))
	n := NormalMatrix(model)
	want := mgl32.Diag3(mgl32.Vec3{0.5, 0.25, 0.125})
	assert.True(t, n.ApproxEqualThreshold(want, 1e-6), "got %v", n)
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))
	assert.Len(t, SliceToBytes([]float32{1, 2, 3}), 12)
	assert.Len(t, SliceToBytes([]uint16{1, 2, 3}), 6)
}
