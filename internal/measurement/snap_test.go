package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// unitSquare is the z=0 square [0,1]x[0,1] split along its diagonal
func unitSquare() *geometry.Mesh {
	return &geometry.Mesh{
		Positions: []geometry.Vector3{v3(0, 0, 0), v3(1, 0, 0), v3(1, 1, 0), v3(0, 1, 0)},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestSnapToVertex(t *testing.T) {
	s := NewSnapper(0.05)

	got, kind := s.Resolve(v3(0.02, 0.01, 0), unitSquare(), geometry.Identity())

	assert.Equal(t, SnapVertex, kind)
	assert.Equal(t, v3(0, 0, 0), got)
}

func TestSnapVertexBeatsCloserEdge(t *testing.T) {
	s := NewSnapper(0.05)

	got, kind := s.Resolve(v3(0.04, 0.001, 0), unitSquare(), geometry.Identity())

	assert.Equal(t, SnapVertex, kind)
	assert.Equal(t, v3(0, 0, 0), got)
}

func TestSnapToEdge(t *testing.T) {
	s := NewSnapper(0.05)

	got, kind := s.Resolve(v3(0.5, 0.03, 0), unitSquare(), geometry.Identity())

	assert.Equal(t, SnapEdge, kind)
	assert.InDelta(t, 0.5, got.X, 1e-12)
	assert.InDelta(t, 0.0, got.Y, 1e-12)
}

func TestSnapOutsideThresholdKeepsRaw(t *testing.T) {
	s := NewSnapper(0.05)
	raw := v3(0.4, 0.3, 0)

	got, kind := s.Resolve(raw, unitSquare(), geometry.Identity())

	assert.Equal(t, SnapNone, kind)
	assert.Equal(t, raw, got)
}

func TestSnapHonorsTransform(t *testing.T) {
	s := NewSnapper(0.05)
	xf := geometry.Translation(v3(10, 0, 0))

	got, kind := s.Resolve(v3(10.01, 0.01, 0), unitSquare(), xf)

	require.Equal(t, SnapVertex, kind)
	assert.InDelta(t, 10.0, got.X, 1e-12)
	assert.InDelta(t, 0.0, got.Y, 1e-12)
}

func TestSnapDisabled(t *testing.T) {
	raw := v3(0.001, 0, 0)

	got, kind := NewSnapper(0).Resolve(raw, unitSquare(), geometry.Identity())
	assert.Equal(t, SnapNone, kind)
	assert.Equal(t, raw, got)

	got, kind = NewSnapper(0.05).Resolve(raw, nil, geometry.Identity())
	assert.Equal(t, SnapNone, kind)
	assert.Equal(t, raw, got)

	assert.Equal(t, DefaultSnapThreshold, NewSnapper(-1).Threshold)
}

func TestPlaneLock(t *testing.T) {
	l := NewPlaneLock(0)
	assert.Equal(t, DefaultPlaneEpsilon, l.Epsilon)

	assert.True(t, l.Check(v3(5, 5, 5), "").Accepted())
	assert.False(t, l.Lock(v3(0, 0, 0), v3(0, 0, 0), "a"))
	assert.False(t, l.Locked())

	require.True(t, l.Lock(v3(0, 0, 2), v3(0, 0, 1), "a"))
	assert.InDelta(t, -0.5, l.Offset(v3(3, 4, 0.5)), 1e-12)
	assert.True(t, l.Check(v3(9, -9, 1.0009), "b").Accepted())

	r := l.Check(v3(0, 0, 1.01), "a")
	assert.Equal(t, ReasonOffPlane, r.Reason)
	assert.InDelta(t, 0.01, r.Offset, 1e-12)

	l.SameSurface = true
	assert.Equal(t, ReasonOtherSurface, l.Check(v3(0, 0, 1), "b").Reason)
	assert.True(t, l.Check(v3(0, 0, 1), "a").Accepted())

	c := l.Constraint()
	require.NotNil(t, c)
	assert.Equal(t, SurfaceID("a"), c.Surface)

	l.Unlock()
	assert.Nil(t, l.Constraint())
	assert.Zero(t, l.Offset(v3(0, 0, 7)))
}
