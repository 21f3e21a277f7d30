package measurement

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gomeasure/pkg/analysis"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// scriptedCaster returns the hit registered for a screen position
type scriptedCaster map[geometry.Vector2]Hit

func (c scriptedCaster) CastRay(screen geometry.Vector2) []Hit {
	if h, ok := c[screen]; ok {
		return []Hit{h}
	}
	return nil
}

func px(x, y float64) geometry.Vector2 {
	return geometry.NewVector2(x, y)
}

func floorHit(p geometry.Vector3) Hit {
	return Hit{Position: p, Normal: v3(0, 0, 1), Surface: "floor", Mesh: unitSquare(), Transform: geometry.Identity()}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession(caster RayCaster, opts ...Option) *Session {
	return NewSession(caster, append([]Option{WithLogger(quietLogger())}, opts...)...)
}

func submit(s *Session, p geometry.Vector3) Result {
	return s.Submit(Candidate{Point: p, Raw: p, Normal: v3(0, 0, 1), Surface: "floor"})
}

func TestLengthScenario(t *testing.T) {
	s := newTestSession(nil)

	submit(s, v3(0, 0, 0))
	submit(s, v3(3.048, 0, 0))

	r := s.Reading()
	require.True(t, r.Valid)
	assert.Equal(t, "10.00 ft", r.String())

	submit(s, v3(3.048, 3.048, 0))
	assert.Equal(t, []geometry.Vector3{v3(3.048, 0, 0), v3(3.048, 3.048, 0)}, s.Snapshot().Points)
}

func TestAngleScenario(t *testing.T) {
	s := newTestSession(nil, WithMode(ModeAngle))
	var events []RejectionEvent
	s.OnRejected(func(ev RejectionEvent) { events = append(events, ev) })

	submit(s, v3(1, 0, 0))
	submit(s, v3(0, 0, 0))
	submit(s, v3(0, 1, 0))
	r := submit(s, v3(1, 1, 1))

	assert.Equal(t, ReasonCapacity, r.Reason)
	require.Len(t, events, 1)
	assert.Equal(t, OpCommit, events[0].Op)
	assert.Equal(t, ModeAngle, events[0].Mode)
	assert.Equal(t, "90.00°", s.Reading().String())
}

func TestAreaScenario(t *testing.T) {
	s := newTestSession(nil, WithMode(ModeArea))

	for _, p := range []geometry.Vector3{v3(0, 0, 0), v3(1, 0, 0), v3(1, 1, 0), v3(0, 1, 0)} {
		require.True(t, submit(s, p).Accepted())
	}

	r := s.Reading()
	require.True(t, r.Valid)
	assert.InDelta(t, analysis.SquareMetersToSquareFeet, r.Value, 1e-9)
	assert.Equal(t, "10.76 ft²", r.String())

	plane := s.Snapshot().Plane
	require.NotNil(t, plane)
	assert.Equal(t, v3(0, 0, 1), plane.Normal)
}

func TestAreaRejectsOffPlane(t *testing.T) {
	s := newTestSession(nil, WithMode(ModeArea))
	var events []RejectionEvent
	s.OnRejected(func(ev RejectionEvent) { events = append(events, ev) })

	submit(s, v3(0, 0, 0))
	submit(s, v3(1, 0, 0))
	r := submit(s, v3(1, 1, 0.01))

	assert.Equal(t, Rejected, r.Outcome)
	assert.Equal(t, ReasonOffPlane, r.Reason)
	assert.InDelta(t, 0.01, r.Offset, 1e-12)
	assert.Len(t, s.Snapshot().Points, 2)
	require.Len(t, events, 1)
	assert.Equal(t, ReasonOffPlane, events[0].Result.Reason)

	assert.True(t, submit(s, v3(1, 1, 0.0005)).Accepted())
}

func TestAreaDegenerateFirstNormal(t *testing.T) {
	s := newTestSession(nil, WithMode(ModeArea))

	r := s.Submit(Candidate{Point: v3(0, 0, 0)})

	assert.Equal(t, ReasonDegenerateNormal, r.Reason)
	assert.Empty(t, s.Snapshot().Points)
	assert.Nil(t, s.Snapshot().Plane)
}

func TestAreaSameSurfaceLock(t *testing.T) {
	s := newTestSession(nil, WithMode(ModeArea), WithSameSurfaceLock(true))

	submit(s, v3(0, 0, 0))
	r := s.Submit(Candidate{Point: v3(1, 0, 0), Normal: v3(0, 0, 1), Surface: "shelf"})

	assert.Equal(t, ReasonOtherSurface, r.Reason)
}

func TestClearUnlocksPlane(t *testing.T) {
	s := newTestSession(nil, WithMode(ModeArea))
	submit(s, v3(0, 0, 0))
	require.NotNil(t, s.Snapshot().Plane)

	s.Clear()
	assert.Nil(t, s.Snapshot().Plane)

	assert.True(t, s.Submit(Candidate{Point: v3(0, 0, 5), Normal: v3(1, 0, 0)}).Accepted())
	assert.Equal(t, v3(1, 0, 0), s.Snapshot().Plane.Normal)
}

func TestClickMissChangesNothing(t *testing.T) {
	s := newTestSession(scriptedCaster{px(10, 10): floorHit(v3(0.5, 0.5, 0))})
	require.True(t, s.Click(px(10, 10)).Accepted())

	r := s.Click(px(99, 99))

	assert.Equal(t, NoHit, r.Outcome)
	assert.Len(t, s.Snapshot().Points, 1)
}

func TestAreaClickSnaps(t *testing.T) {
	s := newTestSession(scriptedCaster{
		px(1, 1): floorHit(v3(0.02, 0.01, 0)),
		px(2, 2): floorHit(v3(0.5, 0.03, 0)),
	}, WithMode(ModeArea))

	r := s.Click(px(1, 1))
	assert.Equal(t, SnapVertex, r.Snap)
	assert.Equal(t, v3(0, 0, 0), r.Point)

	r = s.Click(px(2, 2))
	assert.Equal(t, SnapEdge, r.Snap)
	assert.InDelta(t, 0.0, r.Point.Y, 1e-12)
}

func TestLengthClickDoesNotSnap(t *testing.T) {
	raw := v3(0.02, 0.01, 0)
	s := newTestSession(scriptedCaster{px(1, 1): floorHit(raw)})

	r := s.Click(px(1, 1))

	assert.Equal(t, SnapNone, r.Snap)
	assert.Equal(t, raw, r.Point)
}

func TestPointerMovePreview(t *testing.T) {
	s := newTestSession(scriptedCaster{
		px(1, 1): floorHit(v3(0.5, 0.5, 0)),
		px(2, 2): floorHit(v3(0.7, 0.5, 0)),
	})

	assert.True(t, s.PointerMove(px(1, 1)).Accepted())
	require.NotNil(t, s.Snapshot().Preview)

	assert.Equal(t, NoHit, s.PointerMove(px(50, 50)).Outcome)
	assert.Nil(t, s.Snapshot().Preview)

	s.Click(px(1, 1))
	s.Click(px(2, 2))
	r := s.PointerMove(px(1, 1))
	assert.Equal(t, ReasonGated, r.Reason)
	assert.Nil(t, s.Snapshot().Preview)
}

func TestAreaPreviewOffPlane(t *testing.T) {
	wall := Hit{Position: v3(1, 0.5, 0.5), Normal: v3(1, 0, 0), Surface: "wall"}
	s := newTestSession(scriptedCaster{
		px(1, 1): floorHit(v3(0.5, 0.5, 0)),
		px(2, 2): wall,
	}, WithMode(ModeArea))
	var events []RejectionEvent
	s.OnRejected(func(ev RejectionEvent) { events = append(events, ev) })

	s.Click(px(1, 1))
	r := s.PointerMove(px(2, 2))

	assert.Equal(t, ReasonOffPlane, r.Reason)
	assert.Nil(t, s.Snapshot().Preview)
	require.Len(t, events, 1)
	assert.Equal(t, OpPreview, events[0].Op)
}

func TestSetModeResetsSession(t *testing.T) {
	s := newTestSession(nil, WithMode(ModeArea))
	submit(s, v3(0, 0, 0))

	s.SetMode(ModeAngle)

	snap := s.Snapshot()
	assert.Equal(t, ModeAngle, s.Mode())
	assert.Empty(t, snap.Points)
	assert.Nil(t, snap.Plane)
	assert.False(t, s.Reading().Valid)
	assert.Equal(t, "—", s.Reading().String())
}

func TestPointerLeaveClearsPreview(t *testing.T) {
	s := newTestSession(scriptedCaster{px(1, 1): floorHit(v3(0.5, 0.5, 0))})
	s.PointerMove(px(1, 1))
	require.NotNil(t, s.Snapshot().Preview)

	s.PointerLeave()

	assert.Nil(t, s.Snapshot().Preview)
}

func TestAreaSecondClickOffPlane(t *testing.T) {
	wall := Hit{Position: v3(1, 0.5, 0.5), Normal: v3(1, 0, 0), Surface: "wall"}
	s := newTestSession(scriptedCaster{
		px(1, 1): floorHit(v3(0.5, 0.5, 0)),
		px(2, 2): wall,
	}, WithMode(ModeArea))

	s.Click(px(1, 1))
	r := s.Click(px(2, 2))

	assert.Equal(t, ReasonOffPlane, r.Reason)
	assert.Len(t, s.Snapshot().Points, 1)
}

func TestRejectionLogCarriesOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := NewSession(nil, WithMode(ModeArea), WithLogger(logger))

	submit(s, v3(0, 0, 0))
	assert.Contains(t, buf.String(), `"op":"commit"`)
	assert.Contains(t, buf.String(), `"msg":"point committed"`)

	buf.Reset()
	submit(s, v3(1, 1, 0.5))
	assert.Contains(t, buf.String(), `"msg":"point rejected"`)
	assert.Contains(t, buf.String(), `"op":"commit"`)
	assert.Contains(t, buf.String(), `"reason":"off plane"`)
}

func TestSurfaceIDsStayUnique(t *testing.T) {
	var ids SurfaceIDs

	assert.Equal(t, SurfaceID("part.stl"), ids.Next("part.stl"))
	assert.Equal(t, SurfaceID("part.stl #2"), ids.Next("part.stl"))
	assert.Equal(t, SurfaceID("other.stl"), ids.Next("other.stl"))

	// a file literally named like a suffixed id still gets its own id
	assert.Equal(t, SurfaceID("part.stl #2 #2"), ids.Next("part.stl #2"))
	assert.Equal(t, SurfaceID("part.stl #3"), ids.Next("part.stl"))

	ids.Reset()
	assert.Equal(t, SurfaceID("part.stl"), ids.Next("part.stl"))
}

func TestSameSurfaceLockSeparatesSameNamedFiles(t *testing.T) {
	var ids SurfaceIDs
	first, second := ids.Next("part.stl"), ids.Next("part.stl")
	s := newTestSession(nil, WithMode(ModeArea), WithSameSurfaceLock(true))

	require.True(t, s.Submit(Candidate{Point: v3(0, 0, 0), Normal: v3(0, 0, 1), Surface: first}).Accepted())
	r := s.Submit(Candidate{Point: v3(1, 0, 0), Normal: v3(0, 0, 1), Surface: second})

	assert.Equal(t, ReasonOtherSurface, r.Reason)
}
