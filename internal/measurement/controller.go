package measurement

import (
	"slices"

	"github.com/philipparndt/gomeasure/pkg/analysis"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// Controller owns the active mode, the committed point buffer, the preview
// point and the area plane lock. It validates nothing beyond capacity.
type Controller struct {
	mode    Mode
	points  []geometry.Vector3
	preview *geometry.Vector3
	lock    PlaneLock
}

// NewController starts in mode with an empty buffer
func NewController(mode Mode, lock PlaneLock) *Controller {
	return &Controller{mode: mode, lock: lock}
}

// Mode returns the active mode
func (c *Controller) Mode() Mode {
	return c.mode
}

// SetMode switches tools and discards all measurement state
func (c *Controller) SetMode(m Mode) {
	c.points = nil
	c.preview = nil
	c.lock.Unlock()
	c.mode = m
}

// Clear empties the buffer and plane lock but keeps the mode. The preview
// is refreshed by the next pointer move.
func (c *Controller) Clear() {
	c.points = nil
	c.lock.Unlock()
}

// Commit appends p under the mode's capacity rule. Length slides to
// [last, p] once full; Angle refuses a fourth point.
func (c *Controller) Commit(p geometry.Vector3) Result {
	switch capacity := c.mode.Capacity(); {
	case capacity == Unbounded || len(c.points) < capacity:
		c.points = append(c.points, p)
	case c.mode == ModeLength:
		last := c.points[len(c.points)-1]
		c.points = []geometry.Vector3{last, p}
	default:
		return rejected(ReasonCapacity, p)
	}
	c.preview = nil
	return accepted(p)
}

// Preview sets the hover point, or clears it when p is nil
func (c *Controller) Preview(p *geometry.Vector3) {
	if p == nil {
		c.preview = nil
		return
	}
	v := *p
	c.preview = &v
}

// Points returns a copy of the committed buffer
func (c *Controller) Points() []geometry.Vector3 {
	return slices.Clone(c.points)
}

// Len returns the number of committed points
func (c *Controller) Len() int {
	return len(c.points)
}

// PlaneLock exposes the area lock for validation and locking
func (c *Controller) PlaneLock() *PlaneLock {
	return &c.lock
}

// Snapshot copies the state for rendering and display
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{Mode: c.mode, Points: c.Points(), Plane: c.lock.Constraint()}
	if c.preview != nil {
		p := *c.preview
		s.Preview = &p
	}
	return s
}

// Snapshot is an immutable view of the measurement state
type Snapshot struct {
	Mode    Mode
	Points  []geometry.Vector3
	Preview *geometry.Vector3
	Plane   *PlaneConstraint
}

// Displayed returns the committed points followed by the preview, if any
func (s Snapshot) Displayed() []geometry.Vector3 {
	out := slices.Clone(s.Points)
	if s.Preview != nil {
		out = append(out, *s.Preview)
	}
	return out
}

// Reading derives the measurement from committed points only
func (s Snapshot) Reading() analysis.Reading {
	return analysis.Measure(s.Mode.Quantity(), s.Points)
}

// LiveReading derives the measurement including the preview. For length the
// live segment is the last committed point to the preview.
func (s Snapshot) LiveReading() analysis.Reading {
	pts := s.Displayed()
	if s.Mode == ModeLength && len(pts) > 2 {
		pts = pts[len(pts)-2:]
	}
	return analysis.Measure(s.Mode.Quantity(), pts)
}
