package measurement

import (
	"log/slog"

	"github.com/philipparndt/gomeasure/internal/log"
	"github.com/philipparndt/gomeasure/pkg/analysis"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// Operation names carried by rejection events
const (
	OpPreview = "preview"
	OpCommit  = "commit"
)

// RejectionEvent is delivered to listeners whenever a preview or commit
// candidate is refused
type RejectionEvent struct {
	Op     string
	Mode   Mode
	Result Result
}

// Session runs pointer events through picking, snapping, the plane lock and
// the controller. It is meant to be driven from a single goroutine.
type Session struct {
	ctl        *Controller
	picker     Picker
	logger     *slog.Logger
	onRejected []func(RejectionEvent)
}

// Option configures a Session
type Option func(*Session)

// WithMode sets the initial mode
func WithMode(m Mode) Option {
	return func(s *Session) { s.ctl.mode = m }
}

// WithSnapThreshold sets the snap radius in world units
func WithSnapThreshold(threshold float64) Option {
	return func(s *Session) { s.picker.Snapper = NewSnapper(threshold) }
}

// WithPlaneEpsilon sets the area plane tolerance
func WithPlaneEpsilon(epsilon float64) Option {
	return func(s *Session) { s.ctl.lock.Epsilon = epsilon }
}

// WithSameSurfaceLock restricts area polygons to the surface of their first
// point
func WithSameSurfaceLock(enabled bool) Option {
	return func(s *Session) { s.ctl.lock.SameSurface = enabled }
}

// WithLogger replaces the component logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a session picking through caster. The caster may be
// nil for sessions fed only through Submit.
func NewSession(caster RayCaster, opts ...Option) *Session {
	s := &Session{
		ctl:    NewController(ModeLength, NewPlaneLock(DefaultPlaneEpsilon)),
		picker: Picker{Caster: caster, Snapper: NewSnapper(DefaultSnapThreshold)},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.WithComponent("measurement")
	}
	return s
}

// OnRejected registers a listener for refused candidates
func (s *Session) OnRejected(fn func(RejectionEvent)) {
	if fn == nil {
		return
	}
	s.onRejected = append(s.onRejected, fn)
}

// Mode returns the active mode
func (s *Session) Mode() Mode {
	return s.ctl.Mode()
}

// SetMode switches tools, discarding points, preview and plane lock
func (s *Session) SetMode(m Mode) {
	s.ctl.SetMode(m)
	s.logger.Debug("mode changed", "mode", m.String())
}

// Clear discards the committed points and plane lock
func (s *Session) Clear() {
	s.ctl.Clear()
	s.logger.Debug("measurement cleared", "mode", s.ctl.Mode().String())
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	return s.ctl.Snapshot()
}

// Reading returns the measurement of the committed points
func (s *Session) Reading() analysis.Reading {
	return s.ctl.Snapshot().Reading()
}

// PointerMove updates or clears the preview point
func (s *Session) PointerMove(screen geometry.Vector2) Result {
	mode := s.ctl.Mode()
	if !WantsPreview(mode, s.ctl.Len()) {
		s.ctl.Preview(nil)
		return Result{Outcome: Rejected, Reason: ReasonGated}
	}

	c, ok := s.picker.Pick(screen, mode)
	if !ok {
		s.ctl.Preview(nil)
		return Result{Outcome: NoHit}
	}

	if mode == ModeArea {
		if r := s.ctl.PlaneLock().Check(c.Point, c.Surface); !r.Accepted() {
			s.ctl.Preview(nil)
			r.Snap = c.Snap
			s.notify(OpPreview, mode, r)
			return r
		}
	}

	s.ctl.Preview(&c.Point)
	r := accepted(c.Point)
	r.Snap = c.Snap
	return r
}

// PointerLeave clears the preview when the pointer leaves the viewport
func (s *Session) PointerLeave() {
	s.ctl.Preview(nil)
}

// Click commits the point under the cursor. A miss changes nothing.
func (s *Session) Click(screen geometry.Vector2) Result {
	c, ok := s.picker.Pick(screen, s.ctl.Mode())
	if !ok {
		return Result{Outcome: NoHit}
	}
	return s.Submit(c)
}

// Submit validates and commits an already picked candidate
func (s *Session) Submit(c Candidate) Result {
	mode := s.ctl.Mode()
	lock := s.ctl.PlaneLock()

	if mode == ModeArea {
		if lock.Locked() {
			if r := lock.Check(c.Point, c.Surface); !r.Accepted() {
				r.Snap = c.Snap
				s.notify(OpCommit, mode, r)
				return r
			}
		} else if _, ok := geometry.NewPlane(c.Normal, c.Point); !ok {
			r := rejected(ReasonDegenerateNormal, c.Point)
			s.notify(OpCommit, mode, r)
			return r
		}
	}

	r := s.ctl.Commit(c.Point)
	r.Snap = c.Snap
	if !r.Accepted() {
		s.notify(OpCommit, mode, r)
		return r
	}

	if mode == ModeArea && !lock.Locked() {
		lock.Lock(c.Normal, c.Point, c.Surface)
	}
	log.WithOperation(s.logger, OpCommit).Debug("point committed",
		"mode", mode.String(),
		"point", c.Point.String(),
		"snap", c.Snap.String(),
		"count", s.ctl.Len(),
	)
	return r
}

func (s *Session) notify(op string, mode Mode, r Result) {
	log.WithOperation(s.logger, op).Debug("point rejected",
		"mode", mode.String(),
		"reason", r.Reason.String(),
		"offset", r.Offset,
	)
	ev := RejectionEvent{Op: op, Mode: mode, Result: r}
	for _, fn := range s.onRejected {
		fn(ev)
	}
}
