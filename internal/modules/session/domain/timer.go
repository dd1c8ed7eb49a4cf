package domain

// Timer counts down whole seconds from ticks it is fed. It never reads the
// wall clock, so throttled or late ticks only stretch the session.
type Timer struct {
	duration  int
	remaining int
	ended     bool
}

// NewTimer with a non-positive duration is ended from the start with
// progress 1.
func NewTimer(durationSeconds int) *Timer {
	if durationSeconds <= 0 {
		return &Timer{ended: true}
	}
	return &Timer{duration: durationSeconds, remaining: durationSeconds}
}

func (t *Timer) Duration() int  { return t.duration }
func (t *Timer) Remaining() int { return t.remaining }
func (t *Timer) Ended() bool    { return t.ended }

// Tick consumes one tick and reports true exactly once, on the tick that
// reaches zero. Ticks after that are ignored.
func (t *Timer) Tick() bool {
	if t.ended {
		return false
	}
	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.ended = true
		return true
	}
	return false
}

func (t *Timer) Progress() float64 {
	if t.duration <= 0 {
		return 1
	}
	return Clamp01(float64(t.duration-t.remaining) / float64(t.duration))
}

func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
