package domain_test

import (
	"testing"

	"focusfence/internal/modules/session/domain"
)

func TestTimerReachesZeroAfterExactlyDurationTicks(t *testing.T) {
	t.Parallel()
	for _, duration := range []int{1, 2, 7, 60, 601} {
		timer := domain.NewTimer(duration)
		prev := timer.Progress()
		if prev != 0 {
			t.Fatalf("duration=%d: fresh progress should be 0, got %v", duration, prev)
		}
		for tick := 1; tick <= duration; tick++ {
			ended := timer.Tick()
			progress := timer.Progress()
			if progress < prev {
				t.Fatalf("duration=%d: progress decreased at tick %d", duration, tick)
			}
			prev = progress
			if tick < duration {
				if ended || timer.Remaining() != duration-tick {
					t.Fatalf("duration=%d: tick %d ended=%t remaining=%d", duration, tick, ended, timer.Remaining())
				}
				continue
			}
			if !ended || timer.Remaining() != 0 || progress != 1 {
				t.Fatalf("duration=%d: last tick ended=%t remaining=%d progress=%v", duration, ended, timer.Remaining(), progress)
			}
		}
		if timer.Tick() {
			t.Fatalf("duration=%d: ended must fire once", duration)
		}
		if timer.Remaining() != 0 {
			t.Fatalf("duration=%d: remaining must floor at 0", duration)
		}
	}
}

func TestTimerZeroDurationEndsImmediately(t *testing.T) {
	t.Parallel()
	timer := domain.NewTimer(0)
	if !timer.Ended() || timer.Progress() != 1 || timer.Remaining() != 0 {
		t.Fatalf("zero duration should be ended with progress 1, got %+v", timer)
	}
	if timer.Tick() {
		t.Fatalf("zero duration timer must never tick")
	}
}

func TestGrow(t *testing.T) {
	t.Parallel()
	seedling := domain.Grow(0, false)
	if seedling.TrunkHeight != 10 || seedling.FoliageVisible || seedling.Opacity != 1 {
		t.Fatalf("unexpected seedling %+v", seedling)
	}
	half := domain.Grow(0.5, false)
	if half.TrunkHeight != 55 || half.FoliageScale != 0.5 || !half.FoliageVisible {
		t.Fatalf("unexpected half-grown tree %+v", half)
	}
	full := domain.Grow(3, false)
	if full.TrunkHeight != 100 || full.FoliageScale != 1 {
		t.Fatalf("progress should clamp to 1, got %+v", full)
	}
	dead := domain.Grow(0.5, true)
	if !dead.Withered || dead.Opacity != 0.6 || dead.TrunkHeight != 55 {
		t.Fatalf("withered tree keeps its size at lower opacity, got %+v", dead)
	}
}

func TestAttentionMonitorOnlyReactsWhileArmed(t *testing.T) {
	t.Parallel()
	m := domain.AttentionMonitor{}
	if m.Visibility(true) != domain.AlarmUnchanged || m.FullscreenLost() != domain.AlarmUnchanged {
		t.Fatalf("disarmed monitor must ignore events")
	}
	m.Arm()
	if m.Visibility(true) != domain.AlarmRaise {
		t.Fatalf("hidden page should raise")
	}
	if m.Visibility(false) != domain.AlarmClear {
		t.Fatalf("visible page should clear")
	}
	if m.FullscreenLost() != domain.AlarmRaise {
		t.Fatalf("lost full-screen should raise")
	}
	m.Disarm()
	if m.Visibility(true) != domain.AlarmUnchanged {
		t.Fatalf("disarmed monitor must ignore events")
	}
}

func TestSessionConfigValidate(t *testing.T) {
	t.Parallel()
	if err := (domain.SessionConfig{DurationSeconds: 60}).Validate(); err != nil {
		t.Fatalf("positive duration should pass: %v", err)
	}
	for _, d := range []int{0, -5} {
		if err := (domain.SessionConfig{DurationSeconds: d}).Validate(); err == nil {
			t.Fatalf("duration %d should fail", d)
		}
	}
}

func TestPreviewCapsAtTwoHours(t *testing.T) {
	t.Parallel()
	if g := domain.Preview(60); g.FoliageScale != 0.5 || g.Withered {
		t.Fatalf("60 minutes should preview half a tree, got %+v", g)
	}
	if g := domain.Preview(480); g.FoliageScale != 1 || g.TrunkHeight != 100 {
		t.Fatalf("long sessions should preview a full tree, got %+v", g)
	}
	if g := domain.Preview(0); g.FoliageVisible {
		t.Fatalf("zero minutes should preview a bare sapling, got %+v", g)
	}
}
