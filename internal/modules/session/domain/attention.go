package domain

type AlarmChange int

const (
	AlarmUnchanged AlarmChange = iota
	AlarmRaise
	AlarmClear
)

// AttentionMonitor turns visibility and full-screen events into alarm
// changes. It only reacts while armed. There is no debounce: every hide/show
// pair toggles the alarm.
type AttentionMonitor struct {
	armed bool
}

func (m *AttentionMonitor) Arm()        { m.armed = true }
func (m *AttentionMonitor) Disarm()     { m.armed = false }
func (m *AttentionMonitor) Armed() bool { return m.armed }

func (m *AttentionMonitor) Visibility(hidden bool) AlarmChange {
	if !m.armed {
		return AlarmUnchanged
	}
	if hidden {
		return AlarmRaise
	}
	return AlarmClear
}

func (m *AttentionMonitor) FullscreenLost() AlarmChange {
	if !m.armed {
		return AlarmUnchanged
	}
	return AlarmRaise
}
