package mode

// ChangeCallback is called after the mode changes.
type ChangeCallback func(from, to Mode)

// Manager holds the active mode and the one before it.
type Manager struct {
	current   Mode
	previous  Mode
	callbacks []ChangeCallback
}

// NewManager creates a manager starting in Normal mode.
func NewManager() *Manager {
	return &Manager{current: Normal, previous: Normal}
}

// Current returns the active mode.
func (m *Manager) Current() Mode { return m.current }

// Previous returns the mode active before the last switch.
func (m *Manager) Previous() Mode { return m.previous }

// Is reports whether the active mode is any of modes.
func (m *Manager) Is(modes ...Mode) bool {
	for _, md := range modes {
		if md == m.current {
			return true
		}
	}
	return false
}

// Switch makes to the active mode. Switching to the active mode is a
// no-op and leaves the history alone.
func (m *Manager) Switch(to Mode) {
	if to == m.current {
		return
	}
	from := m.current
	m.previous = from
	m.current = to
	for _, cb := range m.callbacks {
		cb(from, to)
	}
}

// Return switches back to the previous mode.
func (m *Manager) Return() {
	m.Switch(m.previous)
}

// OnChange registers a callback for mode changes.
func (m *Manager) OnChange(cb ChangeCallback) {
	m.callbacks = append(m.callbacks, cb)
}
