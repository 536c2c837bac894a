// Package control holds the input-facing state machines: held-key
// movement state, the first-person kinematic controller, the orbit
// controller, and the pointer-capture state. None of it touches the
// physics world or the renderer, so it all runs headless in tests.
package control

// Key is a logical input key. The host event layer maps platform key
// codes onto these before calling Apply.
type Key int

const (
	KeyForward Key = iota
	KeyBackward
	KeyLeft
	KeyRight
	KeyJump
)

// Movement tracks which movement keys are held plus a one-shot jump
// edge. Apply is the single entry point for key events; reads happen
// once per frame tick.
type Movement struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool

	jump bool
}

// Apply records a key edge. Unknown keys are no-ops; the latest event
// for a key wins.
func (m *Movement) Apply(k Key, pressed bool) {
	switch k {
	case KeyForward:
		m.Forward = pressed
	case KeyBackward:
		m.Backward = pressed
	case KeyLeft:
		m.Left = pressed
	case KeyRight:
		m.Right = pressed
	case KeyJump:
		if pressed {
			m.jump = true
		}
	}
}

// TakeJump reports a pending jump edge and clears it.
func (m *Movement) TakeJump() bool {
	j := m.jump
	m.jump = false
	return j
}

// Direction resolves the held keys to a per-axis {-1, 0, +1} pair:
// x is right minus left, z is forward minus backward.
func (m *Movement) Direction() (x, z float64) {
	if m.Right {
		x++
	}
	if m.Left {
		x--
	}
	if m.Forward {
		z++
	}
	if m.Backward {
		z--
	}
	return x, z
}
