package control

// Capture is the two-state pointer-capture machine: active means the
// pointer is locked for first-person look and fire. The host wires
// the hooks to its cursor mode and overlay.
type Capture struct {
	active bool

	// OnActivate and OnDeactivate run on the matching transition.
	// Either may be nil.
	OnActivate   func()
	OnDeactivate func()
}

// Active reports whether the pointer is captured.
func (c *Capture) Active() bool {
	return c.active
}

// Request activates capture. Requesting while already active is a
// no-op and does not re-fire the hook.
func (c *Capture) Request() {
	if c.active {
		return
	}
	c.active = true
	if c.OnActivate != nil {
		c.OnActivate()
	}
}

// Release deactivates capture; a no-op while inactive.
func (c *Capture) Release() {
	if !c.active {
		return
	}
	c.active = false
	if c.OnDeactivate != nil {
		c.OnDeactivate()
	}
}
