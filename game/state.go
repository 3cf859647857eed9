package game

// Controls holds the interaction state: whether the map is open and
// whether the cursor is captured for mouse look.
type Controls struct {
	MapOpen  bool
	Captured bool
}

// ControlInput are the events of a single tick that change the Controls.
type ControlInput struct {
	ToggleMap bool
	Escape    bool

	FocusLost   bool
	FocusGained bool
}

// Transition describes what has to happen after a Controls step.
type Transition struct {
	// the cursor capture state changed, apply Controls.Captured to the window
	CaptureChanged bool

	Quit bool
}

// Step applies the input of one tick.
func (c *Controls) Step(in ControlInput) Transition {
	var tr Transition

	captured := c.Captured

	switch {
	case in.Escape && c.MapOpen:
		c.MapOpen = false
		captured = true

	case in.Escape:
		tr.Quit = true

	case in.ToggleMap:
		c.MapOpen = !c.MapOpen
		captured = !c.MapOpen
	}

	if in.FocusLost {
		captured = false
	}

	if in.FocusGained {
		captured = !c.MapOpen
	}

	tr.CaptureChanged = captured != c.Captured
	c.Captured = captured

	return tr
}

// CanMove reports whether the camera follows keyboard input.
func (c *Controls) CanMove() bool {
	return !c.MapOpen
}

// CanLook reports whether the camera follows mouse movement.
func (c *Controls) CanLook() bool {
	return !c.MapOpen && c.Captured
}
