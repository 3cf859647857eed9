package glimpse

import "log/slog"

type UpdateInputState func() InputState

type MouseButton uint32

type KeysState struct {
	// the keys that are currently marked as "pressed"
	Pressed map[Key]bool

	// keys that where just pressed after the last call to nextTick()
	JustPressed map[Key]bool

	// keys that were just released after the last call to nextTick()
	JustReleased map[Key]bool
}

func (k *KeysState) press(key Key) {
	slog.Debug("Key just pressed", slog.String("key", key.String()))

	setTrue(&k.Pressed, key)
	setTrue(&k.JustPressed, key)
}

func (k *KeysState) release(key Key) {
	setFalse(&k.Pressed, key)
	setTrue(&k.JustReleased, key)
}

func (k *KeysState) nextTick() {
	clear(k.JustPressed)
	clear(k.JustReleased)
}

type MouseState struct {
	CursorX, CursorY float32

	// movement of the cursor since the last tick
	DeltaX, DeltaY float32

	Pressed map[MouseButton]bool

	// mouse buttons that were just clicked after the last call to nextTick()
	JustPressed map[MouseButton]bool

	// mouse buttons that were just released after the last call to nextTick()
	JustReleased map[MouseButton]bool

	prevX, prevY float32
	hasPrev      bool
}

func (m *MouseState) press(button MouseButton) {
	setTrue(&m.Pressed, button)
	setTrue(&m.JustPressed, button)
}

func (m *MouseState) release(button MouseButton) {
	setFalse(&m.Pressed, button)
	setTrue(&m.JustReleased, button)
}

func (m *MouseState) position(x, y float32) {
	m.CursorX = x
	m.CursorY = y

	if m.hasPrev {
		m.DeltaX += x - m.prevX
		m.DeltaY += y - m.prevY
	}

	m.prevX, m.prevY = x, y
	m.hasPrev = true
}

// forgetPosition drops the last known cursor position, the next position
// update only sets the cursor.
func (m *MouseState) forgetPosition() {
	m.hasPrev = false
}

func (m *MouseState) nextTick() {
	clear(m.JustPressed)
	clear(m.JustReleased)

	m.DeltaX = 0
	m.DeltaY = 0
}

type FocusState struct {
	Focused bool

	// focus changes since the last tick
	JustFocused   bool
	JustUnfocused bool
}

func (f *FocusState) set(focused bool) {
	if f.Focused == focused {
		return
	}

	f.Focused = focused
	f.JustFocused = focused
	f.JustUnfocused = !focused
}

func (f *FocusState) nextTick() {
	f.JustFocused = false
	f.JustUnfocused = false
}

type InputState struct {
	Keys  KeysState
	Mouse MouseState
	Focus FocusState
}

func (s *InputState) nextTick() {
	s.Keys.nextTick()
	s.Mouse.nextTick()
	s.Focus.nextTick()
}

func setTrue[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = true
}

func setFalse[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = false
}
