package gesture

// DefaultHoldFrames is how many frames a gesture must be held before it
// is confirmed.
const DefaultHoldFrames = 5

// Stabilizer debounces the per-frame raw gesture stream.
//
// A raw gesture is confirmed once it has been seen on more than holdFrames
// consecutive frames. The run counter only restarts when the raw gesture
// changes, never on confirmation, so a held gesture stays confirmed on
// every following frame without paying the hold delay again.
type Stabilizer struct {
	holdFrames int
	previous   Label
	run        int
	stable     Label
}

// NewStabilizer creates a Stabilizer. Negative hold values are treated as 0.
func NewStabilizer(holdFrames int) *Stabilizer {
	if holdFrames < 0 {
		holdFrames = 0
	}
	return &Stabilizer{
		holdFrames: holdFrames,
		previous:   None,
		stable:     None,
	}
}

// Update feeds one frame's raw gesture and returns the stable gesture.
func (s *Stabilizer) Update(raw Label) Label {
	if raw == "" {
		raw = None
	}

	if raw == s.previous {
		s.run++
	} else {
		s.previous = raw
		s.run = 1
	}

	s.stable = None
	if s.run > s.holdFrames {
		s.stable = s.previous
	}
	return s.stable
}

// Stable returns the gesture confirmed by the last Update.
func (s *Stabilizer) Stable() Label {
	return s.stable
}

// Previous returns the last raw gesture seen.
func (s *Stabilizer) Previous() Label {
	return s.previous
}

// Run returns how many consecutive frames the previous raw gesture has been seen.
func (s *Stabilizer) Run() int {
	return s.run
}

// HoldFrames returns the configured hold threshold.
func (s *Stabilizer) HoldFrames() int {
	return s.holdFrames
}

// Reset forgets the current run.
func (s *Stabilizer) Reset() {
	s.previous = None
	s.run = 0
	s.stable = None
}
