package presentation

import (
	"errors"
	"image"

	"github.com/ayusman/airdeck/internal/gesture"
)

// ErrNoSlides is returned when a deck has no slides.
var ErrNoSlides = errors.New("presentation has no slides")

// Config holds the frame-counted timings of the state machine.
type Config struct {
	// HoldFrames is how many frames a raw gesture must persist before it is
	// acted on.
	HoldFrames int
	// CooldownFrames locks out single-trigger actions after one fires.
	CooldownFrames int
}

// DefaultConfig returns the default hold and cooldown frame counts.
func DefaultConfig() Config {
	return Config{
		HoldFrames:     gesture.DefaultHoldFrames,
		CooldownFrames: DefaultCooldownFrames,
	}
}

// State is the single mutable source of truth of a running presentation.
// It is owned by the frame loop and must not be shared without a Snapshot.
type State struct {
	totalSlides int
	slide       int
	annotations *AnnotationSet
	drawing     bool
	cooldown    Cooldown
	stabilizer  *gesture.Stabilizer
	lastRaw     gesture.Label
	lastStable  gesture.Label
	lastTip     image.Point
	frame       uint64
}

// New creates the state for a deck of totalSlides slides, showing slide 0.
func New(totalSlides int, cfg Config) (*State, error) {
	if totalSlides <= 0 {
		return nil, ErrNoSlides
	}
	return &State{
		totalSlides: totalSlides,
		annotations: NewAnnotationSet(),
		cooldown:    NewCooldown(cfg.CooldownFrames),
		stabilizer:  gesture.NewStabilizer(cfg.HoldFrames),
		lastRaw:     gesture.None,
		lastStable:  gesture.None,
	}, nil
}

// Slide returns the current slide index.
func (s *State) Slide() int { return s.slide }

// TotalSlides returns the number of slides in the deck.
func (s *State) TotalSlides() int { return s.totalSlides }

// Annotations returns the strokes of the current slide.
func (s *State) Annotations() *AnnotationSet { return s.annotations }

// Drawing reports whether a stroke is being drawn.
func (s *State) Drawing() bool { return s.drawing }

// Cooldown returns the single-trigger gate.
func (s *State) Cooldown() *Cooldown { return &s.cooldown }

// Stabilizer returns the gesture stabilizer.
func (s *State) Stabilizer() *gesture.Stabilizer { return s.stabilizer }

// LastRaw returns the raw gesture of the last frame.
func (s *State) LastRaw() gesture.Label { return s.lastRaw }

// LastStable returns the stable gesture of the last frame.
func (s *State) LastStable() gesture.Label { return s.lastStable }

// Frame returns how many frames have been stepped.
func (s *State) Frame() uint64 { return s.frame }

// Frame is the outcome of one Step.
type Frame struct {
	Number uint64
	Raw    gesture.Label
	Stable gesture.Label
	Action Action
	Tip    image.Point
}

// Step runs one frame through the stabilizer, the dispatcher and the
// cooldown gate. tip is the index fingertip in frame pixels; it is only
// used when the stable gesture is Pointer or Draw.
func (s *State) Step(raw gesture.Label, tip image.Point) Frame {
	s.frame++
	s.lastRaw = raw
	s.lastStable = s.stabilizer.Update(raw)
	s.lastTip = tip

	action := s.Dispatch(s.lastStable, tip)
	s.cooldown.Tick()

	return Frame{
		Number: s.frame,
		Raw:    raw,
		Stable: s.lastStable,
		Action: action,
		Tip:    tip,
	}
}

// Interrupt forgets the gesture in progress after a gap in the frame
// stream: the stabilizer starts over and an open stroke is closed, so a
// resumed draw begins a new stroke. Slide, strokes, cooldown and the frame
// counter are kept.
func (s *State) Interrupt() {
	s.stabilizer.Reset()
	s.setDrawing(false)
	s.lastRaw = gesture.None
	s.lastStable = gesture.None
}

// setDrawing keeps the drawing flag and the open stroke in lockstep.
func (s *State) setDrawing(on bool) {
	if !on {
		s.annotations.Close()
	}
	s.drawing = on
}

// resetSlide clears annotations after a slide change.
func (s *State) resetSlide() {
	s.annotations.Reset()
	s.drawing = false
}
