package presentation

import (
	"image"

	"github.com/ayusman/airdeck/internal/gesture"
)

// Action is the effect a stable gesture had on the state.
type Action string

const (
	ActionNone     Action = "none"
	ActionPointer  Action = "pointer"
	ActionDraw     Action = "draw"
	ActionErase    Action = "erase"
	ActionNext     Action = "next"
	ActionPrevious Action = "previous"
)

// SingleTrigger reports whether the action is rate limited by the cooldown gate.
func (a Action) SingleTrigger() bool {
	return a == ActionErase || a == ActionNext || a == ActionPrevious
}

// Dispatch applies a stable gesture to the state and returns what it did.
//
// Pointer and Draw act on every frame. Erase, Next and Previous only run
// while the cooldown gate is open and close it when they change something;
// a gesture that has no effect (first/last slide, nothing to erase) returns
// ActionNone and leaves the gate open. Any gesture other than Draw ends the
// stroke in progress.
func (s *State) Dispatch(stable gesture.Label, tip image.Point) Action {
	action := ActionNone

	switch stable {
	case gesture.Pointer:
		s.setDrawing(false)
		action = ActionPointer

	case gesture.Draw:
		if !s.drawing {
			s.annotations.Begin()
			s.drawing = true
		}
		s.annotations.Append(tip)
		action = ActionDraw

	case gesture.Erase, gesture.Next, gesture.Previous:
		if s.cooldown.Open() {
			action = s.trigger(stable)
			if action != ActionNone {
				s.cooldown.Trigger()
			}
		}
	}

	if stable != gesture.Draw {
		s.setDrawing(false)
	}

	return action
}

func (s *State) trigger(stable gesture.Label) Action {
	switch stable {
	case gesture.Erase:
		s.setDrawing(false)
		if s.annotations.Undo() {
			return ActionErase
		}

	case gesture.Next:
		if s.slide < s.totalSlides-1 {
			s.slide++
			s.resetSlide()
			return ActionNext
		}

	case gesture.Previous:
		if s.slide > 0 {
			s.slide--
			s.resetSlide()
			return ActionPrevious
		}
	}
	return ActionNone
}
