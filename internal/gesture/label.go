package gesture

import "image"

// Label names a presenter gesture.
type Label string

const (
	None     Label = "none"
	Pointer  Label = "pointer"
	Draw     Label = "draw"
	Erase    Label = "erase"
	Next     Label = "next"
	Previous Label = "previous"
)

// Labels lists every gesture label except None.
var Labels = []Label{Pointer, Draw, Erase, Next, Previous}

// patterns maps exact finger vectors to gestures.
var patterns = map[FingerVector]Label{
	{false, true, true, false, false}:  Pointer,
	{false, true, false, false, false}: Draw,
	{false, true, true, true, false}:   Erase,
	{true, false, false, false, false}: Next,
	{false, false, false, false, true}: Previous,
}

// Continuous reports whether the gesture acts on every frame it is held
// rather than once per cooldown window.
func (l Label) Continuous() bool {
	return l == Pointer || l == Draw
}

// Pattern returns the finger vector that maps to l. ok is false for None.
func (l Label) Pattern() (FingerVector, bool) {
	for v, label := range patterns {
		if label == l {
			return v, true
		}
	}
	return FingerVector{}, false
}

// Map returns the gesture for an exact finger vector, or None.
func Map(v FingerVector) Label {
	if l, ok := patterns[v]; ok {
		return l
	}
	return None
}

// Recognize classifies one frame's landmarks into a raw gesture.
// A missing hand (nil or incomplete points) is None.
func Recognize(points []image.Point, hand Handedness) Label {
	v, ok := Fingers(points, hand)
	if !ok {
		return None
	}
	return Map(v)
}
