// Package gesture turns hand landmarks into debounced presenter gestures.
package gesture

import (
	"fmt"
	"image"
	"strings"

	"github.com/ayusman/airdeck/internal/detector"
)

// Finger indexes a FingerVector.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky
	NumFingers
)

// tipIDs are the landmark ids of the five fingertips, thumb first.
var tipIDs = [NumFingers]int{
	detector.ThumbTip,
	detector.IndexTip,
	detector.MiddleTip,
	detector.RingTip,
	detector.PinkyTip,
}

// Handedness selects the thumb sign convention.
//
// The thumb test compares x coordinates, so it only holds for one hand
// chirality. The hand is never auto-detected; a left-handed presenter has
// to configure HandLeft explicitly.
type Handedness string

const (
	HandRight Handedness = "right"
	HandLeft  Handedness = "left"
)

// ParseHandedness parses a configured handedness. An empty string means right.
func ParseHandedness(s string) (Handedness, error) {
	switch Handedness(strings.ToLower(strings.TrimSpace(s))) {
	case "", HandRight:
		return HandRight, nil
	case HandLeft:
		return HandLeft, nil
	default:
		return "", fmt.Errorf("unknown handedness %q", s)
	}
}

// FingerVector holds the extension state of each finger, thumb first.
type FingerVector [NumFingers]bool

// String renders the vector as five digits, e.g. "01100" for index+middle.
func (v FingerVector) String() string {
	var b strings.Builder
	for _, up := range v {
		if up {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Fingers classifies which fingers are extended.
//
// points are the hand landmarks in frame pixel coordinates, indexed by
// landmark id. ok is false when points does not describe exactly one hand.
//
// The thumb is extended when its tip lies beyond the IP joint on the x axis
// (to the right for a right hand). Every other finger is extended when its
// tip lies above (smaller y) the PIP joint two landmarks below it.
func Fingers(points []image.Point, hand Handedness) (v FingerVector, ok bool) {
	if len(points) != detector.NumLandmarks {
		return v, false
	}

	thumbTip := points[detector.ThumbTip]
	thumbIP := points[detector.ThumbIP]
	if hand == HandLeft {
		v[Thumb] = thumbTip.X < thumbIP.X
	} else {
		v[Thumb] = thumbTip.X > thumbIP.X
	}

	for f := Index; f < NumFingers; f++ {
		tip := tipIDs[f]
		v[f] = points[tip].Y < points[tip-2].Y
	}

	return v, true
}
