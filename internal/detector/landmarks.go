// Package detector provides hand detection interfaces and types for gesture recognition.
package detector

import "image"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D is a landmark position. X and Y are normalized to the frame
// (0..1, Y growing downward); Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Pixels converts the normalized landmarks to pixel coordinates of a
// width x height frame. Coordinates are truncated toward zero.
// A nil hand yields nil.
func (h *HandLandmarks) Pixels(width, height int) []image.Point {
	if h == nil {
		return nil
	}

	points := make([]image.Point, NumLandmarks)
	for i, p := range h.Points {
		points[i] = image.Point{
			X: int(p.X * float64(width)),
			Y: int(p.Y * float64(height)),
		}
	}
	return points
}

// Pixel returns the pixel position of a single landmark.
func (h *HandLandmarks) Pixel(id, width, height int) image.Point {
	p := h.Points[id]
	return image.Point{
		X: int(p.X * float64(width)),
		Y: int(p.Y * float64(height)),
	}
}
