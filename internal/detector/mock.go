package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands    []HandLandmarks
	sequence [][]HandLandmarks
	err      error
	calls    int
	mu       sync.Mutex
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetSequence queues per-frame results. Each Detect call consumes one entry;
// once the queue is empty, Detect falls back to the hands set by SetHands.
func (m *MockDetector) SetSequence(frames [][]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequence = frames
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.sequence) > 0 {
		next := m.sequence[0]
		m.sequence = m.sequence[1:]
		return next, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// fingerColumns are the x positions of the index, middle, ring and pinky
// fingers of the synthetic right hand.
var fingerColumns = [4]float64{0.55, 0.50, 0.45, 0.40}

// PoseLandmarks returns a right hand, palm facing the camera, with the given
// fingers (thumb, index, middle, ring, pinky) extended and the rest curled.
func PoseLandmarks(extended [5]bool) HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8}

	// Thumb points outward when extended, tucks across the palm otherwise.
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.70}
	landmarks.Points[ThumbIP] = Point3D{X: 0.62, Y: 0.66}
	if extended[0] {
		landmarks.Points[ThumbTip] = Point3D{X: 0.68, Y: 0.62}
	} else {
		landmarks.Points[ThumbTip] = Point3D{X: 0.57, Y: 0.68, Z: -0.02}
	}

	for i, x := range fingerColumns {
		mcp := IndexMCP + i*4
		landmarks.Points[mcp] = Point3D{X: x, Y: 0.68}
		landmarks.Points[mcp+1] = Point3D{X: x, Y: 0.58}
		if extended[i+1] {
			landmarks.Points[mcp+2] = Point3D{X: x, Y: 0.48}
			landmarks.Points[mcp+3] = Point3D{X: x, Y: 0.38}
		} else {
			landmarks.Points[mcp+2] = Point3D{X: x - 0.01, Y: 0.62, Z: -0.04}
			landmarks.Points[mcp+3] = Point3D{X: x - 0.02, Y: 0.66, Z: -0.02}
		}
	}

	return landmarks
}

// PointerLandmarks returns a hand with index and middle fingers extended.
func PointerLandmarks() HandLandmarks {
	return PoseLandmarks([5]bool{false, true, true, false, false})
}

// DrawLandmarks returns a hand with only the index finger extended.
func DrawLandmarks() HandLandmarks {
	return PoseLandmarks([5]bool{false, true, false, false, false})
}

// EraseLandmarks returns a hand with index, middle and ring fingers extended.
func EraseLandmarks() HandLandmarks {
	return PoseLandmarks([5]bool{false, true, true, true, false})
}

// ThumbOutLandmarks returns a hand with only the thumb extended.
func ThumbOutLandmarks() HandLandmarks {
	return PoseLandmarks([5]bool{true, false, false, false, false})
}

// PinkyUpLandmarks returns a hand with only the pinky extended.
func PinkyUpLandmarks() HandLandmarks {
	return PoseLandmarks([5]bool{false, false, false, false, true})
}

// OpenPalmLandmarks returns a hand with all fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	return PoseLandmarks([5]bool{true, true, true, true, true})
}
