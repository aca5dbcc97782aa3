package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Scene change detection constants
const (
	// sampleWidth is the width frames are shrunk to before comparison.
	sampleWidth = 160
	// blurSize is the Gaussian kernel applied to the shrunken frame.
	blurSize = 5
	// pixelDelta is the per-pixel intensity difference that counts as change.
	pixelDelta = 25
)

// MotionDetector tells whether a frame differs enough from the last one it
// accepted for hand detection to be worth running again. A zero threshold
// disables it: every frame counts as changed.
type MotionDetector struct {
	threshold float64
	baseline  gocv.Mat
	hasBase   bool
	mu        sync.Mutex
}

// NewMotionDetector creates a detector that reports a change when more than
// threshold percent of pixels moved.
func NewMotionDetector(threshold float64) *MotionDetector {
	if threshold < 0 {
		threshold = 0
	}
	return &MotionDetector{
		threshold: threshold,
		baseline:  gocv.NewMat(),
	}
}

// Changed compares frame with the previous baseline and returns whether it
// changed along with the changed pixel percentage. The first frame always
// counts as changed. The baseline only moves on a change, so slow drift
// still accumulates into one.
func (m *MotionDetector) Changed(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.threshold == 0 || frame == nil || frame.Empty() {
		return true, 100
	}

	sample := shrinkGray(frame)
	defer sample.Close()

	if !m.hasBase || sample.Cols() != m.baseline.Cols() || sample.Rows() != m.baseline.Rows() {
		sample.CopyTo(&m.baseline)
		m.hasBase = true
		return true, 100
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(sample, m.baseline, &diff)
	gocv.Threshold(diff, &diff, pixelDelta, 255, gocv.ThresholdBinary)

	percent := float64(gocv.CountNonZero(diff)) / float64(diff.Rows()*diff.Cols()) * 100
	if percent <= m.threshold {
		return false, percent
	}

	sample.CopyTo(&m.baseline)
	return true, percent
}

// Reset forgets the baseline so the next frame counts as changed.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hasBase = false
}

// Close releases the baseline.
func (m *MotionDetector) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseline.Close()
	m.baseline = gocv.NewMat()
	m.hasBase = false
}

func shrinkGray(frame *gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	if gray.Cols() > sampleWidth {
		height := gray.Rows() * sampleWidth / gray.Cols()
		if height < 1 {
			height = 1
		}
		gocv.Resize(gray, &gray, image.Pt(sampleWidth, height), 0, 0, gocv.InterpolationArea)
	}

	gocv.GaussianBlur(gray, &gray, image.Pt(blurSize, blurSize), 0, 0, gocv.BorderDefault)
	return gray
}
