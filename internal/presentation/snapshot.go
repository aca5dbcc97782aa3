package presentation

import (
	"image"

	"github.com/ayusman/airdeck/internal/gesture"
)

// Snapshot is an immutable copy of State taken between frames.
// Readers outside the frame loop only ever see snapshots.
type Snapshot struct {
	Frame          uint64          `json:"frame"`
	Slide          int             `json:"slide"`
	TotalSlides    int             `json:"total_slides"`
	Strokes        [][]image.Point `json:"strokes"`
	Drawing        bool            `json:"drawing"`
	Raw            gesture.Label   `json:"raw"`
	Stable         gesture.Label   `json:"stable"`
	Tip            image.Point     `json:"tip"`
	Run            int             `json:"run"`
	CooldownActive bool            `json:"cooldown_active"`
	CooldownFrames int             `json:"cooldown_frames"`
}

// Snapshot copies the state.
func (s *State) Snapshot() *Snapshot {
	return &Snapshot{
		Frame:          s.frame,
		Slide:          s.slide,
		TotalSlides:    s.totalSlides,
		Strokes:        s.annotations.Strokes(),
		Drawing:        s.drawing,
		Raw:            s.lastRaw,
		Stable:         s.lastStable,
		Tip:            s.lastTip,
		Run:            s.stabilizer.Run(),
		CooldownActive: !s.cooldown.Open(),
		CooldownFrames: s.cooldown.Counter(),
	}
}

// ShowPointer reports whether the renderer should mark the fingertip.
func (s *Snapshot) ShowPointer() bool {
	return s.Stable.Continuous()
}
