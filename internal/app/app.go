// Package app runs the presenter frame loop: capture, hand detection,
// gesture recognition, state update, rendering and publishing.
package app

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/ayusman/airdeck/internal/capture"
	"github.com/ayusman/airdeck/internal/detector"
	"github.com/ayusman/airdeck/internal/gesture"
	"github.com/ayusman/airdeck/internal/plugin"
	"github.com/ayusman/airdeck/internal/presentation"
	"github.com/ayusman/airdeck/internal/render"
	"github.com/ayusman/airdeck/internal/slides"
	"github.com/ayusman/airdeck/internal/store"
)

// Config wires the collaborators of the frame loop. Camera, Detector and
// Slides are required; Store and Hooks are optional.
type Config struct {
	Camera   capture.Camera
	Detector detector.Detector
	Slides   slides.Store
	Renderer *render.Renderer
	Display  render.Display
	Store    *store.Store
	Hooks    *plugin.Hooks

	// SlidesDir is recorded with the session.
	SlidesDir    string
	Handedness   gesture.Handedness
	Presentation presentation.Config
	// MotionThreshold enables skipping detection on still frames.
	MotionThreshold float64
	// EncodeFrames publishes every composed frame as JPEG for LatestFrame.
	EncodeFrames bool
	// DrawHand overlays the detected hand skeleton on the webcam thumbnail.
	DrawHand bool
}

// App is the running presenter. Only the frame loop mutates the state;
// other goroutines read it through Snapshot.
type App struct {
	config  Config
	state   *presentation.State
	motion  *capture.MotionDetector
	session *store.Session

	// lastHand is the most recent detection, reused on still frames.
	lastHand *detector.HandLandmarks
	// wasPaused is true while the loop is skipping recognition.
	wasPaused bool

	snapshot atomic.Pointer[presentation.Snapshot]
	jpeg     atomic.Pointer[[]byte]
	paused   atomic.Bool
}

// New creates an App over a deck of config.Slides.Len() slides.
func New(config Config) (*App, error) {
	if config.Camera == nil {
		return nil, errors.New("app: camera is required")
	}
	if config.Detector == nil {
		return nil, errors.New("app: detector is required")
	}
	if config.Slides == nil {
		return nil, errors.New("app: slides are required")
	}
	if config.Renderer == nil {
		config.Renderer = render.NewRenderer()
	}
	if config.Display == nil {
		config.Display = render.Headless{}
	}
	if config.Handedness == "" {
		config.Handedness = gesture.HandRight
	}

	state, err := presentation.New(config.Slides.Len(), config.Presentation)
	if err != nil {
		return nil, fmt.Errorf("create presentation: %w", err)
	}

	return &App{
		config: config,
		state:  state,
		motion: capture.NewMotionDetector(config.MotionThreshold),
	}, nil
}

// Snapshot returns the state after the last processed frame, or nil until
// the first frame has been through recognition.
func (a *App) Snapshot() *presentation.Snapshot {
	return a.snapshot.Load()
}

// LatestFrame returns the last composed frame as JPEG, or nil when frame
// encoding is off or no frame was rendered yet.
func (a *App) LatestFrame() []byte {
	if p := a.jpeg.Load(); p != nil {
		return *p
	}
	return nil
}

// Paused reports whether gesture processing is suspended.
func (a *App) Paused() bool {
	return a.paused.Load()
}

// SetPaused suspends or resumes gesture processing. While paused, frames
// are still rendered and the presentation state is left untouched. On the
// first frame after a resume, the gesture in progress is dropped and has to
// be held again.
func (a *App) SetPaused(paused bool) {
	a.paused.Store(paused)
}

// Session returns the recorded session, or nil without a store.
func (a *App) Session() *store.Session {
	return a.session
}
