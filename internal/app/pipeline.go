package app

import (
	"context"
	"fmt"
	"image"

	log "github.com/echocat/slf4g"
	"gocv.io/x/gocv"

	"github.com/ayusman/airdeck/internal/detector"
	"github.com/ayusman/airdeck/internal/gesture"
	"github.com/ayusman/airdeck/internal/plugin"
	"github.com/ayusman/airdeck/internal/presentation"
	"github.com/ayusman/airdeck/internal/render"
	"github.com/ayusman/airdeck/internal/store"
)

// Run opens the camera and processes frames until the display asks to quit,
// ctx is cancelled or the camera stops delivering frames. Each of those ends
// the loop cleanly after the current frame.
func (a *App) Run(ctx context.Context) error {
	if err := a.config.Camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer a.config.Camera.Close()
	defer a.motion.Close()

	a.startSession()
	defer a.endSession()

	log.With("slides", a.state.TotalSlides()).
		With("handedness", a.config.Handedness).
		Info("Presenter started.")

	for {
		select {
		case <-ctx.Done():
			log.Info("Presenter stopped.")
			return nil
		default:
		}

		quit, err := a.Step(ctx)
		if err != nil {
			log.WithError(err).Info("Camera stopped delivering frames.")
			return nil
		}
		if quit {
			log.Info("Quit requested.")
			return nil
		}
	}
}

// Step processes exactly one frame and reports whether the display asked to
// quit. An error means no frame could be read.
func (a *App) Step(ctx context.Context) (bool, error) {
	frame, err := a.config.Camera.ReadFrame()
	if err != nil {
		return false, fmt.Errorf("read frame: %w", err)
	}
	defer frame.Close()

	var points []image.Point
	if a.Paused() {
		a.wasPaused = true
	} else {
		if a.wasPaused {
			a.wasPaused = false
			a.state.Interrupt()
			a.motion.Reset()
		}

		hand := a.detect(frame)
		points = hand.Pixels(frame.Cols(), frame.Rows())

		raw := gesture.Recognize(points, a.config.Handedness)
		var tip image.Point
		if len(points) == detector.NumLandmarks {
			tip = points[detector.IndexTip]
		}

		result := a.state.Step(raw, tip)
		if result.Action.SingleTrigger() {
			a.onAction(ctx, result)
		}
		a.snapshot.Store(a.state.Snapshot())
	}

	return a.present(frame, points), nil
}

// detect returns the first detected hand, or nil. On a still frame the
// previous detection is reused. Detector errors count as no hand.
func (a *App) detect(frame *gocv.Mat) *detector.HandLandmarks {
	if changed, _ := a.motion.Changed(frame); !changed {
		return a.lastHand
	}

	hands, err := a.config.Detector.Detect(frame)
	if err != nil {
		log.WithError(err).Warn("Hand detection failed.")
		a.lastHand = nil
		a.motion.Reset()
		return nil
	}

	a.lastHand = detector.First(hands)
	return a.lastHand
}

// present composes and shows the output for the latest snapshot.
func (a *App) present(webcam *gocv.Mat, points []image.Point) bool {
	snap := a.snapshot.Load()
	if snap == nil {
		snap = a.state.Snapshot()
	}

	slide, err := a.config.Slides.Load(snap.Slide)
	if err != nil {
		log.With("slide", snap.Slide).WithError(err).Warn("Failed to load slide.")
		slide.Close()
		slide = gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), webcam.Rows(), webcam.Cols(), gocv.MatTypeCV8UC3)
	}
	defer slide.Close()

	if a.config.DrawHand {
		render.DrawHand(webcam, points)
	}

	out := a.config.Renderer.Compose(slide, snap, webcam)
	defer out.Close()

	if a.config.EncodeFrames {
		if buf, err := gocv.IMEncode(gocv.JPEGFileExt, out); err == nil {
			jpeg := append([]byte(nil), buf.GetBytes()...)
			buf.Close()
			a.jpeg.Store(&jpeg)
		}
	}

	return a.config.Display.Show(out)
}

// onAction logs, records and forwards an executed single-trigger action.
func (a *App) onAction(ctx context.Context, f presentation.Frame) {
	slide := a.state.Slide()
	log.With("action", f.Action).
		With("slide", slide).
		With("frame", f.Number).
		Info("Action executed.")

	sessionID := ""
	if a.session != nil {
		sessionID = a.session.ID
		err := a.config.Store.Events().Record(&store.Event{
			SessionID: sessionID,
			Frame:     f.Number,
			Action:    string(f.Action),
			Slide:     slide,
		})
		if err != nil {
			log.WithError(err).Warn("Failed to record action.")
		}
	}

	if a.config.Hooks != nil {
		a.config.Hooks.Fire(ctx, plugin.Request{
			Action:      string(f.Action),
			SessionID:   sessionID,
			Frame:       f.Number,
			Slide:       slide,
			TotalSlides: a.state.TotalSlides(),
			SlideName:   a.config.Slides.Name(slide),
		})
	}
}

func (a *App) startSession() {
	if a.config.Store == nil {
		return
	}

	sess, err := a.config.Store.Sessions().Start(a.config.SlidesDir, a.state.TotalSlides())
	if err != nil {
		log.WithError(err).Warn("Failed to start session; actions will not be recorded.")
		return
	}
	a.session = sess
	log.With("session", sess.ID).Debug("Session started.")
}

func (a *App) endSession() {
	if a.session == nil {
		return
	}
	if err := a.config.Store.Sessions().End(a.session.ID); err != nil {
		log.With("session", a.session.ID).WithError(err).Warn("Failed to end session.")
	}
}
