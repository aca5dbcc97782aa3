package render

import "gocv.io/x/gocv"

// WindowTitle is the output window title.
const WindowTitle = "AirDeck"

// quitKey ends the presentation when pressed in the window.
const quitKey = 'q'

// Display shows composed frames.
type Display interface {
	// Show displays frame and reports whether the quit key was pressed.
	Show(frame gocv.Mat) bool
	Close() error
}

// Window is a Display backed by an OpenCV window.
type Window struct {
	win *gocv.Window
}

// NewWindow opens the output window.
func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

// Show displays frame and polls the keyboard for one millisecond.
func (w *Window) Show(frame gocv.Mat) bool {
	w.win.IMShow(frame)
	return w.win.WaitKey(1)&0xff == quitKey
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.win.Close()
}

// Headless is a Display that shows nothing and never asks to quit. Used when
// the output is only served over HTTP.
type Headless struct{}

func (Headless) Show(gocv.Mat) bool { return false }
func (Headless) Close() error       { return nil }
