// Package tray provides the system tray menu of the presenter.
package tray

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/getlantern/systray"

	"github.com/ayusman/airdeck/internal/presentation"
)

// followInterval is how often the menu is refreshed from the presenter.
const followInterval = 250 * time.Millisecond

// Source is the live presenter shown in the menu.
type Source interface {
	Snapshot() *presentation.Snapshot
	Paused() bool
	SetPaused(paused bool)
}

// Tray represents the system tray application.
type Tray struct {
	source Source
	onOpen func()
	onQuit func()
	mu     sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuSlide  *systray.MenuItem
	menuLast   *systray.MenuItem
}

// New creates a Tray controlling source.
func New(source Source) *Tray {
	return &Tray{source: source}
}

// OnOpen sets the callback of the "Open in Browser" item. Without one the
// item is not shown.
func (t *Tray) OnOpen(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpen = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application and keeps the menu in sync with the
// presenter until ctx is cancelled or Quit is clicked. It blocks.
func (t *Tray) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		systray.Quit()
	}()
	systray.Run(func() { t.onReady(ctx) }, func() {})
}

func (t *Tray) onReady(ctx context.Context) {
	systray.SetTitle("AirDeck")
	systray.SetTooltip("AirDeck hand gesture presenter")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleTitle(t.source.Paused()), "Pause or resume gesture control")
	systray.AddSeparator()
	t.menuSlide = systray.AddMenuItem(slideTitle(nil), "Current slide")
	t.menuSlide.Disable()
	t.menuLast = systray.AddMenuItem(gestureTitle(nil), "Confirmed gesture")
	t.menuLast.Disable()
	systray.AddSeparator()

	var openCh chan struct{}
	if t.onOpen != nil {
		openCh = systray.AddMenuItem("Open in Browser", "Show the live output").ClickedCh
		systray.AddSeparator()
	}
	menuQuit := systray.AddMenuItem("Quit", "Quit AirDeck")
	t.mu.Unlock()

	go func() {
		ticker := time.NewTicker(followInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.refresh()
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-openCh:
				t.handleOpen()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// handleToggle flips the pause state.
func (t *Tray) handleToggle() {
	paused := !t.source.Paused()
	t.source.SetPaused(paused)

	t.mu.RLock()
	defer t.mu.RUnlock()
	t.menuToggle.SetTitle(toggleTitle(paused))
}

func (t *Tray) handleOpen() {
	t.mu.RLock()
	callback := t.onOpen
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

func (t *Tray) refresh() {
	snap := t.source.Snapshot()

	t.mu.RLock()
	defer t.mu.RUnlock()
	t.menuToggle.SetTitle(toggleTitle(t.source.Paused()))
	t.menuSlide.SetTitle(slideTitle(snap))
	t.menuLast.SetTitle(gestureTitle(snap))
}

func toggleTitle(paused bool) string {
	if paused {
		return "○ Paused"
	}
	return "● Tracking"
}

func slideTitle(snap *presentation.Snapshot) string {
	if snap == nil || snap.TotalSlides == 0 {
		return "Slide -"
	}
	return fmt.Sprintf("Slide %d/%d", snap.Slide+1, snap.TotalSlides)
}

func gestureTitle(snap *presentation.Snapshot) string {
	if snap == nil || snap.Stable == "" {
		return "Gesture: none"
	}
	return "Gesture: " + string(snap.Stable)
}
