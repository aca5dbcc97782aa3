// Package output formats command results for the terminal.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/ayusman/airdeck/internal/store"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) SlideListHeader(dir string, n int) {
	fmt.Fprintf(f.w, "🖼️  %d slides in %s:\n\n", n, dir)
}

func (f *Formatter) SlideListItem(index int, name string) {
	fmt.Fprintf(f.w, "  %3d  %s\n", index+1, name)
}

func (f *Formatter) SessionListHeader() {
	fmt.Fprintf(f.w, "🎤 Sessions:\n\n")
}

func (f *Formatter) SessionListItem(s *store.Session) {
	fmt.Fprintf(f.w, "  %s  %s  %-10s %3d slides  %3d actions  %s\n",
		s.ID[:8],
		s.StartedAt.Local().Format("2006-01-02 15:04"),
		sessionDuration(s),
		s.TotalSlides,
		s.Events,
		s.SlidesDir,
	)
}

func (f *Formatter) SessionDetail(s *store.Session) {
	fmt.Fprintf(f.w, "🎤 Session %s\n", s.ID)
	fmt.Fprintf(f.w, "   Slides:   %s (%d)\n", s.SlidesDir, s.TotalSlides)
	fmt.Fprintf(f.w, "   Started:  %s\n", s.StartedAt.Local().Format(time.DateTime))
	fmt.Fprintf(f.w, "   Duration: %s\n\n", sessionDuration(s))
}

func (f *Formatter) EventListItem(e *store.Event) {
	fmt.Fprintf(f.w, "  frame %6d  %-8s → slide %d\n", e.Frame, e.Action, e.Slide+1)
}

func sessionDuration(s *store.Session) string {
	if s.EndedAt == nil {
		return "running"
	}
	return formatDuration(s.EndedAt.Sub(s.StartedAt))
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
