// Package presentation holds the slide and annotation state that presenter
// gestures act on.
package presentation

import "image"

// Stroke is one continuous freehand path, in drawing order.
type Stroke struct {
	points []image.Point
}

// Len returns the number of points in the stroke.
func (s *Stroke) Len() int {
	return len(s.points)
}

// Points returns a copy of the stroke's points.
func (s *Stroke) Points() []image.Point {
	out := make([]image.Point, len(s.points))
	copy(out, s.points)
	return out
}

// AnnotationSet is the ordered list of strokes drawn on the current slide.
//
// At most one stroke is open for appending, and it is always the last one.
// The reset shape is a single empty stroke.
type AnnotationSet struct {
	strokes []*Stroke
	open    int
}

// NewAnnotationSet returns a set in its reset shape.
func NewAnnotationSet() *AnnotationSet {
	a := &AnnotationSet{}
	a.Reset()
	return a
}

// Reset replaces all strokes with a single empty, closed stroke.
func (a *AnnotationSet) Reset() {
	a.strokes = []*Stroke{{}}
	a.open = -1
}

// Len returns the number of strokes, including the empty one of the reset shape.
func (a *AnnotationSet) Len() int {
	return len(a.strokes)
}

// Stroke returns the i-th stroke.
func (a *AnnotationSet) Stroke(i int) *Stroke {
	return a.strokes[i]
}

// IsOpen reports whether a stroke is currently accepting points.
func (a *AnnotationSet) IsOpen() bool {
	return a.open >= 0
}

// OpenIndex returns the index of the open stroke, or -1.
func (a *AnnotationSet) OpenIndex() int {
	return a.open
}

// Begin appends a new empty stroke and opens it. Any open stroke is closed first.
func (a *AnnotationSet) Begin() {
	a.strokes = append(a.strokes, &Stroke{})
	a.open = len(a.strokes) - 1
}

// Append adds p to the open stroke. It reports false when no stroke is open.
func (a *AnnotationSet) Append(p image.Point) bool {
	if a.open < 0 {
		return false
	}
	s := a.strokes[a.open]
	s.points = append(s.points, p)
	return true
}

// Close ends the open stroke, if any.
func (a *AnnotationSet) Close() {
	a.open = -1
}

// Empty reports whether nothing has been drawn, i.e. the set is in its reset shape.
func (a *AnnotationSet) Empty() bool {
	switch len(a.strokes) {
	case 0:
		return true
	case 1:
		return a.strokes[0].Len() == 0
	default:
		return false
	}
}

// Undo removes the most recently appended stroke and closes drawing.
// It reports false, leaving the set untouched, when there is nothing to remove.
func (a *AnnotationSet) Undo() bool {
	if a.Empty() {
		return false
	}

	a.open = -1
	if len(a.strokes) == 1 {
		a.strokes[0] = &Stroke{}
		return true
	}
	a.strokes[len(a.strokes)-1] = nil
	a.strokes = a.strokes[:len(a.strokes)-1]
	return true
}

// Strokes returns a deep copy of every stroke's points.
func (a *AnnotationSet) Strokes() [][]image.Point {
	out := make([][]image.Point, len(a.strokes))
	for i, s := range a.strokes {
		out[i] = s.Points()
	}
	return out
}
