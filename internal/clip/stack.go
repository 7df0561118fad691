// Package clip tracks the nested clip rectangles of a canvas in device
// pixels.
package clip

import "image"

// Stack manages nested clip rectangles with push/pop operations.
// The effective clip is the intersection of every pushed rectangle with the
// base bounds; it may be empty, in which case nothing is drawn.
type Stack struct {
	prev   []image.Rectangle
	bounds image.Rectangle
}

// NewStack creates a stack whose base clip is bounds (typically the canvas
// size).
func NewStack(bounds image.Rectangle) *Stack {
	return &Stack{
		prev:   make([]image.Rectangle, 0, 8),
		bounds: bounds.Canon(),
	}
}

// Push intersects the current clip with r and makes the result current.
func (s *Stack) Push(r image.Rectangle) {
	s.prev = append(s.prev, s.bounds)
	s.bounds = s.bounds.Intersect(r.Canon())
}

// Pop restores the clip that was current before the matching Push.
// Popping an empty stack is a no-op and reports false.
func (s *Stack) Pop() bool {
	n := len(s.prev)
	if n == 0 {
		return false
	}
	s.bounds = s.prev[n-1]
	s.prev = s.prev[:n-1]
	return true
}

// Bounds returns the current effective clip.
func (s *Stack) Bounds() image.Rectangle {
	return s.bounds
}

// Empty reports whether the current clip admits no pixels.
func (s *Stack) Empty() bool {
	return s.bounds.Empty()
}

// Contains reports whether pixel (x, y) lies inside the current clip.
func (s *Stack) Contains(x, y int) bool {
	return image.Pt(x, y).In(s.bounds)
}

// Clip returns the part of r that is visible through the current clip.
func (s *Stack) Clip(r image.Rectangle) image.Rectangle {
	return s.bounds.Intersect(r.Canon())
}

// Depth returns the number of pushed rectangles.
func (s *Stack) Depth() int {
	return len(s.prev)
}

// Reset drops every pushed rectangle and sets a new base clip.
func (s *Stack) Reset(bounds image.Rectangle) {
	s.prev = s.prev[:0]
	s.bounds = bounds.Canon()
}
