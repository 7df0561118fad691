package clip

import (
	"image"
	"testing"
)

func TestNewStack(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)
	stack := NewStack(bounds)

	if stack.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", stack.Depth())
	}
	if stack.Bounds() != bounds {
		t.Errorf("Bounds() = %v, want %v", stack.Bounds(), bounds)
	}
}

func TestStack_Push(t *testing.T) {
	stack := NewStack(image.Rect(0, 0, 100, 100))

	tests := []struct {
		name       string
		rect       image.Rectangle
		wantBounds image.Rectangle
		wantDepth  int
	}{
		{
			name:       "smaller rect",
			rect:       image.Rect(10, 10, 60, 60),
			wantBounds: image.Rect(10, 10, 60, 60),
			wantDepth:  1,
		},
		{
			name:       "overlapping rect",
			rect:       image.Rect(30, 30, 80, 80),
			wantBounds: image.Rect(30, 30, 60, 60),
			wantDepth:  2,
		},
		{
			name:       "unnormalized rect",
			rect:       image.Rectangle{Min: image.Pt(50, 50), Max: image.Pt(20, 20)},
			wantBounds: image.Rect(30, 30, 50, 50),
			wantDepth:  3,
		},
		{
			name:       "disjoint rect",
			rect:       image.Rect(90, 90, 95, 95),
			wantBounds: image.Rectangle{},
			wantDepth:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stack.Push(tt.rect)

			if stack.Depth() != tt.wantDepth {
				t.Errorf("Depth() = %d, want %d", stack.Depth(), tt.wantDepth)
			}
			if stack.Bounds() != tt.wantBounds {
				t.Errorf("Bounds() = %v, want %v", stack.Bounds(), tt.wantBounds)
			}
		})
	}
}

func TestStack_PopRestores(t *testing.T) {
	base := image.Rect(0, 0, 100, 100)
	stack := NewStack(base)

	stack.Push(image.Rect(10, 10, 50, 50))
	inner := stack.Bounds()
	stack.Push(image.Rect(200, 200, 300, 300))
	if !stack.Empty() {
		t.Fatalf("disjoint push: Bounds() = %v, want empty", stack.Bounds())
	}
	if stack.Contains(20, 20) {
		t.Error("empty clip contains a pixel")
	}

	if !stack.Pop() {
		t.Fatal("Pop() = false with one entry left")
	}
	if stack.Bounds() != inner {
		t.Errorf("after first Pop: Bounds() = %v, want %v", stack.Bounds(), inner)
	}
	stack.Pop()
	if stack.Bounds() != base {
		t.Errorf("after second Pop: Bounds() = %v, want %v", stack.Bounds(), base)
	}
	if stack.Pop() {
		t.Error("Pop() on empty stack = true")
	}
	if stack.Bounds() != base {
		t.Errorf("extra Pop changed bounds to %v", stack.Bounds())
	}
}

func TestStack_Contains(t *testing.T) {
	stack := NewStack(image.Rect(0, 0, 10, 10))
	stack.Push(image.Rect(2, 2, 5, 5))

	tests := []struct {
		x, y int
		want bool
	}{
		{2, 2, true},
		{4, 4, true},
		{5, 4, false},
		{1, 3, false},
	}
	for _, tt := range tests {
		if got := stack.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestStack_Clip(t *testing.T) {
	stack := NewStack(image.Rect(0, 0, 10, 10))
	if got, want := stack.Clip(image.Rect(-5, 5, 3, 20)), image.Rect(0, 5, 3, 10); got != want {
		t.Errorf("Clip() = %v, want %v", got, want)
	}
}

func TestStack_Reset(t *testing.T) {
	stack := NewStack(image.Rect(0, 0, 10, 10))
	stack.Push(image.Rect(1, 1, 2, 2))
	stack.Push(image.Rect(1, 1, 2, 2))

	next := image.Rect(0, 0, 20, 30)
	stack.Reset(next)
	if stack.Depth() != 0 || stack.Bounds() != next {
		t.Errorf("after Reset: depth %d bounds %v", stack.Depth(), stack.Bounds())
	}
}
