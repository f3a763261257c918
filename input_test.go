package geoplot

import "testing"

func TestPointerClickDoesNotPan(t *testing.T) {
	var p pointerState
	frames := []pointerFrame{
		{X: 100, Y: 100, Pressed: true},
		{X: 102, Y: 101, Pressed: true},
		{X: 102, Y: 101},
	}
	for i, f := range frames {
		if dx, dy := p.step(f, defaultDragDeadZone); dx != 0 || dy != 0 {
			t.Errorf("frame %d: pan = (%v,%v), want (0,0)", i, dx, dy)
		}
	}
}

func TestPointerDragPans(t *testing.T) {
	var p pointerState
	p.step(pointerFrame{X: 100, Y: 100, Pressed: true}, defaultDragDeadZone)

	dx, dy := p.step(pointerFrame{X: 110, Y: 100, Pressed: true}, defaultDragDeadZone)
	if dx != 10 || dy != 0 {
		t.Errorf("first drag frame: pan = (%v,%v), want (10,0)", dx, dy)
	}
	if !p.dragging {
		t.Error("dragging = false after leaving the dead zone")
	}

	dx, dy = p.step(pointerFrame{X: 115, Y: 90, Pressed: true}, defaultDragDeadZone)
	if dx != 5 || dy != -10 {
		t.Errorf("second drag frame: pan = (%v,%v), want (5,-10)", dx, dy)
	}

	dx, dy = p.step(pointerFrame{X: 200, Y: 200}, defaultDragDeadZone)
	if dx != 0 || dy != 0 {
		t.Errorf("release frame: pan = (%v,%v), want (0,0)", dx, dy)
	}
	if p.down || p.dragging {
		t.Error("pointer still down after release")
	}
}

func TestPointerHoverDoesNotPan(t *testing.T) {
	var p pointerState
	p.step(pointerFrame{X: 0, Y: 0}, defaultDragDeadZone)
	if dx, dy := p.step(pointerFrame{X: 50, Y: 50}, defaultDragDeadZone); dx != 0 || dy != 0 {
		t.Errorf("hover: pan = (%v,%v), want (0,0)", dx, dy)
	}
}

func TestWheelSteps(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{1, 1},
		{0.2, 1},
		{-0.2, -1},
		{-2, -2},
	}
	for _, tt := range tests {
		if got := wheelSteps(tt.in); got != tt.want {
			t.Errorf("wheelSteps(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
