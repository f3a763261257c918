package geoplot

// pointerQueue holds synthetic pointer frames. While it is not empty the
// viewer consumes one frame per tick from it instead of the live mouse.
type pointerQueue []pointerFrame

func (q *pointerQueue) empty() bool {
	return len(*q) == 0
}

// pop removes and returns the oldest frame.
func (q *pointerQueue) pop() (pointerFrame, bool) {
	if len(*q) == 0 {
		return pointerFrame{}, false
	}
	f := (*q)[0]
	copy(*q, (*q)[1:])
	*q = (*q)[:len(*q)-1]
	return f, true
}

// press queues a left button press at screen position (x, y).
func (q *pointerQueue) press(x, y float64) {
	*q = append(*q, pointerFrame{X: x, Y: y, Pressed: true})
}

// move queues a move with the button held down.
func (q *pointerQueue) move(x, y float64) {
	*q = append(*q, pointerFrame{X: x, Y: y, Pressed: true})
}

func (q *pointerQueue) release(x, y float64) {
	*q = append(*q, pointerFrame{X: x, Y: y})
}

// click queues a press followed by a release. Consumes two ticks.
func (q *pointerQueue) click(x, y float64) {
	q.press(x, y)
	q.release(x, y)
}

// drag queues a press at (fromX, fromY), frames-2 moves interpolated up to
// (toX, toY) and a release there. The sequence consumes frames ticks, at
// least three.
func (q *pointerQueue) drag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 3)
	q.press(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		q.move(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	q.release(toX, toY)
}

// wheel queues one wheel tick of the given number of notches at (x, y).
func (q *pointerQueue) wheel(x, y float64, notches int) {
	*q = append(*q, pointerFrame{X: x, Y: y, WheelY: float64(notches)})
}
