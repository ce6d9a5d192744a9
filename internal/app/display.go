package app

import (
	"gocv.io/x/gocv"
)

// Display shows annotated frames and reports key presses.
type Display interface {
	// Show draws frame and returns the key pressed meanwhile, or -1.
	Show(frame *gocv.Mat) int
	Close() error
}

// Window is a Display backed by an OpenCV window.
type Window struct {
	window *gocv.Window
	delay  int
}

// NewWindow opens a window titled title in the top left corner of the
// screen. Each Show waits delayMs for a key.
func NewWindow(title string, delayMs int) *Window {
	if delayMs <= 0 {
		delayMs = 1
	}
	w := gocv.NewWindow(title)
	w.MoveWindow(0, 0)
	return &Window{
		window: w,
		delay:  delayMs,
	}
}

// Show implements Display.
func (w *Window) Show(frame *gocv.Mat) int {
	w.window.IMShow(*frame)
	return w.window.WaitKey(w.delay)
}

// Close implements Display.
func (w *Window) Close() error {
	return w.window.Close()
}

// Headless is a Display for sessions without a screen. It never reports a key.
type Headless struct{}

// Show implements Display.
func (Headless) Show(frame *gocv.Mat) int { return -1 }

// Close implements Display.
func (Headless) Close() error { return nil }
