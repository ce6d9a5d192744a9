// Package tray provides a system tray menu for a running recognition session.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"
)

// Tray shows the last recognized gesture and lets the user pause
// recognition or quit.
type Tray struct {
	onPause func(paused bool)
	onQuit  func()
	paused  bool
	mu      sync.RWMutex

	// Menu items stored for later updates
	menuPause       *systray.MenuItem
	menuLastGesture *systray.MenuItem
	menuGestures    *systray.MenuItem
	trained         int
}

// New creates a new Tray in the running (unpaused) state.
func New() *Tray {
	return &Tray{}
}

// OnPause sets the callback called when the pause item is toggled.
func (t *Tray) OnPause(fn func(paused bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onPause = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray. It blocks until Quit is called and must run
// on the main goroutine.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit closes the tray from outside the menu.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra hand gesture recognition")

	t.mu.Lock()
	t.menuPause = systray.AddMenuItem(pauseTitle(t.paused), "Pause or resume recognition")
	systray.AddSeparator()

	t.menuLastGesture = systray.AddMenuItem(lastTitle(""), "Last recognized gesture")
	t.menuLastGesture.Disable()
	t.menuGestures = systray.AddMenuItem(trainedTitle(t.trained), "Trained gestures")
	t.menuGestures.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	go func() {
		for {
			select {
			case <-t.menuPause.ClickedCh:
				t.handlePause()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func (t *Tray) handlePause() {
	paused := t.toggle()

	t.mu.RLock()
	callback := t.onPause
	t.mu.RUnlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(paused)
	}
}

// toggle flips the paused state and updates the menu.
func (t *Tray) toggle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.paused = !t.paused
	if t.menuPause != nil {
		t.menuPause.SetTitle(pauseTitle(t.paused))
	}
	return t.paused
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetLastGesture updates the last gesture display in the menu.
func (t *Tray) SetLastGesture(name string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastGesture != nil {
		t.menuLastGesture.SetTitle(lastTitle(name))
	}
}

// SetTrained updates the trained gesture count.
func (t *Tray) SetTrained(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.trained = n
	if t.menuGestures != nil {
		t.menuGestures.SetTitle(trainedTitle(n))
	}
}

// Paused returns the current paused state.
func (t *Tray) Paused() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.paused
}

func pauseTitle(paused bool) string {
	if paused {
		return "○ Paused"
	}
	return "● Recognizing"
}

func lastTitle(name string) string {
	if name == "" {
		return "Last: none"
	}
	return "Last: " + name
}

func trainedTitle(n int) string {
	if n == 1 {
		return "1 gesture trained"
	}
	return fmt.Sprintf("%d gestures trained", n)
}
