// Package app runs a gesture session: it reads camera frames one at a time,
// turns the first detected hand into a pose signature, and either trains or
// recognizes it against the gesture registry.
package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cyclopcam/logs"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/pose"
	"github.com/ayusman/mudra/internal/store"
)

// KeyQuit confirms a training slot and ends recognition.
const KeyQuit = 'q'

// Config holds configuration options for the application.
type Config struct {
	// Store persists the registry between sessions. Nil keeps it in memory.
	Store  *store.Store
	Policy gesture.Policy
	// MaxHands limits how many hands are drawn on the preview. Zero draws all.
	MaxHands int
}

// Result is the outcome of processing one frame.
type Result struct {
	Hands     []hand.Hand
	Signature pose.Signature
}

// Recognition is published for every frame in which a hand was seen.
type Recognition struct {
	Name      string         `json:"name"`
	Signature pose.Signature `json:"signature"`
	Hand      string         `json:"hand"`
	Time      time.Time      `json:"time"`
	// Detail is the hand the signature was built from.
	Detail hand.Hand `json:"-"`
}

// App owns the camera, detector, display and registry for one session.
type App struct {
	config   Config
	log      logs.Log
	camera   capture.Camera
	detector detector.Detector
	display  Display
	registry *gesture.Registry

	mu     sync.RWMutex
	paused bool
	last   Recognition
}

// New creates an App. The camera is opened by Start.
func New(log logs.Log, camera capture.Camera, det detector.Detector, display Display, config Config) *App {
	return &App{
		config:   config,
		log:      log,
		camera:   camera,
		detector: det,
		display:  display,
		registry: gesture.NewRegistry(config.Policy),
	}
}

// Start opens the camera.
func (a *App) Start() error {
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	a.log.Infof("Camera opened at %v FPS", a.camera.FPS())
	return nil
}

// Stop releases the camera, detector and display.
func (a *App) Stop() {
	if err := a.camera.Close(); err != nil {
		a.log.Warnf("Error closing camera: %v", err)
	}
	if err := a.detector.Close(); err != nil {
		a.log.Warnf("Error closing detector: %v", err)
	}
	if err := a.display.Close(); err != nil {
		a.log.Warnf("Error closing display: %v", err)
	}
}

// Process detects hands in frame and encodes the first one.
// hand.ErrNoHand is returned when the frame holds no hand.
func (a *App) Process(frame *gocv.Mat) (Result, error) {
	dets, err := a.detector.Detect(frame)
	if err != nil {
		return Result{}, fmt.Errorf("detect hands: %w", err)
	}

	hands, err := hand.Construct(dets, frame.Cols(), frame.Rows())
	if err != nil {
		return Result{}, err
	}

	return Result{
		Hands:     hands,
		Signature: pose.Encode(hands[0]),
	}, nil
}

// Registry returns the session's gesture registry.
func (a *App) Registry() *gesture.Registry {
	return a.registry
}

// SetPaused stops or resumes frame processing. Paused frames are still shown.
func (a *App) SetPaused(paused bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paused = paused
}

// Paused reports whether frame processing is paused.
func (a *App) Paused() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.paused
}

// Last returns the most recent recognition.
func (a *App) Last() (Recognition, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.last, !a.last.Time.IsZero()
}

func (a *App) setLast(r Recognition) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.last = r
}

// Entries returns the trained gestures in training order.
func (a *App) Entries() []gesture.Entry {
	return a.registry.Entries()
}

// Get returns the signature trained under name.
func (a *App) Get(name string) (pose.Signature, bool) {
	return a.registry.Get(name)
}

// Train binds name to sig and persists it when a store is configured.
func (a *App) Train(name string, sig pose.Signature) error {
	if err := a.registry.Train(name, sig); err != nil {
		return err
	}
	return a.persist(name, sig)
}

// persist stores a gesture already in the registry, undoing the registry
// insert if the store refuses it.
func (a *App) persist(name string, sig pose.Signature) error {
	if a.config.Store == nil {
		return nil
	}
	if err := a.config.Store.Gestures().Create(&store.Gesture{Name: name, Signature: sig}); err != nil {
		a.registry.Remove(name)
		return fmt.Errorf("persist gesture %q: %w", name, err)
	}
	return nil
}

// Remove forgets a gesture in the registry and the store.
func (a *App) Remove(name string) bool {
	if !a.registry.Remove(name) {
		return false
	}
	if a.config.Store != nil {
		err := a.config.Store.Gestures().Delete(name)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			a.log.Warnf("Failed to delete stored gesture %v: %v", name, err)
		}
	}
	return true
}

// LoadGestures fills the registry from the store.
func (a *App) LoadGestures() error {
	if a.config.Store == nil {
		return nil
	}

	gestures, err := a.config.Store.Gestures().List()
	if err != nil {
		return err
	}

	for _, g := range gestures {
		if err := a.registry.Train(g.Name, g.Signature); err != nil {
			a.log.Warnf("Skipping stored gesture %v: %v", g.Name, err)
		}
	}

	a.log.Infof("Loaded %v gestures from database", len(gestures))
	return nil
}

// SaveGestures replaces the stored gestures with the registry's contents.
func (a *App) SaveGestures() error {
	if a.config.Store == nil {
		return nil
	}

	entries := a.registry.Entries()
	gestures := make([]store.Gesture, len(entries))
	for i, e := range entries {
		gestures[i] = store.Gesture{Name: e.Name, Signature: e.Signature}
	}

	if err := a.config.Store.Gestures().Replace(gestures); err != nil {
		return err
	}

	a.log.Infof("Saved %v gestures to database", len(gestures))
	return nil
}

// Reset forgets every gesture, in the registry and in the store.
func (a *App) Reset() error {
	for _, name := range a.registry.Names() {
		a.registry.Remove(name)
	}
	return a.SaveGestures()
}
