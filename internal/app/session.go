package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/pose"
)

// Label placement for the recognized gesture name.
var (
	labelOrigin = image.Pt(100, 100)
	labelColor  = color.RGBA{R: 255, A: 255}
)

const (
	labelScale     = 1.0
	labelThickness = 1
)

// A camera that keeps failing is given readBackoff between reads and is
// abandoned after maxReadFailures in a row.
var (
	readBackoff     = 50 * time.Millisecond
	maxReadFailures = 20
)

// errQuit ends a frame loop normally.
var errQuit = errors.New("quit")

// frameFunc handles one frame and returns errQuit to end the loop.
type frameFunc func(frame *gocv.Mat) error

// run reads frames until fn returns an error, the stream ends or ctx is
// cancelled. errQuit and the end of the stream are reported as nil.
func (a *App) run(ctx context.Context, fn frameFunc) error {
	failures := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frame, err := a.camera.ReadFrame()
		if err != nil {
			switch {
			case errors.Is(err, capture.ErrEndOfStream):
				return nil
			case errors.Is(err, capture.ErrCameraNotOpen):
				return err
			}
			failures++
			if failures >= maxReadFailures {
				return fmt.Errorf("camera read failed %d times in a row: %w", failures, err)
			}
			a.log.Warnf("Error reading frame: %v", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(readBackoff):
			}
			continue
		}
		failures = 0

		err = fn(frame)
		frame.Close()

		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// process is Process with per-frame failures logged and swallowed.
func (a *App) process(frame *gocv.Mat) (Result, bool) {
	result, err := a.Process(frame)
	switch {
	case err == nil:
		return result, true
	case errors.Is(err, hand.ErrNoHand):
		// Expected whenever the hand leaves the frame.
	default:
		a.log.Warnf("Error processing frame: %v", err)
	}
	return Result{}, false
}

func (a *App) show(frame *gocv.Mat) int {
	key := a.display.Show(frame)
	if key < 0 {
		return key
	}
	return key & 0xff
}

// TrainGesture captures frames until the operator presses KeyQuit and trains
// name with the last pose seen. gesture.ErrNothingCaptured means no hand was
// seen and the caller should retry the slot.
func (a *App) TrainGesture(ctx context.Context, name string) (pose.Signature, error) {
	if name == "" {
		return pose.Signature{}, gesture.ErrEmptyName
	}

	a.log.Infof("Training %v: hold the pose and press %c", name, KeyQuit)

	trainer := gesture.NewTrainer()
	err := a.run(ctx, func(frame *gocv.Mat) error {
		if result, ok := a.process(frame); ok {
			trainer.Observe(result.Signature)
			hand.Markup(frame, result.Hands, hand.MarkupOptions{MaxHands: a.config.MaxHands})
		}
		if a.show(frame) == KeyQuit {
			return errQuit
		}
		return nil
	})
	if err != nil {
		return pose.Signature{}, err
	}

	sig, err := trainer.Commit(a.registry, name)
	if err != nil {
		return sig, err
	}
	if err := a.persist(name, sig); err != nil {
		return sig, err
	}

	a.log.Infof("Trained %v as %v from %v frames", name, sig, trainer.Frames())
	return sig, nil
}

// Recognize labels every frame with the matching gesture name until the
// operator presses KeyQuit, the stream ends or ctx is cancelled. onResult,
// when set, receives each frame's recognition.
func (a *App) Recognize(ctx context.Context, onResult func(Recognition)) error {
	a.log.Infof("Recognizing %v gestures", a.registry.Len())

	err := a.run(ctx, func(frame *gocv.Mat) error {
		if !a.Paused() {
			a.recognizeFrame(frame, onResult)
		}
		if a.show(frame) == KeyQuit {
			return errQuit
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) recognizeFrame(frame *gocv.Mat, onResult func(Recognition)) {
	result, ok := a.process(frame)
	if !ok {
		return
	}

	rec := Recognition{
		Name:      a.registry.Recognize(result.Signature),
		Signature: result.Signature,
		Hand:      result.Hands[0].Handedness.String(),
		Time:      time.Now(),
		Detail:    result.Hands[0],
	}

	hand.Markup(frame, result.Hands, hand.MarkupOptions{MaxHands: a.config.MaxHands})
	gocv.PutText(frame, rec.Name, labelOrigin, gocv.FontHersheyComplex, labelScale, labelColor, labelThickness)

	a.log.Debugf("Frame: %v -> %v", rec.Signature, rec.Name)
	a.setLast(rec)
	if onResult != nil {
		onResult(rec)
	}
}
