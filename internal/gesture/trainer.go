package gesture

import (
	"errors"

	"github.com/ayusman/mudra/internal/pose"
)

// ErrNothingCaptured is returned by Commit when no pose was seen while the
// operator was positioning their hand.
var ErrNothingCaptured = errors.New("no pose captured")

// Trainer follows the capture loop for one gesture slot. Every frame that
// yields a pose replaces the previous one, so the pose held when the operator
// confirms is the one trained.
type Trainer struct {
	latest   pose.Signature
	captured bool
	frames   int
}

// NewTrainer creates a Trainer with nothing captured.
func NewTrainer() *Trainer {
	return &Trainer{}
}

// Observe records the pose from the latest frame.
func (t *Trainer) Observe(sig pose.Signature) {
	t.latest = sig
	t.captured = true
	t.frames++
}

// Frames returns how many poses have been observed since the last Reset.
func (t *Trainer) Frames() int {
	return t.frames
}

// Reset discards the captured pose.
func (t *Trainer) Reset() {
	*t = Trainer{}
}

// Commit trains name with the latest pose and resets the trainer on success.
func (t *Trainer) Commit(r *Registry, name string) (pose.Signature, error) {
	if !t.captured {
		return pose.Signature{}, ErrNothingCaptured
	}
	sig := t.latest
	if err := r.Train(name, sig); err != nil {
		return sig, err
	}
	t.Reset()
	return sig, nil
}
