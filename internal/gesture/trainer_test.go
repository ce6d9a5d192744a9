package gesture

import (
	"errors"
	"testing"
)

func TestTrainer_CommitLatest(t *testing.T) {
	trainer := NewTrainer()
	r := NewRegistry(PolicyPermissive)

	trainer.Observe(palm)
	trainer.Observe(vee)
	trainer.Observe(fist)

	if trainer.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", trainer.Frames())
	}

	sig, err := trainer.Commit(r, "fist")
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if sig != fist {
		t.Errorf("expected the last observed pose, got %s", sig)
	}
	if got := r.Recognize(fist); got != "fist" {
		t.Errorf("Recognize() = %q", got)
	}

	if trainer.Frames() != 0 {
		t.Error("trainer should be reset after a successful commit")
	}
	if _, err := trainer.Commit(r, "again"); !errors.Is(err, ErrNothingCaptured) {
		t.Errorf("expected ErrNothingCaptured after reset, got %v", err)
	}
}

func TestTrainer_NothingCaptured(t *testing.T) {
	trainer := NewTrainer()
	r := NewRegistry(PolicyPermissive)

	_, err := trainer.Commit(r, "fist")
	if !errors.Is(err, ErrNothingCaptured) {
		t.Fatalf("expected ErrNothingCaptured, got %v", err)
	}
	if r.Len() != 0 {
		t.Error("registry should be untouched")
	}
}

func TestTrainer_RejectedCommitKeepsPose(t *testing.T) {
	trainer := NewTrainer()
	r := NewRegistry(PolicyStrict)
	mustTrain(t, r, "fist", fist)

	trainer.Observe(fist)
	_, err := trainer.Commit(r, "rock")
	if !errors.Is(err, ErrDuplicateSignature) {
		t.Fatalf("expected ErrDuplicateSignature, got %v", err)
	}

	if trainer.Frames() != 1 {
		t.Error("rejected commit should keep the captured pose for a retry")
	}
	sig, err := trainer.Commit(NewRegistry(PolicyPermissive), "rock")
	if err != nil || sig != fist {
		t.Errorf("retry Commit() = %s, %v; want %s", sig, err, fist)
	}

	trainer.Observe(vee)
	trainer.Reset()
	if trainer.Frames() != 0 {
		t.Error("Reset should clear the frame count")
	}
}
