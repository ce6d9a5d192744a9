package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/pose"
)

// confirmDisplay presses the confirm key on every frame and calls onShow
// with the running count of shown frames.
type confirmDisplay struct {
	app.Headless
	shows  int
	onShow func(n int)
}

func (d *confirmDisplay) Show(frame *gocv.Mat) int {
	d.shows++
	if d.onShow != nil {
		d.onShow(d.shows)
	}
	return app.KeyQuit
}

func newTrainApp(t *testing.T, policy gesture.Policy) (*app.App, *detector.MockDetector, *confirmDisplay) {
	t.Helper()
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	frame.SetTo(gocv.NewScalar(0, 0, 0, 0))
	t.Cleanup(func() { frame.Close() })

	det := detector.NewMockDetector()
	display := &confirmDisplay{}
	a := app.New(logs.NewTestingLog(t), capture.NewMockCamera([]*gocv.Mat{&frame}, true), det, display, app.Config{Policy: policy})
	require.NoError(t, a.Start())
	return a, det, display
}

func signature(t *testing.T, s string) pose.Signature {
	t.Helper()
	sig, err := pose.ParseSignature(s)
	require.NoError(t, err)
	return sig
}

func TestTrainSlot(t *testing.T) {
	t.Run("retries when no hand was seen", func(t *testing.T) {
		a, det, display := newTrainApp(t, gesture.PolicyStrict)
		display.onShow = func(n int) {
			det.SetHands([]detector.Detection{detector.FistDetection()})
		}

		var out bytes.Buffer
		require.NoError(t, trainSlot(context.Background(), a, "fist", &out, nil))
		assert.Contains(t, out.String(), "Could not find any gestures, try again")
		assert.Equal(t, 2, display.shows)

		sig, ok := a.Get("fist")
		require.True(t, ok)
		assert.Equal(t, "100-11111", sig.String())
	})

	t.Run("retries a pose trained under another name", func(t *testing.T) {
		a, det, display := newTrainApp(t, gesture.PolicyStrict)
		require.NoError(t, a.Train("fist", signature(t, "100-11111")))

		det.SetHands([]detector.Detection{detector.FistDetection()})
		display.onShow = func(n int) {
			det.SetHands([]detector.Detection{detector.OpenPalmDetection()})
		}

		var out bytes.Buffer
		require.NoError(t, trainSlot(context.Background(), a, "rock", &out, nil))
		assert.Contains(t, out.String(), `pose already trained as "fist", try another pose`)
		assert.Equal(t, 2, display.shows)

		sig, ok := a.Get("rock")
		require.True(t, ok)
		assert.Equal(t, "101-00000", sig.String())
	})

	t.Run("taken name is renamed", func(t *testing.T) {
		a, det, _ := newTrainApp(t, gesture.PolicyStrict)
		require.NoError(t, a.Train("fist", signature(t, "100-11111")))
		det.SetHands([]detector.Detection{detector.OpenPalmDetection()})

		var asked []string
		rename := func(name string) (string, error) {
			asked = append(asked, name)
			return "palm", nil
		}

		var out bytes.Buffer
		require.NoError(t, trainSlot(context.Background(), a, "fist", &out, rename))
		assert.Equal(t, []string{"fist"}, asked)
		assert.Contains(t, out.String(), `Trained "palm" as 101-00000`)
		assert.Equal(t, []string{"fist", "palm"}, a.Registry().Names())
	})

	t.Run("taken name without rename fails", func(t *testing.T) {
		a, det, _ := newTrainApp(t, gesture.PolicyPermissive)
		require.NoError(t, a.Train("fist", signature(t, "100-11111")))
		det.SetHands([]detector.Detection{detector.OpenPalmDetection()})

		var out bytes.Buffer
		err := trainSlot(context.Background(), a, "fist", &out, nil)
		assert.ErrorIs(t, err, gesture.ErrDuplicateName)
	})

	t.Run("rename failure ends the slot", func(t *testing.T) {
		a, det, _ := newTrainApp(t, gesture.PolicyPermissive)
		require.NoError(t, a.Train("fist", signature(t, "100-11111")))
		det.SetHands([]detector.Detection{detector.FistDetection()})

		errInput := errors.New("input closed")
		rename := func(string) (string, error) { return "", errInput }

		var out bytes.Buffer
		err := trainSlot(context.Background(), a, "fist", &out, rename)
		assert.ErrorIs(t, err, errInput)
	})

	t.Run("cancelled", func(t *testing.T) {
		a, _, _ := newTrainApp(t, gesture.PolicyStrict)
		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancel()
		<-ctx.Done()

		var out bytes.Buffer
		err := trainSlot(ctx, a, "fist", &out, nil)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestCheckNames(t *testing.T) {
	r := gesture.NewRegistry(gesture.PolicyPermissive)
	require.NoError(t, r.Train("fist", signature(t, "100-11111")))

	assert.NoError(t, checkNames([]string{"palm", "vee"}, r))
	assert.ErrorIs(t, checkNames([]string{"palm", ""}, r), gesture.ErrEmptyName)
	assert.ErrorIs(t, checkNames([]string{"palm", "palm"}, r), gesture.ErrDuplicateName)

	err := checkNames([]string{"palm", "fist"}, r)
	assert.ErrorIs(t, err, gesture.ErrDuplicateName)
	assert.Contains(t, err.Error(), `"fist"`)
}

func TestReporter(t *testing.T) {
	assert.Nil(t, reporter(&bytes.Buffer{}, false, false))

	fist := app.Recognition{Name: "fist", Signature: signature(t, "100-11111"), Detail: hand.Hand{Handedness: hand.Right}}
	palm := app.Recognition{Name: "palm", Signature: signature(t, "101-00000"), Detail: hand.Hand{Handedness: hand.Left}}

	t.Run("prints on change", func(t *testing.T) {
		var out bytes.Buffer
		report := reporter(&out, true, false)
		report(fist)
		report(fist)
		report(palm)

		lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)
		assert.Contains(t, string(lines[0]), "100-11111\tfist")
		assert.Contains(t, string(lines[1]), "101-00000\tpalm")
	})

	t.Run("dumps landmarks", func(t *testing.T) {
		var out bytes.Buffer
		report := reporter(&out, false, true)
		report(fist)
		report(fist)
		report(palm)

		text := out.String()
		assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("Right hand [")))
		assert.Contains(t, text, "Left hand [")
		assert.NotContains(t, text, "fist")
	})
}
