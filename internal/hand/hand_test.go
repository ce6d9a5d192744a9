package hand

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

// sequential returns a hand whose landmark i sits at (i, 100+i).
func sequential(handedness Handedness) Hand {
	h := Hand{Handedness: handedness}
	for i := range h.Points {
		h.Points[i] = Landmark{X: i, Y: 100 + i}
	}
	return h
}

func TestConstruct(t *testing.T) {
	t.Run("no detections", func(t *testing.T) {
		hands, err := Construct(nil, 640, 480)
		require.ErrorIs(t, err, ErrNoHand)
		assert.Nil(t, hands)
	})

	t.Run("scales and rounds to pixels", func(t *testing.T) {
		d := detector.Detection{Handedness: detector.LabelRight}
		d.Points[detector.Wrist] = detector.Point{X: 0.5, Y: 0.5}
		d.Points[detector.IndexTip] = detector.Point{X: 0.1004, Y: 0.9989}
		d.Points[detector.PinkyTip] = detector.Point{X: 0.0016, Y: 0.0011}

		hands, err := Construct([]detector.Detection{d}, 640, 480)
		require.NoError(t, err)
		require.Len(t, hands, 1)

		h := hands[0]
		assert.Equal(t, Right, h.Handedness)
		assert.Equal(t, Landmark{X: 320, Y: 240}, h.Points[detector.Wrist])
		assert.Equal(t, Landmark{X: 64, Y: 479}, h.Points[detector.IndexTip])
		assert.Equal(t, Landmark{X: 1, Y: 1}, h.Points[detector.PinkyTip])
	})

	t.Run("pairs each hand with its label", func(t *testing.T) {
		fist := detector.FistDetection()
		dets := []detector.Detection{fist, detector.Mirrored(fist)}

		hands, err := Construct(dets, 640, 480)
		require.NoError(t, err)
		require.Len(t, hands, 2)
		assert.Equal(t, Right, hands[0].Handedness)
		assert.Equal(t, Left, hands[1].Handedness)
	})

	t.Run("rejects unknown label", func(t *testing.T) {
		d := detector.FistDetection()
		d.Handedness = "Both"

		_, err := Construct([]detector.Detection{d}, 640, 480)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownHandedness))
	})
}

func TestParseHandedness(t *testing.T) {
	h, err := ParseHandedness("Left")
	require.NoError(t, err)
	assert.Equal(t, Left, h)
	assert.Equal(t, "Left", h.String())

	h, err = ParseHandedness("Right")
	require.NoError(t, err)
	assert.Equal(t, Right, h)
	assert.Equal(t, "Right", h.String())

	_, err = ParseHandedness("right")
	assert.ErrorIs(t, err, ErrUnknownHandedness)
}

func TestFinger(t *testing.T) {
	h := sequential(Right)

	t.Run("wrist is a single landmark", func(t *testing.T) {
		assert.Equal(t, []Landmark{{X: 0, Y: 100}}, h.Finger(Wrist))
	})

	cases := []struct {
		finger Finger
		first  int
	}{
		{Thumb, 1},
		{Index, 5},
		{Middle, 9},
		{Ring, 13},
		{Pinky, 17},
	}
	for _, tc := range cases {
		t.Run(tc.finger.String(), func(t *testing.T) {
			group := h.Finger(tc.finger)
			require.Len(t, group, 4)
			for i, l := range group {
				assert.Equal(t, tc.first+i, l.X, "proximal to distal order")
			}
			assert.Equal(t, group[3], h.Tip(tc.finger))
		})
	}

	t.Run("returned group is a copy", func(t *testing.T) {
		group := h.Finger(Index)
		group[0] = Landmark{X: -1, Y: -1}
		assert.Equal(t, Landmark{X: 5, Y: 105}, h.Points[5])
	})

	t.Run("unknown finger", func(t *testing.T) {
		assert.Nil(t, h.Finger(Finger(42)))
	})
}

func TestFingers(t *testing.T) {
	h := sequential(Left)
	fingers := h.Fingers()

	names := make([]string, 0, len(fingers))
	for f := range fingers {
		names = append(names, f.String())
	}
	assert.ElementsMatch(t, []string{"thumb", "index", "middle", "ring", "pinky", "wrist"}, names)

	// The groups partition all 21 landmarks with no overlap.
	seen := make(map[int]bool)
	total := 0
	for _, group := range fingers {
		for _, l := range group {
			assert.False(t, seen[l.X], "landmark %d appears twice", l.X)
			seen[l.X] = true
			total++
		}
	}
	assert.Equal(t, detector.NumLandmarks, total)
	assert.Len(t, fingers[Wrist], 1)
	for _, f := range Digits {
		assert.Len(t, fingers[f], 4)
	}
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sequential(Right).Dump(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Right hand [\n"))
	assert.Contains(t, out, "\tthumb {\n\t\t(1, 101)\n")
	assert.Contains(t, out, "\twrist {\n\t\t(0, 100)\n\t}\n")
	assert.Equal(t, detector.NumLandmarks, strings.Count(out, "\t\t("))
}

type brokenWriter struct {
	writes int
}

var errBroken = errors.New("broken pipe")

func (w *brokenWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errBroken
}

func TestDump_WriteError(t *testing.T) {
	w := &brokenWriter{}
	err := sequential(Left).Dump(w)
	assert.ErrorIs(t, err, errBroken)
	assert.Equal(t, 1, w.writes)
}

func TestMarkup(t *testing.T) {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()
	frame.SetTo(gocv.NewScalar(0, 0, 0, 0))

	hands, err := Construct([]detector.Detection{
		detector.OpenPalmDetection(),
		detector.Mirrored(detector.FistDetection()),
	}, 640, 480)
	require.NoError(t, err)

	t.Run("colors by handedness", func(t *testing.T) {
		drawn := Markup(&frame, hands, MarkupOptions{})
		assert.Equal(t, 2, drawn)

		tip := hands[0].Tip(Index)
		px := frame.GetVecbAt(tip.Y, tip.X)
		assert.Equal(t, uint8(255), px[1], "right hand should be green")

		tip = hands[1].Tip(Index)
		px = frame.GetVecbAt(tip.Y, tip.X)
		assert.Equal(t, uint8(255), px[2], "left hand should be red")
	})

	t.Run("max hands", func(t *testing.T) {
		assert.Equal(t, 1, Markup(&frame, hands, MarkupOptions{MaxHands: 1}))
	})

	t.Run("only one handedness", func(t *testing.T) {
		left := Left
		assert.Equal(t, 1, Markup(&frame, hands, MarkupOptions{Only: &left}))
	})

	t.Run("single finger", func(t *testing.T) {
		blank := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
		defer blank.Close()
		blank.SetTo(gocv.NewScalar(0, 0, 0, 0))

		thumb := Thumb
		Markup(&blank, hands[:1], MarkupOptions{Finger: &thumb})

		tip := hands[0].Tip(Thumb)
		assert.Equal(t, uint8(255), blank.GetVecbAt(tip.Y, tip.X)[1])
		wrist := hands[0].Points[0]
		assert.Equal(t, uint8(0), blank.GetVecbAt(wrist.Y, wrist.X)[1])
	})
}
