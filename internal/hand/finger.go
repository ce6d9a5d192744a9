package hand

import (
	"fmt"
	"io"
	"strings"
)

// Finger names one anatomical group of landmarks.
type Finger int

const (
	Wrist Finger = iota
	Thumb
	Index
	Middle
	Ring
	Pinky
)

// Digits lists the five fingers in landmark order.
var Digits = []Finger{Thumb, Index, Middle, Ring, Pinky}

// Each finger occupies the four landmarks ending just before its boundary.
var boundaries = map[Finger]int{
	Wrist:  1,
	Thumb:  5,
	Index:  9,
	Middle: 13,
	Ring:   17,
	Pinky:  21,
}

var fingerNames = map[Finger]string{
	Wrist:  "wrist",
	Thumb:  "thumb",
	Index:  "index",
	Middle: "middle",
	Ring:   "ring",
	Pinky:  "pinky",
}

func (f Finger) String() string {
	if name, ok := fingerNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Finger(%d)", int(f))
}

// Finger returns the landmarks of one group, proximal to distal. The wrist
// group has a single landmark; the others have four, so index 1 is the
// knuckle and index 3 the fingertip.
func (h Hand) Finger(f Finger) []Landmark {
	if f == Wrist {
		return []Landmark{h.Points[0]}
	}
	end, ok := boundaries[f]
	if !ok {
		return nil
	}
	group := make([]Landmark, 4)
	copy(group, h.Points[end-4:end])
	return group
}

// Fingers groups every landmark of the hand by finger, wrist included.
func (h Hand) Fingers() map[Finger][]Landmark {
	fingers := make(map[Finger][]Landmark, len(boundaries))
	for f := range boundaries {
		fingers[f] = h.Finger(f)
	}
	return fingers
}

// Tip returns the fingertip of f.
func (h Hand) Tip(f Finger) Landmark {
	return h.Points[boundaries[f]-1]
}

// Dump writes the hand's landmarks grouped by finger in a single write.
func (h Hand) Dump(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s hand [\n", h.Handedness)
	for _, f := range []Finger{Thumb, Index, Middle, Ring, Pinky, Wrist} {
		fmt.Fprintf(&b, "\t%s {\n", f)
		for _, l := range h.Finger(f) {
			fmt.Fprintf(&b, "\t\t(%d, %d)\n", l.X, l.Y)
		}
		b.WriteString("\t}\n")
	}
	b.WriteString("]\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("dump %s hand: %w", h.Handedness, err)
	}
	return nil
}
