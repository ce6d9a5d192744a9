// Package pose encodes a hand's landmarks into a discrete signature.
package pose

import (
	"fmt"
)

// Bit is a single binary feature of a Signature.
type Bit uint8

const (
	Zero Bit = 0
	One  Bit = 1
)

func bit(b bool) Bit {
	if b {
		return One
	}
	return Zero
}

// Signature is the discrete summary of one hand pose. Two poses match only
// when their signatures are equal with ==.
type Signature struct {
	Handedness  Bit    // 1 right, 0 left
	Orientation Bit    // 1 pointing down, 0 up
	Palm        Bit    // 1 facing the camera, 0 facing away
	Thumb       Bit    // 1 bent, 0 straight
	Fingers     [4]Bit // index, middle, ring, pinky; 1 bent, 0 straight
}

// String renders the signature as "hop-tIMRP", for example "110-10110".
func (s Signature) String() string {
	return fmt.Sprintf("%d%d%d-%d%d%d%d%d",
		s.Handedness, s.Orientation, s.Palm,
		s.Thumb, s.Fingers[0], s.Fingers[1], s.Fingers[2], s.Fingers[3])
}

// ParseSignature is the inverse of Signature.String.
func ParseSignature(text string) (Signature, error) {
	var s Signature
	if len(text) != 9 || text[3] != '-' {
		return s, fmt.Errorf("invalid signature %q", text)
	}

	fields := []*Bit{
		&s.Handedness, &s.Orientation, &s.Palm, nil,
		&s.Thumb, &s.Fingers[0], &s.Fingers[1], &s.Fingers[2], &s.Fingers[3],
	}
	for i, f := range fields {
		if f == nil {
			continue
		}
		switch text[i] {
		case '0':
			*f = Zero
		case '1':
			*f = One
		default:
			return Signature{}, fmt.Errorf("invalid signature %q: bad digit at %d", text, i)
		}
	}
	return s, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Signature) UnmarshalText(text []byte) error {
	parsed, err := ParseSignature(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
