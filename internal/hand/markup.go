package hand

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Overlay colors, keyed by handedness.
var (
	RightColor = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	LeftColor  = color.RGBA{R: 255, G: 0, B: 0, A: 0}
)

// MarkerRadius is the radius of the dot drawn on each landmark.
const MarkerRadius = 2

// MarkupOptions filters which landmarks Markup draws.
type MarkupOptions struct {
	// Finger limits drawing to one group. Nil draws every landmark.
	Finger *Finger
	// MaxHands caps how many hands are drawn. Zero or less draws all.
	MaxHands int
	// Only restricts drawing to one handedness. Nil draws both.
	Only *Handedness
}

// Color returns the overlay color for a hand.
func (h Hand) Color() color.RGBA {
	if h.Handedness == Right {
		return RightColor
	}
	return LeftColor
}

// Markup draws filled dots over the selected landmarks of each hand.
// It returns the number of hands drawn.
func Markup(frame *gocv.Mat, hands []Hand, opts MarkupOptions) int {
	drawn := 0
	for _, h := range hands {
		if opts.MaxHands > 0 && drawn == opts.MaxHands {
			break
		}
		if opts.Only != nil && h.Handedness != *opts.Only {
			continue
		}

		points := h.Points[:]
		if opts.Finger != nil {
			points = h.Finger(*opts.Finger)
		}

		c := h.Color()
		for _, l := range points {
			gocv.Circle(frame, image.Pt(l.X, l.Y), MarkerRadius, c, -1)
		}
		drawn++
	}
	return drawn
}
