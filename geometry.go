package spotlight

import "math"

// Rect describes a rectangular region of the viewport in cell units.
//
// A Rect is used both for the highlighted spot supplied by the host and for
// the measured size of a rendered tip. Width and Height must be >= 0.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Size is an integer width/height pair, used for the viewport and for
// measured tip content.
type Size struct {
	Width  int
	Height int
}

// Side selects which edge of the highlight the tip is anchored to.
//
// The zero value is intentionally invalid so that an uninitialized step
// descriptor fails validation instead of silently picking a placement.
type Side int

const (
	sideUnknown Side = iota

	// SideTop anchors the tip above the highlight.
	SideTop
	// SideBottom anchors the tip below the highlight.
	SideBottom
	// SideLeft anchors the tip to the left of the highlight.
	SideLeft
	// SideRight anchors the tip to the right of the highlight.
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// Align selects the horizontal alignment rule for tips anchored above or
// below the highlight. It has no effect for SideLeft and SideRight.
type Align int

const (
	// AlignSpot centers the tip on the highlight's horizontal center.
	// This is the default for the zero value of a step descriptor.
	AlignSpot Align = iota
	// AlignCenter centers the tip on the viewport's horizontal center,
	// independent of where the spot sits.
	AlignCenter
)

func (a Align) String() string {
	if a == AlignCenter {
		return "center"
	}
	return "spot"
}

// Highlight is the circular cutout geometry: a center point and a radius,
// both continuous values that may be mid-animation.
type Highlight struct {
	CenterX float64
	CenterY float64
	Radius  float64
}

// resolveHighlight maps a spot rectangle to the circle that covers it.
// The padding factor (>= 1) guarantees coverage of non-square spots; with
// the default 1.15 the circle extends 15% beyond the longer half-extent.
func resolveHighlight(spot Rect, padding float64) Highlight {
	return Highlight{
		CenterX: spot.X + spot.Width/2,
		CenterY: spot.Y + spot.Height/2,
		Radius:  math.Max(spot.Width, spot.Height) / 2 * padding,
	}
}

// HighlightResolver memoizes highlight resolution on the spot rectangle.
// Resolve is pure arithmetic, but spot rects arrive every frame while they
// only change on step transitions, so the last result is cached.
type HighlightResolver struct {
	padding float64
	last    Rect
	cached  Highlight
	valid   bool
}

// NewHighlightResolver returns a resolver using the given padding factor.
func NewHighlightResolver(padding float64) HighlightResolver {
	return HighlightResolver{padding: padding}
}

// Resolve returns the highlight circle covering spot, recomputing only when
// the spot differs from the previous call.
func (r *HighlightResolver) Resolve(spot Rect) Highlight {
	if r.valid && spot == r.last {
		return r.cached
	}
	r.last = spot
	r.cached = resolveHighlight(spot, r.padding)
	r.valid = true
	return r.cached
}

// TipPosition is the resolved placement for a measured tip.
//
// Left and Top position the tip's top-left corner. Margin is the breathing
// room between the tip and the highlight circle, carried on MarginSide (the
// edge of the tip facing the highlight); the renderer offsets the tip away
// from the circle by that amount when painting.
type TipPosition struct {
	Left       int
	Top        int
	Margin     int
	MarginSide Side
}

// painted returns the final top-left cell after applying the margin offset
// away from the highlight.
func (p TipPosition) painted() (left, top int) {
	left, top = p.Left, p.Top
	switch p.MarginSide {
	case SideTop:
		top += p.Margin
	case SideBottom:
		top -= p.Margin
	case SideRight:
		left -= p.Margin
	case SideLeft:
		left += p.Margin
	}
	return left, top
}

// PlaceTip derives the tip position from the highlight geometry, the tip's
// measured size, the requested side and alignment, and the viewport.
//
// The bool result is false when side is not a recognized placement; no
// position is produced in that case and the tip must stay hidden. AlignTo
// only affects SideTop and SideBottom.
func PlaceTip(hl Highlight, tip Size, side Side, align Align, viewport Size, marginFrac float64) (TipPosition, bool) {
	cx, cy, r := hl.CenterX, hl.CenterY, hl.Radius
	tw, th := float64(tip.Width), float64(tip.Height)

	horizontal := func() float64 {
		if align == AlignCenter {
			return (float64(viewport.Width) - tw) / 2
		}
		return cx - tw/2
	}

	switch side {
	case SideBottom:
		return TipPosition{
			Left:       roundCell(horizontal()),
			Top:        roundCell(cy + r),
			Margin:     roundCell(float64(viewport.Height) * marginFrac),
			MarginSide: SideTop,
		}, true
	case SideTop:
		return TipPosition{
			Left:       roundCell(horizontal()),
			Top:        roundCell(cy - r - th),
			Margin:     roundCell(float64(viewport.Height) * marginFrac),
			MarginSide: SideBottom,
		}, true
	case SideLeft:
		return TipPosition{
			Left:       roundCell(cx - r - tw),
			Top:        roundCell(cy - th/2),
			Margin:     roundCell(float64(viewport.Width) * marginFrac),
			MarginSide: SideRight,
		}, true
	case SideRight:
		return TipPosition{
			Left:       roundCell(cx + r),
			Top:        roundCell(cy - th/2),
			Margin:     roundCell(float64(viewport.Width) * marginFrac),
			MarginSide: SideLeft,
		}, true
	}
	return TipPosition{}, false
}

// roundCell rounds a continuous coordinate to the nearest cell.
func roundCell(v float64) int {
	return int(math.Round(v))
}
