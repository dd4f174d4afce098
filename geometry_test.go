package spotlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveHighlight_CoversSpot(t *testing.T) {
	// Worked example: 40x20 spot at (100, 200) with 15% padding.
	hl := resolveHighlight(Rect{X: 100, Y: 200, Width: 40, Height: 20}, 1.15)

	assert.InDelta(t, 23.0, hl.Radius, 1e-9)
	assert.InDelta(t, 120.0, hl.CenterX, 1e-9)
	assert.InDelta(t, 210.0, hl.CenterY, 1e-9)
}

func TestResolveHighlight_RadiusTranslationInvariant(t *testing.T) {
	base := Rect{X: 10, Y: 20, Width: 30, Height: 44}
	moved := Rect{X: 510, Y: -120, Width: 30, Height: 44}

	assert.Equal(t, resolveHighlight(base, 1.15).Radius, resolveHighlight(moved, 1.15).Radius)
}

func TestResolveHighlight_CenterIsCentroid(t *testing.T) {
	spots := []Rect{
		{X: 0, Y: 0, Width: 10, Height: 10},
		{X: 5, Y: 90, Width: 3, Height: 71},
		{X: -40, Y: 12, Width: 200, Height: 1},
	}
	for _, spot := range spots {
		hl := resolveHighlight(spot, 1.15)
		assert.Equal(t, spot.X+spot.Width/2, hl.CenterX)
		assert.Equal(t, spot.Y+spot.Height/2, hl.CenterY)
		assert.GreaterOrEqual(t, hl.CenterX, spot.X)
		assert.LessOrEqual(t, hl.CenterX, spot.X+spot.Width)
		assert.GreaterOrEqual(t, hl.CenterY, spot.Y)
		assert.LessOrEqual(t, hl.CenterY, spot.Y+spot.Height)
	}
}

func TestHighlightResolver_Memoizes(t *testing.T) {
	r := NewHighlightResolver(1.15)
	spot := Rect{X: 100, Y: 200, Width: 40, Height: 20}

	first := r.Resolve(spot)

	// Changing the padding behind the resolver's back must not affect a
	// repeated resolve of the same spot: the cached result is returned.
	r.padding = 2.0
	assert.Equal(t, first, r.Resolve(spot))

	// A different spot recomputes with the new padding.
	other := r.Resolve(Rect{X: 0, Y: 0, Width: 40, Height: 20})
	assert.InDelta(t, 40.0, other.Radius, 1e-9)
}

func TestPlaceTip_BottomAlignSpot(t *testing.T) {
	hl := Highlight{CenterX: 120, CenterY: 210, Radius: 23}
	tip := Size{Width: 30, Height: 4}
	viewport := Size{Width: 200, Height: 50}

	pos, ok := PlaceTip(hl, tip, SideBottom, AlignSpot, viewport, 0.02)

	assert.True(t, ok)
	assert.Equal(t, 105, pos.Left) // round(120 - 30/2)
	assert.Equal(t, 233, pos.Top)  // round(210 + 23)
	assert.Equal(t, SideTop, pos.MarginSide)
	assert.Equal(t, 1, pos.Margin) // round(50 * 0.02)
}

func TestPlaceTip_BottomAlignCenter_IgnoresSpot(t *testing.T) {
	tip := Size{Width: 30, Height: 4}
	viewport := Size{Width: 200, Height: 50}

	a, okA := PlaceTip(Highlight{CenterX: 20, CenterY: 10, Radius: 5}, tip, SideBottom, AlignCenter, viewport, 0.02)
	b, okB := PlaceTip(Highlight{CenterX: 180, CenterY: 40, Radius: 9}, tip, SideBottom, AlignCenter, viewport, 0.02)

	assert.True(t, okA)
	assert.True(t, okB)
	assert.Equal(t, a.Left, b.Left)
	assert.Equal(t, 85, a.Left) // round((200 - 30) / 2)
}

func TestPlaceTip_TopBottomMirrorAroundCenter(t *testing.T) {
	hl := Highlight{CenterX: 100, CenterY: 100, Radius: 20}
	tip := Size{Width: 40, Height: 6}
	viewport := Size{Width: 300, Height: 80}

	bottom, _ := PlaceTip(hl, tip, SideBottom, AlignSpot, viewport, 0.02)
	top, _ := PlaceTip(hl, tip, SideTop, AlignSpot, viewport, 0.02)

	assert.Equal(t, 120, bottom.Top) // cy + r
	assert.Equal(t, 74, top.Top)     // cy - r - tipHeight
	assert.Equal(t, bottom.Left, top.Left)
}

func TestPlaceTip_RightWorkedExample(t *testing.T) {
	hl := Highlight{CenterX: 120, CenterY: 210, Radius: 23}
	tip := Size{Width: 150, Height: 60}

	pos, ok := PlaceTip(hl, tip, SideRight, AlignSpot, Size{Width: 400, Height: 300}, 0.02)

	assert.True(t, ok)
	assert.Equal(t, 143, pos.Left)
	assert.Equal(t, 180, pos.Top)
	assert.Equal(t, SideLeft, pos.MarginSide)
}

func TestPlaceTip_LeftRightIgnoreAlign(t *testing.T) {
	hl := Highlight{CenterX: 100, CenterY: 50, Radius: 10}
	tip := Size{Width: 20, Height: 5}
	viewport := Size{Width: 200, Height: 60}

	spot, _ := PlaceTip(hl, tip, SideLeft, AlignSpot, viewport, 0.02)
	center, _ := PlaceTip(hl, tip, SideLeft, AlignCenter, viewport, 0.02)

	assert.Equal(t, spot, center)
	assert.Equal(t, 70, spot.Left) // cx - r - tipWidth
	assert.Equal(t, 48, spot.Top)  // round(cy - tipHeight/2)
}

func TestPlaceTip_UnknownSideYieldsNoPosition(t *testing.T) {
	_, ok := PlaceTip(Highlight{CenterX: 10, CenterY: 10, Radius: 5}, Size{Width: 4, Height: 2}, sideUnknown, AlignSpot, Size{Width: 80, Height: 24}, 0.02)
	assert.False(t, ok)

	_, ok = PlaceTip(Highlight{}, Size{}, Side(99), AlignSpot, Size{Width: 80, Height: 24}, 0.02)
	assert.False(t, ok)
}

func TestTipPosition_PaintedOffsetsAwayFromHighlight(t *testing.T) {
	// Margin on the tip's top edge pushes the tip down, away from the circle.
	left, top := (TipPosition{Left: 10, Top: 20, Margin: 2, MarginSide: SideTop}).painted()
	assert.Equal(t, 10, left)
	assert.Equal(t, 22, top)

	left, top = (TipPosition{Left: 10, Top: 20, Margin: 2, MarginSide: SideBottom}).painted()
	assert.Equal(t, 18, top)
	assert.Equal(t, 10, left)

	left, _ = (TipPosition{Left: 10, Top: 20, Margin: 2, MarginSide: SideLeft}).painted()
	assert.Equal(t, 12, left)

	left, _ = (TipPosition{Left: 10, Top: 20, Margin: 2, MarginSide: SideRight}).painted()
	assert.Equal(t, 8, left)
}
