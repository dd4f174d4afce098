package spotlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStep_Validate(t *testing.T) {
	render := func(RenderProps) string { return "tip" }

	assert.NoError(t, Step{Placement: SideTop, Render: render}.Validate())
	assert.NoError(t, Step{Placement: SideRight, AlignTo: AlignCenter, Render: render}.Validate())

	assert.ErrorIs(t, Step{Render: render}.Validate(), ErrUnknownPlacement)
	assert.ErrorIs(t, Step{Placement: Side(42), Render: render}.Validate(), ErrUnknownPlacement)
	assert.Error(t, Step{Placement: SideTop}.Validate(), "a step needs a render callback")
}

func TestValidateSteps_ReportsOffenderIndex(t *testing.T) {
	render := func(RenderProps) string { return "tip" }
	err := ValidateSteps([]Step{
		{Placement: SideTop, Render: render},
		{Placement: Side(9), Render: render},
	})

	assert.ErrorIs(t, err, ErrUnknownPlacement)
	assert.Contains(t, err.Error(), "step 1")
}

func TestSideAndAlignStrings(t *testing.T) {
	assert.Equal(t, "top", SideTop.String())
	assert.Equal(t, "bottom", SideBottom.String())
	assert.Equal(t, "left", SideLeft.String())
	assert.Equal(t, "right", SideRight.String())
	assert.Equal(t, "unknown", Side(0).String())

	assert.Equal(t, "spot", AlignSpot.String())
	assert.Equal(t, "center", AlignCenter.String())
}
