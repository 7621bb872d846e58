package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/silverbirch/bunking/pkg/core/model"
)

func TestIsValidDropTarget_MaleCamper(t *testing.T) {
	camper := model.Camper{Gender: model.GenderMale, SessionType: model.SessionMain}

	// Prefix alone is enough, even with no gender designation.
	assert.True(t, IsValidDropTarget(camper, model.Bunk{Name: "B-1"}))

	// Explicit designation alone is enough.
	assert.True(t, IsValidDropTarget(camper, model.Bunk{Name: "Cabin 4", Gender: model.GenderMale}))

	// Girls bunk is invalid.
	assert.False(t, IsValidDropTarget(camper, model.Bunk{Name: "G-1", Gender: model.GenderFemale}))

	// No designation, no prefix: invalid for a binary-gender camper.
	assert.False(t, IsValidDropTarget(camper, model.Bunk{Name: "Cabin 4"}))
}

func TestIsValidDropTarget_FemaleCamper(t *testing.T) {
	camper := model.Camper{Gender: model.GenderFemale, SessionType: model.SessionMain}

	assert.True(t, IsValidDropTarget(camper, model.Bunk{Name: "G-3"}))
	assert.True(t, IsValidDropTarget(camper, model.Bunk{Name: "Willow", Gender: model.GenderFemale}))
	assert.False(t, IsValidDropTarget(camper, model.Bunk{Name: "B-2", Gender: model.GenderMale}))
}

func TestIsValidDropTarget_NonBinaryCamper(t *testing.T) {
	camper := model.Camper{Gender: model.GenderNonBinary, SessionType: model.SessionMain}

	assert.True(t, IsValidDropTarget(camper, model.Bunk{Name: "B-1"}))
	assert.True(t, IsValidDropTarget(camper, model.Bunk{Name: "G-1", Gender: model.GenderFemale}))
	assert.True(t, IsValidDropTarget(camper, model.Bunk{Name: "Cabin 4"}))
}

func TestIsValidDropTarget_AGCamper(t *testing.T) {
	camper := model.Camper{
		Gender:      model.GenderNonBinary,
		SessionType: model.SessionAG,
		SessionName: "AG 7th-8th",
	}

	// Single-grade bunk inside the session range.
	assert.True(t, IsValidDropTarget(camper, model.Bunk{Name: "AG-8", Gender: model.GenderMixed}))

	// Single-grade bunk outside the session range.
	assert.False(t, IsValidDropTarget(camper, model.Bunk{Name: "AG-10", Gender: model.GenderMixed}))

	// Unparseable bunk name: permissive fallback.
	assert.True(t, IsValidDropTarget(camper, model.Bunk{Name: "AG Cabin", Gender: model.GenderMixed}))

	// Non-mixed bunk is never valid for an AG camper.
	assert.False(t, IsValidDropTarget(camper, model.Bunk{Name: "B-1", Gender: model.GenderMale}))
}

func TestIsValidDropTarget_AGCamperMultiGradeBunk(t *testing.T) {
	camper := model.Camper{
		SessionType: model.SessionAG,
		SessionName: "AG 7th-8th",
	}

	// Overlapping multi-grade bunk: touching endpoint counts.
	assert.True(t, IsValidDropTarget(camper, model.Bunk{Name: "AG 8/9", Gender: model.GenderMixed}))

	// Disjoint multi-grade bunk.
	assert.False(t, IsValidDropTarget(camper, model.Bunk{Name: "AG 10/11", Gender: model.GenderMixed}))
}

func TestIsValidDropTarget_AGCamperUnparseableSession(t *testing.T) {
	camper := model.Camper{
		SessionType: model.SessionAG,
		SessionName: "All-Gender Week",
	}

	// Session range unknown: any mixed bunk is allowed.
	assert.True(t, IsValidDropTarget(camper, model.Bunk{Name: "AG-10", Gender: model.GenderMixed}))
}
