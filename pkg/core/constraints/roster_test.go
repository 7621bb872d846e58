package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/silverbirch/bunking/pkg/core/model"
)

func TestIsOverCapacity(t *testing.T) {
	assert.True(t, IsOverCapacity(13, 12))
	assert.False(t, IsOverCapacity(12, 12))
	assert.False(t, IsOverCapacity(5, 12))
}

func TestExceedsAgeSpread(t *testing.T) {
	// Exactly 24 months does not warn.
	assert.False(t, ExceedsAgeSpread([]float64{10.0, 12.0}))

	// Just over 24 months warns.
	assert.True(t, ExceedsAgeSpread([]float64{10.0, 12.001}))

	// Fewer than two campers never warns.
	assert.False(t, ExceedsAgeSpread([]float64{10.0}))
	assert.False(t, ExceedsAgeSpread(nil))
}

func TestExceedsGradeRatio(t *testing.T) {
	// 7 of 10 in one grade: 70% rounded, warns.
	grades := []int{7, 7, 7, 7, 7, 7, 7, 8, 8, 8}
	assert.True(t, ExceedsGradeRatio(grades))

	// 50/50 split does not warn.
	grades = []int{7, 7, 7, 7, 7, 8, 8, 8, 8, 8}
	assert.False(t, ExceedsGradeRatio(grades))

	// 2 of 3 in one grade: 67% rounded, does not warn (strict >).
	grades = []int{7, 7, 8}
	assert.False(t, ExceedsGradeRatio(grades))

	// A uniform single-grade bunk is not an imbalance.
	assert.False(t, ExceedsGradeRatio([]int{7, 7, 7, 7}))

	assert.False(t, ExceedsGradeRatio(nil))
}

func TestExceedsGradeDiversity(t *testing.T) {
	assert.False(t, ExceedsGradeDiversity([]int{7, 7, 8, 8}))
	assert.True(t, ExceedsGradeDiversity([]int{6, 7, 8}))
	assert.False(t, ExceedsGradeDiversity(nil))
}

func TestAgePreferenceScore(t *testing.T) {
	// Grade 7 requester wanting older bunkmates.
	score := AgePreferenceScore(7, model.DirectionOlder, []int{8, 8, 7, 6})
	assert.InDelta(t, 0.75, score, 1e-9)

	// Own grade counts as the boundary band in either direction.
	score = AgePreferenceScore(7, model.DirectionYounger, []int{7, 7})
	assert.InDelta(t, 1.0, score, 1e-9)

	// Empty roster scores zero.
	assert.Zero(t, AgePreferenceScore(7, model.DirectionOlder, nil))
}

func TestAgePreferenceSatisfied(t *testing.T) {
	assert.True(t, AgePreferenceSatisfied(7, model.DirectionOlder, []int{8, 9, 6, 7}))
	assert.False(t, AgePreferenceSatisfied(7, model.DirectionOlder, []int{5, 6, 6, 8}))
}

func TestValidateLockGroup(t *testing.T) {
	campers := map[int]model.Camper{
		1: {ID: 1, Gender: model.GenderMale, SessionID: "s1", SessionType: model.SessionMain},
		2: {ID: 2, Gender: model.GenderMale, SessionID: "s1", SessionType: model.SessionMain},
		3: {ID: 3, Gender: model.GenderFemale, SessionID: "s1", SessionType: model.SessionMain},
		4: {ID: 4, Gender: model.GenderMale, SessionID: "s2", SessionType: model.SessionMain},
		5: {ID: 5, Gender: model.GenderFemale, SessionID: "s1", SessionType: model.SessionAG},
		6: {ID: 6, Gender: model.GenderNonBinary, SessionID: "s1", SessionType: model.SessionMain},
	}

	// Same session, same gender: clean.
	v := ValidateLockGroup(model.LockGroup{MemberIDs: []int{1, 2}}, campers)
	assert.True(t, v.Valid())

	// Mixed binary genders, no AG member: cross-gender flag.
	v = ValidateLockGroup(model.LockGroup{MemberIDs: []int{1, 3}}, campers)
	assert.True(t, v.CrossGender)
	assert.False(t, v.CrossSession)

	// Mixed genders but an AG member exempts the group.
	v = ValidateLockGroup(model.LockGroup{MemberIDs: []int{1, 5}}, campers)
	assert.False(t, v.CrossGender)

	// Non-binary plus one binary gender is not a violation.
	v = ValidateLockGroup(model.LockGroup{MemberIDs: []int{1, 6}}, campers)
	assert.False(t, v.CrossGender)

	// Members from different sessions: cross-session flag.
	v = ValidateLockGroup(model.LockGroup{MemberIDs: []int{1, 4}}, campers)
	assert.True(t, v.CrossSession)
}
