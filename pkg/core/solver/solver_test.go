package solver

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silverbirch/bunking/pkg/core/model"
)

const testYear = 2025

// testCamper builds a camper whose derived grade for testYear equals the
// given grade.
func testCamper(id int, gender model.Gender, grade int) model.Camper {
	return model.Camper{
		ID:          id,
		FirstName:   fmt.Sprintf("Camper%d", id),
		LastName:    "Test",
		Gender:      gender,
		Birthdate:   time.Date(testYear-6-grade, time.June, 1, 0, 0, 0, 0, time.UTC),
		SessionID:   "s1",
		SessionType: model.SessionMain,
	}
}

func boysAndGirls(boyCount, girlCount, boyGrade, girlGrade int) []model.Camper {
	var campers []model.Camper
	for i := 0; i < boyCount; i++ {
		campers = append(campers, testCamper(i+1, model.GenderMale, boyGrade))
	}
	for i := 0; i < girlCount; i++ {
		campers = append(campers, testCamper(100+i+1, model.GenderFemale, girlGrade))
	}
	return campers
}

func standardBunks() []model.Bunk {
	return []model.Bunk{
		{ID: "b1", Name: "B-1", SessionID: "s1", Capacity: 12},
		{ID: "b2", Name: "B-2", SessionID: "s1", Capacity: 12},
		{ID: "g1", Name: "G-1", SessionID: "s1", Capacity: 12},
		{ID: "g2", Name: "G-2", SessionID: "s1", Capacity: 12},
	}
}

func bunkWith(id string, requester, requestee int) model.Request {
	return model.Request{
		ID:          id,
		RequesterID: requester,
		RequesteeID: requestee,
		Type:        model.RequestBunkWith,
		Priority:    3,
		Confidence:  1.0,
		Status:      model.StatusResolved,
	}
}

func TestSolve_EndToEndScenario(t *testing.T) {
	requests := []model.Request{
		bunkWith("r1", 1, 2),
		bunkWith("r2", 3, 4),
		bunkWith("r3", 5, 6),
		bunkWith("r4", 7, 8),
		bunkWith("r5", 9, 10),
	}

	outcome, err := Solve(context.Background(), Config{
		SessionID:  "s1",
		Year:       testYear,
		Campers:    boysAndGirls(10, 10, 7, 8),
		Bunks:      standardBunks(),
		Requests:   requests,
		TimeBudget: 200 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Empty(t, outcome.Unassigned)
	assert.Len(t, outcome.Assignment, 20)

	// Every bunk_with pair shares a bunk.
	for _, req := range requests {
		assert.Equal(t, outcome.Assignment[req.RequesterID], outcome.Assignment[req.RequesteeID],
			"request %s not satisfied", req.ID)
	}

	// Gender/area compatibility holds throughout.
	for camperID, bunkID := range outcome.Assignment {
		if camperID < 100 {
			assert.Contains(t, []string{"b1", "b2"}, bunkID, "boy %d in %s", camperID, bunkID)
		} else {
			assert.Contains(t, []string{"g1", "g2"}, bunkID, "girl %d in %s", camperID, bunkID)
		}
	}

	// Nothing over capacity, so no violations of any severity.
	assert.Empty(t, outcome.Violations)
}

func TestSolve_NotBunkWithSeparates(t *testing.T) {
	campers := boysAndGirls(4, 0, 7, 0)
	requests := []model.Request{
		{
			ID:          "r1",
			RequesterID: 1,
			RequesteeID: 2,
			Type:        model.RequestNotBunkWith,
			Priority:    4,
			Confidence:  1.0,
			Status:      model.StatusResolved,
		},
	}

	outcome, err := Solve(context.Background(), Config{
		Year:       testYear,
		Campers:    campers,
		Bunks:      standardBunks(),
		Requests:   requests,
		TimeBudget: 200 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Empty(t, outcome.Unassigned)
	assert.NotEqual(t, outcome.Assignment[1], outcome.Assignment[2])
}

func TestSolve_HardCeilingLeavesUnassigned(t *testing.T) {
	campers := boysAndGirls(15, 0, 7, 0)
	bunks := []model.Bunk{{ID: "b1", Name: "B-1", SessionID: "s1", Capacity: 12}}

	outcome, err := Solve(context.Background(), Config{
		Year:       testYear,
		Campers:    campers,
		Bunks:      bunks,
		TimeBudget: 100 * time.Millisecond,
	})
	require.NoError(t, err)

	// The hard ceiling is 14; the fifteenth boy stays unassigned.
	assert.Len(t, outcome.Assignment, 14)
	require.Len(t, outcome.Unassigned, 1)
	assert.NotEmpty(t, outcome.Unassigned[0].Reason)

	// Overfilling past the soft capacity is reported as a warning.
	require.NotEmpty(t, outcome.Violations)
	for _, v := range outcome.Violations {
		assert.Equal(t, SeverityWarning, v.Severity)
	}
	assert.False(t, outcome.Success())
}

func TestSolve_LockGroupStaysTogether(t *testing.T) {
	campers := boysAndGirls(8, 0, 7, 0)
	group := model.LockGroup{
		ID:        "lg1",
		Name:      "The Trio",
		SessionID: "s1",
		MemberIDs: []int{1, 2, 3},
	}

	outcome, err := Solve(context.Background(), Config{
		Year:       testYear,
		Campers:    campers,
		Bunks:      standardBunks(),
		LockGroups: []model.LockGroup{group},
		TimeBudget: 100 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Empty(t, outcome.Unassigned)
	assert.Equal(t, outcome.Assignment[1], outcome.Assignment[2])
	assert.Equal(t, outcome.Assignment[2], outcome.Assignment[3])
}

func TestSolve_CamperInTwoLockGroupsFails(t *testing.T) {
	campers := boysAndGirls(3, 0, 7, 0)
	groups := []model.LockGroup{
		{ID: "lg1", Name: "A", MemberIDs: []int{1, 2}},
		{ID: "lg2", Name: "B", MemberIDs: []int{2, 3}},
	}

	_, err := Solve(context.Background(), Config{
		Year:       testYear,
		Campers:    campers,
		Bunks:      standardBunks(),
		LockGroups: groups,
		TimeBudget: 50 * time.Millisecond,
	})
	assert.Error(t, err)
}

func TestSolve_DeterministicAcrossRuns(t *testing.T) {
	// A solved-to-optimum input: local search can never find a strict
	// improvement, so repeated runs return identical assignments no matter
	// how many iterations fit the budget.
	cfg := Config{
		Year:    testYear,
		Campers: boysAndGirls(10, 10, 7, 8),
		Bunks:   standardBunks(),
		Requests: []model.Request{
			bunkWith("r1", 1, 2),
			bunkWith("r2", 3, 4),
		},
		TimeBudget: 100 * time.Millisecond,
	}

	first, err := Solve(context.Background(), cfg)
	require.NoError(t, err)
	second, err := Solve(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Assignment, second.Assignment)
	assert.Equal(t, first.Objective, second.Objective)
}

func TestSolve_LargerBudgetNeverScoresWorse(t *testing.T) {
	cfg := Config{
		Year:    testYear,
		Campers: boysAndGirls(12, 12, 7, 8),
		Bunks:   standardBunks(),
		Requests: []model.Request{
			bunkWith("r1", 1, 2),
			bunkWith("r2", 3, 4),
			bunkWith("r3", 5, 6),
			bunkWith("r4", 101, 102),
		},
	}

	cfg.TimeBudget = 30 * time.Millisecond
	quick, err := Solve(context.Background(), cfg)
	require.NoError(t, err)

	cfg.TimeBudget = 150 * time.Millisecond
	thorough, err := Solve(context.Background(), cfg)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, thorough.Objective, quick.Objective)
}

func TestSolve_ContextCancelReturnsBestSoFar(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := Solve(ctx, Config{
		Year:       testYear,
		Campers:    boysAndGirls(6, 6, 7, 8),
		Bunks:      standardBunks(),
		TimeBudget: 10 * time.Second,
	})
	require.NoError(t, err)

	// Greedy construction still runs; the improvement phase exits at once.
	assert.Len(t, outcome.Assignment, 12)
}

func TestSolve_NoBunks(t *testing.T) {
	_, err := Solve(context.Background(), Config{
		Year:       testYear,
		Campers:    boysAndGirls(2, 0, 7, 0),
		TimeBudget: 10 * time.Millisecond,
	})
	assert.Error(t, err)
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("thorough")
	require.NoError(t, err)
	assert.Equal(t, 180*time.Second, tier.Budget())

	_, err = ParseTier("extreme")
	assert.Error(t, err)
}

func TestTierForBudget(t *testing.T) {
	tier, err := TierForBudget(300)
	require.NoError(t, err)
	assert.Equal(t, TierDeep, tier)

	_, err = TierForBudget(45)
	assert.Error(t, err)
}
