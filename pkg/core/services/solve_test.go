package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/silverbirch/bunking/pkg/core/solver"
	"github.com/silverbirch/bunking/pkg/db"
)

// mockSolveStore implements SolveStore for testing
type mockSolveStore struct {
	session          *db.Session
	campers          []db.Camper
	bunks            []db.Bunk
	requests         []db.Request
	lockGroups       []db.LockGroup
	lockGroupMembers []db.LockGroupMember

	replaced           []db.Assignment
	replacedScenarioID string
	replaceCalls       int

	getSessionErr error
	replaceErr    error
}

func (m *mockSolveStore) GetSession(ctx context.Context, sessionID string) (*db.Session, error) {
	if m.getSessionErr != nil {
		return nil, m.getSessionErr
	}
	return m.session, nil
}

func (m *mockSolveStore) GetCampers(ctx context.Context, sessionID string) ([]db.Camper, error) {
	return m.campers, nil
}

func (m *mockSolveStore) GetBunks(ctx context.Context, sessionID string) ([]db.Bunk, error) {
	return m.bunks, nil
}

func (m *mockSolveStore) GetRequests(ctx context.Context, sessionID string) ([]db.Request, error) {
	return m.requests, nil
}

func (m *mockSolveStore) GetLockGroups(ctx context.Context, sessionID string) ([]db.LockGroup, error) {
	return m.lockGroups, nil
}

func (m *mockSolveStore) GetLockGroupMembers(ctx context.Context, sessionID string) ([]db.LockGroupMember, error) {
	return m.lockGroupMembers, nil
}

func (m *mockSolveStore) ReplaceAssignments(ctx context.Context, sessionID, scenarioID string, assignments []db.Assignment) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaceCalls++
	m.replacedScenarioID = scenarioID
	m.replaced = assignments
	return nil
}

// testBirthdate yields a birthdate whose derived grade equals the given
// grade for the test year.
func testBirthdate(year, grade int) time.Time {
	return time.Date(year-6-grade, time.June, 1, 0, 0, 0, 0, time.UTC)
}

func newSolveStore() *mockSolveStore {
	const year = 2025
	return &mockSolveStore{
		session: &db.Session{ID: "s1", Name: "Session One", Type: "main", Year: year},
		campers: []db.Camper{
			{ID: 1, FirstName: "Ana", LastName: "Reyes", Gender: "F", Birthdate: testBirthdate(year, 5), SessionID: "s1"},
			{ID: 2, FirstName: "Bea", LastName: "Okafor", Gender: "F", Birthdate: testBirthdate(year, 5), SessionID: "s1"},
			{ID: 3, FirstName: "Cal", LastName: "Nguyen", Gender: "M", Birthdate: testBirthdate(year, 5), SessionID: "s1"},
			{ID: 4, FirstName: "Dev", LastName: "Patel", Gender: "M", Birthdate: testBirthdate(year, 5), SessionID: "s1"},
		},
		bunks: []db.Bunk{
			{ID: "g1", Name: "G-1", SessionID: "s1", Gender: "F", Capacity: 12},
			{ID: "b1", Name: "B-1", SessionID: "s1", Gender: "M", Capacity: 12},
		},
		requests: []db.Request{
			{ID: "r1", RequesterID: 1, RequesteeID: 2, Type: "bunk_with", Priority: 3, Confidence: 0.9, Status: "resolved"},
		},
	}
}

func solveCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	t.Cleanup(cancel)
	return ctx
}

func TestRunSolver_PersistsLiveBoard(t *testing.T) {
	store := newSolveStore()
	logger := zap.NewNop()

	outcome, err := RunSolver(solveCtx(t), store, logger, SolveParams{
		SessionID: "s1",
		Tier:      solver.TierQuick,
	})
	require.NoError(t, err)

	assert.Len(t, outcome.Assignment, 4)
	assert.Empty(t, outcome.Unassigned)
	assert.Equal(t, 1, store.replaceCalls)
	assert.Len(t, store.replaced, 4)
	assert.Equal(t, "", store.replacedScenarioID)

	// Girls land in the girls bunk, boys in the boys bunk.
	for _, a := range store.replaced {
		switch a.CamperID {
		case 1, 2:
			assert.Equal(t, "g1", a.BunkID)
		case 3, 4:
			assert.Equal(t, "b1", a.BunkID)
		}
	}
}

func TestRunSolver_DryRunDoesNotPersist(t *testing.T) {
	store := newSolveStore()

	outcome, err := RunSolver(solveCtx(t), store, zap.NewNop(), SolveParams{
		SessionID: "s1",
		Tier:      solver.TierQuick,
		DryRun:    true,
	})
	require.NoError(t, err)

	assert.Len(t, outcome.Assignment, 4)
	assert.Equal(t, 0, store.replaceCalls)
}

func TestRunSolver_ScenarioTarget(t *testing.T) {
	store := newSolveStore()

	_, err := RunSolver(solveCtx(t), store, zap.NewNop(), SolveParams{
		SessionID:  "s1",
		Tier:       solver.TierQuick,
		ScenarioID: "draft-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "draft-1", store.replacedScenarioID)
	for _, a := range store.replaced {
		assert.Equal(t, "draft-1", a.ScenarioID)
	}
}

func TestRunSolver_UnknownTier(t *testing.T) {
	store := newSolveStore()

	_, err := RunSolver(solveCtx(t), store, zap.NewNop(), SolveParams{
		SessionID: "s1",
		Tier:      solver.Tier("instant"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown solver tier")
}

func TestRunSolver_NoCampers(t *testing.T) {
	store := newSolveStore()
	store.campers = nil

	_, err := RunSolver(solveCtx(t), store, zap.NewNop(), SolveParams{
		SessionID: "s1",
		Tier:      solver.TierQuick,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no campers")
}

func TestRunSolver_SessionFetchError(t *testing.T) {
	store := newSolveStore()
	store.getSessionErr = errors.New("connection refused")

	_, err := RunSolver(solveCtx(t), store, zap.NewNop(), SolveParams{
		SessionID: "s1",
		Tier:      solver.TierQuick,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch session")
}

func TestRunSolver_PersistError(t *testing.T) {
	store := newSolveStore()
	store.replaceErr = errors.New("deadlock detected")

	_, err := RunSolver(solveCtx(t), store, zap.NewNop(), SolveParams{
		SessionID: "s1",
		Tier:      solver.TierQuick,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist assignments")
}
