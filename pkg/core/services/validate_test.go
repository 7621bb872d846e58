package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/silverbirch/bunking/pkg/db"
)

// mockValidateStore implements ValidateStore for testing
type mockValidateStore struct {
	session          *db.Session
	campers          []db.Camper
	bunks            []db.Bunk
	requests         []db.Request
	sources          []db.RequestSource
	lockGroups       []db.LockGroup
	lockGroupMembers []db.LockGroupMember
	live             []db.Assignment
	scenario         []db.Assignment

	requestedScenario string
}

func (m *mockValidateStore) GetSession(ctx context.Context, sessionID string) (*db.Session, error) {
	return m.session, nil
}

func (m *mockValidateStore) GetCampers(ctx context.Context, sessionID string) ([]db.Camper, error) {
	return m.campers, nil
}

func (m *mockValidateStore) GetBunks(ctx context.Context, sessionID string) ([]db.Bunk, error) {
	return m.bunks, nil
}

func (m *mockValidateStore) GetRequests(ctx context.Context, sessionID string) ([]db.Request, error) {
	return m.requests, nil
}

func (m *mockValidateStore) GetRequestSources(ctx context.Context, requestIDs []string) ([]db.RequestSource, error) {
	return m.sources, nil
}

func (m *mockValidateStore) GetLockGroups(ctx context.Context, sessionID string) ([]db.LockGroup, error) {
	return m.lockGroups, nil
}

func (m *mockValidateStore) GetLockGroupMembers(ctx context.Context, sessionID string) ([]db.LockGroupMember, error) {
	return m.lockGroupMembers, nil
}

func (m *mockValidateStore) GetAssignments(ctx context.Context, sessionID, scenarioID string) ([]db.Assignment, error) {
	m.requestedScenario = scenarioID
	if scenarioID != "" {
		return m.scenario, nil
	}
	return m.live, nil
}

func TestValidateBunking_SatisfiedBoard(t *testing.T) {
	const year = 2025
	store := &mockValidateStore{
		session: &db.Session{ID: "s1", Name: "Session One", Type: "main", Year: year},
		campers: []db.Camper{
			{ID: 1, FirstName: "Ana", Gender: "F", Birthdate: testBirthdate(year, 5), SessionID: "s1"},
			{ID: 2, FirstName: "Bea", Gender: "F", Birthdate: testBirthdate(year, 5), SessionID: "s1"},
		},
		bunks: []db.Bunk{
			{ID: "g1", Name: "G-1", SessionID: "s1", Gender: "F", Capacity: 12},
		},
		requests: []db.Request{
			{ID: "r1", RequesterID: 1, RequesteeID: 2, Type: "bunk_with", Priority: 2, Confidence: 0.9, Status: "resolved"},
		},
		sources: []db.RequestSource{
			{ID: "src1", RequestID: "r1", Field: "share_bunk_with", RawText: "Bea", Primary: true},
		},
		live: []db.Assignment{
			{SessionID: "s1", CamperID: 1, BunkID: "g1"},
			{SessionID: "s1", CamperID: 2, BunkID: "g1"},
		},
	}

	report, err := ValidateBunking(context.Background(), store, zap.NewNop(), "s1", "")
	require.NoError(t, err)

	assert.Equal(t, 2, report.Statistics.AssignedCampers)
	assert.Equal(t, 0, report.Statistics.UnassignedCampers)
	assert.Equal(t, 1.0, report.Statistics.RequestSatisfactionRate)
	assert.Empty(t, report.Issues)

	fieldStats, ok := report.Statistics.BySourceField["share_bunk_with"]
	require.True(t, ok)
	assert.Equal(t, 1, fieldStats.Satisfied)
}

func TestValidateBunking_ScenarioBoard(t *testing.T) {
	const year = 2025
	store := &mockValidateStore{
		session: &db.Session{ID: "s1", Year: year},
		campers: []db.Camper{
			{ID: 1, FirstName: "Ana", Gender: "F", Birthdate: testBirthdate(year, 5), SessionID: "s1"},
		},
		bunks: []db.Bunk{
			{ID: "g1", Name: "G-1", SessionID: "s1", Gender: "F", Capacity: 12},
		},
		scenario: []db.Assignment{
			{SessionID: "s1", ScenarioID: "draft-1", CamperID: 1, BunkID: "g1"},
		},
	}

	report, err := ValidateBunking(context.Background(), store, zap.NewNop(), "s1", "draft-1")
	require.NoError(t, err)

	assert.Equal(t, "draft-1", store.requestedScenario)
	assert.Equal(t, 1, report.Statistics.AssignedCampers)
}
