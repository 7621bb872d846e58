package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/silverbirch/bunking/pkg/db"
)

// mockScenarioStore implements ScenarioStore for testing
type mockScenarioStore struct {
	session   *db.Session
	scenarios []db.Scenario
	live      []db.Assignment

	inserted      *db.Scenario
	seeded        []db.Assignment
	seededID      string
	deletedID     string
	getSessionErr error
	insertErr     error
	deleteErr     error
}

func (m *mockScenarioStore) GetSession(ctx context.Context, sessionID string) (*db.Session, error) {
	if m.getSessionErr != nil {
		return nil, m.getSessionErr
	}
	return m.session, nil
}

func (m *mockScenarioStore) GetScenario(ctx context.Context, scenarioID string) (*db.Scenario, error) {
	for i := range m.scenarios {
		if m.scenarios[i].ID == scenarioID {
			return &m.scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("scenario %s not found", scenarioID)
}

func (m *mockScenarioStore) ListScenarios(ctx context.Context, sessionID string) ([]db.Scenario, error) {
	return m.scenarios, nil
}

func (m *mockScenarioStore) InsertScenario(ctx context.Context, scenario *db.Scenario) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = scenario
	return nil
}

func (m *mockScenarioStore) DeleteScenario(ctx context.Context, scenarioID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = scenarioID
	return nil
}

func (m *mockScenarioStore) GetAssignments(ctx context.Context, sessionID, scenarioID string) ([]db.Assignment, error) {
	if scenarioID == "" {
		return m.live, nil
	}
	return nil, nil
}

func (m *mockScenarioStore) ReplaceAssignments(ctx context.Context, sessionID, scenarioID string, assignments []db.Assignment) error {
	m.seededID = scenarioID
	m.seeded = assignments
	return nil
}

func TestCreateScenario_SeedsFromLiveBoard(t *testing.T) {
	store := &mockScenarioStore{
		session: &db.Session{ID: "s1", Year: 2025},
		live: []db.Assignment{
			{SessionID: "s1", CamperID: 1, BunkID: "g1"},
			{SessionID: "s1", CamperID: 2, BunkID: "g1"},
		},
	}

	scenario, err := CreateScenario(context.Background(), store, zap.NewNop(), "s1", "swap experiment")
	require.NoError(t, err)

	assert.NotEmpty(t, scenario.ID)
	assert.Equal(t, "swap experiment", scenario.Name)
	assert.Equal(t, "s1", scenario.SessionID)
	assert.False(t, scenario.CreatedAt.IsZero())

	require.NotNil(t, store.inserted)
	assert.Equal(t, scenario.ID, store.seededID)
	require.Len(t, store.seeded, 2)
	for _, a := range store.seeded {
		assert.Equal(t, scenario.ID, a.ScenarioID)
	}
}

func TestCreateScenario_EmptyLiveBoard(t *testing.T) {
	store := &mockScenarioStore{session: &db.Session{ID: "s1", Year: 2025}}

	scenario, err := CreateScenario(context.Background(), store, zap.NewNop(), "s1", "from scratch")
	require.NoError(t, err)

	assert.NotEmpty(t, scenario.ID)
	assert.Empty(t, store.seeded)
}

func TestCreateScenario_EmptyName(t *testing.T) {
	store := &mockScenarioStore{session: &db.Session{ID: "s1", Year: 2025}}

	_, err := CreateScenario(context.Background(), store, zap.NewNop(), "s1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name must not be empty")
}

func TestCreateScenario_UnknownSession(t *testing.T) {
	store := &mockScenarioStore{getSessionErr: errors.New("session missing not found")}

	_, err := CreateScenario(context.Background(), store, zap.NewNop(), "missing", "draft")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch session")
}

func TestListScenarios(t *testing.T) {
	now := time.Now().UTC()
	store := &mockScenarioStore{
		scenarios: []db.Scenario{
			{ID: "sc2", Name: "newer", SessionID: "s1", CreatedAt: now},
			{ID: "sc1", Name: "older", SessionID: "s1", CreatedAt: now.Add(-time.Hour)},
		},
	}

	scenarios, err := ListScenarios(context.Background(), store, zap.NewNop(), "s1")
	require.NoError(t, err)

	require.Len(t, scenarios, 2)
	assert.Equal(t, "sc2", scenarios[0].ID)
	assert.Equal(t, "newer", scenarios[0].Name)
}

func TestDeleteScenario(t *testing.T) {
	store := &mockScenarioStore{}

	err := DeleteScenario(context.Background(), store, zap.NewNop(), "sc1")
	require.NoError(t, err)
	assert.Equal(t, "sc1", store.deletedID)
}

func TestDeleteScenario_EmptyID(t *testing.T) {
	store := &mockScenarioStore{}

	err := DeleteScenario(context.Background(), store, zap.NewNop(), "")
	require.Error(t, err)
	assert.Empty(t, store.deletedID)
}
