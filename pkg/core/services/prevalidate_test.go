package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/silverbirch/bunking/pkg/db"
)

// mockPreValidateStore implements PreValidateStore for testing
type mockPreValidateStore struct {
	session  *db.Session
	campers  []db.Camper
	bunks    []db.Bunk
	requests []db.Request

	getBunksErr error
}

func (m *mockPreValidateStore) GetSession(ctx context.Context, sessionID string) (*db.Session, error) {
	return m.session, nil
}

func (m *mockPreValidateStore) GetCampers(ctx context.Context, sessionID string) ([]db.Camper, error) {
	return m.campers, nil
}

func (m *mockPreValidateStore) GetBunks(ctx context.Context, sessionID string) ([]db.Bunk, error) {
	if m.getBunksErr != nil {
		return nil, m.getBunksErr
	}
	return m.bunks, nil
}

func (m *mockPreValidateStore) GetRequests(ctx context.Context, sessionID string) ([]db.Request, error) {
	return m.requests, nil
}

func TestPreValidateSession_Feasible(t *testing.T) {
	const year = 2025
	store := &mockPreValidateStore{
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
	}

	result, err := PreValidateSession(context.Background(), store, zap.NewNop(), "s1")
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.Statistics.TotalCampers)
	assert.Equal(t, 1, result.Statistics.TotalRequests)
}

func TestPreValidateSession_OverCapacityArea(t *testing.T) {
	const year = 2025
	store := &mockPreValidateStore{
		session: &db.Session{ID: "s1", Name: "Session One", Type: "main", Year: year},
		campers: []db.Camper{
			{ID: 1, FirstName: "Ana", Gender: "F", Birthdate: testBirthdate(year, 5), SessionID: "s1"},
			{ID: 2, FirstName: "Bea", Gender: "F", Birthdate: testBirthdate(year, 5), SessionID: "s1"},
			{ID: 3, FirstName: "Cyn", Gender: "F", Birthdate: testBirthdate(year, 5), SessionID: "s1"},
		},
		bunks: []db.Bunk{
			{ID: "g1", Name: "G-1", SessionID: "s1", Gender: "F", Capacity: 2},
		},
	}

	result, err := PreValidateSession(context.Background(), store, zap.NewNop(), "s1")
	require.NoError(t, err)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Girls: 3 campers, 2 beds (1 OVER)")
}

func TestPreValidateSession_StoreError(t *testing.T) {
	store := &mockPreValidateStore{
		session:     &db.Session{ID: "s1", Year: 2025},
		getBunksErr: errors.New("timeout"),
	}

	_, err := PreValidateSession(context.Background(), store, zap.NewNop(), "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch bunks")
}
