package db

import "context"

// SessionStore reads session-scoped synced records.
type SessionStore interface {
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	GetCampers(ctx context.Context, sessionID string) ([]Camper, error)
	GetBunks(ctx context.Context, sessionID string) ([]Bunk, error)
}

// RequestStore reads and mutates request records. Merge and split changes
// are applied atomically; a partial merge is never observable.
type RequestStore interface {
	GetRequest(ctx context.Context, requestID string) (*Request, error)
	GetRequests(ctx context.Context, sessionID string) ([]Request, error)
	GetRequestSources(ctx context.Context, requestIDs []string) ([]RequestSource, error)
	UpdateRequest(ctx context.Context, request *Request) error
	ApplyMerge(ctx context.Context, change MergeChange) error
	ApplySplit(ctx context.Context, change SplitChange) error
}

// LockGroupStore reads lock group records.
type LockGroupStore interface {
	GetLockGroups(ctx context.Context, sessionID string) ([]LockGroup, error)
	GetLockGroupMembers(ctx context.Context, sessionID string) ([]LockGroupMember, error)
}

// AssignmentStore reads and replaces assignment sets. ScenarioID "" is the
// live board.
type AssignmentStore interface {
	GetAssignments(ctx context.Context, sessionID, scenarioID string) ([]Assignment, error)
	ReplaceAssignments(ctx context.Context, sessionID, scenarioID string, assignments []Assignment) error
}

// ScenarioStore manages draft workspaces.
type ScenarioStore interface {
	GetScenario(ctx context.Context, scenarioID string) (*Scenario, error)
	ListScenarios(ctx context.Context, sessionID string) ([]Scenario, error)
	InsertScenario(ctx context.Context, scenario *Scenario) error
	DeleteScenario(ctx context.Context, scenarioID string) error
}

// Database is the full store contract; postgres.DB implements it.
type Database interface {
	SessionStore
	RequestStore
	LockGroupStore
	AssignmentStore
	ScenarioStore
}
