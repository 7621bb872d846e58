package db

import "time"

// Camper represents a database camper record, synced from the external
// system of record.
type Camper struct {
	ID          int
	FirstName   string
	LastName    string
	Gender      string
	Birthdate   time.Time
	SessionID   string
	LockGroupID string
}

// Bunk represents a database bunk record.
type Bunk struct {
	ID        string
	Name      string
	SessionID string
	Gender    string
	Capacity  int
}

// Session represents a database session record.
type Session struct {
	ID   string
	Name string
	Type string
	Year int
}

// Request represents a database request record.
type Request struct {
	ID          string
	RequesterID int
	RequesteeID int
	Type        string
	Direction   string
	Priority    int
	Confidence  float64
	Status      string
	Locked      bool
}

// RequestSource represents one originating free-text field behind a request.
type RequestSource struct {
	ID        string
	RequestID string
	Field     string
	RawText   string
	Primary   bool
}

// LockGroup represents a database lock group record.
type LockGroup struct {
	ID        string
	Name      string
	Color     string
	SessionID string
}

// LockGroupMember links a camper to a lock group.
type LockGroupMember struct {
	LockGroupID string
	CamperID    int
}

// Scenario represents a draft workspace record.
type Scenario struct {
	ID        string
	Name      string
	SessionID string
	CreatedAt time.Time
}

// Assignment represents one camper-to-bunk placement. ScenarioID is empty
// for the live board.
type Assignment struct {
	SessionID  string
	ScenarioID string
	CamperID   int
	BunkID     string
}

// MergeChange is the atomic unit a request merge applies to the store:
// delete the contributing requests, insert the merged one with its unioned
// sources.
type MergeChange struct {
	DeleteRequestIDs []string
	Insert           Request
	InsertSources    []RequestSource
}

// SplitChange is the atomic unit a request split applies to the store:
// re-create the restored requests, re-parent their sources, keep the
// remaining sources on the original.
type SplitChange struct {
	UpdatedRequestID string
	KeepSourceIDs    []string
	Restored         []Request
	RestoredSources  []RequestSource
}
