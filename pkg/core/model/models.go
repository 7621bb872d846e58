package model

import (
	"strings"
	"time"
)

// Gender of a camper or designation of a bunk.
type Gender string

const (
	GenderMale      Gender = "M"
	GenderFemale    Gender = "F"
	GenderNonBinary Gender = "NB"
	GenderMixed     Gender = "Mixed"
)

// SessionType distinguishes the enrollment pools a session can belong to.
type SessionType string

const (
	SessionMain     SessionType = "main"
	SessionEmbedded SessionType = "embedded"
	SessionAG       SessionType = "ag"
	SessionTaste    SessionType = "taste"
)

// RequestType is the kind of social preference a camper expressed.
type RequestType string

const (
	RequestBunkWith      RequestType = "bunk_with"
	RequestNotBunkWith   RequestType = "not_bunk_with"
	RequestAgePreference RequestType = "age_preference"
)

// RequestStatus tracks the resolution lifecycle of a request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusResolved RequestStatus = "resolved"
	StatusDeclined RequestStatus = "declined"
)

// AgeDirection is the requested skew for age_preference requests.
type AgeDirection string

const (
	DirectionOlder   AgeDirection = "older"
	DirectionYounger AgeDirection = "younger"
)

// BunkArea is the physical area a bunk belongs to, encoded as a name prefix.
type BunkArea string

const (
	AreaBoys      BunkArea = "Boys"
	AreaGirls     BunkArea = "Girls"
	AreaAllGender BunkArea = "All-Gender"
	AreaUnknown   BunkArea = "Unknown"
)

// Capacity constants. Bunks hold 12 campers by default; staff can overfill a
// bunk up to the hard ceiling, beyond which placements are rejected outright.
const (
	DefaultBunkCapacity = 12
	HardCapacityCeiling = 14
)

// Camper is a session-scoped attendee record. Campers are synced from the
// external system of record and are read-only to the engine.
type Camper struct {
	ID          int
	FirstName   string
	LastName    string
	Gender      Gender
	Birthdate   time.Time
	SessionID   string
	SessionType SessionType
	SessionName string

	// AssignedBunk is empty when the camper is unassigned.
	AssignedBunk string

	// LockGroupID is empty when the camper is not in a lock group.
	LockGroupID string
}

// FullName returns the camper's display name.
func (c Camper) FullName() string {
	return c.FirstName + " " + c.LastName
}

// AgeForYear computes the camper's age in fractional years as of June 15 of
// the viewing year, the midpoint of the camp summer.
func (c Camper) AgeForYear(year int) float64 {
	if c.Birthdate.IsZero() {
		return 0
	}
	ref := time.Date(year, time.June, 15, 0, 0, 0, 0, time.UTC)
	return ref.Sub(c.Birthdate).Hours() / (24 * 365.25)
}

// GradeForYear derives the camper's grade for the viewing year from their
// birthdate, using the usual September-cutoff school-year convention.
// Kindergarten (grade 0) starts the school year a camper turns six before
// the cutoff. Clamped to the 0-12 range.
func (c Camper) GradeForYear(year int) int {
	if c.Birthdate.IsZero() {
		return 0
	}
	grade := year - c.Birthdate.Year() - 6
	if c.Birthdate.Month() >= time.September {
		grade--
	}
	if grade < 0 {
		return 0
	}
	if grade > 12 {
		return 12
	}
	return grade
}

// Bunk is a physical sleeping group. The display name encodes the area via a
// prefix convention (B- boys, G- girls, AG- all-gender).
type Bunk struct {
	ID        string
	Name      string
	SessionID string

	// Gender is the explicit designation; empty means "infer from name".
	Gender Gender

	// Capacity is the soft capacity; zero means DefaultBunkCapacity.
	Capacity int
}

// EffectiveCapacity returns the soft capacity, falling back to the default.
func (b Bunk) EffectiveCapacity() int {
	if b.Capacity > 0 {
		return b.Capacity
	}
	return DefaultBunkCapacity
}

// Area derives the physical area from the bunk's name prefix. The AG- prefix
// is checked first because "AG-3" would otherwise never match.
func (b Bunk) Area() BunkArea {
	name := strings.ToUpper(b.Name)
	switch {
	case strings.HasPrefix(name, "AG-"), strings.HasPrefix(name, "AG "):
		return AreaAllGender
	case strings.HasPrefix(name, "B-"):
		return AreaBoys
	case strings.HasPrefix(name, "G-"):
		return AreaGirls
	}
	switch b.Gender {
	case GenderMale:
		return AreaBoys
	case GenderFemale:
		return AreaGirls
	case GenderMixed:
		return AreaAllGender
	}
	return AreaUnknown
}

// Session groups campers and bunks into an isolation boundary. Campers only
// interact within their own session; AG sessions share the AG bunk pool.
type Session struct {
	ID   string
	Name string
	Type SessionType
	Year int
}

// RequestSource is one originating free-text field behind a request. A merged
// request carries several sources; exactly one is primary.
type RequestSource struct {
	ID        string
	RequestID string
	Field     string
	RawText   string
	Primary   bool
}

// Request is a typed pairwise or unary preference. RequesteeID semantics:
// positive = resolved person id, negative = AI placeholder, zero = unresolved
// name-only target. age_preference requests carry no requestee at all.
type Request struct {
	ID          string
	RequesterID int
	RequesteeID int
	Type        RequestType
	Direction   AgeDirection // only for age_preference
	Priority    int          // 1-4, 4 = critical
	Confidence  float64      // [0,1]
	Status      RequestStatus
	Sources     []RequestSource

	// Locked requests were created manually and are immune to re-parsing.
	Locked bool
}

// PrimarySource returns the request's primary provenance link, or nil.
func (r *Request) PrimarySource() *RequestSource {
	for i := range r.Sources {
		if r.Sources[i].Primary {
			return &r.Sources[i]
		}
	}
	return nil
}

// LockGroup is a named set of campers that must land in the same bunk.
type LockGroup struct {
	ID        string
	Name      string
	Color     string
	SessionID string
	MemberIDs []int
}

// Scenario is an isolated draft workspace: a named fork of the live
// assignment set for what-if exploration. Live assignments are overwritten by
// the next external sync; scenarios are the durable place for manual edits.
type Scenario struct {
	ID        string
	Name      string
	SessionID string
	CreatedAt time.Time
}

// Assignment maps camper ids to bunk ids. Campers absent from the map are
// unassigned.
type Assignment map[int]string

// Clone returns an independent copy of the assignment.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for camper, bunk := range a {
		out[camper] = bunk
	}
	return out
}

// Occupancy counts the campers assigned to the given bunk.
func (a Assignment) Occupancy(bunkID string) int {
	n := 0
	for _, b := range a {
		if b == bunkID {
			n++
		}
	}
	return n
}

// Roster returns the camper ids assigned to the given bunk.
func (a Assignment) Roster(bunkID string) []int {
	var roster []int
	for camper, b := range a {
		if b == bunkID {
			roster = append(roster, camper)
		}
	}
	return roster
}
