package services

import (
	"github.com/silverbirch/bunking/pkg/core/model"
	"github.com/silverbirch/bunking/pkg/db"
)

// camperFromDB maps a camper record into the domain model.
func camperFromDB(rec db.Camper, session *db.Session) model.Camper {
	c := model.Camper{
		ID:          rec.ID,
		FirstName:   rec.FirstName,
		LastName:    rec.LastName,
		Gender:      model.Gender(rec.Gender),
		Birthdate:   rec.Birthdate,
		SessionID:   rec.SessionID,
		LockGroupID: rec.LockGroupID,
	}
	if session != nil {
		c.SessionType = model.SessionType(session.Type)
		c.SessionName = session.Name
	}
	return c
}

func campersFromDB(recs []db.Camper, session *db.Session) []model.Camper {
	campers := make([]model.Camper, 0, len(recs))
	for _, rec := range recs {
		campers = append(campers, camperFromDB(rec, session))
	}
	return campers
}

func bunksFromDB(recs []db.Bunk) []model.Bunk {
	bunks := make([]model.Bunk, 0, len(recs))
	for _, rec := range recs {
		bunks = append(bunks, model.Bunk{
			ID:        rec.ID,
			Name:      rec.Name,
			SessionID: rec.SessionID,
			Gender:    model.Gender(rec.Gender),
			Capacity:  rec.Capacity,
		})
	}
	return bunks
}

func requestFromDB(rec db.Request) model.Request {
	return model.Request{
		ID:          rec.ID,
		RequesterID: rec.RequesterID,
		RequesteeID: rec.RequesteeID,
		Type:        model.RequestType(rec.Type),
		Direction:   model.AgeDirection(rec.Direction),
		Priority:    rec.Priority,
		Confidence:  rec.Confidence,
		Status:      model.RequestStatus(rec.Status),
		Locked:      rec.Locked,
	}
}

// requestsFromDB maps request records and attaches their sources.
func requestsFromDB(recs []db.Request, sources []db.RequestSource) []model.Request {
	sourcesByRequest := make(map[string][]model.RequestSource)
	for _, src := range sources {
		sourcesByRequest[src.RequestID] = append(sourcesByRequest[src.RequestID], model.RequestSource{
			ID:        src.ID,
			RequestID: src.RequestID,
			Field:     src.Field,
			RawText:   src.RawText,
			Primary:   src.Primary,
		})
	}

	requests := make([]model.Request, 0, len(recs))
	for _, rec := range recs {
		req := requestFromDB(rec)
		req.Sources = sourcesByRequest[rec.ID]
		requests = append(requests, req)
	}
	return requests
}

func requestToDB(req model.Request) db.Request {
	return db.Request{
		ID:          req.ID,
		RequesterID: req.RequesterID,
		RequesteeID: req.RequesteeID,
		Type:        string(req.Type),
		Direction:   string(req.Direction),
		Priority:    req.Priority,
		Confidence:  req.Confidence,
		Status:      string(req.Status),
		Locked:      req.Locked,
	}
}

func sourcesToDB(sources []model.RequestSource) []db.RequestSource {
	out := make([]db.RequestSource, 0, len(sources))
	for _, src := range sources {
		out = append(out, db.RequestSource{
			ID:        src.ID,
			RequestID: src.RequestID,
			Field:     src.Field,
			RawText:   src.RawText,
			Primary:   src.Primary,
		})
	}
	return out
}

// lockGroupsFromDB joins group records with their memberships.
func lockGroupsFromDB(groups []db.LockGroup, members []db.LockGroupMember) []model.LockGroup {
	membersByGroup := make(map[string][]int)
	for _, m := range members {
		membersByGroup[m.LockGroupID] = append(membersByGroup[m.LockGroupID], m.CamperID)
	}

	out := make([]model.LockGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, model.LockGroup{
			ID:        g.ID,
			Name:      g.Name,
			Color:     g.Color,
			SessionID: g.SessionID,
			MemberIDs: membersByGroup[g.ID],
		})
	}
	return out
}

// assignmentFromDB folds assignment rows into a camper-to-bunk map.
func assignmentFromDB(recs []db.Assignment) model.Assignment {
	assignment := make(model.Assignment, len(recs))
	for _, rec := range recs {
		assignment[rec.CamperID] = rec.BunkID
	}
	return assignment
}

func assignmentToDB(sessionID, scenarioID string, assignment model.Assignment) []db.Assignment {
	out := make([]db.Assignment, 0, len(assignment))
	for camperID, bunkID := range assignment {
		out = append(out, db.Assignment{
			SessionID:  sessionID,
			ScenarioID: scenarioID,
			CamperID:   camperID,
			BunkID:     bunkID,
		})
	}
	return out
}
