package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/silverbirch/bunking/pkg/core/model"
	"github.com/silverbirch/bunking/pkg/core/requests"
	"github.com/silverbirch/bunking/pkg/core/services"
)

type mergeRequest struct {
	RequestIDs     []string `json:"request_ids" binding:"required,min=2"`
	KeepTargetFrom string   `json:"keep_target_from" binding:"required"`
	FinalType      string   `json:"final_type" binding:"required"`
}

// MergeRequests folds duplicate requests into one.
func (h *Handler) MergeRequests(c *gin.Context) {
	var body mergeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	merged, err := services.MergeRequests(c.Request.Context(), h.Database, h.Logger,
		body.RequestIDs, body.KeepTargetFrom, model.RequestType(body.FinalType))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, merged)
}

type splitSourceSpec struct {
	SourceID    string `json:"source_id" binding:"required"`
	NewType     string `json:"new_type" binding:"required"`
	NewTargetID int    `json:"new_target_id"`
}

type splitRequest struct {
	Sources []splitSourceSpec `json:"sources" binding:"required,min=1"`
}

// SplitRequest restores source fields of a merged request as their own
// requests.
func (h *Handler) SplitRequest(c *gin.Context) {
	var body splitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	specs := make([]requests.SplitSpec, 0, len(body.Sources))
	for _, s := range body.Sources {
		specs = append(specs, requests.SplitSpec{
			SourceID:    s.SourceID,
			NewType:     model.RequestType(s.NewType),
			NewTargetID: s.NewTargetID,
		})
	}

	plan, err := services.SplitRequest(c.Request.Context(), h.Database, h.Logger, c.Param("id"), specs)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updated":  plan.Updated,
		"restored": plan.Restored,
	})
}

type resolveRequest struct {
	CamperID int `json:"camper_id" binding:"required"`
}

// ResolveRequest manually points an unresolved request at a camper.
func (h *Handler) ResolveRequest(c *gin.Context) {
	var body resolveRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resolved, err := services.ResolveRequestManually(c.Request.Context(), h.Database, h.Logger,
		c.Param("id"), body.CamperID)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resolved)
}

type createScenarioRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
}

// CreateScenario opens a draft workspace seeded from the live board.
func (h *Handler) CreateScenario(c *gin.Context) {
	var body createScenarioRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scenario, err := services.CreateScenario(c.Request.Context(), h.Database, h.Logger,
		body.SessionID, body.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, scenario)
}

// ListScenarios lists a session's draft workspaces.
func (h *Handler) ListScenarios(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id query parameter is required"})
		return
	}

	scenarios, err := services.ListScenarios(c.Request.Context(), h.Database, h.Logger, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, scenarios)
}

// DeleteScenario discards a draft workspace.
func (h *Handler) DeleteScenario(c *gin.Context) {
	if err := services.DeleteScenario(c.Request.Context(), h.Database, h.Logger, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
