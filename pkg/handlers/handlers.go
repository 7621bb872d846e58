// Package handlers exposes the bunking services over HTTP for the board UI.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/silverbirch/bunking/internal/config"
	"github.com/silverbirch/bunking/pkg/core/services"
	"github.com/silverbirch/bunking/pkg/core/solver"
	"github.com/silverbirch/bunking/pkg/db"
)

// Handler holds the dependencies shared across all HTTP handlers.
type Handler struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
}

// Register wires the API routes onto a gin engine.
func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/sessions/:id/prevalidate", h.PreValidateSession)
		api.POST("/sessions/:id/solve", h.SolveSession)
		api.POST("/sessions/:id/validate", h.ValidateSession)

		api.POST("/requests/merge", h.MergeRequests)
		api.POST("/requests/:id/split", h.SplitRequest)
		api.POST("/requests/:id/resolve", h.ResolveRequest)

		api.POST("/scenarios", h.CreateScenario)
		api.GET("/scenarios", h.ListScenarios)
		api.DELETE("/scenarios/:id", h.DeleteScenario)
	}
}

// PreValidateSession checks a session's feasibility before solving.
func (h *Handler) PreValidateSession(c *gin.Context) {
	result, err := services.PreValidateSession(c.Request.Context(), h.Database, h.Logger, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

type solveRequest struct {
	Tier       string `json:"tier"`
	ScenarioID string `json:"scenario_id"`
	DryRun     bool   `json:"dry_run"`
}

type solveResponse struct {
	Success    bool                    `json:"success"`
	Objective  float64                 `json:"objective"`
	Assignment map[int]string          `json:"assignment"`
	Unassigned []solver.UnassignedUnit `json:"unassigned,omitempty"`
	Violations []string                `json:"violations,omitempty"`
	Iterations int                     `json:"iterations"`
	ElapsedMS  int64                   `json:"elapsed_ms"`
}

// SolveSession runs the assignment solver and writes the resulting board.
func (h *Handler) SolveSession(c *gin.Context) {
	var body solveRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tier := h.Cfg.DefaultTier()
	if body.Tier != "" {
		var err error
		tier, err = solver.ParseTier(body.Tier)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	outcome, err := services.RunSolver(c.Request.Context(), h.Database, h.Logger, services.SolveParams{
		SessionID:  c.Param("id"),
		Tier:       tier,
		ScenarioID: body.ScenarioID,
		DryRun:     body.DryRun,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := solveResponse{
		Success:    outcome.Success(),
		Objective:  outcome.Objective,
		Assignment: outcome.Assignment,
		Unassigned: outcome.Unassigned,
		Iterations: outcome.Iterations,
		ElapsedMS:  outcome.Elapsed.Milliseconds(),
	}
	for _, v := range outcome.Violations {
		resp.Violations = append(resp.Violations, v.String())
	}
	c.JSON(http.StatusOK, resp)
}

// ValidateSession evaluates a board against the rule set.
func (h *Handler) ValidateSession(c *gin.Context) {
	report, err := services.ValidateBunking(c.Request.Context(), h.Database, h.Logger,
		c.Param("id"), c.Query("scenario_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
