package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "zena/internal/shared/errors"
	"zena/internal/wellbeing"
)

type scoreRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	TimeWindow string `json:"time_window"`
}

type alertsRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type routeRequest struct {
	Question string `json:"question" binding:"required"`
	UserID   string `json:"user_id"`
}

func (s *Server) handleComputeScore(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	if req.TimeWindow == "" {
		req.TimeWindow = wellbeing.Window7d
	}

	result, err := s.svc.ComputeScore(c.Request.Context(), req.UserID, req.TimeWindow)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleScanAlerts(c *gin.Context) {
	var req alertsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	result, err := s.svc.ScanAlerts(c.Request.Context(), req.UserID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetRecommendations(c *gin.Context) {
	recommendations, err := s.svc.GetRecommendations(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recommendations)
}

func (s *Server) handleRouteQuery(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	decision, err := s.svc.RouteQuery(c.Request.Context(), req.Question, req.UserID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"chosen_profile_id": decision.ChosenProfileID,
		"explanation":       decision,
	})
}

// respondError maps the error taxonomy onto HTTP statuses. NotFound is a
// normal outcome and is not logged; everything unexpected is.
func (s *Server) respondError(c *gin.Context, err error) {
	switch errs.KindOf(err) {
	case errs.KindInvalidArgument:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errs.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
