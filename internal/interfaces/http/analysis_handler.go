// Package http exposes the analysis pipeline over a small REST
// surface: submit a run, poll its status, fetch the fused result.
package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/boemer00/cooper-video-analysis/internal/domain/services"
)

type AnalysisHandler struct {
	service services.AnalysisService
}

func NewAnalysisHandler(service services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// RegisterRoutes mounts the API onto the router.
func (h *AnalysisHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		api.POST("/analyses", h.StartAnalysis)
		api.GET("/analyses/:id", h.GetStatus)
		api.GET("/analyses/:id/timeline", h.GetTimeline)
	}
}

func (h *AnalysisHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cooper-video-analysis",
		"time":    time.Now(),
	})
}

func (h *AnalysisHandler) StartAnalysis(c *gin.Context) {
	var req services.StartAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"message": err.Error(),
		})
		return
	}

	resp, err := h.service.StartAnalysis(c.Request.Context(), &req)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, resp)
}

func (h *AnalysisHandler) GetStatus(c *gin.Context) {
	analysisID := c.Param("id")

	status, err := h.service.GetAnalysisStatus(c.Request.Context(), analysisID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetTimeline returns the completed result including the full fused
// timeline. 409 while the run is still in flight.
func (h *AnalysisHandler) GetTimeline(c *gin.Context) {
	analysisID := c.Param("id")

	result, err := h.service.GetAnalysisResult(c.Request.Context(), analysisID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func statusForError(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "not finished"):
		return http.StatusConflict
	case strings.Contains(msg, "invalid video path"),
		strings.Contains(msg, "unsupported transcription provider"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
