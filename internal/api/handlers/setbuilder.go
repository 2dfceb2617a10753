package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jasonfurnell/narrative-set-engine/internal/models"
	"github.com/jasonfurnell/narrative-set-engine/internal/orchestrator"
)

// SetBuilderHandler exposes the narrative set construction pipeline over
// HTTP: submit a pool of tracks and a phase profile, get back a streamed
// progress feed followed by the assembled Set.
type SetBuilderHandler struct {
	pipeline *orchestrator.Pipeline
}

func NewSetBuilderHandler(pipeline *orchestrator.Pipeline) *SetBuilderHandler {
	return &SetBuilderHandler{pipeline: pipeline}
}

type BuildSetRequest struct {
	SetName        string         `json:"set_name" binding:"required"`
	Tracks         []models.Track `json:"tracks" binding:"required"`
	PhaseProfileID string         `json:"phase_profile_id" binding:"required"`
}

// BuildSet streams pipeline progress as SSE events, then a final "result"
// event carrying the assembled Set, a "stopped" event if the request context
// was cancelled mid-run, or an "error" event on any other failure.
func (h *SetBuilderHandler) BuildSet(c *gin.Context) {
	var req BuildSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tracksByID := make(map[int]*models.Track, len(req.Tracks))
	trackIDs := make([]int, 0, len(req.Tracks))
	for i := range req.Tracks {
		t := req.Tracks[i]
		tracksByID[t.ID] = &t
		trackIDs = append(trackIDs, t.ID)
	}

	requestID := c.GetString("request_id")
	events, done := h.pipeline.Run(c.Request.Context(), requestID, tracksByID, trackIDs, req.PhaseProfileID, req.SetName)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	for ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		_, _ = fmt.Fprintf(c.Writer, "event: progress\ndata: %s\n\n", payload)
		c.Writer.Flush()
	}

	result := <-done
	if result.Stopped {
		stoppedPayload, _ := json.Marshal(gin.H{"stopped": true, "request_id": requestID})
		_, _ = fmt.Fprintf(c.Writer, "event: stopped\ndata: %s\n\n", stoppedPayload)
		c.Writer.Flush()
		return
	}
	if result.Err != nil {
		errPayload, _ := json.Marshal(gin.H{"error": result.Err.Error(), "request_id": requestID})
		_, _ = fmt.Fprintf(c.Writer, "event: error\ndata: %s\n\n", errPayload)
		c.Writer.Flush()
		return
	}

	resultPayload, _ := json.Marshal(gin.H{
		"request_id": requestID,
		"narrative":  result.Value.Narrative,
		"acts":       result.Value.Acts,
		"set":        result.Value.Set,
	})
	_, _ = fmt.Fprintf(c.Writer, "event: result\ndata: %s\n\n", resultPayload)
	c.Writer.Flush()
}
