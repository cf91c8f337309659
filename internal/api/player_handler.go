package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dugout/coaching-app/internal/service"
)

// PlayerHandler exposes the player-facing surface: plan resolution, done
// marks, and the video submission flow.
type PlayerHandler struct {
	playerService service.PlayerService
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(playerService service.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

// --- Request Structs ---

type MarkCompleteRequest struct {
	AssignmentID string `json:"assignmentId" binding:"required"`
}

type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type CreateSubmissionRequest struct {
	WeekIndex    int    `json:"weekIndex" binding:"required"`
	DayIndex     *int   `json:"dayIndex,omitempty"`
	AssignmentID string `json:"assignmentId,omitempty"`
	ObjectKey    string `json:"objectKey" binding:"required"`
	FileName     string `json:"fileName,omitempty"`
	ContentType  string `json:"contentType,omitempty"`
	Size         int64  `json:"size,omitempty"`
	Note         string `json:"note,omitempty"`
}

// --- Handler Methods ---

func (h *PlayerHandler) ListEnrollments(c *gin.Context) {
	playerID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}

	enrollments, err := h.playerService.GetMyEnrollments(c.Request.Context(), playerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollments)
}

// GetTodayPlan resolves the current cycle position from the server clock.
func (h *PlayerHandler) GetTodayPlan(c *gin.Context) {
	playerID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	enrollmentID, err := parseObjectIDParam(c, "enrollmentId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.playerService.GetTodayPlan(c.Request.Context(), playerID, enrollmentID, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *PlayerHandler) GetWeekPlan(c *gin.Context) {
	playerID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	enrollmentID, err := parseObjectIDParam(c, "enrollmentId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	weekIndex, err := parseIntParam(c, "weekIndex")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.playerService.GetWeekPlan(c.Request.Context(), playerID, enrollmentID, weekIndex)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlayerHandler) GetDayPlan(c *gin.Context) {
	playerID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	enrollmentID, err := parseObjectIDParam(c, "enrollmentId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	weekIndex, err := parseIntParam(c, "weekIndex")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	dayIndex, err := parseIntParam(c, "dayIndex")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.playerService.GetDayPlan(c.Request.Context(), playerID, enrollmentID, weekIndex, dayIndex)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *PlayerHandler) MarkComplete(c *gin.Context) {
	playerID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	enrollmentID, err := parseObjectIDParam(c, "enrollmentId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req MarkCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	completion, err := h.playerService.MarkComplete(c.Request.Context(), playerID, enrollmentID, req.AssignmentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, completion)
}

// RequestUploadURL hands back a presigned PUT URL; the client uploads the
// video bytes directly to object storage and then calls CreateSubmission.
func (h *PlayerHandler) RequestUploadURL(c *gin.Context) {
	playerID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	target, err := h.playerService.RequestUploadURL(c.Request.Context(), playerID, req.ContentType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}

func (h *PlayerHandler) CreateSubmission(c *gin.Context) {
	playerID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	enrollmentID, err := parseObjectIDParam(c, "enrollmentId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	sub, err := h.playerService.CreateSubmission(c.Request.Context(), playerID, enrollmentID, service.SubmissionInput{
		WeekIndex:    req.WeekIndex,
		DayIndex:     req.DayIndex,
		AssignmentID: req.AssignmentID,
		ObjectKey:    req.ObjectKey,
		FileName:     req.FileName,
		ContentType:  req.ContentType,
		Size:         req.Size,
		Note:         req.Note,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *PlayerHandler) ListSubmissions(c *gin.Context) {
	playerID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	enrollmentID, err := parseObjectIDParam(c, "enrollmentId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	views, err := h.playerService.GetMySubmissions(c.Request.Context(), playerID, enrollmentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
