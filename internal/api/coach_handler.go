package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dugout/coaching-app/internal/domain"
	"github.com/dugout/coaching-app/internal/service"
)

// CoachHandler exposes the coach-facing surface: template authoring, the
// focus and drill libraries, roster management, enrollments, overrides, and
// the review queue.
type CoachHandler struct {
	templateService service.TemplateService
	coachService    service.CoachService
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(templateService service.TemplateService, coachService service.CoachService) *CoachHandler {
	return &CoachHandler{
		templateService: templateService,
		coachService:    coachService,
	}
}

// --- Request Structs ---

type CreateTemplateRequest struct {
	Title      string `json:"title" binding:"required"`
	TeamID     string `json:"teamId,omitempty"`
	WeeksCount int    `json:"weeksCount" binding:"required"`
	CycleDays  int    `json:"cycleDays,omitempty"`
}

type UpdateTemplateRequest struct {
	Title      string `json:"title,omitempty"`
	WeeksCount int    `json:"weeksCount,omitempty"`
	CycleDays  int    `json:"cycleDays,omitempty"`
}

type UpsertWeekRequest struct {
	Goals       []string `json:"goals,omitempty"`
	Assignments []string `json:"assignments,omitempty"`
}

type SetDayRequest struct {
	FocusID *string `json:"focusId,omitempty"`
	Note    string  `json:"note,omitempty"`
}

type DayAssignmentRequest struct {
	DrillID         string `json:"drillId" binding:"required"`
	Sets            *int   `json:"sets,omitempty"`
	Reps            *int   `json:"reps,omitempty"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
	RequiresUpload  bool   `json:"requiresUpload,omitempty"`
	UploadPrompt    string `json:"uploadPrompt,omitempty"`
	NotesToPlayer   string `json:"notesToPlayer,omitempty"`
	SortOrder       int    `json:"sortOrder,omitempty"`
}

type FocusRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description,omitempty"`
	Cues        []string `json:"cues,omitempty"`
}

type DrillRequest struct {
	Title          string               `json:"title" binding:"required"`
	Category       domain.DrillCategory `json:"category,omitempty"`
	Goal           string               `json:"goal,omitempty"`
	Equipment      []string             `json:"equipment,omitempty"`
	Cues           []string             `json:"cues,omitempty"`
	CommonMistakes []string             `json:"commonMistakes,omitempty"`
	Media          []domain.DrillMedia  `json:"media,omitempty"`
}

type AddPlayerRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type EnrollPlayerRequest struct {
	TemplateID string     `json:"templateId" binding:"required"`
	PlayerID   string     `json:"playerId" binding:"required"`
	StartAt    *time.Time `json:"startAt,omitempty"`
}

type EnrollmentStatusRequest struct {
	Status domain.EnrollmentStatus `json:"status" binding:"required,oneof=active paused completed"`
}

type DayOverrideRequest struct {
	FocusID     *string                 `json:"focusId,omitempty"`
	DayNote     string                  `json:"dayNote,omitempty"`
	Assignments []DayOverrideAssignment `json:"assignments,omitempty"`
}

type DayOverrideAssignment struct {
	DrillID         string `json:"drillId" binding:"required"`
	Sets            *int   `json:"sets,omitempty"`
	Reps            *int   `json:"reps,omitempty"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
	RequiresUpload  bool   `json:"requiresUpload,omitempty"`
	UploadPrompt    string `json:"uploadPrompt,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

type ReviewRequest struct {
	Note string `json:"note,omitempty"`
}

// === Templates ===

func (h *CoachHandler) CreateTemplate(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	teamID := primitive.NilObjectID
	if req.TeamID != "" {
		teamID, err = primitive.ObjectIDFromHex(req.TeamID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid teamId format")
			return
		}
	}

	tmpl, err := h.templateService.CreateTemplate(c.Request.Context(), coachID, teamID, req.Title, req.WeeksCount, req.CycleDays)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tmpl)
}

func (h *CoachHandler) ListTemplates(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}

	templates, err := h.templateService.GetTemplatesByCoach(c.Request.Context(), coachID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if templates == nil {
		templates = []domain.ProgramTemplate{}
	}
	c.JSON(http.StatusOK, templates)
}

func (h *CoachHandler) GetTemplate(c *gin.Context) {
	templateID, err := parseObjectIDParam(c, "templateId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	tmpl, err := h.templateService.GetTemplate(c.Request.Context(), templateID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

func (h *CoachHandler) UpdateTemplate(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	templateID, err := parseObjectIDParam(c, "templateId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	tmpl, err := h.templateService.UpdateTemplate(c.Request.Context(), coachID, templateID, req.Title, req.WeeksCount, req.CycleDays)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

func (h *CoachHandler) DeleteTemplate(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	templateID, err := parseObjectIDParam(c, "templateId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), coachID, templateID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// === Weeks and days ===

func (h *CoachHandler) UpsertTemplateWeek(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	templateID, err := parseObjectIDParam(c, "templateId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	weekIndex, err := parseIntParam(c, "weekIndex")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req UpsertWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.templateService.UpsertTemplateWeek(c.Request.Context(), coachID, templateID, weekIndex, req.Goals, req.Assignments); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CoachHandler) GetTemplateWeekPlan(c *gin.Context) {
	templateID, err := parseObjectIDParam(c, "templateId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	weekIndex, err := parseIntParam(c, "weekIndex")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.templateService.GetWeekPlan(c.Request.Context(), templateID, weekIndex)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *CoachHandler) SetTemplateDay(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	templateID, err := parseObjectIDParam(c, "templateId")
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

	var req SetDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	focusID, err := optionalObjectID(req.FocusID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid focusId format")
		return
	}

	day, err := h.templateService.SetTemplateDay(c.Request.Context(), coachID, templateID, weekIndex, dayIndex, focusID, req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (h *CoachHandler) AddDayAssignment(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	templateID, err := parseObjectIDParam(c, "templateId")
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

	input, err := bindAssignmentInput(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.templateService.AddDayAssignment(c.Request.Context(), coachID, templateID, weekIndex, dayIndex, *input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *CoachHandler) UpdateDayAssignment(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	assignmentID, err := parseObjectIDParam(c, "assignmentId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	input, err := bindAssignmentInput(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.templateService.UpdateDayAssignment(c.Request.Context(), coachID, assignmentID, *input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *CoachHandler) DeleteDayAssignment(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	assignmentID, err := parseObjectIDParam(c, "assignmentId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.templateService.DeleteDayAssignment(c.Request.Context(), coachID, assignmentID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// === Focus library ===

func (h *CoachHandler) CreateFocus(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}

	var req FocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	focus, err := h.templateService.CreateFocus(c.Request.Context(), coachID, req.Name, req.Description, req.Cues)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, focus)
}

func (h *CoachHandler) ListFocuses(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}

	focuses, err := h.templateService.GetFocusesByCoach(c.Request.Context(), coachID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if focuses == nil {
		focuses = []domain.Focus{}
	}
	c.JSON(http.StatusOK, focuses)
}

func (h *CoachHandler) UpdateFocus(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	focusID, err := parseObjectIDParam(c, "focusId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req FocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	focus, err := h.templateService.UpdateFocus(c.Request.Context(), coachID, focusID, req.Name, req.Description, req.Cues)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, focus)
}

func (h *CoachHandler) DeleteFocus(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	focusID, err := parseObjectIDParam(c, "focusId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.templateService.DeleteFocus(c.Request.Context(), coachID, focusID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// === Drill library ===

func (h *CoachHandler) CreateDrill(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}

	var req DrillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	drill, err := h.templateService.CreateDrill(c.Request.Context(), coachID, drillFromRequest(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, drill)
}

func (h *CoachHandler) ListDrills(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}

	drills, err := h.templateService.GetDrillsByCoach(c.Request.Context(), coachID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if drills == nil {
		drills = []domain.Drill{}
	}
	c.JSON(http.StatusOK, drills)
}

func (h *CoachHandler) GetDrill(c *gin.Context) {
	drillID, err := parseObjectIDParam(c, "drillId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	drill, err := h.templateService.GetDrill(c.Request.Context(), drillID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, drill)
}

func (h *CoachHandler) UpdateDrill(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	drillID, err := parseObjectIDParam(c, "drillId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req DrillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	drill, err := h.templateService.UpdateDrill(c.Request.Context(), coachID, drillID, drillFromRequest(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, drill)
}

func (h *CoachHandler) DeleteDrill(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	drillID, err := parseObjectIDParam(c, "drillId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.templateService.DeleteDrill(c.Request.Context(), coachID, drillID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// === Roster ===

func (h *CoachHandler) AddPlayer(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}

	var req AddPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	player, err := h.coachService.AddPlayerByEmail(c.Request.Context(), coachID, req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(player))
}

func (h *CoachHandler) ListPlayers(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}

	players, err := h.coachService.GetPlayers(c.Request.Context(), coachID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]UserResponse, 0, len(players))
	for i := range players {
		out = append(out, MapUserToResponse(&players[i]))
	}
	c.JSON(http.StatusOK, out)
}

// === Enrollments ===

func (h *CoachHandler) EnrollPlayer(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}

	var req EnrollPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	templateID, err := primitive.ObjectIDFromHex(req.TemplateID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid templateId format")
		return
	}
	playerID, err := primitive.ObjectIDFromHex(req.PlayerID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid playerId format")
		return
	}

	var startAt time.Time
	if req.StartAt != nil {
		startAt = *req.StartAt
	}

	enrollment, err := h.coachService.EnrollPlayer(c.Request.Context(), coachID, templateID, playerID, startAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

func (h *CoachHandler) ListEnrollments(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}

	enrollments, err := h.coachService.GetEnrollmentsByCoach(c.Request.Context(), coachID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if enrollments == nil {
		enrollments = []domain.ProgramEnrollment{}
	}
	c.JSON(http.StatusOK, enrollments)
}

func (h *CoachHandler) SetEnrollmentStatus(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	enrollmentID, err := parseObjectIDParam(c, "enrollmentId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req EnrollmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.coachService.SetEnrollmentStatus(c.Request.Context(), coachID, enrollmentID, req.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// === Overrides ===

func (h *CoachHandler) UpsertWeekOverride(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
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

	var req UpsertWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.coachService.UpsertWeekOverride(c.Request.Context(), coachID, enrollmentID, weekIndex, req.Goals, req.Assignments); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CoachHandler) UpsertDayOverride(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
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

	var req DayOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	focusID, err := optionalObjectID(req.FocusID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid focusId format")
		return
	}

	specs := make([]domain.AssignmentSpec, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		drillID, err := primitive.ObjectIDFromHex(a.DrillID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid drillId format")
			return
		}
		specs = append(specs, domain.AssignmentSpec{
			DrillID:         drillID,
			Sets:            a.Sets,
			Reps:            a.Reps,
			DurationMinutes: a.DurationMinutes,
			RequiresUpload:  a.RequiresUpload,
			UploadPrompt:    a.UploadPrompt,
			Notes:           a.Notes,
		})
	}

	override, err := h.coachService.UpsertDayOverride(c.Request.Context(), coachID, enrollmentID, weekIndex, dayIndex, focusID, req.DayNote, specs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, override)
}

func (h *CoachHandler) DeleteDayOverride(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
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

	if err := h.coachService.DeleteDayOverride(c.Request.Context(), coachID, enrollmentID, weekIndex, dayIndex); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// === Monitoring ===

func (h *CoachHandler) GetPlayerDay(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
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

	view, err := h.coachService.GetPlayerDay(c.Request.Context(), coachID, enrollmentID, weekIndex, dayIndex)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CoachHandler) ReviewSubmission(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	submissionID, err := parseObjectIDParam(c, "submissionId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	review, err := h.coachService.ReviewSubmission(c.Request.Context(), coachID, submissionID, req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *CoachHandler) GetReviewQueue(c *gin.Context) {
	coachID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}

	queue, err := h.coachService.GetSubmissionsNeedingReview(c.Request.Context(), coachID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if queue == nil {
		queue = []domain.Submission{}
	}
	c.JSON(http.StatusOK, queue)
}

// === Helpers ===

func optionalObjectID(hex *string) (*primitive.ObjectID, error) {
	if hex == nil || *hex == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(*hex)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func bindAssignmentInput(c *gin.Context) (*service.AssignmentInput, error) {
	var req DayAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, fmt.Errorf("validation error: %v", err)
	}
	drillID, err := primitive.ObjectIDFromHex(req.DrillID)
	if err != nil {
		return nil, fmt.Errorf("invalid drillId format")
	}
	return &service.AssignmentInput{
		DrillID:         drillID,
		Sets:            req.Sets,
		Reps:            req.Reps,
		DurationMinutes: req.DurationMinutes,
		RequiresUpload:  req.RequiresUpload,
		UploadPrompt:    req.UploadPrompt,
		NotesToPlayer:   req.NotesToPlayer,
		SortOrder:       req.SortOrder,
	}, nil
}

func drillFromRequest(req DrillRequest) domain.Drill {
	return domain.Drill{
		Title:          req.Title,
		Category:       req.Category,
		Goal:           req.Goal,
		Equipment:      req.Equipment,
		Cues:           req.Cues,
		CommonMistakes: req.CommonMistakes,
		Media:          req.Media,
	}
}
