package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dugout/coaching-app/internal/domain"
	"github.com/dugout/coaching-app/internal/repository"
	"github.com/dugout/coaching-app/internal/schedule"
)

// --- Error Definitions ---
var (
	ErrTemplateNotFound     = errors.New("program template not found")
	ErrTemplateAccessDenied = errors.New("access denied to modify this template")
	ErrFocusNotFound        = errors.New("focus not found")
	ErrFocusAccessDenied    = errors.New("access denied to modify this focus")
	ErrDrillNotFound        = errors.New("drill not found")
	ErrDrillAccessDenied    = errors.New("access denied to modify this drill")
	ErrDrillInUse           = errors.New("drill is referenced by assignments and cannot be deleted")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrValidationFailed     = errors.New("validation failed")
)

// AssignmentInput carries the prescription fields for creating or updating
// a template day assignment.
type AssignmentInput struct {
	DrillID         primitive.ObjectID
	Sets            *int
	Reps            *int
	DurationMinutes *int
	RequiresUpload  bool
	UploadPrompt    string
	NotesToPlayer   string
	SortOrder       int
}

// --- Service Interface ---
type TemplateService interface {
	// Template lifecycle
	CreateTemplate(ctx context.Context, coachID, teamID primitive.ObjectID, title string, weeksCount, cycleDays int) (*domain.ProgramTemplate, error)
	GetTemplate(ctx context.Context, templateID primitive.ObjectID) (*domain.ProgramTemplate, error)
	GetTemplatesByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.ProgramTemplate, error)
	UpdateTemplate(ctx context.Context, coachID, templateID primitive.ObjectID, title string, weeksCount, cycleDays int) (*domain.ProgramTemplate, error)
	DeleteTemplate(ctx context.Context, coachID, templateID primitive.ObjectID) error

	// Week authoring (legacy representation) and the unified week view
	UpsertTemplateWeek(ctx context.Context, coachID, templateID primitive.ObjectID, weekIndex int, goals, assignments []string) error
	GetWeekPlan(ctx context.Context, templateID primitive.ObjectID, weekIndex int) (*schedule.WeekPlan, error)

	// Day authoring (day-level representation)
	SetTemplateDay(ctx context.Context, coachID, templateID primitive.ObjectID, weekIndex, dayIndex int, focusID *primitive.ObjectID, note string) (*domain.TemplateDay, error)
	AddDayAssignment(ctx context.Context, coachID, templateID primitive.ObjectID, weekIndex, dayIndex int, input AssignmentInput) (*domain.TemplateDayAssignment, error)
	UpdateDayAssignment(ctx context.Context, coachID, assignmentID primitive.ObjectID, input AssignmentInput) (*domain.TemplateDayAssignment, error)
	DeleteDayAssignment(ctx context.Context, coachID, assignmentID primitive.ObjectID) error

	// Focus library
	CreateFocus(ctx context.Context, coachID primitive.ObjectID, name, description string, cues []string) (*domain.Focus, error)
	GetFocusesByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Focus, error)
	UpdateFocus(ctx context.Context, coachID, focusID primitive.ObjectID, name, description string, cues []string) (*domain.Focus, error)
	DeleteFocus(ctx context.Context, coachID, focusID primitive.ObjectID) error

	// Drill library
	CreateDrill(ctx context.Context, coachID primitive.ObjectID, drill domain.Drill) (*domain.Drill, error)
	GetDrill(ctx context.Context, drillID primitive.ObjectID) (*domain.Drill, error)
	GetDrillsByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Drill, error)
	UpdateDrill(ctx context.Context, coachID, drillID primitive.ObjectID, drill domain.Drill) (*domain.Drill, error)
	DeleteDrill(ctx context.Context, coachID, drillID primitive.ObjectID) error
}

// templateService implements the TemplateService interface.
type templateService struct {
	templateRepo repository.TemplateRepository
	weekRepo     repository.TemplateWeekRepository
	dayRepo      repository.TemplateDayRepository
	dayAssigns   repository.DayAssignmentRepository
	focusRepo    repository.FocusRepository
	drillRepo    repository.DrillRepository
	overrideRepo repository.DayOverrideRepository
}

// NewTemplateService creates a new instance of templateService.
func NewTemplateService(
	templateRepo repository.TemplateRepository,
	weekRepo repository.TemplateWeekRepository,
	dayRepo repository.TemplateDayRepository,
	dayAssigns repository.DayAssignmentRepository,
	focusRepo repository.FocusRepository,
	drillRepo repository.DrillRepository,
	overrideRepo repository.DayOverrideRepository,
) TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		weekRepo:     weekRepo,
		dayRepo:      dayRepo,
		dayAssigns:   dayAssigns,
		focusRepo:    focusRepo,
		drillRepo:    drillRepo,
		overrideRepo: overrideRepo,
	}
}

// === Template lifecycle ===

// CreateTemplate creates a new program template. Configuration errors
// (non-positive weeksCount/cycleDays) are rejected here so the cycle
// resolver never sees them.
func (s *templateService) CreateTemplate(ctx context.Context, coachID, teamID primitive.ObjectID, title string, weeksCount, cycleDays int) (*domain.ProgramTemplate, error) {
	if coachID == primitive.NilObjectID || title == "" {
		return nil, ErrValidationFailed
	}
	if cycleDays == 0 {
		cycleDays = domain.DefaultCycleDays
	}

	tmpl := &domain.ProgramTemplate{
		CoachID:    coachID,
		TeamID:     teamID,
		Title:      title,
		WeeksCount: weeksCount,
		CycleDays:  cycleDays,
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	id, err := s.templateRepo.Create(ctx, tmpl)
	if err != nil {
		return nil, err
	}
	tmpl.ID = id
	return tmpl, nil
}

// GetTemplate retrieves a single template.
func (s *templateService) GetTemplate(ctx context.Context, templateID primitive.ObjectID) (*domain.ProgramTemplate, error) {
	tmpl, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return tmpl, nil
}

// GetTemplatesByCoach retrieves all templates owned by a coach.
func (s *templateService) GetTemplatesByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.ProgramTemplate, error) {
	if coachID == primitive.NilObjectID {
		return nil, errors.New("coach ID is required")
	}
	return s.templateRepo.GetByCoachID(ctx, coachID)
}

// UpdateTemplate modifies a template's title and cycle shape, ensuring ownership.
func (s *templateService) UpdateTemplate(ctx context.Context, coachID, templateID primitive.ObjectID, title string, weeksCount, cycleDays int) (*domain.ProgramTemplate, error) {
	tmpl, err := s.ownedTemplate(ctx, coachID, templateID)
	if err != nil {
		return nil, err
	}

	if title != "" {
		tmpl.Title = title
	}
	if weeksCount != 0 {
		tmpl.WeeksCount = weeksCount
	}
	if cycleDays != 0 {
		tmpl.CycleDays = cycleDays
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Update(ctx, tmpl); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return tmpl, nil
}

// DeleteTemplate removes a template and its week/day/assignment rows.
func (s *templateService) DeleteTemplate(ctx context.Context, coachID, templateID primitive.ObjectID) error {
	if err := s.templateRepo.Delete(ctx, templateID, coachID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}

	// Cleanup of dependent rows. These are independent single-collection
	// deletes; a failure leaves orphans rather than partial templates.
	if err := s.weekRepo.DeleteByTemplateID(ctx, templateID); err != nil {
		return err
	}
	if err := s.dayRepo.DeleteByTemplateID(ctx, templateID); err != nil {
		return err
	}
	return s.dayAssigns.DeleteByTemplateID(ctx, templateID)
}

// === Week authoring ===

// UpsertTemplateWeek writes the legacy week-level goals/assignments.
func (s *templateService) UpsertTemplateWeek(ctx context.Context, coachID, templateID primitive.ObjectID, weekIndex int, goals, assignments []string) error {
	tmpl, err := s.ownedTemplate(ctx, coachID, templateID)
	if err != nil {
		return err
	}
	if weekIndex < 1 || weekIndex > tmpl.WeeksCount {
		return schedule.ErrOutOfRange
	}

	return s.weekRepo.Upsert(ctx, &domain.TemplateWeek{
		TemplateID:  templateID,
		WeekIndex:   weekIndex,
		Goals:       goals,
		Assignments: assignments,
	})
}

// GetWeekPlan resolves one template week into its tagged variant: day-level
// when any TemplateDay rows exist for the week, legacy otherwise. This is
// the template-scoped view; the per-enrollment legacy path (WeekOverride)
// lives on CoachService/PlayerService.
func (s *templateService) GetWeekPlan(ctx context.Context, templateID primitive.ObjectID, weekIndex int) (*schedule.WeekPlan, error) {
	tmpl, err := s.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if weekIndex < 1 || weekIndex > tmpl.WeeksCount {
		return nil, schedule.ErrOutOfRange
	}

	days, err := s.dayRepo.ListByWeek(ctx, templateID, weekIndex)
	if err != nil {
		return nil, err
	}

	var tw *domain.TemplateWeek
	if len(days) == 0 {
		tw, err = s.weekRepo.Get(ctx, templateID, weekIndex)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	plan := schedule.BuildWeekPlan(tw, nil, days)
	return &plan, nil
}

// === Day authoring ===

// SetTemplateDay upserts the day skeleton (focus + note) for one slot.
func (s *templateService) SetTemplateDay(ctx context.Context, coachID, templateID primitive.ObjectID, weekIndex, dayIndex int, focusID *primitive.ObjectID, note string) (*domain.TemplateDay, error) {
	tmpl, err := s.ownedTemplate(ctx, coachID, templateID)
	if err != nil {
		return nil, err
	}
	if weekIndex < 1 || weekIndex > tmpl.WeeksCount || dayIndex < 1 || dayIndex > tmpl.CycleDays {
		return nil, schedule.ErrOutOfRange
	}
	if focusID != nil {
		if _, err := s.ownedFocus(ctx, coachID, *focusID); err != nil {
			return nil, err
		}
	}

	return s.dayRepo.Upsert(ctx, &domain.TemplateDay{
		TemplateID: templateID,
		WeekIndex:  weekIndex,
		DayIndex:   dayIndex,
		FocusID:    focusID,
		Note:       note,
	})
}

// AddDayAssignment appends a drill prescription to a template day, creating
// the day row when it does not exist yet.
func (s *templateService) AddDayAssignment(ctx context.Context, coachID, templateID primitive.ObjectID, weekIndex, dayIndex int, input AssignmentInput) (*domain.TemplateDayAssignment, error) {
	tmpl, err := s.ownedTemplate(ctx, coachID, templateID)
	if err != nil {
		return nil, err
	}
	if weekIndex < 1 || weekIndex > tmpl.WeeksCount || dayIndex < 1 || dayIndex > tmpl.CycleDays {
		return nil, schedule.ErrOutOfRange
	}
	if _, err := s.ownedDrill(ctx, coachID, input.DrillID); err != nil {
		return nil, err
	}

	day, err := s.dayRepo.Get(ctx, templateID, weekIndex, dayIndex)
	if errors.Is(err, repository.ErrNotFound) {
		day, err = s.dayRepo.Upsert(ctx, &domain.TemplateDay{
			TemplateID: templateID,
			WeekIndex:  weekIndex,
			DayIndex:   dayIndex,
		})
	}
	if err != nil {
		return nil, err
	}

	a := &domain.TemplateDayAssignment{
		DayID:           day.ID,
		TemplateID:      templateID,
		WeekIndex:       weekIndex,
		DayIndex:        dayIndex,
		DrillID:         input.DrillID,
		Sets:            input.Sets,
		Reps:            input.Reps,
		DurationMinutes: input.DurationMinutes,
		RequiresUpload:  input.RequiresUpload,
		UploadPrompt:    input.UploadPrompt,
		NotesToPlayer:   input.NotesToPlayer,
		SortOrder:       input.SortOrder,
	}
	id, err := s.dayAssigns.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	return a, nil
}

// UpdateDayAssignment modifies an existing day assignment, ensuring the
// coach owns the parent template.
func (s *templateService) UpdateDayAssignment(ctx context.Context, coachID, assignmentID primitive.ObjectID, input AssignmentInput) (*domain.TemplateDayAssignment, error) {
	a, err := s.dayAssigns.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	if _, err := s.ownedTemplate(ctx, coachID, a.TemplateID); err != nil {
		return nil, err
	}
	if input.DrillID != primitive.NilObjectID && input.DrillID != a.DrillID {
		if _, err := s.ownedDrill(ctx, coachID, input.DrillID); err != nil {
			return nil, err
		}
		a.DrillID = input.DrillID
	}

	a.Sets = input.Sets
	a.Reps = input.Reps
	a.DurationMinutes = input.DurationMinutes
	a.RequiresUpload = input.RequiresUpload
	a.UploadPrompt = input.UploadPrompt
	a.NotesToPlayer = input.NotesToPlayer
	a.SortOrder = input.SortOrder

	if err := s.dayAssigns.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return a, nil
}

// DeleteDayAssignment removes one day assignment, ensuring ownership.
func (s *templateService) DeleteDayAssignment(ctx context.Context, coachID, assignmentID primitive.ObjectID) error {
	a, err := s.dayAssigns.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	if _, err := s.ownedTemplate(ctx, coachID, a.TemplateID); err != nil {
		return err
	}
	return s.dayAssigns.Delete(ctx, assignmentID)
}

// === Focus library ===

// CreateFocus adds a focus to the coach's library.
func (s *templateService) CreateFocus(ctx context.Context, coachID primitive.ObjectID, name, description string, cues []string) (*domain.Focus, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	focus := &domain.Focus{
		CoachID:     coachID,
		Name:        name,
		Description: description,
		Cues:        cues,
	}
	id, err := s.focusRepo.Create(ctx, focus)
	if err != nil {
		return nil, err
	}
	focus.ID = id
	return focus, nil
}

// GetFocusesByCoach lists the coach's focus library.
func (s *templateService) GetFocusesByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Focus, error) {
	return s.focusRepo.GetByCoachID(ctx, coachID)
}

// UpdateFocus modifies a focus, ensuring ownership.
func (s *templateService) UpdateFocus(ctx context.Context, coachID, focusID primitive.ObjectID, name, description string, cues []string) (*domain.Focus, error) {
	focus, err := s.ownedFocus(ctx, coachID, focusID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrValidationFailed
	}

	focus.Name = name
	focus.Description = description
	focus.Cues = cues

	if err := s.focusRepo.Update(ctx, focus); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFocusNotFound
		}
		return nil, err
	}
	return focus, nil
}

// DeleteFocus removes a focus and clears the focusId on every template day
// and day override that referenced it (nulling, not cascading).
func (s *templateService) DeleteFocus(ctx context.Context, coachID, focusID primitive.ObjectID) error {
	if err := s.focusRepo.Delete(ctx, focusID, coachID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFocusNotFound
		}
		return err
	}
	if err := s.dayRepo.ClearFocus(ctx, focusID); err != nil {
		return err
	}
	return s.overrideRepo.ClearFocus(ctx, focusID)
}

// === Drill library ===

// CreateDrill adds a drill to the coach's library. Only the descriptive
// fields of the input are used; identity fields are assigned here.
func (s *templateService) CreateDrill(ctx context.Context, coachID primitive.ObjectID, drill domain.Drill) (*domain.Drill, error) {
	if drill.Title == "" {
		return nil, ErrValidationFailed
	}
	if drill.Category == "" {
		drill.Category = domain.CategoryOther
	}
	if !domain.ValidCategory(drill.Category) {
		return nil, ErrValidationFailed
	}

	drill.CoachID = coachID
	id, err := s.drillRepo.Create(ctx, &drill)
	if err != nil {
		return nil, err
	}
	drill.ID = id
	return &drill, nil
}

// GetDrill retrieves a single drill.
func (s *templateService) GetDrill(ctx context.Context, drillID primitive.ObjectID) (*domain.Drill, error) {
	drill, err := s.drillRepo.GetByID(ctx, drillID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDrillNotFound
		}
		return nil, err
	}
	return drill, nil
}

// GetDrillsByCoach lists the coach's drill library.
func (s *templateService) GetDrillsByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Drill, error) {
	return s.drillRepo.GetByCoachID(ctx, coachID)
}

// UpdateDrill modifies a drill (media list replaced wholesale), ensuring ownership.
func (s *templateService) UpdateDrill(ctx context.Context, coachID, drillID primitive.ObjectID, drill domain.Drill) (*domain.Drill, error) {
	existing, err := s.ownedDrill(ctx, coachID, drillID)
	if err != nil {
		return nil, err
	}
	if drill.Title == "" {
		return nil, ErrValidationFailed
	}
	if drill.Category != "" && !domain.ValidCategory(drill.Category) {
		return nil, ErrValidationFailed
	}

	existing.Title = drill.Title
	if drill.Category != "" {
		existing.Category = drill.Category
	}
	existing.Goal = drill.Goal
	existing.Equipment = drill.Equipment
	existing.Cues = drill.Cues
	existing.CommonMistakes = drill.CommonMistakes
	existing.Media = drill.Media

	if err := s.drillRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDrillNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteDrill removes a drill unless any template assignment or override
// assignment still references it (referential guard, not cascade).
func (s *templateService) DeleteDrill(ctx context.Context, coachID, drillID primitive.ObjectID) error {
	if _, err := s.ownedDrill(ctx, coachID, drillID); err != nil {
		return err
	}

	n, err := s.dayAssigns.CountByDrillID(ctx, drillID)
	if err != nil {
		return err
	}
	if n == 0 {
		n, err = s.overrideRepo.CountByDrillID(ctx, drillID)
		if err != nil {
			return err
		}
	}
	if n > 0 {
		return ErrDrillInUse
	}

	if err := s.drillRepo.Delete(ctx, drillID, coachID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDrillNotFound
		}
		return err
	}
	return nil
}

// === Ownership helpers ===

func (s *templateService) ownedTemplate(ctx context.Context, coachID, templateID primitive.ObjectID) (*domain.ProgramTemplate, error) {
	tmpl, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if tmpl.CoachID != coachID {
		return nil, ErrTemplateAccessDenied
	}
	return tmpl, nil
}

func (s *templateService) ownedFocus(ctx context.Context, coachID, focusID primitive.ObjectID) (*domain.Focus, error) {
	focus, err := s.focusRepo.GetByID(ctx, focusID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFocusNotFound
		}
		return nil, err
	}
	if focus.CoachID != coachID {
		return nil, ErrFocusAccessDenied
	}
	return focus, nil
}

func (s *templateService) ownedDrill(ctx context.Context, coachID, drillID primitive.ObjectID) (*domain.Drill, error) {
	drill, err := s.drillRepo.GetByID(ctx, drillID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDrillNotFound
		}
		return nil, err
	}
	if drill.CoachID != coachID {
		return nil, ErrDrillAccessDenied
	}
	return drill, nil
}
