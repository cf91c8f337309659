package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dugout/coaching-app/internal/domain"
	"github.com/dugout/coaching-app/internal/repository"
	"github.com/dugout/coaching-app/internal/schedule"
)

// --- Error Definitions ---
var (
	ErrPlayerNotFound            = errors.New("player not found with the provided email")
	ErrUserNotPlayer             = errors.New("user found, but is not a player")
	ErrPlayerAlreadyAssigned     = errors.New("player is already assigned to a coach")
	ErrPlayerNotManaged          = errors.New("player is not managed by this coach")
	ErrEnrollmentNotFound        = errors.New("enrollment not found")
	ErrEnrollmentAccessDenied    = errors.New("access denied to this enrollment")
	ErrInvalidEnrollmentStatus   = errors.New("invalid enrollment status")
	ErrSubmissionNotFound        = errors.New("submission not found")
	ErrSubmissionAlreadyReviewed = errors.New("submission has already been reviewed")
)

// --- Service Interface ---
type CoachService interface {
	// Roster
	AddPlayerByEmail(ctx context.Context, coachID primitive.ObjectID, playerEmail string) (*domain.User, error)
	GetPlayers(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error)

	// Enrollments
	EnrollPlayer(ctx context.Context, coachID, templateID, playerID primitive.ObjectID, startAt time.Time) (*domain.ProgramEnrollment, error)
	SetEnrollmentStatus(ctx context.Context, coachID, enrollmentID primitive.ObjectID, status domain.EnrollmentStatus) error
	GetEnrollmentsByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.ProgramEnrollment, error)

	// Per-enrollment overrides
	UpsertWeekOverride(ctx context.Context, coachID, enrollmentID primitive.ObjectID, weekIndex int, goals, assignments []string) error
	UpsertDayOverride(ctx context.Context, coachID, enrollmentID primitive.ObjectID, weekIndex, dayIndex int, focusID *primitive.ObjectID, dayNote string, assignments []domain.AssignmentSpec) (*domain.DayOverride, error)
	DeleteDayOverride(ctx context.Context, coachID, enrollmentID primitive.ObjectID, weekIndex, dayIndex int) error

	// Monitoring
	GetPlayerDay(ctx context.Context, coachID, enrollmentID primitive.ObjectID, weekIndex, dayIndex int) (*DayView, error)
	ReviewSubmission(ctx context.Context, coachID, submissionID primitive.ObjectID, reviewNote string) (*domain.Review, error)
	GetSubmissionsNeedingReview(ctx context.Context, coachID primitive.ObjectID) ([]domain.Submission, error)
}

// coachService implements the CoachService interface.
type coachService struct {
	planResolver
	userRepo       repository.UserRepository
	templateRepo   repository.TemplateRepository
	enrollmentRepo repository.EnrollmentRepository
	weekOverrides  repository.WeekOverrideRepository
	reviewRepo     repository.ReviewRepository
}

// NewCoachService creates a new instance of coachService.
func NewCoachService(
	userRepo repository.UserRepository,
	templateRepo repository.TemplateRepository,
	enrollmentRepo repository.EnrollmentRepository,
	weekOverrides repository.WeekOverrideRepository,
	resolver planResolver,
) CoachService {
	return &coachService{
		planResolver:   resolver,
		userRepo:       userRepo,
		templateRepo:   templateRepo,
		enrollmentRepo: enrollmentRepo,
		weekOverrides:  weekOverrides,
		reviewRepo:     resolver.reviews,
	}
}

// NewPlanResolver wires the repositories shared by the coach and player
// services for resolving day views.
func NewPlanResolver(
	dayRepo repository.TemplateDayRepository,
	dayAssigns repository.DayAssignmentRepository,
	overrideRepo repository.DayOverrideRepository,
	completions repository.CompletionRepository,
	submissions repository.SubmissionRepository,
	reviews repository.ReviewRepository,
	focusRepo repository.FocusRepository,
	drillRepo repository.DrillRepository,
) planResolver {
	return planResolver{
		dayRepo:      dayRepo,
		dayAssigns:   dayAssigns,
		overrideRepo: overrideRepo,
		completions:  completions,
		submissions:  submissions,
		reviews:      reviews,
		focusRepo:    focusRepo,
		drillRepo:    drillRepo,
	}
}

// === Roster ===

// AddPlayerByEmail finds a player by email and assigns them to the coach.
func (s *coachService) AddPlayerByEmail(ctx context.Context, coachID primitive.ObjectID, playerEmail string) (*domain.User, error) {
	player, err := s.userRepo.GetByEmail(ctx, playerEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	if !player.IsPlayer() {
		return nil, ErrUserNotPlayer
	}
	if player.CoachID != nil {
		if *player.CoachID == coachID {
			return player, nil // already on this roster, treat as success
		}
		return nil, ErrPlayerAlreadyAssigned
	}

	if err := s.userRepo.SetCoachForPlayer(ctx, player.ID, coachID); err != nil {
		return nil, err
	}
	if err := s.userRepo.AddPlayerIDToCoach(ctx, coachID, player.ID); err != nil {
		return nil, err
	}

	player.CoachID = &coachID
	return player, nil
}

// GetPlayers lists all players on the coach's roster.
func (s *coachService) GetPlayers(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error) {
	return s.userRepo.GetPlayersByCoachID(ctx, coachID)
}

// === Enrollments ===

// EnrollPlayer binds one of the coach's players to one of the coach's
// templates starting at the given anchor time. StartAt defaults to now.
func (s *coachService) EnrollPlayer(ctx context.Context, coachID, templateID, playerID primitive.ObjectID, startAt time.Time) (*domain.ProgramEnrollment, error) {
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

	player, err := s.userRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if !player.IsPlayer() || player.CoachID == nil || *player.CoachID != coachID {
		return nil, ErrPlayerNotManaged
	}

	if startAt.IsZero() {
		startAt = time.Now()
	}

	enrollment := &domain.ProgramEnrollment{
		TemplateID: templateID,
		PlayerID:   playerID,
		CoachID:    coachID,
		StartAt:    startAt,
		Status:     domain.EnrollmentActive,
	}
	id, err := s.enrollmentRepo.Create(ctx, enrollment)
	if err != nil {
		return nil, err
	}
	enrollment.ID = id
	return enrollment, nil
}

// SetEnrollmentStatus pauses, resumes, or completes an enrollment.
func (s *coachService) SetEnrollmentStatus(ctx context.Context, coachID, enrollmentID primitive.ObjectID, status domain.EnrollmentStatus) error {
	if !domain.ValidEnrollmentStatus(status) {
		return ErrInvalidEnrollmentStatus
	}
	if _, err := s.ownedEnrollment(ctx, coachID, enrollmentID); err != nil {
		return err
	}
	return s.enrollmentRepo.UpdateStatus(ctx, enrollmentID, status)
}

// GetEnrollmentsByCoach lists every enrollment the coach supervises.
func (s *coachService) GetEnrollmentsByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.ProgramEnrollment, error) {
	return s.enrollmentRepo.GetByCoachID(ctx, coachID)
}

// === Overrides ===

// UpsertWeekOverride writes the legacy week-level override for an enrollment.
func (s *coachService) UpsertWeekOverride(ctx context.Context, coachID, enrollmentID primitive.ObjectID, weekIndex int, goals, assignments []string) error {
	enrollment, err := s.ownedEnrollment(ctx, coachID, enrollmentID)
	if err != nil {
		return err
	}
	tmpl, err := s.templateRepo.GetByID(ctx, enrollment.TemplateID)
	if err != nil {
		return err
	}
	if weekIndex < 1 || weekIndex > tmpl.WeeksCount {
		return schedule.ErrOutOfRange
	}

	return s.weekOverrides.Upsert(ctx, &domain.WeekOverride{
		EnrollmentID: enrollmentID,
		WeekIndex:    weekIndex,
		Goals:        goals,
		Assignments:  assignments,
	})
}

// UpsertDayOverride writes a full day override. Once the row exists its
// focus and note are authoritative for the slot, even when empty; the
// assignment list replaces the template's only when non-empty.
func (s *coachService) UpsertDayOverride(ctx context.Context, coachID, enrollmentID primitive.ObjectID, weekIndex, dayIndex int, focusID *primitive.ObjectID, dayNote string, assignments []domain.AssignmentSpec) (*domain.DayOverride, error) {
	enrollment, err := s.ownedEnrollment(ctx, coachID, enrollmentID)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.templateRepo.GetByID(ctx, enrollment.TemplateID)
	if err != nil {
		return nil, err
	}
	if weekIndex < 1 || weekIndex > tmpl.WeeksCount || dayIndex < 1 || dayIndex > tmpl.CycleDays {
		return nil, schedule.ErrOutOfRange
	}

	if focusID != nil {
		focus, err := s.focusRepo.GetByID(ctx, *focusID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrFocusNotFound
			}
			return nil, err
		}
		if focus.CoachID != coachID {
			return nil, ErrFocusAccessDenied
		}
	}

	for _, spec := range assignments {
		drill, err := s.drillRepo.GetByID(ctx, spec.DrillID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrDrillNotFound
			}
			return nil, err
		}
		if drill.CoachID != coachID {
			return nil, ErrDrillAccessDenied
		}
	}

	return s.overrideRepo.Upsert(ctx, &domain.DayOverride{
		EnrollmentID: enrollmentID,
		WeekIndex:    weekIndex,
		DayIndex:     dayIndex,
		FocusID:      focusID,
		DayNote:      dayNote,
		Assignments:  assignments,
	})
}

// DeleteDayOverride removes the override so the slot falls back to the
// template plan.
func (s *coachService) DeleteDayOverride(ctx context.Context, coachID, enrollmentID primitive.ObjectID, weekIndex, dayIndex int) error {
	if _, err := s.ownedEnrollment(ctx, coachID, enrollmentID); err != nil {
		return err
	}
	if err := s.overrideRepo.Delete(ctx, enrollmentID, weekIndex, dayIndex); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil // nothing to remove
		}
		return err
	}
	return nil
}

// === Monitoring ===

// GetPlayerDay resolves one explicit (week, day) slot of a player's
// enrollment, annotated with the player's progress.
func (s *coachService) GetPlayerDay(ctx context.Context, coachID, enrollmentID primitive.ObjectID, weekIndex, dayIndex int) (*DayView, error) {
	enrollment, err := s.ownedEnrollment(ctx, coachID, enrollmentID)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.templateRepo.GetByID(ctx, enrollment.TemplateID)
	if err != nil {
		return nil, err
	}

	pos := schedule.Position{Week: weekIndex, Day: dayIndex}
	if !schedule.InRange(pos, tmpl.CycleDays, tmpl.WeeksCount) {
		return nil, schedule.ErrOutOfRange
	}
	return s.dayView(ctx, enrollment, pos)
}

// ReviewSubmission appends the single review for a submission. A second
// review of the same submission is rejected.
func (s *coachService) ReviewSubmission(ctx context.Context, coachID, submissionID primitive.ObjectID, reviewNote string) (*domain.Review, error) {
	sub, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	if _, err := s.ownedEnrollment(ctx, coachID, sub.EnrollmentID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		SubmissionID: submissionID,
		ReviewedAt:   time.Now(),
		ReviewNote:   reviewNote,
	}
	id, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrSubmissionAlreadyReviewed
		}
		return nil, err
	}
	review.ID = id
	return review, nil
}

// GetSubmissionsNeedingReview returns the coach's review queue: every
// submission across their enrollments that has no review yet, newest first.
func (s *coachService) GetSubmissionsNeedingReview(ctx context.Context, coachID primitive.ObjectID) ([]domain.Submission, error) {
	enrollments, err := s.enrollmentRepo.GetByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return []domain.Submission{}, nil
	}

	ids := make([]primitive.ObjectID, len(enrollments))
	for i, e := range enrollments {
		ids[i] = e.ID
	}
	return s.submissions.ListNeedingReview(ctx, ids)
}

// === Helpers ===

func (s *coachService) ownedEnrollment(ctx context.Context, coachID, enrollmentID primitive.ObjectID) (*domain.ProgramEnrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	if enrollment.CoachID != coachID {
		return nil, ErrEnrollmentAccessDenied
	}
	return enrollment, nil
}
