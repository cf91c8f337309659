package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dugout/coaching-app/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("conflict")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	AddPlayerIDToCoach(ctx context.Context, coachID, playerID primitive.ObjectID) error
	GetPlayersByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error)
	SetCoachForPlayer(ctx context.Context, playerID, coachID primitive.ObjectID) error
}

// TemplateRepository defines the interface for interacting with program templates.
type TemplateRepository interface {
	Create(ctx context.Context, tmpl *domain.ProgramTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramTemplate, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.ProgramTemplate, error)
	Update(ctx context.Context, tmpl *domain.ProgramTemplate) error
	Delete(ctx context.Context, id, coachID primitive.ObjectID) error // Ensure coach owns the template
}

// TemplateWeekRepository covers the legacy week-granularity rows.
type TemplateWeekRepository interface {
	Upsert(ctx context.Context, week *domain.TemplateWeek) error
	Get(ctx context.Context, templateID primitive.ObjectID, weekIndex int) (*domain.TemplateWeek, error)
	ListByTemplateID(ctx context.Context, templateID primitive.ObjectID) ([]domain.TemplateWeek, error)
	DeleteByTemplateID(ctx context.Context, templateID primitive.ObjectID) error
}

// TemplateDayRepository covers the day-level plan skeletons.
type TemplateDayRepository interface {
	Upsert(ctx context.Context, day *domain.TemplateDay) (*domain.TemplateDay, error)
	Get(ctx context.Context, templateID primitive.ObjectID, weekIndex, dayIndex int) (*domain.TemplateDay, error)
	ListByWeek(ctx context.Context, templateID primitive.ObjectID, weekIndex int) ([]domain.TemplateDay, error)
	ClearFocus(ctx context.Context, focusID primitive.ObjectID) error
	DeleteByTemplateID(ctx context.Context, templateID primitive.ObjectID) error
}

// DayAssignmentRepository covers assignments within template days.
type DayAssignmentRepository interface {
	Create(ctx context.Context, a *domain.TemplateDayAssignment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TemplateDayAssignment, error)
	ListByDay(ctx context.Context, templateID primitive.ObjectID, weekIndex, dayIndex int) ([]domain.TemplateDayAssignment, error)
	Update(ctx context.Context, a *domain.TemplateDayAssignment) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByDrillID(ctx context.Context, drillID primitive.ObjectID) (int64, error)
	DeleteByTemplateID(ctx context.Context, templateID primitive.ObjectID) error
}

// FocusRepository defines the interface for interacting with focus data.
type FocusRepository interface {
	Create(ctx context.Context, focus *domain.Focus) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Focus, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Focus, error)
	Update(ctx context.Context, focus *domain.Focus) error
	Delete(ctx context.Context, id, coachID primitive.ObjectID) error
}

// DrillRepository defines the interface for interacting with drill data.
type DrillRepository interface {
	Create(ctx context.Context, drill *domain.Drill) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Drill, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Drill, error)
	Update(ctx context.Context, drill *domain.Drill) error
	Delete(ctx context.Context, id, coachID primitive.ObjectID) error
}

// EnrollmentRepository defines the interface for player-template bindings.
type EnrollmentRepository interface {
	Create(ctx context.Context, e *domain.ProgramEnrollment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramEnrollment, error)
	GetByPlayerID(ctx context.Context, playerID primitive.ObjectID) ([]domain.ProgramEnrollment, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.ProgramEnrollment, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.EnrollmentStatus) error
}

// WeekOverrideRepository covers the legacy per-enrollment week overrides.
type WeekOverrideRepository interface {
	Upsert(ctx context.Context, ov *domain.WeekOverride) error
	Get(ctx context.Context, enrollmentID primitive.ObjectID, weekIndex int) (*domain.WeekOverride, error)
}

// DayOverrideRepository covers per-enrollment day overrides. Upsert returns
// the stored document because override assignment ids derive from the row's
// ObjectID.
type DayOverrideRepository interface {
	Upsert(ctx context.Context, ov *domain.DayOverride) (*domain.DayOverride, error)
	Get(ctx context.Context, enrollmentID primitive.ObjectID, weekIndex, dayIndex int) (*domain.DayOverride, error)
	Delete(ctx context.Context, enrollmentID primitive.ObjectID, weekIndex, dayIndex int) error
	ClearFocus(ctx context.Context, focusID primitive.ObjectID) error
	CountByDrillID(ctx context.Context, drillID primitive.ObjectID) (int64, error)
}

// CompletionRepository covers "done" marks. Upsert is idempotent per
// (enrollmentId, assignmentId): re-marking refreshes CompletedAt and never
// duplicates.
type CompletionRepository interface {
	Upsert(ctx context.Context, enrollmentID primitive.ObjectID, assignmentID string, completedAt time.Time) (*domain.AssignmentCompletion, error)
	ListByEnrollment(ctx context.Context, enrollmentID primitive.ObjectID) ([]domain.AssignmentCompletion, error)
}

// SubmissionRepository covers video-evidence submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, s *domain.Submission) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Submission, error)
	ListByEnrollment(ctx context.Context, enrollmentID primitive.ObjectID) ([]domain.Submission, error)
	// ListNeedingReview returns submissions for the given enrollments that
	// have no Review row, newest first. Derived per read, never persisted.
	ListNeedingReview(ctx context.Context, enrollmentIDs []primitive.ObjectID) ([]domain.Submission, error)
}

// ReviewRepository covers coach reviews. Create must surface ErrConflict
// when a review already exists for the submission (append-once).
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (primitive.ObjectID, error)
	GetBySubmissionID(ctx context.Context, submissionID primitive.ObjectID) (*domain.Review, error)
	ListBySubmissionIDs(ctx context.Context, submissionIDs []primitive.ObjectID) ([]domain.Review, error)
}

// VideoRepository defines the interface for interacting with video upload metadata.
type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
}
