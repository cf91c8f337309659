package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dugout/coaching-app/internal/domain"
	"github.com/dugout/coaching-app/internal/repository"
	"github.com/dugout/coaching-app/internal/schedule"
	"github.com/dugout/coaching-app/internal/storage"
)

// --- Error Definitions ---
var (
	ErrEnrollmentNotActive = errors.New("enrollment is not active")
	ErrInvalidContentType  = errors.New("invalid content type, expected video/*")
	ErrUploadURLGeneration = errors.New("failed to generate upload URL")
)

// UploadTarget is the result of requesting a presigned upload slot.
type UploadTarget struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// SubmissionInput carries everything needed to record a submission after the
// client has PUT the video bytes to the presigned URL.
type SubmissionInput struct {
	WeekIndex    int
	DayIndex     *int
	AssignmentID string
	ObjectKey    string
	FileName     string
	ContentType  string
	Size         int64
	Note         string
}

// SubmissionView is a submission joined with its review (if any) and a
// short-lived download URL for the evidence video.
type SubmissionView struct {
	Submission  domain.Submission `json:"submission"`
	Review      *domain.Review    `json:"review,omitempty"`
	DownloadURL string            `json:"downloadUrl,omitempty"`
}

// --- Service Interface ---
type PlayerService interface {
	GetMyEnrollments(ctx context.Context, playerID primitive.ObjectID) ([]domain.ProgramEnrollment, error)

	// Plan resolution
	GetTodayPlan(ctx context.Context, playerID, enrollmentID primitive.ObjectID, now time.Time) (*DayView, error)
	GetDayPlan(ctx context.Context, playerID, enrollmentID primitive.ObjectID, weekIndex, dayIndex int) (*DayView, error)
	GetWeekPlan(ctx context.Context, playerID, enrollmentID primitive.ObjectID, weekIndex int) (*schedule.WeekPlan, error)

	// Progress
	MarkComplete(ctx context.Context, playerID, enrollmentID primitive.ObjectID, assignmentID string) (*domain.AssignmentCompletion, error)
	RequestUploadURL(ctx context.Context, playerID primitive.ObjectID, contentType string) (*UploadTarget, error)
	CreateSubmission(ctx context.Context, playerID, enrollmentID primitive.ObjectID, input SubmissionInput) (*domain.Submission, error)
	GetMySubmissions(ctx context.Context, playerID, enrollmentID primitive.ObjectID) ([]SubmissionView, error)
}

// playerService implements the PlayerService interface.
type playerService struct {
	planResolver
	templateRepo   repository.TemplateRepository
	enrollmentRepo repository.EnrollmentRepository
	weekRepo       repository.TemplateWeekRepository
	weekOverrides  repository.WeekOverrideRepository
	videoRepo      repository.VideoRepository
	fileStorage    storage.FileStorage
}

// NewPlayerService creates a new instance of playerService.
func NewPlayerService(
	templateRepo repository.TemplateRepository,
	enrollmentRepo repository.EnrollmentRepository,
	weekRepo repository.TemplateWeekRepository,
	weekOverrides repository.WeekOverrideRepository,
	videoRepo repository.VideoRepository,
	fileStorage storage.FileStorage,
	resolver planResolver,
) PlayerService {
	return &playerService{
		planResolver:   resolver,
		templateRepo:   templateRepo,
		enrollmentRepo: enrollmentRepo,
		weekRepo:       weekRepo,
		weekOverrides:  weekOverrides,
		videoRepo:      videoRepo,
		fileStorage:    fileStorage,
	}
}

// GetMyEnrollments lists the player's enrollments across all statuses.
func (s *playerService) GetMyEnrollments(ctx context.Context, playerID primitive.ObjectID) ([]domain.ProgramEnrollment, error) {
	return s.enrollmentRepo.GetByPlayerID(ctx, playerID)
}

// GetTodayPlan resolves the player's current cycle position from the clock
// and returns the merged plan for that slot. Only active enrollments resolve.
func (s *playerService) GetTodayPlan(ctx context.Context, playerID, enrollmentID primitive.ObjectID, now time.Time) (*DayView, error) {
	enrollment, tmpl, err := s.ownedEnrollment(ctx, playerID, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status != domain.EnrollmentActive {
		return nil, ErrEnrollmentNotActive
	}
	if now.IsZero() {
		now = time.Now()
	}

	pos := schedule.ResolvePosition(enrollment.StartAt, tmpl.CycleDays, tmpl.WeeksCount, now)
	return s.dayView(ctx, enrollment, pos)
}

// GetDayPlan resolves an explicit (week, day) slot, for browsing past or
// future days of the program.
func (s *playerService) GetDayPlan(ctx context.Context, playerID, enrollmentID primitive.ObjectID, weekIndex, dayIndex int) (*DayView, error) {
	enrollment, tmpl, err := s.ownedEnrollment(ctx, playerID, enrollmentID)
	if err != nil {
		return nil, err
	}

	pos := schedule.Position{Week: weekIndex, Day: dayIndex}
	if !schedule.InRange(pos, tmpl.CycleDays, tmpl.WeeksCount) {
		return nil, schedule.ErrOutOfRange
	}
	return s.dayView(ctx, enrollment, pos)
}

// GetWeekPlan resolves one week of the enrollment, applying the legacy week
// override when the week has no day-level rows.
func (s *playerService) GetWeekPlan(ctx context.Context, playerID, enrollmentID primitive.ObjectID, weekIndex int) (*schedule.WeekPlan, error) {
	enrollment, tmpl, err := s.ownedEnrollment(ctx, playerID, enrollmentID)
	if err != nil {
		return nil, err
	}
	if weekIndex < 1 || weekIndex > tmpl.WeeksCount {
		return nil, schedule.ErrOutOfRange
	}

	days, err := s.dayRepo.ListByWeek(ctx, tmpl.ID, weekIndex)
	if err != nil {
		return nil, err
	}

	var tw *domain.TemplateWeek
	var wo *domain.WeekOverride
	if len(days) == 0 {
		tw, err = s.weekRepo.Get(ctx, tmpl.ID, weekIndex)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		wo, err = s.weekOverrides.Get(ctx, enrollment.ID, weekIndex)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	plan := schedule.BuildWeekPlan(tw, wo, days)
	return &plan, nil
}

// MarkComplete records a "done" mark for one assignment. Repeating the call
// refreshes the timestamp and never duplicates the row.
func (s *playerService) MarkComplete(ctx context.Context, playerID, enrollmentID primitive.ObjectID, assignmentID string) (*domain.AssignmentCompletion, error) {
	if assignmentID == "" {
		return nil, ErrValidationFailed
	}
	if _, _, err := s.ownedEnrollment(ctx, playerID, enrollmentID); err != nil {
		return nil, err
	}
	return s.completions.Upsert(ctx, enrollmentID, assignmentID, time.Now())
}

// RequestUploadURL mints an object key and a presigned PUT URL so the client
// can upload the video bytes directly to object storage.
func (s *playerService) RequestUploadURL(ctx context.Context, playerID primitive.ObjectID, contentType string) (*UploadTarget, error) {
	if !strings.HasPrefix(contentType, "video/") {
		return nil, ErrInvalidContentType
	}

	objectKey := fmt.Sprintf("submissions/%s/%s", playerID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadURLGeneration, err)
	}
	return &UploadTarget{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// CreateSubmission records the uploaded video's metadata and the submission
// that references it. Every call appends a new submission; resubmitting an
// assignment supersedes earlier review state. AssignmentID may be empty: a
// general week video is not tied to any one assignment.
func (s *playerService) CreateSubmission(ctx context.Context, playerID, enrollmentID primitive.ObjectID, input SubmissionInput) (*domain.Submission, error) {
	if input.ObjectKey == "" {
		return nil, ErrValidationFailed
	}
	enrollment, tmpl, err := s.ownedEnrollment(ctx, playerID, enrollmentID)
	if err != nil {
		return nil, err
	}
	if input.WeekIndex < 1 || input.WeekIndex > tmpl.WeeksCount {
		return nil, schedule.ErrOutOfRange
	}
	if input.DayIndex != nil && (*input.DayIndex < 1 || *input.DayIndex > tmpl.CycleDays) {
		return nil, schedule.ErrOutOfRange
	}

	video := &domain.Video{
		EnrollmentID: enrollmentID,
		PlayerID:     playerID,
		CoachID:      enrollment.CoachID,
		S3ObjectKey:  input.ObjectKey,
		FileName:     input.FileName,
		ContentType:  input.ContentType,
		Size:         input.Size,
		UploadedAt:   time.Now(),
	}
	videoID, err := s.videoRepo.Create(ctx, video)
	if err != nil {
		return nil, err
	}

	sub := &domain.Submission{
		EnrollmentID: enrollmentID,
		WeekIndex:    input.WeekIndex,
		DayIndex:     input.DayIndex,
		AssignmentID: input.AssignmentID,
		VideoID:      videoID,
		Note:         input.Note,
		CreatedAt:    time.Now(),
	}
	subID, err := s.submissions.Create(ctx, sub)
	if err != nil {
		return nil, err
	}
	sub.ID = subID
	return sub, nil
}

// GetMySubmissions lists the player's submissions for one enrollment, each
// joined with its review and a presigned download URL for the video.
func (s *playerService) GetMySubmissions(ctx context.Context, playerID, enrollmentID primitive.ObjectID) ([]SubmissionView, error) {
	if _, _, err := s.ownedEnrollment(ctx, playerID, enrollmentID); err != nil {
		return nil, err
	}

	subs, err := s.submissions.ListByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	views := make([]SubmissionView, 0, len(subs))
	for _, sub := range subs {
		view := SubmissionView{Submission: sub}

		review, err := s.reviews.GetBySubmissionID(ctx, sub.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		view.Review = review

		video, err := s.videoRepo.GetByID(ctx, sub.VideoID)
		if err == nil {
			url, urlErr := s.fileStorage.GeneratePresignedDownloadURL(ctx, video.S3ObjectKey, storage.DefaultPresignedURLExpiry)
			if urlErr == nil {
				view.DownloadURL = url
			}
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		views = append(views, view)
	}
	return views, nil
}

// === Helpers ===

// ownedEnrollment loads the enrollment and its template, verifying the
// enrollment belongs to the player.
func (s *playerService) ownedEnrollment(ctx context.Context, playerID, enrollmentID primitive.ObjectID) (*domain.ProgramEnrollment, *domain.ProgramTemplate, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrEnrollmentNotFound
		}
		return nil, nil, err
	}
	if enrollment.PlayerID != playerID {
		return nil, nil, ErrEnrollmentAccessDenied
	}

	tmpl, err := s.templateRepo.GetByID(ctx, enrollment.TemplateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrTemplateNotFound
		}
		return nil, nil, err
	}
	return enrollment, tmpl, nil
}
