package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dugout/coaching-app/internal/domain"
	"github.com/dugout/coaching-app/internal/repository"
)

// In-memory repository fakes. Each one keeps the same contract the mongo
// implementation honors (sentinel errors, upsert semantics, unique keys) so
// the services can be exercised without a database.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	id := primitive.NewObjectID()
	cp := *user
	cp.ID = id
	f.users[id] = &cp
	return id, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) AddPlayerIDToCoach(_ context.Context, coachID, playerID primitive.ObjectID) error {
	coach, ok := f.users[coachID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, id := range coach.PlayerIDs {
		if id == playerID {
			return nil
		}
	}
	coach.PlayerIDs = append(coach.PlayerIDs, playerID)
	return nil
}

func (f *fakeUserRepo) GetPlayersByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		if u.CoachID != nil && *u.CoachID == coachID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) SetCoachForPlayer(_ context.Context, playerID, coachID primitive.ObjectID) error {
	player, ok := f.users[playerID]
	if !ok {
		return repository.ErrNotFound
	}
	player.CoachID = &coachID
	return nil
}

type fakeTemplateRepo struct {
	templates map[primitive.ObjectID]*domain.ProgramTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: map[primitive.ObjectID]*domain.ProgramTemplate{}}
}

func (f *fakeTemplateRepo) Create(_ context.Context, tmpl *domain.ProgramTemplate) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *tmpl
	cp.ID = id
	f.templates[id] = &cp
	return id, nil
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ProgramTemplate, error) {
	t, ok := f.templates[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTemplateRepo) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.ProgramTemplate, error) {
	var out []domain.ProgramTemplate
	for _, t := range f.templates {
		if t.CoachID == coachID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTemplateRepo) Update(_ context.Context, tmpl *domain.ProgramTemplate) error {
	if _, ok := f.templates[tmpl.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *tmpl
	f.templates[tmpl.ID] = &cp
	return nil
}

func (f *fakeTemplateRepo) Delete(_ context.Context, id, coachID primitive.ObjectID) error {
	t, ok := f.templates[id]
	if !ok || t.CoachID != coachID {
		return repository.ErrNotFound
	}
	delete(f.templates, id)
	return nil
}

// weekKey identifies a week row; owner is the template or enrollment id.
type weekKey struct {
	owner primitive.ObjectID
	week  int
}

type fakeTemplateWeekRepo struct {
	weeks map[weekKey]*domain.TemplateWeek
}

func newFakeTemplateWeekRepo() *fakeTemplateWeekRepo {
	return &fakeTemplateWeekRepo{weeks: map[weekKey]*domain.TemplateWeek{}}
}

func (f *fakeTemplateWeekRepo) Upsert(_ context.Context, week *domain.TemplateWeek) error {
	cp := *week
	if cp.ID.IsZero() {
		cp.ID = primitive.NewObjectID()
	}
	f.weeks[weekKey{week.TemplateID, week.WeekIndex}] = &cp
	return nil
}

func (f *fakeTemplateWeekRepo) Get(_ context.Context, templateID primitive.ObjectID, weekIndex int) (*domain.TemplateWeek, error) {
	w, ok := f.weeks[weekKey{templateID, weekIndex}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (f *fakeTemplateWeekRepo) ListByTemplateID(_ context.Context, templateID primitive.ObjectID) ([]domain.TemplateWeek, error) {
	var out []domain.TemplateWeek
	for k, w := range f.weeks {
		if k.owner == templateID {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekIndex < out[j].WeekIndex })
	return out, nil
}

func (f *fakeTemplateWeekRepo) DeleteByTemplateID(_ context.Context, templateID primitive.ObjectID) error {
	for k := range f.weeks {
		if k.owner == templateID {
			delete(f.weeks, k)
		}
	}
	return nil
}

type dayKey struct {
	templateID primitive.ObjectID
	week, day  int
}

type fakeTemplateDayRepo struct {
	days map[dayKey]*domain.TemplateDay
}

func newFakeTemplateDayRepo() *fakeTemplateDayRepo {
	return &fakeTemplateDayRepo{days: map[dayKey]*domain.TemplateDay{}}
}

func (f *fakeTemplateDayRepo) Upsert(_ context.Context, day *domain.TemplateDay) (*domain.TemplateDay, error) {
	k := dayKey{day.TemplateID, day.WeekIndex, day.DayIndex}
	cp := *day
	if existing, ok := f.days[k]; ok {
		cp.ID = existing.ID
	} else {
		cp.ID = primitive.NewObjectID()
	}
	f.days[k] = &cp
	out := cp
	return &out, nil
}

func (f *fakeTemplateDayRepo) Get(_ context.Context, templateID primitive.ObjectID, weekIndex, dayIndex int) (*domain.TemplateDay, error) {
	d, ok := f.days[dayKey{templateID, weekIndex, dayIndex}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeTemplateDayRepo) ListByWeek(_ context.Context, templateID primitive.ObjectID, weekIndex int) ([]domain.TemplateDay, error) {
	var out []domain.TemplateDay
	for k, d := range f.days {
		if k.templateID == templateID && k.week == weekIndex {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayIndex < out[j].DayIndex })
	return out, nil
}

func (f *fakeTemplateDayRepo) ClearFocus(_ context.Context, focusID primitive.ObjectID) error {
	for _, d := range f.days {
		if d.FocusID != nil && *d.FocusID == focusID {
			d.FocusID = nil
		}
	}
	return nil
}

func (f *fakeTemplateDayRepo) DeleteByTemplateID(_ context.Context, templateID primitive.ObjectID) error {
	for k := range f.days {
		if k.templateID == templateID {
			delete(f.days, k)
		}
	}
	return nil
}

type fakeDayAssignmentRepo struct {
	assignments map[primitive.ObjectID]*domain.TemplateDayAssignment
}

func newFakeDayAssignmentRepo() *fakeDayAssignmentRepo {
	return &fakeDayAssignmentRepo{assignments: map[primitive.ObjectID]*domain.TemplateDayAssignment{}}
}

func (f *fakeDayAssignmentRepo) Create(_ context.Context, a *domain.TemplateDayAssignment) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *a
	cp.ID = id
	f.assignments[id] = &cp
	return id, nil
}

func (f *fakeDayAssignmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TemplateDayAssignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeDayAssignmentRepo) ListByDay(_ context.Context, templateID primitive.ObjectID, weekIndex, dayIndex int) ([]domain.TemplateDayAssignment, error) {
	var out []domain.TemplateDayAssignment
	for _, a := range f.assignments {
		if a.TemplateID == templateID && a.WeekIndex == weekIndex && a.DayIndex == dayIndex {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (f *fakeDayAssignmentRepo) Update(_ context.Context, a *domain.TemplateDayAssignment) error {
	if _, ok := f.assignments[a.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *a
	f.assignments[a.ID] = &cp
	return nil
}

func (f *fakeDayAssignmentRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.assignments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.assignments, id)
	return nil
}

func (f *fakeDayAssignmentRepo) CountByDrillID(_ context.Context, drillID primitive.ObjectID) (int64, error) {
	var n int64
	for _, a := range f.assignments {
		if a.DrillID == drillID {
			n++
		}
	}
	return n, nil
}

func (f *fakeDayAssignmentRepo) DeleteByTemplateID(_ context.Context, templateID primitive.ObjectID) error {
	for id, a := range f.assignments {
		if a.TemplateID == templateID {
			delete(f.assignments, id)
		}
	}
	return nil
}

type fakeFocusRepo struct {
	focuses map[primitive.ObjectID]*domain.Focus
}

func newFakeFocusRepo() *fakeFocusRepo {
	return &fakeFocusRepo{focuses: map[primitive.ObjectID]*domain.Focus{}}
}

func (f *fakeFocusRepo) Create(_ context.Context, focus *domain.Focus) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *focus
	cp.ID = id
	f.focuses[id] = &cp
	return id, nil
}

func (f *fakeFocusRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Focus, error) {
	fc, ok := f.focuses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *fc
	return &cp, nil
}

func (f *fakeFocusRepo) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.Focus, error) {
	var out []domain.Focus
	for _, fc := range f.focuses {
		if fc.CoachID == coachID {
			out = append(out, *fc)
		}
	}
	return out, nil
}

func (f *fakeFocusRepo) Update(_ context.Context, focus *domain.Focus) error {
	if _, ok := f.focuses[focus.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *focus
	f.focuses[focus.ID] = &cp
	return nil
}

func (f *fakeFocusRepo) Delete(_ context.Context, id, coachID primitive.ObjectID) error {
	fc, ok := f.focuses[id]
	if !ok || fc.CoachID != coachID {
		return repository.ErrNotFound
	}
	delete(f.focuses, id)
	return nil
}

type fakeDrillRepo struct {
	drills map[primitive.ObjectID]*domain.Drill
}

func newFakeDrillRepo() *fakeDrillRepo {
	return &fakeDrillRepo{drills: map[primitive.ObjectID]*domain.Drill{}}
}

func (f *fakeDrillRepo) Create(_ context.Context, drill *domain.Drill) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *drill
	cp.ID = id
	f.drills[id] = &cp
	return id, nil
}

func (f *fakeDrillRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Drill, error) {
	d, ok := f.drills[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDrillRepo) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.Drill, error) {
	var out []domain.Drill
	for _, d := range f.drills {
		if d.CoachID == coachID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDrillRepo) Update(_ context.Context, drill *domain.Drill) error {
	if _, ok := f.drills[drill.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *drill
	f.drills[drill.ID] = &cp
	return nil
}

func (f *fakeDrillRepo) Delete(_ context.Context, id, coachID primitive.ObjectID) error {
	d, ok := f.drills[id]
	if !ok || d.CoachID != coachID {
		return repository.ErrNotFound
	}
	delete(f.drills, id)
	return nil
}

type fakeEnrollmentRepo struct {
	enrollments map[primitive.ObjectID]*domain.ProgramEnrollment
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{enrollments: map[primitive.ObjectID]*domain.ProgramEnrollment{}}
}

func (f *fakeEnrollmentRepo) Create(_ context.Context, e *domain.ProgramEnrollment) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *e
	cp.ID = id
	f.enrollments[id] = &cp
	return id, nil
}

func (f *fakeEnrollmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ProgramEnrollment, error) {
	e, ok := f.enrollments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEnrollmentRepo) GetByPlayerID(_ context.Context, playerID primitive.ObjectID) ([]domain.ProgramEnrollment, error) {
	var out []domain.ProgramEnrollment
	for _, e := range f.enrollments {
		if e.PlayerID == playerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.ProgramEnrollment, error) {
	var out []domain.ProgramEnrollment
	for _, e := range f.enrollments {
		if e.CoachID == coachID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.EnrollmentStatus) error {
	e, ok := f.enrollments[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.Status = status
	return nil
}

type overrideKey struct {
	enrollmentID primitive.ObjectID
	week, day    int
}

type fakeWeekOverrideRepo struct {
	overrides map[weekKey]*domain.WeekOverride
}

func newFakeWeekOverrideRepo() *fakeWeekOverrideRepo {
	return &fakeWeekOverrideRepo{overrides: map[weekKey]*domain.WeekOverride{}}
}

func (f *fakeWeekOverrideRepo) Upsert(_ context.Context, ov *domain.WeekOverride) error {
	cp := *ov
	if cp.ID.IsZero() {
		cp.ID = primitive.NewObjectID()
	}
	f.overrides[weekKey{ov.EnrollmentID, ov.WeekIndex}] = &cp
	return nil
}

func (f *fakeWeekOverrideRepo) Get(_ context.Context, enrollmentID primitive.ObjectID, weekIndex int) (*domain.WeekOverride, error) {
	ov, ok := f.overrides[weekKey{enrollmentID, weekIndex}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *ov
	return &cp, nil
}

type fakeDayOverrideRepo struct {
	overrides map[overrideKey]*domain.DayOverride
}

func newFakeDayOverrideRepo() *fakeDayOverrideRepo {
	return &fakeDayOverrideRepo{overrides: map[overrideKey]*domain.DayOverride{}}
}

func (f *fakeDayOverrideRepo) Upsert(_ context.Context, ov *domain.DayOverride) (*domain.DayOverride, error) {
	k := overrideKey{ov.EnrollmentID, ov.WeekIndex, ov.DayIndex}
	cp := *ov
	if existing, ok := f.overrides[k]; ok {
		cp.ID = existing.ID
	} else {
		cp.ID = primitive.NewObjectID()
	}
	f.overrides[k] = &cp
	out := cp
	return &out, nil
}

func (f *fakeDayOverrideRepo) Get(_ context.Context, enrollmentID primitive.ObjectID, weekIndex, dayIndex int) (*domain.DayOverride, error) {
	ov, ok := f.overrides[overrideKey{enrollmentID, weekIndex, dayIndex}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *ov
	return &cp, nil
}

func (f *fakeDayOverrideRepo) Delete(_ context.Context, enrollmentID primitive.ObjectID, weekIndex, dayIndex int) error {
	k := overrideKey{enrollmentID, weekIndex, dayIndex}
	if _, ok := f.overrides[k]; !ok {
		return repository.ErrNotFound
	}
	delete(f.overrides, k)
	return nil
}

func (f *fakeDayOverrideRepo) ClearFocus(_ context.Context, focusID primitive.ObjectID) error {
	for _, ov := range f.overrides {
		if ov.FocusID != nil && *ov.FocusID == focusID {
			ov.FocusID = nil
		}
	}
	return nil
}

func (f *fakeDayOverrideRepo) CountByDrillID(_ context.Context, drillID primitive.ObjectID) (int64, error) {
	var n int64
	for _, ov := range f.overrides {
		for _, spec := range ov.Assignments {
			if spec.DrillID == drillID {
				n++
			}
		}
	}
	return n, nil
}

type completionKey struct {
	enrollmentID primitive.ObjectID
	assignmentID string
}

type fakeCompletionRepo struct {
	completions map[completionKey]*domain.AssignmentCompletion
}

func newFakeCompletionRepo() *fakeCompletionRepo {
	return &fakeCompletionRepo{completions: map[completionKey]*domain.AssignmentCompletion{}}
}

func (f *fakeCompletionRepo) Upsert(_ context.Context, enrollmentID primitive.ObjectID, assignmentID string, completedAt time.Time) (*domain.AssignmentCompletion, error) {
	k := completionKey{enrollmentID, assignmentID}
	c, ok := f.completions[k]
	if !ok {
		c = &domain.AssignmentCompletion{
			ID:           primitive.NewObjectID(),
			EnrollmentID: enrollmentID,
			AssignmentID: assignmentID,
		}
		f.completions[k] = c
	}
	c.CompletedAt = completedAt
	cp := *c
	return &cp, nil
}

func (f *fakeCompletionRepo) ListByEnrollment(_ context.Context, enrollmentID primitive.ObjectID) ([]domain.AssignmentCompletion, error) {
	var out []domain.AssignmentCompletion
	for k, c := range f.completions {
		if k.enrollmentID == enrollmentID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeSubmissionRepo struct {
	submissions map[primitive.ObjectID]*domain.Submission
	reviews     *fakeReviewRepo
}

func newFakeSubmissionRepo(reviews *fakeReviewRepo) *fakeSubmissionRepo {
	return &fakeSubmissionRepo{
		submissions: map[primitive.ObjectID]*domain.Submission{},
		reviews:     reviews,
	}
}

func (f *fakeSubmissionRepo) Create(_ context.Context, s *domain.Submission) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *s
	cp.ID = id
	f.submissions[id] = &cp
	return id, nil
}

func (f *fakeSubmissionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Submission, error) {
	s, ok := f.submissions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubmissionRepo) ListByEnrollment(_ context.Context, enrollmentID primitive.ObjectID) ([]domain.Submission, error) {
	var out []domain.Submission
	for _, s := range f.submissions {
		if s.EnrollmentID == enrollmentID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeSubmissionRepo) ListNeedingReview(_ context.Context, enrollmentIDs []primitive.ObjectID) ([]domain.Submission, error) {
	enrolled := make(map[primitive.ObjectID]bool, len(enrollmentIDs))
	for _, id := range enrollmentIDs {
		enrolled[id] = true
	}
	var out []domain.Submission
	for _, s := range f.submissions {
		if !enrolled[s.EnrollmentID] {
			continue
		}
		if _, reviewed := f.reviews.bySubmission[s.ID]; reviewed {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeReviewRepo struct {
	bySubmission map[primitive.ObjectID]*domain.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{bySubmission: map[primitive.ObjectID]*domain.Review{}}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *domain.Review) (primitive.ObjectID, error) {
	if _, ok := f.bySubmission[review.SubmissionID]; ok {
		return primitive.NilObjectID, repository.ErrConflict
	}
	id := primitive.NewObjectID()
	cp := *review
	cp.ID = id
	f.bySubmission[review.SubmissionID] = &cp
	return id, nil
}

func (f *fakeReviewRepo) GetBySubmissionID(_ context.Context, submissionID primitive.ObjectID) (*domain.Review, error) {
	r, ok := f.bySubmission[submissionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReviewRepo) ListBySubmissionIDs(_ context.Context, submissionIDs []primitive.ObjectID) ([]domain.Review, error) {
	var out []domain.Review
	for _, id := range submissionIDs {
		if r, ok := f.bySubmission[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeVideoRepo struct {
	videos map[primitive.ObjectID]*domain.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: map[primitive.ObjectID]*domain.Video{}}
}

func (f *fakeVideoRepo) Create(_ context.Context, video *domain.Video) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *video
	cp.ID = id
	f.videos[id] = &cp
	return id, nil
}

func (f *fakeVideoRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

// fakeFileStorage returns deterministic URLs without talking to S3.
type fakeFileStorage struct{}

func (fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/upload/%s", objectKey), nil
}

func (fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/download/%s", objectKey), nil
}

func (fakeFileStorage) DeleteObject(_ context.Context, _ string) error { return nil }
