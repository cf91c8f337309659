package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dugout/coaching-app/internal/domain"
)

// testEnv wires every service against the in-memory fakes.
type testEnv struct {
	users         *fakeUserRepo
	templates     *fakeTemplateRepo
	weeks         *fakeTemplateWeekRepo
	days          *fakeTemplateDayRepo
	dayAssigns    *fakeDayAssignmentRepo
	focuses       *fakeFocusRepo
	drills        *fakeDrillRepo
	enrollments   *fakeEnrollmentRepo
	weekOverrides *fakeWeekOverrideRepo
	dayOverrides  *fakeDayOverrideRepo
	completions   *fakeCompletionRepo
	reviews       *fakeReviewRepo
	submissions   *fakeSubmissionRepo
	videos        *fakeVideoRepo

	templateSvc TemplateService
	coachSvc    CoachService
	playerSvc   PlayerService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:         newFakeUserRepo(),
		templates:     newFakeTemplateRepo(),
		weeks:         newFakeTemplateWeekRepo(),
		days:          newFakeTemplateDayRepo(),
		dayAssigns:    newFakeDayAssignmentRepo(),
		focuses:       newFakeFocusRepo(),
		drills:        newFakeDrillRepo(),
		enrollments:   newFakeEnrollmentRepo(),
		weekOverrides: newFakeWeekOverrideRepo(),
		dayOverrides:  newFakeDayOverrideRepo(),
		completions:   newFakeCompletionRepo(),
		reviews:       newFakeReviewRepo(),
		videos:        newFakeVideoRepo(),
	}
	env.submissions = newFakeSubmissionRepo(env.reviews)

	resolver := NewPlanResolver(
		env.days, env.dayAssigns, env.dayOverrides,
		env.completions, env.submissions, env.reviews,
		env.focuses, env.drills,
	)

	env.templateSvc = NewTemplateService(
		env.templates, env.weeks, env.days, env.dayAssigns,
		env.focuses, env.drills, env.dayOverrides,
	)
	env.coachSvc = NewCoachService(env.users, env.templates, env.enrollments, env.weekOverrides, resolver)
	env.playerSvc = NewPlayerService(
		env.templates, env.enrollments, env.weeks, env.weekOverrides,
		env.videos, fakeFileStorage{}, resolver,
	)
	return env
}

func intPtr(v int) *int { return &v }

// testStart is an arbitrary fixed enrollment anchor.
func testStart() time.Time {
	return time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
}

func (e *testEnv) seedCoach(t *testing.T, email string) primitive.ObjectID {
	t.Helper()
	id, err := e.users.Create(context.Background(), &domain.User{
		Name:  "Coach",
		Email: email,
		Role:  domain.RoleCoach,
	})
	require.NoError(t, err)
	return id
}

func (e *testEnv) seedPlayer(t *testing.T, email string, coachID primitive.ObjectID) primitive.ObjectID {
	t.Helper()
	player := &domain.User{
		Name:  "Player",
		Email: email,
		Role:  domain.RolePlayer,
	}
	if coachID != primitive.NilObjectID {
		player.CoachID = &coachID
	}
	id, err := e.users.Create(context.Background(), player)
	require.NoError(t, err)
	if coachID != primitive.NilObjectID {
		require.NoError(t, e.users.AddPlayerIDToCoach(context.Background(), coachID, id))
	}
	return id
}

func (e *testEnv) seedTemplate(t *testing.T, coachID primitive.ObjectID, weeksCount, cycleDays int) *domain.ProgramTemplate {
	t.Helper()
	tmpl, err := e.templateSvc.CreateTemplate(context.Background(), coachID, primitive.NilObjectID, "In-Season Hitting", weeksCount, cycleDays)
	require.NoError(t, err)
	return tmpl
}

func (e *testEnv) seedDrill(t *testing.T, coachID primitive.ObjectID, title string) *domain.Drill {
	t.Helper()
	drill, err := e.templateSvc.CreateDrill(context.Background(), coachID, domain.Drill{
		Title:    title,
		Category: domain.CategoryHitting,
	})
	require.NoError(t, err)
	return drill
}

func (e *testEnv) seedEnrollment(t *testing.T, coachID, templateID, playerID primitive.ObjectID, startAt time.Time) *domain.ProgramEnrollment {
	t.Helper()
	enrollment, err := e.coachSvc.EnrollPlayer(context.Background(), coachID, templateID, playerID, startAt)
	require.NoError(t, err)
	return enrollment
}
