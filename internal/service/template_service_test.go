package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dugout/coaching-app/internal/domain"
	"github.com/dugout/coaching-app/internal/schedule"
)

func TestCreateTemplate_RejectsInvalidConfig(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	coachID := env.seedCoach(t, "coach@example.com")

	_, err := env.templateSvc.CreateTemplate(ctx, coachID, primitive.NilObjectID, "Bad", 0, 7)
	require.ErrorIs(t, err, domain.ErrInvalidTemplateConfig)

	_, err = env.templateSvc.CreateTemplate(ctx, coachID, primitive.NilObjectID, "Bad", 4, -1)
	require.ErrorIs(t, err, domain.ErrInvalidTemplateConfig)
}

func TestCreateTemplate_DefaultsCycleDays(t *testing.T) {
	env := newTestEnv()
	coachID := env.seedCoach(t, "coach@example.com")

	tmpl, err := env.templateSvc.CreateTemplate(context.Background(), coachID, primitive.NilObjectID, "Winter Throwing", 6, 0)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultCycleDays, tmpl.CycleDays)
	require.Equal(t, 6, tmpl.WeeksCount)
}

func TestUpdateTemplate_OwnershipAndValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	coachID := env.seedCoach(t, "coach@example.com")
	otherID := env.seedCoach(t, "other@example.com")
	tmpl := env.seedTemplate(t, coachID, 4, 7)

	_, err := env.templateSvc.UpdateTemplate(ctx, otherID, tmpl.ID, "Stolen", 0, 0)
	require.ErrorIs(t, err, ErrTemplateAccessDenied)

	_, err = env.templateSvc.UpdateTemplate(ctx, coachID, tmpl.ID, "", -2, 0)
	require.ErrorIs(t, err, domain.ErrInvalidTemplateConfig)

	updated, err := env.templateSvc.UpdateTemplate(ctx, coachID, tmpl.ID, "Renamed", 8, 0)
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)
	require.Equal(t, 8, updated.WeeksCount)
}

func TestUpsertTemplateWeek_Bounds(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	coachID := env.seedCoach(t, "coach@example.com")
	tmpl := env.seedTemplate(t, coachID, 4, 7)

	err := env.templateSvc.UpsertTemplateWeek(ctx, coachID, tmpl.ID, 5, []string{"goal"}, nil)
	require.ErrorIs(t, err, schedule.ErrOutOfRange)

	err = env.templateSvc.UpsertTemplateWeek(ctx, coachID, tmpl.ID, 0, []string{"goal"}, nil)
	require.ErrorIs(t, err, schedule.ErrOutOfRange)

	require.NoError(t, env.templateSvc.UpsertTemplateWeek(ctx, coachID, tmpl.ID, 4, []string{"goal"}, []string{"front toss"}))
}

func TestSetTemplateDay_BoundsAndFocusOwnership(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	coachID := env.seedCoach(t, "coach@example.com")
	otherID := env.seedCoach(t, "other@example.com")
	tmpl := env.seedTemplate(t, coachID, 4, 7)

	_, err := env.templateSvc.SetTemplateDay(ctx, coachID, tmpl.ID, 4, 8, nil, "rest")
	require.ErrorIs(t, err, schedule.ErrOutOfRange)

	foreign, err := env.templateSvc.CreateFocus(ctx, otherID, "Load timing", "", nil)
	require.NoError(t, err)
	_, err = env.templateSvc.SetTemplateDay(ctx, coachID, tmpl.ID, 1, 1, &foreign.ID, "")
	require.ErrorIs(t, err, ErrFocusAccessDenied)

	focus, err := env.templateSvc.CreateFocus(ctx, coachID, "Bat path", "", []string{"knob to ball"})
	require.NoError(t, err)
	day, err := env.templateSvc.SetTemplateDay(ctx, coachID, tmpl.ID, 1, 1, &focus.ID, "tee work day")
	require.NoError(t, err)
	require.False(t, day.ID.IsZero())
	require.Equal(t, focus.ID, *day.FocusID)
}

func TestAddDayAssignment_CreatesDayRow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	coachID := env.seedCoach(t, "coach@example.com")
	tmpl := env.seedTemplate(t, coachID, 4, 7)
	drill := env.seedDrill(t, coachID, "Tee work")

	// No SetTemplateDay call first: the day row is created implicitly.
	a, err := env.templateSvc.AddDayAssignment(ctx, coachID, tmpl.ID, 2, 3, AssignmentInput{
		DrillID:   drill.ID,
		Sets:      intPtr(3),
		Reps:      intPtr(10),
		SortOrder: 1,
	})
	require.NoError(t, err)
	require.False(t, a.DayID.IsZero())

	day, err := env.days.Get(ctx, tmpl.ID, 2, 3)
	require.NoError(t, err)
	require.Equal(t, day.ID, a.DayID)
}

func TestAddDayAssignment_UnknownDrill(t *testing.T) {
	env := newTestEnv()
	coachID := env.seedCoach(t, "coach@example.com")
	tmpl := env.seedTemplate(t, coachID, 4, 7)

	_, err := env.templateSvc.AddDayAssignment(context.Background(), coachID, tmpl.ID, 1, 1, AssignmentInput{
		DrillID: primitive.NewObjectID(),
	})
	require.ErrorIs(t, err, ErrDrillNotFound)
}

func TestGetWeekPlan_DayLevelWinsOverLegacy(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	coachID := env.seedCoach(t, "coach@example.com")
	tmpl := env.seedTemplate(t, coachID, 4, 7)

	require.NoError(t, env.templateSvc.UpsertTemplateWeek(ctx, coachID, tmpl.ID, 1, []string{"legacy goal"}, []string{"legacy work"}))

	plan, err := env.templateSvc.GetWeekPlan(ctx, tmpl.ID, 1)
	require.NoError(t, err)
	require.Equal(t, schedule.WeekPlanLegacy, plan.Kind)
	require.Equal(t, []string{"legacy goal"}, plan.Goals)

	// Adding a single day row flips the whole week to the day-level variant.
	_, err = env.templateSvc.SetTemplateDay(ctx, coachID, tmpl.ID, 1, 2, nil, "bullpen")
	require.NoError(t, err)

	plan, err = env.templateSvc.GetWeekPlan(ctx, tmpl.ID, 1)
	require.NoError(t, err)
	require.Equal(t, schedule.WeekPlanDayLevel, plan.Kind)
	require.Empty(t, plan.Goals)
	require.Contains(t, plan.Days, 2)
}

func TestDeleteFocus_ClearsReferences(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	coachID := env.seedCoach(t, "coach@example.com")
	tmpl := env.seedTemplate(t, coachID, 4, 7)
	player := env.seedPlayer(t, "player@example.com", coachID)
	enrollment := env.seedEnrollment(t, coachID, tmpl.ID, player, testStart())

	focus, err := env.templateSvc.CreateFocus(ctx, coachID, "Glove side", "", nil)
	require.NoError(t, err)

	_, err = env.templateSvc.SetTemplateDay(ctx, coachID, tmpl.ID, 1, 1, &focus.ID, "")
	require.NoError(t, err)
	_, err = env.coachSvc.UpsertDayOverride(ctx, coachID, enrollment.ID, 1, 2, &focus.ID, "", nil)
	require.NoError(t, err)

	require.NoError(t, env.templateSvc.DeleteFocus(ctx, coachID, focus.ID))

	day, err := env.days.Get(ctx, tmpl.ID, 1, 1)
	require.NoError(t, err)
	require.Nil(t, day.FocusID)

	ov, err := env.dayOverrides.Get(ctx, enrollment.ID, 1, 2)
	require.NoError(t, err)
	require.Nil(t, ov.FocusID)
}

func TestDeleteDrill_RejectedWhileReferenced(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	coachID := env.seedCoach(t, "coach@example.com")
	tmpl := env.seedTemplate(t, coachID, 4, 7)
	drill := env.seedDrill(t, coachID, "Long toss")

	a, err := env.templateSvc.AddDayAssignment(ctx, coachID, tmpl.ID, 1, 1, AssignmentInput{DrillID: drill.ID})
	require.NoError(t, err)

	err = env.templateSvc.DeleteDrill(ctx, coachID, drill.ID)
	require.ErrorIs(t, err, ErrDrillInUse)

	require.NoError(t, env.templateSvc.DeleteDayAssignment(ctx, coachID, a.ID))
	require.NoError(t, env.templateSvc.DeleteDrill(ctx, coachID, drill.ID))
}

func TestDeleteDrill_RejectedWhileReferencedByOverride(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	coachID := env.seedCoach(t, "coach@example.com")
	tmpl := env.seedTemplate(t, coachID, 4, 7)
	player := env.seedPlayer(t, "player@example.com", coachID)
	enrollment := env.seedEnrollment(t, coachID, tmpl.ID, player, testStart())
	drill := env.seedDrill(t, coachID, "Band pulls")

	_, err := env.coachSvc.UpsertDayOverride(ctx, coachID, enrollment.ID, 1, 1, nil, "", []domain.AssignmentSpec{
		{DrillID: drill.ID, Sets: intPtr(2)},
	})
	require.NoError(t, err)

	err = env.templateSvc.DeleteDrill(ctx, coachID, drill.ID)
	require.ErrorIs(t, err, ErrDrillInUse)
}

func TestDeleteTemplate_RemovesDependentRows(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	coachID := env.seedCoach(t, "coach@example.com")
	tmpl := env.seedTemplate(t, coachID, 4, 7)
	drill := env.seedDrill(t, coachID, "Fielding triangle")

	require.NoError(t, env.templateSvc.UpsertTemplateWeek(ctx, coachID, tmpl.ID, 1, []string{"goal"}, nil))
	_, err := env.templateSvc.AddDayAssignment(ctx, coachID, tmpl.ID, 2, 1, AssignmentInput{DrillID: drill.ID})
	require.NoError(t, err)

	require.NoError(t, env.templateSvc.DeleteTemplate(ctx, coachID, tmpl.ID))

	_, err = env.templateSvc.GetTemplate(ctx, tmpl.ID)
	require.ErrorIs(t, err, ErrTemplateNotFound)
	n, err := env.dayAssigns.CountByDrillID(ctx, drill.ID)
	require.NoError(t, err)
	require.Zero(t, n)
}
