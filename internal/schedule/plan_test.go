package schedule

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dugout/coaching-app/internal/domain"
)

func intPtr(v int) *int { return &v }

func templateDayFixture() (*domain.TemplateDay, []domain.TemplateDayAssignment) {
	focusID := primitive.NewObjectID()
	day := &domain.TemplateDay{
		ID:      primitive.NewObjectID(),
		FocusID: &focusID,
		Note:    "tee work before live reads",
	}
	assignments := []domain.TemplateDayAssignment{
		{
			ID:        primitive.NewObjectID(),
			DrillID:   primitive.NewObjectID(),
			Sets:      intPtr(3),
			Reps:      intPtr(10),
			SortOrder: 2,
		},
		{
			ID:             primitive.NewObjectID(),
			DrillID:        primitive.NewObjectID(),
			RequiresUpload: true,
			UploadPrompt:   "film from the open side",
			SortOrder:      1,
		},
	}
	return day, assignments
}

func TestMergeDayPlanTemplateOnly(t *testing.T) {
	day, assignments := templateDayFixture()

	plan := MergeDayPlan(day, assignments, nil)

	require.False(t, plan.Overridden)
	require.Equal(t, day.FocusID, plan.FocusID)
	require.Equal(t, day.Note, plan.Note)
	require.Len(t, plan.Assignments, 2)
	// Ordered by SortOrder, not input order.
	require.Equal(t, assignments[1].ID.Hex(), plan.Assignments[0].AssignmentID)
	require.Equal(t, assignments[0].ID.Hex(), plan.Assignments[1].AssignmentID)
	require.True(t, plan.Assignments[0].RequiresUpload)
	require.False(t, plan.Assignments[0].FromOverride)
}

func TestMergeDayPlanOverridePrecedence(t *testing.T) {
	day, assignments := templateDayFixture()
	ovFocus := primitive.NewObjectID()
	ov := &domain.DayOverride{
		ID:      primitive.NewObjectID(),
		FocusID: &ovFocus,
		DayNote: "lighter day, sore elbow",
		Assignments: []domain.AssignmentSpec{
			{DrillID: primitive.NewObjectID(), DurationMinutes: intPtr(15)},
			{DrillID: primitive.NewObjectID(), RequiresUpload: true},
		},
	}

	plan := MergeDayPlan(day, assignments, ov)

	require.True(t, plan.Overridden)
	require.Equal(t, &ovFocus, plan.FocusID)
	require.Equal(t, "lighter day, sore elbow", plan.Note)
	// Override assignments fully replace the template's, never a mix.
	require.Len(t, plan.Assignments, 2)
	for i, ra := range plan.Assignments {
		require.Equal(t, OverrideAssignmentID(ov.ID, i), ra.AssignmentID)
		require.Equal(t, ov.Assignments[i].DrillID, ra.DrillID)
		require.True(t, ra.FromOverride)
	}
}

func TestMergeDayPlanEmptyOverrideAssignmentsFallBack(t *testing.T) {
	day, assignments := templateDayFixture()
	ov := &domain.DayOverride{
		ID:      primitive.NewObjectID(),
		DayNote: "same drills, new focus",
	}

	plan := MergeDayPlan(day, assignments, ov)

	require.True(t, plan.Overridden)
	// Template assignments survive an assignment-less override...
	require.Len(t, plan.Assignments, 2)
	require.False(t, plan.Assignments[0].FromOverride)
	// ...but the override's focus/note are authoritative even when unset.
	require.Nil(t, plan.FocusID)
	require.Equal(t, "same drills, new focus", plan.Note)
}

func TestMergeDayPlanRestDay(t *testing.T) {
	plan := MergeDayPlan(nil, nil, nil)
	require.False(t, plan.Overridden)
	require.Nil(t, plan.FocusID)
	require.Empty(t, plan.Note)
	require.NotNil(t, plan.Assignments)
	require.Empty(t, plan.Assignments)
}

func TestMergeDayPlanOverrideWithoutTemplateDay(t *testing.T) {
	ov := &domain.DayOverride{
		ID:          primitive.NewObjectID(),
		Assignments: []domain.AssignmentSpec{{DrillID: primitive.NewObjectID()}},
	}
	plan := MergeDayPlan(nil, nil, ov)
	require.True(t, plan.Overridden)
	require.Len(t, plan.Assignments, 1)
	require.Equal(t, OverrideAssignmentID(ov.ID, 0), plan.Assignments[0].AssignmentID)
}

func TestOverrideAssignmentIDStable(t *testing.T) {
	id := primitive.NewObjectID()
	require.Equal(t, OverrideAssignmentID(id, 3), OverrideAssignmentID(id, 3))
	require.NotEqual(t, OverrideAssignmentID(id, 0), OverrideAssignmentID(id, 1))
}
