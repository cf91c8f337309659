package schedule

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dugout/coaching-app/internal/domain"
)

func TestBuildWeekPlanDayLevelWinsOverLegacy(t *testing.T) {
	tw := &domain.TemplateWeek{Goals: []string{"old goal"}}
	wo := &domain.WeekOverride{Goals: []string{"override goal"}}
	days := []domain.TemplateDay{
		{ID: primitive.NewObjectID(), DayIndex: 1},
		{ID: primitive.NewObjectID(), DayIndex: 3},
	}

	plan := BuildWeekPlan(tw, wo, days)

	require.Equal(t, WeekPlanDayLevel, plan.Kind)
	require.Len(t, plan.Days, 2)
	require.Contains(t, plan.Days, 1)
	require.Contains(t, plan.Days, 3)
	// Legacy data is never merged into a day-level week.
	require.Empty(t, plan.Goals)
	require.Empty(t, plan.Assignments)
}

func TestBuildWeekPlanLegacyOverrideReplacesWholeWeek(t *testing.T) {
	tw := &domain.TemplateWeek{
		Goals:       []string{"swing volume"},
		Assignments: []string{"50 tee swings daily"},
	}
	wo := &domain.WeekOverride{Goals: []string{"recovery"}}

	plan := BuildWeekPlan(tw, wo, nil)

	require.Equal(t, WeekPlanLegacy, plan.Kind)
	require.True(t, plan.Overridden)
	require.Equal(t, []string{"recovery"}, plan.Goals)
	// Full replacement: the template's assignments do not leak through.
	require.Empty(t, plan.Assignments)
}

func TestBuildWeekPlanLegacyTemplateWeek(t *testing.T) {
	tw := &domain.TemplateWeek{
		Goals:       []string{"arm care"},
		Assignments: []string{"band work"},
	}

	plan := BuildWeekPlan(tw, nil, nil)

	require.Equal(t, WeekPlanLegacy, plan.Kind)
	require.False(t, plan.Overridden)
	require.Equal(t, tw.Goals, plan.Goals)
	require.Equal(t, tw.Assignments, plan.Assignments)
}

func TestBuildWeekPlanEmptyWeek(t *testing.T) {
	plan := BuildWeekPlan(nil, nil, nil)
	require.Equal(t, WeekPlanLegacy, plan.Kind)
	require.Empty(t, plan.Goals)
	require.Empty(t, plan.Days)
}
