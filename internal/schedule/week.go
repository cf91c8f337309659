package schedule

import "github.com/dugout/coaching-app/internal/domain"

// WeekPlanKind tags the two template-week representations. A week runs on
// day-level data or on legacy week-level data, decided by whether any
// TemplateDay rows exist for it; the representations never merge.
type WeekPlanKind string

const (
	WeekPlanLegacy   WeekPlanKind = "legacy"
	WeekPlanDayLevel WeekPlanKind = "day-level"
)

// WeekPlan is the tagged variant over the dual representation, resolved
// once per (template, week) so call sites never re-infer the mode from row
// presence.
type WeekPlan struct {
	Kind WeekPlanKind `json:"kind"`

	// Legacy fields: goals and free-text assignments for the whole week.
	// A WeekOverride, when present, fully replaces the template week here.
	Goals       []string `json:"goals,omitempty"`
	Assignments []string `json:"assignments,omitempty"`
	Overridden  bool     `json:"overridden,omitempty"`

	// Day-level field: the day skeletons for this week, keyed by dayIndex.
	Days map[int]domain.TemplateDay `json:"days,omitempty"`
}

// BuildWeekPlan resolves one template week into its variant. Any
// TemplateDay row for the week selects the day-level representation and the
// legacy inputs are ignored. Otherwise the legacy path applies, with the
// enrollment's WeekOverride (if any) replacing the template week wholesale.
func BuildWeekPlan(tw *domain.TemplateWeek, wo *domain.WeekOverride, days []domain.TemplateDay) WeekPlan {
	if len(days) > 0 {
		byDay := make(map[int]domain.TemplateDay, len(days))
		for _, d := range days {
			byDay[d.DayIndex] = d
		}
		return WeekPlan{Kind: WeekPlanDayLevel, Days: byDay}
	}

	plan := WeekPlan{Kind: WeekPlanLegacy}
	if wo != nil {
		plan.Goals = wo.Goals
		plan.Assignments = wo.Assignments
		plan.Overridden = true
		return plan
	}
	if tw != nil {
		plan.Goals = tw.Goals
		plan.Assignments = tw.Assignments
	}
	return plan
}
