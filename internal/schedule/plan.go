package schedule

import (
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dugout/coaching-app/internal/domain"
)

// ResolvedAssignment is one entry of an effective day plan. AssignmentID is
// stable across reads: the TemplateDayAssignment id for template days, or an
// index-derived id scoped to the DayOverride for overridden days (inline
// override assignments have no identity of their own).
type ResolvedAssignment struct {
	AssignmentID    string             `json:"assignmentId"`
	DrillID         primitive.ObjectID `json:"drillId"`
	Sets            *int               `json:"sets,omitempty"`
	Reps            *int               `json:"reps,omitempty"`
	DurationMinutes *int               `json:"durationMinutes,omitempty"`
	RequiresUpload  bool               `json:"requiresUpload"`
	UploadPrompt    string             `json:"uploadPrompt,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	FromOverride    bool               `json:"fromOverride"`
}

// DayPlan is the effective plan for one (enrollment, week, day) after
// override resolution.
type DayPlan struct {
	FocusID     *primitive.ObjectID  `json:"focusId,omitempty"`
	Note        string               `json:"note,omitempty"`
	Assignments []ResolvedAssignment `json:"assignments"`
	Overridden  bool                 `json:"overridden"`
}

// OverrideAssignmentID derives the synthetic id for the i-th assignment of
// a day override.
func OverrideAssignmentID(overrideID primitive.ObjectID, index int) string {
	return fmt.Sprintf("ovr:%s:%d", overrideID.Hex(), index)
}

// MergeDayPlan applies the override-resolution precedence to one day:
//
//  1. When a DayOverride exists its FocusID and DayNote are authoritative,
//     including when unset: the override record fully replaces those
//     fields, so a nil override focus means "no focus", not "fall through".
//  2. The override's assignment list replaces the template day's only when
//     non-empty. An empty list means "no override for assignments
//     specifically", preserving focus/note customization without forcing
//     assignment re-entry.
//  3. With no override the template day applies wholly. A day with neither
//     row is a rest day, not an error.
//
// Template assignments are ordered by SortOrder, override assignments by
// list position. The result never mixes the two lists.
func MergeDayPlan(day *domain.TemplateDay, dayAssignments []domain.TemplateDayAssignment, ov *domain.DayOverride) DayPlan {
	plan := DayPlan{Assignments: []ResolvedAssignment{}}

	if day != nil {
		plan.FocusID = day.FocusID
		plan.Note = day.Note
	}

	if ov != nil {
		plan.Overridden = true
		plan.FocusID = ov.FocusID
		plan.Note = ov.DayNote

		if len(ov.Assignments) > 0 {
			for i, spec := range ov.Assignments {
				plan.Assignments = append(plan.Assignments, ResolvedAssignment{
					AssignmentID:    OverrideAssignmentID(ov.ID, i),
					DrillID:         spec.DrillID,
					Sets:            spec.Sets,
					Reps:            spec.Reps,
					DurationMinutes: spec.DurationMinutes,
					RequiresUpload:  spec.RequiresUpload,
					UploadPrompt:    spec.UploadPrompt,
					Notes:           spec.Notes,
					FromOverride:    true,
				})
			}
			return plan
		}
	}

	ordered := make([]domain.TemplateDayAssignment, len(dayAssignments))
	copy(ordered, dayAssignments)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].SortOrder < ordered[j].SortOrder })

	for _, a := range ordered {
		plan.Assignments = append(plan.Assignments, ResolvedAssignment{
			AssignmentID:    a.ID.Hex(),
			DrillID:         a.DrillID,
			Sets:            a.Sets,
			Reps:            a.Reps,
			DurationMinutes: a.DurationMinutes,
			RequiresUpload:  a.RequiresUpload,
			UploadPrompt:    a.UploadPrompt,
			Notes:           a.NotesToPlayer,
			FromOverride:    false,
		})
	}
	return plan
}
