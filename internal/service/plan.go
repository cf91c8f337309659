package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dugout/coaching-app/internal/domain"
	"github.com/dugout/coaching-app/internal/repository"
	"github.com/dugout/coaching-app/internal/schedule"
)

// PlannedAssignment is one resolved assignment enriched with the drill it
// prescribes and the player's progress state for it.
type PlannedAssignment struct {
	schedule.ResolvedAssignment
	Drill *domain.Drill          `json:"drill,omitempty"`
	State schedule.ProgressState `json:"state"`
}

// DayView is the fully resolved view of one enrollment day: the position in
// the cycle, the merged plan for that slot, and per-assignment progress.
type DayView struct {
	EnrollmentID primitive.ObjectID  `json:"enrollmentId"`
	Position     schedule.Position   `json:"position"`
	FocusID      *primitive.ObjectID `json:"focusId,omitempty"`
	Focus        *domain.Focus       `json:"focus,omitempty"`
	Note         string              `json:"note,omitempty"`
	Overridden   bool                `json:"overridden"`
	Assignments  []PlannedAssignment `json:"assignments"`
}

// planResolver bundles the repositories needed to turn an enrollment plus a
// cycle position into a DayView. Both coach and player services embed it.
type planResolver struct {
	dayRepo      repository.TemplateDayRepository
	dayAssigns   repository.DayAssignmentRepository
	overrideRepo repository.DayOverrideRepository
	completions  repository.CompletionRepository
	submissions  repository.SubmissionRepository
	reviews      repository.ReviewRepository
	focusRepo    repository.FocusRepository
	drillRepo    repository.DrillRepository
}

// dayView resolves the layered plan for one (enrollment, position) slot and
// annotates every assignment with the player's progress state.
func (r *planResolver) dayView(ctx context.Context, enrollment *domain.ProgramEnrollment, pos schedule.Position) (*DayView, error) {
	day, err := r.dayRepo.Get(ctx, enrollment.TemplateID, pos.Week, pos.Day)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	var dayAssignments []domain.TemplateDayAssignment
	if day != nil {
		dayAssignments, err = r.dayAssigns.ListByDay(ctx, enrollment.TemplateID, pos.Week, pos.Day)
		if err != nil {
			return nil, err
		}
	}

	override, err := r.overrideRepo.Get(ctx, enrollment.ID, pos.Week, pos.Day)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	plan := schedule.MergeDayPlan(day, dayAssignments, override)

	states, err := r.progressStates(ctx, enrollment.ID, plan.Assignments)
	if err != nil {
		return nil, err
	}

	view := &DayView{
		EnrollmentID: enrollment.ID,
		Position:     pos,
		FocusID:      plan.FocusID,
		Note:         plan.Note,
		Overridden:   plan.Overridden,
		Assignments:  make([]PlannedAssignment, 0, len(plan.Assignments)),
	}

	if plan.FocusID != nil {
		focus, err := r.focusRepo.GetByID(ctx, *plan.FocusID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		view.Focus = focus
	}

	for _, a := range plan.Assignments {
		pa := PlannedAssignment{ResolvedAssignment: a, State: states[a.AssignmentID]}
		drill, err := r.drillRepo.GetByID(ctx, a.DrillID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		pa.Drill = drill
		view.Assignments = append(view.Assignments, pa)
	}
	return view, nil
}

// progressStates derives the state of every listed assignment from the
// enrollment's completions, submissions, and reviews. Loaded once per
// enrollment, then grouped in memory.
func (r *planResolver) progressStates(ctx context.Context, enrollmentID primitive.ObjectID, assignments []schedule.ResolvedAssignment) (map[string]schedule.ProgressState, error) {
	states := make(map[string]schedule.ProgressState, len(assignments))
	if len(assignments) == 0 {
		return states, nil
	}

	completed, err := r.completions.ListByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	completionByAssignment := make(map[string]*domain.AssignmentCompletion, len(completed))
	for i := range completed {
		completionByAssignment[completed[i].AssignmentID] = &completed[i]
	}

	subs, err := r.submissions.ListByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	subsByAssignment := make(map[string][]domain.Submission)
	subIDs := make([]primitive.ObjectID, 0, len(subs))
	for _, sub := range subs {
		subsByAssignment[sub.AssignmentID] = append(subsByAssignment[sub.AssignmentID], sub)
		subIDs = append(subIDs, sub.ID)
	}

	reviewed := make(map[primitive.ObjectID]bool)
	if len(subIDs) > 0 {
		reviews, err := r.reviews.ListBySubmissionIDs(ctx, subIDs)
		if err != nil {
			return nil, err
		}
		for _, rev := range reviews {
			reviewed[rev.SubmissionID] = true
		}
	}

	for _, a := range assignments {
		states[a.AssignmentID] = schedule.DeriveState(
			completionByAssignment[a.AssignmentID],
			subsByAssignment[a.AssignmentID],
			reviewed,
		)
	}
	return states, nil
}
