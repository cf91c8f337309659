package schedule

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dugout/coaching-app/internal/domain"
)

// ProgressState type for the per-assignment workflow state
type ProgressState string

const (
	StateNotStarted          ProgressState = "notStarted"
	StateDone                ProgressState = "done"
	StateSubmittedUnreviewed ProgressState = "submitted-unreviewed"
	StateSubmittedReviewed   ProgressState = "submitted-reviewed"
)

// DeriveState computes the workflow state for one resolved assignment from
// its completion row, its submissions and the set of reviewed submission
// ids. Completion and submission are parallel tracks, not one status field:
// submission state takes precedence whenever any submission exists, so a
// "done" mark on an upload-required assignment stops showing once the
// player actually submits.
//
// The latest submission governs the review side: a resubmission after a
// review puts the assignment back into submitted-unreviewed.
func DeriveState(completion *domain.AssignmentCompletion, submissions []domain.Submission, reviewed map[primitive.ObjectID]bool) ProgressState {
	if len(submissions) > 0 {
		latest := submissions[0]
		for _, s := range submissions[1:] {
			if s.CreatedAt.After(latest.CreatedAt) {
				latest = s
			}
		}
		if reviewed[latest.ID] {
			return StateSubmittedReviewed
		}
		return StateSubmittedUnreviewed
	}
	if completion != nil {
		return StateDone
	}
	return StateNotStarted
}
