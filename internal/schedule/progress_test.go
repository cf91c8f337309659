package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dugout/coaching-app/internal/domain"
)

func TestDeriveStateNotStarted(t *testing.T) {
	require.Equal(t, StateNotStarted, DeriveState(nil, nil, nil))
}

func TestDeriveStateDone(t *testing.T) {
	c := &domain.AssignmentCompletion{CompletedAt: time.Now()}
	require.Equal(t, StateDone, DeriveState(c, nil, nil))
}

func TestDeriveStateSubmissionBeatsCompletion(t *testing.T) {
	c := &domain.AssignmentCompletion{CompletedAt: time.Now()}
	subs := []domain.Submission{{ID: primitive.NewObjectID(), CreatedAt: time.Now()}}
	require.Equal(t, StateSubmittedUnreviewed, DeriveState(c, subs, nil))
}

func TestDeriveStateReviewedLatestSubmission(t *testing.T) {
	now := time.Now()
	first := domain.Submission{ID: primitive.NewObjectID(), CreatedAt: now.Add(-time.Hour)}
	second := domain.Submission{ID: primitive.NewObjectID(), CreatedAt: now}
	reviewed := map[primitive.ObjectID]bool{second.ID: true}

	require.Equal(t, StateSubmittedReviewed, DeriveState(nil, []domain.Submission{first, second}, reviewed))
}

func TestDeriveStateResubmissionReopensReview(t *testing.T) {
	now := time.Now()
	reviewedSub := domain.Submission{ID: primitive.NewObjectID(), CreatedAt: now.Add(-time.Hour)}
	resubmit := domain.Submission{ID: primitive.NewObjectID(), CreatedAt: now}
	reviewed := map[primitive.ObjectID]bool{reviewedSub.ID: true}

	// The latest submission governs: an unreviewed resubmission after a
	// review means the coach still owes a look.
	require.Equal(t, StateSubmittedUnreviewed, DeriveState(nil, []domain.Submission{resubmit, reviewedSub}, reviewed))
}
