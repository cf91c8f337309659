package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentCompletion records a player's "done" mark against one resolved
// assignment. AssignmentID is a string because override assignments have no
// independent identity: it is either a TemplateDayAssignment id hex or a
// synthetic id scoped to the DayOverride's list. At most one row exists per
// (enrollmentId, assignmentId); re-marking refreshes CompletedAt.
type AssignmentCompletion struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EnrollmentID primitive.ObjectID `bson:"enrollmentId" json:"enrollmentId"`
	AssignmentID string             `bson:"assignmentId" json:"assignmentId"`
	CompletedAt  time.Time          `bson:"completedAt" json:"completedAt"`
}

// Submission is a player's video-evidence upload tied to a week and,
// optionally, a specific day and assignment. Players may resubmit, so many
// submissions can exist per assignment. VideoID is opaque to the engine;
// resolving it to a playable asset is the video subsystem's contract.
type Submission struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EnrollmentID primitive.ObjectID `bson:"enrollmentId" json:"enrollmentId"`
	WeekIndex    int                `bson:"weekIndex" json:"weekIndex"`
	DayIndex     *int               `bson:"dayIndex,omitempty" json:"dayIndex,omitempty"`
	AssignmentID string             `bson:"assignmentId,omitempty" json:"assignmentId,omitempty"`
	VideoID      primitive.ObjectID `bson:"videoId" json:"videoId"`
	Note         string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Review is a coach's terminal evaluation of one submission. Append-once:
// the unique index on submissionId is the enforcement mechanism, and no
// un-review operation exists. "Needs review" is always derived from the
// absence of a Review row, never stored.
type Review struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SubmissionID primitive.ObjectID `bson:"submissionId" json:"submissionId"`
	ReviewedAt   time.Time          `bson:"reviewedAt" json:"reviewedAt"`
	ReviewNote   string             `bson:"reviewNote,omitempty" json:"reviewNote,omitempty"`
}
