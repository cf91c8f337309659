package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnrollmentStatus type for enrollment lifecycle
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentPaused    EnrollmentStatus = "paused"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

// ValidEnrollmentStatus reports whether s is a known lifecycle status.
func ValidEnrollmentStatus(s EnrollmentStatus) bool {
	switch s {
	case EnrollmentActive, EnrollmentPaused, EnrollmentCompleted:
		return true
	}
	return false
}

// ProgramEnrollment binds one player to one template. StartAt anchors the
// rolling cycle: day 1 of week 1 is the start date, regardless of weekday.
// Only active enrollments participate in "today" resolution.
type ProgramEnrollment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TemplateID primitive.ObjectID `bson:"templateId" json:"templateId"`
	PlayerID   primitive.ObjectID `bson:"playerId" json:"playerId"`
	CoachID    primitive.ObjectID `bson:"coachId" json:"coachId"` // Denormalized for coach-side queries
	StartAt    time.Time          `bson:"startAt" json:"startAt"`
	Status     EnrollmentStatus   `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WeekOverride is the legacy week-granularity per-player customization.
// When present it fully replaces the template week's goals/assignments for
// that enrollment; it never merges with the day-level model.
type WeekOverride struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EnrollmentID primitive.ObjectID `bson:"enrollmentId" json:"enrollmentId"`
	WeekIndex    int                `bson:"weekIndex" json:"weekIndex"`
	Goals        []string           `bson:"goals,omitempty" json:"goals,omitempty"`
	Assignments  []string           `bson:"assignments,omitempty" json:"assignments,omitempty"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AssignmentSpec is an inline assignment inside a DayOverride. It is an
// owned value, not a reference to a TemplateDayAssignment: an override
// entry is never "the same" assignment as a template one, even when both
// point at the same drill.
type AssignmentSpec struct {
	DrillID         primitive.ObjectID `bson:"drillId" json:"drillId"`
	Sets            *int               `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps            *int               `bson:"reps,omitempty" json:"reps,omitempty"`
	DurationMinutes *int               `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	RequiresUpload  bool               `bson:"requiresUpload" json:"requiresUpload"`
	UploadPrompt    string             `bson:"uploadPrompt,omitempty" json:"uploadPrompt,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// DayOverride customizes a single (week, day) slot for one enrollment
// without touching the shared template. Once the row exists its FocusID and
// DayNote are authoritative even when empty; the assignment list only takes
// effect when non-empty, so a coach can retarget the focus of a day without
// re-entering its assignments.
type DayOverride struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	EnrollmentID primitive.ObjectID  `bson:"enrollmentId" json:"enrollmentId"`
	WeekIndex    int                 `bson:"weekIndex" json:"weekIndex"`
	DayIndex     int                 `bson:"dayIndex" json:"dayIndex"`
	FocusID      *primitive.ObjectID `bson:"focusId,omitempty" json:"focusId,omitempty"`
	DayNote      string              `bson:"dayNote,omitempty" json:"dayNote,omitempty"`
	Assignments  []AssignmentSpec    `bson:"assignments,omitempty" json:"assignments,omitempty"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
