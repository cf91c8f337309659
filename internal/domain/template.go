package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCycleDays is used when a template does not specify its own cycle length.
const DefaultCycleDays = 7

// ErrInvalidTemplateConfig is returned when a template's weeksCount or
// cycleDays would make cycle resolution impossible. Callers must reject the
// write; the resolver assumes validated inputs.
var ErrInvalidTemplateConfig = errors.New("template weeksCount and cycleDays must be positive")

// ProgramTemplate is a coach-authored, team-owned program definition shared
// across every enrolled player. Day 1 of week 1 always lands on an
// enrollment's start date, so the template itself carries no calendar data.
type ProgramTemplate struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID    primitive.ObjectID `bson:"coachId" json:"coachId"`
	TeamID     primitive.ObjectID `bson:"teamId,omitempty" json:"teamId,omitempty"`
	Title      string             `bson:"title" json:"title"`
	WeeksCount int                `bson:"weeksCount" json:"weeksCount"`
	CycleDays  int                `bson:"cycleDays" json:"cycleDays"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate enforces the configuration invariants at write time.
func (t *ProgramTemplate) Validate() error {
	if t.WeeksCount <= 0 || t.CycleDays <= 0 {
		return ErrInvalidTemplateConfig
	}
	return nil
}

// TemplateWeek is the legacy week-granularity representation: free-text goals
// and assignments for a whole week. It pre-dates the day-level model and is
// superseded whenever TemplateDay rows exist for the same week.
type TemplateWeek struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TemplateID  primitive.ObjectID `bson:"templateId" json:"templateId"`
	WeekIndex   int                `bson:"weekIndex" json:"weekIndex"`
	Goals       []string           `bson:"goals,omitempty" json:"goals,omitempty"`
	Assignments []string           `bson:"assignments,omitempty" json:"assignments,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TemplateDay holds the day-level plan skeleton for one (week, day) slot.
// Focus is referenced, never embedded.
type TemplateDay struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TemplateID primitive.ObjectID  `bson:"templateId" json:"templateId"`
	WeekIndex  int                 `bson:"weekIndex" json:"weekIndex"`
	DayIndex   int                 `bson:"dayIndex" json:"dayIndex"`
	FocusID    *primitive.ObjectID `bson:"focusId,omitempty" json:"focusId,omitempty"`
	Note       string              `bson:"note,omitempty" json:"note,omitempty"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// TemplateDayAssignment is one drill prescription within a TemplateDay.
// TemplateID/WeekIndex/DayIndex are denormalized for keyed lookups.
type TemplateDayAssignment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DayID           primitive.ObjectID `bson:"dayId" json:"dayId"`
	TemplateID      primitive.ObjectID `bson:"templateId" json:"templateId"`
	WeekIndex       int                `bson:"weekIndex" json:"weekIndex"`
	DayIndex        int                `bson:"dayIndex" json:"dayIndex"`
	DrillID         primitive.ObjectID `bson:"drillId" json:"drillId"`
	Sets            *int               `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps            *int               `bson:"reps,omitempty" json:"reps,omitempty"`
	DurationMinutes *int               `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	RequiresUpload  bool               `bson:"requiresUpload" json:"requiresUpload"`
	UploadPrompt    string             `bson:"uploadPrompt,omitempty" json:"uploadPrompt,omitempty"`
	NotesToPlayer   string             `bson:"notesToPlayer,omitempty" json:"notesToPlayer,omitempty"`
	SortOrder       int                `bson:"sortOrder" json:"sortOrder"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
