package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Focus is a named coaching theme (e.g. "Load and stride timing") that a
// template day or day override can point at. Referenced by id, never
// embedded, so editing a focus updates every day that uses it.
type Focus struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID     primitive.ObjectID `bson:"coachId" json:"coachId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Cues        []string           `bson:"cues,omitempty" json:"cues,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
