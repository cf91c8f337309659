package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrillCategory type for the drill library taxonomy
type DrillCategory string

const (
	CategoryHitting  DrillCategory = "hitting"
	CategoryThrowing DrillCategory = "throwing"
	CategoryFielding DrillCategory = "fielding"
	CategoryOther    DrillCategory = "other"
)

// ValidCategory reports whether c is one of the known drill categories.
func ValidCategory(c DrillCategory) bool {
	switch c {
	case CategoryHitting, CategoryThrowing, CategoryFielding, CategoryOther:
		return true
	}
	return false
}

// DrillMediaKind distinguishes demo videos hosted in our video store from
// plain external links.
type DrillMediaKind string

const (
	MediaInternalVideo DrillMediaKind = "internal-video-reference"
	MediaExternalLink  DrillMediaKind = "external-link"
)

// DrillMedia is one demo attachment on a drill, ordered by SortIndex.
type DrillMedia struct {
	Kind      DrillMediaKind `bson:"kind" json:"kind"`
	Title     string         `bson:"title,omitempty" json:"title,omitempty"`
	Target    string         `bson:"target" json:"target"` // videoId hex or external URL depending on Kind
	SortIndex int            `bson:"sortIndex" json:"sortIndex"`
}

// Drill represents a single drill definition in the coach's library.
// Assignments reference drills by id; a drill cannot be deleted while any
// assignment still points at it.
type Drill struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID        primitive.ObjectID `bson:"coachId" json:"coachId"`
	Title          string             `bson:"title" json:"title"`
	Category       DrillCategory      `bson:"category" json:"category"`
	Goal           string             `bson:"goal,omitempty" json:"goal,omitempty"`
	Equipment      []string           `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Cues           []string           `bson:"cues,omitempty" json:"cues,omitempty"`
	CommonMistakes []string           `bson:"commonMistakes,omitempty" json:"commonMistakes,omitempty"`
	Media          []DrillMedia       `bson:"media,omitempty" json:"media,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
