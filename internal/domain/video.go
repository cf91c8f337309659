package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video stores metadata about a file uploaded by a player. The actual file
// resides in S3; everything outside the video subsystem holds only the id.
type Video struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EnrollmentID primitive.ObjectID `bson:"enrollmentId" json:"enrollmentId"`
	PlayerID     primitive.ObjectID `bson:"playerId" json:"playerId"`
	CoachID      primitive.ObjectID `bson:"coachId" json:"coachId"` // Denormalized for coach-side queries
	S3ObjectKey  string             `bson:"s3ObjectKey" json:"-"`   // Bucket key - internal use only
	FileName     string             `bson:"fileName" json:"fileName"`
	ContentType  string             `bson:"contentType" json:"contentType"`
	Size         int64              `bson:"size" json:"size"`
	UploadedAt   time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
