package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dugout/coaching-app/internal/domain"
	"github.com/dugout/coaching-app/internal/repository"
)

const (
	weekOverrideCollectionName = "week_overrides"
	dayOverrideCollectionName  = "day_overrides"
)

// mongoWeekOverrideRepository implements repository.WeekOverrideRepository
// for the legacy week-level overrides.
type mongoWeekOverrideRepository struct {
	collection *mongo.Collection
}

// NewMongoWeekOverrideRepository creates a new WeekOverride repository backed by MongoDB.
func NewMongoWeekOverrideRepository(db *mongo.Database) repository.WeekOverrideRepository {
	return &mongoWeekOverrideRepository{
		collection: db.Collection(weekOverrideCollectionName),
	}
}

// Upsert writes the override keyed by (enrollmentId, weekIndex). Last write wins.
func (r *mongoWeekOverrideRepository) Upsert(ctx context.Context, ov *domain.WeekOverride) error {
	if ov.EnrollmentID == primitive.NilObjectID || ov.WeekIndex < 1 {
		return errors.New("week override requires enrollmentId and a positive weekIndex")
	}

	filter := bson.M{"enrollmentId": ov.EnrollmentID, "weekIndex": ov.WeekIndex}
	update := bson.M{
		"$set": bson.M{
			"goals":       ov.Goals,
			"assignments": ov.Assignments,
			"updatedAt":   time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"enrollmentId": ov.EnrollmentID,
			"weekIndex":    ov.WeekIndex,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// Get retrieves one week override.
func (r *mongoWeekOverrideRepository) Get(ctx context.Context, enrollmentID primitive.ObjectID, weekIndex int) (*domain.WeekOverride, error) {
	var ov domain.WeekOverride
	filter := bson.M{"enrollmentId": enrollmentID, "weekIndex": weekIndex}

	err := r.collection.FindOne(ctx, filter).Decode(&ov)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &ov, nil
}

// EnsureWeekOverrideIndexes creates necessary indexes for the week_overrides collection.
func EnsureWeekOverrideIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "enrollmentId", Value: 1}, {Key: "weekIndex", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

// mongoDayOverrideRepository implements repository.DayOverrideRepository
type mongoDayOverrideRepository struct {
	collection *mongo.Collection
}

// NewMongoDayOverrideRepository creates a new DayOverride repository backed by MongoDB.
func NewMongoDayOverrideRepository(db *mongo.Database) repository.DayOverrideRepository {
	return &mongoDayOverrideRepository{
		collection: db.Collection(dayOverrideCollectionName),
	}
}

// Upsert writes the override keyed by (enrollmentId, weekIndex, dayIndex)
// and returns the stored document, whose ObjectID seeds the synthetic
// assignment ids. FocusID and dayNote are written even when empty: once an
// override row exists those fields are authoritative.
func (r *mongoDayOverrideRepository) Upsert(ctx context.Context, ov *domain.DayOverride) (*domain.DayOverride, error) {
	if ov.EnrollmentID == primitive.NilObjectID || ov.WeekIndex < 1 || ov.DayIndex < 1 {
		return nil, errors.New("day override requires enrollmentId and positive week/day indexes")
	}

	filter := bson.M{
		"enrollmentId": ov.EnrollmentID,
		"weekIndex":    ov.WeekIndex,
		"dayIndex":     ov.DayIndex,
	}
	update := bson.M{
		"$set": bson.M{
			"focusId":     ov.FocusID,
			"dayNote":     ov.DayNote,
			"assignments": ov.Assignments,
			"updatedAt":   time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"enrollmentId": ov.EnrollmentID,
			"weekIndex":    ov.WeekIndex,
			"dayIndex":     ov.DayIndex,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var stored domain.DayOverride
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// Get retrieves one day override by its compound key.
func (r *mongoDayOverrideRepository) Get(ctx context.Context, enrollmentID primitive.ObjectID, weekIndex, dayIndex int) (*domain.DayOverride, error) {
	var ov domain.DayOverride
	filter := bson.M{"enrollmentId": enrollmentID, "weekIndex": weekIndex, "dayIndex": dayIndex}

	err := r.collection.FindOne(ctx, filter).Decode(&ov)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &ov, nil
}

// Delete removes a day override, restoring the template's plan for that day.
func (r *mongoDayOverrideRepository) Delete(ctx context.Context, enrollmentID primitive.ObjectID, weekIndex, dayIndex int) error {
	filter := bson.M{"enrollmentId": enrollmentID, "weekIndex": weekIndex, "dayIndex": dayIndex}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ClearFocus nulls the focusId on every override referencing the deleted focus.
func (r *mongoDayOverrideRepository) ClearFocus(ctx context.Context, focusID primitive.ObjectID) error {
	update := bson.M{
		"$unset": bson.M{"focusId": ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	}
	_, err := r.collection.UpdateMany(ctx, bson.M{"focusId": focusID}, update)
	return err
}

// CountByDrillID reports how many override assignment entries reference a
// drill. Used by the drill-deletion referential guard.
func (r *mongoDayOverrideRepository) CountByDrillID(ctx context.Context, drillID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"assignments.drillId": drillID})
}

// EnsureDayOverrideIndexes creates necessary indexes for the day_overrides collection.
func EnsureDayOverrideIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "enrollmentId", Value: 1},
				{Key: "weekIndex", Value: 1},
				{Key: "dayIndex", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "focusId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "assignments.drillId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
