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

const dayAssignmentCollectionName = "template_day_assignments"

// mongoDayAssignmentRepository implements repository.DayAssignmentRepository
type mongoDayAssignmentRepository struct {
	collection *mongo.Collection
}

// NewMongoDayAssignmentRepository creates a new TemplateDayAssignment repository backed by MongoDB.
func NewMongoDayAssignmentRepository(db *mongo.Database) repository.DayAssignmentRepository {
	return &mongoDayAssignmentRepository{
		collection: db.Collection(dayAssignmentCollectionName),
	}
}

// Create inserts a new day assignment.
func (r *mongoDayAssignmentRepository) Create(ctx context.Context, a *domain.TemplateDayAssignment) (primitive.ObjectID, error) {
	if a.DayID == primitive.NilObjectID || a.DrillID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("day assignment requires dayId and drillId")
	}

	a.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, a)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted assignment ID")
	}
	return insertedID, nil
}

// GetByID retrieves a day assignment by its ID.
func (r *mongoDayAssignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TemplateDayAssignment, error) {
	var a domain.TemplateDayAssignment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListByDay retrieves all assignments of one template day, ordered by sortOrder.
func (r *mongoDayAssignmentRepository) ListByDay(ctx context.Context, templateID primitive.ObjectID, weekIndex, dayIndex int) ([]domain.TemplateDayAssignment, error) {
	var assignments []domain.TemplateDayAssignment
	filter := bson.M{"templateId": templateID, "weekIndex": weekIndex, "dayIndex": dayIndex}
	findOptions := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

// Update modifies an existing day assignment's prescription fields.
func (r *mongoDayAssignmentRepository) Update(ctx context.Context, a *domain.TemplateDayAssignment) error {
	if a.ID == primitive.NilObjectID {
		return errors.New("assignment ID is required for update")
	}

	update := bson.M{"$set": bson.M{
		"drillId":         a.DrillID,
		"sets":            a.Sets,
		"reps":            a.Reps,
		"durationMinutes": a.DurationMinutes,
		"requiresUpload":  a.RequiresUpload,
		"uploadPrompt":    a.UploadPrompt,
		"notesToPlayer":   a.NotesToPlayer,
		"sortOrder":       a.SortOrder,
		"updatedAt":       time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": a.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes one day assignment.
func (r *mongoDayAssignmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountByDrillID reports how many template assignments reference a drill.
// Used by the drill-deletion referential guard.
func (r *mongoDayAssignmentRepository) CountByDrillID(ctx context.Context, drillID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"drillId": drillID})
}

// DeleteByTemplateID removes every assignment of a template (template deletion cleanup).
func (r *mongoDayAssignmentRepository) DeleteByTemplateID(ctx context.Context, templateID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"templateId": templateID})
	return err
}

// EnsureDayAssignmentIndexes creates necessary indexes for the template_day_assignments collection.
func EnsureDayAssignmentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Keyed day lookup in sort order.
			Keys: bson.D{
				{Key: "templateId", Value: 1},
				{Key: "weekIndex", Value: 1},
				{Key: "dayIndex", Value: 1},
				{Key: "sortOrder", Value: 1},
			},
			Options: options.Index(),
		},
		{
			// Drill deletion guard walks this.
			Keys:    bson.D{{Key: "drillId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "dayId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
