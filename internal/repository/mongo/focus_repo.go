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

const focusCollectionName = "focuses"

// mongoFocusRepository implements repository.FocusRepository
type mongoFocusRepository struct {
	collection *mongo.Collection
}

// NewMongoFocusRepository creates a new Focus repository backed by MongoDB.
func NewMongoFocusRepository(db *mongo.Database) repository.FocusRepository {
	return &mongoFocusRepository{
		collection: db.Collection(focusCollectionName),
	}
}

// Create inserts a new focus.
func (r *mongoFocusRepository) Create(ctx context.Context, focus *domain.Focus) (primitive.ObjectID, error) {
	if focus.CoachID == primitive.NilObjectID || focus.Name == "" {
		return primitive.NilObjectID, errors.New("focus requires coachId and name")
	}

	focus.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	focus.CreatedAt = now
	focus.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, focus)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted focus ID")
	}
	return insertedID, nil
}

// GetByID retrieves a focus by its ID.
func (r *mongoFocusRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Focus, error) {
	var focus domain.Focus
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&focus)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &focus, nil
}

// GetByCoachID retrieves all focuses owned by a coach, by name.
func (r *mongoFocusRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Focus, error) {
	var focuses []domain.Focus
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"coachId": coachID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &focuses); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return focuses, nil
}

// Update modifies an existing focus.
func (r *mongoFocusRepository) Update(ctx context.Context, focus *domain.Focus) error {
	if focus.ID == primitive.NilObjectID {
		return errors.New("focus ID is required for update")
	}

	update := bson.M{"$set": bson.M{
		"name":        focus.Name,
		"description": focus.Description,
		"cues":        focus.Cues,
		"updatedAt":   time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": focus.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a focus, enforcing ownership at the DB level. Reference
// cleanup on days/overrides is the service layer's job.
func (r *mongoFocusRepository) Delete(ctx context.Context, id, coachID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "coachId": coachID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureFocusIndexes creates necessary indexes for the focuses collection.
func EnsureFocusIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "coachId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
