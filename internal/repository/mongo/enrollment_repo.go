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

const enrollmentCollectionName = "enrollments"

// mongoEnrollmentRepository implements repository.EnrollmentRepository
type mongoEnrollmentRepository struct {
	collection *mongo.Collection
}

// NewMongoEnrollmentRepository creates a new ProgramEnrollment repository backed by MongoDB.
func NewMongoEnrollmentRepository(db *mongo.Database) repository.EnrollmentRepository {
	return &mongoEnrollmentRepository{
		collection: db.Collection(enrollmentCollectionName),
	}
}

// Create inserts a new enrollment.
func (r *mongoEnrollmentRepository) Create(ctx context.Context, e *domain.ProgramEnrollment) (primitive.ObjectID, error) {
	if e.TemplateID == primitive.NilObjectID || e.PlayerID == primitive.NilObjectID || e.CoachID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("enrollment requires templateId, playerId and coachId")
	}
	if e.StartAt.IsZero() {
		return primitive.NilObjectID, errors.New("enrollment requires startAt")
	}

	e.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.Status == "" {
		e.Status = domain.EnrollmentActive
	}

	result, err := r.collection.InsertOne(ctx, e)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted enrollment ID")
	}
	return insertedID, nil
}

// GetByID retrieves an enrollment by its ID.
func (r *mongoEnrollmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramEnrollment, error) {
	var e domain.ProgramEnrollment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// GetByPlayerID retrieves all enrollments of a player, newest first.
func (r *mongoEnrollmentRepository) GetByPlayerID(ctx context.Context, playerID primitive.ObjectID) ([]domain.ProgramEnrollment, error) {
	return r.find(ctx, bson.M{"playerId": playerID})
}

// GetByCoachID retrieves all enrollments managed by a coach, newest first.
func (r *mongoEnrollmentRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.ProgramEnrollment, error) {
	return r.find(ctx, bson.M{"coachId": coachID})
}

func (r *mongoEnrollmentRepository) find(ctx context.Context, filter bson.M) ([]domain.ProgramEnrollment, error) {
	var enrollments []domain.ProgramEnrollment
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &enrollments); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return enrollments, nil
}

// UpdateStatus moves an enrollment through its lifecycle (active/paused/completed).
func (r *mongoEnrollmentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.EnrollmentStatus) error {
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureEnrollmentIndexes creates necessary indexes for the enrollments collection.
func EnsureEnrollmentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "playerId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "coachId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "templateId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
