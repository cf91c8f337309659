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
	completionCollectionName = "completions"
	submissionCollectionName = "submissions"
	reviewCollectionName     = "reviews"
)

// mongoCompletionRepository implements repository.CompletionRepository
type mongoCompletionRepository struct {
	collection *mongo.Collection
}

// NewMongoCompletionRepository creates a new AssignmentCompletion repository backed by MongoDB.
func NewMongoCompletionRepository(db *mongo.Database) repository.CompletionRepository {
	return &mongoCompletionRepository{
		collection: db.Collection(completionCollectionName),
	}
}

// Upsert records a "done" mark. The unique (enrollmentId, assignmentId)
// index guarantees at most one row; re-marking refreshes completedAt.
func (r *mongoCompletionRepository) Upsert(ctx context.Context, enrollmentID primitive.ObjectID, assignmentID string, completedAt time.Time) (*domain.AssignmentCompletion, error) {
	if enrollmentID == primitive.NilObjectID || assignmentID == "" {
		return nil, errors.New("completion requires enrollmentId and assignmentId")
	}

	filter := bson.M{"enrollmentId": enrollmentID, "assignmentId": assignmentID}
	update := bson.M{
		"$set": bson.M{"completedAt": completedAt.UTC()},
		"$setOnInsert": bson.M{
			"enrollmentId": enrollmentID,
			"assignmentId": assignmentID,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var c domain.AssignmentCompletion
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByEnrollment retrieves every completion of one enrollment.
func (r *mongoCompletionRepository) ListByEnrollment(ctx context.Context, enrollmentID primitive.ObjectID) ([]domain.AssignmentCompletion, error) {
	var completions []domain.AssignmentCompletion

	cursor, err := r.collection.Find(ctx, bson.M{"enrollmentId": enrollmentID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &completions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return completions, nil
}

// EnsureCompletionIndexes creates necessary indexes for the completions collection.
func EnsureCompletionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "enrollmentId", Value: 1}, {Key: "assignmentId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

// mongoSubmissionRepository implements repository.SubmissionRepository
type mongoSubmissionRepository struct {
	collection *mongo.Collection
}

// NewMongoSubmissionRepository creates a new Submission repository backed by MongoDB.
func NewMongoSubmissionRepository(db *mongo.Database) repository.SubmissionRepository {
	return &mongoSubmissionRepository{
		collection: db.Collection(submissionCollectionName),
	}
}

// Create inserts a new submission. Resubmission is always permitted, so
// there is no uniqueness to enforce here.
func (r *mongoSubmissionRepository) Create(ctx context.Context, s *domain.Submission) (primitive.ObjectID, error) {
	if s.EnrollmentID == primitive.NilObjectID || s.VideoID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("submission requires enrollmentId and videoId")
	}
	if s.WeekIndex < 1 {
		return primitive.NilObjectID, errors.New("submission requires a positive weekIndex")
	}

	s.ID = primitive.NewObjectID()
	s.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, s)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted submission ID")
	}
	return insertedID, nil
}

// GetByID retrieves a submission by its ID.
func (r *mongoSubmissionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Submission, error) {
	var s domain.Submission
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByEnrollment retrieves every submission of one enrollment, newest first.
func (r *mongoSubmissionRepository) ListByEnrollment(ctx context.Context, enrollmentID primitive.ObjectID) ([]domain.Submission, error) {
	var submissions []domain.Submission
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"enrollmentId": enrollmentID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return submissions, nil
}

// ListNeedingReview returns submissions with no review row for the given
// enrollments, newest first. Always recomputed from the reviews collection,
// never stored as a flag.
func (r *mongoSubmissionRepository) ListNeedingReview(ctx context.Context, enrollmentIDs []primitive.ObjectID) ([]domain.Submission, error) {
	if len(enrollmentIDs) == 0 {
		return []domain.Submission{}, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"enrollmentId": bson.M{"$in": enrollmentIDs}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         reviewCollectionName,
			"localField":   "_id",
			"foreignField": "submissionId",
			"as":           "reviews",
		}}},
		{{Key: "$match", Value: bson.M{"reviews": bson.M{"$size": 0}}}},
		{{Key: "$project", Value: bson.M{"reviews": 0}}},
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var submissions []domain.Submission
	if err = cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return submissions, nil
}

// EnsureSubmissionIndexes creates necessary indexes for the submissions collection.
func EnsureSubmissionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "enrollmentId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "enrollmentId", Value: 1}, {Key: "assignmentId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

// mongoReviewRepository implements repository.ReviewRepository
type mongoReviewRepository struct {
	collection *mongo.Collection
}

// NewMongoReviewRepository creates a new Review repository backed by MongoDB.
func NewMongoReviewRepository(db *mongo.Database) repository.ReviewRepository {
	return &mongoReviewRepository{
		collection: db.Collection(reviewCollectionName),
	}
}

// Create inserts a review. The unique index on submissionId is the
// append-once enforcement: a second review surfaces ErrConflict and leaves
// the original untouched.
func (r *mongoReviewRepository) Create(ctx context.Context, review *domain.Review) (primitive.ObjectID, error) {
	if review.SubmissionID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("review requires submissionId")
	}

	review.ID = primitive.NewObjectID()
	review.ReviewedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted review ID")
	}
	return insertedID, nil
}

// GetBySubmissionID retrieves the review of one submission, if any.
func (r *mongoReviewRepository) GetBySubmissionID(ctx context.Context, submissionID primitive.ObjectID) (*domain.Review, error) {
	var review domain.Review
	err := r.collection.FindOne(ctx, bson.M{"submissionId": submissionID}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// ListBySubmissionIDs retrieves the reviews of the given submissions.
func (r *mongoReviewRepository) ListBySubmissionIDs(ctx context.Context, submissionIDs []primitive.ObjectID) ([]domain.Review, error) {
	if len(submissionIDs) == 0 {
		return []domain.Review{}, nil
	}

	var reviews []domain.Review
	cursor, err := r.collection.Find(ctx, bson.M{"submissionId": bson.M{"$in": submissionIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// EnsureReviewIndexes creates necessary indexes for the reviews collection.
func EnsureReviewIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Append-once: one review per submission, enforced here.
			Keys:    bson.D{{Key: "submissionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
