package mongo

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dugout/coaching-app/internal/domain"
	"github.com/dugout/coaching-app/internal/repository"
)

const drillCollectionName = "drills"

// mongoDrillRepository implements repository.DrillRepository
type mongoDrillRepository struct {
	collection *mongo.Collection
}

// NewMongoDrillRepository creates a new Drill repository backed by MongoDB.
func NewMongoDrillRepository(db *mongo.Database) repository.DrillRepository {
	return &mongoDrillRepository{
		collection: db.Collection(drillCollectionName),
	}
}

// Create inserts a new drill. Media is stored embedded and kept in
// sortIndex order.
func (r *mongoDrillRepository) Create(ctx context.Context, drill *domain.Drill) (primitive.ObjectID, error) {
	if drill.CoachID == primitive.NilObjectID || drill.Title == "" {
		return primitive.NilObjectID, errors.New("drill requires coachId and title")
	}

	drill.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	drill.CreatedAt = now
	drill.UpdatedAt = now
	sortMedia(drill.Media)

	result, err := r.collection.InsertOne(ctx, drill)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted drill ID")
	}
	return insertedID, nil
}

// GetByID retrieves a drill by its ID.
func (r *mongoDrillRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Drill, error) {
	var drill domain.Drill
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&drill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &drill, nil
}

// GetByCoachID retrieves all drills owned by a coach, by title.
func (r *mongoDrillRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Drill, error) {
	var drills []domain.Drill
	findOptions := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"coachId": coachID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &drills); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return drills, nil
}

// Update modifies an existing drill, replacing the media list wholesale.
func (r *mongoDrillRepository) Update(ctx context.Context, drill *domain.Drill) error {
	if drill.ID == primitive.NilObjectID {
		return errors.New("drill ID is required for update")
	}
	sortMedia(drill.Media)

	update := bson.M{"$set": bson.M{
		"title":          drill.Title,
		"category":       drill.Category,
		"goal":           drill.Goal,
		"equipment":      drill.Equipment,
		"cues":           drill.Cues,
		"commonMistakes": drill.CommonMistakes,
		"media":          drill.Media,
		"updatedAt":      time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": drill.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a drill, enforcing ownership at the DB level. The
// referential guard against in-use drills is the service layer's job.
func (r *mongoDrillRepository) Delete(ctx context.Context, id, coachID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "coachId": coachID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func sortMedia(media []domain.DrillMedia) {
	sort.SliceStable(media, func(i, j int) bool { return media[i].SortIndex < media[j].SortIndex })
}

// EnsureDrillIndexes creates necessary indexes for the drills collection.
func EnsureDrillIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "coachId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
