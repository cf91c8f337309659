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

const templateWeekCollectionName = "template_weeks"

// mongoTemplateWeekRepository implements repository.TemplateWeekRepository
// for the legacy week-granularity rows.
type mongoTemplateWeekRepository struct {
	collection *mongo.Collection
}

// NewMongoTemplateWeekRepository creates a new TemplateWeek repository backed by MongoDB.
func NewMongoTemplateWeekRepository(db *mongo.Database) repository.TemplateWeekRepository {
	return &mongoTemplateWeekRepository{
		collection: db.Collection(templateWeekCollectionName),
	}
}

// Upsert writes the week row keyed by (templateId, weekIndex). Last write wins.
func (r *mongoTemplateWeekRepository) Upsert(ctx context.Context, week *domain.TemplateWeek) error {
	if week.TemplateID == primitive.NilObjectID || week.WeekIndex < 1 {
		return errors.New("template week requires templateId and a positive weekIndex")
	}

	filter := bson.M{"templateId": week.TemplateID, "weekIndex": week.WeekIndex}
	update := bson.M{
		"$set": bson.M{
			"goals":       week.Goals,
			"assignments": week.Assignments,
			"updatedAt":   time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"templateId": week.TemplateID,
			"weekIndex":  week.WeekIndex,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// Get retrieves one legacy week row.
func (r *mongoTemplateWeekRepository) Get(ctx context.Context, templateID primitive.ObjectID, weekIndex int) (*domain.TemplateWeek, error) {
	var week domain.TemplateWeek
	filter := bson.M{"templateId": templateID, "weekIndex": weekIndex}

	err := r.collection.FindOne(ctx, filter).Decode(&week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &week, nil
}

// ListByTemplateID retrieves all legacy weeks of a template, in week order.
func (r *mongoTemplateWeekRepository) ListByTemplateID(ctx context.Context, templateID primitive.ObjectID) ([]domain.TemplateWeek, error) {
	var weeks []domain.TemplateWeek
	findOptions := options.Find().SetSort(bson.D{{Key: "weekIndex", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"templateId": templateID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &weeks); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return weeks, nil
}

// DeleteByTemplateID removes every week row of a template (template deletion cleanup).
func (r *mongoTemplateWeekRepository) DeleteByTemplateID(ctx context.Context, templateID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"templateId": templateID})
	return err
}

// EnsureTemplateWeekIndexes creates necessary indexes for the template_weeks collection.
func EnsureTemplateWeekIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// (templateId, weekIndex) is the natural key of a week row.
			Keys:    bson.D{{Key: "templateId", Value: 1}, {Key: "weekIndex", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
