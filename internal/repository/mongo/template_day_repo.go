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

const templateDayCollectionName = "template_days"

// mongoTemplateDayRepository implements repository.TemplateDayRepository
type mongoTemplateDayRepository struct {
	collection *mongo.Collection
}

// NewMongoTemplateDayRepository creates a new TemplateDay repository backed by MongoDB.
func NewMongoTemplateDayRepository(db *mongo.Database) repository.TemplateDayRepository {
	return &mongoTemplateDayRepository{
		collection: db.Collection(templateDayCollectionName),
	}
}

// Upsert writes the day row keyed by (templateId, weekIndex, dayIndex) and
// returns the stored document. FocusID is written even when nil so an edit
// can clear it.
func (r *mongoTemplateDayRepository) Upsert(ctx context.Context, day *domain.TemplateDay) (*domain.TemplateDay, error) {
	if day.TemplateID == primitive.NilObjectID || day.WeekIndex < 1 || day.DayIndex < 1 {
		return nil, errors.New("template day requires templateId and positive week/day indexes")
	}

	filter := bson.M{
		"templateId": day.TemplateID,
		"weekIndex":  day.WeekIndex,
		"dayIndex":   day.DayIndex,
	}
	update := bson.M{
		"$set": bson.M{
			"focusId":   day.FocusID,
			"note":      day.Note,
			"updatedAt": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"templateId": day.TemplateID,
			"weekIndex":  day.WeekIndex,
			"dayIndex":   day.DayIndex,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var stored domain.TemplateDay
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// Get retrieves one day row by its compound key.
func (r *mongoTemplateDayRepository) Get(ctx context.Context, templateID primitive.ObjectID, weekIndex, dayIndex int) (*domain.TemplateDay, error) {
	var day domain.TemplateDay
	filter := bson.M{"templateId": templateID, "weekIndex": weekIndex, "dayIndex": dayIndex}

	err := r.collection.FindOne(ctx, filter).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// ListByWeek retrieves all day rows of one template week, in day order.
func (r *mongoTemplateDayRepository) ListByWeek(ctx context.Context, templateID primitive.ObjectID, weekIndex int) ([]domain.TemplateDay, error) {
	var days []domain.TemplateDay
	filter := bson.M{"templateId": templateID, "weekIndex": weekIndex}
	findOptions := options.Find().SetSort(bson.D{{Key: "dayIndex", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return days, nil
}

// ClearFocus nulls the focusId on every day referencing the deleted focus.
func (r *mongoTemplateDayRepository) ClearFocus(ctx context.Context, focusID primitive.ObjectID) error {
	update := bson.M{
		"$unset": bson.M{"focusId": ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	}
	_, err := r.collection.UpdateMany(ctx, bson.M{"focusId": focusID}, update)
	return err
}

// DeleteByTemplateID removes every day row of a template (template deletion cleanup).
func (r *mongoTemplateDayRepository) DeleteByTemplateID(ctx context.Context, templateID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"templateId": templateID})
	return err
}

// EnsureTemplateDayIndexes creates necessary indexes for the template_days collection.
func EnsureTemplateDayIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "templateId", Value: 1},
				{Key: "weekIndex", Value: 1},
				{Key: "dayIndex", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			// Focus deletion walks this.
			Keys:    bson.D{{Key: "focusId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
