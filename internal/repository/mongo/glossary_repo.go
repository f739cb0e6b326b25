package mongo

import (
	"chronicrelief/server/internal/domain"
	"chronicrelief/server/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const glossaryCollectionName = "exercise_glossary"

// mongoGlossaryRepository implements repository.GlossaryRepository
type mongoGlossaryRepository struct {
	collection *mongo.Collection
}

// NewMongoGlossaryRepository creates a new glossary repository backed by MongoDB.
func NewMongoGlossaryRepository(db *mongo.Database) repository.GlossaryRepository {
	return &mongoGlossaryRepository{
		collection: db.Collection(glossaryCollectionName),
	}
}

// GetBySlug retrieves an exercise by its document id.
func (r *mongoGlossaryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Exercise, error) {
	return r.findOne(ctx, bson.M{"_id": slug})
}

// GetByName retrieves the exercise whose display name matches exactly.
func (r *mongoGlossaryRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

// GetByAlias retrieves the first exercise whose alias array contains any
// of the given values.
func (r *mongoGlossaryRepository) GetByAlias(ctx context.Context, values ...string) (*domain.Exercise, error) {
	if len(values) == 0 {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"aliases": bson.M{"$in": values}})
}

func (r *mongoGlossaryRepository) findOne(ctx context.Context, filter bson.M) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// List reads at most limit records, oldest first so the scan stage sees a
// stable window.
func (r *mongoGlossaryRepository) List(ctx context.Context, limit int) ([]domain.Exercise, error) {
	if limit <= 0 {
		limit = 500
	}
	findOptions := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.Exercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// Upsert creates the document or merges the record's non-empty fields
// into an existing one. Only $set is used, so concurrent upserts of the
// same derived record are last-write-wins per field and safe to race.
func (r *mongoGlossaryRepository) Upsert(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == "" || exercise.Name == "" {
		return errors.New("exercise id and name are required")
	}

	set := bson.M{
		"name":      exercise.Name,
		"updatedAt": time.Now().UTC(),
	}
	if len(exercise.TargetAreas) > 0 {
		set["targetAreas"] = exercise.TargetAreas
	}
	if exercise.Description != "" {
		set["description"] = exercise.Description
	}
	if len(exercise.HelpsWith) > 0 {
		set["helpsWith"] = exercise.HelpsWith
	}
	if len(exercise.MayAggravate) > 0 {
		set["mayAggravate"] = exercise.MayAggravate
	}
	if len(exercise.SafetyNotes) > 0 {
		set["safetyNotes"] = exercise.SafetyNotes
	}
	if len(exercise.Aliases) > 0 {
		set["aliases"] = exercise.Aliases
	}
	if exercise.Equipment != "" {
		set["equipment"] = exercise.Equipment
	}
	if exercise.BodyPart != "" {
		set["bodyPart"] = exercise.BodyPart
	}
	if exercise.Target != "" {
		set["target"] = exercise.Target
	}
	if len(exercise.SecondaryMuscles) > 0 {
		set["secondaryMuscles"] = exercise.SecondaryMuscles
	}
	if exercise.GifURL != "" {
		set["gifUrl"] = exercise.GifURL
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": exercise.ID}, bson.M{"$set": set}, opts)
	return err
}

// EnsureGlossaryIndexes creates necessary indexes for the glossary collection.
func EnsureGlossaryIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Exact-name lookup stage
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index(),
		},
		{
			// Alias membership stage; multikey over the array
			Keys:    bson.D{{Key: "aliases", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
