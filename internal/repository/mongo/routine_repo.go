package mongo

import (
	"chronicrelief/server/internal/domain"
	"chronicrelief/server/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	routineCollectionName  = "routines"
	progressCollectionName = "progress"
)

// mongoRoutineRepository implements repository.RoutineRepository
type mongoRoutineRepository struct {
	collection *mongo.Collection
}

// NewMongoRoutineRepository creates a new routine repository backed by MongoDB.
func NewMongoRoutineRepository(db *mongo.Database) repository.RoutineRepository {
	return &mongoRoutineRepository{
		collection: db.Collection(routineCollectionName),
	}
}

// Save upserts the routine for (user, area); saving again replaces the
// exercise list.
func (r *mongoRoutineRepository) Save(ctx context.Context, routine *domain.Routine) error {
	if routine.UserID == primitive.NilObjectID || routine.Area == "" {
		return errors.New("routine user ID and area are required")
	}

	filter := bson.M{"userId": routine.UserID, "area": routine.Area}
	update := bson.M{
		"$set": bson.M{
			"exerciseIds": routine.ExerciseIDs,
			"createdAt":   time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"userId": routine.UserID,
			"area":   routine.Area,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// Get retrieves the routine saved for the given user and area.
func (r *mongoRoutineRepository) Get(ctx context.Context, userID primitive.ObjectID, area string) (*domain.Routine, error) {
	var routine domain.Routine
	filter := bson.M{"userId": userID, "area": area}

	err := r.collection.FindOne(ctx, filter).Decode(&routine)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &routine, nil
}

// mongoProgressRepository implements repository.ProgressRepository
type mongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates a new progress repository backed by MongoDB.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

// Save merge-upserts the completed-id list for (user, area).
func (r *mongoProgressRepository) Save(ctx context.Context, progress *domain.Progress) error {
	if progress.UserID == primitive.NilObjectID || progress.Area == "" {
		return errors.New("progress user ID and area are required")
	}

	filter := bson.M{"userId": progress.UserID, "area": progress.Area}
	update := bson.M{
		"$set": bson.M{
			"completed": progress.Completed,
			"updatedAt": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"userId": progress.UserID,
			"area":   progress.Area,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// Get retrieves the progress saved for the given user and area.
func (r *mongoProgressRepository) Get(ctx context.Context, userID primitive.ObjectID, area string) (*domain.Progress, error) {
	var progress domain.Progress
	filter := bson.M{"userId": userID, "area": area}

	err := r.collection.FindOne(ctx, filter).Decode(&progress)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// EnsureRoutineIndexes creates necessary indexes for the routines collection.
func EnsureRoutineIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "area", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

// EnsureProgressIndexes creates necessary indexes for the progress collection.
func EnsureProgressIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "area", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
