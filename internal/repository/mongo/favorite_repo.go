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

const favoriteCollectionName = "favorites"

// mongoFavoriteRepository implements repository.FavoriteRepository
type mongoFavoriteRepository struct {
	collection *mongo.Collection
}

// NewMongoFavoriteRepository creates a new favorites repository backed by MongoDB.
func NewMongoFavoriteRepository(db *mongo.Database) repository.FavoriteRepository {
	return &mongoFavoriteRepository{
		collection: db.Collection(favoriteCollectionName),
	}
}

// Set upserts the favorite keyed by (user, exercise slug).
func (r *mongoFavoriteRepository) Set(ctx context.Context, fav *domain.Favorite) error {
	if fav.UserID == primitive.NilObjectID || fav.ExerciseID == "" {
		return errors.New("favorite user ID and exercise ID are required")
	}

	filter := bson.M{"userId": fav.UserID, "exerciseId": fav.ExerciseID}
	update := bson.M{
		"$set": bson.M{
			"name":      fav.Name,
			"bodyPart":  fav.BodyPart,
			"target":    fav.Target,
			"equipment": fav.Equipment,
			"gifUrl":    fav.GifURL,
			"savedAt":   time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"userId":     fav.UserID,
			"exerciseId": fav.ExerciseID,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// Delete removes a favorite by exercise id.
func (r *mongoFavoriteRepository) Delete(ctx context.Context, userID primitive.ObjectID, exerciseID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "exerciseId": exerciseID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Exists reports whether the exercise is favorited.
func (r *mongoFavoriteRepository) Exists(ctx context.Context, userID primitive.ObjectID, exerciseID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"userId": userID, "exerciseId": exerciseID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByUser returns the user's favorites, most recently saved first.
func (r *mongoFavoriteRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Favorite, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "savedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var favorites []domain.Favorite
	if err = cursor.All(ctx, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// DeleteAllForUser wipes the user's favorites. Used by the reset-app-data flow.
func (r *mongoFavoriteRepository) DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

// EnsureFavoriteIndexes creates necessary indexes for the favorites collection.
func EnsureFavoriteIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "exerciseId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
