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

const historyCollectionName = "history"

// mongoHistoryRepository implements repository.HistoryRepository
type mongoHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoHistoryRepository creates a new history repository backed by MongoDB.
func NewMongoHistoryRepository(db *mongo.Database) repository.HistoryRepository {
	return &mongoHistoryRepository{
		collection: db.Collection(historyCollectionName),
	}
}

// Append inserts a completed-routine entry. The log is append-only except
// for the whole-account wipe in DeleteAllForUser.
func (r *mongoHistoryRepository) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	if entry.ID == "" || entry.UserID == primitive.NilObjectID || entry.Area == "" {
		return errors.New("history entry id, user ID, and area are required")
	}
	if entry.CompletedAt.IsZero() {
		entry.CompletedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// ListByUser returns the user's history, newest first.
func (r *mongoHistoryRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.HistoryEntry, error) {
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.HistoryEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CountByUser returns how many routines the user has completed.
func (r *mongoHistoryRepository) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID})
}

// DeleteAllForUser wipes the user's history. Used by the reset-app-data flow.
func (r *mongoHistoryRepository) DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

// EnsureHistoryIndexes creates necessary indexes for the history collection.
func EnsureHistoryIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "completedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
