package repository

import (
	"chronicrelief/server/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// GlossaryRepository is the exercise_glossary collection: documents keyed
// by slug, merge-upserted, never deleted. Each Get method is one stage of
// the resolver cascade.
type GlossaryRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Exercise, error)
	// GetByName matches the stored display name exactly.
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	// GetByAlias returns the first record whose alias list contains any of
	// the given values.
	GetByAlias(ctx context.Context, values ...string) (*domain.Exercise, error)
	// List reads at most limit records for the batch-scan stage.
	List(ctx context.Context, limit int) ([]domain.Exercise, error)
	// Upsert creates the document or merges its non-empty fields into an
	// existing one. Fields are never deleted.
	Upsert(ctx context.Context, exercise *domain.Exercise) error
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	SetSelectedArea(ctx context.Context, id primitive.ObjectID, area string) error
	// IncrementRoutinesCompleted bumps the lifetime counter and stamps
	// lastCompletedAt. Called when a history entry is appended.
	IncrementRoutinesCompleted(ctx context.Context, id primitive.ObjectID) error
	ResetRoutinesCompleted(ctx context.Context, id primitive.ObjectID) error
}

// RoutineRepository stores one 5-exercise routine per (user, area).
type RoutineRepository interface {
	Save(ctx context.Context, routine *domain.Routine) error
	Get(ctx context.Context, userID primitive.ObjectID, area string) (*domain.Routine, error)
}

// ProgressRepository stores the completed-id list per (user, area).
type ProgressRepository interface {
	Save(ctx context.Context, progress *domain.Progress) error
	Get(ctx context.Context, userID primitive.ObjectID, area string) (*domain.Progress, error)
}

// HistoryRepository is the append-only completed-routine log.
type HistoryRepository interface {
	Append(ctx context.Context, entry *domain.HistoryEntry) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.HistoryEntry, error)
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) error
}

// FavoriteRepository stores bookmarked exercises per user.
type FavoriteRepository interface {
	Set(ctx context.Context, fav *domain.Favorite) error
	Delete(ctx context.Context, userID primitive.ObjectID, exerciseID string) error
	Exists(ctx context.Context, userID primitive.ObjectID, exerciseID string) (bool, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Favorite, error)
	DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) error
}
