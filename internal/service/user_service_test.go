package service

import (
	"chronicrelief/server/internal/domain"
	"chronicrelief/server/internal/repository"
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- in-memory fakes ---

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	u := *user
	u.ID = id
	f.users[id] = &u
	return id, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *u
	return &copy, nil
}

func (f *fakeUserRepo) SetSelectedArea(ctx context.Context, id primitive.ObjectID, area string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.SelectedArea = area
	return nil
}

func (f *fakeUserRepo) IncrementRoutinesCompleted(ctx context.Context, id primitive.ObjectID) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.RoutinesCompleted++
	return nil
}

func (f *fakeUserRepo) ResetRoutinesCompleted(ctx context.Context, id primitive.ObjectID) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.RoutinesCompleted = 0
	u.LastCompletedAt = nil
	return nil
}

type routineKey struct {
	user primitive.ObjectID
	area string
}

type fakeRoutineRepo struct {
	routines map[routineKey]*domain.Routine
}

func newFakeRoutineRepo() *fakeRoutineRepo {
	return &fakeRoutineRepo{routines: make(map[routineKey]*domain.Routine)}
}

func (f *fakeRoutineRepo) Save(ctx context.Context, r *domain.Routine) error {
	copy := *r
	f.routines[routineKey{r.UserID, r.Area}] = &copy
	return nil
}

func (f *fakeRoutineRepo) Get(ctx context.Context, userID primitive.ObjectID, area string) (*domain.Routine, error) {
	r, ok := f.routines[routineKey{userID, area}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *r
	return &copy, nil
}

type fakeProgressRepo struct {
	progress map[routineKey]*domain.Progress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{progress: make(map[routineKey]*domain.Progress)}
}

func (f *fakeProgressRepo) Save(ctx context.Context, p *domain.Progress) error {
	copy := *p
	f.progress[routineKey{p.UserID, p.Area}] = &copy
	return nil
}

func (f *fakeProgressRepo) Get(ctx context.Context, userID primitive.ObjectID, area string) (*domain.Progress, error) {
	p, ok := f.progress[routineKey{userID, area}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *p
	return &copy, nil
}

type fakeHistoryRepo struct {
	entries []domain.HistoryEntry
}

func (f *fakeHistoryRepo) Append(ctx context.Context, e *domain.HistoryEntry) error {
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeHistoryRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.HistoryEntry, error) {
	var out []domain.HistoryEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	list, _ := f.ListByUser(ctx, userID)
	return int64(len(list)), nil
}

func (f *fakeHistoryRepo) DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) error {
	var kept []domain.HistoryEntry
	for _, e := range f.entries {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

type favKey struct {
	user primitive.ObjectID
	ex   string
}

type fakeFavoriteRepo struct {
	favs map[favKey]*domain.Favorite
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favs: make(map[favKey]*domain.Favorite)}
}

func (f *fakeFavoriteRepo) Set(ctx context.Context, fav *domain.Favorite) error {
	copy := *fav
	f.favs[favKey{fav.UserID, fav.ExerciseID}] = &copy
	return nil
}

func (f *fakeFavoriteRepo) Delete(ctx context.Context, userID primitive.ObjectID, exerciseID string) error {
	k := favKey{userID, exerciseID}
	if _, ok := f.favs[k]; !ok {
		return repository.ErrNotFound
	}
	delete(f.favs, k)
	return nil
}

func (f *fakeFavoriteRepo) Exists(ctx context.Context, userID primitive.ObjectID, exerciseID string) (bool, error) {
	_, ok := f.favs[favKey{userID, exerciseID}]
	return ok, nil
}

func (f *fakeFavoriteRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Favorite, error) {
	var out []domain.Favorite
	for k, v := range f.favs {
		if k.user == userID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeFavoriteRepo) DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) error {
	for k := range f.favs {
		if k.user == userID {
			delete(f.favs, k)
		}
	}
	return nil
}

type fakeGlossaryRepo struct {
	records map[string]*domain.Exercise
}

func newFakeGlossaryRepo(records ...*domain.Exercise) *fakeGlossaryRepo {
	f := &fakeGlossaryRepo{records: make(map[string]*domain.Exercise)}
	for _, r := range records {
		f.records[r.ID] = r
	}
	return f
}

func (f *fakeGlossaryRepo) GetBySlug(ctx context.Context, slug string) (*domain.Exercise, error) {
	r, ok := f.records[slug]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *r
	return &copy, nil
}

func (f *fakeGlossaryRepo) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	for _, r := range f.records {
		if r.Name == name {
			copy := *r
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeGlossaryRepo) GetByAlias(ctx context.Context, values ...string) (*domain.Exercise, error) {
	for _, r := range f.records {
		for _, a := range r.Aliases {
			for _, v := range values {
				if a == v {
					copy := *r
					return &copy, nil
				}
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeGlossaryRepo) List(ctx context.Context, limit int) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, r := range f.records {
		if len(out) >= limit {
			break
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeGlossaryRepo) Upsert(ctx context.Context, ex *domain.Exercise) error {
	copy := *ex
	f.records[ex.ID] = &copy
	return nil
}

// --- tests ---

func newTestUserService(t *testing.T) (UserService, *fakeUserRepo, *fakeHistoryRepo, *fakeFavoriteRepo, primitive.ObjectID) {
	t.Helper()
	userRepo := newFakeUserRepo()
	historyRepo := &fakeHistoryRepo{}
	favoriteRepo := newFakeFavoriteRepo()
	glossaryRepo := newFakeGlossaryRepo(&domain.Exercise{
		ID:       "pull-up",
		Name:     "Pull-Up",
		BodyPart: "back",
		Target:   "lats",
		GifURL:   "https://cdn.example.com/pull-up.gif",
	})

	svc := NewUserService(userRepo, newFakeRoutineRepo(), newFakeProgressRepo(), historyRepo, favoriteRepo, glossaryRepo)

	uid, err := userRepo.Create(context.Background(), &domain.User{Name: "Pat", Email: "pat@example.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return svc, userRepo, historyRepo, favoriteRepo, uid
}

func TestSetSelectedArea(t *testing.T) {
	svc, userRepo, _, _, uid := newTestUserService(t)
	ctx := context.Background()

	if err := svc.SetSelectedArea(ctx, uid, "knee"); err != nil {
		t.Fatalf("SetSelectedArea: %v", err)
	}
	u, _ := userRepo.GetByID(ctx, uid)
	if u.SelectedArea != "knee" {
		t.Errorf("selectedArea = %q", u.SelectedArea)
	}

	if err := svc.SetSelectedArea(ctx, uid, ""); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("empty area: got %v", err)
	}
	if err := svc.SetSelectedArea(ctx, primitive.NewObjectID(), "knee"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user: got %v", err)
	}
}

func TestRoutineRoundTrip(t *testing.T) {
	svc, _, _, _, uid := newTestUserService(t)
	ctx := context.Background()
	ids := []string{"quad-set-isometric", "straight-leg-raise", "wall-sit-short-range", "step-ups-low-step", "clamshell"}

	if err := svc.SaveRoutine(ctx, uid, "knee", ids); err != nil {
		t.Fatalf("SaveRoutine: %v", err)
	}
	routine, err := svc.GetRoutine(ctx, uid, "knee")
	if err != nil {
		t.Fatalf("GetRoutine: %v", err)
	}
	if len(routine.ExerciseIDs) != 5 || routine.ExerciseIDs[0] != "quad-set-isometric" {
		t.Errorf("routine = %+v", routine.ExerciseIDs)
	}

	if _, err := svc.GetRoutine(ctx, uid, "ankle"); !errors.Is(err, ErrRoutineNotFound) {
		t.Errorf("missing routine: got %v", err)
	}
	if err := svc.SaveRoutine(ctx, uid, "knee", make([]string, 6)); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("oversized routine: got %v", err)
	}
}

func TestProgressDefaultsToEmpty(t *testing.T) {
	svc, _, _, _, uid := newTestUserService(t)
	ctx := context.Background()

	progress, err := svc.GetProgress(ctx, uid, "knee")
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if progress.Completed == nil || len(progress.Completed) != 0 {
		t.Errorf("fresh progress = %+v", progress.Completed)
	}

	if err := svc.SaveProgress(ctx, uid, "knee", []string{"clamshell"}); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	progress, _ = svc.GetProgress(ctx, uid, "knee")
	if len(progress.Completed) != 1 || progress.Completed[0] != "clamshell" {
		t.Errorf("progress = %+v", progress.Completed)
	}
}

func TestCompleteRoutineIncrementsCounter(t *testing.T) {
	svc, userRepo, historyRepo, _, uid := newTestUserService(t)
	ctx := context.Background()
	ids := []string{"clamshell", "glute-bridge"}

	entry, err := svc.CompleteRoutine(ctx, uid, "knee", ids)
	if err != nil {
		t.Fatalf("CompleteRoutine: %v", err)
	}
	if entry.ID == "" {
		t.Error("entry has no id")
	}
	if len(historyRepo.entries) != 1 {
		t.Fatalf("history entries = %d", len(historyRepo.entries))
	}
	u, _ := userRepo.GetByID(ctx, uid)
	if u.RoutinesCompleted != 1 {
		t.Errorf("routinesCompleted = %d", u.RoutinesCompleted)
	}

	if _, err := svc.CompleteRoutine(ctx, uid, "knee", ids); err != nil {
		t.Fatalf("second CompleteRoutine: %v", err)
	}
	u, _ = userRepo.GetByID(ctx, uid)
	if u.RoutinesCompleted != 2 {
		t.Errorf("routinesCompleted after second = %d", u.RoutinesCompleted)
	}
}

func TestToggleFavoriteSnapshotsGlossary(t *testing.T) {
	svc, _, _, favoriteRepo, uid := newTestUserService(t)
	ctx := context.Background()

	saved, err := svc.ToggleFavorite(ctx, uid, "pull-up")
	if err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if !saved {
		t.Fatal("first toggle should save")
	}
	fav := favoriteRepo.favs[favKey{uid, "pull-up"}]
	if fav == nil || fav.Name != "Pull-Up" || fav.BodyPart != "back" {
		t.Fatalf("favorite snapshot = %+v", fav)
	}

	saved, err = svc.ToggleFavorite(ctx, uid, "pull-up")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if saved {
		t.Error("second toggle should remove")
	}
	if len(favoriteRepo.favs) != 0 {
		t.Errorf("favorites remaining = %d", len(favoriteRepo.favs))
	}

	if _, err := svc.ToggleFavorite(ctx, uid, "no-such-slug"); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("unknown exercise: got %v", err)
	}
}

func TestResetAppData(t *testing.T) {
	svc, userRepo, historyRepo, favoriteRepo, uid := newTestUserService(t)
	ctx := context.Background()

	if _, err := svc.ToggleFavorite(ctx, uid, "pull-up"); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if _, err := svc.CompleteRoutine(ctx, uid, "knee", []string{"clamshell"}); err != nil {
		t.Fatalf("CompleteRoutine: %v", err)
	}

	if err := svc.ResetAppData(ctx, uid); err != nil {
		t.Fatalf("ResetAppData: %v", err)
	}
	if len(favoriteRepo.favs) != 0 {
		t.Error("favorites survived reset")
	}
	if len(historyRepo.entries) != 0 {
		t.Error("history survived reset")
	}
	u, _ := userRepo.GetByID(ctx, uid)
	if u.RoutinesCompleted != 0 {
		t.Errorf("routinesCompleted = %d after reset", u.RoutinesCompleted)
	}
}
