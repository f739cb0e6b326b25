package resolver

import (
	"chronicrelief/server/internal/catalog"
	"chronicrelief/server/internal/domain"
	"chronicrelief/server/internal/repository"
	"chronicrelief/server/internal/slug"
	"context"
	"errors"
	"sort"
	"testing"
)

// fakeGlossary is an in-memory GlossaryRepository for cascade tests.
type fakeGlossary struct {
	docs    map[string]domain.Exercise
	upserts int
}

func newFakeGlossary(exercises ...domain.Exercise) *fakeGlossary {
	g := &fakeGlossary{docs: make(map[string]domain.Exercise)}
	for _, ex := range exercises {
		g.docs[ex.ID] = ex
	}
	return g
}

func (g *fakeGlossary) GetBySlug(_ context.Context, s string) (*domain.Exercise, error) {
	if ex, ok := g.docs[s]; ok {
		return &ex, nil
	}
	return nil, repository.ErrNotFound
}

func (g *fakeGlossary) GetByName(_ context.Context, name string) (*domain.Exercise, error) {
	for _, ex := range g.docs {
		if ex.Name == name {
			out := ex
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (g *fakeGlossary) GetByAlias(_ context.Context, values ...string) (*domain.Exercise, error) {
	for _, ex := range g.docs {
		for _, alias := range ex.Aliases {
			for _, v := range values {
				if alias == v {
					out := ex
					return &out, nil
				}
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (g *fakeGlossary) List(_ context.Context, limit int) ([]domain.Exercise, error) {
	ids := make([]string, 0, len(g.docs))
	for id := range g.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []domain.Exercise
	for _, id := range ids {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, g.docs[id])
	}
	return out, nil
}

func (g *fakeGlossary) Upsert(_ context.Context, ex *domain.Exercise) error {
	g.upserts++
	g.docs[ex.ID] = *ex
	return nil
}

// fakeCatalog serves a fixed item list; an empty list with configured
// true still exercises the catalog stage.
type fakeCatalog struct {
	configured bool
	items      []catalog.Item
	err        error
	calls      int
}

func (c *fakeCatalog) Configured() bool { return c.configured }

func (c *fakeCatalog) SearchByName(_ context.Context, _ string) ([]catalog.Item, error) {
	c.calls++
	return c.items, c.err
}

func (c *fakeCatalog) SearchByBodyPart(_ context.Context, _ string, _ int) ([]catalog.Item, error) {
	return nil, nil
}

func pullUpRecord() domain.Exercise {
	return domain.Exercise{
		ID:          "pull-up",
		Name:        "Pull-Up",
		TargetAreas: []string{"Back", "Lats"},
		Description: "Hang from a bar and pull your chin over it.",
		Aliases:     slug.AliasVariants("Pull Up"),
	}
}

func TestResolveEmptyQuery(t *testing.T) {
	r := New(newFakeGlossary(), &fakeCatalog{}, 0)
	if _, err := r.Resolve(context.Background(), "   "); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestResolveBySlugDirectHit(t *testing.T) {
	r := New(newFakeGlossary(pullUpRecord()), &fakeCatalog{}, 0)

	got, err := r.Resolve(context.Background(), "pull up")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != "pull-up" || got.Name != "Pull-Up" {
		t.Fatalf("resolved wrong record: %+v", got)
	}
}

func TestResolveByExactName(t *testing.T) {
	// The record's id does not match the query's slug, so stage 1 misses
	// and stage 2 must catch the exact stored name.
	ex := pullUpRecord()
	ex.ID = "chin-over-bar"
	ex.Aliases = nil
	r := New(newFakeGlossary(ex), &fakeCatalog{}, 0)

	got, err := r.Resolve(context.Background(), "Pull-Up")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != "chin-over-bar" {
		t.Fatalf("expected exact-name hit, got %+v", got)
	}
}

func TestResolveByAlias(t *testing.T) {
	ex := pullUpRecord()
	ex.ID = "chin-over-bar"
	r := New(newFakeGlossary(ex), &fakeCatalog{}, 0)

	got, err := r.Resolve(context.Background(), "pullups")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != "chin-over-bar" {
		t.Fatalf("expected alias hit, got %+v", got)
	}
}

func TestResolveByScanNormalizedName(t *testing.T) {
	// No aliases at all, odd punctuation in the stored name: only the
	// normalized scan can connect the two.
	ex := domain.Exercise{ID: "birddog-x", Name: "Bird–Dog!"}
	r := New(newFakeGlossary(ex), &fakeCatalog{}, 0)

	got, err := r.Resolve(context.Background(), "bird dog")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != "birddog-x" {
		t.Fatalf("expected scan hit, got %+v", got)
	}
}

func TestResolveScanRespectsCap(t *testing.T) {
	a := domain.Exercise{ID: "aaa", Name: "Aaa Exercise###"}
	z := domain.Exercise{ID: "zzz", Name: "Zzz Exercise###"}
	// Cap of 1 leaves only "aaa" visible to the scan stage.
	r := New(newFakeGlossary(a, z), &fakeCatalog{}, 1)

	if _, err := r.Resolve(context.Background(), "zzz exercise"); err == nil {
		t.Fatal("expected not-found for record beyond the scan cap")
	}
}

func TestResolveNotFoundNoWrite(t *testing.T) {
	g := newFakeGlossary()
	cat := &fakeCatalog{configured: false}
	r := New(g, cat, 0)

	_, err := r.Resolve(context.Background(), "xyzzy-nonexistent")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Searched != "xyzzy-nonexistent" {
		t.Errorf("Searched = %q", nf.Searched)
	}
	if nf.Slug != "xyzzy-nonexistent" {
		t.Errorf("Slug = %q", nf.Slug)
	}
	if nf.Hint == "" {
		t.Error("expected a usage hint")
	}
	if g.upserts != 0 {
		t.Errorf("expected no writes, got %d upserts", g.upserts)
	}
	if cat.calls != 0 {
		t.Errorf("unconfigured catalog was queried %d times", cat.calls)
	}
}

func TestResolveCatalogMissNoWrite(t *testing.T) {
	g := newFakeGlossary()
	cat := &fakeCatalog{configured: true, items: nil}
	r := New(g, cat, 0)

	_, err := r.Resolve(context.Background(), "xyzzy-nonexistent")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if g.upserts != 0 {
		t.Errorf("expected no writes on catalog miss, got %d upserts", g.upserts)
	}
}

func TestResolveCatalogUpsertAndIdempotentReResolution(t *testing.T) {
	g := newFakeGlossary()
	cat := &fakeCatalog{
		configured: true,
		items: []catalog.Item{
			{Name: "archer pull up", BodyPart: "back", Target: "lats", Equipment: "body weight",
				Instructions: []string{"Hang from the bar. Pull toward one hand. Lower slowly."}},
			{Name: "pull up", BodyPart: "back", Target: "lats", Equipment: "body weight",
				Instructions: []string{"Hang from the bar. Pull your chin over it."}},
		},
	}
	r := New(g, cat, 0)

	got, err := r.Resolve(context.Background(), "pull up")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// Exact normalized-name equality beats vendor order.
	if got.ID != "pull-up" {
		t.Fatalf("expected exact-name catalog pick, got %q", got.ID)
	}
	if got.Name != "Pull up" {
		t.Errorf("Name = %q", got.Name)
	}
	if g.upserts != 1 {
		t.Fatalf("expected exactly one upsert, got %d", g.upserts)
	}

	// Identical query now hits stage 1 without touching the catalog again.
	callsBefore := cat.calls
	again, err := r.Resolve(context.Background(), "pull up")
	if err != nil {
		t.Fatalf("re-resolve: %v", err)
	}
	if again.ID != got.ID {
		t.Errorf("re-resolution returned %q, want %q", again.ID, got.ID)
	}
	if cat.calls != callsBefore {
		t.Errorf("catalog queried again on re-resolution")
	}
	if g.upserts != 1 {
		t.Errorf("second resolve wrote again: %d upserts", g.upserts)
	}
}

func TestResolveCatalogErrorPropagates(t *testing.T) {
	cat := &fakeCatalog{configured: true, err: catalog.ErrRateLimited}
	r := New(newFakeGlossary(), cat, 0)

	_, err := r.Resolve(context.Background(), "pull up")
	if !errors.Is(err, catalog.ErrRateLimited) {
		t.Fatalf("expected rate-limit error to propagate, got %v", err)
	}
}

func TestCascadeCompletenessOverAliasVariants(t *testing.T) {
	// Every variant the expander produces for the stored name must
	// resolve to the record.
	ex := pullUpRecord()
	r := New(newFakeGlossary(ex), &fakeCatalog{}, 0)

	for _, q := range slug.AliasVariants("Pull Up") {
		got, err := r.Resolve(context.Background(), q)
		if err != nil {
			t.Errorf("Resolve(%q): %v", q, err)
			continue
		}
		if got.ID != "pull-up" {
			t.Errorf("Resolve(%q) = %q, want \"pull-up\"", q, got.ID)
		}
	}
}
