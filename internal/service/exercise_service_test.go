package service

import (
	"chronicrelief/server/internal/cache"
	"chronicrelief/server/internal/domain"
	"chronicrelief/server/internal/resolver"
	"chronicrelief/server/internal/summary"
	"context"
	"errors"
	"testing"
	"time"
)

func newTestExerciseService(gen *fakeGenerator) ExerciseService {
	glossary := newFakeGlossaryRepo(&domain.Exercise{
		ID:          "pull-up",
		Name:        "Pull-Up",
		TargetAreas: []string{"Back", "Lats"},
		Description: "Hang from a bar and pull your chin over it.",
		Aliases:     []string{"pull up", "pull-up", "pullup"},
	})
	res := resolver.New(glossary, &fakeCatalog{}, 0)
	return NewExerciseService(res, summary.NewGenerator(gen), cache.NewMemoryCache(10*time.Minute), nil)
}

func TestLookupAndSummarizeCachesAnswer(t *testing.T) {
	gen := &fakeGenerator{configured: true, answer: "• What it is: a vertical pull."}
	svc := newTestExerciseService(gen)
	ctx := context.Background()

	first, err := svc.LookupAndSummarize(ctx, "pull up")
	if err != nil {
		t.Fatalf("LookupAndSummarize: %v", err)
	}
	if first.Exercise.Name != "Pull-Up" {
		t.Errorf("name = %q", first.Exercise.Name)
	}
	if first.Cached {
		t.Error("first lookup reported cached")
	}
	if first.Answer != "• What it is: a vertical pull." {
		t.Errorf("answer = %q", first.Answer)
	}

	// Different spelling resolves to the same record, so the cached
	// answer is reused without a second generation call.
	second, err := svc.LookupAndSummarize(ctx, "Pull-Up")
	if err != nil {
		t.Fatalf("second LookupAndSummarize: %v", err)
	}
	if !second.Cached {
		t.Error("second lookup not served from cache")
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
}

func TestLookupValidation(t *testing.T) {
	svc := newTestExerciseService(&fakeGenerator{})
	if _, err := svc.LookupAndSummarize(context.Background(), "   "); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("blank query: got %v", err)
	}
}

func TestLookupNotFound(t *testing.T) {
	svc := newTestExerciseService(&fakeGenerator{})
	_, err := svc.LookupAndSummarize(context.Background(), "underwater basket weaving")
	var notFound *resolver.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	if notFound.Searched != "underwater basket weaving" {
		t.Errorf("searched = %q", notFound.Searched)
	}
}

func TestLookupFallsBackWhenGenerationUnavailable(t *testing.T) {
	gen := &fakeGenerator{configured: false}
	svc := newTestExerciseService(gen)

	result, err := svc.LookupAndSummarize(context.Background(), "pull up")
	if err != nil {
		t.Fatalf("LookupAndSummarize: %v", err)
	}
	if result.Answer == "" {
		t.Fatal("no fallback answer")
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times", gen.calls)
	}
}
