package service

import (
	"chronicrelief/server/internal/cache"
	"chronicrelief/server/internal/domain"
	"chronicrelief/server/internal/resolver"
	"chronicrelief/server/internal/summary"
	"context"
	"errors"
	"log"
)

// --- Error Definitions ---
var (
	ErrValidationFailed = errors.New("validation failed")
)

// LookupResult is a resolved record plus its generated answer text.
type LookupResult struct {
	Exercise *domain.Exercise
	Answer   string
	Cached   bool
}

// --- Service Interface ---
type ExerciseService interface {
	// LookupAndSummarize resolves a free-text query through the cascade
	// and returns the record with its bulleted summary. Repeat lookups of
	// the same record within the cache TTL skip the generation call.
	LookupAndSummarize(ctx context.Context, nameOrSlug string) (*LookupResult, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	resolver *resolver.Resolver
	summary  *summary.Generator
	answers  cache.AnswerCache
	media    MediaService
}

// NewExerciseService creates a new instance of exerciseService.
// media may be nil when no bucket is configured.
func NewExerciseService(res *resolver.Resolver, gen *summary.Generator, answers cache.AnswerCache, media MediaService) ExerciseService {
	return &exerciseService{
		resolver: res,
		summary:  gen,
		answers:  answers,
		media:    media,
	}
}

func (s *exerciseService) LookupAndSummarize(ctx context.Context, nameOrSlug string) (*LookupResult, error) {
	exercise, err := s.resolver.Resolve(ctx, nameOrSlug)
	if err != nil {
		if errors.Is(err, resolver.ErrEmptyQuery) {
			return nil, ErrValidationFailed
		}
		return nil, err
	}

	// Serve the exercise gif from our own bucket when media storage is
	// configured; failures keep the vendor URL.
	if s.media != nil && s.media.Enabled() && exercise.GifURL != "" {
		if url, err := s.media.GifURL(ctx, exercise.ID, exercise.GifURL); err == nil && url != "" {
			exercise.GifURL = url
		} else if err != nil {
			log.Printf("WARN: gif media cache failed for %s: %v", exercise.ID, err)
		}
	}

	key := cache.AnswerKey(exercise.ID)
	if answer, ok := s.answers.Get(ctx, key); ok {
		return &LookupResult{Exercise: exercise, Answer: answer, Cached: true}, nil
	}

	answer := s.summary.Summarize(ctx, exercise)
	s.answers.Set(ctx, key, answer)

	return &LookupResult{Exercise: exercise, Answer: answer}, nil
}
