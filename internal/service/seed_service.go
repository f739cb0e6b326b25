package service

import (
	"chronicrelief/server/internal/catalog"
	"chronicrelief/server/internal/domain"
	"chronicrelief/server/internal/repository"
	"chronicrelief/server/internal/resolver"
	"chronicrelief/server/internal/slug"
	"context"
	"errors"
	"log"
	"time"
)

var ErrSeedNotConfigured = errors.New("catalog seeding requires an ExerciseDB API key")

// Name searches guaranteed to hit in the vendor catalog.
var seedStaples = []string{
	"pull up", "chin up", "push up", "plank", "bodyweight squat",
	"lunge", "glute bridge", "dead bug", "bird dog", "calf raise",
}

// Body-part batches that widen coverage past the staples.
var seedBodyParts = []string{
	"back", "chest", "upper legs", "lower legs", "shoulders", "waist", "upper arms",
}

const seedBodyPartLimit = 12

// SeedReport summarizes one seeding run.
type SeedReport struct {
	InsertedOrUpdated int      `json:"insertedOrUpdated"`
	SampleIDs         []string `json:"sampleIds,omitempty"`
}

// --- Service Interface ---
type SeedService interface {
	// SeedGlossary upserts the curated rehab glossary. Idempotent.
	SeedGlossary(ctx context.Context) (*SeedReport, error)
	// SeedFromCatalog pulls staples and body-part batches from the vendor
	// catalog, transforms them into glossary records, and upserts them.
	// Records whose aliases collide with an already-seen record are skipped.
	SeedFromCatalog(ctx context.Context) (*SeedReport, error)
}

// seedService implements the SeedService interface.
type seedService struct {
	glossaryRepo repository.GlossaryRepository
	catalog      catalog.Client
}

// NewSeedService creates a new instance of seedService.
func NewSeedService(glossaryRepo repository.GlossaryRepository, cat catalog.Client) SeedService {
	return &seedService{glossaryRepo: glossaryRepo, catalog: cat}
}

func (s *seedService) SeedGlossary(ctx context.Context) (*SeedReport, error) {
	now := time.Now().UTC()
	var sample []string
	for _, ex := range curatedGlossary() {
		ex.UpdatedAt = now
		if err := s.glossaryRepo.Upsert(ctx, ex); err != nil {
			return nil, err
		}
		if len(sample) < 10 {
			sample = append(sample, ex.ID)
		}
	}
	return &SeedReport{InsertedOrUpdated: len(curatedGlossary()), SampleIDs: sample}, nil
}

func (s *seedService) SeedFromCatalog(ctx context.Context) (*SeedReport, error) {
	if !s.catalog.Configured() {
		return nil, ErrSeedNotConfigured
	}

	var fetched []catalog.Item
	for _, q := range seedStaples {
		items, err := s.catalog.SearchByName(ctx, q)
		if err != nil {
			if errors.Is(err, catalog.ErrUnauthorized) || errors.Is(err, catalog.ErrRateLimited) {
				return nil, err
			}
			log.Printf("WARN: catalog name search failed for %q: %v", q, err)
			continue
		}
		fetched = append(fetched, items...)
	}
	for _, bp := range seedBodyParts {
		items, err := s.catalog.SearchByBodyPart(ctx, bp, seedBodyPartLimit)
		if err != nil {
			if errors.Is(err, catalog.ErrUnauthorized) || errors.Is(err, catalog.ErrRateLimited) {
				return nil, err
			}
			log.Printf("WARN: catalog body-part search failed for %q: %v", bp, err)
			continue
		}
		fetched = append(fetched, items...)
	}

	// Dedup by slug and by normalized alias so "pull up" and "pull-up"
	// variants from different batches cannot land as separate records.
	bySlug := make(map[string]*domain.Exercise)
	seenAliases := make(map[string]struct{})
	var order []string

	for _, it := range fetched {
		if it.Name == "" {
			continue
		}
		ex := resolver.FromCatalogItem(it)
		if _, dup := bySlug[ex.ID]; dup {
			continue
		}
		collision := false
		for _, al := range ex.Aliases {
			if _, taken := seenAliases[slug.Tight(al)]; taken {
				collision = true
				break
			}
		}
		if collision {
			continue
		}
		for _, al := range ex.Aliases {
			seenAliases[slug.Tight(al)] = struct{}{}
		}
		bySlug[ex.ID] = ex
		order = append(order, ex.ID)
	}

	now := time.Now().UTC()
	var sample []string
	for _, id := range order {
		ex := bySlug[id]
		ex.UpdatedAt = now
		if err := s.glossaryRepo.Upsert(ctx, ex); err != nil {
			return nil, err
		}
		if len(sample) < 10 {
			sample = append(sample, id)
		}
	}

	return &SeedReport{InsertedOrUpdated: len(order), SampleIDs: sample}, nil
}
