// Package resolver maps free-text exercise queries to glossary records.
// The lookup is an ordered cascade of strategies, each tried until one
// produces a record: slug id, exact name, alias membership, a bounded
// normalized scan, and finally an on-demand catalog fetch-and-upsert.
package resolver

import (
	"chronicrelief/server/internal/catalog"
	"chronicrelief/server/internal/domain"
	"chronicrelief/server/internal/repository"
	"chronicrelief/server/internal/slug"
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyQuery is returned for a blank query before any stage runs.
var ErrEmptyQuery = errors.New("exercise name is required")

// NotFoundError reports an exhausted cascade, carrying what was searched
// so the API can echo it back.
type NotFoundError struct {
	Searched string
	Slug     string
	Hint     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("exercise %q not found (slug %q)", e.Searched, e.Slug)
}

const defaultScanLimit = 500

// Resolver runs the lookup cascade against the glossary, falling back to
// the catalog when one is configured.
type Resolver struct {
	glossary  repository.GlossaryRepository
	catalog   catalog.Client
	scanLimit int
}

// New creates a Resolver. scanLimit caps the batch-scan stage; values
// <= 0 fall back to the default.
func New(glossary repository.GlossaryRepository, cat catalog.Client, scanLimit int) *Resolver {
	if scanLimit <= 0 {
		scanLimit = defaultScanLimit
	}
	return &Resolver{
		glossary:  glossary,
		catalog:   cat,
		scanLimit: scanLimit,
	}
}

// query carries the precomputed forms every stage works with.
type query struct {
	raw   string // trimmed user input
	slug  string // canonical document id form
	tight string // all non-alphanumerics stripped
}

// stage is one lookup strategy. A (nil, nil) return means a clean miss;
// the cascade moves on to the next stage.
type stage struct {
	name string
	run  func(ctx context.Context, q query) (*domain.Exercise, error)
}

// Resolve maps a free-text query to exactly one glossary record, or
// returns *NotFoundError once every stage has missed. The catalog stage
// writes a merge-upsert as a side effect.
func (r *Resolver) Resolve(ctx context.Context, nameOrSlug string) (*domain.Exercise, error) {
	raw := strings.TrimSpace(nameOrSlug)
	if raw == "" {
		return nil, ErrEmptyQuery
	}

	q := query{
		raw:   raw,
		slug:  slug.Slugify(raw),
		tight: slug.Tight(raw),
	}

	stages := []stage{
		{name: "slug", run: r.bySlug},
		{name: "name", run: r.byExactName},
		{name: "alias", run: r.byAlias},
		{name: "scan", run: r.byScan},
		{name: "catalog", run: r.byCatalog},
	}

	for _, s := range stages {
		exercise, err := s.run(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("resolve stage %s: %w", s.name, err)
		}
		if exercise != nil {
			return exercise, nil
		}
	}

	return nil, &NotFoundError{
		Searched: q.raw,
		Slug:     q.slug,
		Hint:     "try the exercise's common name, e.g. \"pull up\" or \"glute bridge\"",
	}
}

// bySlug tries the document id directly.
func (r *Resolver) bySlug(ctx context.Context, q query) (*domain.Exercise, error) {
	return missOnNotFound(r.glossary.GetBySlug(ctx, q.slug))
}

// byExactName matches the stored display name against the raw input.
func (r *Resolver) byExactName(ctx context.Context, q query) (*domain.Exercise, error) {
	return missOnNotFound(r.glossary.GetByName(ctx, q.raw))
}

// byAlias checks the stored alias arrays for the raw input, its slug, or
// its tight form.
func (r *Resolver) byAlias(ctx context.Context, q query) (*domain.Exercise, error) {
	values := []string{strings.ToLower(q.raw), q.slug, q.tight}
	return missOnNotFound(r.glossary.GetByAlias(ctx, values...))
}

// byScan reads a bounded batch and compares normalized names and
// aliases; containment in either direction also counts. Records beyond
// the cap are invisible to this stage.
func (r *Resolver) byScan(ctx context.Context, q query) (*domain.Exercise, error) {
	batch, err := r.glossary.List(ctx, r.scanLimit)
	if err != nil {
		return nil, err
	}

	// Exact normalized equality wins over containment.
	for i := range batch {
		if slug.Tight(batch[i].Name) == q.tight {
			return &batch[i], nil
		}
		for _, alias := range batch[i].Aliases {
			if slug.Tight(alias) == q.tight {
				return &batch[i], nil
			}
		}
	}
	if q.tight == "" {
		return nil, nil
	}
	for i := range batch {
		name := slug.Tight(batch[i].Name)
		if name == "" {
			continue
		}
		if strings.Contains(name, q.tight) || strings.Contains(q.tight, name) {
			return &batch[i], nil
		}
	}
	return nil, nil
}

// byCatalog fetches from the third-party catalog, upserts the derived
// record keyed by its slug, and re-resolves through the id lookup so the
// caller always sees the stored document.
func (r *Resolver) byCatalog(ctx context.Context, q query) (*domain.Exercise, error) {
	if r.catalog == nil || !r.catalog.Configured() {
		return nil, nil
	}

	items, err := r.catalog.SearchByName(ctx, strings.ToLower(q.raw))
	if err != nil {
		if errors.Is(err, catalog.ErrNotConfigured) {
			return nil, nil
		}
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	// Prefer the exact normalized-name match, else vendor order.
	picked := items[0]
	for _, item := range items {
		if slug.Tight(item.Name) == q.tight {
			picked = item
			break
		}
	}
	if picked.Name == "" {
		return nil, nil
	}

	record := FromCatalogItem(picked)
	if err := r.glossary.Upsert(ctx, record); err != nil {
		return nil, err
	}

	return missOnNotFound(r.glossary.GetBySlug(ctx, record.ID))
}

// missOnNotFound converts the repository's not-found into a clean stage
// miss so the cascade keeps going.
func missOnNotFound(exercise *domain.Exercise, err error) (*domain.Exercise, error) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return exercise, nil
}
