package service

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"algorithm_guessr/internal/common"
	"algorithm_guessr/internal/domain/model"
	"algorithm_guessr/internal/platform/cache"
	"algorithm_guessr/internal/platform/problemsource"

	"github.com/gosimple/slug"
)

const catalogCacheKey = "cf:problemset"

func problemCacheKey(id string) string {
	return "problem:" + id
}

// ErrNoPlayableProblem means no problem in the requested range has a recognized tag.
var ErrNoPlayableProblem = common.NewError(common.ErrBadGateway, common.MsgProblemUnavailable)

// ProblemSource is the upstream catalog plus its enrichment providers.
type ProblemSource interface {
	FetchProblemset(ctx context.Context) ([]model.RawProblem, error)
	FetchVJudgeProblem(ctx context.Context, p model.RawProblem) (*problemsource.VJudgeProblem, error)
	FetchStatement(ctx context.Context, p model.RawProblem) (string, error)
	ProblemURL(p model.RawProblem) string
}

type ProblemCacheConfig struct {
	ProblemTTL time.Duration
	CatalogTTL time.Duration
	// CatalogRetention is how long an expired catalog stays available as a fallback.
	CatalogRetention time.Duration
}

type ProblemService struct {
	source ProblemSource
	cache  cache.Store
	cfg    ProblemCacheConfig
	now    func() time.Time
	intn   func(n int) int
}

func NewProblemService(source ProblemSource, store cache.Store, cfg ProblemCacheConfig) *ProblemService {
	if cfg.CatalogRetention < cfg.CatalogTTL {
		cfg.CatalogRetention = cfg.CatalogTTL
	}
	return &ProblemService{
		source: source,
		cache:  store,
		cfg:    cfg,
		now:    time.Now,
		intn:   rand.IntN,
	}
}

// GetCatalog returns the upstream catalog, refetching it when the cached copy
// is older than the catalog TTL. If the refetch fails and an older copy is
// still retained, the stale copy is served.
func (s *ProblemService) GetCatalog(ctx context.Context) ([]model.RawProblem, error) {
	var snapshot model.CatalogSnapshot
	cached, err := s.cache.GetJSON(ctx, catalogCacheKey, &snapshot)
	if err != nil {
		log.Printf("WARN: Failed to read cached problemset: %v", err)
		cached = false
	}
	if cached && s.now().Sub(snapshot.FetchedTime()) < s.cfg.CatalogTTL {
		return snapshot.Problems, nil
	}

	problems, err := s.RefreshCatalog(ctx)
	if err != nil {
		if cached {
			log.Printf("WARN: Serving stale problemset fetched at %s: %v", snapshot.FetchedTime().Format(time.RFC3339), err)
			return snapshot.Problems, nil
		}
		return nil, common.WrapError(common.ErrBadGateway, common.MsgProblemUnavailable, err)
	}
	return problems, nil
}

// RefreshCatalog fetches the catalog from upstream and replaces the cached copy.
func (s *ProblemService) RefreshCatalog(ctx context.Context) ([]model.RawProblem, error) {
	problems, err := s.source.FetchProblemset(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch problemset: %w", err)
	}

	snapshot := model.CatalogSnapshot{Problems: problems, FetchedAt: s.now().UnixMilli()}
	if err := s.cache.SetJSON(ctx, catalogCacheKey, snapshot, s.cfg.CatalogRetention); err != nil {
		log.Printf("WARN: Failed to cache problemset: %v", err)
	}
	return problems, nil
}

// CachedProblem looks up metadata previously served to a player.
func (s *ProblemService) CachedProblem(ctx context.Context, id string) (*model.ProblemMetadata, bool, error) {
	var meta model.ProblemMetadata
	ok, err := s.cache.GetJSON(ctx, problemCacheKey(id), &meta)
	if err != nil {
		return nil, false, fmt.Errorf("read cached problem %s: %w", id, err)
	}
	if !ok {
		return nil, false, nil
	}
	return &meta, true, nil
}

// GetMetadata resolves the enriched metadata for p. Enrichment failures only
// degrade the result (missing statement, catalog tags); they never fail it.
// Metadata with at least one recognized tag is cached for the problem TTL.
func (s *ProblemService) GetMetadata(ctx context.Context, p model.RawProblem) *model.ProblemMetadata {
	id := p.ID()
	if meta, ok, err := s.CachedProblem(ctx, id); err != nil {
		log.Printf("WARN: %v", err)
	} else if ok {
		return meta
	}

	statement := ""
	tags := p.Tags
	difficulty := p.Rating

	data, err := s.source.FetchVJudgeProblem(ctx, p)
	if err != nil {
		log.Printf("WARN: Failed to fetch VJudge data for %s: %v", id, err)
	} else {
		if data.Description != "" {
			statement = problemsource.SanitizeHTML(data.Description)
		}
		if len(data.Tags) > 0 {
			tags = data.Tags
		}
		if data.Difficulty != nil {
			difficulty = *data.Difficulty
		}
	}

	if statement == "" {
		statement, err = s.source.FetchStatement(ctx, p)
		if err != nil {
			log.Printf("WARN: Failed to fetch Codeforces statement for %s: %v", id, err)
			statement = ""
		}
	}

	meta := &model.ProblemMetadata{
		ID:         id,
		Title:      p.Name,
		Slug:       slug.Make(p.Name),
		Difficulty: difficulty,
		Statement:  statement,
		Tags:       model.IntersectAllowed(tags),
		URL:        s.source.ProblemURL(p),
		FetchedAt:  s.now().UnixMilli(),
	}

	if meta.Playable() {
		if err := s.cache.SetJSON(ctx, problemCacheKey(id), meta, s.cfg.ProblemTTL); err != nil {
			log.Printf("WARN: Failed to cache problem %s: %v", id, err)
		}
	}
	return meta
}

// PickRandom draws problems rated within [minDifficulty, maxDifficulty]
// uniformly without replacement until one has a recognized tag. Each
// candidate is resolved at most once.
func (s *ProblemService) PickRandom(ctx context.Context, minDifficulty, maxDifficulty int) (*model.ProblemMetadata, error) {
	catalog, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]model.RawProblem, 0, len(catalog))
	for _, p := range catalog {
		if p.Rated() && p.Rating >= minDifficulty && p.Rating <= maxDifficulty {
			candidates = append(candidates, p)
		}
	}

	for len(candidates) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		i := s.intn(len(candidates))
		candidate := candidates[i]
		last := len(candidates) - 1
		candidates[i] = candidates[last]
		candidates = candidates[:last]

		if meta := s.GetMetadata(ctx, candidate); meta.Playable() {
			return meta, nil
		}
	}
	return nil, ErrNoPlayableProblem
}
