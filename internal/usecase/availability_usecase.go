package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"course-match/internal/cache"
	"course-match/internal/domain/course"
	"course-match/internal/domain/policy"
	"course-match/internal/domain/selection"
	"course-match/internal/embedding"
	"course-match/internal/repository"
	"course-match/internal/telemetry"

	"github.com/google/uuid"
)

type AvailabilityUsecase interface {
	CheckAvailability(ctx context.Context, skills []course.SkillQuery) ([]course.SkillQuery, map[string]course.EnhancementEntry)
}

type AvailabilityOptions struct {
	Platform        string
	PerSkillTimeout time.Duration
	MinThreshold    float64
	DetailedResults bool
}

type Availability struct {
	repo     repository.CourseSearchRepository
	embedder embedding.Embedder
	results  *cache.Dynamic[course.AvailabilityResult]
	policy   *policy.Table
	strategy selection.Strategy
	sink     telemetry.Sink
	logger   *log.Logger
	opts     AvailabilityOptions
}

func NewAvailabilityUsecase(
	repo repository.CourseSearchRepository,
	embedder embedding.Embedder,
	results *cache.Dynamic[course.AvailabilityResult],
	table *policy.Table,
	strategy selection.Strategy,
	sink telemetry.Sink,
	logger *log.Logger,
	opts AvailabilityOptions,
) *Availability {
	if opts.PerSkillTimeout <= 0 {
		opts.PerSkillTimeout = 3 * time.Second
	}
	return &Availability{
		repo:     repo,
		embedder: embedder,
		results:  results,
		policy:   table,
		strategy: strategy,
		sink:     sink,
		logger:   logger,
		opts:     opts,
	}
}

type pendingSkill struct {
	idx  int
	text string
	key  string
	cat  course.Category
}

// CheckAvailability enriches every skill query with its availability result.
// The returned slice always has the same length as the input; expected
// failures degrade individual skills to "no courses" and are never raised.
func (u *Availability) CheckAvailability(ctx context.Context, skills []course.SkillQuery) ([]course.SkillQuery, map[string]course.EnhancementEntry) {
	if len(skills) == 0 {
		return []course.SkillQuery{}, map[string]course.EnhancementEntry{}
	}

	start := time.Now()
	out := make([]course.SkillQuery, len(skills))
	copy(out, skills)

	uncached := make([]pendingSkill, 0, len(skills))
	for i := range out {
		cat := course.NormalizeCategory(out[i].Category)
		text := course.EmbeddingText(out[i])
		key := cache.Key(text, cat, u.policy.ThresholdFor(cat), u.opts.Platform)

		if res, ok := u.results.Get(key); ok {
			out[i].AvailabilityResult = res
			telemetry.Emit(u.sink, u.logger, telemetry.EventCacheHit, map[string]string{"category": string(cat)})
			continue
		}
		telemetry.Emit(u.sink, u.logger, telemetry.EventCacheMiss, map[string]string{"category": string(cat)})
		uncached = append(uncached, pendingSkill{idx: i, text: text, key: key, cat: cat})
	}

	if len(uncached) > 0 {
		u.resolveUncached(ctx, out, uncached)
	}

	enhancements := ExtractEnhancements(out)

	telemetry.Emit(u.sink, u.logger, telemetry.EventBatchCompleted, map[string]string{
		"batch_id":    uuid.NewString(),
		"skills":      fmt.Sprintf("%d", len(skills)),
		"duration_ms": fmt.Sprintf("%.2f", float64(time.Since(start).Microseconds())/1000.0),
	})
	return out, enhancements
}

// resolveUncached embeds all uncached skills in one batched call, then fans
// out one similarity query per skill with an individual timeout. A failing
// skill degrades alone; siblings are unaffected and failed results are never
// written back to the cache.
func (u *Availability) resolveUncached(ctx context.Context, out []course.SkillQuery, uncached []pendingSkill) {
	texts := make([]string, len(uncached))
	for i, p := range uncached {
		texts[i] = p.text
	}

	vectors, err := u.embedder.Embed(ctx, texts)
	if err != nil || len(vectors) != len(uncached) {
		if u.logger != nil {
			u.logger.Printf("[Availability] embedding batch failed | skills=%d err=%v", len(uncached), err)
		}
		telemetry.Emit(u.sink, u.logger, telemetry.EventEmbeddingFailed, map[string]string{
			"batch_size": fmt.Sprintf("%d", len(uncached)),
		})
		for _, p := range uncached {
			out[p.idx].AvailabilityResult = course.Unavailable()
		}
		return
	}

	var wg sync.WaitGroup
	for i, p := range uncached {
		wg.Add(1)
		go func(p pendingSkill, vector []float32) {
			defer wg.Done()
			u.resolveOne(ctx, out, p, vector)
		}(p, vectors[i])
	}
	wg.Wait()
}

func (u *Availability) resolveOne(ctx context.Context, out []course.SkillQuery, p pendingSkill, vector []float32) {
	sctx, cancel := context.WithTimeout(ctx, u.opts.PerSkillTimeout)
	defer cancel()

	candidates, err := u.repo.Search(sctx, vector, u.opts.MinThreshold, p.cat, u.policy.TypeThresholdsFor(p.cat))
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Availability] skill lookup failed | skill=%q category=%s err=%v", out[p.idx].SkillName, p.cat, err)
		}
		telemetry.Emit(u.sink, u.logger, telemetry.EventSkillFailed, map[string]string{"category": string(p.cat)})
		out[p.idx].AvailabilityResult = course.Unavailable()
		return
	}

	result := u.buildResult(candidates, p.cat)
	out[p.idx].AvailabilityResult = result
	u.results.Set(p.key, result)
	telemetry.Emit(u.sink, u.logger, telemetry.EventSkillResolved, map[string]string{"category": string(p.cat)})
}

func (u *Availability) buildResult(candidates []course.Candidate, cat course.Category) course.AvailabilityResult {
	ids := u.strategy.Select(candidates, cat)

	byID := make(map[string]course.Candidate, len(candidates))
	for _, c := range candidates {
		if _, ok := byID[c.ID]; !ok {
			byID[c.ID] = c
		}
	}

	typeSet := make(map[course.ResourceType]struct{})
	details := make([]course.Detail, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			continue
		}
		typeSet[c.Type] = struct{}{}
		if u.opts.DetailedResults {
			details = append(details, course.Detail{
				ID:          c.ID,
				Type:        string(c.Type),
				Name:        c.Name,
				Provider:    c.Provider,
				Description: c.Description,
				Similarity:  c.Similarity,
			})
		}
	}

	courseTypes := make([]string, 0, len(typeSet))
	for _, rt := range course.ResourceTypes {
		if _, ok := typeSet[rt]; ok {
			courseTypes = append(courseTypes, string(rt))
		}
	}

	res := course.AvailabilityResult{
		HasAvailableCourses: len(ids) > 0,
		CourseCount:         len(ids),
		AvailableCourseIDs:  ids,
		TypeDiversity:       len(typeSet),
		CourseTypes:         courseTypes,
	}
	if u.opts.DetailedResults {
		res.Details = details
	}
	return res
}

var _ AvailabilityUsecase = (*Availability)(nil)
