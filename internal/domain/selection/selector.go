package selection

import (
	"sort"

	"course-match/internal/domain/course"
	"course-match/internal/domain/policy"
)

// MaxResults caps the ranked id list produced for one skill.
const MaxResults = 25

// Strategy turns a threshold-filtered candidate list into the final ranked
// id set for one skill. Implementations must be deterministic and return
// only ids present in the input.
type Strategy interface {
	Select(candidates []course.Candidate, category course.Category) []string
}

// QuotaSelector implements deficit-filling allocation: every non-course type
// gets up to its basic quota, and surplus course supply (the reserve slice)
// compensates for shortages in the other types.
type QuotaSelector struct {
	table *policy.Table
}

func NewQuotaSelector(table *policy.Table) *QuotaSelector {
	return &QuotaSelector{table: table}
}

func (s *QuotaSelector) Select(candidates []course.Candidate, category course.Category) []string {
	if len(candidates) == 0 {
		return []string{}
	}

	sorted := sortBySimilarity(candidates)
	byType := make(map[course.ResourceType][]course.Candidate, len(course.ResourceTypes))
	for _, c := range sorted {
		byType[c.Type] = append(byType[c.Type], c)
	}

	basic := s.table.BasicQuotaFor(category)
	reserveQuota := s.table.CourseReserveFor(category)

	selected := make([]course.Candidate, 0, MaxResults)
	deficit := 0

	for _, rt := range course.ResourceTypes {
		if rt == course.TypeCourse {
			continue
		}
		quota := basic[rt]
		if quota <= 0 {
			continue
		}
		pool := byType[rt]
		take := quota
		if take > len(pool) {
			take = len(pool)
			deficit += quota - len(pool)
		}
		selected = append(selected, pool[:take]...)
	}

	courses := byType[course.TypeCourse]
	courseBasic := basic[course.TypeCourse]
	if courseBasic > len(courses) {
		courseBasic = len(courses)
	}
	selected = append(selected, courses[:courseBasic]...)

	reserve := courses[courseBasic:]
	if len(reserve) > reserveQuota {
		reserve = reserve[:reserveQuota]
	}
	if deficit > 0 && len(reserve) > 0 {
		promote := deficit
		if promote > len(reserve) {
			promote = len(reserve)
		}
		selected = append(selected, reserve[:promote]...)
	}

	// A promoted reserve course may outrank a low-similarity item kept only
	// to fill its quota.
	selected = sortBySimilarity(selected)
	if len(selected) > MaxResults {
		selected = selected[:MaxResults]
	}

	return dedupeIDs(selected)
}

// TopNSelector ignores quotas entirely: sort by similarity, take the top 25.
// Used where type fairness is unneeded.
type TopNSelector struct{}

func NewTopNSelector() *TopNSelector {
	return &TopNSelector{}
}

func (s *TopNSelector) Select(candidates []course.Candidate, _ course.Category) []string {
	sorted := sortBySimilarity(candidates)
	if len(sorted) > MaxResults {
		sorted = sorted[:MaxResults]
	}
	return dedupeIDs(sorted)
}

func dedupeIDs(candidates []course.Candidate) []string {
	ids := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		ids = append(ids, c.ID)
	}
	return ids
}

func sortBySimilarity(candidates []course.Candidate) []course.Candidate {
	out := make([]course.Candidate, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	return out
}

var (
	_ Strategy = (*QuotaSelector)(nil)
	_ Strategy = (*TopNSelector)(nil)
)
