package selection

import (
	"fmt"
	"testing"

	"course-match/internal/domain/course"
	"course-match/internal/domain/policy"
)

func makeCandidates(prefix string, rt course.ResourceType, n int, topSim float64) []course.Candidate {
	out := make([]course.Candidate, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, course.Candidate{
			ID:         fmt.Sprintf("%s%d", prefix, i+1),
			Type:       rt,
			Similarity: topSim - float64(i)*0.005,
			Name:       prefix,
		})
	}
	return out
}

func TestQuotaSelector_DeficitFilling(t *testing.T) {
	// SKILL: 25 courses (15 basic + 10 reserve), 3 projects against a quota
	// of 5, 0 certifications against a quota of 2. Total deficit 4 must be
	// covered by exactly 4 promoted reserve courses.
	cands := append(
		makeCandidates("c", course.TypeCourse, 25, 0.95),
		makeCandidates("p", course.TypeProject, 3, 0.93)...,
	)

	s := NewQuotaSelector(policy.Default())
	ids := s.Select(cands, course.CategorySkill)

	if len(ids) != 22 {
		t.Fatalf("expected 22 results (15 basic + 3 projects + 4 promoted), got %d", len(ids))
	}

	courses := 0
	for _, id := range ids {
		if id[0] == 'c' {
			courses++
		}
	}
	if courses != 19 {
		t.Fatalf("expected 19 courses (15 basic + 4 promoted), got %d", courses)
	}
}

func TestQuotaSelector_ResultSortedBySimilarity(t *testing.T) {
	cands := append(
		makeCandidates("c", course.TypeCourse, 20, 0.95),
		// Low-similarity project kept only to fill its quota.
		course.Candidate{ID: "p1", Type: course.TypeProject, Similarity: 0.51},
	)

	s := NewQuotaSelector(policy.Default())
	ids := s.Select(cands, course.CategorySkill)

	byID := make(map[string]float64, len(cands))
	for _, c := range cands {
		byID[c.ID] = c.Similarity
	}
	for i := 1; i < len(ids); i++ {
		if byID[ids[i-1]] < byID[ids[i]] {
			t.Fatalf("ids not similarity-descending at %d: %s(%f) before %s(%f)",
				i, ids[i-1], byID[ids[i-1]], ids[i], byID[ids[i]])
		}
	}
	if ids[len(ids)-1] != "p1" {
		t.Fatalf("lowest-similarity quota filler should rank last, got %s", ids[len(ids)-1])
	}
}

func TestQuotaSelector_PartialCompensation(t *testing.T) {
	// Deficit 4 (projects 3/5, certifications 0/2) but only 2 reserve
	// courses exist: partial compensation, no error.
	cands := append(
		makeCandidates("c", course.TypeCourse, 17, 0.95),
		makeCandidates("p", course.TypeProject, 3, 0.93)...,
	)

	s := NewQuotaSelector(policy.Default())
	ids := s.Select(cands, course.CategorySkill)

	if len(ids) != 20 {
		t.Fatalf("expected 20 results (15 basic + 3 projects + 2 promoted), got %d", len(ids))
	}
}

func TestQuotaSelector_NoReserveNoPromotion(t *testing.T) {
	cands := append(
		makeCandidates("c", course.TypeCourse, 10, 0.95),
		makeCandidates("p", course.TypeProject, 1, 0.93)...,
	)

	s := NewQuotaSelector(policy.Default())
	ids := s.Select(cands, course.CategorySkill)

	if len(ids) != 11 {
		t.Fatalf("expected 11 results with no reserve supply, got %d", len(ids))
	}
}

func TestQuotaSelector_ZeroSupplyTypeNeverInvented(t *testing.T) {
	cands := makeCandidates("p", course.TypeProject, 2, 0.9)

	s := NewQuotaSelector(policy.Default())
	ids := s.Select(cands, course.CategorySkill)

	if len(ids) != 2 {
		t.Fatalf("expected only the 2 real projects, got %d", len(ids))
	}
}

func TestQuotaSelector_Conservation(t *testing.T) {
	cands := append(
		makeCandidates("c", course.TypeCourse, 40, 0.99),
		append(
			makeCandidates("p", course.TypeProject, 8, 0.97),
			append(
				makeCandidates("ct", course.TypeCertification, 6, 0.96),
				append(
					makeCandidates("sp", course.TypeSpecialization, 4, 0.94),
					makeCandidates("dg", course.TypeDegree, 3, 0.92)...,
				)...,
			)...,
		)...,
	)

	input := make(map[string]struct{}, len(cands))
	for _, c := range cands {
		input[c.ID] = struct{}{}
	}

	for _, cat := range []course.Category{course.CategorySkill, course.CategoryField, course.CategoryDefault} {
		s := NewQuotaSelector(policy.Default())
		ids := s.Select(cands, cat)

		if len(ids) > MaxResults {
			t.Fatalf("category %s: %d results exceeds cap", cat, len(ids))
		}
		seen := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if _, ok := input[id]; !ok {
				t.Fatalf("category %s: id %s not in input", cat, id)
			}
			if _, dup := seen[id]; dup {
				t.Fatalf("category %s: duplicate id %s", cat, id)
			}
			seen[id] = struct{}{}
		}
	}
}

func TestQuotaSelector_Deterministic(t *testing.T) {
	cands := append(
		makeCandidates("c", course.TypeCourse, 30, 0.95),
		makeCandidates("p", course.TypeProject, 4, 0.9)...,
	)

	s := NewQuotaSelector(policy.Default())
	first := s.Select(cands, course.CategorySkill)
	for i := 0; i < 5; i++ {
		again := s.Select(cands, course.CategorySkill)
		if len(again) != len(first) {
			t.Fatalf("run %d: length changed", i)
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d: order changed at %d", i, j)
			}
		}
	}
}

func TestQuotaSelector_EmptyInput(t *testing.T) {
	s := NewQuotaSelector(policy.Default())
	ids := s.Select(nil, course.CategorySkill)
	if len(ids) != 0 {
		t.Fatalf("expected empty output, got %d", len(ids))
	}
}

func TestTopNSelector_CapAndOrder(t *testing.T) {
	cands := makeCandidates("c", course.TypeCourse, 40, 0.99)

	s := NewTopNSelector()
	ids := s.Select(cands, course.CategorySkill)

	if len(ids) != MaxResults {
		t.Fatalf("expected %d results, got %d", MaxResults, len(ids))
	}

	want := make([]string, 0, MaxResults)
	for i := 0; i < MaxResults; i++ {
		want = append(want, fmt.Sprintf("c%d", i+1))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("position %d: want %s got %s", i, want[i], ids[i])
		}
	}
}

func TestTopNSelector_DuplicateIDs(t *testing.T) {
	cands := []course.Candidate{
		{ID: "x", Type: course.TypeCourse, Similarity: 0.9},
		{ID: "x", Type: course.TypeCourse, Similarity: 0.8},
		{ID: "y", Type: course.TypeCourse, Similarity: 0.7},
	}

	s := NewTopNSelector()
	ids := s.Select(cands, course.CategoryDefault)
	if len(ids) != 2 || ids[0] != "x" || ids[1] != "y" {
		t.Fatalf("expected deduplicated [x y], got %v", ids)
	}
}
