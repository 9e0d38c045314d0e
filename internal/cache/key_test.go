package cache

import (
	"testing"

	"course-match/internal/domain/course"
)

func TestKey_Deterministic(t *testing.T) {
	a := Key("rust systems programming", course.CategorySkill, 0.5, "coursera")
	b := Key("rust systems programming", course.CategorySkill, 0.5, "coursera")
	if a != b {
		t.Fatalf("expected identical keys, got %q and %q", a, b)
	}
}

func TestKey_Shape(t *testing.T) {
	k := Key("go concurrency", course.CategoryDefault, 0.4, "coursera")
	if len(k) != 16 {
		t.Fatalf("expected 16 hex chars, got %d (%q)", len(k), k)
	}
	for _, r := range k {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			t.Fatalf("non-hex char %q in key %q", r, k)
		}
	}
}

func TestKey_CategorySensitive(t *testing.T) {
	a := Key("machine learning", course.CategorySkill, 0.5, "coursera")
	b := Key("machine learning", course.CategoryField, 0.5, "coursera")
	if a == b {
		t.Fatalf("expected different keys for SKILL vs FIELD, both %q", a)
	}
}

func TestKey_ThresholdRoundedToTwoDecimals(t *testing.T) {
	a := Key("sql", course.CategorySkill, 0.5, "coursera")
	b := Key("sql", course.CategorySkill, 0.501, "coursera")
	if a != b {
		t.Fatalf("expected float noise below 2 decimals to collapse, got %q and %q", a, b)
	}

	c := Key("sql", course.CategorySkill, 0.51, "coursera")
	if a == c {
		t.Fatalf("expected 0.50 and 0.51 to differ")
	}
}

func TestKey_PlatformSensitive(t *testing.T) {
	a := Key("sql", course.CategorySkill, 0.5, "coursera")
	b := Key("sql", course.CategorySkill, 0.5, "udemy")
	if a == b {
		t.Fatalf("expected different keys per platform")
	}
}
