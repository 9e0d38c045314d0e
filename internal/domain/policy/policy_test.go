package policy

import (
	"testing"

	"course-match/internal/domain/course"
)

func TestThresholdFor_KnownCategories(t *testing.T) {
	tbl := Default()

	if got := tbl.ThresholdFor(course.CategorySkill); got != 0.50 {
		t.Fatalf("SKILL threshold: got %f", got)
	}
	if got := tbl.ThresholdFor(course.CategoryField); got != 0.45 {
		t.Fatalf("FIELD threshold: got %f", got)
	}
}

func TestThresholdFor_UnknownFallsBackToDefault(t *testing.T) {
	tbl := Default()
	if got := tbl.ThresholdFor(course.Category("BOGUS")); got != tbl.ThresholdFor(course.CategoryDefault) {
		t.Fatalf("expected DEFAULT fallback, got %f", got)
	}
}

func TestBasicQuotaFor_UnknownCategoryAndType(t *testing.T) {
	tbl := Default()

	q := tbl.BasicQuotaFor(course.Category("BOGUS"))
	if q[course.TypeCourse] != 10 {
		t.Fatalf("expected DEFAULT course quota 10, got %d", q[course.TypeCourse])
	}
	if q[course.ResourceType("bootcamp")] != 0 {
		t.Fatalf("unknown type must default to zero quota")
	}
}

func TestQuotaFor_IncludesCourseReserve(t *testing.T) {
	tbl := Default()

	basic := tbl.BasicQuotaFor(course.CategorySkill)
	extended := tbl.QuotaFor(course.CategorySkill)

	if extended[course.TypeCourse] != basic[course.TypeCourse]+tbl.CourseReserveFor(course.CategorySkill) {
		t.Fatalf("extended course quota must add the reserve: basic=%d extended=%d",
			basic[course.TypeCourse], extended[course.TypeCourse])
	}
	if extended[course.TypeProject] != basic[course.TypeProject] {
		t.Fatalf("non-course quotas must be unchanged in the extended view")
	}
}

func TestBasicQuotaFor_ReturnsCopy(t *testing.T) {
	tbl := Default()
	q := tbl.BasicQuotaFor(course.CategorySkill)
	q[course.TypeCourse] = 999

	if tbl.BasicQuotaFor(course.CategorySkill)[course.TypeCourse] == 999 {
		t.Fatalf("quota table must be immutable after load")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("THRESHOLD_SKILL", "0.66")
	t.Setenv("QUOTA_SKILL_PROJECT", "7")
	t.Setenv("QUOTA_SKILL_COURSE_RESERVE", "3")
	t.Setenv("THRESHOLD_FIELD_DEGREE", "0.70")

	tbl := FromEnv()

	if got := tbl.ThresholdFor(course.CategorySkill); got != 0.66 {
		t.Fatalf("threshold override not applied: %f", got)
	}
	if got := tbl.BasicQuotaFor(course.CategorySkill)[course.TypeProject]; got != 7 {
		t.Fatalf("quota override not applied: %d", got)
	}
	if got := tbl.CourseReserveFor(course.CategorySkill); got != 3 {
		t.Fatalf("reserve override not applied: %d", got)
	}
	if got := tbl.TypeThresholdsFor(course.CategoryField)[course.TypeDegree]; got != 0.70 {
		t.Fatalf("per-type threshold override not applied: %f", got)
	}
}

func TestFromEnv_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("THRESHOLD_SKILL", "not-a-number")
	t.Setenv("QUOTA_SKILL_PROJECT", "-4")

	tbl := FromEnv()

	if got := tbl.ThresholdFor(course.CategorySkill); got != 0.50 {
		t.Fatalf("invalid threshold must keep default, got %f", got)
	}
	if got := tbl.BasicQuotaFor(course.CategorySkill)[course.TypeProject]; got != 5 {
		t.Fatalf("negative quota must keep default, got %d", got)
	}
}
