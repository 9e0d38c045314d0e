package policy

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"course-match/internal/domain/course"
)

// Table holds the per-category similarity thresholds and per-type quotas.
// It is built once at startup and immutable afterwards; lookups for unknown
// categories fall back to DEFAULT and unknown types to zero.
type Table struct {
	thresholds     map[course.Category]float64
	typeThresholds map[course.Category]map[course.ResourceType]float64
	basic          map[course.Category]map[course.ResourceType]int
	courseReserve  map[course.Category]int
}

func Default() *Table {
	return &Table{
		thresholds: map[course.Category]float64{
			course.CategorySkill:   0.50,
			course.CategoryField:   0.45,
			course.CategoryDefault: 0.40,
		},
		typeThresholds: map[course.Category]map[course.ResourceType]float64{},
		basic: map[course.Category]map[course.ResourceType]int{
			course.CategorySkill: {
				course.TypeCourse:         15,
				course.TypeProject:        5,
				course.TypeCertification:  2,
				course.TypeSpecialization: 0,
				course.TypeDegree:         0,
			},
			course.CategoryField: {
				course.TypeCourse:         5,
				course.TypeProject:        2,
				course.TypeCertification:  2,
				course.TypeSpecialization: 8,
				course.TypeDegree:         5,
			},
			course.CategoryDefault: {
				course.TypeCourse:         10,
				course.TypeProject:        3,
				course.TypeCertification:  2,
				course.TypeSpecialization: 2,
				course.TypeDegree:         1,
			},
		},
		courseReserve: map[course.Category]int{
			course.CategorySkill:   10,
			course.CategoryField:   5,
			course.CategoryDefault: 10,
		},
	}
}

// FromEnv overlays the defaults with THRESHOLD_<CATEGORY>,
// THRESHOLD_<CATEGORY>_<TYPE>, QUOTA_<CATEGORY>_<TYPE> and
// QUOTA_<CATEGORY>_COURSE_RESERVE environment variables.
func FromEnv() *Table {
	t := Default()

	for _, cat := range []course.Category{course.CategorySkill, course.CategoryField, course.CategoryDefault} {
		if v, ok := envFloat(fmt.Sprintf("THRESHOLD_%s", cat)); ok {
			t.thresholds[cat] = v
		}
		for _, rt := range course.ResourceTypes {
			suffix := strings.ToUpper(string(rt))
			if v, ok := envFloat(fmt.Sprintf("THRESHOLD_%s_%s", cat, suffix)); ok {
				if t.typeThresholds[cat] == nil {
					t.typeThresholds[cat] = map[course.ResourceType]float64{}
				}
				t.typeThresholds[cat][rt] = v
			}
			if v, ok := envInt(fmt.Sprintf("QUOTA_%s_%s", cat, suffix)); ok {
				t.basic[cat][rt] = v
			}
		}
		if v, ok := envInt(fmt.Sprintf("QUOTA_%s_COURSE_RESERVE", cat)); ok {
			t.courseReserve[cat] = v
		}
	}
	return t
}

func (t *Table) ThresholdFor(cat course.Category) float64 {
	if v, ok := t.thresholds[cat]; ok {
		return v
	}
	return t.thresholds[course.CategoryDefault]
}

// TypeThresholdsFor returns per-type threshold overrides for the category.
// Empty by default; populated only via environment overrides.
func (t *Table) TypeThresholdsFor(cat course.Category) map[course.ResourceType]float64 {
	m, ok := t.typeThresholds[cat]
	if !ok {
		m = t.typeThresholds[course.CategoryDefault]
	}
	out := make(map[course.ResourceType]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// BasicQuotaFor returns the always-included quota per type.
func (t *Table) BasicQuotaFor(cat course.Category) map[course.ResourceType]int {
	m, ok := t.basic[cat]
	if !ok {
		m = t.basic[course.CategoryDefault]
	}
	out := make(map[course.ResourceType]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// QuotaFor returns the extended quota per type: the course quota includes
// the reserve slice on top of the basic one.
func (t *Table) QuotaFor(cat course.Category) map[course.ResourceType]int {
	out := t.BasicQuotaFor(cat)
	out[course.TypeCourse] += t.CourseReserveFor(cat)
	return out
}

func (t *Table) CourseReserveFor(cat course.Category) int {
	if v, ok := t.courseReserve[cat]; ok {
		return v
	}
	return t.courseReserve[course.CategoryDefault]
}

func envFloat(key string) (float64, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func envInt(key string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
