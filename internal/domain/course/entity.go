package course

import "strings"

type Category string

const (
	CategorySkill   Category = "SKILL"
	CategoryField   Category = "FIELD"
	CategoryDefault Category = "DEFAULT"
)

func NormalizeCategory(raw string) Category {
	switch Category(strings.ToUpper(strings.TrimSpace(raw))) {
	case CategorySkill:
		return CategorySkill
	case CategoryField:
		return CategoryField
	default:
		return CategoryDefault
	}
}

type ResourceType string

const (
	TypeCourse         ResourceType = "course"
	TypeProject        ResourceType = "project"
	TypeCertification  ResourceType = "certification"
	TypeSpecialization ResourceType = "specialization"
	TypeDegree         ResourceType = "degree"
)

// ResourceTypes lists every known type in a fixed order so quota walks
// are deterministic.
var ResourceTypes = []ResourceType{
	TypeCourse,
	TypeProject,
	TypeCertification,
	TypeSpecialization,
	TypeDegree,
}

func KnownResourceType(t ResourceType) bool {
	switch t {
	case TypeCourse, TypeProject, TypeCertification, TypeSpecialization, TypeDegree:
		return true
	default:
		return false
	}
}

type Candidate struct {
	ID          string
	Type        ResourceType
	Similarity  float64
	Name        string
	Provider    string
	Description string
}

// Valid reports whether a candidate carries the required fields.
// Invalid rows are dropped at the datastore boundary, never downstream.
func (c Candidate) Valid() bool {
	if strings.TrimSpace(c.ID) == "" {
		return false
	}
	if !KnownResourceType(c.Type) {
		return false
	}
	if c.Similarity < 0 || c.Similarity > 1 {
		return false
	}
	return true
}

type Detail struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Provider    string  `json:"provider"`
	Description string  `json:"description"`
	Similarity  float64 `json:"similarity"`
}

type AvailabilityResult struct {
	HasAvailableCourses bool     `json:"has_available_courses"`
	CourseCount         int      `json:"course_count"`
	AvailableCourseIDs  []string `json:"available_course_ids"`
	TypeDiversity       int      `json:"type_diversity"`
	CourseTypes         []string `json:"course_types"`
	Details             []Detail `json:"course_details,omitempty"`
}

// Clone returns a deep copy so cache reads never hand out live slices.
func (r AvailabilityResult) Clone() AvailabilityResult {
	out := r
	if r.AvailableCourseIDs != nil {
		out.AvailableCourseIDs = make([]string, len(r.AvailableCourseIDs))
		copy(out.AvailableCourseIDs, r.AvailableCourseIDs)
	}
	if r.CourseTypes != nil {
		out.CourseTypes = make([]string, len(r.CourseTypes))
		copy(out.CourseTypes, r.CourseTypes)
	}
	if r.Details != nil {
		out.Details = make([]Detail, len(r.Details))
		copy(out.Details, r.Details)
	}
	return out
}

// Unavailable is the degraded result used for failed or timed-out lookups.
// "Availability unknown" and "confirmed zero courses" are intentionally the
// same shape.
func Unavailable() AvailabilityResult {
	return AvailabilityResult{
		HasAvailableCourses: false,
		CourseCount:         0,
		AvailableCourseIDs:  []string{},
		CourseTypes:         []string{},
	}
}

type SkillQuery struct {
	SkillName   string `json:"skill_name"`
	Description string `json:"description"`
	Category    string `json:"skill_category"`

	AvailabilityResult
}

type EnhancementEntry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Provider     string `json:"provider"`
	Description  string `json:"description"`
	RelatedSkill string `json:"related_skill"`
}
