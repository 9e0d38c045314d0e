package dto

import "course-match/internal/domain/course"

type SkillQueryRequest struct {
	SkillName     string `json:"skill_name"`
	Description   string `json:"description"`
	SkillCategory string `json:"skill_category"`
}

type CheckAvailabilityRequest struct {
	Skills []SkillQueryRequest `json:"skills"`
}

type CourseDetailResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Provider    string  `json:"provider"`
	Description string  `json:"description"`
	Similarity  float64 `json:"similarity"`
}

type SkillAvailabilityResponse struct {
	SkillName           string                 `json:"skill_name"`
	Description         string                 `json:"description"`
	SkillCategory       string                 `json:"skill_category"`
	HasAvailableCourses bool                   `json:"has_available_courses"`
	CourseCount         int                    `json:"course_count"`
	AvailableCourseIDs  []string               `json:"available_course_ids"`
	TypeDiversity       int                    `json:"type_diversity"`
	CourseTypes         []string               `json:"course_types"`
	Details             []CourseDetailResponse `json:"course_details,omitempty"`
}

type EnhancementResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Provider     string `json:"provider"`
	Description  string `json:"description"`
	RelatedSkill string `json:"related_skill"`
}

type CheckAvailabilityResponse struct {
	Skills       []SkillAvailabilityResponse    `json:"skills"`
	Enhancements map[string]EnhancementResponse `json:"enhancements"`
}

func NewCheckAvailabilityResponse(skills []course.SkillQuery, enhancements map[string]course.EnhancementEntry) CheckAvailabilityResponse {
	out := CheckAvailabilityResponse{
		Skills:       make([]SkillAvailabilityResponse, 0, len(skills)),
		Enhancements: make(map[string]EnhancementResponse, len(enhancements)),
	}

	for _, sq := range skills {
		item := SkillAvailabilityResponse{
			SkillName:           sq.SkillName,
			Description:         sq.Description,
			SkillCategory:       sq.Category,
			HasAvailableCourses: sq.HasAvailableCourses,
			CourseCount:         sq.CourseCount,
			AvailableCourseIDs:  sq.AvailableCourseIDs,
			TypeDiversity:       sq.TypeDiversity,
			CourseTypes:         sq.CourseTypes,
		}
		if item.AvailableCourseIDs == nil {
			item.AvailableCourseIDs = []string{}
		}
		if item.CourseTypes == nil {
			item.CourseTypes = []string{}
		}
		for _, d := range sq.Details {
			item.Details = append(item.Details, CourseDetailResponse{
				ID:          d.ID,
				Type:        d.Type,
				Name:        d.Name,
				Provider:    d.Provider,
				Description: d.Description,
				Similarity:  d.Similarity,
			})
		}
		out.Skills = append(out.Skills, item)
	}

	for id, e := range enhancements {
		out.Enhancements[id] = EnhancementResponse{
			ID:           e.ID,
			Name:         e.Name,
			Provider:     e.Provider,
			Description:  e.Description,
			RelatedSkill: e.RelatedSkill,
		}
	}
	return out
}
