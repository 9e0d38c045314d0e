package usecase

import (
	"course-match/internal/domain/course"
)

const (
	maxProjectsPerSkill       = 2
	maxCertificationsPerSkill = 4
	maxEnhancementDescription = 200
)

// ExtractEnhancements aggregates enhancement entries across a whole batch:
// only project, certification and specialization resources qualify, capped
// per skill at 2 projects and 4 certifications/specializations combined,
// deduplicated by id across skills with the last write winning.
func ExtractEnhancements(skills []course.SkillQuery) map[string]course.EnhancementEntry {
	out := make(map[string]course.EnhancementEntry)

	for _, sq := range skills {
		projects := 0
		certifications := 0
		for _, d := range sq.Details {
			switch course.ResourceType(d.Type) {
			case course.TypeProject:
				if projects >= maxProjectsPerSkill {
					continue
				}
				projects++
			case course.TypeCertification, course.TypeSpecialization:
				if certifications >= maxCertificationsPerSkill {
					continue
				}
				certifications++
			default:
				continue
			}

			out[d.ID] = course.EnhancementEntry{
				ID:           d.ID,
				Name:         d.Name,
				Provider:     d.Provider,
				Description:  truncate(d.Description, maxEnhancementDescription),
				RelatedSkill: sq.SkillName,
			}
		}
	}
	return out
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
