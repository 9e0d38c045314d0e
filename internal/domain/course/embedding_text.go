package course

import "strings"

// EmbeddingText builds the text embedded for a skill query. The same string
// feeds both the cache key and the real similarity-search vector, so cache
// identity always tracks query identity.
func EmbeddingText(q SkillQuery) string {
	name := strings.TrimSpace(q.SkillName)
	desc := strings.TrimSpace(q.Description)

	switch NormalizeCategory(q.Category) {
	case CategorySkill:
		return joinNonEmpty(name, "online course tutorial project certification", desc)
	case CategoryField:
		return joinNonEmpty(name, "specialization degree program curriculum", desc)
	default:
		return joinNonEmpty(name, desc)
	}
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, " ")
}
