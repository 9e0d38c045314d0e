package repository

import (
	"context"
	"log"
	"strconv"
	"strings"

	"course-match/internal/database"
	"course-match/internal/domain/course"
	"course-match/internal/domain/policy"
)

// candidateLimit caps the raw candidate volume fetched per skill before
// quota selection runs.
const candidateLimit = 80

type CourseSearchRepository interface {
	Search(ctx context.Context, queryVector []float32, minThreshold float64, category course.Category, typeThresholds map[course.ResourceType]float64) ([]course.Candidate, error)
}

type PostgresCourseRepository struct {
	db     database.DB
	policy *policy.Table
	logger *log.Logger
}

func NewPostgresCourseRepository(db database.DB, table *policy.Table, logger *log.Logger) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db, policy: table, logger: logger}
}

// Search runs a cosine-similarity query against the learning_resources
// table (pgvector). Results are pre-filtered by minThreshold in SQL, then by
// the category threshold and any per-type overrides here. Rows missing an
// id or carrying an unknown type or out-of-range similarity are dropped at
// this boundary.
func (r *PostgresCourseRepository) Search(ctx context.Context, queryVector []float32, minThreshold float64, category course.Category, typeThresholds map[course.ResourceType]float64) ([]course.Candidate, error) {
	if len(queryVector) == 0 {
		return []course.Candidate{}, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, resource_type, name, provider, description,
		       1 - (embedding <=> $1::vector) AS similarity
		FROM learning_resources
		WHERE 1 - (embedding <=> $1::vector) >= $2
		ORDER BY embedding <=> $1::vector ASC
		LIMIT $3`,
		vectorLiteral(queryVector), minThreshold, candidateLimit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categoryThreshold := minThreshold
	if r.policy != nil {
		if t := r.policy.ThresholdFor(category); t > categoryThreshold {
			categoryThreshold = t
		}
	}

	out := make([]course.Candidate, 0, candidateLimit)
	dropped := 0
	for rows.Next() {
		var c course.Candidate
		var rt string
		if err := rows.Scan(&c.ID, &rt, &c.Name, &c.Provider, &c.Description, &c.Similarity); err != nil {
			return nil, err
		}
		c.Type = course.ResourceType(strings.ToLower(strings.TrimSpace(rt)))

		if !c.Valid() {
			dropped++
			continue
		}
		if c.Similarity < categoryThreshold {
			continue
		}
		if min, ok := typeThresholds[c.Type]; ok && c.Similarity < min {
			continue
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if dropped > 0 && r.logger != nil {
		r.logger.Printf("[CourseSearch] dropped malformed candidates | category=%s count=%d", category, dropped)
	}
	return out, nil
}

func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

var _ CourseSearchRepository = (*PostgresCourseRepository)(nil)
