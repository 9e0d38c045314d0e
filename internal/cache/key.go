package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"course-match/internal/domain/course"
)

const keyLength = 16

// Key derives a stable content key for one skill lookup. The embedding text
// must be the exact string sent to the embedding provider; the threshold is
// fixed to two decimals so float noise cannot split the keyspace.
func Key(embeddingText string, category course.Category, threshold float64, platform string) string {
	payload := strings.Join([]string{
		embeddingText,
		string(category),
		fmt.Sprintf("%.2f", threshold),
		strings.TrimSpace(platform),
	}, "|")

	sum := md5.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])[:keyLength]
}

// TextKey hashes a bare string the same way, used for embedding-vector
// cache entries.
func TextKey(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])[:keyLength]
}
