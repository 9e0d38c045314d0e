package telemetry

import "log"

// Sink receives fire-and-forget events. Implementations must never block
// request handling; failures are swallowed by Emit.
type Sink interface {
	Record(event string, attrs map[string]string)
}

// Event names emitted by the availability pipeline.
const (
	EventCacheHit        = "cache_hit"
	EventCacheMiss       = "cache_miss"
	EventSkillResolved   = "skill_resolved"
	EventSkillFailed     = "skill_lookup_failed"
	EventEmbeddingFailed = "embedding_batch_failed"
	EventBatchCompleted  = "availability_batch_completed"
)

// Emit records an event, swallowing panics from the sink: telemetry must
// never take down a lookup.
func Emit(s Sink, logger *log.Logger, event string, attrs map[string]string) {
	if s == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && logger != nil {
			logger.Printf("[Telemetry] record failed | event=%s err=%v", event, r)
		}
	}()
	s.Record(event, attrs)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Record(string, map[string]string) {}

var _ Sink = NopSink{}
