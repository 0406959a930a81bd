package logging

// DefaultProgressInterval is how many aligner rows pass between progress lines.
const DefaultProgressInterval = 20

// ProgressSampler suppresses repetitive progress logs. It emits once per
// interval of completed units and always on the final one.
type ProgressSampler struct {
	interval   int
	lastBucket int
}

// NewProgressSampler constructs a sampler that emits every interval units
// (DefaultProgressInterval when interval is not positive).
func NewProgressSampler(interval int) *ProgressSampler {
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	return &ProgressSampler{interval: interval, lastBucket: -1}
}

// ShouldLog reports whether progress at done of total should be logged.
// A nil sampler logs everything.
func (s *ProgressSampler) ShouldLog(done, total int) bool {
	if s == nil {
		return true
	}
	if done < 0 {
		return false
	}
	if total > 0 && done >= total {
		if s.lastBucket == -2 {
			return false
		}
		s.lastBucket = -2
		return true
	}
	if s.lastBucket == -2 {
		return false
	}
	bucket := done / s.interval
	if bucket > s.lastBucket {
		s.lastBucket = bucket
		return true
	}
	return false
}
