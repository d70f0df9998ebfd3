package service

import (
	"sync"

	"passby/internal/modules/feedback/domain"
)

// FeedbackService resolves the pattern for a feedback kind. Configuration
// may be re-applied at runtime when settings change, so access is guarded.
type FeedbackService struct {
	mu       sync.RWMutex
	enabled  bool
	patterns map[domain.Kind]domain.Pattern
}

func NewFeedbackService() *FeedbackService {
	return &FeedbackService{
		enabled:  true,
		patterns: domain.DefaultPatterns(),
	}
}

// Configure replaces the enabled flag and merges pattern overrides on top
// of the defaults. Invalid overrides are skipped.
func (s *FeedbackService) Configure(enabled bool, overrides map[string][]int) {
	patterns := domain.DefaultPatterns()
	for name, raw := range overrides {
		kind := domain.Kind(name)
		pattern := domain.Pattern(raw)
		if kind.Validate() != nil || pattern.Validate() != nil {
			continue
		}
		patterns[kind] = pattern
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
	s.patterns = patterns
}

// Resolve returns the pattern for kind and whether feedback should play at
// all.
func (s *FeedbackService) Resolve(kind domain.Kind, override domain.Pattern) (domain.Pattern, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.enabled {
		return nil, false
	}
	if override != nil {
		return override, true
	}
	if p, ok := s.patterns[kind]; ok {
		return p, true
	}
	return domain.Pattern{40}, true
}
