package poller

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zjregee/usagewidget/internal/models"
)

var ErrNotYetAvailable = errors.New("no usage data available yet")

type stateEntry struct {
	snapshot  models.UsageSnapshot
	updatedAt time.Time
}

// State holds the last primary snapshot that was fetched successfully.
// Writes serialize on mu; readers load the current entry without locking.
type State struct {
	mu     sync.Mutex
	latest atomic.Pointer[stateEntry]
}

func NewState() *State {
	return &State{}
}

func (s *State) Set(snapshot models.UsageSnapshot, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest.Store(&stateEntry{snapshot: snapshot, updatedAt: at})
}

func (s *State) Latest() (models.UsageSnapshot, error) {
	entry := s.latest.Load()
	if entry == nil {
		return models.UsageSnapshot{}, ErrNotYetAvailable
	}
	return entry.snapshot, nil
}

// UpdatedAt returns the zero time until the first successful cycle.
func (s *State) UpdatedAt() time.Time {
	entry := s.latest.Load()
	if entry == nil {
		return time.Time{}
	}
	return entry.updatedAt
}
