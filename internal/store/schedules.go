package store

import (
	"sync"

	"github.com/standup-bot/slack-standup-bot/internal/domain/contract"
	"github.com/standup-bot/slack-standup-bot/internal/domain/entity"
)

// ScheduleStore is the in-memory implementation of contract.ScheduleStore.
// It is owned by main and handed to both the setup flow and the scheduler,
// which may touch it concurrently.
type ScheduleStore struct {
	mu        sync.RWMutex
	schedules map[string]entity.Schedule
}

func New() *ScheduleStore {
	return &ScheduleStore{
		schedules: make(map[string]entity.Schedule),
	}
}

var _ contract.ScheduleStore = (*ScheduleStore)(nil)

func (s *ScheduleStore) Upsert(schedule *entity.Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy so callers can't mutate the entry behind our back.
	s.schedules[schedule.TeamID] = *schedule
}

func (s *ScheduleStore) Get(teamID string) *entity.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedule, ok := s.schedules[teamID]
	if !ok {
		return nil
	}
	return &schedule
}

func (s *ScheduleStore) ListAll() []*entity.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]*entity.Schedule, 0, len(s.schedules))
	for teamID := range s.schedules {
		schedule := s.schedules[teamID]
		snapshot = append(snapshot, &schedule)
	}
	return snapshot
}
