package contract

import "github.com/standup-bot/slack-standup-bot/internal/domain/entity"

// ScheduleStore holds at most one standup schedule per team, in memory.
// Schedules do not survive a restart. Operations never fail; validation
// happens upstream during schedule construction.
type ScheduleStore interface {
	// Upsert inserts or replaces the schedule for its TeamID. The
	// previous schedule, if any, is silently discarded.
	Upsert(schedule *entity.Schedule)

	// Get returns the schedule for the team, or nil if none exists.
	Get(teamID string) *entity.Schedule

	// ListAll returns a point-in-time snapshot of all schedules.
	// Order is unspecified.
	ListAll() []*entity.Schedule
}
