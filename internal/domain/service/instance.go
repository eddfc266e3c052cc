package service

import (
	"time"

	"github.com/standup-bot/slack-standup-bot/internal/domain/contract"
)

// Options tunes the scheduler behavior. The zero value reproduces the
// historical behavior: reminders repeat every tick inside the window and
// schedules are not re-armed after they fire.
type Options struct {
	// Clock overrides the system clock. Nil means time.Now.
	Clock contract.Clock

	// NotifyOncePerWindow sends at most one reminder per occurrence
	// instead of one per tick inside the window.
	NotifyOncePerWindow bool

	// RearmDaily pushes a schedule's fire time forward by whole days
	// once it has passed, so the standup recurs every day.
	RearmDaily bool
}

type Instance struct {
	Standup   *standupService
	Scheduler *scheduler
}

func NewInstance(dm contract.DataManager, scheduleStore contract.ScheduleStore, slackClient contract.SlackClient, opts Options) *Instance {
	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}

	return &Instance{
		Standup:   newStandup(dm, scheduleStore, slackClient, clock),
		Scheduler: newScheduler(dm, scheduleStore, slackClient, clock, opts),
	}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
