package contract

import (
	"context"

	"github.com/standup-bot/slack-standup-bot/internal/domain/entity"
)

// SetupInput carries the raw texts collected by the setup modal plus the
// identifiers of where the request came from.
type SetupInput struct {
	TeamID          string
	RequesterID     string
	OriginChannelID string

	ChannelName string
	StandupTime string
	Details     string
	TeamName    string
}

type StandupService interface {
	// SetupStandup validates the raw inputs, stores the resulting
	// schedule and sends the one-shot confirmation and notice messages.
	SetupStandup(ctx context.Context, input SetupInput) (*entity.Schedule, error)

	// GetSchedule returns the team's current schedule, or nil.
	GetSchedule(teamID string) *entity.Schedule

	// ReminderCount returns how many reminders were delivered for the team.
	ReminderCount(teamID string) (int64, error)
}

type Ticker interface {
	Start()
	Stop()
}
