package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"github.com/standup-bot/slack-standup-bot/internal/domain"
	"github.com/standup-bot/slack-standup-bot/internal/domain/contract"
	"github.com/standup-bot/slack-standup-bot/internal/domain/entity"
)

type standupService struct {
	dm            contract.DataManager
	scheduleStore contract.ScheduleStore
	slackClient   contract.SlackClient
	clock         contract.Clock
}

func newStandup(dm contract.DataManager, scheduleStore contract.ScheduleStore, slackClient contract.SlackClient, clock contract.Clock) *standupService {
	return &standupService{
		dm:            dm,
		scheduleStore: scheduleStore,
		slackClient:   slackClient,
		clock:         clock,
	}
}

var _ contract.StandupService = (*standupService)(nil)

// SetupStandup resolves the channel, parses the standup time and replaces
// the team's schedule. Validation errors (TargetNotFoundError,
// ErrInvalidTimeFormat) are returned to the caller for immediate user
// feedback; the two one-shot messages are best-effort.
func (s *standupService) SetupStandup(ctx context.Context, input contract.SetupInput) (*entity.Schedule, error) {
	channel, err := s.resolveChannel(ctx, input.ChannelName)
	if err != nil {
		return nil, err
	}

	fireTime, err := s.buildFireTime(input.StandupTime)
	if err != nil {
		return nil, err
	}

	schedule := &entity.Schedule{
		TeamID:      input.TeamID,
		ChannelID:   channel.ID,
		ChannelName: channel.Name,
		FireTime:    fireTime,
		Description: input.Details,
		TeamLabel:   input.TeamName,
		CreatedAt:   s.clock.Now(),
	}

	s.scheduleStore.Upsert(schedule)

	s.sendSetupMessages(ctx, input, schedule)

	return schedule, nil
}

// resolveChannel looks the name up among the channels visible to the bot,
// ignoring case. Pagination follows the cursor until the name is found or
// the list is exhausted.
func (s *standupService) resolveChannel(ctx context.Context, channelName string) (*slack.Channel, error) {
	wanted := strings.ToLower(strings.TrimSpace(channelName))

	params := &slack.GetConversationsParameters{
		ExcludeArchived: true,
		Limit:           200,
		Types:           []string{"public_channel", "private_channel"},
	}

	for {
		channels, nextCursor, err := s.slackClient.GetConversationsContext(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("failed to list channels: %w", err)
		}

		for i := range channels {
			if strings.ToLower(channels[i].Name) == wanted {
				return &channels[i], nil
			}
		}

		if nextCursor == "" {
			return nil, &domain.TargetNotFoundError{Name: channelName}
		}
		params.Cursor = nextCursor
	}
}

// buildFireTime combines the HH:MM input with today's date. A time that
// already passed rolls over to tomorrow; a time equal to now is due now.
func (s *standupService) buildFireTime(timeText string) (time.Time, error) {
	parsed, err := time.Parse(domain.TimeLayout, strings.TrimSpace(timeText))
	if err != nil {
		return time.Time{}, domain.ErrInvalidTimeFormat
	}

	now := s.clock.Now()
	fireTime := time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if fireTime.Before(now) {
		fireTime = fireTime.Add(24 * time.Hour)
	}

	return fireTime, nil
}

// sendSetupMessages delivers the two one-shot messages: an ephemeral
// confirmation to the requester and a "scheduled" notice to the resolved
// channel. Failures are logged, never surfaced; the schedule is already
// stored at this point.
func (s *standupService) sendSetupMessages(ctx context.Context, input contract.SetupInput, schedule *entity.Schedule) {
	at := schedule.FireTime.Format(domain.TimeLayout)

	msgCtx, cancel := context.WithTimeout(ctx, domain.DeliveryTimeout)
	defer cancel()

	confirmation := fmt.Sprintf("Standup for team %q is set at %s.", schedule.TeamLabel, at)
	if _, err := s.slackClient.PostEphemeralContext(msgCtx, input.OriginChannelID, input.RequesterID,
		slack.MsgOptionText(confirmation, false)); err != nil {
		log.Printf("Failed to send setup confirmation to user %s: %v", input.RequesterID, err)
	}

	notice := fmt.Sprintf("Standup Reminder: A standup is scheduled for %s.", at)
	if _, _, err := s.slackClient.PostMessageContext(msgCtx, schedule.ChannelID,
		slack.MsgOptionText(notice, false)); err != nil {
		log.Printf("Failed to send scheduled notice to channel %s: %v", schedule.ChannelID, err)
		return
	}

	if err := s.dm.Delivery().Create(&entity.Delivery{
		TeamID:    schedule.TeamID,
		ChannelID: schedule.ChannelID,
		TeamLabel: schedule.TeamLabel,
		Kind:      entity.DeliveryKindNotice,
		SentAt:    s.clock.Now(),
	}); err != nil {
		log.Printf("Failed to record scheduled notice for team %s: %v", schedule.TeamID, err)
	}
}

func (s *standupService) GetSchedule(teamID string) *entity.Schedule {
	return s.scheduleStore.Get(teamID)
}

func (s *standupService) ReminderCount(teamID string) (int64, error) {
	return s.dm.Delivery().CountByTeamID(teamID, entity.DeliveryKindReminder)
}
