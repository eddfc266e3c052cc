package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/slack-go/slack"
	"github.com/standup-bot/slack-standup-bot/internal/domain"
	"github.com/standup-bot/slack-standup-bot/internal/domain/contract"
	"github.com/standup-bot/slack-standup-bot/internal/domain/entity"
)

// scheduler runs the 1-minute evaluation loop. Each tick it snapshots the
// schedule store and delivers a reminder for every schedule inside its
// 15-minute window. There is no stored "fired" state: whether a schedule
// is due is re-derived from the clock on every tick.
type scheduler struct {
	dm            contract.DataManager
	scheduleStore contract.ScheduleStore
	slackClient   contract.SlackClient
	clock         contract.Clock
	notifyOnce    bool
	rearmDaily    bool

	// lastNotified maps teamID to the fire time already notified,
	// consulted only when notifyOnce is set.
	lastNotified map[string]time.Time

	stopChan chan struct{}
	inFlight sync.WaitGroup
	running  bool
}

func newScheduler(dm contract.DataManager, scheduleStore contract.ScheduleStore, slackClient contract.SlackClient, clock contract.Clock, opts Options) *scheduler {
	return &scheduler{
		dm:            dm,
		scheduleStore: scheduleStore,
		slackClient:   slackClient,
		clock:         clock,
		notifyOnce:    opts.NotifyOncePerWindow,
		rearmDaily:    opts.RearmDaily,
		lastNotified:  make(map[string]time.Time),
		stopChan:      make(chan struct{}),
		running:       false,
	}
}

var _ contract.Ticker = (*scheduler)(nil)

func (s *scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	log.Println("Scheduler starting...")
	go s.mainLoop()
}

// Stop stops scheduling further ticks and waits for in-flight deliveries
// up to a bounded grace period.
func (s *scheduler) Stop() {
	if !s.running {
		return
	}
	log.Println("Scheduler stopping...")
	close(s.stopChan)
	s.running = false

	done := make(chan struct{})
	go func() {
		s.inFlight.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(domain.StopGrace):
		log.Println("Scheduler stopped with deliveries still in flight")
	}
}

func (s *scheduler) mainLoop() {
	ticker := time.NewTicker(domain.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stopChan:
			return
		}
	}
}

// tick evaluates every stored schedule against the current time. Schedules
// are independent: a failing or slow delivery for one never blocks the
// others.
func (s *scheduler) tick() {
	now := s.clock.Now()

	for _, schedule := range s.scheduleStore.ListAll() {
		windowStart := schedule.FireTime.Add(-domain.ReminderWindow)

		if now.Before(windowStart) {
			continue
		}

		if now.After(schedule.FireTime) {
			if s.rearmDaily {
				s.rearm(schedule, now)
			}
			continue
		}

		// Inside the window. Without notifyOnce this re-fires on every
		// tick until the fire time passes.
		if s.notifyOnce && s.lastNotified[schedule.TeamID].Equal(schedule.FireTime) {
			continue
		}
		s.lastNotified[schedule.TeamID] = schedule.FireTime

		s.inFlight.Add(1)
		go func(sched *entity.Schedule) {
			defer s.inFlight.Done()
			if err := s.sendReminder(sched); err != nil {
				log.Printf("Failed to send reminder for team %s to channel %s: %v", sched.TeamID, sched.ChannelID, err)
			}
		}(schedule)
	}
}

// rearm pushes the fire time forward by whole days until it is no longer
// in the past, keeping the same time of day.
func (s *scheduler) rearm(schedule *entity.Schedule, now time.Time) {
	next := schedule.FireTime
	for next.Before(now) {
		next = next.Add(24 * time.Hour)
	}

	rearmed := *schedule
	rearmed.FireTime = next
	s.scheduleStore.Upsert(&rearmed)
	log.Printf("Re-armed standup for team %s at %s", schedule.TeamID, next.Format("2006-01-02 15:04"))
}

func (s *scheduler) sendReminder(schedule *entity.Schedule) error {
	ctx, cancel := context.WithTimeout(context.Background(), domain.DeliveryTimeout)
	defer cancel()

	message := fmt.Sprintf("Reminder: Please update your standup for team %q.", schedule.TeamLabel)

	_, _, err := s.slackClient.PostMessageContext(ctx, schedule.ChannelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionAsUser(false),
	)
	if err != nil {
		return fmt.Errorf("failed to send Slack message: %w", err)
	}

	if err := s.dm.Delivery().Create(&entity.Delivery{
		TeamID:    schedule.TeamID,
		ChannelID: schedule.ChannelID,
		TeamLabel: schedule.TeamLabel,
		Kind:      entity.DeliveryKindReminder,
		SentAt:    s.clock.Now(),
	}); err != nil {
		log.Printf("Failed to record reminder for team %s: %v", schedule.TeamID, err)
	}

	return nil
}
