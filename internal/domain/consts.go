package domain

import "time"

// Scheduling constants for the reminder loop
const (
	// ReminderWindow is how long before the standup time reminders start going out
	ReminderWindow = 15 * time.Minute

	// TickInterval is the period of the scheduler evaluation loop
	TickInterval = 1 * time.Minute

	// DeliveryTimeout bounds a single outbound Slack message
	DeliveryTimeout = 10 * time.Second

	// StopGrace is how long Stop waits for in-flight deliveries before giving up
	StopGrace = 5 * time.Second
)

// TimeLayout is the accepted standup time format (24-hour HH:MM)
const TimeLayout = "15:04"
