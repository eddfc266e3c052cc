package entity

import "time"

// Schedule is the single standup schedule of a workspace. There is at
// most one per team; setting up a new one replaces the previous.
type Schedule struct {
	TeamID      string
	ChannelID   string
	ChannelName string
	FireTime    time.Time
	Description string
	TeamLabel   string
	CreatedAt   time.Time
}
