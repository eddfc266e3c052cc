package entity

import "time"

// Delivery kinds
const (
	DeliveryKindNotice   = "notice"   // one-shot "scheduled" notice sent at setup time
	DeliveryKindReminder = "reminder" // recurring reminder sent inside the window
)

// Delivery is one outbound message recorded in the audit log.
type Delivery struct {
	ID        int64
	TeamID    string
	ChannelID string
	TeamLabel string
	Kind      string
	SentAt    time.Time
}
