package contract

import (
	"context"

	"github.com/standup-bot/slack-standup-bot/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Delivery() DeliveryRepo
}

// DeliveryRepo defines the contract for the outbound message audit log
type DeliveryRepo interface {
	Create(delivery *entity.Delivery) error
	GetByTeamID(teamID string, limit int) ([]*entity.Delivery, error)
	CountByTeamID(teamID string, kind string) (int64, error)
}
