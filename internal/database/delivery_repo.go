package database

import (
	"fmt"

	"github.com/standup-bot/slack-standup-bot/internal/domain/contract"
	"github.com/standup-bot/slack-standup-bot/internal/domain/entity"
)

type deliveryRepository struct {
	db dbConn
}

func newDeliveryRepository(db dbConn) contract.DeliveryRepo {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(delivery *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (team_id, channel_id, team_label, kind, sent_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		delivery.TeamID,
		delivery.ChannelID,
		delivery.TeamLabel,
		delivery.Kind,
		delivery.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create delivery: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	delivery.ID = id
	return nil
}

func (r *deliveryRepository) GetByTeamID(teamID string, limit int) ([]*entity.Delivery, error) {
	query := `
		SELECT id, team_id, channel_id, team_label, kind, sent_at
		FROM deliveries
		WHERE team_id = ?
		ORDER BY sent_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []*entity.Delivery
	for rows.Next() {
		delivery := &entity.Delivery{}
		err := rows.Scan(
			&delivery.ID,
			&delivery.TeamID,
			&delivery.ChannelID,
			&delivery.TeamLabel,
			&delivery.Kind,
			&delivery.SentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery: %w", err)
		}
		deliveries = append(deliveries, delivery)
	}

	return deliveries, nil
}

func (r *deliveryRepository) CountByTeamID(teamID string, kind string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM deliveries
		WHERE team_id = ? AND kind = ?
	`

	var count int64
	if err := r.db.QueryRow(query, teamID, kind).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count deliveries: %w", err)
	}

	return count, nil
}
