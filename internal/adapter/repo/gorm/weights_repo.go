package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lotusadvisor/internal/adapter/repo/gorm/model"
	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/domain/garden"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WeightsRepo struct {
	db *gorm.DB
}

func NewWeightsRepo(db *gorm.DB) WeightsRepo {
	return WeightsRepo{db: db}
}

func (r WeightsRepo) GetByPlayerID(ctx context.Context, playerID string) (garden.Weights, error) {
	var m model.PlayerWeights
	if err := getDBFromCtx(ctx, r.db).Where("player_id = ?", playerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return garden.Weights{}, ports.ErrNotFound
		}
		return garden.Weights{}, err
	}
	var w garden.Weights
	if err := json.Unmarshal(m.Payload, &w); err != nil {
		return garden.Weights{}, fmt.Errorf("decode weights for %s: %w", playerID, err)
	}
	return w, nil
}

func (r WeightsRepo) Save(ctx context.Context, playerID string, weights garden.Weights) error {
	payload, err := json.Marshal(weights)
	if err != nil {
		return fmt.Errorf("encode weights for %s: %w", playerID, err)
	}
	m := model.PlayerWeights{
		PlayerID:  playerID,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&m).Error
}
