package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lotusadvisor/internal/adapter/repo/gorm/model"
	"lotusadvisor/internal/app/ports"

	"gorm.io/gorm"
)

type PickExecutionRepo struct {
	db *gorm.DB
}

func NewPickExecutionRepo(db *gorm.DB) PickExecutionRepo {
	return PickExecutionRepo{db: db}
}

func (r PickExecutionRepo) GetByIdempotencyKey(ctx context.Context, playerID, key string) (*ports.PickExecutionRecord, error) {
	var m model.PickExecution
	err := getDBFromCtx(ctx, r.db).
		Where("player_id = ? AND idempotency_key = ?", playerID, key).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}

	var result ports.PickResult
	if err := json.Unmarshal(m.Result, &result); err != nil {
		return nil, fmt.Errorf("decode pick result %d: %w", m.ID, err)
	}
	return &ports.PickExecutionRecord{
		PlayerID:       m.PlayerID,
		IdempotencyKey: m.IdempotencyKey,
		LotusID:        m.LotusID,
		Result:         result,
		AppliedAt:      m.AppliedAt,
	}, nil
}

func (r PickExecutionRepo) SaveExecution(ctx context.Context, execution ports.PickExecutionRecord) error {
	result, err := json.Marshal(execution.Result)
	if err != nil {
		return fmt.Errorf("encode pick result: %w", err)
	}
	m := model.PickExecution{
		PlayerID:       execution.PlayerID,
		IdempotencyKey: execution.IdempotencyKey,
		LotusID:        execution.LotusID,
		Result:         result,
		AppliedAt:      execution.AppliedAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&m).Error
}
