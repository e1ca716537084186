package model

import "time"

type Vision struct {
	PlayerID      string `gorm:"primaryKey;column:player_id"`
	Capacity      int32
	Bubbles       []byte `gorm:"type:jsonb"`
	FundamentalID string
	Version       int64
	UpdatedAt     time.Time
}

func (Vision) TableName() string { return "visions" }

type PlayerWeights struct {
	PlayerID  string `gorm:"primaryKey;column:player_id"`
	Payload   []byte `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

func (PlayerWeights) TableName() string { return "player_weights" }

type PickExecution struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	PlayerID       string `gorm:"index:idx_pick_executions_key,unique"`
	IdempotencyKey string `gorm:"index:idx_pick_executions_key,unique"`
	LotusID        string
	Result         []byte `gorm:"type:jsonb"`
	AppliedAt      time.Time
}

func (PickExecution) TableName() string { return "pick_executions" }

type DomainEvent struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	PlayerID   string `gorm:"index"`
	Type       string
	OccurredAt time.Time
	Payload    []byte `gorm:"type:jsonb"`
}

func (DomainEvent) TableName() string { return "domain_events" }
