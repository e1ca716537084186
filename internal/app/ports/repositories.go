package ports

import (
	"context"
	"time"

	"lotusadvisor/internal/domain/garden"
)

type VisionRepository interface {
	GetByPlayerID(ctx context.Context, playerID string) (garden.Vision, error)
	SaveWithVersion(ctx context.Context, vision garden.Vision, expectedVersion int64) error
}

type WeightsRepository interface {
	GetByPlayerID(ctx context.Context, playerID string) (garden.Weights, error)
	Save(ctx context.Context, playerID string, weights garden.Weights) error
}

type PickResult struct {
	UpdatedVision garden.Vision
	Reasons       []garden.Reason
	ResultCode    string
}

type PickExecutionRecord struct {
	PlayerID       string
	IdempotencyKey string
	LotusID        string
	Result         PickResult
	AppliedAt      time.Time
}

type PickExecutionRepository interface {
	GetByIdempotencyKey(ctx context.Context, playerID, key string) (*PickExecutionRecord, error)
	SaveExecution(ctx context.Context, execution PickExecutionRecord) error
}

type EventRepository interface {
	Append(ctx context.Context, playerID string, events []garden.DomainEvent) error
	ListByPlayerID(ctx context.Context, playerID string, limit int) ([]garden.DomainEvent, error)
}

type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
