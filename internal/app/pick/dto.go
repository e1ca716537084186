package pick

import "lotusadvisor/internal/domain/garden"

type Request struct {
	PlayerID       string
	IdempotencyKey string
	LotusID        string
}

type Response struct {
	UpdatedVision garden.Vision        `json:"updated_vision"`
	Reasons       []garden.Reason      `json:"reasons"`
	Events        []garden.DomainEvent `json:"events,omitempty"`
	ResultCode    string               `json:"result_code"`
}
