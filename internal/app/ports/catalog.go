package ports

import (
	"context"

	"lotusadvisor/internal/domain/garden"
)

type CatalogProvider interface {
	All(ctx context.Context) ([]garden.Lotus, error)
	ByID(ctx context.Context, id string) (garden.Lotus, error)
}
