package ports

import (
	"context"

	"github.com/bnema/astropost/internal/domain"
)

type CycleRepository interface {
	Append(ctx context.Context, record domain.CycleRecord) error
	List(ctx context.Context) ([]domain.CycleRecord, error)
	Last(ctx context.Context) (domain.CycleRecord, bool, error)
}
