package ports

import (
	"context"

	"github.com/bnema/astropost/internal/domain"
)

type ContentSource interface {
	Generate(ctx context.Context, topic domain.Topic) (domain.ContentPayload, error)
	Caption(ctx context.Context, payload domain.ContentPayload) (domain.Caption, error)
}
