package usage

import (
	"context"

	"github.com/zjregee/usagewidget/internal/models"
)

// IPrimaryFetcher performs one call against the mandatory usage source.
type IPrimaryFetcher interface {
	FetchPrimary(ctx context.Context, token string) (models.UsageSnapshot, error)
}

// ISecondaryFetcher performs one call against the optional usage source.
type ISecondaryFetcher interface {
	FetchSecondary(ctx context.Context, cfg models.GitHubConfig) (models.SecondarySnapshot, error)
}
