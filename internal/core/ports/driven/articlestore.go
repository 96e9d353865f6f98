package driven

import (
	"context"

	"github.com/epz-tools/udiscan/internal/core/domain"
)

// ArticleStore is the downstream article table consumed by the
// backfill pipeline. Backed by PostgreSQL.
type ArticleStore interface {
	// Articles returns all article rows.
	Articles(ctx context.Context) ([]domain.Article, error)

	// UpdateGTIN sets the GTIN column of the article with the given ID.
	UpdateGTIN(ctx context.Context, id int64, gtin string) error

	// Close releases the underlying connection.
	Close() error
}
