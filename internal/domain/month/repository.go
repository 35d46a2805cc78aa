package month

import (
	"context"
	"time"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*ContributionMonth, error)
	GetByMonth(ctx context.Context, monthStart time.Time) (*ContributionMonth, error)
	List(ctx context.Context, unlockedOnly bool) ([]ContributionMonth, error)
	Create(ctx context.Context, m *ContributionMonth) error
	SetLocked(ctx context.Context, id string, locked bool) error
	Delete(ctx context.Context, id string) error
}
