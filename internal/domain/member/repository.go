package member

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (*Member, error)
	GetByUserID(ctx context.Context, userID string) (*Member, error)
	List(ctx context.Context, activeOnly bool) ([]Member, error)
	Create(ctx context.Context, m *Member) error
	Update(ctx context.Context, m *Member) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}
