package payment

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	FindByMemberAndMonth(ctx context.Context, memberID, monthID string) (*Payment, error)
	List(ctx context.Context, filter ListFilter) ([]Payment, int64, error)
	Create(ctx context.Context, p *Payment) error
	Update(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id string) (bool, error)
}
