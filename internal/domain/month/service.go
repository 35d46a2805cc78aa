package month

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create opens a new contribution month. The month is normalized to the
// first day of its calendar month before anything else, so two dates inside
// the same month collide on the uniqueness check instead of opening two
// periods. The due date is derived exactly once here when the caller does
// not supply one; nothing ever recomputes it afterwards.
func (s *Service) Create(ctx context.Context, input CreateInput) (*ContributionMonth, error) {
	monthStart := StartOfMonth(input.Month)

	existing, err := s.repo.GetByMonth(ctx, monthStart)
	if err != nil && !errors.Is(err, ErrMonthNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMonthExists
	}

	dueDate := NextFifth(monthStart)
	if input.DueDate != nil {
		dueDate = *input.DueDate
	}

	m := ContributionMonth{
		ID:      uuid.NewString(),
		Month:   monthStart,
		DueDate: dueDate,
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		return nil, err
	}

	return &m, nil
}

func (s *Service) Get(ctx context.Context, id string) (*ContributionMonth, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, unlockedOnly bool) ([]ContributionMonth, error) {
	return s.repo.List(ctx, unlockedOnly)
}

func (s *Service) SetLocked(ctx context.Context, id string, locked bool) (*ContributionMonth, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.IsLocked == locked {
		return m, nil
	}

	if err := s.repo.SetLocked(ctx, id, locked); err != nil {
		return nil, err
	}

	m.IsLocked = locked
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
