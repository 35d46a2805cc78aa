package member

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*Member, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, fmt.Errorf("full name is required")
	}

	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, ErrMemberNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberExists
	}

	joined := time.Now().UTC().Truncate(24 * time.Hour)
	if input.JoinedDate != nil {
		joined = *input.JoinedDate
	}

	m := Member{
		ID:         uuid.NewString(),
		UserID:     userID,
		FullName:   fullName,
		Phone:      strings.TrimSpace(input.Phone),
		JoinedDate: joined,
		IsActive:   true,
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		return nil, err
	}

	return &m, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]Member, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Member, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, fmt.Errorf("full name is required")
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	m.FullName = fullName
	m.Phone = strings.TrimSpace(input.Phone)
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// SetActive flips eligibility for new payment entry. Existing payments are
// untouched either way.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.IsActive == active {
		return m, nil
	}

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}

	m.IsActive = active
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
