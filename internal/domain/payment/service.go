package payment

import (
	"context"
	"time"

	memberdomain "chama-ledger-go/internal/domain/member"
	monthdomain "chama-ledger-go/internal/domain/month"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemberSource and MonthSource are the read surfaces the payment service
// needs from the neighbouring domains. member.Service and month.Service
// satisfy them.
type MemberSource interface {
	Get(ctx context.Context, id string) (*memberdomain.Member, error)
	List(ctx context.Context, activeOnly bool) ([]memberdomain.Member, error)
}

type MonthSource interface {
	Get(ctx context.Context, id string) (*monthdomain.ContributionMonth, error)
	List(ctx context.Context, unlockedOnly bool) ([]monthdomain.ContributionMonth, error)
}

type Service struct {
	repo       Repository
	members    MemberSource
	months     MonthSource
	cache      OptionsCache
	optionsTTL time.Duration
}

func NewService(repo Repository, members MemberSource, months MonthSource, cache OptionsCache, optionsTTL time.Duration) *Service {
	if cache == nil {
		cache = NewNoopOptionsCache()
	}
	return &Service{
		repo:       repo,
		members:    members,
		months:     months,
		cache:      cache,
		optionsTTL: optionsTTL,
	}
}

// Create records a payment for a member against a contribution month.
// The validator runs first against the current snapshot; the unique
// constraint on (member_id, month_id) backstops the residual race and
// surfaces as ErrDuplicatePayment. Fine and status are derived from the
// paid date and the month's due date at save time; without a paid date
// the record stays Pending with a zero fine.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Payment, error) {
	mem, err := s.members.Get(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}
	mon, err := s.months.Get(ctx, input.MonthID)
	if err != nil {
		return nil, err
	}

	amount := DefaultAmount
	if input.AmountPaid != nil {
		amount = *input.AmountPaid
	}
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	p := Payment{
		ID:         uuid.NewString(),
		MemberID:   mem.ID,
		MonthID:    mon.ID,
		AmountPaid: amount,
		PaidDate:   input.PaidDate,
		FineAmount: decimal.Zero,
		Status:     StatusPending,
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		validator := NewValidator(tx)
		if err := validator.Validate(ctx, Candidate{
			Member:   mem,
			Month:    mon,
			PaidDate: input.PaidDate,
		}); err != nil {
			return err
		}

		if p.PaidDate != nil {
			p.FineAmount, p.Status = Derive(*p.PaidDate, mon.DueDate)
		}

		return tx.Create(ctx, &p)
	})
	if err != nil {
		return nil, err
	}

	p.Member = *mem
	p.Month = *mon
	return &p, nil
}

// Update corrects an existing record. Amount and paid date are replaced
// only when supplied; whenever the record carries a paid date after the
// edit, fine and status are recomputed from the owning month's current
// due date, overwriting the stored values. RecordedAt never changes.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Payment, error) {
	if input.AmountPaid != nil && input.AmountPaid.IsNegative() {
		return nil, ErrNegativeAmount
	}

	var updated Payment
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		p, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}

		mem, err := s.members.Get(ctx, p.MemberID)
		if err != nil {
			return err
		}
		mon, err := s.months.Get(ctx, p.MonthID)
		if err != nil {
			return err
		}

		if input.AmountPaid != nil {
			p.AmountPaid = *input.AmountPaid
		}
		if input.PaidDate != nil {
			p.PaidDate = input.PaidDate
		}

		validator := NewValidator(tx)
		if err := validator.Validate(ctx, Candidate{
			Member:    mem,
			Month:     mon,
			PaidDate:  p.PaidDate,
			ExcludeID: p.ID,
		}); err != nil {
			return err
		}

		if p.PaidDate != nil {
			p.FineAmount, p.Status = Derive(*p.PaidDate, mon.DueDate)
		}

		if err := tx.Update(ctx, p); err != nil {
			return err
		}

		p.Member = *mem
		p.Month = *mon
		updated = *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Payment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Payment, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPaymentNotFound
	}
	return nil
}

// EntryOptions returns the selectable universe for the entry screen:
// active members and unlocked months only. Served through a short-lived
// cache; a deactivated member or freshly locked month may linger in the
// options until the TTL passes, which the entry validator and constraints
// tolerate.
func (s *Service) EntryOptions(ctx context.Context) (*EntryOptions, error) {
	if options, ok := s.cache.Get(); ok {
		return options, nil
	}

	members, err := s.members.List(ctx, true)
	if err != nil {
		return nil, err
	}
	months, err := s.months.List(ctx, true)
	if err != nil {
		return nil, err
	}

	options := &EntryOptions{Members: members, Months: months}
	s.cache.Set(options, s.optionsTTL)
	return options, nil
}
