package payment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	memberdomain "chama-ledger-go/internal/domain/member"
	monthdomain "chama-ledger-go/internal/domain/month"
	"github.com/shopspring/decimal"
)

type fakePaymentRepo struct {
	payments map[string]*Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*Payment)}
}

func (r *fakePaymentRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id string) (*Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakePaymentRepo) FindByMemberAndMonth(ctx context.Context, memberID, monthID string) (*Payment, error) {
	for _, p := range r.payments {
		if p.MemberID == memberID && p.MonthID == monthID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, ErrPaymentNotFound
}

func (r *fakePaymentRepo) List(ctx context.Context, filter ListFilter) ([]Payment, int64, error) {
	result := make([]Payment, 0)
	for _, p := range r.payments {
		if filter.MemberID != "" && p.MemberID != filter.MemberID {
			continue
		}
		if filter.MonthID != "" && p.MonthID != filter.MonthID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *Payment) error {
	for _, existing := range r.payments {
		if existing.MemberID == p.MemberID && existing.MonthID == p.MonthID {
			return ErrDuplicatePayment
		}
	}
	clone := *p
	clone.RecordedAt = time.Now().UTC()
	r.payments[p.ID] = &clone
	p.RecordedAt = clone.RecordedAt
	return nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, p *Payment) error {
	stored, ok := r.payments[p.ID]
	if !ok {
		return ErrPaymentNotFound
	}
	recordedAt := stored.RecordedAt
	clone := *p
	clone.RecordedAt = recordedAt
	r.payments[p.ID] = &clone
	return nil
}

func (r *fakePaymentRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := r.payments[id]; !ok {
		return false, nil
	}
	delete(r.payments, id)
	return true, nil
}

type fakeMemberSource struct {
	members map[string]*memberdomain.Member
}

func (s *fakeMemberSource) Get(ctx context.Context, id string) (*memberdomain.Member, error) {
	m, ok := s.members[id]
	if !ok {
		return nil, memberdomain.ErrMemberNotFound
	}
	return m, nil
}

func (s *fakeMemberSource) List(ctx context.Context, activeOnly bool) ([]memberdomain.Member, error) {
	result := make([]memberdomain.Member, 0)
	for _, m := range s.members {
		if activeOnly && !m.IsActive {
			continue
		}
		result = append(result, *m)
	}
	return result, nil
}

type fakeMonthSource struct {
	months map[string]*monthdomain.ContributionMonth
}

func (s *fakeMonthSource) Get(ctx context.Context, id string) (*monthdomain.ContributionMonth, error) {
	m, ok := s.months[id]
	if !ok {
		return nil, monthdomain.ErrMonthNotFound
	}
	return m, nil
}

func (s *fakeMonthSource) List(ctx context.Context, unlockedOnly bool) ([]monthdomain.ContributionMonth, error) {
	result := make([]monthdomain.ContributionMonth, 0)
	for _, m := range s.months {
		if unlockedOnly && m.IsLocked {
			continue
		}
		result = append(result, *m)
	}
	return result, nil
}

func newTestService() (*Service, *fakePaymentRepo) {
	repo := newFakePaymentRepo()

	members := &fakeMemberSource{members: map[string]*memberdomain.Member{
		"mem-1": {ID: "mem-1", UserID: "u-1", FullName: "Jane Wanjiru", IsActive: true},
		"mem-2": {ID: "mem-2", UserID: "u-2", FullName: "Peter Otieno", IsActive: false},
	}}

	june := date(2024, time.June, 1)
	months := &fakeMonthSource{months: map[string]*monthdomain.ContributionMonth{
		"mon-6": {ID: "mon-6", Month: june, DueDate: date(2024, time.July, 5)},
		"mon-7": {ID: "mon-7", Month: date(2024, time.July, 1), DueDate: date(2024, time.August, 5), IsLocked: true},
	}}

	svc := NewService(repo, members, months, nil, 0)
	return svc, repo
}

func ptrDate(t time.Time) *time.Time {
	return &t
}

func TestCreateOnTimePayment(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), CreateInput{
		MemberID: "mem-1",
		MonthID:  "mon-6",
		PaidDate: ptrDate(date(2024, time.July, 3)),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if p.Status != StatusOnTime {
		t.Fatalf("status = %q, want %q", p.Status, StatusOnTime)
	}
	if !p.FineAmount.IsZero() {
		t.Fatalf("fine = %s, want 0", p.FineAmount)
	}
	if !p.AmountPaid.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("amount = %s, want default 2500", p.AmountPaid)
	}
}

func TestCreateLatePaymentDerivesFine(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), CreateInput{
		MemberID: "mem-1",
		MonthID:  "mon-6",
		PaidDate: ptrDate(date(2024, time.July, 8)),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if p.Status != StatusLate {
		t.Fatalf("status = %q, want %q", p.Status, StatusLate)
	}
	if !p.FineAmount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("fine = %s, want 300", p.FineAmount)
	}
}

func TestCreateWithoutPaidDateStaysPending(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), CreateInput{MemberID: "mem-1", MonthID: "mon-6"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if p.Status != StatusPending {
		t.Fatalf("status = %q, want %q", p.Status, StatusPending)
	}
	if !p.FineAmount.IsZero() {
		t.Fatalf("fine = %s, want 0", p.FineAmount)
	}
}

func TestCreateRejectsDuplicate(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Create(context.Background(), CreateInput{
		MemberID: "mem-1",
		MonthID:  "mon-6",
		PaidDate: ptrDate(date(2024, time.July, 3)),
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(context.Background(), CreateInput{
		MemberID: "mem-1",
		MonthID:  "mon-6",
		PaidDate: ptrDate(date(2024, time.July, 4)),
	})

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}
	if len(verrs) != 1 {
		t.Fatalf("got %d validation errors, want 1", len(verrs))
	}
	msg := verrs[0].Message
	if !strings.Contains(msg, "Jane Wanjiru") || !strings.Contains(msg, "June 2024") {
		t.Fatalf("duplicate message %q should name the member and the month", msg)
	}
}

func TestCreateRejectsPaidDateBeforeMonth(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{
		MemberID: "mem-1",
		MonthID:  "mon-6",
		PaidDate: ptrDate(date(2024, time.May, 28)),
	})

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}
	if len(verrs) != 1 {
		t.Fatalf("got %d validation errors, want 1", len(verrs))
	}
	if !strings.Contains(verrs[0].Message, "June 2024") {
		t.Fatalf("date-ordering message %q should carry the month label", verrs[0].Message)
	}
}

func TestValidatorAccumulatesBothErrors(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Create(context.Background(), CreateInput{
		MemberID: "mem-1",
		MonthID:  "mon-6",
		PaidDate: ptrDate(date(2024, time.July, 3)),
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Second entry is both a duplicate and backdated before the month.
	_, err := svc.Create(context.Background(), CreateInput{
		MemberID: "mem-1",
		MonthID:  "mon-6",
		PaidDate: ptrDate(date(2024, time.May, 1)),
	})

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}
	if len(verrs) != 2 {
		t.Fatalf("got %d validation errors, want both reported together", len(verrs))
	}
}

func TestCreateRejectsNegativeAmount(t *testing.T) {
	svc, _ := newTestService()

	amount := decimal.NewFromInt(-100)
	_, err := svc.Create(context.Background(), CreateInput{
		MemberID:   "mem-1",
		MonthID:    "mon-6",
		AmountPaid: &amount,
	})
	if !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("err = %v, want ErrNegativeAmount", err)
	}
}

func TestUpdateRederivesFineAndStatus(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), CreateInput{
		MemberID: "mem-1",
		MonthID:  "mon-6",
		PaidDate: ptrDate(date(2024, time.July, 8)),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Correcting the paid date to before the due date clears the fine.
	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{
		PaidDate: ptrDate(date(2024, time.July, 4)),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Status != StatusOnTime {
		t.Fatalf("status = %q, want %q", updated.Status, StatusOnTime)
	}
	if !updated.FineAmount.IsZero() {
		t.Fatalf("fine = %s, want 0 after correction", updated.FineAmount)
	}
}

func TestUpdateDoesNotTripDuplicateOnItself(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), CreateInput{
		MemberID: "mem-1",
		MonthID:  "mon-6",
		PaidDate: ptrDate(date(2024, time.July, 3)),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	amount := decimal.NewFromInt(3000)
	if _, err := svc.Update(context.Background(), p.ID, UpdateInput{AmountPaid: &amount}); err != nil {
		t.Fatalf("update of the record itself should pass the duplicate check: %v", err)
	}
}

func TestUpdatePreservesRecordedAt(t *testing.T) {
	svc, repo := newTestService()

	p, err := svc.Create(context.Background(), CreateInput{
		MemberID: "mem-1",
		MonthID:  "mon-6",
		PaidDate: ptrDate(date(2024, time.July, 3)),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	recordedAt := repo.payments[p.ID].RecordedAt

	if _, err := svc.Update(context.Background(), p.ID, UpdateInput{
		PaidDate: ptrDate(date(2024, time.July, 10)),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if !repo.payments[p.ID].RecordedAt.Equal(recordedAt) {
		t.Fatal("recorded_at must not change on update")
	}
}

func TestDeleteMissingPayment(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Delete(context.Background(), "nope")
	if !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("err = %v, want ErrPaymentNotFound", err)
	}
}

func TestEntryOptionsFiltersInactiveAndLocked(t *testing.T) {
	svc, _ := newTestService()

	options, err := svc.EntryOptions(context.Background())
	if err != nil {
		t.Fatalf("entry options: %v", err)
	}

	if len(options.Members) != 1 || options.Members[0].ID != "mem-1" {
		t.Fatalf("members = %+v, want only the active member", options.Members)
	}
	if len(options.Months) != 1 || options.Months[0].ID != "mon-6" {
		t.Fatalf("months = %+v, want only the unlocked month", options.Months)
	}
}
