package month

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeMonthRepo struct {
	months map[string]*ContributionMonth
}

func newFakeMonthRepo() *fakeMonthRepo {
	return &fakeMonthRepo{months: make(map[string]*ContributionMonth)}
}

func (r *fakeMonthRepo) GetByID(ctx context.Context, id string) (*ContributionMonth, error) {
	m, ok := r.months[id]
	if !ok {
		return nil, ErrMonthNotFound
	}
	return m, nil
}

func (r *fakeMonthRepo) GetByMonth(ctx context.Context, monthStart time.Time) (*ContributionMonth, error) {
	for _, m := range r.months {
		if m.Month.Equal(monthStart) {
			return m, nil
		}
	}
	return nil, ErrMonthNotFound
}

func (r *fakeMonthRepo) List(ctx context.Context, unlockedOnly bool) ([]ContributionMonth, error) {
	result := make([]ContributionMonth, 0)
	for _, m := range r.months {
		if unlockedOnly && m.IsLocked {
			continue
		}
		result = append(result, *m)
	}
	return result, nil
}

func (r *fakeMonthRepo) Create(ctx context.Context, m *ContributionMonth) error {
	r.months[m.ID] = m
	return nil
}

func (r *fakeMonthRepo) SetLocked(ctx context.Context, id string, locked bool) error {
	m, ok := r.months[id]
	if !ok {
		return ErrMonthNotFound
	}
	m.IsLocked = locked
	return nil
}

func (r *fakeMonthRepo) Delete(ctx context.Context, id string) error {
	delete(r.months, id)
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateDerivesDueDate(t *testing.T) {
	svc := NewService(newFakeMonthRepo())

	m, err := svc.Create(context.Background(), CreateInput{Month: date(2024, time.June, 1)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	want := date(2024, time.July, 5)
	if !m.DueDate.Equal(want) {
		t.Fatalf("due date = %v, want %v", m.DueDate, want)
	}
}

func TestCreateDerivesDueDateYearRollover(t *testing.T) {
	svc := NewService(newFakeMonthRepo())

	m, err := svc.Create(context.Background(), CreateInput{Month: date(2024, time.December, 1)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	want := date(2025, time.January, 5)
	if !m.DueDate.Equal(want) {
		t.Fatalf("due date = %v, want %v", m.DueDate, want)
	}
}

func TestCreateKeepsExplicitDueDate(t *testing.T) {
	svc := NewService(newFakeMonthRepo())

	explicit := date(2024, time.July, 10)
	m, err := svc.Create(context.Background(), CreateInput{Month: date(2024, time.June, 1), DueDate: &explicit})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !m.DueDate.Equal(explicit) {
		t.Fatalf("due date = %v, want explicit %v", m.DueDate, explicit)
	}
}

func TestCreateNormalizesMonthStart(t *testing.T) {
	svc := NewService(newFakeMonthRepo())

	m, err := svc.Create(context.Background(), CreateInput{Month: date(2024, time.June, 17)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !m.Month.Equal(date(2024, time.June, 1)) {
		t.Fatalf("month = %v, want normalized to first of month", m.Month)
	}
}

func TestCreateRejectsDuplicateMonth(t *testing.T) {
	svc := NewService(newFakeMonthRepo())

	if _, err := svc.Create(context.Background(), CreateInput{Month: date(2024, time.June, 1)}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// A different day in the same calendar month is still the same period.
	_, err := svc.Create(context.Background(), CreateInput{Month: date(2024, time.June, 20)})
	if !errors.Is(err, ErrMonthExists) {
		t.Fatalf("err = %v, want ErrMonthExists", err)
	}
}

func TestSetLocked(t *testing.T) {
	repo := newFakeMonthRepo()
	svc := NewService(repo)

	m, err := svc.Create(context.Background(), CreateInput{Month: date(2024, time.June, 1)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	locked, err := svc.SetLocked(context.Background(), m.ID, true)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if !locked.IsLocked {
		t.Fatal("month should be locked")
	}

	unlocked, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(unlocked) != 0 {
		t.Fatalf("unlocked list has %d months, want 0", len(unlocked))
	}
}

func TestNextFifth(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"mid year", date(2024, time.June, 1), date(2024, time.July, 5)},
		{"december rollover", date(2024, time.December, 1), date(2025, time.January, 5)},
		{"from a due date", date(2024, time.July, 5), date(2024, time.August, 5)},
		{"january", date(2025, time.January, 1), date(2025, time.February, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextFifth(tt.in); !got.Equal(tt.want) {
				t.Fatalf("NextFifth(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	m := ContributionMonth{Month: date(2024, time.June, 1)}
	if got := m.Label(); got != "June 2024" {
		t.Fatalf("label = %q, want %q", got, "June 2024")
	}
}
