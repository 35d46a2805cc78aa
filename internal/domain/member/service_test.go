package member

import (
	"context"
	"errors"
	"testing"
)

type fakeMemberRepo struct {
	members map[string]*Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]*Member)}
}

func (r *fakeMemberRepo) GetByID(ctx context.Context, id string) (*Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	return m, nil
}

func (r *fakeMemberRepo) GetByUserID(ctx context.Context, userID string) (*Member, error) {
	for _, m := range r.members {
		if m.UserID == userID {
			return m, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (r *fakeMemberRepo) List(ctx context.Context, activeOnly bool) ([]Member, error) {
	result := make([]Member, 0)
	for _, m := range r.members {
		if activeOnly && !m.IsActive {
			continue
		}
		result = append(result, *m)
	}
	return result, nil
}

func (r *fakeMemberRepo) Create(ctx context.Context, m *Member) error {
	r.members[m.ID] = m
	return nil
}

func (r *fakeMemberRepo) Update(ctx context.Context, m *Member) error {
	r.members[m.ID] = m
	return nil
}

func (r *fakeMemberRepo) SetActive(ctx context.Context, id string, active bool) error {
	m, ok := r.members[id]
	if !ok {
		return ErrMemberNotFound
	}
	m.IsActive = active
	return nil
}

func (r *fakeMemberRepo) Delete(ctx context.Context, id string) error {
	delete(r.members, id)
	return nil
}

func TestRegister(t *testing.T) {
	svc := NewService(newFakeMemberRepo())

	m, err := svc.Register(context.Background(), RegisterInput{UserID: "u-1", FullName: "Jane Wanjiru", Phone: "0712345678"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if !m.IsActive {
		t.Fatal("new member should be active")
	}
	if m.JoinedDate.IsZero() {
		t.Fatal("joined date should default to today")
	}
}

func TestRegisterRejectsDuplicateUser(t *testing.T) {
	svc := NewService(newFakeMemberRepo())

	if _, err := svc.Register(context.Background(), RegisterInput{UserID: "u-1", FullName: "Jane Wanjiru"}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), RegisterInput{UserID: "u-1", FullName: "Jane W."})
	if !errors.Is(err, ErrMemberExists) {
		t.Fatalf("err = %v, want ErrMemberExists", err)
	}
}

func TestRegisterRequiresFullName(t *testing.T) {
	svc := NewService(newFakeMemberRepo())

	if _, err := svc.Register(context.Background(), RegisterInput{UserID: "u-1", FullName: "  "}); err == nil {
		t.Fatal("expected error for blank full name")
	}
}

func TestSetActiveExcludesFromActiveList(t *testing.T) {
	svc := NewService(newFakeMemberRepo())

	m, err := svc.Register(context.Background(), RegisterInput{UserID: "u-1", FullName: "Jane Wanjiru"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.SetActive(context.Background(), m.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("active list has %d members, want 0", len(active))
	}

	all, err := svc.List(context.Background(), false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("full list has %d members, want 1", len(all))
	}
}
