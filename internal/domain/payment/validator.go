package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	memberdomain "chama-ledger-go/internal/domain/member"
	monthdomain "chama-ledger-go/internal/domain/month"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors accumulates every failed entry check so the caller can
// surface all of them at once instead of fixing one and hitting the next.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	messages := e.Messages()
	return strings.Join(messages, "; ")
}

func (e ValidationErrors) Messages() []string {
	messages := make([]string, 0, len(e))
	for _, ve := range e {
		messages = append(messages, ve.Message)
	}
	return messages
}

// Candidate is a payment entry about to be persisted. ExcludeID carries the
// payment's own ID when an existing record is being edited, so the duplicate
// check does not trip over the record itself.
type Candidate struct {
	Member    *memberdomain.Member
	Month     *monthdomain.ContributionMonth
	PaidDate  *time.Time
	ExcludeID string
}

// Validator runs the entry-time checks against the current storage snapshot.
// It is advisory only: the unique constraint on (member_id, month_id) is the
// final authority and closes the race between this check and the write.
type Validator struct {
	repo Repository
}

func NewValidator(repo Repository) *Validator {
	return &Validator{repo: repo}
}

// Validate runs the duplicate check and the date-ordering check
// independently and reports every failure together as ValidationErrors.
// Any other error is a storage failure, returned as-is.
func (v *Validator) Validate(ctx context.Context, c Candidate) error {
	var errs ValidationErrors

	existing, err := v.repo.FindByMemberAndMonth(ctx, c.Member.ID, c.Month.ID)
	if err != nil && !errors.Is(err, ErrPaymentNotFound) {
		return err
	}
	if existing != nil && existing.ID != c.ExcludeID {
		errs = append(errs, ValidationError{
			Field:   "month_id",
			Message: fmt.Sprintf("%s already has a payment recorded for %s", c.Member.FullName, c.Month.Label()),
		})
	}

	if c.PaidDate != nil && c.PaidDate.Before(c.Month.Month) {
		errs = append(errs, ValidationError{
			Field:   "paid_date",
			Message: fmt.Sprintf("payment date cannot be before the contribution month (%s)", c.Month.Label()),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
