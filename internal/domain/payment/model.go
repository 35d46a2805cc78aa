package payment

import (
	"time"

	memberdomain "chama-ledger-go/internal/domain/member"
	monthdomain "chama-ledger-go/internal/domain/month"
	"github.com/shopspring/decimal"
)

const (
	StatusPending = "Pending"
	StatusOnTime  = "On Time"
	StatusLate    = "Late"
)

// DefaultAmount is the standing monthly contribution.
var DefaultAmount = decimal.NewFromInt(2500)

type Payment struct {
	ID         string          `gorm:"type:uuid;primaryKey"`
	MemberID   string          `gorm:"type:uuid;not null;uniqueIndex:idx_payments_member_month"`
	MonthID    string          `gorm:"type:uuid;not null;uniqueIndex:idx_payments_member_month"`
	AmountPaid decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	PaidDate   *time.Time      `gorm:"type:date"`
	FineAmount decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status     string          `gorm:"type:varchar(20);not null;default:'Pending'"`
	RecordedAt time.Time       `gorm:"autoCreateTime"`

	Member memberdomain.Member           `gorm:"foreignKey:MemberID;references:ID;constraint:OnDelete:CASCADE"`
	Month  monthdomain.ContributionMonth `gorm:"foreignKey:MonthID;references:ID;constraint:OnDelete:CASCADE"`
}

type CreateInput struct {
	MemberID   string
	MonthID    string
	AmountPaid *decimal.Decimal
	PaidDate   *time.Time
}

type UpdateInput struct {
	AmountPaid *decimal.Decimal
	PaidDate   *time.Time
}

type ListFilter struct {
	MemberID string
	MonthID  string
	Status   string
	Limit    int
	Offset   int
}

// EntryOptions is the read-only projection offered to the entry screen:
// only active members and only unlocked months are selectable.
type EntryOptions struct {
	Members []memberdomain.Member
	Months  []monthdomain.ContributionMonth
}
