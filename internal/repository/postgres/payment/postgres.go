package payment

import (
	"context"
	"errors"

	paymentdomain "chama-ledger-go/internal/domain/payment"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(paymentdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*paymentdomain.Payment, error) {
	var p paymentdomain.Payment
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Month").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, paymentdomain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) FindByMemberAndMonth(ctx context.Context, memberID, monthID string) (*paymentdomain.Payment, error) {
	var p paymentdomain.Payment
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND month_id = ?", memberID, monthID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, paymentdomain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter paymentdomain.ListFilter) ([]paymentdomain.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&paymentdomain.Payment{})
	if filter.MemberID != "" {
		query = query.Where("payments.member_id = ?", filter.MemberID)
	}
	if filter.MonthID != "" {
		query = query.Where("payments.month_id = ?", filter.MonthID)
	}
	if filter.Status != "" {
		query = query.Where("payments.status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.
		Joins("join contribution_months on contribution_months.id = payments.month_id").
		Joins("join members on members.id = payments.member_id").
		Order("contribution_months.month desc, members.full_name asc").
		Preload("Member").
		Preload("Month")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var payments []paymentdomain.Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *paymentdomain.Payment) error {
	err := r.db.WithContext(ctx).Omit("Member", "Month").Create(p).Error
	if isUniqueViolation(err) {
		return paymentdomain.ErrDuplicatePayment
	}
	return err
}

// Update never touches recorded_at; it is set once on insert.
func (r *PostgresRepository) Update(ctx context.Context, p *paymentdomain.Payment) error {
	return r.db.WithContext(ctx).Model(&paymentdomain.Payment{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"amount_paid": p.AmountPaid,
			"paid_date":   p.PaidDate,
			"fine_amount": p.FineAmount,
			"status":      p.Status,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&paymentdomain.Payment{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
