package month

import (
	"context"
	"errors"
	"time"

	monthdomain "chama-ledger-go/internal/domain/month"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*monthdomain.ContributionMonth, error) {
	var m monthdomain.ContributionMonth
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, monthdomain.ErrMonthNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) GetByMonth(ctx context.Context, monthStart time.Time) (*monthdomain.ContributionMonth, error) {
	var m monthdomain.ContributionMonth
	if err := r.db.WithContext(ctx).Where("month = ?", monthStart).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, monthdomain.ErrMonthNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) List(ctx context.Context, unlockedOnly bool) ([]monthdomain.ContributionMonth, error) {
	query := r.db.WithContext(ctx).Order("month desc")
	if unlockedOnly {
		query = query.Where("is_locked = ?", false)
	}

	var months []monthdomain.ContributionMonth
	if err := query.Find(&months).Error; err != nil {
		return nil, err
	}
	return months, nil
}

func (r *PostgresRepository) Create(ctx context.Context, m *monthdomain.ContributionMonth) error {
	err := r.db.WithContext(ctx).Create(m).Error
	if isUniqueViolation(err) {
		return monthdomain.ErrMonthExists
	}
	return err
}

func (r *PostgresRepository) SetLocked(ctx context.Context, id string, locked bool) error {
	return r.db.WithContext(ctx).Model(&monthdomain.ContributionMonth{}).
		Where("id = ?", id).
		Update("is_locked", locked).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&monthdomain.ContributionMonth{}, "id = ?", id).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
