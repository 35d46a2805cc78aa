package member

import (
	"context"
	"errors"

	memberdomain "chama-ledger-go/internal/domain/member"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*memberdomain.Member, error) {
	var m memberdomain.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*memberdomain.Member, error) {
	var m memberdomain.Member
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) List(ctx context.Context, activeOnly bool) ([]memberdomain.Member, error) {
	query := r.db.WithContext(ctx).Order("full_name asc")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var members []memberdomain.Member
	if err := query.Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) Create(ctx context.Context, m *memberdomain.Member) error {
	err := r.db.WithContext(ctx).Create(m).Error
	if isUniqueViolation(err) {
		return memberdomain.ErrMemberExists
	}
	return err
}

func (r *PostgresRepository) Update(ctx context.Context, m *memberdomain.Member) error {
	return r.db.WithContext(ctx).Model(&memberdomain.Member{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"full_name": m.FullName,
			"phone":     m.Phone,
		}).Error
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).Model(&memberdomain.Member{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&memberdomain.Member{}, "id = ?", id).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
