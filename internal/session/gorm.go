package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deannos/solutions-company-website/internal/models"

	"gorm.io/gorm"
)

// GormRepository keeps sessions in the application database.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Put(ctx context.Context, rec Record) error {
	row := models.Session{
		Token:     rec.Token,
		UserID:    rec.UserID,
		ExpiresAt: rec.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *GormRepository) Get(ctx context.Context, token string) (*Record, error) {
	var row models.Session
	err := r.db.WithContext(ctx).First(&row, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !row.ExpiresAt.After(time.Now()) {
		// lazily drop the stale row
		_ = r.Delete(ctx, token)
		return nil, ErrNotFound
	}
	return &Record{
		Token:     row.Token,
		UserID:    row.UserID,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

func (r *GormRepository) Delete(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *GormRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Session{}, "expires_at <= ?", time.Now())
	if res.Error != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
