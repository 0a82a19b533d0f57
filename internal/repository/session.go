package repository

import (
	"context"
	"errors"
	"time"

	"apparel-shopfront/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(ctx context.Context, sess *model.Session) error
	FindByID(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepoImpl struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepoImpl{
		db: db,
	}
}

func (r *sessionRepoImpl) Create(ctx context.Context, sess *model.Session) error {
	return r.db.WithContext(ctx).Create(sess).Error
}

func (r *sessionRepoImpl) FindByID(ctx context.Context, id string) (*model.Session, error) {
	var sess model.Session
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sess).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &sess, nil
}

func (r *sessionRepoImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Session{}).Error
}

func (r *sessionRepoImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.Session{})

	return result.RowsAffected, result.Error
}

// SweepExpired removes expired sessions on a fixed interval until ctx is
// cancelled. Expired rows are already rejected at lookup time, the sweep
// only keeps the table from growing without bound.
func SweepExpired(ctx context.Context, repo SessionRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := repo.DeleteExpired(ctx, time.Now())
			if err != nil {
				log.Warn().Err(err).Msg("session sweep failed")
				continue
			}
			if removed > 0 {
				log.Debug().Int64("removed", removed).Msg("swept expired sessions")
			}
		}
	}
}
