package auth

import (
	"context"
	"time"

	"github.com/Abdelrazek97/form-app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlacklistService remembers session ids ended before their expiry. A row
// is only useful until the token would have expired on its own.
type BlacklistService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBlacklistService(db *gorm.DB) *BlacklistService {
	return &BlacklistService{db: db, now: time.Now}
}

// unexpired limits a query to entries whose token could still be presented
func (s *BlacklistService) unexpired(tx *gorm.DB) *gorm.DB {
	return tx.Where("expires_at > ?", s.now())
}

// RevokeToken records jti until expiresAt. Revoking twice is a no-op.
func (s *BlacklistService) RevokeToken(ctx context.Context, jti string, userID uint, expiresAt time.Time, reason string) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.JWTTokenBlacklist{
			Token:     jti,
			UserID:    userID,
			Reason:    reason,
			ExpiresAt: expiresAt,
		}).Error
}

func (s *BlacklistService) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.JWTTokenBlacklist{}).
		Scopes(s.unexpired).
		Where("token = ?", jti).
		Count(&n).Error
	return n > 0, err
}

// CleanupExpiredTokens deletes entries past their expiry and returns how
// many went
func (s *BlacklistService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at <= ?", s.now()).
		Delete(&model.JWTTokenBlacklist{})
	return res.RowsAffected, res.Error
}

// ActiveCount is the number of revocations still in force
func (s *BlacklistService) ActiveCount(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.JWTTokenBlacklist{}).
		Scopes(s.unexpired).
		Count(&n).Error
	return n, err
}
