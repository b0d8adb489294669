package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Abdelrazek97/form-app/database"
	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/utils/auth"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CredentialService owns user accounts and password verification
type CredentialService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewCredentialService creates a new credential service
func NewCredentialService(db *gorm.DB, log *zap.Logger) *CredentialService {
	return &CredentialService{db: db, log: log}
}

// Verify returns the user when username and password match. Unknown users
// and wrong passwords fail identically.
func (s *CredentialService) Verify(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	return &user, nil
}

// Register creates a "user" account. A taken username is detected by the
// unique constraint alone.
func (s *CredentialService) Register(ctx context.Context, username, password, fullName string) (*model.User, error) {
	return s.create(ctx, username, password, fullName, model.RoleUser)
}

func (s *CredentialService) create(ctx context.Context, username, password, fullName, role string) (*model.User, error) {
	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)
	if username == "" || password == "" {
		return nil, missingFields()
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordTooShort):
			return nil, invalidPassword(fmt.Sprintf("Password must be at least %d characters!", auth.MinPasswordLength))
		case errors.Is(err, auth.ErrPasswordTooLong):
			return nil, invalidPassword("Password is too long!")
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Password: hash,
		Role:     role,
		FullName: fullName,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", role))
	return user, nil
}

// ProvisionAdmin creates the administrator from an externally supplied
// credential. It does nothing when an admin account already exists.
func (s *CredentialService) ProvisionAdmin(ctx context.Context, username, password, fullName string) (created bool, err error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if _, err := s.create(ctx, username, password, fullName, model.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}

// ResetPassword replaces the password of an existing account
func (s *CredentialService) ResetPassword(ctx context.Context, username, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", strings.TrimSpace(username)).
		Update("password", hash)
	if result.Error != nil {
		return fmt.Errorf("failed to reset password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	s.log.Info("password reset", zap.String("username", username))
	return nil
}

// CountUsers returns the number of accounts of every role
func (s *CredentialService) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// ListUsers returns every account, oldest first
func (s *CredentialService) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
