package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-catalog/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepositoryImpl interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepositoryImpl {
	return &userRepository{db}
}

// Create stores user as given; the password must already be hashed.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

type TokenRepositoryImpl interface {
	Create(ctx context.Context, token *models.PersonalAccessToken) error
	FindBySelector(ctx context.Context, selector string) (*models.PersonalAccessToken, error)
	Touch(ctx context.Context, id string, at time.Time) error
	DeleteByUserID(ctx context.Context, userID string) error
	CountByUserID(ctx context.Context, userID string) (int64, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepositoryImpl {
	return &tokenRepository{db}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.PersonalAccessToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) FindBySelector(ctx context.Context, selector string) (*models.PersonalAccessToken, error) {
	var token models.PersonalAccessToken
	err := r.db.WithContext(ctx).Where("selector = ?", selector).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Touch(ctx context.Context, id string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.PersonalAccessToken{}).Where("id = ?", id).Update("last_used_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to touch token %s: %w", id, result.Error)
	}
	return nil
}

func (r *tokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.PersonalAccessToken{})
	if result.Error != nil {
		return fmt.Errorf("failed to revoke tokens for user %s: %w", userID, result.Error)
	}
	return nil
}

func (r *tokenRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.PersonalAccessToken{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}
