// Package users provides database operations for user management.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByEmail("freelancer@example.com")
package users

import (
	"gorm.io/gorm"

	"github.com/satya0dev/getitdone/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser persists a new user.
func (r *Repository) CreateUser(user *entities.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email address.
func (r *Repository) GetUserByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByOAuthAccount retrieves a user linked to an OAuth provider account.
func (r *Repository) GetUserByOAuthAccount(provider, accountID string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("o_auth_provider = ? AND o_auth_account_id = ?", provider, accountID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateWhatsAppNumber stores a user's contact number.
func (r *Repository) UpdateWhatsAppNumber(userID uint, number string) error {
	result := r.db.Model(&entities.User{}).Where("id = ?", userID).
		Update("whats_app_number", number)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountUsers returns the number of registered users.
func (r *Repository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Count(&count).Error
	return count, err
}
