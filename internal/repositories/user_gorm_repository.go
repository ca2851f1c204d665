package repositories

import (
	"errors"
	"fmt"

	"tokoadmin/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new member account in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a member by username.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.findOne("username", username)
}

// GetByEmail retrieves a member by login email.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.findOne("email", email)
}

// GetByID retrieves a member by ID.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	return r.findOne("id", id)
}

// findOne looks a user up by a single indexed column. column is never user input.
func (r *GORMUserRepository) findOne(column, value string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, column+" = ?", value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with %s %s: %w", column, value, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by %s %s: %w", column, value, err)
	}
	return &user, nil
}
