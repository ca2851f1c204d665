package repositories

import "tokoadmin/internal/models"

// UserRepository stores member accounts for the identity side of the admin panel.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
