package repositories

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"tokoadmin/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new member. Usernames and emails are unique.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username {
			return fmt.Errorf("username %s already exists", user.Username)
		}
		if strings.EqualFold(existing.Email, user.Email) {
			return fmt.Errorf("email %s already exists", user.Email)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

// GetByUsername returns a member by username.
func (r *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username }, "username "+username)
}

// GetByEmail returns a member by login email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return strings.EqualFold(u.Email, email) }, "email "+email)
}

// GetByID returns a member by ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with id %s: %w", id, ErrNotFound)
	}
	return &user, nil
}

func (r *MockUserRepository) find(match func(models.User) bool, desc string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with %s: %w", desc, ErrNotFound)
}
