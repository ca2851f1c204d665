package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"
	"tokoadmin/pkg/logging"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registers members and issues the tokens the admin panel reads
// the member profile from.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
	log        *zap.SugaredLogger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, log *zap.SugaredLogger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		log:        logging.OrNop(log),
	}
}

// ErrReservedIdentity is returned when a self-registration would produce an
// account the admin policy grants access to.
var ErrReservedIdentity = errors.New("identity is reserved for administrators")

// SelfRegister is the public sign-up path. Accounts the policy would treat as
// admins are refused; those are created by operators through RegisterUser.
func (s *AuthService) SelfRegister(user *models.User, policy AccessPolicy) error {
	if policy != nil {
		for _, candidate := range []models.Member{
			{LoginEmail: user.Email, ProfileTitle: user.Title},
			{LoginEmail: strings.ToLower(strings.TrimSpace(user.Email)), ProfileTitle: user.Title},
		} {
			if policy.IsAdmin(&candidate) {
				s.log.Warnf("Refused self-registration of reserved email %s", user.Email)
				return fmt.Errorf("email '%s': %w", user.Email, ErrReservedIdentity)
			}
		}
	}
	return s.RegisterUser(user)
}

// RegisterUser hashes the member's password and stores the account.
func (s *AuthService) RegisterUser(user *models.User) error {
	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return fmt.Errorf("username '%s' already taken", user.Username)
	}
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("email '%s' already registered", user.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginUser checks the credentials and returns a signed token carrying the
// member profile.
func (s *AuthService) LoginUser(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}
	return s.IssueToken(user)
}

// IssueToken signs a token for user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
		"nickname": user.Nickname,
		"title":    user.Title,
		"exp":      now.Add(s.tokenDurat).Unix(),
		"iat":      now.Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.log.Debugf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// MemberFromClaims builds the member profile carried by a token.
func MemberFromClaims(claims jwt.MapClaims) *models.Member {
	str := func(key string) string {
		v, _ := claims[key].(string)
		return v
	}
	return &models.Member{
		ID:           str("user_id"),
		Username:     str("username"),
		LoginEmail:   str("email"),
		Nickname:     str("nickname"),
		ProfileTitle: str("title"),
	}
}
