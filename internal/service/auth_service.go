package service

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"sneezelog/internal/auth"
	"sneezelog/internal/config"
	"sneezelog/internal/models"
	"sneezelog/internal/repository"
)

var (
	ErrUserExists         = errors.New("username or email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrValidation         = errors.New("validation failed")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// Claims carried inside the access token.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(username, email, password string) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	TokenTTL() time.Duration
}

type authService struct {
	userRepo    repository.UserRepository
	hasher      auth.PasswordHasher
	jwtSecret   string
	tokenTTL    time.Duration
	dummyDigest string // compared against on the unknown-user path
}

func NewAuthService(userRepo repository.UserRepository, hasher auth.PasswordHasher, cfg *config.Config) AuthService {
	dummy, _ := hasher.Hash("sneezelog.dummy.digest")
	return &authService{
		userRepo:    userRepo,
		hasher:      hasher,
		jwtSecret:   cfg.JWTSecret,
		tokenTTL:    cfg.AccessTokenTTL,
		dummyDigest: dummy,
	}
}

// Register creates a new active user with a freshly computed password digest.
// A taken username or email yields ErrUserExists; the caller is not told
// which of the two collided.
func (s *authService) Register(username, email, password string) (*models.User, error) {
	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	// Check if username or email exists
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUserExists
	}
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrUserExists
	}

	// Hash password
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		IsActive:     true,
	}

	// The existence checks above race with concurrent registrations; the
	// unique constraints in the store are what actually decide the winner.
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return user, nil
}

// Authenticate returns the user for a valid username/password pair.
// Unknown username, inactive account and wrong password are all reported as
// ErrInvalidCredentials so callers cannot probe which condition failed.
func (s *authService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		// User not found: run a dummy compare so the timing matches the
		// wrong-password path
		s.hasher.Verify(password, s.dummyDigest)
		return nil, ErrInvalidCredentials
	}

	// Verify before the active check to keep the timing profile uniform
	ok := s.hasher.Verify(password, user.PasswordHash)
	if !ok || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *authService) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) GetByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) TokenTTL() time.Duration {
	return s.tokenTTL
}

func validateRegistration(username, email, password string) error {
	if len(username) < 3 || len(username) > 50 {
		return fmt.Errorf("%w: username must be 3-50 characters", ErrValidation)
	}
	if len(email) > 255 || !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if len(password) < 8 || len(password) > 100 {
		return fmt.Errorf("%w: password must be 8-100 characters", ErrValidation)
	}
	return nil
}
