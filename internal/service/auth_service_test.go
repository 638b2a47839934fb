package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"sneezelog/internal/auth"
	"sneezelog/internal/config"
	"sneezelog/internal/models"
	"sneezelog/internal/repository"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newTestAuthService(userRepo repository.UserRepository) AuthService {
	cfg := &config.Config{
		JWTSecret:      "test-secret-test-secret-test-secret",
		AccessTokenTTL: 15 * time.Minute,
	}
	return NewAuthService(userRepo, auth.SHA256Hasher{}, cfg)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	digest, err := auth.SHA256Hasher{}.Hash(password)
	assert.NoError(t, err)
	return digest
}

func TestRegister_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	mockUserRepo.On("FindByUsername", "testuser").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := authService.Register("testuser", "test@example.com", "password123")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "test@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "password123", user.PasswordHash)
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_UsernameExists(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	existingUser := &models.User{Username: "testuser"}
	mockUserRepo.On("FindByUsername", "testuser").Return(existingUser, nil)

	user, err := authService.Register("testuser", "other@example.com", "password123")

	assert.ErrorIs(t, err, ErrUserExists)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_EmailExists(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	existingUser := &models.User{Email: "test@example.com"}
	mockUserRepo.On("FindByUsername", "otheruser").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", "test@example.com").Return(existingUser, nil)

	user, err := authService.Register("otheruser", "test@example.com", "password123")

	assert.ErrorIs(t, err, ErrUserExists)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_ConcurrentDuplicate(t *testing.T) {
	// Both registrations pass the existence check; the unique constraint
	// rejects the loser and the conflict must surface as ErrUserExists.
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	mockUserRepo.On("FindByUsername", "testuser").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(repository.ErrDuplicate)

	user, err := authService.Register("testuser", "test@example.com", "password123")

	assert.ErrorIs(t, err, ErrUserExists)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_InvalidEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	user, err := authService.Register("testuser", "not-an-email", "password123")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, user)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegister_ShortPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	user, err := authService.Register("testuser", "test@example.com", "short")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, user)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthenticate_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	user := &models.User{
		ID:           1,
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: mustHash(t, "password123"),
		IsActive:     true,
	}
	mockUserRepo.On("FindByUsername", "testuser").Return(user, nil)

	returnedUser, err := authService.Authenticate("testuser", "password123")

	assert.NoError(t, err)
	assert.Equal(t, user.ID, returnedUser.ID)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	user := &models.User{
		ID:           1,
		Username:     "testuser",
		PasswordHash: mustHash(t, "password123"),
		IsActive:     true,
	}
	mockUserRepo.On("FindByUsername", "testuser").Return(user, nil)

	returnedUser, err := authService.Authenticate("testuser", "wrongpassword")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, returnedUser)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	mockUserRepo.On("FindByUsername", "nonexistent").Return(nil, gorm.ErrRecordNotFound)

	returnedUser, err := authService.Authenticate("nonexistent", "password123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, returnedUser)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	user := &models.User{
		ID:           1,
		Username:     "testuser",
		PasswordHash: mustHash(t, "password123"),
		IsActive:     false,
	}
	mockUserRepo.On("FindByUsername", "testuser").Return(user, nil)

	// Same outcome as a wrong password: the caller cannot tell the account
	// is merely deactivated.
	returnedUser, err := authService.Authenticate("testuser", "password123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, returnedUser)
	mockUserRepo.AssertExpectations(t)
}

func TestGetByID_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	mockUserRepo.On("FindByID", uint(42)).Return(nil, gorm.ErrRecordNotFound)

	user, err := authService.GetByID(42)

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestGetByUsername_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	user := &models.User{ID: 1, Username: "testuser"}
	mockUserRepo.On("FindByUsername", "testuser").Return(user, nil)

	returnedUser, err := authService.GetByUsername("testuser")

	assert.NoError(t, err)
	assert.Equal(t, user, returnedUser)
	mockUserRepo.AssertExpectations(t)
}

func TestToken_RoundTrip(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	user := &models.User{ID: 7, Username: "testuser"}

	token, err := authService.GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "testuser", claims.Username)
}

func TestValidateToken_Garbage(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo)

	claims, err := authService.ValidateToken("not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}
