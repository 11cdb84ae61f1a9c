package service

import (
	"errors"
	"testing"
	"topup_store/internal/domain/user/model"
	"topup_store/internal/pkg/config"
	"topup_store/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetList(offset, limit int) ([]model.User, int64, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Update(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func TestRegister(t *testing.T) {
	t.Run("Successful registration hashes the password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo)

		mockRepo.On("Create", mock.AnythingOfType("*model.User")).Return(nil)

		user, err := svc.Register("alice@example.com", "secret123", "alice", "Alice")

		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEqual(t, "secret123", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo)

		mockRepo.On("Create", mock.Anything).Return(gorm.ErrDuplicatedKey)

		_, err := svc.Register("alice@example.com", "secret123", "alice", "Alice")

		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestLogin(t *testing.T) {
	config.GlobalConfig.JWT.Secret = "test_secret_key_at_least_32_chars_long"
	config.GlobalConfig.JWT.Expire = 24

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	stored := &model.User{Email: "alice@example.com", Password: string(hash), IsAdmin: true}
	stored.ID = "u1"

	t.Run("Successful login issues token with identity claims", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo)

		mockRepo.On("GetByEmail", "alice@example.com").Return(stored, nil)

		token, err := svc.Login("alice@example.com", "secret123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := utils.ParseToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo)

		mockRepo.On("GetByEmail", "alice@example.com").Return(stored, nil)

		_, err := svc.Login("alice@example.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo)

		mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Login("nobody@example.com", "secret123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Repository error is passed through", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo)

		dbErr := errors.New("connection reset")
		mockRepo.On("GetByEmail", "alice@example.com").Return(nil, dbErr)

		_, err := svc.Login("alice@example.com", "secret123")

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestGetUsers(t *testing.T) {
	t.Run("Page parameters normalized", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo)

		mockRepo.On("GetList", 0, 10).Return([]model.User{}, int64(0), nil)

		_, _, err := svc.GetUsers(0, -5)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Offset computed from page", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo)

		mockRepo.On("GetList", 40, 20).Return([]model.User{{Email: "a@b.c"}}, int64(41), nil)

		users, total, err := svc.GetUsers(3, 20)

		assert.NoError(t, err)
		assert.Equal(t, int64(41), total)
		assert.Len(t, users, 1)
	})
}
