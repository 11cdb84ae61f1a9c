package service

import (
	"errors"
	"topup_store/internal/domain/user/model"
	"topup_store/internal/domain/user/repository"
	"topup_store/pkg/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrEmailExists 邮箱已注册
	ErrEmailExists = errors.New("email already registered")
	// ErrInvalidCredentials 邮箱或密码错误
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserService 用户服务接口
type UserService interface {
	Register(email, password, username, fullName string) (*model.User, error)
	Login(email, password string) (string, error)
	GetUser(id string) (*model.User, error)
	UpdateProfile(id, username, fullName, avatarURL string) (*model.User, error)
	GetUsers(page, limit int) ([]model.User, int64, error)
}

// userService 实现
type userService struct {
	repo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register 注册
func (s *userService) Register(email, password, username, fullName string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Password: string(hash),
		Username: username,
		FullName: fullName,
	}

	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

// Login 登录，成功返回 JWT Token
func (s *userService) Login(email, password string) (string, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateToken(user.ID, user.IsAdmin)
}

// GetUser 获取单个用户
func (s *userService) GetUser(id string) (*model.User, error) {
	return s.repo.GetByID(id)
}

// UpdateProfile 更新个人资料
func (s *userService) UpdateProfile(id, username, fullName, avatarURL string) (*model.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	user.Username = username
	user.FullName = fullName
	user.AvatarURL = avatarURL

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUsers 获取用户列表（分页，管理后台用）
func (s *userService) GetUsers(page, limit int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.GetList(offset, limit)
}
