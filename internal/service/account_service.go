package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ezguapp/medalert/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials 登录凭据校验失败
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken 注册时用户名已存在
	ErrUsernameTaken = errors.New("username already exists")
	// ErrPasswordMismatch 两次输入的密码不一致
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrAccountInvalidInput 必填字段缺失
	ErrAccountInvalidInput = errors.New("username and password are required")
)

// AccountService 负责注册与登录校验
type AccountService struct {
	db *gorm.DB
}

// NewAccountService 构造 AccountService
func NewAccountService(gdb *gorm.DB) *AccountService {
	return &AccountService{db: gdb}
}

// Register validates the sign-up form, creates the account with a bcrypt
// hash and seeds an empty profile row for it.
func (s *AccountService) Register(username, email, password, confirm string) (*db.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || password == "" {
		return nil, ErrAccountInvalidInput
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	var existing db.User
	err := s.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := db.User{Username: username, Email: email, Password: string(hashed)}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.db.Create(&db.UserProfile{UserID: user.ID}).Error; err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return &user, nil
}

// Authenticate checks the credentials and returns the matching account.
func (s *AccountService) Authenticate(username, password string) (*db.User, error) {
	var user db.User
	err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}
