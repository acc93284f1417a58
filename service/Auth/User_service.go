package Auth

import (
	"errors"

	"github.com/przwal/notesapp/database"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 认证相关的哨兵错误
var (
	ErrEmailExists = errors.New("邮箱已被注册")
	// ErrInvalidCredentials 邮箱不存在和密码错误返回同一个错误，避免暴露账号是否存在
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
)

// dummyHash 用于邮箱不存在时的空比较，使两种失败路径耗时一致
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// GlobalUserService 全局 UserService 实例
var GlobalUserService UserService

// UserService 用户服务接口
type UserService interface {
	Register(req database.RegisterRequest) (*database.User, error)
	Authenticate(email, password string) (*database.User, error)
	GetUserByID(id string) (*database.User, error)
}

// 用户服务实现
type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) (UserService, error) {
	if db == nil {
		return nil, errors.New("数据库连接不能为空")
	}

	userService := &userService{db}
	GlobalUserService = userService
	return userService, nil
}

// Register 注册用户，邮箱精确匹配去重
func (s *userService) Register(req database.RegisterRequest) (*database.User, error) {
	var existingUser database.User
	err := s.db.Where("email = ?", req.Email).First(&existingUser).Error
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &database.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate 校验邮箱和密码
func (s *userService) Authenticate(email, password string) (*database.User, error) {
	var user database.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 空比较，保持与密码错误路径相同的耗时
			VerifyPassword(password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetUserByID 根据ID获取用户
func (s *userService) GetUserByID(id string) (*database.User, error) {
	var user database.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// HashPassword 将密码哈希化
func HashPassword(password string) (string, error) {
	if len(password) > 72 {
		password = password[:72]
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPassword 验证哈希密码
func VerifyPassword(password, hash string) bool {
	if len(password) > 72 {
		password = password[:72]
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
