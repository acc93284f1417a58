package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 用户数据存储结构
type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Name         string `gorm:"not null;size:100" json:"name"`
	Email        string `gorm:"uniqueIndex;not null;size:100" json:"email"`
	PasswordHash string `gorm:"not null;size:255" json:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BeforeCreate 创建前生成UUID主键
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// RegisterRequest 注册请求结构体
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

// LoginRequest 登录请求结构体
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse 用户响应结构体
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResponse 登录响应结构体
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
