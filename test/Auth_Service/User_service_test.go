package Auth_Service

import (
	"errors"
	"testing"

	"github.com/przwal/notesapp/Config"
	"github.com/przwal/notesapp/service/Auth"

	"github.com/glebarez/sqlite"
	"github.com/przwal/notesapp/database"
	"gorm.io/gorm"
)

// setupTestDB 创建测试数据库（使用 SQLite 内存数据库）
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("无法创建测试数据库: %v", err)
	}

	// 自动迁移用户表
	err = db.AutoMigrate(&database.User{})
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	return db
}

// setupUserService 创建用户服务实例
func setupUserService(t *testing.T) (Auth.UserService, *gorm.DB) {
	db := setupTestDB(t)
	service, err := Auth.NewUserService(db)
	if err != nil {
		t.Fatalf("创建用户服务失败: %v", err)
	}
	return service, db
}

// TestRegister 测试用户注册
func TestRegister(t *testing.T) {
	service, db := setupUserService(t)

	// 先注册一个用户，用于重复邮箱用例
	first, err := service.Register(database.RegisterRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("注册初始用户失败: %v", err)
	}
	if first.ID == "" {
		t.Error("注册成功后应分配用户ID")
	}

	tests := []struct {
		name    string
		request database.RegisterRequest
		wantErr error
	}{
		{
			name: "成功创建用户",
			request: database.RegisterRequest{
				Name:     "bob",
				Email:    "bob@example.com",
				Password: "password456",
			},
			wantErr: nil,
		},
		{
			name: "邮箱已存在",
			request: database.RegisterRequest{
				Name:     "alice2",
				Email:    "alice@example.com", // 与初始用户重复
				Password: "password789",
			},
			wantErr: Auth.ErrEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.Register(tt.request)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Register() 错误不匹配: 得到 %v, 期望 %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("Register() 意外返回错误: %v", err)
				return
			}

			// 密码必须哈希存储，不能保存原文
			if user.PasswordHash == tt.request.Password {
				t.Error("密码被明文存储")
			}
			if !Auth.VerifyPassword(tt.request.Password, user.PasswordHash) {
				t.Error("存储的密码哈希无法通过校验")
			}
		})
	}

	// 重复注册失败后，最初的用户记录必须原样保留
	var kept database.User
	if err := db.Where("email = ?", "alice@example.com").First(&kept).Error; err != nil {
		t.Fatalf("查询初始用户失败: %v", err)
	}
	if kept.ID != first.ID || kept.Name != "alice" {
		t.Errorf("重复注册影响了已有用户记录: %+v", kept)
	}
}

// TestAuthenticate 测试登录校验
func TestAuthenticate(t *testing.T) {
	service, _ := setupUserService(t)

	if _, err := service.Register(database.RegisterRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}); err != nil {
		t.Fatalf("注册测试用户失败: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "正确的邮箱和密码",
			email:    "alice@example.com",
			password: "password123",
			wantErr:  nil,
		},
		{
			name:     "密码错误",
			email:    "alice@example.com",
			password: "wrongpassword",
			wantErr:  Auth.ErrInvalidCredentials,
		},
		{
			name:     "邮箱不存在",
			email:    "nobody@example.com",
			password: "password123",
			wantErr:  Auth.ErrInvalidCredentials,
		},
		{
			name:     "邮箱大小写不同视为不存在",
			email:    "ALICE@example.com",
			password: "password123",
			wantErr:  Auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.Authenticate(tt.email, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Authenticate() 错误不匹配: 得到 %v, 期望 %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("Authenticate() 意外返回错误: %v", err)
				return
			}
			if user.Email != tt.email {
				t.Errorf("返回的用户邮箱不匹配: 得到 %v", user.Email)
			}
		})
	}
}

// TestAuthenticateGenericError 邮箱不存在和密码错误必须返回完全相同的错误
func TestAuthenticateGenericError(t *testing.T) {
	service, _ := setupUserService(t)

	if _, err := service.Register(database.RegisterRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}); err != nil {
		t.Fatalf("注册测试用户失败: %v", err)
	}

	_, errWrongPassword := service.Authenticate("alice@example.com", "wrongpassword")
	_, errUnknownEmail := service.Authenticate("nobody@example.com", "password123")

	if errWrongPassword == nil || errUnknownEmail == nil {
		t.Fatal("两种失败路径都应返回错误")
	}
	if errWrongPassword.Error() != errUnknownEmail.Error() {
		t.Errorf("两种失败路径的错误消息不一致: %q vs %q",
			errWrongPassword.Error(), errUnknownEmail.Error())
	}
}

// TestGenerateAndValidateToken 测试令牌签发与验证
func TestGenerateAndValidateToken(t *testing.T) {
	originalCfg := Config.Cfg
	defer func() { Config.Cfg = originalCfg }()

	Config.Cfg.SecretKey = "test-secret-key"
	Config.Cfg.TokenExpiry = 60

	token, err := Auth.GenerateToken("user-uuid-1", "alice@example.com")
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	claims, err := Auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("验证令牌失败: %v", err)
	}
	if claims.UserID != "user-uuid-1" {
		t.Errorf("令牌中的用户ID不匹配: 得到 %v", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("令牌中的邮箱不匹配: 得到 %v", claims.Email)
	}

	// 篡改后的令牌必须被拒绝
	if _, err := Auth.ValidateToken(token + "x"); err == nil {
		t.Error("被篡改的令牌不应通过验证")
	}
}

// TestExpiredToken 过期令牌在任何受保护操作前都应被拒绝
func TestExpiredToken(t *testing.T) {
	originalCfg := Config.Cfg
	defer func() { Config.Cfg = originalCfg }()

	Config.Cfg.SecretKey = "test-secret-key"
	Config.Cfg.TokenExpiry = -1 // 签发即过期

	token, err := Auth.GenerateToken("user-uuid-1", "alice@example.com")
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	if _, err := Auth.ValidateToken(token); err == nil {
		t.Error("过期令牌不应通过验证")
	}
}
