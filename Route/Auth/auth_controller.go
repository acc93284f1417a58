package Auth

import (
	"errors"
	"net/http"

	"github.com/przwal/notesapp/database"
	"github.com/przwal/notesapp/service/Auth"

	"github.com/gin-gonic/gin"
)

// Register 用户注册
func Register(c *gin.Context) {
	var req database.RegisterRequest

	// 绑定请求数据
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	user, err := Auth.GlobalUserService.Register(req)
	if err != nil {
		if errors.Is(err, Auth.ErrEmailExists) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "邮箱已被注册",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "创建用户失败",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "注册成功",
		"userId":  user.ID,
	})
}

// Login 用户登录
func Login(c *gin.Context) {
	var req database.LoginRequest

	// 绑定请求数据
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	// 邮箱不存在和密码错误走同一个分支，响应完全一致
	user, err := Auth.GlobalUserService.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, Auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "邮箱或密码错误",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "登录失败",
		})
		return
	}

	// 生成JWT令牌
	token, err := Auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "生成令牌失败",
		})
		return
	}

	c.JSON(http.StatusOK, database.LoginResponse{
		Token: token,
		User: database.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}
