package Route

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/przwal/notesapp/Config"
	"github.com/przwal/notesapp/Route/Auth"
	"github.com/przwal/notesapp/Route/Category"
	"github.com/przwal/notesapp/Route/Note"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func AppRoute() {
	r := gin.Default()

	// 配置CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 公开路由：注册和登录不需要令牌
	auth := r.Group("/auth")
	{
		auth.POST("/signup", Auth.Register)
		auth.POST("/login", Auth.Login)
	}

	// 需要认证的路由，先过认证中间件再进各个处理器
	api := r.Group("/api")
	api.Use(Auth.AuthMiddleware())
	{
		api.GET("/notes", Note.GetNotes)
		api.GET("/notes/:id", Note.GetNoteByID)
		api.POST("/notes", Note.CreateNote)
		api.PUT("/notes/:id", Note.UpdateNote)
		api.DELETE("/notes/:id", Note.DeleteNote)

		api.GET("/category", Category.GetCategories)
		api.POST("/category", Category.CreateCategory)
		api.DELETE("/category/:id", Category.DeleteCategory)
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	// 启动服务器
	if err := r.Run(":" + Config.Cfg.ServerPort); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
