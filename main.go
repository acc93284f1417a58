package main

import (
	"log"

	"github.com/przwal/notesapp/Config"
	"github.com/przwal/notesapp/Route"
	"github.com/przwal/notesapp/database"
	AuthService "github.com/przwal/notesapp/service/Auth"
	CategoryService "github.com/przwal/notesapp/service/Category"
	NoteService "github.com/przwal/notesapp/service/Note"
)

func main() {

	// 初始化配置
	if err := Config.InitConfig(); err != nil {
		log.Fatalf("配置初始化失败: %v", err)
	}

	// 初始化数据库
	if err := database.InitDB(Config.Cfg.DatabaseURL); err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	// 初始化Redis（失败时自动降级，不阻塞启动）
	database.InitRedis(Config.Cfg.RedisAddr, Config.Cfg.RedisPassword, Config.Cfg.RedisDB)

	// 初始化服务（数据库已初始化后）
	if _, err := AuthService.NewUserService(database.DB); err != nil {
		log.Fatalf("用户服务初始化失败: %v", err)
	}
	CategoryService.NewCategoryService()
	NoteService.NewNoteService()

	// 启动路由
	log.Println("服务器启动中...")
	Route.AppRoute()
}
