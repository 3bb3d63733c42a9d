package main

import (
	"log"

	"github.com/jengzang/prevalence-backend-go/internal/api"
	"github.com/jengzang/prevalence-backend-go/internal/config"
	"github.com/jengzang/prevalence-backend-go/internal/database"
	"github.com/jengzang/prevalence-backend-go/internal/dataset"
	"github.com/jengzang/prevalence-backend-go/internal/repository"
	"github.com/jengzang/prevalence-backend-go/internal/service"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库（邮编查找表，供管理端重建使用）
	dbConfig := database.Config{
		Path: cfg.PostcodeDBPath,
	}
	if err := database.Init(dbConfig); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	postcodes := repository.NewPostcodeRepository(database.GetDB())
	if err := postcodes.EnsureSchema(); err != nil {
		log.Fatal("Failed to prepare postcode store:", err)
	}

	// 加载数据集：失败时直接退出，不做静默降级
	ds, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	controller := service.NewController(960, 720, cfg.PageSize)
	if err := controller.Load(ds); err != nil {
		log.Fatalf("Failed to initialize dashboard: %v", err)
	}

	deriver := service.NewDeriveService(cfg, postcodes)

	// 初始化路由
	router := api.SetupRouter(cfg, controller, deriver)

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
