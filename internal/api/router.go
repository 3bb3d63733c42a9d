package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/prevalence-backend-go/internal/config"
	"github.com/jengzang/prevalence-backend-go/internal/handler"
	"github.com/jengzang/prevalence-backend-go/internal/middleware"
	"github.com/jengzang/prevalence-backend-go/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, controller *service.Controller, deriver *service.DeriveService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		if controller.State() == service.StateUninitialized {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unavailable",
				"message": "Dataset not loaded",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Prevalence Dashboard API is running",
		})
	})

	dashboardHandler := handler.NewDashboardHandler(controller)

	// API 路由组
	api := r.Group("/api/v1")
	{
		// 病种选择接口
		conditions := api.Group("/conditions")
		{
			conditions.GET("", dashboardHandler.GetConditions)
			conditions.POST("/select", dashboardHandler.SelectCondition)
		}

		// 仪表盘视图接口
		api.GET("/dashboard", dashboardHandler.GetDashboard)
		api.POST("/table/page", dashboardHandler.NavigateTable)
		api.GET("/map.svg", dashboardHandler.GetMapSVG)

		// 管理接口
		if deriver != nil {
			adminHandler := handler.NewAdminHandler(deriver, controller)
			admin := api.Group("/admin")
			admin.Use(middleware.JWTAuth(cfg.JWTSecret))
			admin.Use(middleware.RateLimit(5, time.Minute))
			{
				admin.POST("/rebuild", adminHandler.Rebuild)
			}
		}
	}

	return r
}
