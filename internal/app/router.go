package app

import (
	"habit_tracker_backend/docs"
	"habit_tracker_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	// Swagger文档
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	// 监控指标
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	habits := router.Group("/habits")
	{
		habits.POST("", c.habit.CreateHabit)
		habits.GET("", c.habit.ListHabits)
		habits.PATCH("/:id/toggle", c.habit.ToggleHabit)
	}

	router.GET("/day", c.day.GetDay)
	router.GET("/summary", c.summary.GetSummary)
}
