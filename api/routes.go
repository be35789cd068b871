package api

import (
	"github.com/AscentLab/realm-ascent-backend/internal/ledger"
	"github.com/AscentLab/realm-ascent-backend/internal/progress"
	"github.com/AscentLab/realm-ascent-backend/internal/task"
	"github.com/AscentLab/realm-ascent-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 账号与会话相关的路由
		api.POST("/register", user.Register)
		api.POST("/login", user.Login)
		api.POST("/logout", user.Logout)
		api.GET("/user", user.RequireAuthMiddleware(), user.GetCurrentUser)

		// 任务相关的路由组 /api/tasks
		taskRoutes := api.Group("/tasks", user.RequireAuthMiddleware())
		{
			taskRoutes.GET("", task.ListTasks)
			taskRoutes.GET("/realm/:realm", task.ListTasksByRealm)
			taskRoutes.GET("/caution", task.ListCautionTasks)
			taskRoutes.POST("", task.CreateTaskHandler)
			taskRoutes.PATCH("/:id", task.UpdateTaskHandler)
			taskRoutes.DELETE("/:id", task.DeleteTaskHandler)
		}

		// 进度摘要路由
		api.GET("/progress", user.RequireAuthMiddleware(), progress.GetProgress)

		// XP流水相关的路由
		xpRoutes := api.Group("/xp-entries", user.RequireAuthMiddleware())
		{
			xpRoutes.GET("", ledger.ListXpEntries)
			xpRoutes.POST("", ledger.LogXpHandler)
		}
	}
}
