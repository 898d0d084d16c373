package routes

import (
	"github.com/BerniceZTT/leads_end/controllers"
	"github.com/BerniceZTT/leads_end/middleware"
	"github.com/BerniceZTT/leads_end/models"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证路由
func RegisterAuthRoutes(router *gin.Engine) {
	// 管理员登录
	auth := router.Group("/api/auth")
	auth.POST("/login", controllers.AdminLogin)

	// 销售登录
	salesAuth := router.Group("/api/login-sales")
	salesAuth.POST("/login", controllers.SalesLogin)
	salesAuth.GET("/welcome-sales", middleware.Auth(models.UserRoleSales), controllers.WelcomeSales)
}
