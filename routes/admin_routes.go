package routes

import (
	"github.com/BerniceZTT/leads_end/controllers"
	"github.com/BerniceZTT/leads_end/middleware"
	"github.com/BerniceZTT/leads_end/models"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes 注册管理端路由
func RegisterAdminRoutes(router *gin.Engine) {
	admin := router.Group("/api/admin")

	// 销售欢迎接口挂在管理前缀下（历史遗留路径）
	admin.GET("/welcome-sales", middleware.Auth(models.UserRoleSales), controllers.WelcomeSales)

	adminOnly := admin.Group("")
	adminOnly.Use(middleware.Auth(models.UserRoleAdmin))

	adminOnly.GET("/welcome-admin", controllers.WelcomeAdmin)
	adminOnly.GET("/leads", controllers.GetAllLeadsAdmin)
	adminOnly.PUT("/leads/:leadId", controllers.UpdateLead)
	adminOnly.POST("/add-sales", controllers.AddSalesUser)
}
