package routes

import (
	"github.com/BerniceZTT/leads_end/controllers"
	"github.com/BerniceZTT/leads_end/middleware"
	"github.com/BerniceZTT/leads_end/models"

	"github.com/gin-gonic/gin"
)

// RegisterConversationRoutes 注册跟进会话路由
// 管理员也可访问，可见范围由控制器按角色限定
func RegisterConversationRoutes(router *gin.Engine) {
	conversations := router.Group("/api/sales/conversations")
	conversations.Use(middleware.Auth(models.UserRoleSales, models.UserRoleAdmin))

	conversations.POST("/add", controllers.AddConversation)
	conversations.GET("/lead/:lead_id", controllers.GetConversationsByLead)
}
