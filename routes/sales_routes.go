package routes

import (
	"github.com/BerniceZTT/leads_end/controllers"
	"github.com/BerniceZTT/leads_end/middleware"
	"github.com/BerniceZTT/leads_end/models"

	"github.com/gin-gonic/gin"
)

// RegisterSalesRoutes 注册销售端线索相关路由
func RegisterSalesRoutes(router *gin.Engine) {
	sales := router.Group("/api/sales")
	sales.Use(middleware.Auth(models.UserRoleSales))

	sales.POST("/add-leads-to-sales", controllers.CreateLead)
	sales.GET("/leads", controllers.GetLeads)
	sales.PUT("/leads/:leadId", controllers.UpdateLead)
	sales.GET("/column-preferences", controllers.GetColumnPreferences)
	sales.PUT("/column-preferences", controllers.SaveColumnPreferences)
	sales.GET("/custom-lead-types", controllers.GetCustomLeadTypes)
}
