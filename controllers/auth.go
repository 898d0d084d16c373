package controllers

import (
	"net/http"

	"github.com/BerniceZTT/leads_end/config"
	"github.com/BerniceZTT/leads_end/models"
	"github.com/BerniceZTT/leads_end/repository"
	"github.com/BerniceZTT/leads_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var cfg *config.Config

// Init 注入应用配置，main 中调用一次
func Init(c *config.Config) {
	cfg = c
}

// AdminLogin 管理员登录
// 管理员凭据来自配置，系统只有一个管理员
func AdminLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "Invalid request body", http.StatusBadRequest)
		return
	}

	utils.Logger.Info().Str("email", req.Email).Msg("管理员登录尝试")

	if req.Email == "" || req.Password == "" {
		utils.ErrorResponse(c, "Email and password are required", http.StatusBadRequest)
		return
	}

	if req.Email != cfg.AdminEmail || req.Password != cfg.AdminPassword {
		utils.Logger.Info().Str("email", req.Email).Msg("管理员登录失败: 凭据错误")
		utils.ErrorResponse(c, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	accessToken, err := utils.GenerateAdminToken()
	if err != nil {
		utils.Logger.Error().Err(err).Msg("生成管理员token失败")
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Admin Logged in successful",
		"accessToken": accessToken,
	})
}

// SalesLogin 销售用户登录
func SalesLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.ErrorResponse(c, "Email and password are required", http.StatusBadRequest)
		return
	}

	usersCollection := repository.Collection(repository.SalesUsersCollection)

	var user models.SalesUser
	err := usersCollection.FindOne(repository.GetContext(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// 不暴露邮箱是否存在
			utils.Logger.Info().Str("email", req.Email).Msg("销售登录失败: 用户不存在")
			utils.ErrorResponse(c, "Login failed", http.StatusUnauthorized)
			return
		}
		utils.HandleError(c, err)
		return
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		utils.Logger.Info().Str("email", req.Email).Msg("销售登录失败: 密码错误")
		utils.ErrorResponse(c, "Login failed", http.StatusUnauthorized)
		return
	}

	accessToken, err := utils.GenerateSalesToken(&user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Sales person logged in successful",
		"accessToken": accessToken,
	})
}

// WelcomeAdmin 管理端欢迎接口
func WelcomeAdmin(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Welcome to the admin dashboard",
		"user": gin.H{
			"userName": user.Name,
			"role":     user.Role,
		},
	})
}

// WelcomeSales 销售端欢迎接口
func WelcomeSales(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Welcome! You are authenticated as a sales person.",
		"user": gin.H{
			"userId":   user.ID,
			"userName": user.Name,
			"role":     user.Role,
		},
	})
}
