package controllers

import (
	"net/http"
	"time"

	"github.com/BerniceZTT/leads_end/models"
	"github.com/BerniceZTT/leads_end/repository"
	"github.com/BerniceZTT/leads_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AddSalesUser 管理员创建销售用户
func AddSalesUser(c *gin.Context) {
	var req models.AddSalesUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "Invalid request body", http.StatusBadRequest)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"name":  req.Name,
		"email": req.Email,
		"role":  req.Role,
	}, "收到创建销售用户请求")

	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		utils.ErrorResponse(c, "All fields (name, email, password, role) are required", http.StatusBadRequest)
		return
	}
	if !req.Role.IsValid() {
		utils.ErrorResponse(c, "role must be one of admin, sales", http.StatusBadRequest)
		return
	}
	if !utils.IsValidEmail(req.Email) {
		utils.ErrorResponse(c, "Please enter a valid email", http.StatusBadRequest)
		return
	}

	ctx := repository.GetContext()
	usersCollection := repository.Collection(repository.SalesUsersCollection)

	// 检查邮箱是否已注册
	var existing models.SalesUser
	err := usersCollection.FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing)
	if err == nil {
		utils.Logger.Info().Str("email", req.Email).Msg("邮箱已存在")
		utils.ErrorResponse(c, "User with this email already exists", http.StatusBadRequest)
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.HandleError(c, err)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	now := time.Now()
	newUser := models.SalesUser{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashed,
		Role:      req.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := usersCollection.InsertOne(ctx, newUser)
	if err != nil {
		// 唯一索引兜底并发重复注册
		if mongo.IsDuplicateKeyError(err) {
			utils.ErrorResponse(c, "User with this email already exists", http.StatusBadRequest)
			return
		}
		utils.HandleError(c, err)
		return
	}

	newUser.ID = result.InsertedID.(primitive.ObjectID)

	utils.LogInfo(map[string]interface{}{
		"id":    newUser.ID.Hex(),
		"email": newUser.Email,
	}, "创建销售用户成功")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Sales user added successfully",
		"data": gin.H{
			"id":    newUser.ID,
			"name":  newUser.Name,
			"email": newUser.Email,
			"role":  newUser.Role,
		},
	})
}
