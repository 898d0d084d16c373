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

// GetColumnPreferences 获取当前用户的列显示配置（默认值与已存储值合并）
func GetColumnPreferences(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var stored models.SalesUser
	err = repository.Collection(repository.SalesUsersCollection).
		FindOne(repository.GetContext(), bson.M{"_id": userID}).
		Decode(&stored)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.ErrorResponse(c, "User not found", http.StatusNotFound)
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, models.MergeColumnPreferences(stored.ColumnPreferences), "")
}

// SaveColumnPreferences 保存当前用户的列显示配置
// 所有必需key必须存在且为布尔值，否则400且不改动已存储配置
func SaveColumnPreferences(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var body struct {
		ColumnPreferences map[string]interface{} `json:"columnPreferences"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponse(c, "Column preferences are required", http.StatusBadRequest)
		return
	}

	prefs, err := models.ValidateColumnPreferences(body.ColumnPreferences)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusBadRequest)
		return
	}

	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	update := bson.M{"$set": bson.M{
		"columnPreferences": prefs,
		"updatedAt":         time.Now(),
	}}

	result, err := repository.Collection(repository.SalesUsersCollection).
		UpdateOne(repository.GetContext(), bson.M{"_id": userID}, update)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.ErrorResponse(c, "User not found", http.StatusNotFound)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"userId": user.ID,
	}, "保存列显示配置成功")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Column preferences saved successfully",
		"data":    prefs,
	})
}
