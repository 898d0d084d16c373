package controllers

import (
	"net/http"

	"github.com/BerniceZTT/leads_end/models"
	"github.com/BerniceZTT/leads_end/repository"
	"github.com/BerniceZTT/leads_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetCustomLeadTypes 获取当前用户录入过的自定义线索类别，按录入时间倒序
func GetCustomLeadTypes(c *gin.Context) {
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

	ctx := repository.GetContext()
	coll := repository.Collection(repository.CustomLeadTypesCollection)

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := coll.Find(ctx, bson.M{"sales_user_id": userID}, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var rows []models.CustomLeadType
	if err = cursor.All(ctx, &rows); err != nil {
		utils.HandleError(c, err)
		return
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.CustomType)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    names,
	})
}
