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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findVisibleLead 按调用方角色查找线索：管理员可见全部，销售仅可见自己创建的
func findVisibleLead(user *utils.AuthUser, leadID primitive.ObjectID) (*models.Lead, error) {
	filter := bson.M{"_id": leadID}
	if user.Role != models.UserRoleAdmin {
		ownerID, err := primitive.ObjectIDFromHex(user.ID)
		if err != nil {
			return nil, err
		}
		filter["created_by"] = ownerID
	}

	var lead models.Lead
	err := repository.Collection(repository.LeadsCollection).
		FindOne(repository.GetContext(), filter).
		Decode(&lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.CreateNotFoundError("Lead")
		}
		return nil, err
	}

	return &lead, nil
}

// upsertConversationEntry 向线索的会话文档追加一条记录，不存在时创建
// 依赖 lead_id 唯一索引保证每个线索只有一个会话文档
func upsertConversationEntry(leadID primitive.ObjectID, entry models.ConversationEntry) (*models.LeadConversation, error) {
	result, err := repository.ExecuteDbOperation(func() (interface{}, error) {
		coll := repository.Collection(repository.LeadConversationsCollection)

		update := bson.M{
			"$push": bson.M{"conversations": entry},
			"$set":  bson.M{"last_updated": time.Now()},
		}
		opts := options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After)

		var doc models.LeadConversation
		err := coll.FindOneAndUpdate(repository.GetContext(), bson.M{"lead_id": leadID}, update, opts).Decode(&doc)
		if err != nil {
			return nil, err
		}
		return &doc, nil
	}, 1)

	if err != nil {
		return nil, err
	}
	return result.(*models.LeadConversation), nil
}

// AddConversation 添加跟进记录
func AddConversation(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var req models.AddConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.LeadID == "" || req.ConversationNotes == "" {
		utils.ErrorResponse(c, "Lead ID and conversation notes are required", http.StatusBadRequest)
		return
	}

	leadID, err := primitive.ObjectIDFromHex(req.LeadID)
	if err != nil {
		utils.ErrorResponse(c, "Invalid lead ID format", http.StatusBadRequest)
		return
	}

	// 线索必须存在且对调用方可见
	lead, err := findVisibleLead(user, leadID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	now := time.Now()
	authorID := lead.CreatedBy
	authorName := user.Name
	if user.Role != models.UserRoleAdmin {
		authorID, err = primitive.ObjectIDFromHex(user.ID)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
	} else {
		// 管理员代录时记在线索归属销售名下
		if owner, ownerErr := repository.FindSalesUserByID(lead.CreatedBy.Hex()); ownerErr == nil {
			authorName = owner.Name
		}
	}

	entry := models.ConversationEntry{
		SalesUserID:       authorID,
		SalesPersonName:   authorName,
		ConversationNotes: req.ConversationNotes,
		ConversationDate:  now,
		UpdatedAt:         now,
	}

	doc, err := upsertConversationEntry(leadID, entry)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"leadId":     leadID.Hex(),
		"entryCount": len(doc.Conversations),
	}, "添加跟进记录成功")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Conversation added successfully",
		"data":    doc,
	})
}

// GetConversationsByLead 获取某个线索的跟进记录，按日期倒序
func GetConversationsByLead(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	leadID, err := primitive.ObjectIDFromHex(c.Param("lead_id"))
	if err != nil {
		utils.ErrorResponse(c, "Invalid lead ID format", http.StatusBadRequest)
		return
	}

	if _, err := findVisibleLead(user, leadID); err != nil {
		utils.HandleError(c, err)
		return
	}

	var doc models.LeadConversation
	err = repository.Collection(repository.LeadConversationsCollection).
		FindOne(repository.GetContext(), bson.M{"lead_id": leadID}).
		Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// 尚无跟进记录
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"data":    []models.ConversationEntry{},
			})
			return
		}
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    models.SortEntriesNewestFirst(doc.Conversations),
	})
}
