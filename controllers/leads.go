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

// CreateLead 销售创建线索
func CreateLead(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var req models.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "Invalid request body", http.StatusBadRequest)
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation error",
			"errors":  errs,
		})
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	ctx := repository.GetContext()
	now := time.Now()
	lead := req.ToLead(ownerID, now)

	leadsCollection := repository.Collection(repository.LeadsCollection)
	result, err := leadsCollection.InsertOne(ctx, lead)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	lead.ID = result.InsertedID.(primitive.ObjectID)

	// 自定义类别写入去重表，失败不影响主流程
	if req.TypeOfLead == models.LeadTypeOther && req.CustomType != "" {
		saveCustomLeadType(ownerID, req.CustomType)
	}

	utils.LogInfo(map[string]interface{}{
		"leadId":    lead.ID.Hex(),
		"createdBy": user.ID,
	}, "创建线索成功")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Lead added successfully",
		"data":    lead,
	})
}

// saveCustomLeadType 幂等插入自定义线索类别，重复键静默忽略
func saveCustomLeadType(salesUserID primitive.ObjectID, customType string) {
	_, err := repository.ExecuteDbOperation(func() (interface{}, error) {
		coll := repository.Collection(repository.CustomLeadTypesCollection)
		return coll.InsertOne(repository.GetContext(), models.CustomLeadType{
			SalesUserID: salesUserID,
			CustomType:  customType,
			CreatedAt:   time.Now(),
		})
	}, 1)

	if err != nil && !mongo.IsDuplicateKeyError(err) {
		utils.LogError(err, map[string]interface{}{
			"salesUserId": salesUserID.Hex(),
			"customType":  customType,
		}, "保存自定义线索类别失败")
	}
}

// GetLeads 销售获取自己创建的线索列表
func GetLeads(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	ctx := repository.GetContext()
	leadsCollection := repository.Collection(repository.LeadsCollection)

	// 按创建时间倒序
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := leadsCollection.Find(ctx, bson.M{"created_by": ownerID}, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	leads := []models.Lead{}
	if err = cursor.All(ctx, &leads); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"userId":    user.ID,
		"leadCount": len(leads),
	}, "获取线索列表成功")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Leads fetched successfully",
		"leads":   leads,
	})
}

// GetAllLeadsAdmin 管理员获取全部线索，附带创建人信息与业绩统计
func GetAllLeadsAdmin(c *gin.Context) {
	ctx := repository.GetContext()

	leadsCollection := repository.Collection(repository.LeadsCollection)
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := leadsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	leads := []models.Lead{}
	if err = cursor.All(ctx, &leads); err != nil {
		utils.HandleError(c, err)
		return
	}

	usersCollection := repository.Collection(repository.SalesUsersCollection)
	userCursor, err := usersCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer userCursor.Close(ctx)

	salesUsers := []models.SalesUser{}
	if err = userCursor.All(ctx, &salesUsers); err != nil {
		utils.HandleError(c, err)
		return
	}

	// 创建人信息映射
	usersByID := make(map[primitive.ObjectID]models.SalesUser, len(salesUsers))
	for _, u := range salesUsers {
		usersByID[u.ID] = u
	}

	adminLeads := make([]models.AdminLead, 0, len(leads))
	for _, lead := range leads {
		annotated := models.AdminLead{Lead: lead}
		if owner, ok := usersByID[lead.CreatedBy]; ok {
			annotated.SalesPersonName = owner.Name
			annotated.SalesPersonEmail = owner.Email
		}
		adminLeads = append(adminLeads, annotated)
	}

	metrics := models.ComputePerformanceMetrics(leads, salesUsers, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"message":            "All leads fetched successfully",
		"leads":              adminLeads,
		"performanceMetrics": metrics,
	})
}

// UpdateLead 更新线索，管理员可更新任意线索，销售只能更新自己创建的
func UpdateLead(c *gin.Context) {
	user, err := utils.CurrentUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	leadID, err := primitive.ObjectIDFromHex(c.Param("leadId"))
	if err != nil {
		utils.ErrorResponse(c, "Invalid lead ID format", http.StatusBadRequest)
		return
	}

	var req models.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "Invalid request body", http.StatusBadRequest)
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation error",
			"errors":  errs,
		})
		return
	}

	ctx := repository.GetContext()
	leadsCollection := repository.Collection(repository.LeadsCollection)

	// 按角色限定可见范围
	filter := bson.M{"_id": leadID}
	if user.Role != models.UserRoleAdmin {
		ownerID, err := primitive.ObjectIDFromHex(user.ID)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		filter["created_by"] = ownerID
	}

	var existingLead models.Lead
	err = leadsCollection.FindOne(ctx, filter).Decode(&existingLead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			message := "Lead not found"
			if user.Role != models.UserRoleAdmin {
				message = "Lead not found or you don't have permission to edit it"
			}
			utils.ErrorResponse(c, message, http.StatusNotFound)
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"leadId":    leadID.Hex(),
		"userName":  user.Name,
		"intrested": req.Intrested,
		"status":    req.Status,
	}, "更新线索")

	// 只更新可变字段
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"intrested":              req.Intrested,
		"follow_up_conversation": req.FollowUpConversation,
		"status":                 req.Status,
		"updated_at":             now,
	}}

	var updatedLead models.Lead
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = leadsCollection.FindOneAndUpdate(ctx, bson.M{"_id": leadID}, update, opts).Decode(&updatedLead)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	// 跟进内容非空时追加到会话记录，失败只记日志
	if req.FollowUpConversation != "" {
		appendFollowUpNote(user, &existingLead, req.FollowUpConversation, now)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Lead updated successfully",
		"data":    updatedLead,
	})
}

// appendFollowUpNote 将更新线索时填写的跟进内容写入会话文档
// 销售操作记在自己名下；管理员操作记在线索归属销售名下
func appendFollowUpNote(user *utils.AuthUser, lead *models.Lead, notes string, now time.Time) {
	var authorID primitive.ObjectID
	var authorName string

	if user.Role == models.UserRoleAdmin {
		owner, err := repository.FindSalesUserByID(lead.CreatedBy.Hex())
		if err != nil {
			utils.LogError(err, map[string]interface{}{
				"leadId": lead.ID.Hex(),
			}, "解析线索归属销售失败，跳过会话追加")
			return
		}
		authorID = owner.ID
		authorName = owner.Name
	} else {
		id, err := primitive.ObjectIDFromHex(user.ID)
		if err != nil {
			utils.LogError(err, map[string]interface{}{"userId": user.ID}, "无效的用户ID，跳过会话追加")
			return
		}
		authorID = id
		authorName = user.Name
	}

	entry := models.ConversationEntry{
		SalesUserID:       authorID,
		SalesPersonName:   authorName,
		ConversationNotes: notes,
		ConversationDate:  now,
		UpdatedAt:         now,
	}

	if _, err := upsertConversationEntry(lead.ID, entry); err != nil {
		utils.LogError(err, map[string]interface{}{
			"leadId": lead.ID.Hex(),
		}, "追加跟进会话失败")
	}
}
