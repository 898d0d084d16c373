package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomLeadType 用户录入过的自定义线索类别
// (sales_user_id, custom_type) 上有唯一复合索引做去重
type CustomLeadType struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	SalesUserID primitive.ObjectID `bson:"sales_user_id" json:"sales_user_id"`
	CustomType  string             `bson:"custom_type" json:"custom_type"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
