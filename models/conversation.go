package models

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConversationEntry 单条跟进记录，只追加不修改
type ConversationEntry struct {
	SalesUserID       primitive.ObjectID `bson:"sales_user_id" json:"sales_user_id"`
	SalesPersonName   string             `bson:"sales_person_name" json:"sales_person_name"`
	ConversationNotes string             `bson:"conversation_notes" json:"conversation_notes"`
	ConversationDate  time.Time          `bson:"conversation_date" json:"conversation_date"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// LeadConversation 每个线索唯一的跟进文档（lead_id 上有唯一索引）
type LeadConversation struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	LeadID        primitive.ObjectID  `bson:"lead_id" json:"lead_id"`
	Conversations []ConversationEntry `bson:"conversations" json:"conversations"`
	LastUpdated   time.Time           `bson:"last_updated" json:"last_updated"`
}

// AddConversationRequest 添加跟进记录请求
type AddConversationRequest struct {
	LeadID            string `json:"lead_id"`
	ConversationNotes string `json:"conversation_notes"`
}

// SortEntriesNewestFirst 按跟进日期倒序排列（最新在前），排序稳定
func SortEntriesNewestFirst(entries []ConversationEntry) []ConversationEntry {
	sorted := make([]ConversationEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ConversationDate.After(sorted[j].ConversationDate)
	})
	return sorted
}
