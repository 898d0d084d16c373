package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole 用户角色枚举
type UserRole string

const (
	UserRoleAdmin UserRole = "admin" // 管理员
	UserRoleSales UserRole = "sales" // 销售
)

// IsValid 角色是否合法
func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleSales
}

// SalesUser 销售用户
type SalesUser struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name              string             `bson:"name" json:"name"`
	Password          string             `bson:"password" json:"-"` // 不返回密码
	Email             string             `bson:"email" json:"email"`
	Role              UserRole           `bson:"role" json:"role"`
	IsActive          bool               `bson:"isActive" json:"isActive"`
	ColumnPreferences map[string]bool    `bson:"columnPreferences,omitempty" json:"columnPreferences,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// 各种请求和响应结构
type (
	// LoginRequest 登录请求（管理员与销售通用）
	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// LoginResponse 登录响应
	LoginResponse struct {
		AccessToken string `json:"accessToken"`
	}

	// AddSalesUserRequest 管理员创建销售用户请求
	AddSalesUserRequest struct {
		Name     string   `json:"name"`
		Email    string   `json:"email"`
		Password string   `json:"password"`
		Role     UserRole `json:"role"`
	}
)
