package utils

import (
	"fmt"
	"time"

	"github.com/BerniceZTT/leads_end/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// ContextUserKey 认证用户在gin上下文中的key
const ContextUserKey = "user"

// TokenExpiry 令牌有效期：1天
const TokenExpiry = 24 * time.Hour

var jwtSecret []byte

// InitAuth 注入JWT签名密钥，main 中调用一次
func InitAuth(secret string) {
	jwtSecret = []byte(secret)
}

// HashPassword 哈希密码
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword 验证密码
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// AuthUser 认证后的用户身份
// 管理员令牌不携带userId，此时ID为空字符串
type AuthUser struct {
	ID   string
	Name string
	Role models.UserRole
}

// GenerateSalesToken 为销售用户生成JWT令牌
func GenerateSalesToken(user *models.SalesUser) (string, error) {
	claims := jwt.MapClaims{
		"userId":   user.ID.Hex(),
		"userName": user.Name,
		"role":     string(user.Role),
		"exp":      time.Now().Add(TokenExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		Logger.Error().Err(err).Msg("生成销售token失败")
		return "", err
	}

	Logger.Info().
		Str("userId", user.ID.Hex()).
		Str("userName", user.Name).
		Msg("Token生成成功")

	return tokenString, nil
}

// GenerateAdminToken 为管理员生成JWT令牌
func GenerateAdminToken() (string, error) {
	claims := jwt.MapClaims{
		"userName": "admin",
		"role":     string(models.UserRoleAdmin),
		"exp":      time.Now().Add(TokenExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken 解析和验证JWT令牌
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("无效的token")
}

// AuthUserFromClaims 从token负载中提取用户身份
func AuthUserFromClaims(claims jwt.MapClaims) (*AuthUser, error) {
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return nil, fmt.Errorf("token缺少role字段")
	}

	name, ok := claims["userName"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("token缺少userName字段")
	}

	// userId 只存在于销售用户令牌中
	id, _ := claims["userId"].(string)
	if models.UserRole(role) == models.UserRoleSales && id == "" {
		return nil, fmt.Errorf("销售token缺少userId字段")
	}

	return &AuthUser{
		ID:   id,
		Name: name,
		Role: models.UserRole(role),
	}, nil
}

// CurrentUser 从gin上下文获取认证用户
func CurrentUser(c *gin.Context) (*AuthUser, error) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, CreateUnauthorizedError()
	}

	user, ok := v.(*AuthUser)
	if !ok {
		return nil, CreateUnauthorizedError()
	}

	return user, nil
}
