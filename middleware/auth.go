package middleware

import (
	"net/http"
	"strings"

	"github.com/BerniceZTT/leads_end/models"
	"github.com/BerniceZTT/leads_end/utils"

	"github.com/gin-gonic/gin"
)

// Auth 认证中间件，按需要的角色集合参数化
// 不传角色时只校验令牌；令牌缺失/无效返回401，角色不符返回403
func Auth(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		utils.Logger.Info().
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Str("authorization", getShortAuthHeader(authHeader)).
			Msg("验证请求")

		// 检查Authorization头
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Logger.Info().Msg("缺少Authorization头或格式错误")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Access token is required",
				"code":    "MISSING_TOKEN",
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Access token is required",
				"code":    "MISSING_TOKEN",
			})
			return
		}

		// 解析token
		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Logger.Error().Err(err).Msg("Token验证失败")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid or expired token",
				"code":    "INVALID_TOKEN",
			})
			return
		}

		user, err := utils.AuthUserFromClaims(claims)
		if err != nil {
			utils.Logger.Warn().Err(err).Msg("Token负载缺少必要字段")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid or expired token",
				"code":    "INVALID_TOKEN",
			})
			return
		}

		// 校验角色
		if len(roles) > 0 && !roleAllowed(user.Role, roles) {
			utils.Logger.Info().
				Str("userName", user.Name).
				Str("role", string(user.Role)).
				Msg("权限不足")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Access denied. You are not authorized to access this resource",
				"code":    "FORBIDDEN",
			})
			return
		}

		// 将用户身份存储到上下文
		c.Set(utils.ContextUserKey, user)

		utils.Logger.Info().
			Str("userName", user.Name).
			Str("role", string(user.Role)).
			Msg("验证成功")

		c.Next()
	}
}

func roleAllowed(role models.UserRole, allowed []models.UserRole) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// getShortAuthHeader 获取截断的授权头，保护敏感信息
func getShortAuthHeader(header string) string {
	if header == "" {
		return ""
	}

	if len(header) > 15 {
		return header[:15] + "..."
	}

	return header
}
