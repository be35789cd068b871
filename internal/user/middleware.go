package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// CookieName 是承载会话令牌的HTTP-only cookie名
	CookieName = "ascent-session"
	// UserIDKey 是已认证用户ID在Gin上下文中的键
	UserIDKey = "userID"
)

// RequireAuthMiddleware 校验会话cookie并将用户ID放入Gin上下文。
// 未登录的请求以401拒绝，会话存储不可用时以503拒绝。
func RequireAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "需要登录"})
			return
		}

		userID, ok, err := ResolveSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "服务暂时不可用，请稍后重试"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "会话已过期，请重新登录"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID 从Gin上下文中取出已认证的用户ID。
// 只在RequireAuthMiddleware之后的处理器中有效。
func CurrentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := val.(uint)
	return userID, ok
}
