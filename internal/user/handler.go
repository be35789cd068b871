package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// cookieMaxAge 是会话cookie的存活秒数，与Redis中会话的TTL保持一致
func cookieMaxAge() int {
	return int(sessionTTL() / time.Second)
}

// RegisterRequestBody 定义了注册请求体的JSON结构
type RegisterRequestBody struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequestBody 定义了登录请求体的JSON结构
type LoginRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse 是账号信息的API响应模型，不含任何口令字段
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func formatUser(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

// issueSessionCookie 为用户创建会话并通过cookie下发令牌。
func issueSessionCookie(c *gin.Context, userID uint) error {
	token, err := CreateSession(userID)
	if err != nil {
		return err
	}
	c.SetCookie(CookieName, token, cookieMaxAge(), "/", "", false, true)
	return nil
}

// Register 处理注册请求，成功后直接建立会话
func Register(c *gin.Context) {
	var body RegisterRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	newUser, err := RegisterUser(body.Username, body.Password)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "注册失败"})
		return
	}

	if err := issueSessionCookie(c, newUser.ID); err != nil {
		// 账号已创建，只是自动登录失败，提示用户手动登录
		c.JSON(http.StatusCreated, gin.H{"user": formatUser(newUser), "warning": "注册成功，请重新登录"})
		return
	}
	c.JSON(http.StatusCreated, formatUser(newUser))
}

// Login 处理登录请求
func Login(c *gin.Context) {
	var body LoginRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	u, err := AuthenticateUser(body.Username, body.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败"})
		return
	}

	if err := issueSessionCookie(c, u.ID); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "服务暂时不可用，请稍后重试"})
		return
	}
	c.JSON(http.StatusOK, formatUser(u))
}

// Logout 处理登出请求，令当前会话失效并清除cookie
func Logout(c *gin.Context) {
	token, err := c.Cookie(CookieName)
	if err == nil {
		_ = DeleteSession(token)
	}
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}

// GetCurrentUser 返回当前会话对应的账号信息
func GetCurrentUser(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
		return
	}

	u, err := GetUserByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取用户信息失败"})
		return
	}
	c.JSON(http.StatusOK, formatUser(u))
}
