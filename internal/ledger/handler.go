package ledger

import (
	"net/http"
	"time"

	"github.com/AscentLab/realm-ascent-backend/internal/progress"
	"github.com/AscentLab/realm-ascent-backend/internal/task"
	"github.com/AscentLab/realm-ascent-backend/internal/user"
	"github.com/AscentLab/realm-ascent-backend/pkg/xp"
	"github.com/gin-gonic/gin"
)

// LogXpRequestBody 定义了记录XP奖励请求体的JSON结构
type LogXpRequestBody struct {
	Name       string `json:"name" binding:"required,max=255"`
	Category   string `json:"type" binding:"required,oneof=abilities skills physical"`
	Realm      string `json:"realm" binding:"required,oneof=scholar technomancer entrepreneur sage athlete polyglot alchemist shadow-hunter"`
	Difficulty string `json:"difficulty" binding:"required,oneof=very_easy easy medium hard very_hard extreme nightmare legendary mythical transcendent"`
}

// XpEntryResponse 是XP流水的API响应模型
type XpEntryResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"type"`
	Realm      string    `json:"realm"`
	Difficulty string    `json:"difficulty"`
	XpAmount   int       `json:"xpAmount"`
	CreatedAt  time.Time `json:"createdAt"`
}

func formatEntry(e *XpEntry) XpEntryResponse {
	return XpEntryResponse{
		ID:         e.ID,
		Name:       e.Name,
		Category:   string(e.Category),
		Realm:      string(e.Realm),
		Difficulty: string(e.Difficulty),
		XpAmount:   e.XpAmount,
		CreatedAt:  e.CreatedAt,
	}
}

// ListXpEntries 返回当前用户的全部XP流水
func ListXpEntries(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
		return
	}

	entries, err := GetXpEntries(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取XP流水失败"})
		return
	}

	responses := make([]XpEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, formatEntry(&entries[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// LogXpHandler 处理记录一次性XP奖励的请求
func LogXpHandler(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
		return
	}

	var body LogXpRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	entry, err := LogXp(userID, LogXpInput{
		Name:       body.Name,
		Category:   progress.Category(body.Category),
		Realm:      task.Realm(body.Realm),
		Difficulty: xp.Difficulty(body.Difficulty),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "记录XP失败"})
		return
	}
	c.JSON(http.StatusCreated, formatEntry(entry))
}
