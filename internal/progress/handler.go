package progress

import (
	"net/http"

	"github.com/AscentLab/realm-ascent-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// ProgressResponse 是单条成长轴进度的API响应模型
type ProgressResponse struct {
	Category    string `json:"type"`
	Level       int    `json:"level"`
	CurrentXp   int    `json:"currentXp"`
	TotalXp     int    `json:"totalXp"`
	NextLevelXp int    `json:"nextLevelXp"`
}

// GetProgress 返回当前用户三条成长轴的等级与XP摘要
func GetProgress(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
		return
	}

	summaries, err := GetUserProgress(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取进度数据失败"})
		return
	}

	responses := make([]ProgressResponse, 0, len(summaries))
	for _, s := range summaries {
		responses = append(responses, ProgressResponse{
			Category:    string(s.Category),
			Level:       s.Level,
			CurrentXp:   s.CurrentXp,
			TotalXp:     s.TotalXp,
			NextLevelXp: s.NextLevelXp,
		})
	}
	c.JSON(http.StatusOK, responses)
}
