package task

import (
	"errors"
	"net/http"
	"time"

	"github.com/AscentLab/realm-ascent-backend/internal/progress"
	"github.com/AscentLab/realm-ascent-backend/internal/user"
	"github.com/AscentLab/realm-ascent-backend/pkg/xp"
	"github.com/gin-gonic/gin"
)

// CreateTaskRequestBody 定义了创建任务请求体的JSON结构。
// 枚举字段用binding的oneof在进入服务层之前完成校验。
type CreateTaskRequestBody struct {
	Name        string     `json:"name" binding:"required,max=255"`
	Category    string     `json:"type" binding:"required,oneof=abilities skills physical"`
	Realm       string     `json:"realm" binding:"required,oneof=scholar technomancer entrepreneur sage athlete polyglot alchemist shadow-hunter"`
	Deadline    *time.Time `json:"deadline"`
	NotifyDays  *int       `json:"notifyDays" binding:"omitempty,min=1,max=365"`
	TotalLevels int        `json:"totalLevels" binding:"required,min=1"`
	Difficulty  string     `json:"difficulty" binding:"required,oneof=very_easy easy medium hard very_hard extreme nightmare legendary mythical transcendent"`
}

// UpdateTaskRequestBody 定义了更新任务请求体的JSON结构，所有字段可选
type UpdateTaskRequestBody struct {
	Name            *string    `json:"name" binding:"omitempty,max=255"`
	Realm           *string    `json:"realm" binding:"omitempty,oneof=scholar technomancer entrepreneur sage athlete polyglot alchemist shadow-hunter"`
	Deadline        *time.Time `json:"deadline"`
	NotifyDays      *int       `json:"notifyDays" binding:"omitempty,min=1,max=365"`
	CompletedLevels *int       `json:"completedLevels" binding:"omitempty,min=0"`
	Archived        *bool      `json:"archived"`
}

// TaskResponse 是任务的API响应模型
type TaskResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Category        string     `json:"type"`
	Realm           string     `json:"realm"`
	Deadline        *time.Time `json:"deadline"`
	NotifyDays      int        `json:"notifyDays"`
	TotalLevels     int        `json:"totalLevels"`
	CompletedLevels int        `json:"completedLevels"`
	Difficulty      string     `json:"difficulty"`
	XpPerLevel      int        `json:"xpPerLevel"`
	Status          string     `json:"status"`
	Archived        bool       `json:"archived"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt"`
}

func formatTask(t *Task) TaskResponse {
	return TaskResponse{
		ID:              t.ID,
		Name:            t.Name,
		Category:        string(t.Category),
		Realm:           string(t.Realm),
		Deadline:        t.Deadline,
		NotifyDays:      t.NotifyDays,
		TotalLevels:     t.TotalLevels,
		CompletedLevels: t.CompletedLevels,
		Difficulty:      string(t.Difficulty),
		XpPerLevel:      xp.ForDifficulty(t.Difficulty),
		Status:          string(t.Status),
		Archived:        t.Archived,
		CreatedAt:       t.CreatedAt,
		CompletedAt:     t.CompletedAt,
	}
}

func formatTasks(tasks []Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, formatTask(&tasks[i]))
	}
	return responses
}

// ListTasks 返回当前用户的全部任务
func ListTasks(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
		return
	}

	tasks, err := GetTasks(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取任务列表失败"})
		return
	}
	c.JSON(http.StatusOK, formatTasks(tasks))
}

// ListTasksByRealm 返回当前用户在指定主题领域下的任务
func ListTasksByRealm(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
		return
	}

	realm := Realm(c.Param("realm"))
	if !realm.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的领域: " + string(realm)})
		return
	}

	tasks, err := GetTasksByRealm(realm, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取领域任务失败"})
		return
	}
	c.JSON(http.StatusOK, formatTasks(tasks))
}

// ListCautionTasks 返回截止时间临近的未完成任务
func ListCautionTasks(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
		return
	}

	tasks, err := GetCautionTasks(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取临期任务失败"})
		return
	}
	c.JSON(http.StatusOK, formatTasks(tasks))
}

// CreateTaskHandler 处理创建任务请求
func CreateTaskHandler(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
		return
	}

	var body CreateTaskRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	input := CreateTaskInput{
		Name:        body.Name,
		Category:    progress.Category(body.Category),
		Realm:       Realm(body.Realm),
		Deadline:    body.Deadline,
		TotalLevels: body.TotalLevels,
		Difficulty:  xp.Difficulty(body.Difficulty),
	}
	if body.NotifyDays != nil {
		input.NotifyDays = *body.NotifyDays
	}

	newTask, err := CreateTask(userID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建任务失败"})
		return
	}
	c.JSON(http.StatusCreated, formatTask(newTask))
}

// UpdateTaskHandler 处理任务更新请求（元数据和/或进度推进）
func UpdateTaskHandler(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
		return
	}

	var body UpdateTaskRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	input := UpdateTaskInput{
		Name:            body.Name,
		Deadline:        body.Deadline,
		NotifyDays:      body.NotifyDays,
		CompletedLevels: body.CompletedLevels,
		Archived:        body.Archived,
	}
	if body.Realm != nil {
		realm := Realm(*body.Realm)
		input.Realm = &realm
	}

	id := c.Param("id")
	updated, err := UpdateTask(id, userID, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNoForwardProgress):
			// 无副作用跳过：返回当前任务原样
			current, lookupErr := GetTaskByID(id, userID)
			if lookupErr != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": lookupErr.Error()})
				return
			}
			c.JSON(http.StatusOK, formatTask(current))
		case errors.Is(err, ErrArchiveIncompleteTask):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "更新任务失败"})
		}
		return
	}
	c.JSON(http.StatusOK, formatTask(updated))
}

// DeleteTaskHandler 处理删除任务请求
func DeleteTaskHandler(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
		return
	}

	if err := DeleteTask(c.Param("id"), userID); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除任务失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
