package progress

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AscentLab/realm-ascent-backend/internal/platform/database"
	"github.com/AscentLab/realm-ascent-backend/pkg/xp"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNegativeDelta 表示调用方试图扣减XP。本设计中XP只增不减。
var ErrNegativeDelta = errors.New("XP增量不能为负数")

// SummaryDTO 是单条成长轴进度的服务层数据包，
// 同时也是Redis摘要缓存的序列化单元。
type SummaryDTO struct {
	Category    Category `json:"category"`
	Level       int      `json:"level"`
	CurrentXp   int      `json:"currentXp"`
	TotalXp     int      `json:"totalXp"`
	NextLevelXp int      `json:"nextLevelXp"`
}

// ApplyXpDeltaTx 在调用方的事务内，将一笔XP增量结算到指定的进度计数器上。
// 计数器不存在时按1级0XP惰性创建；读取、重算、写回是同一条路径，
// 不区分插入和更新两个分支。
// 调用方必须已通过LockCounters持有计数器锁。
func ApplyXpDeltaTx(tx *gorm.DB, userID uint, category Category, delta int) (*UserProgress, error) {
	if delta < 0 {
		return nil, ErrNegativeDelta
	}

	// 1. 在事务中锁定并读取当前计数器，不存在则从默认值开始
	var counter UserProgress
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND category = ?", userID, category).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = UserProgress{UserID: userID, Category: category, Level: 1}
	} else if err != nil {
		return nil, fmt.Errorf("无法读取进度计数器: %w", err)
	}

	// 2. 结算增量并由等级曲线重算派生字段
	counter.TotalXp += delta
	counter.Level = xp.LevelForTotalXp(counter.TotalXp)
	counter.CurrentXp = counter.TotalXp - xp.RequiredForLevel(counter.Level)

	// 3. 写回（新行插入，旧行更新，由Save统一处理）
	if err := tx.Save(&counter).Error; err != nil {
		return nil, fmt.Errorf("无法写回进度计数器: %w", err)
	}
	return &counter, nil
}

// ApplyXpDelta 以独立事务结算一笔XP增量，并在提交后失效摘要缓存。
func ApplyXpDelta(userID uint, category Category, delta int) (*UserProgress, error) {
	LockCounters()
	defer UnlockCounters()

	var counter *UserProgress
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		counter, txErr = ApplyXpDeltaTx(tx, userID, category, delta)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	InvalidateSummaryCache(userID)
	return counter, nil
}

// GetUserProgress 返回用户全部成长轴的进度摘要。
// 读取优先命中Redis缓存，未命中时回源SQLite并回填缓存。
func GetUserProgress(userID uint) ([]SummaryDTO, error) {
	// 1. 尝试缓存
	if cached := getCachedSummary(userID); cached != "" {
		var summaries []SummaryDTO
		if err := json.Unmarshal([]byte(cached), &summaries); err == nil {
			return summaries, nil
		}
		// 缓存内容损坏时直接回源
	}

	// 2. 回源数据库
	var counters []UserProgress
	if err := database.DB.Where("user_id = ?", userID).Find(&counters).Error; err != nil {
		return nil, fmt.Errorf("无法读取用户进度: %w", err)
	}

	byCategory := make(map[Category]UserProgress, len(counters))
	for _, c := range counters {
		byCategory[c.Category] = c
	}

	// 3. 缺失的成长轴以1级0XP补齐，保证响应结构稳定
	summaries := make([]SummaryDTO, 0, len(AllCategories))
	for _, category := range AllCategories {
		counter, ok := byCategory[category]
		if !ok {
			counter = UserProgress{UserID: userID, Category: category, Level: 1}
		}
		summaries = append(summaries, SummaryDTO{
			Category:    category,
			Level:       counter.Level,
			CurrentXp:   counter.CurrentXp,
			TotalXp:     counter.TotalXp,
			NextLevelXp: xp.RequiredForNextLevel(counter.Level),
		})
	}

	// 4. 回填缓存
	if summaryJSON, err := json.Marshal(summaries); err == nil {
		setCachedSummary(userID, string(summaryJSON))
	}

	return summaries, nil
}
