package ledger

import (
	"fmt"

	"github.com/AscentLab/realm-ascent-backend/internal/platform/database"
	"github.com/AscentLab/realm-ascent-backend/internal/progress"
	"github.com/AscentLab/realm-ascent-backend/internal/task"
	"github.com/AscentLab/realm-ascent-backend/pkg/xp"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogXpInput 是记录一次性XP奖励的服务层输入，字段已在请求边界完成枚举校验
type LogXpInput struct {
	Name       string
	Category   progress.Category
	Realm      task.Realm
	Difficulty xp.Difficulty
}

// LogXp 记录一笔一次性XP奖励并结算到对应成长轴。
// 流水插入和进度结算在同一事务中提交，不存在只入账不计分的中间状态。
func LogXp(userID uint, input LogXpInput) (*XpEntry, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成流水ID: %w", err)
	}

	// XP值在创建时算定一次
	entry := XpEntry{
		ID:         id.String(),
		UserID:     userID,
		Name:       input.Name,
		Category:   input.Category,
		Realm:      input.Realm,
		Difficulty: input.Difficulty,
		XpAmount:   xp.ForDifficulty(input.Difficulty),
	}

	progress.LockCounters()
	defer progress.UnlockCounters()

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("无法写入XP流水: %w", err)
		}
		if _, err := progress.ApplyXpDeltaTx(tx, userID, entry.Category, entry.XpAmount); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	progress.InvalidateSummaryCache(userID)
	return &entry, nil
}

// GetXpEntries 返回用户的全部XP流水，按创建时间排序。
func GetXpEntries(userID uint) ([]XpEntry, error) {
	var entries []XpEntry
	err := database.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询XP流水: %w", err)
	}
	return entries, nil
}
