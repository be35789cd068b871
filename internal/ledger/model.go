package ledger

import (
	"time"

	"github.com/AscentLab/realm-ascent-backend/internal/progress"
	"github.com/AscentLab/realm-ascent-backend/internal/task"
	"github.com/AscentLab/realm-ascent-backend/pkg/xp"
)

// XpEntry 定义了一次性XP奖励流水在SQLite数据库中的持久化模型。
// 流水不挂靠任何任务，XpAmount在创建时按难度表算定一次，此后不可变。
type XpEntry struct {
	// ID 是流水的UUID主键，由服务层在创建时生成
	ID string `gorm:"primarykey;type:varchar(36)"`

	// UserID 是所属用户的ID
	UserID uint `gorm:"not null;index"`

	// Name 是这笔奖励的名目
	Name string `gorm:"not null"`

	// Category 是奖励结算到的成长轴
	Category progress.Category `gorm:"type:varchar(16);not null"`

	// Realm 是奖励归属的主题领域标签
	Realm task.Realm `gorm:"type:varchar(32);not null"`

	// Difficulty 是记账时选择的难度档位
	Difficulty xp.Difficulty `gorm:"type:varchar(16);not null"`

	// XpAmount 是实际入账的XP值，创建后不再重算
	XpAmount int `gorm:"not null"`

	CreatedAt time.Time
}
