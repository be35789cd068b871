package progress

import (
	"time"
)

// Category 定义了三条成长轴的枚举类型
type Category string

const (
	// CategoryAbilities 表示能力轴
	CategoryAbilities Category = "abilities"
	// CategorySkills 表示技能轴
	CategorySkills Category = "skills"
	// CategoryPhysical 表示体能轴
	CategoryPhysical Category = "physical"
)

// AllCategories 按固定顺序列出全部成长轴
var AllCategories = []Category{CategoryAbilities, CategorySkills, CategoryPhysical}

// IsValid 判断给定的值是否是合法的成长轴
func (c Category) IsValid() bool {
	switch c {
	case CategoryAbilities, CategorySkills, CategoryPhysical:
		return true
	}
	return false
}

// UserProgress 定义了每个用户在单条成长轴上的进度计数器。
// 每个(用户, 成长轴)组合最多只有一行；不存在的行等价于1级0XP。
type UserProgress struct {
	ID uint `gorm:"primarykey"`

	// UserID 是所属用户的ID
	UserID uint `gorm:"not null;uniqueIndex:idx_progress_user_category"`

	// Category 是该计数器对应的成长轴
	Category Category `gorm:"type:varchar(16);not null;uniqueIndex:idx_progress_user_category"`

	// Level 是由TotalXp推导出的当前等级
	Level int `gorm:"not null;default:1"`

	// CurrentXp 是落在当前等级区间内的XP
	CurrentXp int `gorm:"not null;default:0"`

	// TotalXp 是生涯累计XP，只增不减
	TotalXp int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
