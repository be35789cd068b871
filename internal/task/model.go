package task

import (
	"time"

	"github.com/AscentLab/realm-ascent-backend/internal/progress"
	"github.com/AscentLab/realm-ascent-backend/pkg/xp"
)

// Status 定义了任务生命周期状态的枚举类型
type Status string

const (
	// StatusNotStarted 表示任务尚未开始推进
	StatusNotStarted Status = "not_started"
	// StatusInProgress 表示任务已有部分单位完成
	StatusInProgress Status = "in_progress"
	// StatusCompleted 表示任务全部单位已完成，为终态
	StatusCompleted Status = "completed"
)

// Realm 定义了任务所属主题领域的枚举类型
type Realm string

const (
	RealmScholar      Realm = "scholar"
	RealmTechnomancer Realm = "technomancer"
	RealmEntrepreneur Realm = "entrepreneur"
	RealmSage         Realm = "sage"
	RealmAthlete      Realm = "athlete"
	RealmPolyglot     Realm = "polyglot"
	RealmAlchemist    Realm = "alchemist"
	RealmShadowHunter Realm = "shadow-hunter"
)

// AllRealms 列出全部八个主题领域
var AllRealms = []Realm{
	RealmScholar, RealmTechnomancer, RealmEntrepreneur, RealmSage,
	RealmAthlete, RealmPolyglot, RealmAlchemist, RealmShadowHunter,
}

// IsValid 判断给定的值是否是合法的主题领域
func (r Realm) IsValid() bool {
	for _, realm := range AllRealms {
		if r == realm {
			return true
		}
	}
	return false
}

// Task 定义了被追踪任务在SQLite数据库中的持久化模型。
// 一个任务由若干可完成的单位（TotalLevels）组成，
// 每完成一个单位按难度结算XP到所属成长轴。
type Task struct {
	// ID 是任务的UUID主键，由服务层在创建时生成
	ID string `gorm:"primarykey;type:varchar(36)"`

	// UserID 是所属用户的ID，所有查询都按它过滤
	UserID uint `gorm:"not null;index"`

	// Name 是任务的显示名称
	Name string `gorm:"not null"`

	// Category 是任务挂靠的成长轴
	Category progress.Category `gorm:"type:varchar(16);not null"`

	// Realm 是任务的主题领域标签，与成长轴正交
	Realm Realm `gorm:"type:varchar(32);not null;index"`

	// Deadline 是可选的截止时间
	Deadline *time.Time

	// NotifyDays 是截止提醒窗口的天数
	NotifyDays int `gorm:"not null;default:7"`

	// TotalLevels 是任务包含的可完成单位总数，至少为1
	TotalLevels int `gorm:"not null"`

	// CompletedLevels 是已完成的单位数，始终不超过TotalLevels
	CompletedLevels int `gorm:"not null;default:0"`

	// Difficulty 是任务的难度档位，决定每单位的XP
	Difficulty xp.Difficulty `gorm:"type:varchar(16);not null"`

	// Status 是任务的生命周期状态
	Status Status `gorm:"type:varchar(16);not null;default:'not_started'"`

	// Archived 标记任务是否已归档（软隐藏），仅对已完成的任务开放
	Archived bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// CompletedAt 在任务进入completed时写入一次，此后不再变动
	CompletedAt *time.Time
}
