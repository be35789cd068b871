package user

import (
	"time"

	"gorm.io/gorm"
)

// User 定义了账号在SQLite数据库中的持久化模型。
// 所有任务、进度和XP流水都通过UserID归属到某个账号，
// 查询一律按归属用户过滤，不存在跨用户可见性。
type User struct {
	ID uint `gorm:"primarykey"`

	// Username 是登录名，全局唯一
	Username string `gorm:"type:varchar(255);uniqueIndex;not null"`

	// PasswordHash 是bcrypt哈希后的密码，绝不存储明文
	PasswordHash string `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
