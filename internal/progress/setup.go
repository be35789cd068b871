package progress

import (
	"fmt"

	"github.com/AscentLab/realm-ascent-backend/internal/platform/database"
)

// PrimeModule 负责初始化progress模块的数据库表结构
func PrimeModule() error {
	if err := database.DB.AutoMigrate(&UserProgress{}); err != nil {
		return fmt.Errorf("无法迁移user_progress表: %w", err)
	}
	fmt.Println("UserProgress数据库表迁移成功。")
	return nil
}
