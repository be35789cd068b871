package task

import (
	"fmt"

	"github.com/AscentLab/realm-ascent-backend/internal/platform/database"
)

// PrimeModule 负责初始化task模块的数据库表结构
func PrimeModule() error {
	if err := database.DB.AutoMigrate(&Task{}); err != nil {
		return fmt.Errorf("无法迁移tasks表: %w", err)
	}
	fmt.Println("Task数据库表迁移成功。")
	return nil
}
