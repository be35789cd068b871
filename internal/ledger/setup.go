package ledger

import (
	"fmt"

	"github.com/AscentLab/realm-ascent-backend/internal/platform/database"
)

// PrimeModule 负责初始化ledger模块的数据库表结构
func PrimeModule() error {
	if err := database.DB.AutoMigrate(&XpEntry{}); err != nil {
		return fmt.Errorf("无法迁移xp_entries表: %w", err)
	}
	fmt.Println("XpEntry数据库表迁移成功。")
	return nil
}
