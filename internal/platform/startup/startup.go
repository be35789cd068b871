package startup

import (
	"fmt"

	"github.com/AscentLab/realm-ascent-backend/internal/ledger"
	"github.com/AscentLab/realm-ascent-backend/internal/progress"
	"github.com/AscentLab/realm-ascent-backend/internal/task"
	"github.com/AscentLab/realm-ascent-backend/internal/user"
)

// InitializeApplication 是应用首次启动时执行的总入口，
// 按依赖顺序完成各模块的数据库迁移。
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := user.PrimeModule(); err != nil {
		return err
	}
	if err := progress.PrimeModule(); err != nil {
		return err
	}
	if err := task.PrimeModule(); err != nil {
		return err
	}
	if err := ledger.PrimeModule(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}
