package health

import (
	"context"
	"fmt"
	"time"

	"github.com/AscentLab/realm-ascent-backend/internal/platform/database"
	"github.com/AscentLab/realm-ascent-backend/pkg/lifecycle"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

// PerformCheck 执行一次Redis健康检查并更新全局状态。
// Redis在本项目中只承载会话和可按需重建的缓存，
// 因此恢复后不需要任何重建动作，缓存会在下次读取时自然回填。
func PerformCheck() {
	ctx, cancel := context.WithTimeout(database.Ctx, pingTimeout)
	defer cancel()

	_, err := database.RDB.Ping(ctx).Result()
	database.UpdateRedisStatus(err == nil)
}

// StartRedisHealthCheck 启动一个后台Goroutine来定期执行健康检查。
// 它通过生命周期句柄响应停机信号。
func StartRedisHealthCheck(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("Redis健康检查器已启动。")

	for {
		if err := handle.Sleep(checkInterval); err != nil {
			fmt.Println("Redis健康检查器已停止。")
			return
		}
		PerformCheck()
	}
}
