package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/AscentLab/realm-ascent-backend/internal/platform/database"
)

// --- Redis 键名常量 ---

const (
	// summaryKeyPrefix 是进度摘要缓存的键前缀。
	// 完整键形如 progress:summary:<userID>，值为JSON序列化的摘要列表。
	// 缓存只是只读加速层，SQLite始终是唯一数据源；
	// 每次变更操作提交后由调用方显式失效。
	summaryKeyPrefix = "progress:summary:"

	// summaryCacheTTL 是摘要缓存的保底过期时间
	summaryCacheTTL = time.Hour
)

// summaryCacheKey 拼出指定用户的摘要缓存键。
func summaryCacheKey(userID uint) string {
	return fmt.Sprintf("%s%d", summaryKeyPrefix, userID)
}

// --- 并发控制 ---

// counterMutex 是一个模块内部的、不导出的全局互斥锁，
// 用于串行化对进度计数器的读-改-写，防止并发XP结算互相覆盖。
var counterMutex sync.Mutex

// LockCounters 封装了对模块计数器锁的锁定操作。
// 所有调用ApplyXpDeltaTx的事务必须在持有此锁的情况下执行。
func LockCounters() {
	counterMutex.Lock()
}

// UnlockCounters 封装了对模块计数器锁的解锁操作。
func UnlockCounters() {
	counterMutex.Unlock()
}

// --- 缓存操作 ---
// Redis不可用时这些函数静默降级为no-op，读取方会直接回源SQLite。

// getCachedSummary 尝试从Redis读取用户的进度摘要JSON。
// 未命中或Redis不可用时返回空串。
func getCachedSummary(userID uint) string {
	if !database.IsRedisHealthy() {
		return ""
	}
	val, err := database.RDB.Get(database.Ctx, summaryCacheKey(userID)).Result()
	if err != nil {
		return ""
	}
	return val
}

// setCachedSummary 将进度摘要JSON写入Redis。
func setCachedSummary(userID uint, summaryJSON string) {
	if !database.IsRedisHealthy() {
		return
	}
	if err := database.RDB.Set(database.Ctx, summaryCacheKey(userID), summaryJSON, summaryCacheTTL).Err(); err != nil {
		fmt.Printf("警告: 无法写入进度摘要缓存 (用户 %d): %v\n", userID, err)
	}
}

// InvalidateSummaryCache 删除用户的进度摘要缓存。
// 所有会改变XP的操作在事务提交后都必须调用它。
func InvalidateSummaryCache(userID uint) {
	if !database.IsRedisHealthy() {
		return
	}
	if err := database.RDB.Del(database.Ctx, summaryCacheKey(userID)).Err(); err != nil {
		fmt.Printf("警告: 无法失效进度摘要缓存 (用户 %d): %v\n", userID, err)
	}
}
