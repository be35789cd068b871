package user

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/AscentLab/realm-ascent-backend/internal/platform/config"
	"github.com/AscentLab/realm-ascent-backend/internal/platform/database"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// sessionKeyPrefix 是会话令牌在Redis中的键前缀。
// 完整键形如 session:<token>，值为用户ID，带TTL自动过期。
const sessionKeyPrefix = "session:"

// ErrSessionStoreUnavailable 表示Redis不可用，无法创建或校验会话
var ErrSessionStoreUnavailable = errors.New("会话存储暂时不可用")

// sessionTTL 返回配置的会话存活时长。
func sessionTTL() time.Duration {
	days := 30
	if config.Cfg != nil && config.Cfg.Session.TTLDays > 0 {
		days = config.Cfg.Session.TTLDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// CreateSession 为用户签发一个新的会话令牌并存入Redis。
func CreateSession(userID uint) (string, error) {
	if !database.IsRedisHealthy() {
		return "", ErrSessionStoreUnavailable
	}

	token, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成会话令牌: %w", err)
	}

	key := sessionKeyPrefix + token.String()
	if err := database.RDB.Set(database.Ctx, key, strconv.FormatUint(uint64(userID), 10), sessionTTL()).Err(); err != nil {
		return "", fmt.Errorf("无法写入会话: %w", err)
	}
	return token.String(), nil
}

// ResolveSession 将会话令牌解析为用户ID。
// 令牌不存在或已过期时返回 (0, false, nil)。
func ResolveSession(token string) (uint, bool, error) {
	if token == "" {
		return 0, false, nil
	}
	if !database.IsRedisHealthy() {
		return 0, false, ErrSessionStoreUnavailable
	}

	val, err := database.RDB.Get(database.Ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("无法读取会话: %w", err)
	}

	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("会话数据损坏: %w", err)
	}
	return uint(userID), true, nil
}

// DeleteSession 使指定的会话令牌立即失效。
func DeleteSession(token string) error {
	if token == "" {
		return nil
	}
	if !database.IsRedisHealthy() {
		return ErrSessionStoreUnavailable
	}
	return database.RDB.Del(database.Ctx, sessionKeyPrefix+token).Err()
}
