package progress

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/AscentLab/realm-ascent-backend/internal/platform/database"
	"github.com/AscentLab/realm-ascent-backend/pkg/xp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// setupTestDB 为每个测试打开一个独立的内存SQLite数据库并完成迁移。
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:progress_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&UserProgress{}))
	database.DB = db
}

func TestApplyXpDeltaLazilyCreatesCounter(t *testing.T) {
	setupTestDB(t)

	counter, err := ApplyXpDelta(1, CategorySkills, 50)
	require.NoError(t, err)
	assert.Equal(t, 1, counter.Level)
	assert.Equal(t, 50, counter.CurrentXp)
	assert.Equal(t, 50, counter.TotalXp)

	var stored UserProgress
	require.NoError(t, database.DB.Where("user_id = ? AND category = ?", 1, CategorySkills).First(&stored).Error)
	assert.Equal(t, 50, stored.TotalXp)
}

func TestApplyXpDeltaRecomputesLevel(t *testing.T) {
	setupTestDB(t)

	counter, err := ApplyXpDelta(1, CategoryAbilities, 150)
	require.NoError(t, err)
	assert.Equal(t, 2, counter.Level)
	assert.Equal(t, 150, counter.TotalXp)
	assert.Equal(t, 150-xp.RequiredForLevel(2), counter.CurrentXp)
}

func TestApplyXpDeltaAccumulates(t *testing.T) {
	setupTestDB(t)

	_, err := ApplyXpDelta(1, CategoryPhysical, 50)
	require.NoError(t, err)
	counter, err := ApplyXpDelta(1, CategoryPhysical, 75)
	require.NoError(t, err)
	assert.Equal(t, 125, counter.TotalXp)
	assert.Equal(t, xp.LevelForTotalXp(125), counter.Level)
	assert.Equal(t, xp.CurrentXpWithinLevel(125), counter.CurrentXp)
}

func TestApplyXpDeltaRejectsNegative(t *testing.T) {
	setupTestDB(t)

	_, err := ApplyXpDelta(1, CategorySkills, -10)
	assert.ErrorIs(t, err, ErrNegativeDelta)
}

// TestConcurrentApplyXpDelta 验证并发结算不会丢失任何一笔增量。
func TestConcurrentApplyXpDelta(t *testing.T) {
	setupTestDB(t)

	var wg sync.WaitGroup
	deltas := []int{50, 75}
	errs := make([]error, len(deltas))
	for i, delta := range deltas {
		wg.Add(1)
		go func(i, delta int) {
			defer wg.Done()
			_, errs[i] = ApplyXpDelta(7, CategorySkills, delta)
		}(i, delta)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	var stored UserProgress
	require.NoError(t, database.DB.Where("user_id = ? AND category = ?", 7, CategorySkills).First(&stored).Error)
	assert.Equal(t, 125, stored.TotalXp)
}

func TestGetUserProgressFillsDefaults(t *testing.T) {
	setupTestDB(t)

	summaries, err := GetUserProgress(42)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	for i, category := range AllCategories {
		assert.Equal(t, category, summaries[i].Category)
		assert.Equal(t, 1, summaries[i].Level)
		assert.Equal(t, 0, summaries[i].TotalXp)
		assert.Equal(t, xp.RequiredForNextLevel(1), summaries[i].NextLevelXp)
	}
}

func TestGetUserProgressReflectsAppliedXp(t *testing.T) {
	setupTestDB(t)

	_, err := ApplyXpDelta(42, CategoryPhysical, 200)
	require.NoError(t, err)

	summaries, err := GetUserProgress(42)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	byCategory := make(map[Category]SummaryDTO)
	for _, s := range summaries {
		byCategory[s.Category] = s
	}
	assert.Equal(t, 200, byCategory[CategoryPhysical].TotalXp)
	assert.Equal(t, xp.LevelForTotalXp(200), byCategory[CategoryPhysical].Level)
	assert.Equal(t, 0, byCategory[CategoryAbilities].TotalXp)
}
