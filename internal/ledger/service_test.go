package ledger

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/AscentLab/realm-ascent-backend/internal/platform/database"
	"github.com/AscentLab/realm-ascent-backend/internal/progress"
	"github.com/AscentLab/realm-ascent-backend/internal/task"
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
	dsn := fmt.Sprintf("file:ledger_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&progress.UserProgress{}, &XpEntry{}))
	database.DB = db
}

func TestLogXpCreatesImmutableEntryAndAwardsXp(t *testing.T) {
	setupTestDB(t)

	entry, err := LogXp(1, LogXpInput{
		Name:       "读完一本大部头",
		Category:   progress.CategoryAbilities,
		Realm:      task.RealmScholar,
		Difficulty: xp.DifficultyLegendary,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, 1000, entry.XpAmount)

	// 流水按创建时的值落库
	var stored XpEntry
	require.NoError(t, database.DB.First(&stored, "id = ?", entry.ID).Error)
	assert.Equal(t, 1000, stored.XpAmount)
	assert.Equal(t, xp.DifficultyLegendary, stored.Difficulty)

	// 对应成长轴的计数器同步增加
	var counter progress.UserProgress
	require.NoError(t, database.DB.Where("user_id = ? AND category = ?", 1, progress.CategoryAbilities).First(&counter).Error)
	assert.Equal(t, 1000, counter.TotalXp)
	assert.Equal(t, xp.LevelForTotalXp(1000), counter.Level)
}

func TestLogXpUsesFixedTierValues(t *testing.T) {
	setupTestDB(t)

	tests := []struct {
		difficulty xp.Difficulty
		want       int
	}{
		{xp.DifficultyVeryEasy, 25},
		{xp.DifficultyMedium, 100},
		{xp.DifficultyTranscendent, 2000},
	}
	for _, tt := range tests {
		entry, err := LogXp(2, LogXpInput{
			Name:       "测试流水",
			Category:   progress.CategorySkills,
			Realm:      task.RealmAlchemist,
			Difficulty: tt.difficulty,
		})
		require.NoError(t, err)
		assert.Equal(t, tt.want, entry.XpAmount, "difficulty %s", tt.difficulty)
	}

	var counter progress.UserProgress
	require.NoError(t, database.DB.Where("user_id = ? AND category = ?", 2, progress.CategorySkills).First(&counter).Error)
	assert.Equal(t, 25+100+2000, counter.TotalXp)
}

func TestGetXpEntriesIsOwnerScopedAndOrdered(t *testing.T) {
	setupTestDB(t)

	first, err := LogXp(1, LogXpInput{
		Name:       "第一笔",
		Category:   progress.CategoryPhysical,
		Realm:      task.RealmAthlete,
		Difficulty: xp.DifficultyEasy,
	})
	require.NoError(t, err)
	second, err := LogXp(1, LogXpInput{
		Name:       "第二笔",
		Category:   progress.CategoryPhysical,
		Realm:      task.RealmAthlete,
		Difficulty: xp.DifficultyHard,
	})
	require.NoError(t, err)

	_, err = LogXp(99, LogXpInput{
		Name:       "别人的流水",
		Category:   progress.CategorySkills,
		Realm:      task.RealmSage,
		Difficulty: xp.DifficultyMedium,
	})
	require.NoError(t, err)

	entries, err := GetXpEntries(1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, second.ID, entries[1].ID)
}
