package xp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForDifficulty(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		want       int
	}{
		{DifficultyVeryEasy, 25},
		{DifficultyEasy, 50},
		{DifficultyMedium, 100},
		{DifficultyHard, 200},
		{DifficultyVeryHard, 350},
		{DifficultyExtreme, 500},
		{DifficultyNightmare, 750},
		{DifficultyLegendary, 1000},
		{DifficultyMythical, 1500},
		{DifficultyTranscendent, 2000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ForDifficulty(tt.difficulty), "difficulty %s", tt.difficulty)
	}
}

func TestForDifficultyFallback(t *testing.T) {
	assert.Equal(t, DefaultXp, ForDifficulty("unknown_tier"))
	assert.Equal(t, DefaultXp, ForDifficulty(""))
}

func TestCompletionBonus(t *testing.T) {
	assert.Equal(t, 100, CompletionBonus(DifficultyHard))
	assert.Equal(t, 12, CompletionBonus(DifficultyVeryEasy))
	assert.Equal(t, 1000, CompletionBonus(DifficultyTranscendent))
}

func TestRequiredForLevel(t *testing.T) {
	assert.Equal(t, 0, RequiredForLevel(0))
	assert.Equal(t, 0, RequiredForLevel(1))
	assert.Equal(t, 114, RequiredForLevel(2))

	// 2级起严格递增
	for level := 2; level <= MaxLevel+1; level++ {
		require.Greater(t, RequiredForLevel(level+1), RequiredForLevel(level), "level %d", level)
	}
}

func TestLevelForTotalXpBoundaries(t *testing.T) {
	assert.Equal(t, 1, LevelForTotalXp(0))
	assert.Equal(t, 1, LevelForTotalXp(99))
	assert.Equal(t, 1, LevelForTotalXp(100))
	assert.Equal(t, 1, LevelForTotalXp(113))
	assert.Equal(t, 2, LevelForTotalXp(114))

	// 极大的XP被截断在MaxLevel
	assert.Equal(t, MaxLevel, LevelForTotalXp(1<<40))
}

// TestLevelCurveConsistency 验证两个曲线函数的互恰性：
// 对任意XP值X和它算出的等级L（L<MaxLevel），
// 必须有 RequiredForLevel(L) <= X < RequiredForLevel(L+1)。
func TestLevelCurveConsistency(t *testing.T) {
	for totalXp := 0; totalXp <= 50000; totalXp++ {
		level := LevelForTotalXp(totalXp)
		require.GreaterOrEqual(t, level, 1)
		if level >= MaxLevel {
			continue
		}
		require.LessOrEqual(t, RequiredForLevel(level), totalXp, "totalXp %d level %d", totalXp, level)
		require.Greater(t, RequiredForLevel(level+1), totalXp, "totalXp %d level %d", totalXp, level)
	}

	// 每个等级的起点XP必须恰好映射回该等级
	for level := 2; level < MaxLevel; level++ {
		threshold := RequiredForLevel(level)
		require.Equal(t, level, LevelForTotalXp(threshold), "threshold for level %d", level)
		require.Equal(t, level-1, LevelForTotalXp(threshold-1), "just below level %d", level)
	}
}

func TestRequiredForNextLevel(t *testing.T) {
	assert.Equal(t, 114, RequiredForNextLevel(1))
	for level := 1; level < MaxLevel; level++ {
		assert.Equal(t, RequiredForLevel(level+1)-RequiredForLevel(level), RequiredForNextLevel(level))
	}
}

func TestCurrentXpWithinLevel(t *testing.T) {
	assert.Equal(t, 42, CurrentXpWithinLevel(42))
	assert.Equal(t, 0, CurrentXpWithinLevel(114))
	assert.Equal(t, 6, CurrentXpWithinLevel(120))
}
