package xp

import "math"

const (
	// baseLevelXp 是2级所需的基准XP，也是整条曲线的缩放因子
	baseLevelXp = 100.0
	// levelGrowthRate 是相邻等级XP需求的指数增长率
	levelGrowthRate = 1.15
	// MaxLevel 是等级的硬上限，防止公式在极大XP下数值失稳
	MaxLevel = 100
)

// RequiredForLevel 返回达到指定等级所需的累计XP。
// 1级及以下不需要任何XP；此后按 floor(100 * 1.15^(level-1)) 指数增长。
func RequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return int(math.Floor(baseLevelXp * math.Pow(levelGrowthRate, float64(level-1))))
}

// LevelForTotalXp 根据累计XP计算当前等级。
// 与RequiredForLevel保持代数一致：对任意XP值X和由它算出的等级L（L<MaxLevel），
// 恒有 RequiredForLevel(L) <= X < RequiredForLevel(L+1)。
// MaxLevel处的截断会让极大的X落在该区间之外，这是接受的边界行为。
func LevelForTotalXp(totalXp int) int {
	if totalXp < int(baseLevelXp) {
		return 1
	}

	level := int(math.Floor(math.Log(float64(totalXp)/baseLevelXp)/math.Log(levelGrowthRate))) + 1
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}

	// 对数公式在等级边界附近存在一两个XP的浮点误差，
	// 这里以RequiredForLevel为准做边界修正，保证两个函数严格互恰。
	for level < MaxLevel && totalXp >= RequiredForLevel(level+1) {
		level++
	}
	for level > 1 && totalXp < RequiredForLevel(level) {
		level--
	}
	return level
}

// RequiredForNextLevel 返回从指定等级升到下一级所需的XP跨度。
// 用于展示层计算等级内的进度百分比。
func RequiredForNextLevel(level int) int {
	return RequiredForLevel(level+1) - RequiredForLevel(level)
}

// CurrentXpWithinLevel 返回累计XP落在当前等级区间内的部分。
func CurrentXpWithinLevel(totalXp int) int {
	return totalXp - RequiredForLevel(LevelForTotalXp(totalXp))
}
