package xp

// Difficulty 定义了任务难度档位的枚举类型
type Difficulty string

const (
	DifficultyVeryEasy     Difficulty = "very_easy"
	DifficultyEasy         Difficulty = "easy"
	DifficultyMedium       Difficulty = "medium"
	DifficultyHard         Difficulty = "hard"
	DifficultyVeryHard     Difficulty = "very_hard"
	DifficultyExtreme      Difficulty = "extreme"
	DifficultyNightmare    Difficulty = "nightmare"
	DifficultyLegendary    Difficulty = "legendary"
	DifficultyMythical     Difficulty = "mythical"
	DifficultyTranscendent Difficulty = "transcendent"
)

// DefaultXp 是未知难度档位的兜底XP值。
// 难度字段在请求边界已经做过枚举校验，这里的兜底只是容错，不报错。
const DefaultXp = 100

// difficultyXpMap 是难度档位到单位XP基础值的固定映射，启动后只读。
var difficultyXpMap = map[Difficulty]int{
	DifficultyVeryEasy:     25,
	DifficultyEasy:         50,
	DifficultyMedium:       100,
	DifficultyHard:         200,
	DifficultyVeryHard:     350,
	DifficultyExtreme:      500,
	DifficultyNightmare:    750,
	DifficultyLegendary:    1000,
	DifficultyMythical:     1500,
	DifficultyTranscendent: 2000,
}

// ForDifficulty 返回指定难度档位每完成一个单位可获得的基础XP。
// 未知档位返回DefaultXp。
func ForDifficulty(d Difficulty) int {
	if v, ok := difficultyXpMap[d]; ok {
		return v
	}
	return DefaultXp
}

// CompletionBonus 返回任务最终完成时的一次性奖励XP。
// 奖励为单位XP的一半（向下取整），与完成时推进的单位数无关。
func CompletionBonus(d Difficulty) int {
	return ForDifficulty(d) / 2
}
