package progress

// levelThresholds[i] is the cumulative XP required to reach level i+1. The
// table is monotonic; XP beyond the last entry pins the level at MaxLevel.
var levelThresholds = []int{
	0,     // level 1
	500,   // level 2
	1200,  // level 3
	2100,  // level 4
	3200,  // level 5
	4500,  // level 6
	6000,  // level 7
	7700,  // level 8
	9600,  // level 9
	11700, // level 10
}

// MaxLevel is the highest attainable level.
var MaxLevel = len(levelThresholds)

// LevelForXP returns the largest level whose threshold the cumulative XP has
// reached, capped at MaxLevel.
func LevelForXP(xp int) int {
	level := 1
	for i, threshold := range levelThresholds {
		if xp >= threshold {
			level = i + 1
		} else {
			break
		}
	}
	return level
}

// TierCeiling returns the cumulative XP at which the given level rolls over
// to the next. At MaxLevel there is no next tier, so the final threshold is
// reported as the ceiling.
func TierCeiling(level int) int {
	if level < 1 {
		level = 1
	}
	if level >= MaxLevel {
		return levelThresholds[MaxLevel-1]
	}
	return levelThresholds[level]
}
