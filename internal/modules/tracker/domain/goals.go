package domain

const (
	DefaultDailySteps = 10000
	DefaultDailyWater = 8
)

// Goals is the process-wide target set. A nil TargetWeight disables weight tracking.
type Goals struct {
	DailySteps   int      `json:"dailySteps"`
	DailyWater   int      `json:"dailyWater"`
	TargetWeight *float64 `json:"targetWeight"`
}

func DefaultGoals() Goals {
	return Goals{DailySteps: DefaultDailySteps, DailyWater: DefaultDailyWater}
}

// Normalize replaces non-positive targets with their defaults and clears a
// non-positive target weight.
func (g Goals) Normalize() Goals {
	if g.DailySteps <= 0 {
		g.DailySteps = DefaultDailySteps
	}
	if g.DailyWater <= 0 {
		g.DailyWater = DefaultDailyWater
	}
	if g.TargetWeight != nil && !(*g.TargetWeight > 0) {
		g.TargetWeight = nil
	}
	return g
}

func (g Goals) Equal(other Goals) bool {
	if g.DailySteps != other.DailySteps || g.DailyWater != other.DailyWater {
		return false
	}
	if g.TargetWeight == nil || other.TargetWeight == nil {
		return g.TargetWeight == nil && other.TargetWeight == nil
	}
	return *g.TargetWeight == *other.TargetWeight
}
