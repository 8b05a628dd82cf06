package analytics

import "math"

// GoalType is the direction a health goal asks for.
type GoalType string

const (
	GoalImprove  GoalType = "improve"
	GoalMaintain GoalType = "maintain"
	GoalReduce   GoalType = "reduce"
)

// maintainTolerance is the fraction of the target a maintain goal may drift.
const maintainTolerance = 0.05

type GoalProgress struct {
	Progress float64 `json:"progress"`
	Achieved bool    `json:"achieved"`
}

// EvaluateGoal computes completion percentage and achievement for a goal.
// baseline defaults to current when nil. Progress is capped at 100 but is not
// floored for improve/reduce goals: a negative value means the metric moved
// away from the target.
func EvaluateGoal(goalType GoalType, baseline *float64, current, target float64) GoalProgress {
	base := current
	if baseline != nil {
		base = *baseline
	}

	switch goalType {
	case GoalImprove:
		p := GoalProgress{Achieved: current >= target}
		if target != 0 {
			p.Progress = math.Min(current/target*100, 100)
		}
		return p

	case GoalReduce:
		p := GoalProgress{Achieved: current <= target}
		if base > target {
			p.Progress = math.Min((base-current)/(base-target)*100, 100)
		}
		return p

	default:
		tolerance := math.Abs(target) * maintainTolerance
		diff := math.Abs(current - target)
		if diff <= tolerance {
			return GoalProgress{Progress: 100, Achieved: true}
		}
		if target == 0 {
			return GoalProgress{}
		}
		return GoalProgress{Progress: math.Max(0, 100-diff/target*100)}
	}
}
