package domain

import (
	"fmt"
	"math"
	"sort"

	tracker "fittrack/internal/modules/tracker/domain"
	"fittrack/internal/platform/numfmt"
)

// A weight within this many pounds of a target or prior reading counts as unchanged.
const weightTolerance = 0.5

// Snapshot is the immutable input every rule sees. History excludes today's entry.
type Snapshot struct {
	Today   tracker.Entry
	History []tracker.Entry
	Goals   tracker.Goals
}

// Rule produces messages for one concern. Final rules stop evaluation after they
// apply; Fallback rules only run when nothing before them produced a message.
type Rule struct {
	Name     string
	Applies  func(Snapshot) bool
	Produce  func(Snapshot) []Message
	Final    bool
	Fallback bool
}

// Rules is the evaluation order, which is also the display order.
var Rules = []Rule{
	emptyDayRule,
	stepsRule,
	waterRule,
	targetWeightRule,
	trendRule,
	fallbackRule,
}

// Evaluate turns one day of measurements into ordered feedback.
func Evaluate(today tracker.Entry, history []tracker.Entry, goals tracker.Goals) []Message {
	return EvaluateRules(Rules, Snapshot{Today: today, History: history, Goals: goals})
}

func EvaluateRules(rules []Rule, snap Snapshot) []Message {
	messages := []Message{}
	for _, rule := range rules {
		if rule.Fallback && len(messages) > 0 {
			continue
		}
		if !rule.Applies(snap) {
			continue
		}
		messages = append(messages, rule.Produce(snap)...)
		if rule.Final {
			break
		}
	}
	return messages
}

var emptyDayRule = Rule{
	Name:    "empty-day",
	Applies: func(s Snapshot) bool { return s.Today.Empty() },
	Produce: func(Snapshot) []Message {
		return []Message{{Type: MessageGeneral, Text: "Enter today's data to track your progress!"}}
	},
	Final: true,
}

var stepsRule = Rule{
	Name:    "steps",
	Applies: func(s Snapshot) bool { return s.Today.Steps != nil },
	Produce: func(s Snapshot) []Message {
		steps, goal := *s.Today.Steps, s.Goals.DailySteps
		if steps >= goal {
			return []Message{{
				Type:     MessageSteps,
				Text:     fmt.Sprintf("Amazing! You've reached your daily step goal of %s steps!", numfmt.Count(goal)),
				Achieved: true,
			}}
		}
		return []Message{{
			Type: MessageSteps,
			Text: fmt.Sprintf("%s more steps to reach your daily goal!", numfmt.Count(goal-steps)),
		}}
	},
}

var waterRule = Rule{
	Name:    "water",
	Applies: func(s Snapshot) bool { return s.Today.Water != nil },
	Produce: func(s Snapshot) []Message {
		water, goal := *s.Today.Water, s.Goals.DailyWater
		if water >= goal {
			return []Message{{
				Type:     MessageWater,
				Text:     fmt.Sprintf("Well done! You've reached your water intake goal of %d cups!", goal),
				Achieved: true,
			}}
		}
		left := goal - water
		return []Message{{
			Type: MessageWater,
			Text: fmt.Sprintf("Remember to drink %d more %s of water today!", left, numfmt.Plural(left, "cup", "cups")),
		}}
	},
}

// Being below target always counts as achieved, however far below.
var targetWeightRule = Rule{
	Name:    "target-weight",
	Applies: func(s Snapshot) bool { return s.Today.Weight != nil && s.Goals.TargetWeight != nil },
	Produce: func(s Snapshot) []Message {
		diff := *s.Today.Weight - *s.Goals.TargetWeight
		switch {
		case math.Abs(diff) < weightTolerance:
			return []Message{{Type: MessageWeight, Text: "Congratulations! You've reached your target weight!", Achieved: true}}
		case diff > 0:
			return []Message{{Type: MessageWeight, Text: fmt.Sprintf("You're %s lbs away from your target weight!", numfmt.Pounds(diff))}}
		default:
			return []Message{{Type: MessageWeight, Text: fmt.Sprintf("You're %s lbs below your target weight!", numfmt.Pounds(-diff)), Achieved: true}}
		}
	},
}

// Without a target, any change of at least the tolerance counts as progress.
var trendRule = Rule{
	Name:    "trend",
	Applies: func(s Snapshot) bool { return s.Today.Weight != nil && len(s.History) > 0 },
	Produce: func(s Snapshot) []Message {
		last, ok := LastWeighIn(s.Today.Date, s.History)
		if !ok {
			return nil
		}
		change := *s.Today.Weight - *last.Weight
		if math.Abs(change) < weightTolerance {
			return nil
		}
		if target := s.Goals.TargetWeight; target != nil {
			towardLoss := *target < *last.Weight && change < 0
			towardGain := *target > *last.Weight && change > 0
			if !towardLoss && !towardGain {
				return nil
			}
		}
		direction := "gained"
		if change < 0 {
			direction = "lost"
		}
		return []Message{{
			Type:     MessageWeight,
			Text:     fmt.Sprintf("You're making progress! %s lbs %s since your last entry.", numfmt.Pounds(math.Abs(change)), direction),
			Achieved: true,
		}}
	},
}

var fallbackRule = Rule{
	Name:    "fallback",
	Applies: func(Snapshot) bool { return true },
	Produce: func(Snapshot) []Message {
		return []Message{{Type: MessageGeneral, Text: "Keep tracking your progress to achieve your fitness goals!"}}
	},
	Fallback: true,
}

// LastWeighIn finds the most recent entry strictly before today that has a weight.
func LastWeighIn(today string, history []tracker.Entry) (tracker.Entry, bool) {
	sorted := append([]tracker.Entry(nil), history...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })
	for _, e := range sorted {
		if e.Date != today && e.Date < today && e.Weight != nil {
			return e, true
		}
	}
	return tracker.Entry{}, false
}
