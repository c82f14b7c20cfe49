package checker

import "fmt"

const (
	errorPenalty   = 10
	warningPenalty = 5
	vsoBonus       = 5
	// vsoThreshold is the VSO compliance percentage that earns the bonus.
	vsoThreshold = 80.0
)

// Quality levels, best first.
const (
	LevelExcellent = "Excellent"
	LevelGood      = "Good"
	LevelAverage   = "Average"
	LevelPassable  = "Passable"
	LevelPoor      = "Needs improvement"
)

// Quality is a 0..100 score with its label. Raw is the score before clamping.
type Quality struct {
	Score   int      `json:"score" msgpack:"s"`
	Raw     int      `json:"raw" msgpack:"r"`
	Level   string   `json:"level" msgpack:"l"`
	Details []string `json:"details" msgpack:"d"`
}

// QualityScore starts at 100, takes 10 points per error and 5 per warning, adds 5
// when VSO compliance reaches 80%, and clamps the result to [0,100].
func QualityScore(st Statistics) Quality {
	q := Quality{Details: []string{}}
	score := 100

	if st.Errors > 0 {
		score -= st.Errors * errorPenalty
		q.Details = append(q.Details, fmt.Sprintf("-%d pts: %d error(s)", st.Errors*errorPenalty, st.Errors))
	}
	if st.Warnings > 0 {
		score -= st.Warnings * warningPenalty
		q.Details = append(q.Details, fmt.Sprintf("-%d pts: %d warning(s)", st.Warnings*warningPenalty, st.Warnings))
	}
	if st.VSOCompliance >= vsoThreshold {
		score += vsoBonus
		q.Details = append(q.Details, fmt.Sprintf("+%d pts: good VSO structure", vsoBonus))
	}

	q.Raw = score
	q.Score = max(0, min(100, score))
	q.Level = Level(q.Score)
	return q
}

// Level maps a clamped score to its label.
func Level(score int) string {
	switch {
	case score >= 90:
		return LevelExcellent
	case score >= 75:
		return LevelGood
	case score >= 60:
		return LevelAverage
	case score >= 40:
		return LevelPassable
	default:
		return LevelPoor
	}
}
