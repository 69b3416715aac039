package main

import (
	"math/rand"
	"time"
)

// assumedQuestionCount is the fixed denominator for partial-progress when an
// attempt did not finish the lesson. Inherited from the original content
// format; actual lessons may have fewer questions, so the fraction is capped
// at 1.0 below.
const assumedQuestionCount = 15

// Accuracy must strictly exceed passPercent for a completion to count as
// "passed": it gates both the daily-quiz correctness flag and streak
// qualification. Exactly 3/5 does not pass.
const passPercent = 60

// progressFraction computes the durable progress value for an attempt.
func progressFraction(completed bool, score int) float64 {
	if completed {
		return 1.0
	}
	if score < 0 {
		score = 0
	}
	f := float64(score) / float64(assumedQuestionCount)
	if f > 1.0 {
		f = 1.0
	}
	return f
}

// streakQualifies reports whether an attempt's accuracy clears the pass
// threshold. Integer math keeps the boundary exact. total <= 0 never
// qualifies.
func streakQualifies(correct, total int) bool {
	if total <= 0 {
		return false
	}
	return correct*100 > total*passPercent
}

// gradeAnswer checks a single selected option against the question key.
func gradeAnswer(q *Question, selected int) bool {
	return selected == q.CorrectAnswer
}

// startOfDay returns local midnight for t; the app's calendar-day convention.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayString formats t as the date-only key used by daily attempts and the
// streak gate.
func dayString(t time.Time) string {
	return t.Format("2006-01-02")
}

// beltForLessons maps total completed lessons to the cosmetic belt rank.
// Purely a display label; nothing gates on it.
func beltForLessons(completed int) string {
	switch {
	case completed >= 50:
		return "black"
	case completed >= 30:
		return "brown"
	case completed >= 20:
		return "green"
	case completed >= 10:
		return "yellow"
	default:
		return "white"
	}
}

// drawQuiz picks one lesson uniformly among those eligible as a daily quiz.
// Returns nil when none qualify. The rand source is injected so selection is
// reproducible in tests (and the handler seeds it from the clock).
func drawQuiz(lessons []Lesson, rng *rand.Rand) *Lesson {
	eligible := make([]*Lesson, 0, len(lessons))
	for i := range lessons {
		if lessons[i].Content.IsQuiz() {
			eligible = append(eligible, &lessons[i])
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	return eligible[rng.Intn(len(eligible))]
}
