// Package risk holds the independent risk factor calculators and the
// aggregation engine that folds their sub-scores into one composite
// assessment.
//
// Every calculator is a pure function of resolved provider data: no network,
// no clock reads (age-sensitive calculators take the evaluation instant as an
// argument), no shared state. Missing input degrades to maximal risk for the
// affected factor rather than an error; the pipeline fails safe toward
// caution.
package risk

import (
	"github.com/songzhibin97/tokenlens/internal/models"
)

// SubScore is one calculator's bounded result: a 0–100 score plus one
// human-readable factor per triggered condition.
type SubScore struct {
	Score   float64
	Factors []models.RiskFactor
}

// add appends a factor and raises the running score, keeping both the
// factor score and the running total clamped.
func (s *SubScore) add(name string, category models.RiskCategory, points float64, description string) {
	s.Score = models.Clamp(s.Score + points)
	s.Factors = append(s.Factors, models.RiskFactor{
		Name:        name,
		Category:    category,
		Score:       models.Clamp(points),
		Description: description,
	})
}

// finish normalizes every factor score into range before the result leaves
// the calculator.
func (s *SubScore) finish() SubScore {
	s.Score = models.Clamp(s.Score)
	for i := range s.Factors {
		s.Factors[i].Score = models.Clamp(s.Factors[i].Score)
	}
	return *s
}
