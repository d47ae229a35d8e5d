package risk

import (
	"time"

	"github.com/songzhibin97/tokenlens/internal/models"
)

// Fixed category weights for composite scoring.
var categoryWeights = map[models.RiskCategory]float64{
	models.CategorySecurity:   0.35,
	models.CategoryMarket:     0.30,
	models.CategoryTokenomics: 0.20,
	models.CategoryCommunity:  0.10,
	models.CategoryTechnical:  0.05,
}

// Score bands and factor-count escalations for tier assignment. Score and
// factor count each trigger independently; the higher tier wins.
const (
	extremeScoreFloor  = 80.0
	highScoreFloor     = 60.0
	mediumScoreFloor   = 35.0
	extremeFactorCount = 8
	highFactorCount    = 6
	mediumFactorCount  = 3

	// Any single factor at or above this score forces EXTREME: one smoking
	// gun outranks a calm average.
	criticalFactorScore = 90.0
)

// AggregateInput carries everything the engine folds besides the factors
// themselves.
type AggregateInput struct {
	TokenAddress string
	Intent       models.AnalysisIntent
	SubScores    map[models.RiskCategory][]models.RiskFactor
	Sellability  models.SellabilityVerdict
	Source       string
	FallbackUsed bool

	// HeuristicOnly caps confidence when the contributing calculators are
	// estimates (LP lock, unverified honeypot checks).
	HeuristicOnly bool
}

// Engine combines sub-scores into one composite assessment. It is stateless
// apart from an injectable clock, so identical inputs under a fixed clock
// produce identical outputs.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// SetClock replaces the evaluation timestamp source. Test hook.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// Aggregate folds category-grouped factors via the fixed weights into an
// overall score, banded tier, confidence, and ordered recommendations.
func (e *Engine) Aggregate(in AggregateInput) models.CompositeRiskAssessment {
	var (
		weightedSum float64
		weightTotal float64
		factors     []models.RiskFactor
		maxFactor   float64
	)

	// Deterministic category order keeps factor ordering and therefore the
	// whole output stable across calls.
	for _, cat := range []models.RiskCategory{
		models.CategorySecurity,
		models.CategoryTokenomics,
		models.CategoryMarket,
		models.CategoryCommunity,
		models.CategoryTechnical,
	} {
		fs := in.SubScores[cat]
		if len(fs) == 0 {
			continue
		}
		sum := 0.0
		for _, f := range fs {
			sum += models.Clamp(f.Score)
			if f.Score > maxFactor {
				maxFactor = f.Score
			}
			factors = append(factors, f)
		}
		mean := sum / float64(len(fs))
		w := categoryWeights[cat]
		weightedSum += mean * w
		weightTotal += w
	}

	overall := 0.0
	if weightTotal > 0 {
		overall = models.Clamp(weightedSum / weightTotal)
	}

	level := tierFor(overall, len(factors), maxFactor)

	return models.CompositeRiskAssessment{
		TokenAddress:    in.TokenAddress,
		Intent:          in.Intent,
		OverallScore:    overall,
		RiskLevel:       level,
		Sellability:     in.Sellability,
		Factors:         factors,
		Recommendations: recommendations(level, factors),
		Confidence:      confidence(overall, len(factors), in.HeuristicOnly),
		Source:          in.Source,
		FallbackUsed:    in.FallbackUsed,
		EvaluatedAt:     e.now(),
	}
}

// tierFor is the pure banding function: monotonic in score, escalated by
// factor count, and forced to EXTREME by any critical single factor.
func tierFor(score float64, factorCount int, maxFactor float64) models.RiskLevel {
	if maxFactor >= criticalFactorScore {
		return models.RiskExtreme
	}
	switch {
	case score >= extremeScoreFloor || factorCount > extremeFactorCount:
		return models.RiskExtreme
	case score >= highScoreFloor || factorCount > highFactorCount:
		return models.RiskHigh
	case score >= mediumScoreFloor || factorCount > mediumFactorCount:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// confidence grows with corroborating factors and shrinks at the extreme
// end of the score range, where data on the asset is typically sparse.
func confidence(overall float64, factorCount int, heuristicOnly bool) float64 {
	c := 40.0
	n := factorCount
	if n > 8 {
		n = 8
	}
	c += float64(n) * 6

	switch {
	case overall >= 85:
		c -= 20
	case overall >= 70:
		c -= 10
	}

	if heuristicOnly && c > 70 {
		c = 70
	}
	return models.Clamp(c)
}

// Tier boilerplate prepended to the per-condition recommendation lines.
var tierAdvice = map[models.RiskLevel][]string{
	models.RiskExtreme: {
		"EXTREME risk: do not trade this asset.",
		"If you hold a position, plan an exit while liquidity remains.",
	},
	models.RiskHigh: {
		"HIGH risk: avoid entering; only proceed with funds you can lose entirely.",
	},
	models.RiskMedium: {
		"MEDIUM risk: size positions small and verify findings independently.",
	},
	models.RiskLow: {
		"LOW risk on available signals; standard due diligence still applies.",
	},
}

// recommendations applies ordered rules: tier boilerplate first, then one
// line per triggered condition, in factor order. No free text generation.
func recommendations(level models.RiskLevel, factors []models.RiskFactor) []string {
	out := append([]string(nil), tierAdvice[level]...)
	for _, f := range factors {
		out = append(out, "Finding: "+f.Description)
	}
	return out
}
