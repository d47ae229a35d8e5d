package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/tokenlens/internal/models"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		name        string
		score       float64
		factorCount int
		maxFactor   float64
		want        models.RiskLevel
	}{
		{"zero everything", 0, 0, 0, models.RiskLow},
		{"score just below medium", 34.9, 0, 34.9, models.RiskLow},
		{"medium by score", 35, 1, 35, models.RiskMedium},
		{"medium by factor count", 10, 4, 10, models.RiskMedium},
		{"high by score", 60, 1, 60, models.RiskHigh},
		{"high by factor count", 10, 7, 10, models.RiskHigh},
		{"extreme by score", 80, 1, 80, models.RiskExtreme},
		{"extreme by factor count", 10, 9, 10, models.RiskExtreme},
		{"critical factor overrides calm average", 12, 1, 95, models.RiskExtreme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tierFor(tt.score, tt.factorCount, tt.maxFactor))
		})
	}
}

func TestTierFor_MonotonicInScore(t *testing.T) {
	rank := map[models.RiskLevel]int{
		models.RiskLow:     0,
		models.RiskMedium:  1,
		models.RiskHigh:    2,
		models.RiskExtreme: 3,
	}

	prev := 0
	for score := 0.0; score <= 100; score += 5 {
		cur := rank[tierFor(score, 1, score)]
		assert.GreaterOrEqual(t, cur, prev, "tier dropped at score %.0f", score)
		prev = cur
	}
}

func factor(cat models.RiskCategory, score float64) models.RiskFactor {
	return models.RiskFactor{Name: "f", Category: cat, Score: score, Description: "finding"}
}

func TestEngine_Aggregate_WeightsRenormalize(t *testing.T) {
	e := NewEngine()

	// Only security and market present: 0.35 and 0.30 renormalize over 0.65,
	// so 80 and 40 blend to 80*0.538 + 40*0.462 = 61.5.
	out := e.Aggregate(AggregateInput{
		SubScores: map[models.RiskCategory][]models.RiskFactor{
			models.CategorySecurity: {factor(models.CategorySecurity, 80)},
			models.CategoryMarket:   {factor(models.CategoryMarket, 40)},
		},
	})

	assert.InDelta(t, 61.5, out.OverallScore, 0.1)
	assert.Equal(t, models.RiskHigh, out.RiskLevel)
}

func TestEngine_Aggregate_SingleCategoryGetsFullWeight(t *testing.T) {
	e := NewEngine()

	out := e.Aggregate(AggregateInput{
		SubScores: map[models.RiskCategory][]models.RiskFactor{
			models.CategoryTechnical: {factor(models.CategoryTechnical, 50)},
		},
	})

	// The 0.05 technical weight renormalizes to 1 when it is all there is.
	assert.InDelta(t, 50, out.OverallScore, 0.001)
}

func TestEngine_Aggregate_NoFactors(t *testing.T) {
	e := NewEngine()
	out := e.Aggregate(AggregateInput{TokenAddress: "0xabc"})

	assert.Zero(t, out.OverallScore)
	assert.Equal(t, models.RiskLow, out.RiskLevel)
	assert.Empty(t, out.Factors)
}

func TestEngine_Aggregate_Deterministic(t *testing.T) {
	e := NewEngine()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e.SetClock(func() time.Time { return fixed })

	in := AggregateInput{
		TokenAddress: "0xabc",
		Intent:       models.IntentRiskScoring,
		SubScores: map[models.RiskCategory][]models.RiskFactor{
			models.CategorySecurity:   {factor(models.CategorySecurity, 40), factor(models.CategorySecurity, 20)},
			models.CategoryMarket:     {factor(models.CategoryMarket, 60)},
			models.CategoryTokenomics: {factor(models.CategoryTokenomics, 30)},
		},
		Source: "dexscreener",
	}

	first := e.Aggregate(in)
	second := e.Aggregate(in)
	assert.Equal(t, first, second)
}

func TestEngine_Aggregate_CriticalFactorForcesExtreme(t *testing.T) {
	// One near-certain finding outranks an otherwise calm weighted average.
	e := NewEngine()

	out := e.Aggregate(AggregateInput{
		SubScores: map[models.RiskCategory][]models.RiskFactor{
			models.CategoryTokenomics: {factor(models.CategoryTokenomics, 90)},
			models.CategoryMarket: {
				factor(models.CategoryMarket, 5),
				factor(models.CategoryMarket, 5),
			},
		},
	})

	assert.Less(t, out.OverallScore, extremeScoreFloor)
	assert.Equal(t, models.RiskExtreme, out.RiskLevel)
}

func TestEngine_Aggregate_FactorPileUpEscalates(t *testing.T) {
	// Nine individually mild findings on a brand-new illiquid token: the
	// count escalation, not the weighted score, is what lands EXTREME.
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pair := &models.PairData{
		LiquidityUSD:  800,
		Volume:        models.VolumeWindows{H24: 50_000},
		PairCreatedAt: now.Add(-12 * time.Hour),
	}

	subs := map[models.RiskCategory][]models.RiskFactor{}
	for _, s := range []SubScore{
		LiquidityRisk(pair),
		RugPullRisk(pair, now),
		LaunchQualityRisk(nil, pair, now),
	} {
		for _, f := range s.Factors {
			subs[f.Category] = append(subs[f.Category], f)
		}
	}

	total := 0
	for _, fs := range subs {
		total += len(fs)
	}
	require.Greater(t, total, extremeFactorCount)

	e := NewEngine()
	out := e.Aggregate(AggregateInput{SubScores: subs})

	assert.Less(t, out.OverallScore, extremeScoreFloor)
	assert.Equal(t, models.RiskExtreme, out.RiskLevel)
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name          string
		overall       float64
		factorCount   int
		heuristicOnly bool
		want          float64
	}{
		{"no factors", 0, 0, false, 40},
		{"each factor adds six points", 30, 4, false, 64},
		{"factor contribution caps at eight", 30, 20, false, 88},
		{"very high scores lose confidence", 90, 8, false, 68},
		{"high scores lose less", 72, 8, false, 78},
		{"heuristic sources cap at seventy", 30, 8, true, 70},
		{"heuristic cap leaves lower values alone", 30, 2, true, 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, confidence(tt.overall, tt.factorCount, tt.heuristicOnly))
		})
	}
}

func TestRecommendations_TierAdviceFirst(t *testing.T) {
	e := NewEngine()

	out := e.Aggregate(AggregateInput{
		SubScores: map[models.RiskCategory][]models.RiskFactor{
			models.CategorySecurity: {factor(models.CategorySecurity, 85)},
		},
	})

	require.NotEmpty(t, out.Recommendations)
	assert.Contains(t, out.Recommendations[0], "EXTREME")
	assert.Equal(t, "Finding: finding", out.Recommendations[len(out.Recommendations)-1])
}
