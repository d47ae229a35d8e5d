package risk

import (
	"fmt"

	"github.com/songzhibin97/tokenlens/internal/models"
)

// Liquidity depth bands, USD. Thresholds are policy: each band below adds a
// decreasing risk increment.
var liquidityBands = []struct {
	below  float64
	points float64
	label  string
}{
	{1_000, 60, "critically low liquidity (under $1k)"},
	{5_000, 45, "very low liquidity (under $5k)"},
	{25_000, 30, "low liquidity (under $25k)"},
	{100_000, 18, "modest liquidity (under $100k)"},
	{500_000, 8, "mid-tier liquidity (under $500k)"},
}

const (
	churnRatioHigh     = 10.0
	churnRatioElevated = 5.0
	deadPoolRatio      = 0.02
)

// LiquidityRisk scores pool depth and the 24h-volume to liquidity ratio.
// A pool that trades many multiples of its own depth per day is churn-driven
// and fragile; a pool with liquidity but almost no trading is a dead pool.
func LiquidityRisk(pair *models.PairData) SubScore {
	var s SubScore
	if pair == nil {
		s.add("liquidity_missing", models.CategoryMarket, 100,
			"no liquidity data available; treating as maximum risk")
		return s.finish()
	}

	for _, band := range liquidityBands {
		if pair.LiquidityUSD < band.below {
			s.add("liquidity_depth", models.CategoryMarket, band.points,
				fmt.Sprintf("%s: $%.0f", band.label, pair.LiquidityUSD))
			break
		}
	}

	if pair.LiquidityUSD > 0 {
		ratio := pair.Volume.H24 / pair.LiquidityUSD
		switch {
		case ratio > churnRatioHigh:
			points := ratio
			if points > 25 {
				points = 25
			}
			s.add("volume_liquidity_ratio", models.CategoryMarket, points,
				fmt.Sprintf("24h volume is %.1fx pool liquidity; churn at this level is a manipulation pattern", ratio))
		case ratio > churnRatioElevated:
			s.add("volume_liquidity_ratio", models.CategoryMarket, 15,
				fmt.Sprintf("24h volume is %.1fx pool liquidity", ratio))
		case ratio > 0 && ratio < deadPoolRatio:
			s.add("dead_pool", models.CategoryMarket, 15,
				fmt.Sprintf("pool barely trades (%.3fx liquidity per day); exit may be difficult", ratio))
		}
	}

	return s.finish()
}
