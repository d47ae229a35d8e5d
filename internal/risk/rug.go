package risk

import (
	"fmt"
	"time"

	"github.com/songzhibin97/tokenlens/internal/models"
)

const (
	rugLowLiquidity     = 10_000.0
	rugThinLiquidity    = 50_000.0
	rugChurnRatioSevere = 20.0
	rugChurnRatioHigh   = 10.0
	rugDumpSevere       = -70.0
	rugDumpHeavy        = -40.0
	rugImbalanceRatio   = 5.0
	rugMinTxnsForSkew   = 20
)

// RugPullRisk is the weighted composite heuristic for exit-scam setups:
// shallow liquidity, abnormal volume churn, a very young pair, a severe 24h
// dump, and a lopsided buy/sell count in either direction.
func RugPullRisk(pair *models.PairData, now time.Time) SubScore {
	var s SubScore
	if pair == nil {
		s.add("rug_data_missing", models.CategorySecurity, 100,
			"no pair data available; treating as maximum rug risk")
		return s.finish()
	}

	switch {
	case pair.LiquidityUSD < rugLowLiquidity:
		s.add("rug_low_liquidity", models.CategorySecurity, 25,
			fmt.Sprintf("liquidity of $%.0f can be pulled or drained in one transaction", pair.LiquidityUSD))
	case pair.LiquidityUSD < rugThinLiquidity:
		s.add("rug_thin_liquidity", models.CategorySecurity, 12,
			fmt.Sprintf("liquidity of $%.0f offers little exit depth", pair.LiquidityUSD))
	}

	if pair.LiquidityUSD > 0 {
		ratio := pair.Volume.H24 / pair.LiquidityUSD
		switch {
		case ratio > rugChurnRatioSevere:
			s.add("rug_volume_churn", models.CategorySecurity, 20,
				fmt.Sprintf("24h volume is %.0fx liquidity; wash-trading pattern", ratio))
		case ratio > rugChurnRatioHigh:
			s.add("rug_volume_churn", models.CategorySecurity, 10,
				fmt.Sprintf("24h volume is %.0fx liquidity", ratio))
		}
	}

	// Age risk decays as the pair survives.
	age := pair.AgeHours(now)
	switch {
	case age < 1:
		s.add("rug_pair_age", models.CategorySecurity, 30,
			fmt.Sprintf("pair is %.1f hours old; most rug pulls happen within the first hours", age))
	case age < 24:
		s.add("rug_pair_age", models.CategorySecurity, 20,
			fmt.Sprintf("pair is %.0f hours old", age))
	case age < 72:
		s.add("rug_pair_age", models.CategorySecurity, 10,
			fmt.Sprintf("pair is %.0f hours old and still unproven", age))
	}

	switch {
	case pair.PriceChange.H24 <= rugDumpSevere:
		s.add("rug_price_collapse", models.CategorySecurity, 25,
			fmt.Sprintf("price collapsed %.0f%% in 24h", pair.PriceChange.H24))
	case pair.PriceChange.H24 <= rugDumpHeavy:
		s.add("rug_price_drop", models.CategorySecurity, 12,
			fmt.Sprintf("price dropped %.0f%% in 24h", pair.PriceChange.H24))
	}

	buys, sells := pair.Txns.Buys24h, pair.Txns.Sells24h
	if pair.Volume.H24 > 10_000 && buys+sells == 0 {
		s.add("rug_phantom_volume", models.CategorySecurity, 15,
			fmt.Sprintf("$%.0f of reported 24h volume with no recorded transactions", pair.Volume.H24))
	}
	if buys+sells >= rugMinTxnsForSkew && sells > 0 && buys > 0 {
		ratio := float64(buys) / float64(sells)
		if ratio > rugImbalanceRatio || ratio < 1/rugImbalanceRatio {
			s.add("rug_txn_imbalance", models.CategorySecurity, 15,
				fmt.Sprintf("buy/sell count imbalance %d:%d", buys, sells))
		}
	}

	return s.finish()
}
