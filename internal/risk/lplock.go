package risk

import (
	"fmt"
	"time"

	"github.com/songzhibin97/tokenlens/internal/models"
)

// LPLockRisk estimates how likely pool liquidity is to be withdrawable by
// insiders. No lock attestation is obtainable from the configured providers,
// so this is inferred from liquidity size, the volume/liquidity ratio, and
// pool age. Every factor string says "estimated" so the output is never read
// as a verified on-chain fact.
func LPLockRisk(pair *models.PairData, now time.Time) SubScore {
	var s SubScore
	if pair == nil {
		s.add("lp_lock_unknown", models.CategorySecurity, 100,
			"estimated: no pool data available, lock status cannot be inferred")
		return s.finish()
	}

	switch {
	case pair.LiquidityUSD < 5_000:
		s.add("lp_size_estimate", models.CategorySecurity, 35,
			fmt.Sprintf("estimated: $%.0f pools are rarely locked and trivially withdrawn", pair.LiquidityUSD))
	case pair.LiquidityUSD < 50_000:
		s.add("lp_size_estimate", models.CategorySecurity, 20,
			fmt.Sprintf("estimated: $%.0f pool size gives weak assurance of a lock", pair.LiquidityUSD))
	}

	if pair.LiquidityUSD > 0 && pair.Volume.H24/pair.LiquidityUSD > 3 {
		s.add("lp_churn_estimate", models.CategorySecurity, 20,
			"estimated: high volume against liquidity suggests mobile, unlocked liquidity")
	}

	age := pair.AgeHours(now)
	switch {
	case age < 72:
		s.add("lp_age_estimate", models.CategorySecurity, 25,
			fmt.Sprintf("estimated: pool is %.0f hours old, too young to demonstrate a lasting lock", age))
	case age < 24*7:
		s.add("lp_age_estimate", models.CategorySecurity, 10,
			"estimated: pool is under a week old")
	}

	return s.finish()
}
