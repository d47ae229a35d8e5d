package risk

import (
	"fmt"
	"time"

	"github.com/songzhibin97/tokenlens/internal/models"
)

// LaunchQualityRisk scores how credibly a token launched: pair age, launch
// liquidity, and whether the token carries verified metadata on any
// registry. Young and anonymous is the default for throwaway launches.
func LaunchQualityRisk(meta *models.TokenMetadata, pair *models.PairData, now time.Time) SubScore {
	var s SubScore

	if pair == nil {
		s.add("launch_unknown", models.CategoryTechnical, 100,
			"no pair data available; launch quality cannot be assessed")
		return s.finish()
	}

	age := pair.AgeHours(now)
	switch {
	case age < 24:
		s.add("launch_age", models.CategoryTechnical, 35,
			fmt.Sprintf("token launched %.0f hours ago", age))
	case age < 24*7:
		s.add("launch_age", models.CategoryTechnical, 20,
			fmt.Sprintf("token launched %.0f days ago", age/24))
	}

	if pair.LiquidityUSD < 10_000 {
		s.add("launch_liquidity", models.CategoryTechnical, 25,
			fmt.Sprintf("launch liquidity of $%.0f signals low commitment", pair.LiquidityUSD))
	}

	if meta == nil {
		s.add("metadata_missing", models.CategoryCommunity, 30,
			"token metadata not found on any registry")
	} else if !meta.Verified {
		s.add("metadata_unverified", models.CategoryCommunity, 20,
			"token is not present on any curated token list")
	}

	return s.finish()
}
