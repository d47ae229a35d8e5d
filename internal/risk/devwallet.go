package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/songzhibin97/tokenlens/internal/models"
)

// DevWalletRisk scores how much leverage the deployer retains: creator
// holdings as a share of supply and a single dominant wallet in the holder
// list. Creator data comes from contract analysis providers when available.
func DevWalletRisk(checks *models.ContractChecks, list *models.HolderList) SubScore {
	var s SubScore

	if checks == nil || !checks.ChecksAvailable {
		s.add("dev_wallet_unknown", models.CategorySecurity, 60,
			"creator holdings unknown; assuming elevated dev-wallet risk")
	} else {
		switch {
		case checks.CreatorHoldPct >= 20:
			s.add("creator_holdings", models.CategorySecurity, 40,
				fmt.Sprintf("creator wallet holds %.1f%% of supply", checks.CreatorHoldPct))
		case checks.CreatorHoldPct >= 10:
			s.add("creator_holdings", models.CategorySecurity, 25,
				fmt.Sprintf("creator wallet holds %.1f%% of supply", checks.CreatorHoldPct))
		case checks.CreatorHoldPct >= 5:
			s.add("creator_holdings", models.CategorySecurity, 10,
				fmt.Sprintf("creator wallet holds %.1f%% of supply", checks.CreatorHoldPct))
		}
		if checks.CreatorSoldIn {
			s.add("creator_selling", models.CategorySecurity, 20,
				"creator wallet has been selling into the pool")
		}
	}

	if list != nil && len(list.Holders) > 0 {
		total := decimal.Zero
		top := decimal.Zero
		for _, h := range list.Holders {
			total = total.Add(h.Balance)
			if h.Balance.GreaterThan(top) {
				top = h.Balance
			}
		}
		if total.IsPositive() {
			topPct, _ := top.Div(total).Mul(decimal.NewFromInt(100)).Float64()
			if topPct >= 30 {
				s.add("dominant_wallet", models.CategorySecurity, 20,
					fmt.Sprintf("a single wallet holds %.1f%% of tracked supply", topPct))
			}
		}
	}

	return s.finish()
}
