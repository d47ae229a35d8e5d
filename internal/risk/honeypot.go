package risk

import (
	"fmt"

	"github.com/songzhibin97/tokenlens/internal/models"
)

// Sellability verdict bands.
const (
	honeypotScoreFloor   = 80.0
	suspiciousScoreFloor = 40.0
)

// SellabilityResult extends the plain sub-score with the SAFE / SUSPICIOUS /
// HONEYPOT verdict the honeypot intent reports.
type SellabilityResult struct {
	SubScore
	Verdict models.SellabilityVerdict
}

// HoneypotRisk combines buy-test and sell-test style restriction fields with
// observed trading. The classic honeypot signature is "can buy, cannot
// sell". Restriction fields come from static contract analysis, not a real
// transaction simulation, so a clean result lowers but never zeroes risk.
func HoneypotRisk(checks *models.ContractChecks, pair *models.PairData) SellabilityResult {
	var s SubScore

	if checks == nil || !checks.ChecksAvailable {
		s.add("sellability_unverified", models.CategorySecurity, 70,
			"contract restriction data unavailable; sellability cannot be verified")
	} else {
		if checks.CanBuy && !checks.CanSell {
			s.add("honeypot_signature", models.CategorySecurity, 100,
				"classic honeypot: token can be bought but not sold")
		}
		if checks.SellRestricted {
			s.add("sell_restriction", models.CategorySecurity, 40,
				"contract restricts selling (sell blocked or confiscatory sell tax)")
		}
		if checks.TransferLimited {
			s.add("transfer_restriction", models.CategorySecurity, 20,
				"transfers can be paused or limited by the contract")
		}
		if checks.HasBlacklist {
			s.add("blacklist_function", models.CategorySecurity, 25,
				"contract contains a blacklist function")
		}
	}

	// Corroborate with observed flow: buys happening while nobody ever
	// manages to sell.
	if pair != nil && pair.Txns.Buys24h > 20 && pair.Txns.Sells24h == 0 {
		s.add("no_observed_sells", models.CategorySecurity, 30,
			fmt.Sprintf("%d buys and zero sells recorded in 24h", pair.Txns.Buys24h))
	}

	result := SellabilityResult{SubScore: s.finish()}
	switch {
	case result.Score >= honeypotScoreFloor:
		result.Verdict = models.SellabilityHoneypot
	case result.Score >= suspiciousScoreFloor:
		result.Verdict = models.SellabilitySuspicious
	default:
		result.Verdict = models.SellabilitySafe
	}
	return result
}
