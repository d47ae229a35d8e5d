package risk

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/songzhibin97/tokenlens/internal/models"
)

// Top-10 concentration bands (percent of tracked supply), highest first.
var concentrationBands = []struct {
	atLeast float64
	score   float64
	label   string
}{
	{90, 95, "near-total"},
	{85, 90, "extreme"},
	{70, 75, "severe"},
	{50, 55, "heavy"},
	{30, 35, "elevated"},
}

// whaleMultiple is the balance threshold relative to the mean balance above
// which a holder counts as a whale.
var whaleMultiple = decimal.NewFromInt(10)

// ConcentrationRisk scores holder distribution: the share of tracked supply
// held by the top 10 addresses, and the ratio of whale addresses (balance at
// least 10x the mean) to total holders.
func ConcentrationRisk(list *models.HolderList) SubScore {
	var s SubScore
	if list == nil || len(list.Holders) == 0 {
		s.add("holders_missing", models.CategoryTokenomics, 100,
			"no holder data available; treating as maximum concentration risk")
		return s.finish()
	}

	holders := append([]models.Holder(nil), list.Holders...)
	sort.Slice(holders, func(i, j int) bool {
		return holders[i].Balance.GreaterThan(holders[j].Balance)
	})

	total := decimal.Zero
	for _, h := range holders {
		total = total.Add(h.Balance)
	}
	if total.IsZero() {
		s.add("holders_zero_supply", models.CategoryTokenomics, 100,
			"holder balances sum to zero; distribution cannot be assessed")
		return s.finish()
	}

	topN := 10
	if len(holders) < topN {
		topN = len(holders)
	}
	topSum := decimal.Zero
	for _, h := range holders[:topN] {
		topSum = topSum.Add(h.Balance)
	}
	topPct, _ := topSum.Div(total).Mul(decimal.NewFromInt(100)).Float64()

	for _, band := range concentrationBands {
		if topPct >= band.atLeast {
			s.add("top10_concentration", models.CategoryTokenomics, band.score,
				fmt.Sprintf("%s concentration: top 10 addresses hold %.1f%% of tracked supply", band.label, topPct))
			break
		}
	}

	mean := total.Div(decimal.NewFromInt(int64(len(holders))))
	whaleFloor := mean.Mul(whaleMultiple)
	whales := 0
	for _, h := range holders {
		if h.Balance.GreaterThanOrEqual(whaleFloor) {
			whales++
		}
	}
	denom := list.TotalHolders
	if denom < len(holders) {
		denom = len(holders)
	}
	// A holder at 10x the mean caps the whale ratio at 10% by construction,
	// so the bands sit below that ceiling.
	whaleRatio := float64(whales) / float64(denom)
	switch {
	case whaleRatio >= 0.08:
		s.add("whale_ratio", models.CategoryTokenomics, 20,
			fmt.Sprintf("%d whale addresses among %d holders (%.1f%%)", whales, denom, whaleRatio*100))
	case whaleRatio >= 0.04:
		s.add("whale_ratio", models.CategoryTokenomics, 10,
			fmt.Sprintf("%d whale addresses among %d holders (%.1f%%)", whales, denom, whaleRatio*100))
	}

	return s.finish()
}
