package risk

import (
	"fmt"

	"github.com/songzhibin97/tokenlens/internal/models"
)

const (
	spikeSevereMultiple   = 8.0
	spikeElevatedMultiple = 4.0
	burstMultiple         = 6.0
	skewRatio             = 4.0
	skewMinTxns           = 10
)

// VolumeSpikeRisk scores abnormal short-window volume against the 24h
// baseline, a five-minute burst against the hourly rate, and a lopsided
// 1h buy/sell count. A spike into a shallow pool is weighted harder.
func VolumeSpikeRisk(pair *models.PairData) SubScore {
	var s SubScore
	if pair == nil {
		s.add("volume_missing", models.CategoryMarket, 100,
			"no volume data available; treating as maximum risk")
		return s.finish()
	}

	hourlyBaseline := pair.Volume.H24 / 24
	if hourlyBaseline > 0 {
		multiple := pair.Volume.H1 / hourlyBaseline
		switch {
		case multiple >= spikeSevereMultiple:
			s.add("volume_spike", models.CategoryMarket, 40,
				fmt.Sprintf("1h volume is %.1fx the 24h hourly baseline", multiple))
		case multiple >= spikeElevatedMultiple:
			s.add("volume_spike", models.CategoryMarket, 25,
				fmt.Sprintf("1h volume is %.1fx the 24h hourly baseline", multiple))
		}
	}

	fiveMinBaseline := pair.Volume.H1 / 12
	if fiveMinBaseline > 0 && pair.Volume.M5/fiveMinBaseline >= burstMultiple {
		s.add("volume_burst", models.CategoryMarket, 15,
			fmt.Sprintf("5m volume of $%.0f is a burst against the hourly rate", pair.Volume.M5))
	}

	if pair.Txns.Buys1h+pair.Txns.Sells1h >= skewMinTxns && pair.Txns.Sells1h > 0 {
		ratio := float64(pair.Txns.Buys1h) / float64(pair.Txns.Sells1h)
		if ratio >= skewRatio || ratio <= 1/skewRatio {
			s.add("txn_skew_1h", models.CategoryMarket, 15,
				fmt.Sprintf("1h buy/sell skew %d:%d", pair.Txns.Buys1h, pair.Txns.Sells1h))
		}
	}

	if len(s.Factors) > 0 && pair.LiquidityUSD > 0 && pair.LiquidityUSD < 25_000 {
		s.add("spike_into_thin_pool", models.CategoryMarket, 15,
			fmt.Sprintf("volume anomaly against only $%.0f of liquidity", pair.LiquidityUSD))
	}

	return s.finish()
}
