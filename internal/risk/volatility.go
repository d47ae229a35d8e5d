package risk

import (
	"fmt"
	"math"

	"github.com/songzhibin97/tokenlens/internal/models"
)

// Escalating |price change| thresholds per window, highest first.
var volatilityBands = []struct {
	window    string
	change    func(c models.ChangeWindows) float64
	levels    []float64
	penalties []float64
}{
	{"1h", func(c models.ChangeWindows) float64 { return c.H1 }, []float64{50, 25, 10}, []float64{30, 20, 10}},
	{"6h", func(c models.ChangeWindows) float64 { return c.H6 }, []float64{60, 30}, []float64{25, 15}},
	{"24h", func(c models.ChangeWindows) float64 { return c.H24 }, []float64{80, 40}, []float64{25, 12}},
}

const (
	thinTradeCount    = 10
	thinTradeMovement = 20.0
)

// VolatilityRisk sums weighted penalties for absolute price movement over
// the 1h/6h/24h windows, plus a penalty when price moves hard on almost no
// trades. Movement without participation is a classic manipulation tell.
func VolatilityRisk(pair *models.PairData) SubScore {
	var s SubScore
	if pair == nil {
		s.add("volatility_missing", models.CategoryMarket, 100,
			"no price change data available; treating as maximum risk")
		return s.finish()
	}

	maxMove := 0.0
	for _, band := range volatilityBands {
		change := math.Abs(band.change(pair.PriceChange))
		if change > maxMove {
			maxMove = change
		}
		for i, level := range band.levels {
			if change >= level {
				s.add("price_swing_"+band.window, models.CategoryMarket, band.penalties[i],
					fmt.Sprintf("%s price moved %.1f%% (threshold %.0f%%)", band.window, band.change(pair.PriceChange), level))
				break
			}
		}
	}

	trades := pair.Txns.Buys24h + pair.Txns.Sells24h
	if trades < thinTradeCount && maxMove >= thinTradeMovement {
		s.add("movement_without_trades", models.CategoryMarket, 20,
			fmt.Sprintf("%.1f%% price movement on only %d trades in 24h", maxMove, trades))
	}

	return s.finish()
}
