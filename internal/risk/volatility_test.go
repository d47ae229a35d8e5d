package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/tokenlens/internal/models"
)

func TestVolatilityRisk(t *testing.T) {
	tests := []struct {
		name     string
		pair     *models.PairData
		minScore float64
		maxScore float64
	}{
		{
			name:     "missing pair data",
			pair:     nil,
			minScore: 100,
			maxScore: 100,
		},
		{
			name: "calm market",
			pair: &models.PairData{
				PriceChange: models.ChangeWindows{H1: 2, H6: -4, H24: 8},
				Txns:        models.TxnCounts{Buys24h: 200, Sells24h: 180},
			},
			minScore: 0,
			maxScore: 0,
		},
		{
			name: "sharp hourly move",
			pair: &models.PairData{
				PriceChange: models.ChangeWindows{H1: 60},
				Txns:        models.TxnCounts{Buys24h: 100, Sells24h: 100},
			},
			minScore: 30,
			maxScore: 30,
		},
		{
			name: "drawdown counts the same as a pump",
			pair: &models.PairData{
				PriceChange: models.ChangeWindows{H1: -60},
				Txns:        models.TxnCounts{Buys24h: 100, Sells24h: 100},
			},
			minScore: 30,
			maxScore: 30,
		},
		{
			name: "stacked windows",
			pair: &models.PairData{
				PriceChange: models.ChangeWindows{H1: 55, H6: 70, H24: 90},
				Txns:        models.TxnCounts{Buys24h: 500, Sells24h: 500},
			},
			minScore: 80, // 30 + 25 + 25
			maxScore: 80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := VolatilityRisk(tt.pair)

			assert.GreaterOrEqual(t, s.Score, tt.minScore)
			assert.LessOrEqual(t, s.Score, tt.maxScore)
		})
	}
}

func TestVolatilityRisk_MovementWithoutTrades(t *testing.T) {
	s := VolatilityRisk(&models.PairData{
		PriceChange: models.ChangeWindows{H24: 45},
		Txns:        models.TxnCounts{Buys24h: 3, Sells24h: 2},
	})

	var names []string
	for _, f := range s.Factors {
		names = append(names, f.Name)
	}
	require.Contains(t, names, "movement_without_trades")
	assert.Contains(t, names, "price_swing_24h")
}
