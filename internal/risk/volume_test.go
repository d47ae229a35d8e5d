package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/songzhibin97/tokenlens/internal/models"
)

func TestVolumeSpikeRisk(t *testing.T) {
	tests := []struct {
		name        string
		pair        *models.PairData
		minScore    float64
		wantFactors []string
	}{
		{
			name:        "missing data",
			pair:        nil,
			minScore:    100,
			wantFactors: []string{"volume_missing"},
		},
		{
			name: "steady trading",
			pair: &models.PairData{
				LiquidityUSD: 200_000,
				Volume:       models.VolumeWindows{M5: 80, H1: 1_000, H24: 24_000},
				Txns:         models.TxnCounts{Buys1h: 20, Sells1h: 18},
			},
			minScore:    0,
			wantFactors: nil,
		},
		{
			name: "severe hourly spike",
			pair: &models.PairData{
				LiquidityUSD: 200_000,
				Volume:       models.VolumeWindows{H1: 9_000, H24: 24_000},
			},
			minScore:    40,
			wantFactors: []string{"volume_spike"},
		},
		{
			name: "spike plus burst plus skew into a thin pool",
			pair: &models.PairData{
				LiquidityUSD: 20_000,
				Volume:       models.VolumeWindows{M5: 5_000, H1: 9_000, H24: 24_000},
				Txns:         models.TxnCounts{Buys1h: 40, Sells1h: 5},
			},
			minScore:    85, // 40 + 15 + 15 + 15
			wantFactors: []string{"volume_spike", "volume_burst", "txn_skew_1h", "spike_into_thin_pool"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := VolumeSpikeRisk(tt.pair)

			assert.GreaterOrEqual(t, s.Score, tt.minScore)
			assert.Len(t, s.Factors, len(tt.wantFactors))
			for i, name := range tt.wantFactors {
				assert.Equal(t, name, s.Factors[i].Name)
			}
		})
	}
}
