package risk

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/tokenlens/internal/models"
)

// holderList builds a distribution where the top 10 addresses share topPct
// percent of supply and the rest is spread evenly over the remaining count.
func holderList(topPct float64, total int) *models.HolderList {
	list := &models.HolderList{TotalHolders: total}
	topEach := topPct / 10
	restEach := (100 - topPct) / float64(total-10)
	for i := 0; i < 10; i++ {
		list.Holders = append(list.Holders, models.Holder{
			Address: fmt.Sprintf("top%d", i),
			Balance: decimal.NewFromFloat(topEach),
		})
	}
	for i := 10; i < total; i++ {
		list.Holders = append(list.Holders, models.Holder{
			Address: fmt.Sprintf("small%d", i),
			Balance: decimal.NewFromFloat(restEach),
		})
	}
	return list
}

func TestConcentrationRisk(t *testing.T) {
	tests := []struct {
		name     string
		list     *models.HolderList
		minScore float64
	}{
		{"missing holder data", nil, 100},
		{"empty holder list", &models.HolderList{}, 100},
		{"extreme concentration", holderList(85, 100), 90},
		{"severe concentration", holderList(72, 100), 75},
		{"broad distribution", holderList(12, 200), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ConcentrationRisk(tt.list)
			assert.GreaterOrEqual(t, s.Score, tt.minScore)
			assert.LessOrEqual(t, s.Score, 100.0)
		})
	}
}

func TestConcentrationRisk_Top10At85PercentEscalates(t *testing.T) {
	// An 85% top-10 share must carry a factor scored high enough to force
	// the aggregation engine to EXTREME on its own.
	s := ConcentrationRisk(holderList(85, 100))

	require.NotEmpty(t, s.Factors)
	var concentration *models.RiskFactor
	for i := range s.Factors {
		if s.Factors[i].Name == "top10_concentration" {
			concentration = &s.Factors[i]
		}
	}
	require.NotNil(t, concentration)
	assert.GreaterOrEqual(t, concentration.Score, 90.0)
	assert.Equal(t, models.CategoryTokenomics, concentration.Category)
}

func TestConcentrationRisk_WhaleRatio(t *testing.T) {
	// 100 holders: 8 whales far above the 10x-mean threshold put the whale
	// ratio at 8%, inside the top band.
	list := &models.HolderList{TotalHolders: 100}
	for i := 0; i < 8; i++ {
		list.Holders = append(list.Holders, models.Holder{
			Address: fmt.Sprintf("whale%d", i),
			Balance: decimal.NewFromInt(1000),
		})
	}
	for i := 0; i < 92; i++ {
		list.Holders = append(list.Holders, models.Holder{
			Address: fmt.Sprintf("small%d", i),
			Balance: decimal.NewFromInt(10),
		})
	}

	s := ConcentrationRisk(list)

	found := false
	for _, f := range s.Factors {
		if f.Name == "whale_ratio" {
			found = true
			assert.GreaterOrEqual(t, f.Score, 20.0)
		}
	}
	assert.True(t, found, "expected a whale_ratio factor")
}
