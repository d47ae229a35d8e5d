package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/songzhibin97/tokenlens/internal/models"
)

func cleanChecks() *models.ContractChecks {
	return &models.ContractChecks{
		CanBuy:          true,
		CanSell:         true,
		ChecksAvailable: true,
	}
}

func TestHoneypotRisk_Verdicts(t *testing.T) {
	tests := []struct {
		name    string
		checks  *models.ContractChecks
		pair    *models.PairData
		verdict models.SellabilityVerdict
	}{
		{
			name:    "no restriction data is suspicious",
			checks:  nil,
			verdict: models.SellabilitySuspicious,
		},
		{
			name:    "checks present but unavailable is suspicious",
			checks:  &models.ContractChecks{},
			verdict: models.SellabilitySuspicious,
		},
		{
			name: "can buy cannot sell is a honeypot",
			checks: &models.ContractChecks{
				CanBuy:          true,
				CanSell:         false,
				ChecksAvailable: true,
			},
			verdict: models.SellabilityHoneypot,
		},
		{
			name:    "clean checks are safe",
			checks:  cleanChecks(),
			verdict: models.SellabilitySafe,
		},
		{
			name: "sell restriction alone is suspicious",
			checks: &models.ContractChecks{
				CanBuy:          true,
				CanSell:         true,
				SellRestricted:  true,
				ChecksAvailable: true,
			},
			verdict: models.SellabilitySuspicious,
		},
		{
			name:   "unverified checks plus no observed sells is a honeypot",
			checks: nil,
			pair: &models.PairData{
				Txns: models.TxnCounts{Buys24h: 50, Sells24h: 0},
			},
			verdict: models.SellabilityHoneypot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := HoneypotRisk(tt.checks, tt.pair)

			assert.Equal(t, tt.verdict, res.Verdict)
			assert.GreaterOrEqual(t, res.Score, 0.0)
			assert.LessOrEqual(t, res.Score, 100.0)
		})
	}
}

func TestHoneypotRisk_ObservedFlowCorroborates(t *testing.T) {
	// Clean static checks with buys flowing and zero sells still surface a
	// factor, even though the verdict stays below the suspicious band.
	res := HoneypotRisk(cleanChecks(), &models.PairData{
		Txns: models.TxnCounts{Buys24h: 30, Sells24h: 0},
	})

	assert.Equal(t, models.SellabilitySafe, res.Verdict)
	assert.Len(t, res.Factors, 1)
	assert.Equal(t, "no_observed_sells", res.Factors[0].Name)
}

func TestHoneypotRisk_StackedRestrictions(t *testing.T) {
	res := HoneypotRisk(&models.ContractChecks{
		CanBuy:          true,
		CanSell:         false,
		TransferLimited: true,
		HasBlacklist:    true,
		ChecksAvailable: true,
	}, nil)

	assert.Equal(t, models.SellabilityHoneypot, res.Verdict)
	assert.Equal(t, 100.0, res.Score)
	assert.Len(t, res.Factors, 3)
}
