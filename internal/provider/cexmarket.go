package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/adshao/go-binance/v2"

	"github.com/songzhibin97/tokenlens/internal/models"
)

// statsService is the slice of the exchange client the adapter needs.
// Narrowed for testability.
type statsService interface {
	PriceChangeStats(ctx context.Context, symbol string) (*binance.PriceChangeStats, error)
}

// CEXMarket serves volume and price-change stats for exchange-listed majors
// through the public 24h ticker endpoint. It only understands symbols, not
// contract addresses, so it naturally declines address-shaped subjects.
type CEXMarket struct {
	stats statsService
	quote string
}

type binanceStats struct {
	client *binance.Client
}

func (b *binanceStats) PriceChangeStats(ctx context.Context, symbol string) (*binance.PriceChangeStats, error) {
	all, err := b.client.NewListPriceChangeStatsService().Symbol(symbol).Do(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNotFound
	}
	return all[0], nil
}

func NewCEXMarket() *CEXMarket {
	return &CEXMarket{
		stats: &binanceStats{client: binance.NewClient("", "")},
		quote: "USDT",
	}
}

func (c *CEXMarket) Name() string { return "cexmarket" }

func (c *CEXMarket) QuotaLimited() bool { return false }

func (c *CEXMarket) Capabilities() []models.Capability {
	return []models.Capability{models.CapVolumeStats}
}

func (c *CEXMarket) Fetch(ctx context.Context, capability models.Capability, subjectID string) (*models.Payload, error) {
	if capability != models.CapVolumeStats {
		return nil, fmt.Errorf("cexmarket: unsupported capability %q", capability)
	}
	if strings.HasPrefix(subjectID, "0x") || len(subjectID) > 12 {
		// Contract addresses never trade on the CEX under that identifier.
		return nil, ErrNotFound
	}

	symbol := strings.ToUpper(subjectID)
	if !strings.HasSuffix(symbol, c.quote) {
		symbol += c.quote
	}

	stats, err := c.stats.PriceChangeStats(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ticker stats: %w", err)
	}

	pair := &models.PairData{
		PriceUSD: parseFloat(stats.LastPrice),
		Volume:   models.VolumeWindows{H24: parseFloat(stats.QuoteVolume)},
		PriceChange: models.ChangeWindows{
			H24: parseFloat(stats.PriceChangePercent),
		},
		Txns: models.TxnCounts{
			// The ticker only exposes a total trade count; split evenly so
			// imbalance heuristics stay neutral for CEX data.
			Buys24h:  int(stats.Count / 2),
			Sells24h: int(stats.Count - stats.Count/2),
		},
	}
	return &models.Payload{Pair: pair}, nil
}
