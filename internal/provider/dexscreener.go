package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/songzhibin97/tokenlens/internal/models"
	"github.com/songzhibin97/tokenlens/internal/utils/request"
)

// DexScreener is the primary free DEX aggregator source: pair data, token
// metadata and volume stats, no API key.
type DexScreener struct {
	baseURL    string
	httpClient *resty.Client
}

func NewDexScreener() *DexScreener {
	return &DexScreener{
		baseURL:    "https://api.dexscreener.com",
		httpClient: request.Request,
	}
}

func (d *DexScreener) Name() string { return "dexscreener" }

func (d *DexScreener) QuotaLimited() bool { return false }

func (d *DexScreener) Capabilities() []models.Capability {
	return []models.Capability{models.CapTokenMetadata, models.CapPairData, models.CapVolumeStats}
}

// dexScreenerResponse is the raw wire shape for the token-pairs endpoint.
type dexScreenerResponse struct {
	Pairs []dexScreenerPair `json:"pairs"`
}

type dexScreenerPair struct {
	PairAddress string `json:"pairAddress"`
	BaseToken   struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	PriceUSD  string `json:"priceUsd"`
	Liquidity struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
	Volume struct {
		M5  float64 `json:"m5"`
		H1  float64 `json:"h1"`
		H6  float64 `json:"h6"`
		H24 float64 `json:"h24"`
	} `json:"volume"`
	PriceChange struct {
		H1  float64 `json:"h1"`
		H6  float64 `json:"h6"`
		H24 float64 `json:"h24"`
	} `json:"priceChange"`
	Txns struct {
		H1 struct {
			Buys  int `json:"buys"`
			Sells int `json:"sells"`
		} `json:"h1"`
		H24 struct {
			Buys  int `json:"buys"`
			Sells int `json:"sells"`
		} `json:"h24"`
	} `json:"txns"`
	PairCreatedAt int64 `json:"pairCreatedAt"` // unix millis
}

func (d *DexScreener) Fetch(ctx context.Context, capability models.Capability, subjectID string) (*models.Payload, error) {
	if !supports(d.Capabilities(), capability) {
		return nil, fmt.Errorf("dexscreener: unsupported capability %q", capability)
	}

	url := fmt.Sprintf("%s/latest/dex/tokens/%s", d.baseURL, subjectID)
	resp, err := d.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result dexScreenerResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Pairs) == 0 {
		return nil, ErrNotFound
	}

	// The deepest pool is the representative pair for the token.
	best := result.Pairs[0]
	for _, p := range result.Pairs[1:] {
		if p.Liquidity.USD > best.Liquidity.USD {
			best = p
		}
	}

	return d.normalize(capability, best), nil
}

// normalize converts the raw pair into the canonical payload for the
// requested capability.
func (d *DexScreener) normalize(capability models.Capability, raw dexScreenerPair) *models.Payload {
	switch capability {
	case models.CapTokenMetadata:
		return &models.Payload{Metadata: &models.TokenMetadata{
			Address: raw.BaseToken.Address,
			Name:    raw.BaseToken.Name,
			Symbol:  raw.BaseToken.Symbol,
		}}
	case models.CapPairData, models.CapVolumeStats:
		pair := &models.PairData{
			PairAddress:  raw.PairAddress,
			PriceUSD:     parseFloat(raw.PriceUSD),
			LiquidityUSD: raw.Liquidity.USD,
			Volume: models.VolumeWindows{
				M5: raw.Volume.M5, H1: raw.Volume.H1, H6: raw.Volume.H6, H24: raw.Volume.H24,
			},
			PriceChange: models.ChangeWindows{
				H1: raw.PriceChange.H1, H6: raw.PriceChange.H6, H24: raw.PriceChange.H24,
			},
			Txns: models.TxnCounts{
				Buys24h: raw.Txns.H24.Buys, Sells24h: raw.Txns.H24.Sells,
				Buys1h: raw.Txns.H1.Buys, Sells1h: raw.Txns.H1.Sells,
			},
		}
		if raw.PairCreatedAt > 0 {
			pair.PairCreatedAt = time.UnixMilli(raw.PairCreatedAt)
		}
		return &models.Payload{Pair: pair}
	}
	return &models.Payload{}
}
