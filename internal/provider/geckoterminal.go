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

// GeckoTerminal is the free fallback pool-data source behind dexscreener.
type GeckoTerminal struct {
	baseURL    string
	network    string
	httpClient *resty.Client
}

func NewGeckoTerminal(network string) *GeckoTerminal {
	if network == "" {
		network = "eth"
	}
	return &GeckoTerminal{
		baseURL:    "https://api.geckoterminal.com",
		network:    network,
		httpClient: request.Request,
	}
}

func (g *GeckoTerminal) Name() string { return "geckoterminal" }

func (g *GeckoTerminal) QuotaLimited() bool { return false }

func (g *GeckoTerminal) Capabilities() []models.Capability {
	return []models.Capability{models.CapPairData, models.CapVolumeStats}
}

// geckoPoolsResponse is the raw wire shape for the token-pools endpoint.
type geckoPoolsResponse struct {
	Data []struct {
		Attributes struct {
			Address        string            `json:"address"`
			BaseTokenPrice string            `json:"base_token_price_usd"`
			ReserveUSD     string            `json:"reserve_in_usd"`
			PoolCreatedAt  string            `json:"pool_created_at"` // RFC3339
			VolumeUSD      map[string]string `json:"volume_usd"`
			PriceChangePct map[string]string `json:"price_change_percentage"`
			Transactions   map[string]struct {
				Buys  int `json:"buys"`
				Sells int `json:"sells"`
			} `json:"transactions"`
		} `json:"attributes"`
	} `json:"data"`
}

func (g *GeckoTerminal) Fetch(ctx context.Context, capability models.Capability, subjectID string) (*models.Payload, error) {
	if !supports(g.Capabilities(), capability) {
		return nil, fmt.Errorf("geckoterminal: unsupported capability %q", capability)
	}

	url := fmt.Sprintf("%s/api/v2/networks/%s/tokens/%s/pools", g.baseURL, g.network, subjectID)
	resp, err := g.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result geckoPoolsResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Data) == 0 {
		return nil, ErrNotFound
	}

	attrs := result.Data[0].Attributes
	pair := &models.PairData{
		PairAddress:  attrs.Address,
		PriceUSD:     parseFloat(attrs.BaseTokenPrice),
		LiquidityUSD: parseFloat(attrs.ReserveUSD),
		Volume: models.VolumeWindows{
			M5:  parseFloat(attrs.VolumeUSD["m5"]),
			H1:  parseFloat(attrs.VolumeUSD["h1"]),
			H6:  parseFloat(attrs.VolumeUSD["h6"]),
			H24: parseFloat(attrs.VolumeUSD["h24"]),
		},
		PriceChange: models.ChangeWindows{
			H1:  parseFloat(attrs.PriceChangePct["h1"]),
			H6:  parseFloat(attrs.PriceChangePct["h6"]),
			H24: parseFloat(attrs.PriceChangePct["h24"]),
		},
	}
	if tx, ok := attrs.Transactions["h24"]; ok {
		pair.Txns.Buys24h = tx.Buys
		pair.Txns.Sells24h = tx.Sells
	}
	if tx, ok := attrs.Transactions["h1"]; ok {
		pair.Txns.Buys1h = tx.Buys
		pair.Txns.Sells1h = tx.Sells
	}
	if attrs.PoolCreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, attrs.PoolCreatedAt); err == nil {
			pair.PairCreatedAt = ts
		}
	}

	return &models.Payload{Pair: pair}, nil
}
