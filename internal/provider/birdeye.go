package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/songzhibin97/tokenlens/internal/models"
	"github.com/songzhibin97/tokenlens/internal/utils/request"
)

// Birdeye is the quota-limited analytics vendor: holder lists and pool
// overviews behind an API key. The router only tries it when paid-tier
// sources are allowed and the daily quota has room.
type Birdeye struct {
	baseURL    string
	apiKey     string
	httpClient *resty.Client
}

func NewBirdeye(apiKey string) *Birdeye {
	return &Birdeye{
		baseURL:    "https://public-api.birdeye.so",
		apiKey:     apiKey,
		httpClient: request.Request,
	}
}

func (b *Birdeye) Name() string { return "birdeye" }

func (b *Birdeye) QuotaLimited() bool { return true }

func (b *Birdeye) Capabilities() []models.Capability {
	return []models.Capability{models.CapHolderData, models.CapPairData, models.CapVolumeStats}
}

type birdeyeHolderResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Items []struct {
			Owner    string `json:"owner"`
			UIAmount string `json:"ui_amount"`
		} `json:"items"`
		Total int `json:"total"`
	} `json:"data"`
}

type birdeyeOverviewResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Price           float64 `json:"price"`
		Liquidity       float64 `json:"liquidity"`
		V24hUSD         float64 `json:"v24hUSD"`
		V1hUSD          float64 `json:"v1hUSD"`
		PriceChange1h   float64 `json:"priceChange1hPercent"`
		PriceChange24h  float64 `json:"priceChange24hPercent"`
		Buy24h          int     `json:"buy24h"`
		Sell24h         int     `json:"sell24h"`
		CreatedUnixTime int64   `json:"createdUnixTime"`
	} `json:"data"`
}

func (b *Birdeye) Fetch(ctx context.Context, capability models.Capability, subjectID string) (*models.Payload, error) {
	switch capability {
	case models.CapHolderData:
		return b.fetchHolders(ctx, subjectID)
	case models.CapPairData, models.CapVolumeStats:
		return b.fetchOverview(ctx, subjectID)
	default:
		return nil, fmt.Errorf("birdeye: unsupported capability %q", capability)
	}
}

func (b *Birdeye) fetchHolders(ctx context.Context, address string) (*models.Payload, error) {
	resp, err := b.httpClient.R().SetContext(ctx).
		SetHeader("X-API-KEY", b.apiKey).
		SetQueryParams(map[string]string{"address": address, "limit": "100"}).
		Get(b.baseURL + "/defi/v3/token/holder")
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result birdeyeHolderResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !result.Success || len(result.Data.Items) == 0 {
		return nil, ErrNotFound
	}

	list := &models.HolderList{TotalHolders: result.Data.Total}
	for _, item := range result.Data.Items {
		bal, err := decimal.NewFromString(item.UIAmount)
		if err != nil {
			continue
		}
		list.Holders = append(list.Holders, models.Holder{Address: item.Owner, Balance: bal})
	}
	if list.TotalHolders == 0 {
		list.TotalHolders = len(list.Holders)
	}
	if len(list.Holders) == 0 {
		return nil, ErrNotFound
	}
	return &models.Payload{Holders: list}, nil
}

func (b *Birdeye) fetchOverview(ctx context.Context, address string) (*models.Payload, error) {
	resp, err := b.httpClient.R().SetContext(ctx).
		SetHeader("X-API-KEY", b.apiKey).
		SetQueryParam("address", address).
		Get(b.baseURL + "/defi/token_overview")
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result birdeyeOverviewResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !result.Success {
		return nil, ErrNotFound
	}

	d := result.Data
	pair := &models.PairData{
		PriceUSD:     d.Price,
		LiquidityUSD: d.Liquidity,
		Volume:       models.VolumeWindows{H1: d.V1hUSD, H24: d.V24hUSD},
		PriceChange:  models.ChangeWindows{H1: d.PriceChange1h, H24: d.PriceChange24h},
		Txns:         models.TxnCounts{Buys24h: d.Buy24h, Sells24h: d.Sell24h},
	}
	if d.CreatedUnixTime > 0 {
		pair.PairCreatedAt = time.Unix(d.CreatedUnixTime, 0)
	}
	return &models.Payload{Pair: pair}, nil
}
