package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/songzhibin97/tokenlens/internal/models"
	"github.com/songzhibin97/tokenlens/internal/utils/request"
)

// GoPlus serves contract-level security fields (sell restrictions, blacklist
// presence, creator holdings) from the free token-security API. These fields
// back the honeypot heuristics; they are static analysis results, not a
// transaction simulation.
type GoPlus struct {
	baseURL    string
	chainID    string
	httpClient *resty.Client
}

func NewGoPlus(chainID string) *GoPlus {
	if chainID == "" {
		chainID = "1"
	}
	return &GoPlus{
		baseURL:    "https://api.gopluslabs.io",
		chainID:    chainID,
		httpClient: request.Request,
	}
}

func (g *GoPlus) Name() string { return "goplus" }

func (g *GoPlus) QuotaLimited() bool { return false }

func (g *GoPlus) Capabilities() []models.Capability {
	return []models.Capability{models.CapTokenMetadata}
}

// goPlusResponse is the raw token_security wire shape. Numeric flags arrive
// as "0"/"1" strings.
type goPlusResponse struct {
	Result map[string]struct {
		TokenName        string `json:"token_name"`
		TokenSymbol      string `json:"token_symbol"`
		IsOpenSource     string `json:"is_open_source"`
		CannotBuy        string `json:"cannot_buy"`
		CannotSellAll    string `json:"cannot_sell_all"`
		TransferPausable string `json:"transfer_pausable"`
		IsBlacklisted    string `json:"is_blacklisted"`
		IsHoneypot       string `json:"is_honeypot"`
		CreatorPercent   string `json:"creator_percent"`
		CreatorAddress   string `json:"creator_address"`
		SellTax          string `json:"sell_tax"`
	} `json:"result"`
}

func (g *GoPlus) Fetch(ctx context.Context, capability models.Capability, subjectID string) (*models.Payload, error) {
	if capability != models.CapTokenMetadata {
		return nil, fmt.Errorf("goplus: unsupported capability %q", capability)
	}

	url := fmt.Sprintf("%s/api/v1/token_security/%s", g.baseURL, g.chainID)
	resp, err := g.httpClient.R().SetContext(ctx).
		SetQueryParam("contract_addresses", subjectID).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result goPlusResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	for addr, raw := range result.Result {
		if !strings.EqualFold(addr, subjectID) {
			continue
		}
		checks := &models.ContractChecks{
			CanBuy:          raw.CannotBuy != "1",
			CanSell:         raw.CannotSellAll != "1" && raw.IsHoneypot != "1",
			SellRestricted:  raw.CannotSellAll == "1" || parseFloat(raw.SellTax) >= 0.5,
			TransferLimited: raw.TransferPausable == "1",
			HasBlacklist:    raw.IsBlacklisted == "1",
			ChecksAvailable: true,
			CreatorHoldPct:  parseFloat(raw.CreatorPercent) * 100,
		}
		meta := &models.TokenMetadata{
			Address:  subjectID,
			Name:     raw.TokenName,
			Symbol:   raw.TokenSymbol,
			Verified: raw.IsOpenSource == "1",
		}
		return &models.Payload{Metadata: meta, Checks: checks}, nil
	}
	return nil, ErrNotFound
}
