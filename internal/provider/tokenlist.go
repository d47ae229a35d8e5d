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

// TokenList resolves metadata against a curated token-list registry.
// Presence on the list doubles as the verified flag.
type TokenList struct {
	listURL    string
	httpClient *resty.Client
}

func NewTokenList(listURL string) *TokenList {
	if listURL == "" {
		listURL = "https://tokens.coingecko.com/uniswap/all.json"
	}
	return &TokenList{
		listURL:    listURL,
		httpClient: request.Request,
	}
}

func (t *TokenList) Name() string { return "tokenlist" }

func (t *TokenList) QuotaLimited() bool { return false }

func (t *TokenList) Capabilities() []models.Capability {
	return []models.Capability{models.CapTokenMetadata}
}

// tokenListFile is the standard token-list wire shape.
type tokenListFile struct {
	Tokens []struct {
		Address  string `json:"address"`
		Name     string `json:"name"`
		Symbol   string `json:"symbol"`
		Decimals int    `json:"decimals"`
	} `json:"tokens"`
}

func (t *TokenList) Fetch(ctx context.Context, capability models.Capability, subjectID string) (*models.Payload, error) {
	if capability != models.CapTokenMetadata {
		return nil, fmt.Errorf("tokenlist: unsupported capability %q", capability)
	}

	resp, err := t.httpClient.R().SetContext(ctx).Get(t.listURL)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var list tokenListFile
	if err := json.Unmarshal(resp.Body(), &list); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	for _, tok := range list.Tokens {
		if strings.EqualFold(tok.Address, subjectID) {
			return &models.Payload{Metadata: &models.TokenMetadata{
				Address:  tok.Address,
				Name:     tok.Name,
				Symbol:   tok.Symbol,
				Decimals: tok.Decimals,
				Verified: true,
			}}, nil
		}
	}
	return nil, ErrNotFound
}
