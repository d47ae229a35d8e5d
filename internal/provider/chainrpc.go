package provider

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/songzhibin97/tokenlens/internal/models"
	"github.com/songzhibin97/tokenlens/internal/utils/request"
)

// ERC-20 read selectors.
const (
	selName     = "0x06fdde03"
	selSymbol   = "0x95d89b41"
	selDecimals = "0x313ce567"
)

// ChainRPC reads token metadata straight from the chain via JSON-RPC eth_call
// and holder distributions from an explorer-compatible API. Both endpoints
// are free public infrastructure.
type ChainRPC struct {
	rpcURL      string
	explorerURL string
	httpClient  *resty.Client
}

func NewChainRPC(rpcURL, explorerURL string) *ChainRPC {
	if rpcURL == "" {
		rpcURL = "https://eth.llamarpc.com"
	}
	if explorerURL == "" {
		explorerURL = "https://api.etherscan.io/api"
	}
	return &ChainRPC{
		rpcURL:      rpcURL,
		explorerURL: explorerURL,
		httpClient:  request.Request,
	}
}

func (c *ChainRPC) Name() string { return "chainrpc" }

func (c *ChainRPC) QuotaLimited() bool { return false }

func (c *ChainRPC) Capabilities() []models.Capability {
	return []models.Capability{models.CapTokenMetadata, models.CapHolderData}
}

func (c *ChainRPC) Fetch(ctx context.Context, capability models.Capability, subjectID string) (*models.Payload, error) {
	switch capability {
	case models.CapTokenMetadata:
		return c.fetchMetadata(ctx, subjectID)
	case models.CapHolderData:
		return c.fetchHolders(ctx, subjectID)
	default:
		return nil, fmt.Errorf("chainrpc: unsupported capability %q", capability)
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

type rpcResponse struct {
	Result string `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *ChainRPC) ethCall(ctx context.Context, to, data string) (string, error) {
	body := rpcRequest{
		JSONRPC: "2.0",
		Method:  "eth_call",
		Params:  []interface{}{map[string]string{"to": to, "data": data}, "latest"},
		ID:      1,
	}

	resp, err := c.httpClient.R().SetContext(ctx).SetBody(body).Post(c.rpcURL)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result rpcResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("rpc error: %s", result.Error.Message)
	}
	return result.Result, nil
}

func (c *ChainRPC) fetchMetadata(ctx context.Context, address string) (*models.Payload, error) {
	nameHex, err := c.ethCall(ctx, address, selName)
	if err != nil {
		return nil, err
	}
	symbolHex, err := c.ethCall(ctx, address, selSymbol)
	if err != nil {
		return nil, err
	}
	decimalsHex, err := c.ethCall(ctx, address, selDecimals)
	if err != nil {
		return nil, err
	}

	meta := &models.TokenMetadata{
		Address:  address,
		Name:     decodeABIString(nameHex),
		Symbol:   decodeABIString(symbolHex),
		Decimals: int(decodeABIUint(decimalsHex)),
	}
	if meta.Name == "" && meta.Symbol == "" {
		return nil, ErrNotFound
	}
	return &models.Payload{Metadata: meta}, nil
}

// explorerHolderResponse is the etherscan-compatible holder list shape.
type explorerHolderResponse struct {
	Status string `json:"status"`
	Result []struct {
		Address  string `json:"TokenHolderAddress"`
		Quantity string `json:"TokenHolderQuantity"`
	} `json:"result"`
}

func (c *ChainRPC) fetchHolders(ctx context.Context, address string) (*models.Payload, error) {
	resp, err := c.httpClient.R().SetContext(ctx).
		SetQueryParams(map[string]string{
			"module":          "token",
			"action":          "tokenholderlist",
			"contractaddress": address,
			"page":            "1",
			"offset":          "100",
		}).
		Get(c.explorerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result explorerHolderResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Status != "1" || len(result.Result) == 0 {
		return nil, ErrNotFound
	}

	list := &models.HolderList{TotalHolders: len(result.Result)}
	for _, h := range result.Result {
		bal, err := decimal.NewFromString(h.Quantity)
		if err != nil {
			continue
		}
		list.Holders = append(list.Holders, models.Holder{Address: h.Address, Balance: bal})
	}
	if len(list.Holders) == 0 {
		return nil, ErrNotFound
	}
	return &models.Payload{Holders: list}, nil
}

// decodeABIString unpacks a solidity string return value: 32-byte offset,
// 32-byte length, then the bytes.
func decodeABIString(result string) string {
	raw := strings.TrimPrefix(result, "0x")
	b, err := hex.DecodeString(raw)
	if err != nil || len(b) < 64 {
		return ""
	}
	length := int(bytesToUint(b[32:64]))
	if length <= 0 || 64+length > len(b) {
		return ""
	}
	return string(b[64 : 64+length])
}

// decodeABIUint unpacks a single uint return value.
func decodeABIUint(result string) uint64 {
	raw := strings.TrimPrefix(result, "0x")
	b, err := hex.DecodeString(raw)
	if err != nil || len(b) == 0 {
		return 0
	}
	return bytesToUint(b)
}

func bytesToUint(b []byte) uint64 {
	var v uint64
	// Only the low 8 bytes matter for the values read here.
	start := 0
	if len(b) > 8 {
		start = len(b) - 8
	}
	for _, c := range b[start:] {
		v = v<<8 | uint64(c)
	}
	return v
}
