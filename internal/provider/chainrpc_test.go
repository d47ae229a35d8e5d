package provider

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/tokenlens/internal/models"
)

// encodeABIString builds the solidity string return encoding: offset, length,
// then the bytes right-padded to a 32-byte word.
func encodeABIString(s string) string {
	padded := []byte(s)
	for len(padded)%32 != 0 || len(padded) == 0 {
		padded = append(padded, 0)
	}
	return fmt.Sprintf("0x%064x%064x%s", 32, len(s), hex.EncodeToString(padded))
}

func TestDecodeABIString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"well-formed", encodeABIString("Test Token"), "Test Token"},
		{"single word value", encodeABIString("TST"), "TST"},
		{"empty result", "0x", ""},
		{"not hex", "0xzzzz", ""},
		{"truncated payload", "0x" + strings.Repeat("00", 40), ""},
		{"length beyond buffer", fmt.Sprintf("0x%064x%064x", 32, 9999), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeABIString(tt.input))
		})
	}
}

func TestDecodeABIUint(t *testing.T) {
	assert.Equal(t, uint64(18), decodeABIUint(fmt.Sprintf("0x%064x", 18)))
	assert.Equal(t, uint64(255), decodeABIUint("0xff"))
	assert.Equal(t, uint64(0), decodeABIUint("0x"))
	assert.Equal(t, uint64(0), decodeABIUint("0xnothex"))
}

func TestChainRPC_FetchMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		call := req.Params[0].(map[string]interface{})

		var result string
		switch call["data"] {
		case selName:
			result = encodeABIString("Test Token")
		case selSymbol:
			result = encodeABIString("TST")
		case selDecimals:
			result = fmt.Sprintf("0x%064x", 18)
		}
		json.NewEncoder(w).Encode(map[string]string{"result": result})
	}))
	defer srv.Close()

	c := NewChainRPC(srv.URL, "")
	payload, err := c.Fetch(context.Background(), models.CapTokenMetadata, "0xtoken")

	require.NoError(t, err)
	require.NotNil(t, payload.Metadata)
	assert.Equal(t, "Test Token", payload.Metadata.Name)
	assert.Equal(t, "TST", payload.Metadata.Symbol)
	assert.Equal(t, 18, payload.Metadata.Decimals)
}

func TestChainRPC_FetchHolders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tokenholderlist", r.URL.Query().Get("action"))
		w.Write([]byte(`{
			"status": "1",
			"result": [
				{"TokenHolderAddress": "0xaaa", "TokenHolderQuantity": "1000000"},
				{"TokenHolderAddress": "0xbbb", "TokenHolderQuantity": "250000"},
				{"TokenHolderAddress": "0xccc", "TokenHolderQuantity": "not-a-number"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewChainRPC("", srv.URL)
	payload, err := c.Fetch(context.Background(), models.CapHolderData, "0xtoken")

	require.NoError(t, err)
	require.NotNil(t, payload.Holders)
	// The unparseable balance is dropped, not fatal.
	assert.Len(t, payload.Holders.Holders, 2)
	assert.Equal(t, "0xaaa", payload.Holders.Holders[0].Address)
}

func TestChainRPC_UnknownContract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"result": "0x"})
	}))
	defer srv.Close()

	c := NewChainRPC(srv.URL, "")
	_, err := c.Fetch(context.Background(), models.CapTokenMetadata, "0xnotacontract")

	assert.ErrorIs(t, err, ErrNotFound)
}
