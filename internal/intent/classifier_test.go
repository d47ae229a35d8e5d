package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/tokenlens/internal/models"
)

const (
	evmAddr    = "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984"
	base58Addr = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name          string
		text          string
		wantIntent    models.AnalysisIntent
		wantAddress   string
		minConfidence float64
	}{
		{
			name:          "rug question with address",
			text:          "Is this a rug? " + evmAddr,
			wantIntent:    models.IntentRugPullDetection,
			wantAddress:   evmAddr,
			minConfidence: 3, // keyword + combo boost + address bonus
		},
		{
			name:          "honeypot phrasing",
			text:          "I can't sell this token, is it a honeypot?",
			wantIntent:    models.IntentHoneypotDetection,
			minConfidence: 2,
		},
		{
			name:          "lp lock combo boost",
			text:          "is the liquidity locked on this one?",
			wantIntent:    models.IntentLPLockCheck,
			minConfidence: 3,
		},
		{
			name:          "holder distribution",
			text:          "show me the holder distribution",
			wantIntent:    models.IntentHolderAnalysis,
			minConfidence: 2,
		},
		{
			name:          "whale tracking beats holder on priority order tie",
			text:          "whale",
			wantIntent:    models.IntentHolderAnalysis, // holder_analysis precedes whale_tracking and gets the combo boost
			minConfidence: 1,
		},
		{
			name:          "educational question",
			text:          "what is a rug pull and how does it work?",
			wantIntent:    models.IntentRugPullDetection, // rug terms outweigh educational phrasing
			minConfidence: 2,
		},
		{
			name:          "pure educational",
			text:          "explain how liquidity pools work",
			wantIntent:    models.IntentLPLockCheck,
			minConfidence: 1,
		},
		{
			name:          "address only defaults to token analysis",
			text:          evmAddr,
			wantIntent:    models.IntentTokenAnalysis,
			wantAddress:   evmAddr,
			minConfidence: 1,
		},
		{
			name:          "base58 address extracted",
			text:          "check " + base58Addr,
			wantIntent:    models.IntentTokenAnalysis,
			wantAddress:   base58Addr,
			minConfidence: 2,
		},
		{
			name:          "total ambiguity defaults",
			text:          "hello there",
			wantIntent:    models.IntentTokenAnalysis,
			minConfidence: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.text)

			assert.Equal(t, tt.wantIntent, result.Intent)
			assert.GreaterOrEqual(t, result.Confidence, tt.minConfidence)
			if tt.wantAddress != "" {
				assert.Equal(t, tt.wantAddress, result.Parameters["tokenAddress"])
			}
		})
	}
}

func TestClassifier_IntentAlwaysRecognized(t *testing.T) {
	c := NewClassifier()

	known := make(map[models.AnalysisIntent]bool, len(models.AllIntents))
	for _, it := range models.AllIntents {
		known[it] = true
	}

	inputs := []string{
		"", "???", "lock rug whale pump launch trending risk explain",
		"совершенно несвязанный текст", evmAddr + " " + base58Addr,
	}
	for _, text := range inputs {
		result := c.Classify(text)
		assert.True(t, known[result.Intent], "unknown intent %q for %q", result.Intent, text)
		assert.GreaterOrEqual(t, result.Confidence, 0.0)
	}
}

func TestExtractAddress_PrimaryPatternWins(t *testing.T) {
	// The EVM pattern is tried before the permissive base58 pattern even
	// when a base58 candidate appears earlier in the text.
	text := base58Addr + " or " + evmAddr
	assert.Equal(t, evmAddr, ExtractAddress(text))

	// First EVM match wins when there are several.
	second := "0x0000000000000000000000000000000000000001"
	assert.Equal(t, evmAddr, ExtractAddress(evmAddr+" "+second))

	assert.Empty(t, ExtractAddress("no address here"))
}

func TestClassifier_SuggestedTools(t *testing.T) {
	c := NewClassifier()

	result := c.Classify("is this a honeypot? " + evmAddr)
	require.Equal(t, models.IntentHoneypotDetection, result.Intent)
	assert.Equal(t, []string{"goplus", "dexscreener"}, result.SuggestedTools)

	// Trending answers are guidance text, not source lookups, so the
	// classifier offers no tool hints for them.
	result = c.Classify("show me trending tokens")
	require.Equal(t, models.IntentTrendingTokens, result.Intent)
	assert.Empty(t, result.SuggestedTools)
}
