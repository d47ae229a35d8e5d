package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalysisIntent is the discrete category a user request resolves to.
// Exactly one intent is assigned per request.
type AnalysisIntent string

const (
	IntentTokenAnalysis        AnalysisIntent = "token_analysis"
	IntentLPLockCheck          AnalysisIntent = "lp_lock_check"
	IntentHolderAnalysis       AnalysisIntent = "holder_analysis"
	IntentRugPullDetection     AnalysisIntent = "rug_pull_detection"
	IntentHoneypotDetection    AnalysisIntent = "honeypot_detection"
	IntentNewTokenDetection    AnalysisIntent = "new_token_detection"
	IntentVolumeSpikeDetection AnalysisIntent = "volume_spike_detection"
	IntentWhaleTracking        AnalysisIntent = "whale_tracking"
	IntentTrendingTokens       AnalysisIntent = "trending_tokens"
	IntentEducational          AnalysisIntent = "educational"
	IntentRiskScoring          AnalysisIntent = "risk_scoring"
	IntentTokenMetadata        AnalysisIntent = "token_metadata"
)

// AllIntents lists every recognized intent, in classifier priority order.
var AllIntents = []AnalysisIntent{
	IntentHoneypotDetection,
	IntentRugPullDetection,
	IntentLPLockCheck,
	IntentHolderAnalysis,
	IntentWhaleTracking,
	IntentVolumeSpikeDetection,
	IntentNewTokenDetection,
	IntentTrendingTokens,
	IntentTokenMetadata,
	IntentRiskScoring,
	IntentEducational,
	IntentTokenAnalysis,
}

// ClassificationResult is the outcome of intent classification.
// Created per request, never persisted.
type ClassificationResult struct {
	Intent         AnalysisIntent    `json:"intent"`
	Confidence     float64           `json:"confidence"`
	Parameters     map[string]string `json:"parameters"`
	SuggestedTools []string          `json:"suggested_tools"`
}

// Capability names the kind of data a provider can resolve.
type Capability string

const (
	CapTokenMetadata Capability = "token_metadata"
	CapPairData      Capability = "pair_data"
	CapHolderData    Capability = "holder_data"
	CapVolumeStats   Capability = "volume_stats"
)

// VolumeWindows carries traded volume (USD) per lookback window.
type VolumeWindows struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

// ChangeWindows carries price change percentages per lookback window.
type ChangeWindows struct {
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

// TxnCounts carries buy/sell transaction counts per lookback window.
type TxnCounts struct {
	Buys24h  int `json:"buys_24h"`
	Sells24h int `json:"sells_24h"`
	Buys1h   int `json:"buys_1h"`
	Sells1h  int `json:"sells_1h"`
}

// TokenMetadata is the canonical token description every metadata-capable
// provider normalizes into.
type TokenMetadata struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	Verified bool   `json:"verified"`
}

// PairData is the canonical liquidity-pool snapshot.
type PairData struct {
	PairAddress   string        `json:"pair_address"`
	PriceUSD      float64       `json:"price_usd"`
	LiquidityUSD  float64       `json:"liquidity_usd"`
	Volume        VolumeWindows `json:"volume"`
	PriceChange   ChangeWindows `json:"price_change"`
	Txns          TxnCounts     `json:"txns"`
	PairCreatedAt time.Time     `json:"pair_created_at"`
}

// AgeHours returns the pair age at the given instant, in hours.
// Unknown creation time reports zero age, which calculators treat as
// maximally new (fail-safe toward caution).
func (p *PairData) AgeHours(now time.Time) float64 {
	if p.PairCreatedAt.IsZero() {
		return 0
	}
	return now.Sub(p.PairCreatedAt).Hours()
}

// Holder is one address/balance pair from a holder list.
type Holder struct {
	Address string          `json:"address"`
	Balance decimal.Decimal `json:"balance"`
}

// HolderList is the canonical holder distribution snapshot.
type HolderList struct {
	Holders      []Holder `json:"holders"`
	TotalHolders int      `json:"total_holders"`
}

// ContractChecks carries contract-level restriction flags where a provider
// exposes them. These back the honeypot heuristics; absence of a flag is not
// proof of safety.
type ContractChecks struct {
	CanBuy          bool    `json:"can_buy"`
	CanSell         bool    `json:"can_sell"`
	SellRestricted  bool    `json:"sell_restricted"`
	TransferLimited bool    `json:"transfer_limited"`
	HasBlacklist    bool    `json:"has_blacklist"`
	ChecksAvailable bool    `json:"checks_available"`
	CreatorHoldPct  float64 `json:"creator_hold_pct"`
	CreatorSoldIn   bool    `json:"creator_sold_in"`
}

// Payload is the tagged union produced by provider normalization. Exactly one
// of the pointers is set for a successful fetch, matching the capability that
// was requested.
type Payload struct {
	Metadata *TokenMetadata  `json:"metadata,omitempty"`
	Pair     *PairData       `json:"pair,omitempty"`
	Holders  *HolderList     `json:"holders,omitempty"`
	Checks   *ContractChecks `json:"checks,omitempty"`
}

// Empty reports whether the payload carries no data at all. The router treats
// an empty payload as a failed attempt and falls through to the next source.
func (p *Payload) Empty() bool {
	if p == nil {
		return true
	}
	return p.Metadata == nil && p.Pair == nil && p.Holders == nil && p.Checks == nil
}

// ProviderResult is what the source resolution router hands to calculators.
type ProviderResult struct {
	Success      bool     `json:"success"`
	Data         *Payload `json:"data,omitempty"`
	Source       string   `json:"source"`
	FallbackUsed bool     `json:"fallback_used"`
	Err          string   `json:"error,omitempty"`
}

// RiskCategory groups risk factors for weighted aggregation.
type RiskCategory string

const (
	CategorySecurity   RiskCategory = "security"
	CategoryTokenomics RiskCategory = "tokenomics"
	CategoryMarket     RiskCategory = "market"
	CategoryCommunity  RiskCategory = "community"
	CategoryTechnical  RiskCategory = "technical"
)

// RiskFactor is a single scored finding from one calculator.
// Read-only once created.
type RiskFactor struct {
	Name        string       `json:"name"`
	Category    RiskCategory `json:"category"`
	Score       float64      `json:"score"`
	Description string       `json:"description"`
}

// RiskLevel is the banded tier derived from the overall score.
type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskExtreme RiskLevel = "EXTREME"
)

// SellabilityVerdict is the tier variant used by honeypot detection.
type SellabilityVerdict string

const (
	SellabilitySafe       SellabilityVerdict = "SAFE"
	SellabilitySuspicious SellabilityVerdict = "SUSPICIOUS"
	SellabilityHoneypot   SellabilityVerdict = "HONEYPOT"
)

// CompositeRiskAssessment is the terminal output of the pipeline. Immutable.
type CompositeRiskAssessment struct {
	TokenAddress    string             `json:"token_address"`
	Intent          AnalysisIntent     `json:"intent"`
	OverallScore    float64            `json:"overall_score"`
	RiskLevel       RiskLevel          `json:"risk_level"`
	Sellability     SellabilityVerdict `json:"sellability,omitempty"`
	Factors         []RiskFactor       `json:"factors"`
	Recommendations []string           `json:"recommendations"`
	Confidence      float64            `json:"confidence"`
	Source          string             `json:"source"`
	FallbackUsed    bool               `json:"fallback_used"`
	EvaluatedAt     time.Time          `json:"evaluated_at"`
}

// Clamp bounds a score to the [0,100] range every score in the system must
// stay inside.
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
