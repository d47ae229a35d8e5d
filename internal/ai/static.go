package ai

import (
	"context"
	"strings"
)

// StaticExplainer answers from a fixed glossary so the educational intent
// works without an API key. Used as the fallback behind the OpenAI
// implementation.
type StaticExplainer struct{}

func NewStaticExplainer() *StaticExplainer { return &StaticExplainer{} }

var glossary = []struct {
	terms  []string
	answer string
}{
	{
		terms: []string{"rug", "rug pull"},
		answer: "A rug pull is when a token's insiders drain the liquidity pool or dump a " +
			"controlling supply, leaving holders unable to exit at any reasonable price. " +
			"Warning signs: very young pairs, shallow liquidity, and heavy insider holdings.",
	},
	{
		terms: []string{"honeypot"},
		answer: "A honeypot is a token you can buy but not sell, enforced by contract-level " +
			"restrictions such as sell blocks, transfer pauses, or confiscatory sell taxes. " +
			"A buy-heavy pair with zero recorded sells is the classic on-chain symptom.",
	},
	{
		terms: []string{"lp lock", "liquidity lock", "lock"},
		answer: "An LP lock is a claim that pool liquidity cannot be withdrawn for some period. " +
			"Without a verifiable attestation it can only be estimated from pool size, age, " +
			"and trading behavior, so treat any lock claim as unverified by default.",
	},
	{
		terms: []string{"whale"},
		answer: "A whale is an address holding far more than the average holder (here, at " +
			"least ten times the mean balance). A high whale ratio means a few wallets can " +
			"move the price at will.",
	},
	{
		terms: []string{"liquidity"},
		answer: "Liquidity is the depth of the trading pool. Low liquidity means even small " +
			"sells move the price sharply and large holders cannot exit without collapsing it.",
	},
}

// Explain implements the Explainer interface.
func (s *StaticExplainer) Explain(_ context.Context, question string) (string, error) {
	lower := strings.ToLower(question)
	for _, entry := range glossary {
		for _, term := range entry.terms {
			if strings.Contains(lower, term) {
				return entry.answer, nil
			}
		}
	}
	return "I can explain rug pulls, honeypots, LP locks, whales, and liquidity risk. " +
		"Ask about one of those, or paste a token address for a full risk assessment.", nil
}
