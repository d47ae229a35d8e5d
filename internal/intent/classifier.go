package intent

import (
	"regexp"
	"strings"

	"github.com/songzhibin97/tokenlens/internal/models"
)

// Address extraction patterns. The EVM shape is tried first; the base58
// shape is the permissive fallback. First match wins.
var (
	evmAddressPattern    = regexp.MustCompile(`0x[a-fA-F0-9]{40}`)
	base58AddressPattern = regexp.MustCompile(`[1-9A-HJ-NP-Za-km-z]{32,44}`)
)

// Classifier maps raw user text to one analysis intent plus extracted
// parameters. It is data-driven: the keyword and boost tables in keywords.go
// are the whole policy, the control flow here never changes per intent.
type Classifier struct {
	keywords map[models.AnalysisIntent][]string
	boosts   []comboBoost
	order    []models.AnalysisIntent
}

// NewClassifier builds a classifier over the default keyword tables.
func NewClassifier() *Classifier {
	return &Classifier{
		keywords: intentKeywords,
		boosts:   comboBoosts,
		order:    models.AllIntents,
	}
}

// ExtractAddress returns the first address-shaped substring in text, trying
// the EVM pattern before the permissive base58 pattern. Empty string when
// neither matches.
func ExtractAddress(text string) string {
	if m := evmAddressPattern.FindString(text); m != "" {
		return m
	}
	return base58AddressPattern.FindString(text)
}

// Classify never fails: on total ambiguity it defaults to token_analysis
// with zero confidence.
func (c *Classifier) Classify(text string) models.ClassificationResult {
	lower := strings.ToLower(text)

	result := models.ClassificationResult{
		Intent:     models.IntentTokenAnalysis,
		Parameters: make(map[string]string),
	}

	if addr := ExtractAddress(text); addr != "" {
		result.Parameters["tokenAddress"] = addr
		result.Confidence = 1
	}

	scores := make(map[models.AnalysisIntent]float64, len(c.order))
	for _, it := range c.order {
		for _, kw := range c.keywords[it] {
			if strings.Contains(lower, kw) {
				scores[it]++
			}
		}
	}

	for _, b := range c.boosts {
		hit := true
		for _, group := range b.groups {
			groupHit := false
			for _, term := range group {
				if strings.Contains(lower, term) {
					groupHit = true
					break
				}
			}
			if !groupHit {
				hit = false
				break
			}
		}
		if hit {
			scores[b.intent] += b.boost
		}
	}

	// Strictly-greater comparison in table order: ties keep the
	// first-encountered intent. This is the only disambiguation rule.
	var best models.AnalysisIntent
	bestScore := 0.0
	for _, it := range c.order {
		if scores[it] > bestScore {
			best = it
			bestScore = scores[it]
		}
	}

	if bestScore > 0 {
		result.Intent = best
		result.Confidence += bestScore
	}
	// An extracted address with no keyword signal still means the user wants
	// the token looked at.

	result.SuggestedTools = append([]string(nil), suggestedTools[result.Intent]...)
	return result
}
