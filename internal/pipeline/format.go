package pipeline

import (
	"fmt"
	"strings"

	"github.com/songzhibin97/tokenlens/internal/models"
)

// formatAssessment renders the structured assessment into display text.
// Purely presentational: every value shown exists in the Data field too.
func formatAssessment(a *models.CompositeRiskAssessment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Risk assessment for %s\n", a.TokenAddress)
	fmt.Fprintf(&b, "Overall score: %.0f/100 (%s)", a.OverallScore, a.RiskLevel)
	if a.Sellability != "" {
		fmt.Fprintf(&b, " (sellability: %s)", a.Sellability)
	}
	fmt.Fprintf(&b, "\nConfidence: %.0f%%\n", a.Confidence)

	if len(a.Factors) > 0 {
		b.WriteString("\nFindings:\n")
		for _, f := range a.Factors {
			fmt.Fprintf(&b, "  [%s] %s (%.0f)\n", f.Category, f.Description, f.Score)
		}
	}

	if len(a.Recommendations) > 0 {
		b.WriteString("\nRecommendations:\n")
		for _, r := range a.Recommendations {
			fmt.Fprintf(&b, "  - %s\n", r)
		}
	}

	fmt.Fprintf(&b, "\nData source: %s", a.Source)
	if a.FallbackUsed {
		b.WriteString(" (fallback tier was used; primary source was unavailable)")
	}
	b.WriteString("\n")

	return b.String()
}

// formatMetadata renders the token metadata lookup.
func formatMetadata(meta *models.TokenMetadata, primary models.ProviderResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Token metadata for %s\n", meta.Address)
	fmt.Fprintf(&b, "  Name: %s\n", orDash(meta.Name))
	fmt.Fprintf(&b, "  Symbol: %s\n", orDash(meta.Symbol))
	fmt.Fprintf(&b, "  Decimals: %d\n", meta.Decimals)
	if meta.Verified {
		b.WriteString("  Listed on a curated token registry\n")
	} else {
		b.WriteString("  Not found on curated token registries\n")
	}

	fmt.Fprintf(&b, "\nData source: %s", primary.Source)
	if primary.FallbackUsed {
		b.WriteString(" (fallback tier was used)")
	}
	b.WriteString("\n")

	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
