package data

import (
	"context"
	"time"

	"github.com/songzhibin97/tokenlens/internal/models"
)

// AssessmentStore persists finished assessments for an audit trail. The
// pipeline works without one; persistence is the caller's concern, never a
// correctness dependency.
type AssessmentStore interface {
	// SaveAssessment stores one finished composite assessment.
	SaveAssessment(ctx context.Context, a *models.CompositeRiskAssessment) error

	// RecentAssessments retrieves the latest assessments for a token.
	RecentAssessments(ctx context.Context, tokenAddress string, limit int) ([]models.CompositeRiskAssessment, error)

	// SaveUsageSnapshot stores the per-source call counters at a point in time.
	SaveUsageSnapshot(ctx context.Context, at time.Time, counts map[string]int) error
}
