package provider

import (
	"context"
	"errors"

	"github.com/songzhibin97/tokenlens/internal/models"
)

// ErrNotFound means the provider answered but has no data for the subject.
// The router treats it like any other adapter failure and falls through.
var ErrNotFound = errors.New("provider: subject not found")

// Adapter is the uniform contract every data source implements. Fetch
// normalizes the provider's own wire shape into the canonical payload before
// returning; calculators never see raw provider schemas.
type Adapter interface {
	// Name is the stable source identifier used in results and quota counters.
	Name() string

	// Capabilities lists the request kinds this adapter can serve.
	Capabilities() []models.Capability

	// QuotaLimited reports whether calls count against a paid-tier daily quota.
	QuotaLimited() bool

	// Fetch resolves one capability for one subject. A nil or empty payload
	// without an error is treated as a failure by the router.
	Fetch(ctx context.Context, capability models.Capability, subjectID string) (*models.Payload, error)
}

// supports is a small helper shared by adapters.
func supports(caps []models.Capability, c models.Capability) bool {
	for _, v := range caps {
		if v == c {
			return true
		}
	}
	return false
}
