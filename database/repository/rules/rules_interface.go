package rulesRepo

import (
	"context"

	"slotwise/models"
)

// RuleRepository is the read accessor for scheduling rule layers.
//
// GetGlobalLayer must always return a complete layer: staff capacity and
// working slots present. The rule resolver relies on that and does no
// null-handling at the top level; an incomplete global layer is a system
// error, never a silent "day off".
//
// GetServiceLayer returns the service-level layer, which may be partial or
// entirely empty when the service carries no overrides.
type RuleRepository interface {
	GetGlobalLayer(ctx context.Context) (models.RuleLayer, error)
	GetServiceLayer(ctx context.Context, service, branchID string) (models.RuleLayer, error)
}
