package levy

import (
	"sort"

	"github.com/google/uuid"

	"github.com/marketpadi/backend/models"
)

// Resolver finds the single active configuration governing the rate for a
// market/occupancy (and optionally frequency) combination.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// ResolveActiveSetup returns the active setup for the market that applies to
// the given occupancy, optionally pinned to a frequency. A setup with no
// occupancy type is a wildcard matching every occupancy, but an
// exact-occupancy setup always beats a wildcard. Among equally specific
// candidates the most recently created wins; the write path keeps a single
// active row per combination, so the tie-break rarely fires. Returns
// (nil, nil) when nothing matches.
func (r *Resolver) ResolveActiveSetup(marketID uuid.UUID, occupancy models.OccupancyType, frequency *models.PaymentFrequency) (*models.LevySetup, error) {
	setups, err := r.store.ActiveSetups(marketID)
	if err != nil {
		return nil, err
	}

	var candidates []models.LevySetup
	for _, s := range setups {
		if !s.IsSetupRecord || !s.IsActive {
			continue
		}
		if !s.AppliesTo(occupancy) {
			continue
		}
		if frequency != nil && s.PaymentFrequency != *frequency {
			continue
		}
		candidates = append(candidates, s)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		// Exact occupancy before wildcard, then newest first.
		iExact := candidates[i].OccupancyType != nil
		jExact := candidates[j].OccupancyType != nil
		if iExact != jExact {
			return iExact
		}
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})
	return &candidates[0], nil
}
