package ruleset

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/readysethu/huserver/pkg/errutil"
	"github.com/readysethu/huserver/protocol"
)

// AppliedFactor records one factor that contributed to a win's multiplier.
type AppliedFactor struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	Value             int    `json:"value"`
	AppliedMultiplier int    `json:"applied_multiplier"`
	MultiplierEach    int    `json:"multiplier_each,omitempty"`
}

// Breakdown is the full multiplier derivation for a single win:
// total = base_multiplier * extras_total.
type Breakdown struct {
	HandID          string          `json:"hand_id"`
	BaseMultiplier  int             `json:"base_multiplier"`
	EnabledFactors  []AppliedFactor `json:"enabled_factors"`
	ExtrasTotal     int             `json:"extras_total"`
	TotalMultiplier int             `json:"total_multiplier"`
}

// ComputeTotalMultiplier derives the total win multiplier from the chosen
// hand and the supplied factor values.
//
// Pure over the immutable ruleset: no side effects, same inputs same output.
// Any unknown id or malformed value fails with an errutil sentinel rather
// than degrading silently; deciding what a failed win means is the caller's
// business.
func (rs *Ruleset) ComputeTotalMultiplier(isWin bool, handID string, factors map[string]protocol.FactorValue) (*Breakdown, error) {
	if !isWin {
		return nil, errutil.ErrNotWin
	}
	if handID == "" {
		return nil, errutil.ErrHandRequired
	}

	hand, ok := rs.Hand(handID)
	if !ok {
		return nil, errors.Wrapf(errutil.ErrUnknownHand, "hand_id=%s", handID)
	}
	base := hand.Scoring.BaseMultiplier
	if base <= 0 {
		return nil, errors.Wrapf(errutil.ErrInvalidBaseMultiplier, "hand_id=%s", handID)
	}

	// Factor ids sorted so the breakdown is deterministic; multiplication
	// order never changes the total.
	ids := make([]string, 0, len(factors))
	for id := range factors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var enabled []AppliedFactor
	extras := 1

	for _, id := range ids {
		factor, ok := rs.Factor(id)
		if !ok {
			return nil, errors.Wrapf(errutil.ErrUnknownFactor, "factor=%s", id)
		}
		value := factors[id]

		switch factor.Type {
		case FactorTypeBoolean:
			if !value.AsBool() {
				continue
			}
			m := factor.Apply.Multiplier
			if m == 0 {
				m = 1
			}
			if m < 1 {
				return nil, errors.Wrapf(errutil.ErrInvalidMultiplier, "factor=%s", id)
			}
			extras *= m
			enabled = append(enabled, AppliedFactor{
				ID:                id,
				Type:              FactorTypeBoolean,
				Value:             1,
				AppliedMultiplier: m,
			})

		case FactorTypeCountable:
			if factor.Apply.Mode != ApplyModeRepeat {
				return nil, errors.Wrapf(errutil.ErrInvalidFactorMode, "factor=%s", id)
			}
			count := value.AsCount()
			if count < 0 {
				return nil, errors.Wrapf(errutil.ErrInvalidFactorCount, "factor=%s count=%d", id, count)
			}
			each := factor.Apply.MultiplierEach
			if each == 0 {
				each = 1
			}
			if each < 1 {
				return nil, errors.Wrapf(errutil.ErrInvalidMultiplier, "factor=%s", id)
			}
			if count == 0 {
				continue
			}
			applied := intPow(each, count)
			extras *= applied
			enabled = append(enabled, AppliedFactor{
				ID:                id,
				Type:              FactorTypeCountable,
				Value:             count,
				AppliedMultiplier: applied,
				MultiplierEach:    each,
			})

		default:
			return nil, errors.Wrapf(errutil.ErrInvalidFactorType, "factor=%s type=%s", id, factor.Type)
		}
	}

	return &Breakdown{
		HandID:          handID,
		BaseMultiplier:  base,
		EnabledFactors:  enabled,
		ExtrasTotal:     extras,
		TotalMultiplier: base * extras,
	}, nil
}

func intPow(base, exp int) int {
	result := 1
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
