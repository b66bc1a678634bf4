package errutil

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrRulesetNotFound       = errors.New("ruleset json not found")
	ErrMalformedRuleset      = errors.New("failed to parse ruleset json")
	ErrIncompleteRuleset     = errors.New("ruleset json misses required sections")
	ErrNotWin                = errors.New("settlement requires a win")
	ErrHandRequired          = errors.New("hand_id is required for a win")
	ErrUnknownHand           = errors.New("unknown hand_id")
	ErrInvalidBaseMultiplier = errors.New("invalid base_multiplier")
	ErrUnknownFactor         = errors.New("unknown factor id")
	ErrInvalidFactorType     = errors.New("unsupported factor type")
	ErrInvalidFactorMode     = errors.New("countable factor must use apply.mode=repeat")
	ErrInvalidFactorCount    = errors.New("invalid count for countable factor")
	ErrInvalidMultiplier     = errors.New("invalid factor multiplier")
	ErrInvalidParameter      = errors.New("invalid parameter")
	ErrServerInternal        = errors.New("server internal error")
)

//Code code for the error. Wrapped errors resolve to their cause's code.
func Code(err error) int {
	if c, ok := errs[pkgerrors.Cause(err)]; ok {
		return c
	}
	return Unknown
}
