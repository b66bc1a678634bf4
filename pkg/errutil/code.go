package errutil

const (
	codeBase = 1000
)

const (
	Unknown = codeBase + iota
	rulesetNotFound
	malformedRuleset
	incompleteRuleset
	notWin
	handRequired
	unknownHand
	invalidBaseMultiplier
	unknownFactor
	invalidFactorType
	invalidFactorMode
	invalidFactorCount
	invalidMultiplier
	invalidParameter
	serverInternal
)

var errs = map[error]int{
	ErrRulesetNotFound:       rulesetNotFound,
	ErrMalformedRuleset:      malformedRuleset,
	ErrIncompleteRuleset:     incompleteRuleset,
	ErrNotWin:                notWin,
	ErrHandRequired:          handRequired,
	ErrUnknownHand:           unknownHand,
	ErrInvalidBaseMultiplier: invalidBaseMultiplier,
	ErrUnknownFactor:         unknownFactor,
	ErrInvalidFactorType:     invalidFactorType,
	ErrInvalidFactorMode:     invalidFactorMode,
	ErrInvalidFactorCount:    invalidFactorCount,
	ErrInvalidMultiplier:     invalidMultiplier,
	ErrInvalidParameter:      invalidParameter,
	ErrServerInternal:        serverInternal,
}
