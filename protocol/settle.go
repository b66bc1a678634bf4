package protocol

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FactorValue is a ruleset factor value supplied by the client, either a
// boolean switch or a repeat count. The wire form is a JSON bool or number.
type FactorValue struct {
	IsBool bool
	Bool   bool
	Count  int
}

func BoolValue(b bool) FactorValue {
	return FactorValue{IsBool: true, Bool: b}
}

func CountValue(n int) FactorValue {
	return FactorValue{Count: n}
}

// AsBool treats a count as enabled when non-zero.
func (v FactorValue) AsBool() bool {
	if v.IsBool {
		return v.Bool
	}
	return v.Count != 0
}

// AsCount maps true to 1 and false to 0.
func (v FactorValue) AsCount() int {
	if v.IsBool {
		if v.Bool {
			return 1
		}
		return 0
	}
	return v.Count
}

func (v *FactorValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		v.IsBool = true
		v.Bool = b
		v.Count = 0
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		v.IsBool = false
		v.Count = n
		return nil
	}
	return fmt.Errorf("factor value must be a bool or an integer: %s", data)
}

func (v FactorValue) MarshalJSON() ([]byte, error) {
	if v.IsBool {
		return json.Marshal(v.Bool)
	}
	return json.Marshal(v.Count)
}

type Player struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// KongEventInput is a single kong declaration, settled with fixed points
// independent from win multipliers.
// - dian_gang requires PayerName (the discarder).
// - bu_gang/an_gang take PayerNames, or default to all non-winners.
type KongEventInput struct {
	Type       KongEventType `json:"type"`
	PayerName  string        `json:"payer_name,omitempty"`
	PayerNames []string      `json:"payer_names,omitempty"`
}

// PlayerRoundInput describes what happened to one player in one round.
//
// HandTypeID is the single main hand pattern (平胡/大对子/清一色/七对...), empty
// when the player did not win. FactorValues carries ruleset factor values;
// the legacy rule id lists are still accepted and treated as boolean true.
type PlayerRoundInput struct {
	Name           string                 `json:"name"`
	WinType        WinType                `json:"win_type,omitempty"`
	PayerName      string                 `json:"payer_name,omitempty"`
	PayerNames     []string               `json:"payer_names,omitempty"`
	HandTypeID     string                 `json:"hand_type_id,omitempty"`
	FactorValues   map[string]FactorValue `json:"factor_values,omitempty"`
	KongEvents     []KongEventInput       `json:"kong_events,omitempty"`
	ManualDelta    int                    `json:"manual_delta,omitempty"`
	ExtraRuleIDs   []string               `json:"extra_rule_ids,omitempty"`
	SpecialRuleIDs []string               `json:"special_rule_ids,omitempty"`
	PenaltyRuleIDs []string               `json:"penalty_rule_ids,omitempty"`
}

// PlayerRoundScore is the per-player breakdown for one settled round.
type PlayerRoundScore struct {
	Name           string   `json:"name"`
	WinScore       int      `json:"win_score"`
	KongScore      int      `json:"kong_score"`
	ManualScore    int      `json:"manual_score"`
	Delta          int      `json:"delta"`
	AppliedRuleIDs []string `json:"applied_rule_ids"`
}

type ScoreRoundRequest struct {
	Players      []Player           `json:"players"`
	PlayerRounds []PlayerRoundInput `json:"player_rounds"`
	Strict       bool               `json:"strict,omitempty"`
}

type ScoreRoundResponse struct {
	RoundID      string             `json:"round_id"`
	Players      []Player           `json:"players"`
	PlayerScores []PlayerRoundScore `json:"player_scores"`
	Warnings     []string           `json:"warnings,omitempty"`
}
