//Package ruleset loads the Sichuan ruleset JSON, the single source of truth
//for hands, multiplier factors and fixed-point events. The document is loaded
//once at startup, indexed by id and never mutated afterwards, so it is safe
//to share across request handlers.
package ruleset

import (
	"encoding/json"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/readysethu/huserver/pkg/errutil"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Text is a bilingual field, decoded from either a plain string or an
// object like {"zh": ..., "en": ...}.
type Text struct {
	ZH string
	EN string
}

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := codec.Unmarshal(data, &s); err == nil {
		t.ZH = s
		t.EN = s
		return nil
	}
	var obj struct {
		ZH string `json:"zh"`
		EN string `json:"en"`
	}
	if err := codec.Unmarshal(data, &obj); err != nil {
		return err
	}
	t.ZH = obj.ZH
	t.EN = obj.EN
	return nil
}

// Zh falls back to the english text when no chinese text is present.
func (t Text) Zh() string {
	if t.ZH != "" {
		return t.ZH
	}
	return t.EN
}

// En falls back to the chinese text when no english text is present.
func (t Text) En() string {
	if t.EN != "" {
		return t.EN
	}
	return t.ZH
}

type Scoring struct {
	BaseMultiplier int `json:"base_multiplier"`
}

// Hand is a named winning pattern carrying a base point multiplier.
type Hand struct {
	ID                 string  `json:"id"`
	Name               Text    `json:"name"`
	DescriptionOneLine Text    `json:"description_one_line"`
	Scoring            Scoring `json:"scoring"`
}

const (
	FactorTypeBoolean   = "boolean"
	FactorTypeCountable = "countable"

	ApplyModeRepeat = "repeat"
)

type Apply struct {
	Mode           string `json:"mode"`
	Multiplier     int    `json:"multiplier"`
	MultiplierEach int    `json:"multiplier_each"`
}

// Factor is a stacking modifier on top of a hand's base multiplier, either
// boolean (applied once) or countable (multiplier_each ^ count).
type Factor struct {
	ID          string `json:"id"`
	Name        Text   `json:"name"`
	Description Text   `json:"description"`
	Type        string `json:"type"`
	Apply       Apply  `json:"apply"`
}

// Event is a fixed-point transfer definition, e.g. kong declarations.
type Event struct {
	ID             string `json:"id"`
	AmountPerPayer int    `json:"amount_per_payer"`
}

type Multipliers struct {
	Factors []Factor `json:"factors"`
}

type Ruleset struct {
	Hands       []Hand                 `json:"hands"`
	Multipliers Multipliers            `json:"multipliers"`
	Events      []Event                `json:"events"`
	Settlement  map[string]interface{} `json:"settlement"`

	raw         []byte
	handsByID   map[string]*Hand
	factorsByID map[string]*Factor
	eventsByID  map[string]*Event
}

// Load reads and validates the ruleset document. A missing file, malformed
// JSON or a missing required section fails here, at startup, never at first
// use.
func Load(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errutil.ErrRulesetNotFound, "path=%s", path)
		}
		return nil, errors.Wrapf(err, "read ruleset %s", path)
	}

	rs := &Ruleset{}
	if err := codec.Unmarshal(data, rs); err != nil {
		return nil, errors.Wrap(errutil.ErrMalformedRuleset, err.Error())
	}

	if rs.Hands == nil {
		return nil, errors.Wrap(errutil.ErrIncompleteRuleset, "hands[]")
	}
	if rs.Multipliers.Factors == nil {
		return nil, errors.Wrap(errutil.ErrIncompleteRuleset, "multipliers.factors[]")
	}
	if rs.Settlement == nil {
		return nil, errors.Wrap(errutil.ErrIncompleteRuleset, "settlement{}")
	}

	rs.raw = data
	rs.index()
	return rs, nil
}

// New builds an in-memory ruleset. Handy for fixtures; the server always
// goes through Load.
func New(hands []Hand, factors []Factor, events []Event) *Ruleset {
	rs := &Ruleset{
		Hands:       hands,
		Multipliers: Multipliers{Factors: factors},
		Events:      events,
		Settlement:  map[string]interface{}{},
	}
	rs.index()
	return rs
}

func (rs *Ruleset) index() {
	rs.handsByID = make(map[string]*Hand, len(rs.Hands))
	for i := range rs.Hands {
		if id := rs.Hands[i].ID; id != "" {
			rs.handsByID[id] = &rs.Hands[i]
		}
	}
	rs.factorsByID = make(map[string]*Factor, len(rs.Multipliers.Factors))
	for i := range rs.Multipliers.Factors {
		if id := rs.Multipliers.Factors[i].ID; id != "" {
			rs.factorsByID[id] = &rs.Multipliers.Factors[i]
		}
	}
	rs.eventsByID = make(map[string]*Event, len(rs.Events))
	for i := range rs.Events {
		if id := rs.Events[i].ID; id != "" {
			rs.eventsByID[id] = &rs.Events[i]
		}
	}
}

func (rs *Ruleset) Hand(id string) (*Hand, bool) {
	h, ok := rs.handsByID[id]
	return h, ok
}

func (rs *Ruleset) Factor(id string) (*Factor, bool) {
	f, ok := rs.factorsByID[id]
	return f, ok
}

// EventAmount returns the configured amount_per_payer for an event id, or
// the fallback when the event is absent or configured with zero.
func (rs *Ruleset) EventAmount(id string, fallback int) int {
	if ev, ok := rs.eventsByID[id]; ok && ev.AmountPerPayer != 0 {
		return ev.AmountPerPayer
	}
	return fallback
}

// Raw exposes the original document for the passthrough endpoint.
func (rs *Ruleset) Raw() json.RawMessage {
	return json.RawMessage(rs.raw)
}
