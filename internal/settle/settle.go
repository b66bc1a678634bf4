//Package settle converts one round's declared events (wins, kongs, manual
//adjustments) into signed point deltas over a caller-supplied scoreboard.
package settle

import (
	"fmt"
	"strings"

	"github.com/readysethu/huserver/internal/ruleset"
	"github.com/readysethu/huserver/protocol"
)

// 天胡/地胡: 其余所有玩家都赔, 且不与自摸倍数叠加
var allPayHandIDs = map[string]bool{
	"hand.tianhu": true,
	"hand.dihu":   true,
}

const factorZimo = "factor.zimo"

const (
	defaultDianGang = 2
	defaultBuGang   = 1
	defaultAnGang   = 2
)

type Engine struct {
	rs     *ruleset.Ruleset
	strict bool
}

type Option func(*Engine)

// WithStrict makes the engine surface silently-dropped conditions (failed
// multiplier lookups, unresolvable payers) as warnings. Deltas are the same
// in both modes.
func WithStrict(strict bool) Option {
	return func(e *Engine) { e.strict = strict }
}

func New(rs *ruleset.Ruleset, opts ...Option) *Engine {
	e := &Engine{rs: rs}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Settle applies one round of per-player events to the scoreboard.
//
// Every known player gets zeroed win/kong/manual buckets before any round
// input is processed, so players without input end the round unchanged. A
// round input naming an unknown player is skipped. The incoming slices are
// never mutated; results come back in input player order.
func (e *Engine) Settle(players []protocol.Player, rounds []protocol.PlayerRoundInput, strict bool) ([]protocol.Player, []protocol.PlayerRoundScore, []string) {
	strict = strict || e.strict

	known := make(map[string]bool, len(players))
	winDeltas := make(map[string]int, len(players))
	kongDeltas := make(map[string]int, len(players))
	manualDeltas := make(map[string]int, len(players))
	applied := make(map[string][]string, len(players))
	for _, p := range players {
		known[p.Name] = true
		winDeltas[p.Name] = 0
		kongDeltas[p.Name] = 0
		manualDeltas[p.Name] = 0
		applied[p.Name] = []string{}
	}

	// Recorded winners are exempt from default bu_gang/an_gang payer sets.
	winners := make(map[string]bool)
	for _, ri := range rounds {
		if ri.HandTypeID != "" {
			winners[ri.Name] = true
		}
	}

	var warnings []string
	warnf := func(format string, args ...interface{}) {
		if strict {
			warnings = append(warnings, fmt.Sprintf(format, args...))
		}
	}

	for _, ri := range rounds {
		if !known[ri.Name] {
			warnf("round input for unknown player %q ignored", ri.Name)
			continue
		}
		actor := ri.Name

		isWin := (ri.WinType != "" && ri.WinType != protocol.WinTypeNone) || ri.HandTypeID != ""
		if isWin {
			e.settleWin(&ri, players, winDeltas, applied, known, warnf)
		}

		for _, ev := range ri.KongEvents {
			e.settleKong(actor, ev, players, winners, kongDeltas, applied, known, warnf)
		}

		if ri.ManualDelta != 0 {
			manualDeltas[actor] += ri.ManualDelta
			applied[actor] = append(applied[actor], fmt.Sprintf("manual_delta:%d", ri.ManualDelta))
		}
	}

	updated := make([]protocol.Player, len(players))
	scores := make([]protocol.PlayerRoundScore, len(players))
	for i, p := range players {
		delta := winDeltas[p.Name] + kongDeltas[p.Name] + manualDeltas[p.Name]
		updated[i] = protocol.Player{Name: p.Name, Score: p.Score + delta}
		scores[i] = protocol.PlayerRoundScore{
			Name:           p.Name,
			WinScore:       winDeltas[p.Name],
			KongScore:      kongDeltas[p.Name],
			ManualScore:    manualDeltas[p.Name],
			Delta:          delta,
			AppliedRuleIDs: applied[p.Name],
		}
	}
	return updated, scores, warnings
}

func (e *Engine) settleWin(ri *protocol.PlayerRoundInput, players []protocol.Player, winDeltas map[string]int, applied map[string][]string, known map[string]bool, warnf func(string, ...interface{})) {
	winner := ri.Name
	handID := ri.HandTypeID

	explicitMulti := ri.PayerNames
	payers := make([]string, 0, len(players))
	candidates := explicitMulti
	if len(candidates) == 0 && ri.PayerName != "" {
		candidates = []string{ri.PayerName}
	}
	for _, name := range candidates {
		if known[name] && name != winner {
			payers = append(payers, name)
		}
	}

	// 天胡/地胡 settle against every other player no matter what the caller
	// selected, and never compound with the self-draw bonus.
	if allPayHandIDs[handID] {
		payers = payers[:0]
		for _, p := range players {
			if p.Name != winner {
				payers = append(payers, p.Name)
			}
		}
	}

	factors := make(map[string]protocol.FactorValue, len(ri.FactorValues)+4)
	for id, v := range ri.FactorValues {
		factors[id] = v
	}
	for _, ids := range [][]string{ri.ExtraRuleIDs, ri.SpecialRuleIDs, ri.PenaltyRuleIDs} {
		for _, id := range ids {
			if _, ok := factors[id]; !ok {
				factors[id] = protocol.BoolValue(true)
			}
		}
	}

	// Selecting explicit multi-payer means self-draw, so flip the 自摸 factor
	// on for the caller unless it was set explicitly.
	if len(explicitMulti) > 0 && !allPayHandIDs[handID] {
		if _, ok := factors[factorZimo]; !ok {
			factors[factorZimo] = protocol.BoolValue(true)
		}
	}
	if allPayHandIDs[handID] {
		factors[factorZimo] = protocol.BoolValue(false)
	}

	breakdown, err := e.rs.ComputeTotalMultiplier(true, handID, factors)
	if err != nil {
		// Lenient by default: one malformed win must not abort the whole
		// round for everybody else.
		warnf("player %q: win not settled: %v", winner, err)
		return
	}

	amount := breakdown.TotalMultiplier
	appliedIDs := make([]string, 0, 1+len(breakdown.EnabledFactors))
	appliedIDs = append(appliedIDs, breakdown.HandID)
	for _, f := range breakdown.EnabledFactors {
		appliedIDs = append(appliedIDs, f.ID)
	}

	if len(payers) > 0 {
		winDeltas[winner] += amount * len(payers)
		applied[winner] = append(applied[winner], appliedIDs...)
		applied[winner] = append(applied[winner], "payers:"+strings.Join(payers, ","))
		for _, payer := range payers {
			winDeltas[payer] -= amount
			applied[payer] = append(applied[payer], "paid_for:"+winner)
			applied[payer] = append(applied[payer], appliedIDs...)
		}
		return
	}

	// No resolvable payer: credit the winner without a debit. Unbalanced,
	// kept for backward compatibility with existing scoreboards.
	winDeltas[winner] += amount
	applied[winner] = append(applied[winner], appliedIDs...)
	warnf("player %q: win credited without payers (unbalanced)", winner)
}

func (e *Engine) settleKong(actor string, ev protocol.KongEventInput, players []protocol.Player, winners map[string]bool, kongDeltas map[string]int, applied map[string][]string, known map[string]bool, warnf func(string, ...interface{})) {
	switch ev.Type {
	case protocol.KongDianGang:
		per := e.rs.EventAmount("event.dian_gang", defaultDianGang)
		payer := ev.PayerName
		if payer == "" || !known[payer] || payer == actor {
			warnf("player %q: dian_gang with invalid payer %q ignored", actor, payer)
			return
		}
		kongDeltas[actor] += per
		kongDeltas[payer] -= per
		applied[actor] = append(applied[actor], "event.dian_gang", "count:1", "payer:"+payer)
		applied[payer] = append(applied[payer], "event.dian_gang", "paid_for:"+actor, "count:1")

	case protocol.KongBuGang, protocol.KongAnGang:
		eventID, per := "event.bu_gang", e.rs.EventAmount("event.bu_gang", defaultBuGang)
		if ev.Type == protocol.KongAnGang {
			eventID, per = "event.an_gang", e.rs.EventAmount("event.an_gang", defaultAnGang)
		}

		payers := make([]string, 0, len(players))
		for _, name := range ev.PayerNames {
			if known[name] && name != actor {
				payers = append(payers, name)
			}
		}
		if len(payers) == 0 {
			// Default payer set: everyone who neither won this round nor
			// declared the kong.
			for _, p := range players {
				if !winners[p.Name] && p.Name != actor {
					payers = append(payers, p.Name)
				}
			}
		}
		if len(payers) == 0 {
			warnf("player %q: %s with no payers ignored", actor, eventID)
			return
		}

		kongDeltas[actor] += per * len(payers)
		applied[actor] = append(applied[actor], eventID, "count:1", "payers:"+strings.Join(payers, ","))
		for _, payer := range payers {
			kongDeltas[payer] -= per
			applied[payer] = append(applied[payer], eventID, "paid_for:"+actor, "count:1")
		}

	default:
		warnf("player %q: unknown kong event type %q ignored", actor, ev.Type)
	}
}
