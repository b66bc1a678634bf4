package settle

import (
	"reflect"
	"testing"

	"github.com/readysethu/huserver/internal/ruleset"
	"github.com/readysethu/huserver/protocol"
)

func fixture() *ruleset.Ruleset {
	return ruleset.New(
		[]ruleset.Hand{
			{ID: "hand.pinghu", Scoring: ruleset.Scoring{BaseMultiplier: 1}},
			{ID: "hand.qingyise", Scoring: ruleset.Scoring{BaseMultiplier: 4}},
			{ID: "hand.tianhu", Scoring: ruleset.Scoring{BaseMultiplier: 32}},
		},
		[]ruleset.Factor{
			{ID: "factor.zimo", Type: ruleset.FactorTypeBoolean, Apply: ruleset.Apply{Multiplier: 2}},
			{ID: "factor.gen", Type: ruleset.FactorTypeCountable, Apply: ruleset.Apply{Mode: ruleset.ApplyModeRepeat, MultiplierEach: 2}},
		},
		[]ruleset.Event{
			{ID: "event.dian_gang", AmountPerPayer: 2},
			{ID: "event.bu_gang", AmountPerPayer: 1},
			{ID: "event.an_gang", AmountPerPayer: 2},
		},
	)
}

func roster() []protocol.Player {
	return []protocol.Player{
		{Name: "A", Score: 100},
		{Name: "B", Score: 100},
		{Name: "C", Score: 100},
		{Name: "D", Score: 100},
	}
}

func deltas(scores []protocol.PlayerRoundScore) []int {
	out := make([]int, len(scores))
	for i, s := range scores {
		out[i] = s.Delta
	}
	return out
}

func sum(ns []int) int {
	total := 0
	for _, n := range ns {
		total += n
	}
	return total
}

func TestSettleSinglePayer(t *testing.T) {
	engine := New(fixture())

	players, scores, warnings := engine.Settle(roster(), []protocol.PlayerRoundInput{
		{Name: "A", HandTypeID: "hand.qingyise", PayerName: "B"},
	}, false)

	if got, want := deltas(scores), []int{4, -4, 0, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("deltas got: %v want: %v", got, want)
	}
	if sum(deltas(scores)) != 0 {
		t.Fatal("pure transfer round must be zero sum")
	}
	if players[0].Score != 104 || players[1].Score != 96 {
		t.Fatalf("scores got: %+v", players)
	}
	if scores[0].WinScore != 4 || scores[0].KongScore != 0 || scores[0].ManualScore != 0 {
		t.Fatalf("buckets got: %+v", scores[0])
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	wantA := []string{"hand.qingyise", "payers:B"}
	if !reflect.DeepEqual(scores[0].AppliedRuleIDs, wantA) {
		t.Fatalf("winner audit got: %v want: %v", scores[0].AppliedRuleIDs, wantA)
	}
	wantB := []string{"paid_for:A", "hand.qingyise"}
	if !reflect.DeepEqual(scores[1].AppliedRuleIDs, wantB) {
		t.Fatalf("payer audit got: %v want: %v", scores[1].AppliedRuleIDs, wantB)
	}
}

func TestSettleSelfDrawImpliesZimo(t *testing.T) {
	engine := New(fixture())

	// explicit multi-payer means self-draw: base 1 doubles to 2, paid by
	// each of the three payers
	_, scores, _ := engine.Settle(roster(), []protocol.PlayerRoundInput{
		{Name: "A", HandTypeID: "hand.pinghu", PayerNames: []string{"B", "C", "D"}},
	}, false)

	if got, want := deltas(scores), []int{6, -2, -2, -2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("deltas got: %v want: %v", got, want)
	}

	found := false
	for _, id := range scores[0].AppliedRuleIDs {
		if id == "factor.zimo" {
			found = true
		}
	}
	if !found {
		t.Fatalf("implicit zimo missing from audit: %v", scores[0].AppliedRuleIDs)
	}
}

func TestSettleExplicitFactorWinsOverImplied(t *testing.T) {
	engine := New(fixture())

	// caller explicitly disabled zimo, the multi-payer convenience must
	// not override it
	_, scores, _ := engine.Settle(roster(), []protocol.PlayerRoundInput{
		{
			Name:         "A",
			HandTypeID:   "hand.pinghu",
			PayerNames:   []string{"B", "C", "D"},
			FactorValues: map[string]protocol.FactorValue{"factor.zimo": protocol.BoolValue(false)},
		},
	}, false)

	if got, want := deltas(scores), []int{3, -1, -1, -1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("deltas got: %v want: %v", got, want)
	}
}

func TestSettleTianhuAllPay(t *testing.T) {
	engine := New(fixture())

	// tianhu forces the payer set to everyone else and never stacks the
	// self-draw bonus, whatever the caller sent
	_, scores, _ := engine.Settle(roster(), []protocol.PlayerRoundInput{
		{
			Name:         "A",
			HandTypeID:   "hand.tianhu",
			PayerName:    "B",
			FactorValues: map[string]protocol.FactorValue{"factor.zimo": protocol.BoolValue(true)},
		},
	}, false)

	if got, want := deltas(scores), []int{96, -32, -32, -32}; !reflect.DeepEqual(got, want) {
		t.Fatalf("deltas got: %v want: %v", got, want)
	}
}

func TestSettleLegacyRuleIDs(t *testing.T) {
	engine := New(fixture())

	_, scores, _ := engine.Settle(roster(), []protocol.PlayerRoundInput{
		{Name: "A", HandTypeID: "hand.pinghu", PayerName: "B", ExtraRuleIDs: []string{"factor.zimo"}},
	}, false)

	// legacy id list enables zimo as boolean true: 1 x 2, single payer
	if got, want := deltas(scores), []int{2, -2, 0, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("deltas got: %v want: %v", got, want)
	}
}

func TestSettleCountableFactor(t *testing.T) {
	engine := New(fixture())

	_, scores, _ := engine.Settle(roster(), []protocol.PlayerRoundInput{
		{
			Name:         "A",
			HandTypeID:   "hand.qingyise",
			PayerName:    "B",
			FactorValues: map[string]protocol.FactorValue{"factor.gen": protocol.CountValue(2)},
		},
	}, false)

	// 4 x 2^2 = 16
	if got, want := deltas(scores), []int{16, -16, 0, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("deltas got: %v want: %v", got, want)
	}
}

func TestSettleUnknownHandDropsWin(t *testing.T) {
	engine := New(fixture())

	players, scores, warnings := engine.Settle(roster(), []protocol.PlayerRoundInput{
		{Name: "A", HandTypeID: "hand.nope", PayerName: "B"},
	}, false)

	if got, want := deltas(scores), []int{0, 0, 0, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("deltas got: %v want: %v", got, want)
	}
	if players[0].Score != 100 {
		t.Fatalf("score got: %d want: 100", players[0].Score)
	}
	if len(warnings) != 0 {
		t.Fatalf("lenient mode must not warn: %v", warnings)
	}

	_, _, warnings = engine.Settle(roster(), []protocol.PlayerRoundInput{
		{Name: "A", HandTypeID: "hand.nope", PayerName: "B"},
	}, true)
	if len(warnings) != 1 {
		t.Fatalf("strict mode warnings got: %v", warnings)
	}
}

func TestSettleWinWithoutPayers(t *testing.T) {
	engine := New(fixture())

	// legacy fallback: credit the winner with no offsetting debit
	_, scores, warnings := engine.Settle(roster(), []protocol.PlayerRoundInput{
		{Name: "A", HandTypeID: "hand.qingyise"},
	}, false)

	if got, want := deltas(scores), []int{4, 0, 0, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("deltas got: %v want: %v", got, want)
	}
	if len(warnings) != 0 {
		t.Fatalf("lenient mode must not warn: %v", warnings)
	}

	_, _, warnings = engine.Settle(roster(), []protocol.PlayerRoundInput{
		{Name: "A", HandTypeID: "hand.qingyise"},
	}, true)
	if len(warnings) != 1 {
		t.Fatalf("strict mode warnings got: %v", warnings)
	}
}

func TestSettleDianGang(t *testing.T) {
	engine := New(fixture())

	_, scores, _ := engine.Settle(roster(), []protocol.PlayerRoundInput{
		{Name: "A", KongEvents: []protocol.KongEventInput{
			{Type: protocol.KongDianGang, PayerName: "B"},
		}},
	}, false)

	if got, want := deltas(scores), []int{2, -2, 0, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("deltas got: %v want: %v", got, want)
	}
	if scores[0].KongScore != 2 || scores[0].WinScore != 0 {
		t.Fatalf("buckets got: %+v", scores[0])
	}

	wantA := []string{"event.dian_gang", "count:1", "payer:B"}
	if !reflect.DeepEqual(scores[0].AppliedRuleIDs, wantA) {
		t.Fatalf("audit got: %v want: %v", scores[0].AppliedRuleIDs, wantA)
	}
}

func TestSettleDianGangInvalidPayer(t *testing.T) {
	engine := New(fixture())

	table := []protocol.KongEventInput{
		{Type: protocol.KongDianGang},                    // missing payer
		{Type: protocol.KongDianGang, PayerName: "A"},    // actor pays itself
		{Type: protocol.KongDianGang, PayerName: "Zed"},  // unknown payer
	}

	for i, ev := range table {
		_, scores, _ := engine.Settle(roster(), []protocol.PlayerRoundInput{
			{Name: "A", KongEvents: []protocol.KongEventInput{ev}},
		}, false)
		if got, want := deltas(scores), []int{0, 0, 0, 0}; !reflect.DeepEqual(got, want) {
			t.Fatalf("index: %d deltas got: %v want: %v", i, got, want)
		}
	}
}

func TestSettleAnGangDefaultPayers(t *testing.T) {
	engine := New(fixture())

	// B won this round, so the default an_gang payer set for A is C and D
	_, scores, _ := engine.Settle(roster(), []protocol.PlayerRoundInput{
		{Name: "B", HandTypeID: "hand.pinghu", PayerName: "A"},
		{Name: "A", KongEvents: []protocol.KongEventInput{
			{Type: protocol.KongAnGang},
		}},
	}, false)

	// A: -1 (paid B's win) +4 (an_gang from C and D); B: +1; C, D: -2 each
	if got, want := deltas(scores), []int{3, 1, -2, -2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("deltas got: %v want: %v", got, want)
	}
	if sum(deltas(scores)) != 0 {
		t.Fatal("pure transfer round must be zero sum")
	}
	if scores[0].WinScore != -1 || scores[0].KongScore != 4 {
		t.Fatalf("buckets got: %+v", scores[0])
	}
}

func TestSettleBuGangExplicitPayers(t *testing.T) {
	engine := New(fixture())

	_, scores, _ := engine.Settle(roster(), []protocol.PlayerRoundInput{
		{Name: "A", KongEvents: []protocol.KongEventInput{
			{Type: protocol.KongBuGang, PayerNames: []string{"B", "C", "A", "Zed"}},
		}},
	}, false)

	// actor and unknown names are filtered out of the payer list
	if got, want := deltas(scores), []int{2, -1, -1, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("deltas got: %v want: %v", got, want)
	}
}

func TestSettleManualDelta(t *testing.T) {
	engine := New(fixture())

	_, scores, _ := engine.Settle(roster(), []protocol.PlayerRoundInput{
		{Name: "C", ManualDelta: -5},
	}, false)

	if got, want := deltas(scores), []int{0, 0, -5, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("deltas got: %v want: %v", got, want)
	}
	s := scores[2]
	if s.WinScore != 0 || s.KongScore != 0 || s.ManualScore != -5 {
		t.Fatalf("buckets got: %+v", s)
	}
	if want := []string{"manual_delta:-5"}; !reflect.DeepEqual(s.AppliedRuleIDs, want) {
		t.Fatalf("audit got: %v want: %v", s.AppliedRuleIDs, want)
	}
}

func TestSettleUnknownPlayerIgnored(t *testing.T) {
	engine := New(fixture())

	players, scores, _ := engine.Settle(roster(), []protocol.PlayerRoundInput{
		{Name: "Zed", HandTypeID: "hand.qingyise", PayerName: "A"},
	}, false)

	if got, want := deltas(scores), []int{0, 0, 0, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("deltas got: %v want: %v", got, want)
	}
	for i, p := range players {
		if p.Score != 100 {
			t.Fatalf("index: %d score got: %d want: 100", i, p.Score)
		}
	}
}

func TestSettleDoesNotMutateInput(t *testing.T) {
	engine := New(fixture())

	in := roster()
	engine.Settle(in, []protocol.PlayerRoundInput{
		{Name: "A", HandTypeID: "hand.qingyise", PayerName: "B"},
	}, false)

	for i, p := range in {
		if p.Score != 100 {
			t.Fatalf("index: %d input mutated: %d", i, p.Score)
		}
	}
}

func TestSettleOutputOrder(t *testing.T) {
	engine := New(fixture())

	// round inputs arrive in a different order than the roster
	_, scores, _ := engine.Settle(roster(), []protocol.PlayerRoundInput{
		{Name: "D", ManualDelta: 1},
		{Name: "B", HandTypeID: "hand.pinghu", PayerName: "C"},
	}, false)

	names := make([]string, len(scores))
	for i, s := range scores {
		names[i] = s.Name
	}
	if want := []string{"A", "B", "C", "D"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("order got: %v want: %v", names, want)
	}
}

func TestSettleStrictEngineOption(t *testing.T) {
	engine := New(fixture(), WithStrict(true))

	_, _, warnings := engine.Settle(roster(), []protocol.PlayerRoundInput{
		{Name: "A", HandTypeID: "hand.nope"},
	}, false)
	if len(warnings) == 0 {
		t.Fatal("engine-level strict mode must warn")
	}
}
