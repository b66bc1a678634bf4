package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lonng/nex"

	"github.com/readysethu/huserver/internal/mahjong"
	"github.com/readysethu/huserver/internal/rules"
	"github.com/readysethu/huserver/internal/ruleset"
	"github.com/readysethu/huserver/pkg/errutil"
	"github.com/readysethu/huserver/protocol"
)

// MakeRuleService serves tile metadata, the rule projections, keyword search
// and the raw ruleset document.
func MakeRuleService(rs *ruleset.Ruleset, store *rules.Store) http.Handler {
	router := mux.NewRouter()
	router.Handle("/api/tiles", nex.Handler(tiles)).Methods("GET")
	router.Handle("/api/rules", nex.Handler(listRules(store))).Methods("GET")
	router.Handle("/api/rules/basics", nex.Handler(listBasics(store))).Methods("GET")
	router.Handle("/api/rules/search", nex.Handler(searchRules(store))).Methods("POST")
	router.Handle("/api/ruleset", nex.Handler(rawRuleset(rs))).Methods("GET")
	return router
}

func tiles() ([]protocol.TileInfo, error) {
	return mahjong.AllTiles(), nil
}

func listRules(store *rules.Store) func() ([]protocol.Rule, error) {
	return func() ([]protocol.Rule, error) {
		return store.Rules(), nil
	}
}

func listBasics(store *rules.Store) func() ([]protocol.BasicRule, error) {
	return func() ([]protocol.BasicRule, error) {
		return store.Basics(), nil
	}
}

func searchRules(store *rules.Store) func(*protocol.RuleSearchRequest) (*protocol.RuleSearchResponse, error) {
	return func(req *protocol.RuleSearchRequest) (*protocol.RuleSearchResponse, error) {
		if req == nil {
			return nil, errutil.ErrInvalidParameter
		}
		return &protocol.RuleSearchResponse{RuleIDs: store.Search(req.Query)}, nil
	}
}

func rawRuleset(rs *ruleset.Ruleset) func() (json.RawMessage, error) {
	return func() (json.RawMessage, error) {
		return rs.Raw(), nil
	}
}
