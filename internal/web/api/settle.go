package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lonng/nex"
	"github.com/pborman/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/readysethu/huserver/internal/settle"
	"github.com/readysethu/huserver/pkg/errutil"
	"github.com/readysethu/huserver/protocol"
)

var logger = log.WithField("component", "api")

// MakeSettleService serves the rule-based round settlement.
func MakeSettleService(engine *settle.Engine) http.Handler {
	router := mux.NewRouter()
	router.Handle("/api/score_round_rule_based", nex.Handler(scoreRound(engine))).Methods("POST")
	return router
}

func scoreRound(engine *settle.Engine) func(*protocol.ScoreRoundRequest) (*protocol.ScoreRoundResponse, error) {
	return func(req *protocol.ScoreRoundRequest) (*protocol.ScoreRoundResponse, error) {
		if req == nil || len(req.Players) == 0 {
			return nil, errutil.ErrInvalidParameter
		}

		roundID := uuid.New()
		players, scores, warnings := engine.Settle(req.Players, req.PlayerRounds, req.Strict)

		logger.Debugf("RoundID=%s, Players=%d, Rounds=%d, Warnings=%d",
			roundID, len(players), len(req.PlayerRounds), len(warnings))

		return &protocol.ScoreRoundResponse{
			RoundID:      roundID,
			Players:      players,
			PlayerScores: scores,
			Warnings:     warnings,
		}, nil
	}
}
