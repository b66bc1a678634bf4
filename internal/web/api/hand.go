package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lonng/nex"

	"github.com/readysethu/huserver/internal/mahjong"
	"github.com/readysethu/huserver/pkg/errutil"
	"github.com/readysethu/huserver/protocol"
)

// MakeHandService serves the hand decomposition check.
func MakeHandService() http.Handler {
	router := mux.NewRouter()
	router.Handle("/api/check_hand", nex.Handler(checkHand)).Methods("POST")
	return router
}

func checkHand(req *protocol.CheckHandRequest) (*protocol.CheckHandResponse, error) {
	if req == nil {
		return nil, errutil.ErrInvalidParameter
	}
	return mahjong.CheckHand(req.Tiles), nil
}
