package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lonng/nex"

	"github.com/readysethu/huserver/internal/qa"
	"github.com/readysethu/huserver/pkg/errutil"
	"github.com/readysethu/huserver/protocol"
)

// MakeQAService serves the free-text Q&A pass-through.
func MakeQAService(client *qa.Client) http.Handler {
	router := mux.NewRouter()
	router.Handle("/api/qa", nex.Handler(answer(client))).Methods("POST")
	return router
}

func answer(client *qa.Client) func(*protocol.QARequest) (*protocol.QAResponse, error) {
	return func(req *protocol.QARequest) (*protocol.QAResponse, error) {
		if req == nil {
			return nil, errutil.ErrInvalidParameter
		}
		return client.Answer(req.Question), nil
	}
}
