package web

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lonng/nex"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/readysethu/huserver/internal/qa"
	"github.com/readysethu/huserver/internal/rules"
	"github.com/readysethu/huserver/internal/ruleset"
	"github.com/readysethu/huserver/internal/settle"
	"github.com/readysethu/huserver/internal/web/api"
	"github.com/readysethu/huserver/pkg/algoutil"
	"github.com/readysethu/huserver/pkg/errutil"
)

var logger = log.WithField("component", "http")

func welcome() (map[string]string, error) {
	return map[string]string{"message": "Welcome to Ready, Set, Hu! API"}, nil
}

func pongHandler() (string, error) {
	return "pong", nil
}

func logRequest(ctx context.Context, r *http.Request) (context.Context, error) {
	if uri := r.RequestURI; uri != "/ping" {
		logger.Debugf("Method=%s, RemoteAddr=%s URL=%s", r.Method, r.RemoteAddr, uri)
	}
	return ctx, nil
}

func encodeError(err error) interface{} {
	return &nex.DefaultErrorMessage{
		Code:  errutil.Code(err),
		Error: err.Error(),
	}
}

func startupService(rs *ruleset.Ruleset) http.Handler {
	var (
		store  = rules.NewStore(rs, viper.GetString("ruleset.basics"))
		engine = settle.New(rs, settle.WithStrict(viper.GetBool("settle.strict")))
		client = qa.New(rs)
	)

	nex.Before(logRequest)
	nex.SetErrorEncoder(encodeError)

	mux := http.NewServeMux()

	ruleService := api.MakeRuleService(rs, store)
	mux.Handle("/api/tiles", ruleService)
	mux.Handle("/api/rules", ruleService)
	mux.Handle("/api/rules/", ruleService)
	mux.Handle("/api/ruleset", ruleService)

	mux.Handle("/api/check_hand", api.MakeHandService())
	mux.Handle("/api/score_round_rule_based", api.MakeSettleService(engine))
	mux.Handle("/api/qa", api.MakeQAService(client))

	mux.Handle("/ping", nex.Handler(pongHandler))
	mux.Handle("/", nex.Handler(welcome))

	return algoutil.AccessControl(algoutil.OptionControl(mux))
}

func Startup(rs *ruleset.Ruleset) {
	addr := viper.GetString("webserver.addr")
	if addr == "" {
		addr = ":8000"
	}

	logger.Infof("Web service addr: %s", addr)
	go func() {
		mux := startupService(rs)
		log.Fatal(http.ListenAndServe(addr, mux))
	}()

	sg := make(chan os.Signal, 1)
	signal.Notify(sg, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	// stop server
	select {
	case s := <-sg:
		log.Infof("got signal: %s", s.String())
	}
}
