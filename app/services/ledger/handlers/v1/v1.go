// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/blocklog/blocklog/app/services/ledger/handlers/v1/ledgergrp"
	"github.com/blocklog/blocklog/foundation/ledger/chain"
	"github.com/blocklog/blocklog/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	Chain *chain.Chain
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	lgr := ledgergrp.Handlers{
		Log:   cfg.Log,
		Chain: cfg.Chain,
	}

	app.Handle(http.MethodGet, version, "/ledger/length", lgr.Length)
	app.Handle(http.MethodGet, version, "/ledger/block/:number", lgr.BlockByNumber)
	app.Handle(http.MethodGet, version, "/ledger/blocks/list/:from/:to", lgr.BlocksByNumber)
	app.Handle(http.MethodGet, version, "/ledger/validate", lgr.Validate)
	app.Handle(http.MethodPost, version, "/ledger/genesis", lgr.Genesis)
	app.Handle(http.MethodPost, version, "/ledger/append", lgr.Append)
	app.Handle(http.MethodPost, version, "/ledger/replace", lgr.Replace)
	app.Handle(http.MethodGet, version, "/events", lgr.Events)
}
