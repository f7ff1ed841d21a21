// Package ledgergrp maintains the group of handlers for ledger access.
package ledgergrp

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/blocklog/blocklog/business/web/errs"
	"github.com/blocklog/blocklog/foundation/ledger/chain"
	"github.com/blocklog/blocklog/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	Chain *chain.Chain
	WS    websocket.Upgrader
}

// Length returns the number of blocks persisted in the ledger.
func (h Handlers) Length(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	length, err := h.Chain.Length()
	if err != nil {
		return err
	}

	resp := struct {
		Length uint32 `json:"length"`
	}{
		Length: length,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// BlockByNumber returns the block stored at the specified number.
func (h Handlers) BlockByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	num, err := strconv.ParseUint(web.Param(r, "number"), 10, 32)
	if err != nil {
		return errs.NewTrusted(errors.New("invalid block number"), http.StatusBadRequest)
	}

	blk, err := h.Chain.BlockAt(uint32(num))
	if err != nil {
		return err
	}

	// The zero value block means nothing is stored at this number.
	if blk.Header.PrevBlockHash == "" {
		return errs.NewTrusted(errors.New("block not found"), http.StatusNotFound)
	}

	return web.Respond(ctx, w, toBlock(blk), http.StatusOK)
}

// BlocksByNumber returns the blocks from the specified number on. The to
// parameter accepts the keyword latest for an unbounded read.
func (h Handlers) BlocksByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	from, err := strconv.ParseUint(web.Param(r, "from"), 10, 32)
	if err != nil {
		return errs.NewTrusted(errors.New("invalid from number"), http.StatusBadRequest)
	}

	limit := 0
	if toParam := web.Param(r, "to"); toParam != "latest" {
		to, err := strconv.ParseUint(toParam, 10, 32)
		if err != nil || to < from {
			return errs.NewTrusted(errors.New("invalid to number"), http.StatusBadRequest)
		}
		limit = int(to-from) + 1
	}

	blks, err := h.Chain.GetRange(uint32(from), limit)
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, toBlocks(blks), http.StatusOK)
}

// Validate walks the whole ledger verifying the hash chain invariants.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	length, err := h.Chain.Length()
	if err != nil {
		return err
	}

	valid, err := h.Chain.Validate(0, nil)
	if err != nil {
		return err
	}

	resp := struct {
		Valid  bool   `json:"valid"`
		Blocks uint32 `json:"blocks"`
	}{
		Valid:  valid,
		Blocks: length,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Genesis roots a new ledger with the submitted payload. When the ledger
// already has blocks the call is a no-op.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req genesisRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	blk, err := h.Chain.Genesis(ctx, []byte(req.Data))
	if err != nil {
		return err
	}

	if blk.Header.PrevBlockHash == "" {
		resp := struct {
			Created bool `json:"created"`
		}{
			Created: false,
		}
		return web.Respond(ctx, w, resp, http.StatusOK)
	}

	resp := struct {
		Created bool  `json:"created"`
		Block   block `json:"block"`
	}{
		Created: true,
		Block:   toBlock(blk),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Append appends a new block carrying the submitted payload.
func (h Handlers) Append(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req appendRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	blk, err := h.Chain.Append(ctx, []byte(req.Data))
	if err != nil {
		if errors.Is(err, chain.ErrMissingGenesis) {
			return errs.NewTrusted(err, http.StatusConflict)
		}
		return err
	}

	return web.Respond(ctx, w, toBlock(blk), http.StatusCreated)
}

// Replace adopts the submitted candidate chain in place of the current one.
func (h Handlers) Replace(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req replaceRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	if err := h.Chain.Replace(ctx, req.Blocks); err != nil {
		switch {
		case errors.Is(err, chain.ErrChainTooShort):
			return errs.NewTrusted(err, http.StatusConflict)
		case errors.Is(err, chain.ErrInvalidChain):
			return errs.NewTrusted(err, http.StatusUnprocessableEntity)
		}
		return err
	}

	resp := struct {
		Adopted int `json:"adopted"`
	}{
		Adopted: len(req.Blocks),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide ledger events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	h.Log.Infow("events", "trace_id", v.TraceID, "status", "websocket open")
	defer h.Log.Infow("events", "trace_id", v.TraceID, "status", "websocket closed")

	// Register this connection to receive ledger events. The registration
	// id is the request trace id so it is unique per connection.
	ch := h.Chain.Events().Acquire(v.TraceID)
	defer h.Chain.Events().Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
