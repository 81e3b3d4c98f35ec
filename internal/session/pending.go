// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session coordinates the conversational workspace state.
package session

import (
	"context"
	"sync"

	"github.com/jeranaias/parley-tui/internal/router"
)

// =============================================================================
// PENDING FLIGHT TABLE (THREAD-SAFE)
// =============================================================================

// flightRecord is the bookkeeping for one in-flight send: the routing state
// it was issued under, the user turn awaiting an answer, and the cancel
// function for its request context.
type flightRecord struct {
	binding       router.Binding
	userMessageID string
	userText      string
	cancel        context.CancelFunc
}

// pendingTable tracks in-flight sends keyed by token. Completions arrive
// from request goroutines while transitions happen on the event loop, so
// access is mutex protected. IMPORTANT: use as a pointer so the mutex is
// never copied.
type pendingTable struct {
	mu      sync.Mutex
	flights map[string]flightRecord
}

// newPendingTable creates an empty table.
func newPendingTable() *pendingTable {
	return &pendingTable{flights: make(map[string]flightRecord)}
}

// register stores a flight under its token.
func (p *pendingTable) register(token string, rec flightRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flights[token] = rec
}

// take removes and returns the flight for a token. A token that was already
// taken or cancelled reports false.
func (p *pendingTable) take(token string) (flightRecord, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rec, ok := p.flights[token]
	if ok {
		delete(p.flights, token)
	}
	return rec, ok
}

// cancelWhere cancels and removes every flight whose binding fails the
// keep predicate. Called after routing transitions so replies tied to an
// abandoned surface are cut loose instead of being applied to the wrong
// view.
func (p *pendingTable) cancelWhere(keep func(router.Binding) bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for token, rec := range p.flights {
		if keep(rec.binding) {
			continue
		}
		if rec.cancel != nil {
			rec.cancel()
		}
		delete(p.flights, token)
	}
}

// retarget rebinds every flight issued under from to the to binding and
// returns their user message ids. Used when the surface those flights were
// issued on resolves into a conversation: their answers now belong to it
// and must stay live.
func (p *pendingTable) retarget(from, to router.Binding) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var userIDs []string
	for token, rec := range p.flights {
		if rec.binding != from {
			continue
		}
		rec.binding = to
		p.flights[token] = rec
		userIDs = append(userIDs, rec.userMessageID)
	}
	return userIDs
}

// len returns the number of in-flight sends.
func (p *pendingTable) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.flights)
}
