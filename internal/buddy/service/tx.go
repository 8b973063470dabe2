package service

import (
	"context"
	"sync"
)

// MemoryTxRunner serializes multi-store operations over in-memory stores.
// Memory stores cannot roll back, so the coordinator validates before it
// mutates; the mutex keeps concurrent coordinator calls from interleaving.
// Production wiring uses the postgres runner in cmd/server.
type MemoryTxRunner struct {
	mu     sync.Mutex
	stores Stores
}

func NewMemoryTxRunner(stores Stores) *MemoryTxRunner {
	return &MemoryTxRunner{stores: stores}
}

func (r *MemoryTxRunner) RunInTx(_ context.Context, fn func(stores Stores) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.stores)
}
