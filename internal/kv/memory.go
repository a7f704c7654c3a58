package kv

import memorystore "fpadmin/internal/infra/kv/memory"

// NewMemory returns an in-memory kv.Store.
func NewMemory() Store { return memorystore.New() }
