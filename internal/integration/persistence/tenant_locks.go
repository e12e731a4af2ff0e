package persistence

import (
	"strings"
	"sync"
)

// tenantLocks hands out one mutex per company. Mutations for a company hold
// its lock for the whole database transaction.
type tenantLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newTenantLocks() *tenantLocks {
	return &tenantLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the company's mutex and returns its unlock function.
func (t *tenantLocks) lock(companyUsername string) func() {
	key := strings.ToLower(companyUsername)

	t.mu.Lock()
	m, ok := t.locks[key]
	if !ok {
		m = &sync.Mutex{}
		t.locks[key] = m
	}
	t.mu.Unlock()

	m.Lock()
	return m.Unlock
}
