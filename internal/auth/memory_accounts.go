package auth

import (
	"context"
	"errors"
	"sync"
)

var errAccountNotFound = errors.New("account not found")

// MemoryAccounts stores staff accounts in process, for the in-memory
// deployment mode and tests.
type MemoryAccounts struct {
	mu       sync.RWMutex
	accounts map[string]Account // keyed by username
}

func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{accounts: make(map[string]Account)}
}

func (r *MemoryAccounts) GetByUsername(_ context.Context, username string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[username]
	if !ok {
		return Account{}, errAccountNotFound
	}
	return a, nil
}

func (r *MemoryAccounts) Create(_ context.Context, a Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.Username] = a
	return nil
}
