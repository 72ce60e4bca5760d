// Package credential owns the ordered set of flight API access keys and the
// rotation cursor. Every mutation is written back to the key file before it
// returns, so a crash loses at most the in-flight page.
package credential

import (
	"errors"
	"sync"

	"skyscraper-service/internal/infrastructure/filestore"
	"skyscraper-service/pkg/logger"
)

// ErrPoolExhausted means no credentials remain in the pool
var ErrPoolExhausted = errors.New("credential pool exhausted")

// Pool holds the API keys loaded from the key file and the active cursor.
// Invariant: 0 <= cursor < len(keys) whenever keys is non-empty.
type Pool struct {
	mu     sync.Mutex
	store  *filestore.ListStore
	keys   []string
	cursor int
	logger logger.Logger
}

// NewPool creates a pool backed by the given key file and loads it
func NewPool(store *filestore.ListStore, log logger.Logger) (*Pool, error) {
	p := &Pool{store: store, logger: log}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-reads the key file so operator-added keys are picked up while the
// engine runs. The cursor is reset to the start of the reloaded list.
func (p *Pool) Reload() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	keys, err := p.store.Load()
	if err != nil {
		return err
	}
	p.keys = keys
	p.cursor = 0
	p.logger.Debug("Credential pool reloaded", "size", len(keys))
	return nil
}

// Current returns the credential at the cursor, or ErrPoolExhausted
func (p *Pool) Current() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.keys) == 0 {
		return "", ErrPoolExhausted
	}
	return p.keys[p.cursor], nil
}

// Advance moves the cursor to the next credential, wrapping around. No-op on
// an empty pool.
func (p *Pool) Advance() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.keys) == 0 {
		return
	}
	p.cursor = (p.cursor + 1) % len(p.keys)
}

// Remove deletes a credential from the pool if present, persists the updated
// key file and clamps the cursor back into range.
func (p *Pool) Remove(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	kept := make([]string, 0, len(p.keys))
	for _, k := range p.keys {
		if k != key {
			kept = append(kept, k)
		}
	}
	if len(kept) == len(p.keys) {
		return nil
	}
	// Persist first so memory and the key file never diverge on a write error
	if err := p.store.Save(kept); err != nil {
		return err
	}
	p.keys = kept
	if p.cursor >= len(p.keys) {
		p.cursor = 0
	}
	p.logger.Warn("Removed credential from pool", "remaining", len(p.keys))
	return nil
}

// Size returns the number of credentials currently in the pool
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys)
}
