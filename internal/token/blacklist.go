package token

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Blacklist tracks tokens revoked before their natural expiry. It is the
// only server-side session state: entries live from logout until the
// token would have expired anyway. Reads happen on every authenticated
// request, so membership is an in-memory map under a RWMutex.
type Blacklist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewBlacklist() *Blacklist {
	return &Blacklist{revoked: make(map[string]time.Time)}
}

func fingerprint(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Revoke records the token until expiresAt. Revoking an already revoked
// token is a no-op; the earliest recorded expiry wins so an entry can
// never outlive the token.
func (b *Blacklist) Revoke(raw string, expiresAt time.Time) {
	key := fingerprint(raw)

	b.mu.Lock()
	defer b.mu.Unlock()
	if exp, ok := b.revoked[key]; ok && exp.Before(expiresAt) {
		return
	}
	b.revoked[key] = expiresAt
}

func (b *Blacklist) IsRevoked(raw string) bool {
	key := fingerprint(raw)

	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.revoked[key]
	return ok
}

// PurgeExpired drops entries whose token has expired on its own. The
// codec rejects expired tokens regardless, so purging only bounds memory.
func (b *Blacklist) PurgeExpired(now time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for key, exp := range b.revoked {
		if !exp.After(now) {
			delete(b.revoked, key)
			n++
		}
	}
	return n
}

func (b *Blacklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.revoked)
}

// StartJanitor purges expired entries every interval until ctx is done.
func (b *Blacklist) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				b.PurgeExpired(now)
			}
		}
	}()
}
