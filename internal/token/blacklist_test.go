package token

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevokeAndIsRevoked(t *testing.T) {
	b := NewBlacklist()

	assert.False(t, b.IsRevoked("some-token"))

	b.Revoke("some-token", time.Now().Add(time.Hour))
	assert.True(t, b.IsRevoked("some-token"))
	assert.False(t, b.IsRevoked("another-token"))
}

func TestRevokeIdempotent(t *testing.T) {
	b := NewBlacklist()
	exp := time.Now().Add(time.Hour)

	b.Revoke("some-token", exp)
	b.Revoke("some-token", exp)
	b.Revoke("some-token", exp.Add(time.Hour))

	assert.True(t, b.IsRevoked("some-token"))
	assert.Equal(t, 1, b.Len())
}

func TestPurgeExpired(t *testing.T) {
	b := NewBlacklist()
	now := time.Now()

	b.Revoke("dead", now.Add(-time.Minute))
	b.Revoke("alive", now.Add(time.Hour))
	require.Equal(t, 2, b.Len())

	purged := b.PurgeExpired(now)
	assert.Equal(t, 1, purged)
	assert.Equal(t, 1, b.Len())

	// Purging a dead entry does not change observable behavior for live
	// tokens.
	assert.False(t, b.IsRevoked("dead"))
	assert.True(t, b.IsRevoked("alive"))
}

func TestRevokeVisibleToConcurrentReaders(t *testing.T) {
	b := NewBlacklist()
	b.Revoke("some-token", time.Now().Add(time.Hour))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Revoke completed before these goroutines started; every
			// read must observe it.
			assert.True(t, b.IsRevoked("some-token"))
		}()
	}
	wg.Wait()
}

func TestConcurrentRevokeAndRead(t *testing.T) {
	b := NewBlacklist()
	exp := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			b.Revoke("contended", exp)
		}()
		go func() {
			defer wg.Done()
			b.IsRevoked("contended")
			b.IsRevoked("other")
		}()
	}
	wg.Wait()

	assert.True(t, b.IsRevoked("contended"))
	assert.Equal(t, 1, b.Len())
}

func TestJanitorPurges(t *testing.T) {
	b := NewBlacklist()
	b.Revoke("dead", time.Now().Add(-time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b.StartJanitor(ctx, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return b.Len() == 0
	}, time.Second, 10*time.Millisecond)
}
