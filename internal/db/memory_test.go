package db

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fluxur/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMints(t *testing.T, store *Memory, n int) []string {
	t.Helper()
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("FLXR%03d", i)
		ok, err := store.InsertVanityMint(context.Background(), keys[i], "sealed")
		require.NoError(t, err)
		require.True(t, ok)
	}
	return keys
}

func TestMemoryConcurrentReserveIsExclusive(t *testing.T) {
	const pool, callers = 5, 40
	store := NewMemory()
	seedMints(t, store, pool)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		won       = map[string]int{}
		exhausted int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mint, err := store.ReserveVanityMint(context.Background())
			mu.Lock()
			defer mu.Unlock()
			if IsNoRows(err) {
				exhausted++
				return
			}
			won[mint.PublicKey]++
		}()
	}
	wg.Wait()

	assert.Len(t, won, pool)
	for key, n := range won {
		assert.Equal(t, 1, n, key)
	}
	assert.Equal(t, callers-pool, exhausted)
}

func TestMemoryReleaseIsIdempotentAndKeepsUsed(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	keys := seedMints(t, store, 2)

	require.NoError(t, store.ReleaseVanityMint(ctx, keys[0]))
	mint, _ := store.VanityMint(keys[0])
	assert.Equal(t, model.VanityAvailable, mint.Status)

	_, err := store.ReserveVanityMint(ctx)
	require.NoError(t, err)
	require.NoError(t, store.MarkVanityMintUsed(ctx, keys[0]))
	require.NoError(t, store.ReleaseVanityMint(ctx, keys[0]))
	mint, _ = store.VanityMint(keys[0])
	assert.Equal(t, model.VanityUsed, mint.Status)

	assert.ErrorIs(t, store.MarkVanityMintUsed(ctx, keys[1]), ErrNotReserved)
	assert.NoError(t, store.ReleaseVanityMint(ctx, "unknown"))
}

func TestMemoryQuarantine(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	keys := seedMints(t, store, 2)

	assert.ErrorIs(t, store.QuarantineVanityMint(ctx, keys[0]), ErrNotReserved)

	_, err := store.ReserveVanityMint(ctx)
	require.NoError(t, err)
	require.NoError(t, store.QuarantineVanityMint(ctx, keys[0]))
	require.NoError(t, store.ReleaseVanityMint(ctx, keys[0]))

	next, err := store.ReserveVanityMint(ctx)
	require.NoError(t, err)
	assert.Equal(t, keys[1], next.PublicKey)

	stats, err := store.VanityMintStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.VanityMintStats{Reserved: 1, Invalid: 1}, stats)
}

func TestMemoryReleaseStale(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	seedMints(t, store, 2)

	_, err := store.ReserveVanityMint(ctx)
	require.NoError(t, err)
	store.now = func() time.Time { return base.Add(20 * time.Minute) }
	_, err = store.ReserveVanityMint(ctx)
	require.NoError(t, err)

	n, err := store.ReleaseStaleVanityMints(ctx, base.Add(10*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stats, err := store.VanityMintStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.VanityMintStats{Available: 1, Reserved: 1}, stats)
}

func TestMemoryCompleteLoginConsumesOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	n, err := store.InsertNonce(ctx, "Wallet1", "abc", time.Now().Add(time.Minute))
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.CompleteLogin(ctx, n.ID, "Wallet1", fmt.Sprintf("hash-%d", i), time.Now().Add(time.Hour))
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, 1, store.UserCount())
}

func TestMemoryCompleteLoginReusesUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	var ids []int64
	for i := 0; i < 3; i++ {
		n, err := store.InsertNonce(ctx, "Wallet1", fmt.Sprintf("n%d", i), time.Now().Add(time.Minute))
		require.NoError(t, err)
		user, err := store.CompleteLogin(ctx, n.ID, "Wallet1", fmt.Sprintf("h%d", i), time.Now().Add(time.Hour))
		require.NoError(t, err)
		ids = append(ids, user.ID)
	}
	assert.Equal(t, ids[0], ids[1])
	assert.Equal(t, ids[0], ids[2])

	session, err := store.GetSessionByTokenHash(ctx, "h2")
	require.NoError(t, err)
	assert.Equal(t, ids[0], session.UserID)

	require.NoError(t, store.RevokeSessionByTokenHash(ctx, "h2"))
	session, err = store.GetSessionByTokenHash(ctx, "h2")
	require.NoError(t, err)
	assert.NotNil(t, session.RevokedAt)

	_, err = store.GetSessionByTokenHash(ctx, "missing")
	assert.True(t, IsNoRows(err))
}

func TestMemoryListRecentNoncesNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	for i := 0; i < 7; i++ {
		_, err := store.InsertNonce(ctx, "Wallet1", fmt.Sprintf("n%d", i), time.Now().Add(time.Minute))
		require.NoError(t, err)
	}
	_, err := store.InsertNonce(ctx, "Other", "x", time.Now().Add(time.Minute))
	require.NoError(t, err)

	nonces, err := store.ListRecentNonces(ctx, "Wallet1", 5)
	require.NoError(t, err)
	require.Len(t, nonces, 5)
	assert.Equal(t, "n6", nonces[0].Nonce)
	assert.Equal(t, "n2", nonces[4].Nonce)
}
