package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fluxur/backend/internal/db"
	"github.com/fluxur/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveReturnsOpenedSecret(t *testing.T) {
	store := db.NewMemory()
	svc := newTestVanity(t, store)
	mints := seedPool(t, svc, 1)

	res, err := svc.Reserve(context.Background(), testUser())
	require.NoError(t, err)
	assert.Equal(t, mints[0].address, res.PublicID)
	assert.Equal(t, mints[0].secret(), res.SecretMaterial)

	stored, ok := store.VanityMint(mints[0].address)
	require.True(t, ok)
	assert.Equal(t, model.VanityReserved, stored.Status)
	assert.NotEqual(t, mints[0].secret(), stored.SecretKey, "secret sealed at rest")
}

func TestReserveRequiresUser(t *testing.T) {
	svc := newTestVanity(t, db.NewMemory())
	_, err := svc.Reserve(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestReserveExclusiveUnderConcurrency(t *testing.T) {
	const pool, callers = 4, 25
	svc := newTestVanity(t, db.NewMemory())
	seedPool(t, svc, pool)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   = map[string]bool{}
		exhausted int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Reserve(context.Background(), testUser())
			mu.Lock()
			defer mu.Unlock()
			if errors.Is(err, ErrExhausted) {
				exhausted++
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			assert.False(t, winners[res.PublicID], "mint handed out twice")
			winners[res.PublicID] = true
		}()
	}
	wg.Wait()

	assert.Len(t, winners, pool)
	assert.Equal(t, callers-pool, exhausted)
}

func TestExhaustedCarriesRetryMessage(t *testing.T) {
	svc := newTestVanity(t, db.NewMemory())
	_, err := svc.Reserve(context.Background(), testUser())

	var uerr *UserError
	require.True(t, errors.As(err, &uerr))
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Contains(t, uerr.Message, "try again")
}

func TestReserveSkipsUnusableMints(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemory()
	svc := newTestVanity(t, store)

	// rows ahead of the good ones: unsealed legacy text, and a sealed secret
	// that belongs to a different key
	legacy := newWallet(t)
	_, err := store.InsertVanityMint(ctx, legacy.address, "legacy-unsealed")
	require.NoError(t, err)
	mismatched, other := newWallet(t), newWallet(t)
	sealed, err := svc.box.Seal(other.secret())
	require.NoError(t, err)
	_, err = store.InsertVanityMint(ctx, mismatched.address, sealed)
	require.NoError(t, err)

	mints := seedPool(t, svc, 3)
	for i := range mints {
		res, err := svc.Reserve(ctx, testUser())
		require.NoError(t, err)
		assert.Equal(t, mints[i].address, res.PublicID)
	}

	_, err = svc.Reserve(ctx, testUser())
	assert.ErrorIs(t, err, ErrExhausted)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.VanityMintStats{Reserved: 3, Invalid: 2}, stats)

	// a late release cannot put a quarantined row back
	require.NoError(t, svc.Release(ctx, testUser(), legacy.address))
	stored, _ := store.VanityMint(legacy.address)
	assert.Equal(t, model.VanityInvalid, stored.Status)
}

func TestReserveGivesUpAfterBoundedAttempts(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemory()
	svc := newTestVanity(t, store)
	for range maxReserveAttempts + 1 {
		_, err := store.InsertVanityMint(ctx, newWallet(t).address, "garbage")
		require.NoError(t, err)
	}

	_, err := svc.Reserve(ctx, testUser())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrExhausted)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.VanityMintStats{Available: 1, Invalid: maxReserveAttempts}, stats)
}

func TestReleaseIsIdempotent(t *testing.T) {
	store := db.NewMemory()
	svc := newTestVanity(t, store)
	mints := seedPool(t, svc, 1)

	require.NoError(t, svc.Release(context.Background(), testUser(), mints[0].address))
	require.NoError(t, svc.Release(context.Background(), testUser(), mints[0].address))

	stored, _ := store.VanityMint(mints[0].address)
	assert.Equal(t, model.VanityAvailable, stored.Status)

	err := svc.Release(context.Background(), testUser(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLeaseReleasesOnFailure(t *testing.T) {
	store := db.NewMemory()
	svc := newTestVanity(t, store)
	mints := seedPool(t, svc, 1)

	downstream := func(ctx context.Context) error {
		lease, err := svc.Acquire(ctx, testUser())
		if err != nil {
			return err
		}
		defer lease.Release(ctx)
		return errors.New("upstream exploded")
	}
	require.Error(t, downstream(context.Background()))

	again, err := svc.Reserve(context.Background(), testUser())
	require.NoError(t, err)
	assert.Equal(t, mints[0].address, again.PublicID)
}

func TestLeaseReleaseSurvivesCancelledContext(t *testing.T) {
	store := db.NewMemory()
	svc := newTestVanity(t, store)
	mints := seedPool(t, svc, 1)

	ctx, cancel := context.WithCancel(context.Background())
	lease, err := svc.Acquire(ctx, testUser())
	require.NoError(t, err)
	assert.Equal(t, mints[0].key, lease.Key())
	cancel()
	lease.Release(ctx)

	stored, _ := store.VanityMint(mints[0].address)
	assert.Equal(t, model.VanityAvailable, stored.Status)
}

func TestLeaseKeepAndCommit(t *testing.T) {
	store := db.NewMemory()
	svc := newTestVanity(t, store)
	seedPool(t, svc, 2)

	kept, err := svc.Acquire(context.Background(), testUser())
	require.NoError(t, err)
	kept.Keep()
	kept.Release(context.Background())

	committed, err := svc.Acquire(context.Background(), testUser())
	require.NoError(t, err)
	require.NoError(t, committed.Commit(context.Background()))
	committed.Release(context.Background())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.VanityMintStats{Reserved: 1, Used: 1}, stats)
}

func TestConfirm(t *testing.T) {
	store := db.NewMemory()
	svc := newTestVanity(t, store)
	mints := seedPool(t, svc, 1)

	err := svc.Confirm(context.Background(), testUser(), mints[0].address)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Reserve(context.Background(), testUser())
	require.NoError(t, err)
	require.NoError(t, svc.Confirm(context.Background(), testUser(), mints[0].address))

	// used mints never go back to the pool
	require.NoError(t, svc.Release(context.Background(), testUser(), mints[0].address))
	stored, _ := store.VanityMint(mints[0].address)
	assert.Equal(t, model.VanityUsed, stored.Status)
}

func TestImportValidatesAndSkipsDuplicates(t *testing.T) {
	svc := newTestVanity(t, db.NewMemory())
	a, b := newWallet(t), newWallet(t)

	_, err := svc.Import(context.Background(), []model.VanityReservation{
		{PublicID: a.address, SecretMaterial: b.secret()},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Import(context.Background(), []model.VanityReservation{
		{PublicID: a.address, SecretMaterial: "garbage"},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Import(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	res, err := svc.Import(context.Background(), []model.VanityReservation{
		{PublicID: a.address, SecretMaterial: a.secret()},
		{PublicID: b.address, SecretMaterial: b.secret()},
		{PublicID: a.address, SecretMaterial: a.secret()},
	})
	require.NoError(t, err)
	assert.Equal(t, &model.VanityImportResponse{Imported: 2, Skipped: 1}, res)
}

func TestReleaseStale(t *testing.T) {
	store := db.NewMemory()
	svc := newTestVanity(t, store)
	seedPool(t, svc, 1)

	_, err := svc.Reserve(context.Background(), testUser())
	require.NoError(t, err)

	n, err := svc.ReleaseStale(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	svc.now = fixedClock(time.Now().Add(31 * time.Minute))
	n, err = svc.ReleaseStale(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	svc.reservationTTL = 0
	n, err = svc.ReleaseStale(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRunSweeperStopsOnCancel(t *testing.T) {
	svc := newTestVanity(t, db.NewMemory())
	svc.sweepInterval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.RunSweeper(ctx)
		close(done)
	}()
	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
