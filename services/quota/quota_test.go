package quota

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tenantRepo "bookwise/database/repository/tenant"
	"bookwise/models"
)

// fakeTenantRepo emulates the store's transactional guarantees: a mutex
// serializes whole transactions (Mongo gives per-document serializable
// behavior for this workload) and writes inside a transaction stage
// against a snapshot that only commits when fn returns nil.
type fakeTenantRepo struct {
	mu sync.Mutex

	plan   string
	cached int // committed cached counter
	active int // authoritative active-client count

	staged int
	inTx   bool

	failNextCAS   bool
	conflictsLeft int
}

func (f *fakeTenantRepo) counter() int {
	if f.inTx {
		return f.staged
	}
	return f.cached
}

func (f *fakeTenantRepo) Create(ctx context.Context, tenant *models.Tenant) error { return nil }
func (f *fakeTenantRepo) Delete(ctx context.Context, id string) error             { return nil }

func (f *fakeTenantRepo) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	return &models.Tenant{ID: id, Plan: f.plan, ActiveClientCount: f.counter()}, nil
}

func (f *fakeTenantRepo) CountActiveClients(ctx context.Context, tenantID string) (int, error) {
	return f.active, nil
}

func (f *fakeTenantRepo) SetActiveClientCount(ctx context.Context, tenantID string, count int) error {
	if f.inTx {
		f.staged = count
	} else {
		f.cached = count
	}
	return nil
}

func (f *fakeTenantRepo) CompareAndSwapActiveClientCount(ctx context.Context, tenantID string, expected, next int) (bool, error) {
	if f.failNextCAS {
		f.failNextCAS = false
		return false, nil
	}
	if f.counter() != expected {
		return false, nil
	}
	if f.inTx {
		f.staged = next
	} else {
		f.cached = next
	}
	return true, nil
}

func (f *fakeTenantRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		return fmt.Errorf("%w: injected conflict", tenantRepo.ErrTxnConflict)
	}

	f.staged = f.cached
	f.inTx = true
	err := fn(ctx)
	if err == nil {
		f.cached = f.staged
	}
	f.inTx = false
	return err
}

func newQuotaService(repo *fakeTenantRepo) *DefaultService {
	return &DefaultService{Repo: repo, InitialBackoff: time.Millisecond}
}

func TestTryAcquireUnderLimit(t *testing.T) {
	repo := &fakeTenantRepo{plan: models.PlanStarter}
	svc := newQuotaService(repo)

	decision, err := svc.TryAcquire(context.Background(), "t1")

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 5, decision.Limit)
	assert.Equal(t, 1, repo.cached)
}

func TestTryAcquireAtLimitRejects(t *testing.T) {
	repo := &fakeTenantRepo{plan: models.PlanStarter, cached: 5, active: 5}
	svc := newQuotaService(repo)

	decision, err := svc.TryAcquire(context.Background(), "t1")

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 5, decision.Limit)
	assert.Contains(t, decision.Reason, "5")
	assert.Equal(t, 5, repo.cached, "rejection must not move the counter")
}

func TestTryAcquireSelfHealsStaleCache(t *testing.T) {
	// The cache under-reports: 0 cached but 3 truly active. The next
	// acquisition must reconcile upward before deciding.
	repo := &fakeTenantRepo{plan: models.PlanStarter, cached: 0, active: 3}
	svc := newQuotaService(repo)

	decision, err := svc.TryAcquire(context.Background(), "t1")

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 4, repo.cached, "healed to authoritative then incremented")
}

func TestTryAcquireNeverAdmitsPastTrueLimit(t *testing.T) {
	// Corrupted cache far below ground truth, tenant actually full.
	repo := &fakeTenantRepo{plan: models.PlanStarter, cached: 1, active: 5}
	svc := newQuotaService(repo)

	decision, err := svc.TryAcquire(context.Background(), "t1")

	require.NoError(t, err)
	assert.False(t, decision.Allowed, "stale cache must not oversell")
}

func TestTryAcquireUnlimitedPlanSkipsCounting(t *testing.T) {
	repo := &fakeTenantRepo{plan: models.PlanAdvanced, active: 100000}
	svc := newQuotaService(repo)

	decision, err := svc.TryAcquire(context.Background(), "t1")

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, models.UnlimitedClients, decision.Limit)
	assert.Zero(t, repo.cached)
}

func TestTryAcquireUnknownPlanGetsStarterLimit(t *testing.T) {
	repo := &fakeTenantRepo{plan: "enterprise", cached: 5, active: 5}
	svc := newQuotaService(repo)

	decision, err := svc.TryAcquire(context.Background(), "t1")

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 5, decision.Limit)
}

func TestTryAcquireLostCASIsRejectionNotError(t *testing.T) {
	repo := &fakeTenantRepo{plan: models.PlanBasic, failNextCAS: true}
	svc := newQuotaService(repo)

	decision, err := svc.TryAcquire(context.Background(), "t1")

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.NotEmpty(t, decision.Reason)
	assert.Zero(t, repo.cached)
}

func TestTryAcquireRetriesTransientConflicts(t *testing.T) {
	repo := &fakeTenantRepo{plan: models.PlanStarter, conflictsLeft: 2}
	svc := newQuotaService(repo)

	decision, err := svc.TryAcquire(context.Background(), "t1")

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 1, repo.cached)
}

func TestTryAcquireExhaustedRetriesSurfaceRetryable(t *testing.T) {
	repo := &fakeTenantRepo{plan: models.PlanStarter, conflictsLeft: 10}
	svc := newQuotaService(repo)

	decision, err := svc.TryAcquire(context.Background(), "t1")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetryable)
	assert.False(t, decision.Allowed, "an undecided outcome is never an admission")
	assert.Zero(t, repo.cached)
}

func TestTryAcquireHonorsContextCancellation(t *testing.T) {
	repo := &fakeTenantRepo{plan: models.PlanStarter, conflictsLeft: 10}
	svc := newQuotaService(repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.TryAcquire(ctx, "t1")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, repo.cached)
}

func TestConcurrentTryAcquireNeverOversells(t *testing.T) {
	// 50 goroutines race an empty starter counter (limit 5): exactly 5
	// may win, regardless of interleaving.
	repo := &fakeTenantRepo{plan: models.PlanStarter}
	svc := newQuotaService(repo)

	const callers = 50
	var wg sync.WaitGroup
	results := make(chan bool, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decision, err := svc.TryAcquire(context.Background(), "t1")
			assert.NoError(t, err)
			results <- decision.Allowed
		}()
	}
	wg.Wait()
	close(results)

	allowed := 0
	for ok := range results {
		if ok {
			allowed++
		}
	}
	assert.Equal(t, 5, allowed)
	assert.Equal(t, 5, repo.cached)
}

func TestReleaseReconcilesFromGroundTruth(t *testing.T) {
	// The archived client has already left the active state, so the
	// authoritative count is 4; Release writes 4-1, and the next
	// acquisition heals upward before deciding.
	repo := &fakeTenantRepo{plan: models.PlanStarter, cached: 5, active: 4}
	svc := newQuotaService(repo)

	require.NoError(t, svc.Release(context.Background(), "t1"))
	assert.Equal(t, 3, repo.cached)

	decision, err := svc.TryAcquire(context.Background(), "t1")
	require.NoError(t, err)
	assert.True(t, decision.Allowed, "a freed seat is acquirable again")
	assert.Equal(t, 5, repo.cached)
}

func TestReleaseNeverGoesNegative(t *testing.T) {
	repo := &fakeTenantRepo{plan: models.PlanStarter, cached: 0, active: 0}
	svc := newQuotaService(repo)

	require.NoError(t, svc.Release(context.Background(), "t1"))
	assert.Zero(t, repo.cached)
}

func TestGetUsage(t *testing.T) {
	repo := &fakeTenantRepo{plan: models.PlanBasic, cached: 7, active: 7}
	svc := newQuotaService(repo)

	usage, err := svc.GetUsage(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, Usage{Plan: models.PlanBasic, Limit: 20, Unlimited: false, Active: 7}, usage)
}
