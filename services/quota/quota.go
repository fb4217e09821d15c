// File: services/quota/quota.go
package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	tenantRepo "bookwise/database/repository/tenant"
	"bookwise/models"
)

// Decision is the outcome of one admission attempt. Reason is written
// for end users and accompanies every denial.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Limit   int    `json:"limit"`
	Reason  string `json:"reason,omitempty"`
}

// Usage is a point-in-time snapshot of a tenant's seat consumption.
type Usage struct {
	Plan      string `json:"plan"`
	Limit     int    `json:"limit"`
	Unlimited bool   `json:"unlimited"`
	Active    int    `json:"active"`
}

// Service enforces per-plan active-client seat limits. TryAcquire and
// Release are linearizable per tenant: the backing store's committed
// transactions totally order them, so concurrent acquisitions can never
// push a tenant past its limit.
type Service interface {
	// TryAcquire admits or rejects one seat. A false Decision with a nil
	// error is a definitive rejection; a non-nil error (including
	// ErrRetryable conflicts) means the outcome is unknown and the seat
	// was not consumed.
	TryAcquire(ctx context.Context, tenantID string) (Decision, error)
	// Release hands one seat back, reconciling against ground truth
	// rather than blindly decrementing.
	Release(ctx context.Context, tenantID string) error
	// GetUsage reports current consumption against the plan limit.
	GetUsage(ctx context.Context, tenantID string) (Usage, error)
}

// ErrRetryable wraps transaction conflicts that exhausted the retry
// budget. Callers should surface it as a transient failure, never as an
// admission.
var ErrRetryable = tenantRepo.ErrTxnConflict

// Sentinels used to abort the admission transaction on the two
// rejection paths; they never escape TryAcquire.
var (
	errLimitReached = errors.New("limit reached")
	errCASLost      = errors.New("seat counter changed concurrently")
)

const (
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 25 * time.Millisecond
)

// DefaultService is the concrete Service implementation. MaxAttempts
// and InitialBackoff bound the transaction retry loop; zero values take
// the defaults.
type DefaultService struct {
	Repo           tenantRepo.TenantRepository
	MaxAttempts    int
	InitialBackoff time.Duration
}

// TryAcquire runs one reconcile-then-CAS transaction:
//
//  1. Unlimited plans are admitted without counting.
//  2. The cached counter and the authoritative active-client count are
//     read in the same transaction snapshot, and the cache is healed
//     upward when it under-reports (a bare CAS without this step would
//     let a drifted counter oversell without bound).
//  3. At or past the limit the transaction aborts and the caller gets a
//     definitive rejection with a user-facing reason.
//  4. Otherwise the counter is incremented only if it still holds the
//     value just read. Losing that race is a rejection for this attempt,
//     not an internal retry; only whole-transaction transient conflicts
//     are retried, with backoff, before surfacing ErrRetryable.
func (s *DefaultService) TryAcquire(ctx context.Context, tenantID string) (Decision, error) {
	var decision Decision

	err := s.runTxnWithRetry(ctx, func(txCtx context.Context) error {
		tenant, err := s.Repo.GetByID(txCtx, tenantID)
		if err != nil {
			return err
		}

		limit, unlimited := models.PlanClientLimit(tenant.Plan)
		if unlimited {
			decision = Decision{Allowed: true, Limit: models.UnlimitedClients}
			return nil
		}

		authoritative, err := s.Repo.CountActiveClients(txCtx, tenantID)
		if err != nil {
			return err
		}

		current := tenant.ActiveClientCount
		if authoritative > current {
			current = authoritative
		}
		if current != tenant.ActiveClientCount {
			if err := s.Repo.SetActiveClientCount(txCtx, tenantID, current); err != nil {
				return err
			}
		}

		if current >= limit {
			decision = Decision{
				Allowed: false,
				Limit:   limit,
				Reason:  fmt.Sprintf("your %s plan allows up to %d active clients; archive a client or upgrade to add more", tenant.Plan, limit),
			}
			return errLimitReached
		}

		ok, err := s.Repo.CompareAndSwapActiveClientCount(txCtx, tenantID, current, current+1)
		if err != nil {
			return err
		}
		if !ok {
			decision = Decision{
				Allowed: false,
				Limit:   limit,
				Reason:  "another update raced this request; please try again",
			}
			return errCASLost
		}

		decision = Decision{Allowed: true, Limit: limit}
		return nil
	})

	if err != nil && !errors.Is(err, errLimitReached) && !errors.Is(err, errCASLost) {
		return Decision{}, err
	}
	return decision, nil
}

// Release recomputes the authoritative count and writes
// max(0, authoritative-1). The released client has usually already left
// the active state by the time this runs, so a blind decrement of the
// cache would drift; writing from ground truth cannot. A transient
// under-report here is harmless because TryAcquire reconciles upward
// before every decision.
func (s *DefaultService) Release(ctx context.Context, tenantID string) error {
	return s.runTxnWithRetry(ctx, func(txCtx context.Context) error {
		authoritative, err := s.Repo.CountActiveClients(txCtx, tenantID)
		if err != nil {
			return err
		}
		next := authoritative - 1
		if next < 0 {
			next = 0
		}
		return s.Repo.SetActiveClientCount(txCtx, tenantID, next)
	})
}

func (s *DefaultService) GetUsage(ctx context.Context, tenantID string) (Usage, error) {
	tenant, err := s.Repo.GetByID(ctx, tenantID)
	if err != nil {
		return Usage{}, err
	}
	active, err := s.Repo.CountActiveClients(ctx, tenantID)
	if err != nil {
		return Usage{}, err
	}
	limit, unlimited := models.PlanClientLimit(tenant.Plan)
	return Usage{Plan: tenant.Plan, Limit: limit, Unlimited: unlimited, Active: active}, nil
}

// runTxnWithRetry retries fn only on transient whole-transaction
// conflicts, doubling the backoff between attempts. The final conflict
// is returned as-is so callers can distinguish it from a rejection.
func (s *DefaultService) runTxnWithRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := s.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	backoff := s.InitialBackoff
	if backoff <= 0 {
		backoff = defaultInitialBackoff
	}

	var err error
	for i := 0; i < attempts; i++ {
		err = s.Repo.WithTransaction(ctx, fn)
		if err == nil || !errors.Is(err, tenantRepo.ErrTxnConflict) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}
	return err
}
