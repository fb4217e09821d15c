// File: services/client/client.go
package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	clientRepo "bookwise/database/repository/client"
	"bookwise/models"
	"bookwise/services/quota"
	"bookwise/utils"
)

// Service manages client lifecycle. Every transition into the active
// state goes through the quota allocator first, and every transition
// out of it releases the seat.
type Service interface {
	CreateClient(ctx context.Context, tenantID string, client models.Client) (*models.Client, *quota.Decision, error)
	GetClient(ctx context.Context, tenantID, clientID string) (*models.Client, error)
	ListClients(ctx context.Context, tenantID, status string) ([]models.Client, error)
	ArchiveClient(ctx context.Context, tenantID, clientID string) error
	DeleteClient(ctx context.Context, tenantID, clientID string) error
}

// DefaultService is the concrete Service implementation.
type DefaultService struct {
	Repo  clientRepo.ClientRepository
	Quota quota.Service
}

// CreateClient admits the new client against the tenant's plan quota
// and, only if admitted, persists it as active. A denied Decision comes
// back with a nil error; the caller turns it into an "upgrade your
// plan" response. If the insert fails after admission the seat is
// handed back so the counter does not leak.
func (s *DefaultService) CreateClient(ctx context.Context, tenantID string, client models.Client) (*models.Client, *quota.Decision, error) {
	decision, err := s.Quota.TryAcquire(ctx, tenantID)
	if err != nil {
		return nil, nil, fmt.Errorf("quota check failed: %w", err)
	}
	if !decision.Allowed {
		return nil, &decision, nil
	}

	client.TenantID = tenantID
	client.Status = models.ClientActive
	if err := s.Repo.Create(ctx, &client); err != nil {
		if relErr := s.Quota.Release(ctx, tenantID); relErr != nil {
			utils.GetLogger().Error("failed to release seat after aborted client create",
				zap.String("tenantId", tenantID), zap.Error(relErr))
		}
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &client, &decision, nil
}

func (s *DefaultService) GetClient(ctx context.Context, tenantID, clientID string) (*models.Client, error) {
	return s.Repo.GetByID(ctx, tenantID, clientID)
}

func (s *DefaultService) ListClients(ctx context.Context, tenantID, status string) ([]models.Client, error) {
	return s.Repo.ListByTenant(ctx, tenantID, status)
}

// ArchiveClient flips the client out of the active state, then releases
// its seat. Release runs after the flip so the reconciling write sees
// ground truth that already excludes this client. Archiving an already
// archived client is a no-op.
func (s *DefaultService) ArchiveClient(ctx context.Context, tenantID, clientID string) error {
	existing, err := s.Repo.GetByID(ctx, tenantID, clientID)
	if err != nil {
		return err
	}
	if existing.Status == models.ClientArchived {
		return nil
	}

	if err := s.Repo.SetStatus(ctx, tenantID, clientID, models.ClientArchived); err != nil {
		return err
	}
	if err := s.Quota.Release(ctx, tenantID); err != nil {
		return fmt.Errorf("client archived but seat release failed: %w", err)
	}
	return nil
}

// DeleteClient removes the client record, releasing its seat when the
// client was still active.
func (s *DefaultService) DeleteClient(ctx context.Context, tenantID, clientID string) error {
	existing, err := s.Repo.GetByID(ctx, tenantID, clientID)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, tenantID, clientID); err != nil {
		return err
	}
	if existing.Status == models.ClientActive {
		if err := s.Quota.Release(ctx, tenantID); err != nil {
			return fmt.Errorf("client deleted but seat release failed: %w", err)
		}
	}
	return nil
}
