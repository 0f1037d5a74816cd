package service

import (
	"context"

	"fleetops-backend/internal/domain"
	"fleetops-backend/internal/repository"
)

type auditService struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditService(auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) ListRecentActivity(ctx context.Context, limit int32) ([]domain.AuditEntry, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	return s.auditRepo.ListRecent(ctx, limit)
}
