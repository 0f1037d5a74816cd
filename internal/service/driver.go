package service

import (
	"context"
	"fmt"
	"strings"

	"fleetops-backend/internal/domain"
	"fleetops-backend/internal/repository"
)

type driverService struct {
	driverRepo repository.DriverRepository
}

func NewDriverService(driverRepo repository.DriverRepository) DriverService {
	return &driverService{driverRepo: driverRepo}
}

func (s *driverService) CreateDriver(ctx context.Context, actor domain.Actor, fullName, phone string) (*domain.Driver, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, fmt.Errorf("%w: driver name is required", domain.ErrValidation)
	}

	driver := &domain.Driver{
		FullName: fullName,
		Phone:    strings.TrimSpace(phone),
		Status:   domain.DriverStatusActive,
	}
	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

func (s *driverService) GetDriver(ctx context.Context, id int64) (*domain.Driver, error) {
	return s.driverRepo.GetByID(ctx, id)
}

func (s *driverService) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	return s.driverRepo.List(ctx)
}
