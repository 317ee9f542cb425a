package service

import (
	"context"

	"inventra/internal/model"
	"inventra/internal/repository"
)

// SupplierService exposes supplier domain operations.
type SupplierService interface {
	Create(ctx context.Context, sup *model.Supplier) (*model.Supplier, error)
	BulkCreate(ctx context.Context, sups []model.Supplier) ([]model.Supplier, error)
	Get(ctx context.Context, id string) (*model.Supplier, error)
	List(ctx context.Context) ([]model.Supplier, error)
	Update(ctx context.Context, id string, patch *model.SupplierPatch) (*model.Supplier, error)
	Delete(ctx context.Context, id string) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

// NewSupplierService builds a SupplierService.
func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) Create(ctx context.Context, sup *model.Supplier) (*model.Supplier, error) {
	id, err := s.repo.Create(ctx, sup)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id.Hex())
}

func (s *supplierService) BulkCreate(ctx context.Context, sups []model.Supplier) ([]model.Supplier, error) {
	ids, err := s.repo.BulkCreate(ctx, sups)
	if err != nil {
		return nil, err
	}
	created := make([]model.Supplier, 0, len(ids))
	for _, id := range ids {
		sup, err := s.repo.FindByID(ctx, id.Hex())
		if err != nil {
			return nil, err
		}
		created = append(created, *sup)
	}
	return created, nil
}

func (s *supplierService) Get(ctx context.Context, id string) (*model.Supplier, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *supplierService) List(ctx context.Context) ([]model.Supplier, error) {
	return s.repo.List(ctx)
}

func (s *supplierService) Update(ctx context.Context, id string, patch *model.SupplierPatch) (*model.Supplier, error) {
	if _, err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *supplierService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
