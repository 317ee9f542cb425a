package service

import (
	"context"

	"inventra/internal/model"
	"inventra/internal/repository"
)

// TransactionService exposes inventory transaction domain operations.
type TransactionService interface {
	Create(ctx context.Context, txn *model.InventoryTransaction) (*model.InventoryTransaction, error)
	BulkCreate(ctx context.Context, txns []model.InventoryTransaction) ([]model.InventoryTransaction, error)
	Get(ctx context.Context, id string) (*model.InventoryTransaction, error)
	List(ctx context.Context) ([]model.InventoryTransaction, error)
	Update(ctx context.Context, id string, patch *model.InventoryTransactionPatch) (*model.InventoryTransaction, error)
	Delete(ctx context.Context, id string) error
}

type transactionService struct {
	repo repository.TransactionRepository
}

// NewTransactionService builds a TransactionService.
func NewTransactionService(repo repository.TransactionRepository) TransactionService {
	return &transactionService{repo: repo}
}

func (s *transactionService) Create(ctx context.Context, txn *model.InventoryTransaction) (*model.InventoryTransaction, error) {
	id, err := s.repo.Create(ctx, txn)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id.Hex())
}

func (s *transactionService) BulkCreate(ctx context.Context, txns []model.InventoryTransaction) ([]model.InventoryTransaction, error) {
	ids, err := s.repo.BulkCreate(ctx, txns)
	if err != nil {
		return nil, err
	}
	created := make([]model.InventoryTransaction, 0, len(ids))
	for _, id := range ids {
		txn, err := s.repo.FindByID(ctx, id.Hex())
		if err != nil {
			return nil, err
		}
		created = append(created, *txn)
	}
	return created, nil
}

func (s *transactionService) Get(ctx context.Context, id string) (*model.InventoryTransaction, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *transactionService) List(ctx context.Context) ([]model.InventoryTransaction, error) {
	return s.repo.List(ctx)
}

func (s *transactionService) Update(ctx context.Context, id string, patch *model.InventoryTransactionPatch) (*model.InventoryTransaction, error) {
	if _, err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *transactionService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
