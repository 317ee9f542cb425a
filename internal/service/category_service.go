package service

import (
	"context"

	"inventra/internal/model"
	"inventra/internal/repository"
)

// CategoryService exposes category domain operations.
type CategoryService interface {
	Create(ctx context.Context, cat *model.Category) (*model.Category, error)
	BulkCreate(ctx context.Context, cats []model.Category) ([]model.Category, error)
	Get(ctx context.Context, id string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, id string, patch *model.CategoryPatch) (*model.Category, error)
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService builds a CategoryService.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, cat *model.Category) (*model.Category, error) {
	id, err := s.repo.Create(ctx, cat)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id.Hex())
}

func (s *categoryService) BulkCreate(ctx context.Context, cats []model.Category) ([]model.Category, error) {
	ids, err := s.repo.BulkCreate(ctx, cats)
	if err != nil {
		return nil, err
	}
	created := make([]model.Category, 0, len(ids))
	for _, id := range ids {
		cat, err := s.repo.FindByID(ctx, id.Hex())
		if err != nil {
			return nil, err
		}
		created = append(created, *cat)
	}
	return created, nil
}

func (s *categoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Update(ctx context.Context, id string, patch *model.CategoryPatch) (*model.Category, error) {
	if _, err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
