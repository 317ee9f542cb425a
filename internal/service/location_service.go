package service

import (
	"context"

	"inventra/internal/model"
	"inventra/internal/repository"
)

// LocationService exposes location domain operations.
type LocationService interface {
	Create(ctx context.Context, loc *model.Location) (*model.Location, error)
	BulkCreate(ctx context.Context, locs []model.Location) ([]model.Location, error)
	Get(ctx context.Context, id string) (*model.Location, error)
	List(ctx context.Context) ([]model.Location, error)
	Update(ctx context.Context, id string, patch *model.LocationPatch) (*model.Location, error)
	Delete(ctx context.Context, id string) error
}

type locationService struct {
	repo repository.LocationRepository
}

// NewLocationService builds a LocationService.
func NewLocationService(repo repository.LocationRepository) LocationService {
	return &locationService{repo: repo}
}

// Create inserts the location and re-reads it so the response carries the
// assigned id and timestamps.
func (s *locationService) Create(ctx context.Context, loc *model.Location) (*model.Location, error) {
	id, err := s.repo.Create(ctx, loc)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id.Hex())
}

func (s *locationService) BulkCreate(ctx context.Context, locs []model.Location) ([]model.Location, error) {
	ids, err := s.repo.BulkCreate(ctx, locs)
	if err != nil {
		return nil, err
	}
	created := make([]model.Location, 0, len(ids))
	for _, id := range ids {
		loc, err := s.repo.FindByID(ctx, id.Hex())
		if err != nil {
			return nil, err
		}
		created = append(created, *loc)
	}
	return created, nil
}

func (s *locationService) Get(ctx context.Context, id string) (*model.Location, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *locationService) List(ctx context.Context) ([]model.Location, error) {
	return s.repo.List(ctx)
}

func (s *locationService) Update(ctx context.Context, id string, patch *model.LocationPatch) (*model.Location, error) {
	if _, err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *locationService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
