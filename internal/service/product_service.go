package service

import (
	"context"
	"encoding/json"
	"time"

	"inventra/internal/cache"
	"inventra/internal/model"
	"inventra/internal/repository"
)

const (
	productCacheTTL = 5 * time.Minute
	metricsCacheTTL = time.Minute

	metricsCacheKey = "products:metrics"
)

// ProductService exposes product domain operations, including search,
// metrics, and sorted listing.
type ProductService interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	BulkCreate(ctx context.Context, ps []model.Product) ([]model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, id string, patch *model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter *model.ProductFilter) ([]model.Product, error)
	Metrics(ctx context.Context) (*model.ProductMetrics, error)
	Sorted(ctx context.Context, sortBy string, order, limit, skip int) ([]model.Product, error)
}

type productService struct {
	repo  repository.ProductRepository
	cache *cache.Client
}

// NewProductService builds a ProductService with repository and cache.
func NewProductService(repo repository.ProductRepository, cache *cache.Client) ProductService {
	return &productService{repo: repo, cache: cache}
}

func productCacheKey(id string) string {
	return "product:" + id
}

func (s *productService) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, metricsCacheKey)
	return s.repo.FindByID(ctx, id.Hex())
}

func (s *productService) BulkCreate(ctx context.Context, ps []model.Product) ([]model.Product, error) {
	ids, err := s.repo.BulkCreate(ctx, ps)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, metricsCacheKey)

	created := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.repo.FindByID(ctx, id.Hex())
		if err != nil {
			return nil, err
		}
		created = append(created, *p)
	}
	return created, nil
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	if data, _ := s.cache.Get(ctx, productCacheKey(id)); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(p); err == nil {
		_ = s.cache.Set(ctx, productCacheKey(id), payload, productCacheTTL)
	}
	return p, nil
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	return s.repo.List(ctx)
}

func (s *productService) Update(ctx context.Context, id string, patch *model.ProductPatch) (*model.Product, error) {
	if _, err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, productCacheKey(id), metricsCacheKey)
	return s.repo.FindByID(ctx, id)
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, productCacheKey(id), metricsCacheKey)
	return nil
}

func (s *productService) Search(ctx context.Context, filter *model.ProductFilter) ([]model.Product, error) {
	return s.repo.Search(ctx, filter)
}

func (s *productService) Metrics(ctx context.Context) (*model.ProductMetrics, error) {
	if data, _ := s.cache.Get(ctx, metricsCacheKey); data != nil {
		var cached model.ProductMetrics
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	metrics, err := s.repo.Metrics(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(metrics); err == nil {
		_ = s.cache.Set(ctx, metricsCacheKey, payload, metricsCacheTTL)
	}
	return metrics, nil
}

func (s *productService) Sorted(ctx context.Context, sortBy string, order, limit, skip int) ([]model.Product, error) {
	return s.repo.Sorted(ctx, sortBy, order, limit, skip)
}
