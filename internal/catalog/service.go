// Package catalog is the read path for product data: a cache plus
// request-deduplicated fetches in front of the inventory API.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/linkon63/neocomerze/internal/cache"
	"github.com/linkon63/neocomerze/internal/domain"
)

// Fetcher is the slice of the inventory client the catalog reads from.
type Fetcher interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id int64) (*domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Campaigns(ctx context.Context) ([]domain.Campaign, error)
	GeneralInfo(ctx context.Context) (*domain.GeneralInfo, error)
}

type Service struct {
	fetcher Fetcher
	cache   cache.ProductCache
	sfg     singleflight.Group // Prevents cache stampede
}

func NewService(fetcher Fetcher, productCache cache.ProductCache) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   productCache,
	}
}

func (s *Service) Product(ctx context.Context, id int64) (*domain.Product, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(fmt.Sprintf("product:%d", id), func() (interface{}, error) {
		product, err := s.cache.GetProduct(ctx, id)
		if err == nil {
			return product, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		product, errGet := s.fetcher.Product(ctx, id)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.SetProduct(context.Background(), product); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return product, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Product), nil
}

func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		products, err := s.cache.GetProducts(ctx)
		if err == nil {
			return products, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err)
		}

		products, errGet := s.fetcher.Products(ctx)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.SetProducts(context.Background(), products); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return products, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]domain.Product), nil
}

// Categories, campaigns and general info are small and change rarely;
// they go straight to the API.

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.fetcher.Categories(ctx)
}

func (s *Service) Campaigns(ctx context.Context) ([]domain.Campaign, error) {
	return s.fetcher.Campaigns(ctx)
}

func (s *Service) GeneralInfo(ctx context.Context) (*domain.GeneralInfo, error) {
	return s.fetcher.GeneralInfo(ctx)
}
