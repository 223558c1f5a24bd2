package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/dibella/orderdesk/internal/domain"
)

// fetchCatalog returns the product catalog, served from the cache while a
// fresh snapshot exists. Cache failures are logged and never fail the fetch.
func fetchCatalog(ctx context.Context, gw domain.OrderGateway, s settings) ([]domain.Product, error) {
	useCache := s.cache != nil && s.catalogTTL > 0

	if useCache {
		snap, err := s.cache.Load(s.cacheKey)
		switch {
		case err != nil:
			s.logger.Warn("catalog cache load failed", zap.Error(err))
		case snap != nil && !snap.IsStale(s.now(), s.catalogTTL):
			s.logger.Debug("catalog served from cache", zap.Int("products", len(snap.Products)))
			return snap.Products, nil
		}
	}

	products, err := gw.ListProducts(ctx)
	if err != nil {
		return nil, &domain.LoadError{Resource: "products", Err: err}
	}

	if useCache {
		snap := &domain.CatalogSnapshot{Key: s.cacheKey, FetchedAt: s.now(), Products: products}
		if err := s.cache.Save(snap); err != nil {
			s.logger.Warn("catalog cache save failed", zap.Error(err))
		}
	}
	return products, nil
}

// invalidateCatalog drops the cached snapshot, if caching is enabled.
func invalidateCatalog(s settings) {
	if s.cache == nil || s.catalogTTL <= 0 {
		return
	}
	if err := s.cache.Invalidate(s.cacheKey); err != nil {
		s.logger.Warn("catalog cache invalidate failed", zap.Error(err))
	}
}
