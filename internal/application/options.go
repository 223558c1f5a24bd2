package application

import (
	"time"

	"go.uber.org/zap"

	"github.com/dibella/orderdesk/internal/domain"
)

// settings are shared by OrderService and every Composer it creates.
type settings struct {
	logger         *zap.Logger
	cache          domain.CatalogCache
	cacheKey       string
	catalogTTL     time.Duration
	countTotalSlot bool
	now            func() time.Time
}

func newSettings(opts []Option) settings {
	s := settings{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures an OrderService or a Composer.
type Option func(*settings)

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalogCache reuses product catalogs stored under key for up to ttl.
// A zero ttl disables reuse; fetched catalogs are then never stored.
func WithCatalogCache(cache domain.CatalogCache, key string, ttl time.Duration) Option {
	return func(s *settings) {
		s.cache = cache
		s.cacheKey = key
		s.catalogTTL = ttl
	}
}

// WithTotalSlot selects the progress formula that counts the order total as
// an extra fillable slot.
func WithTotalSlot(enabled bool) Option {
	return func(s *settings) { s.countTotalSlot = enabled }
}

// WithClock replaces time.Now for cache freshness checks.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

func (s settings) progress(order domain.Order) float64 {
	if s.countTotalSlot {
		return domain.ProgressWithTotal(order.LineItems, order.TotalValue)
	}
	return domain.Progress(order.LineItems)
}
