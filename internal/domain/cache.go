package domain

import "time"

// CatalogSnapshot is a product catalog fetched from one gateway at one time.
type CatalogSnapshot struct {
	Key       string    `json:"key"`
	FetchedAt time.Time `json:"fetched_at"`
	Products  []Product `json:"products"`
}

// IsStale reports whether the snapshot is older than ttl at now. A
// non-positive ttl makes every snapshot stale.
func (s *CatalogSnapshot) IsStale(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return true
	}
	return now.Sub(s.FetchedAt) >= ttl
}
