// Package cache provides pluggable byte caches and key derivation for
// pipeline results. Compliance reports and rendered diagrams are cached by
// content hash, so an unchanged project never pays for recalculation.
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached artifact kind. Reports are invalidated by content
// hash, so the TTLs only bound disk growth.
const (
	TTLReport  = 7 * 24 * time.Hour
	TTLDiagram = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys. Implementations must
// be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ReportKeyOpts captures every pipeline option that changes report
// content. Two runs with equal system hashes and equal opts produce
// byte-identical reports.
type ReportKeyOpts struct {
	CatalogHash string
	Optimize    bool
	Battery     bool
}

// Keyer derives cache keys for the pipeline's cacheable stages.
type Keyer interface {
	// ReportKey keys a compliance report by the system content hash and
	// the options that shape the report.
	ReportKey(systemHash string, opts ReportKeyOpts) string

	// DiagramKey keys a rendered circuit diagram by the circuit content
	// hash and output format.
	DiagramKey(circuitHash, format string) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ReportKey generates a key for report caching.
func (k *DefaultKeyer) ReportKey(systemHash string, opts ReportKeyOpts) string {
	return hashKey("report", systemHash, opts)
}

// DiagramKey generates a key for diagram caching.
func (k *DefaultKeyer) DiagramKey(circuitHash, format string) string {
	return hashKey("diagram", circuitHash, format)
}
