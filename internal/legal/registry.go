package legal

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rgehrsitz/rtgo/internal/domain"
)

// DefaultFiscalYear is used when the caller does not pick a year
const DefaultFiscalYear = 2025

// Registry maps fiscal years to their legal constants
type Registry struct {
	mu    sync.RWMutex
	years map[int]*domain.LegalConstants
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{years: make(map[int]*domain.LegalConstants)}
}

// Default returns a registry holding every compiled-in year
func Default() *Registry {
	r := NewRegistry()
	for _, c := range []*domain.LegalConstants{Constants2024(), Constants2025()} {
		if err := r.Register(c); err != nil {
			panic(fmt.Sprintf("compiled-in constants for %d are invalid: %v", c.Metadata.FiscalYear, err))
		}
	}
	return r
}

// Register validates c and stores it under its metadata fiscal year, replacing any previous entry
func (r *Registry) Register(c *domain.LegalConstants) error {
	if c == nil {
		return fmt.Errorf("constants are nil")
	}
	if c.Metadata.FiscalYear <= 0 {
		return fmt.Errorf("constants have no fiscal year")
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("fiscal year %d: %w", c.Metadata.FiscalYear, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.years[c.Metadata.FiscalYear] = c
	return nil
}

// Get returns the constants for year
func (r *Registry) Get(year int) (*domain.LegalConstants, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.years[year]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownFiscalYear, year)
	}
	return c, nil
}

// Years lists the registered years in ascending order
func (r *Registry) Years() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	years := make([]int, 0, len(r.years))
	for y := range r.years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
