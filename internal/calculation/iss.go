package calculation

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// ISSLookup returns the monthly ISS-fixo owed per partner of a uniprofessional society
// in a municipality. The second value is false when the municipality is unknown.
type ISSLookup interface {
	FixedISSPerPartner(municipality string) (decimal.Decimal, bool)
}

// StaticISSLookup is an in-memory ISSLookup keyed by municipality name, case-insensitive
type StaticISSLookup struct {
	mu      sync.RWMutex
	amounts map[string]decimal.Decimal
}

// NewStaticISSLookup creates a lookup from a municipality -> amount map
func NewStaticISSLookup(amounts map[string]decimal.Decimal) *StaticISSLookup {
	l := &StaticISSLookup{amounts: make(map[string]decimal.Decimal, len(amounts))}
	for k, v := range amounts {
		l.amounts[normalizeMunicipality(k)] = v
	}
	return l
}

// Set adds or replaces one municipality
func (l *StaticISSLookup) Set(municipality string, amount decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.amounts[normalizeMunicipality(municipality)] = amount
}

// FixedISSPerPartner implements ISSLookup
func (l *StaticISSLookup) FixedISSPerPartner(municipality string) (decimal.Decimal, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.amounts[normalizeMunicipality(municipality)]
	return v, ok
}

func normalizeMunicipality(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
