package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/masoo/money/internal/apperrors"
	"github.com/masoo/money/internal/core/domain"
	"github.com/masoo/money/internal/core/ports/repositories"
)

// CurrencyRegistry is the process-wide currency table. It owns two indices
// (canonical id to record, and ISO numeric code to canonical id) plus the
// insertion order of the primary index. All mutation happens under the write
// lock as one transaction against both indices, so readers never observe a
// record present in one index but missing from the other. Lookups take the
// read lock and are safe to call concurrently with mutation.
type CurrencyRegistry struct {
	mu      sync.RWMutex
	source  repositories.CurrencySource
	records map[string]*domain.CurrencyRecord
	numeric map[int]string
	order   []string
}

// NewCurrencyRegistry constructs a registry and seeds it from source.
func NewCurrencyRegistry(ctx context.Context, source repositories.CurrencySource) (*CurrencyRegistry, error) {
	r := &CurrencyRegistry{source: source}
	if err := r.Reset(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed currency registry: %w", err)
	}
	return r, nil
}

// Resolve implements domain.CurrencyResolver. Handles dereference through
// this, so they always observe the latest registered record.
func (r *CurrencyRegistry) Resolve(id string) (*domain.CurrencyRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	return rec, ok
}

// Find resolves an identifier to a handle. Unknown identifiers report false;
// Find never fails, whatever the input.
func (r *CurrencyRegistry) Find(identifier string) (domain.Currency, bool) {
	key := domain.NormalizeCode(identifier)
	r.mu.RLock()
	_, ok := r.records[key]
	r.mu.RUnlock()
	if !ok {
		return domain.Currency{}, false
	}
	return domain.NewCurrency(key, r), true
}

// FindByISONumeric resolves an ISO numeric code (int or numeric string) via
// the secondary index. Malformed or unassigned codes report false.
func (r *CurrencyRegistry) FindByISONumeric(num any) (domain.Currency, bool) {
	n, ok := domain.NormalizeNumeric(num)
	if !ok {
		return domain.Currency{}, false
	}
	r.mu.RLock()
	key, ok := r.numeric[n]
	r.mu.RUnlock()
	if !ok {
		return domain.Currency{}, false
	}
	return domain.NewCurrency(key, r), true
}

// Wrap coerces a value into a handle. A handle passes through untouched, nil
// yields the zero handle, and a string identifier is resolved via Find. Wrap
// is used where a valid currency is assumed to exist, so a failed resolution
// is a hard ErrUnknownCurrency rather than a soft miss.
func (r *CurrencyRegistry) Wrap(value any) (domain.Currency, error) {
	switch v := value.(type) {
	case nil:
		return domain.Currency{}, nil
	case domain.Currency:
		return v, nil
	case string:
		if c, ok := r.Find(v); ok {
			return c, nil
		}
		return domain.Currency{}, apperrors.NewUnknownCurrency(v)
	default:
		return domain.Currency{}, apperrors.NewUnknownCurrency(fmt.Sprintf("%v", value))
	}
}

// Register validates the attribute bag, builds a record and installs it in
// both indices. Re-registering an existing id replaces its record in place,
// keeping the original registration order slot, and rewrites the numeric
// index to match the new attributes.
func (r *CurrencyRegistry) Register(attrs domain.CurrencyAttributes) (domain.Currency, error) {
	rec, err := domain.NewCurrencyRecord(attrs)
	if err != nil {
		return domain.Currency{}, fmt.Errorf("failed to register currency: %w", err)
	}

	r.mu.Lock()
	r.installLocked(rec)
	r.mu.Unlock()

	return domain.NewCurrency(rec.ID, r), nil
}

// Inherit resolves the parent, overlays attrs on a copy of the parent's full
// attribute set and registers the result as an ordinary record. There is no
// lasting link to the parent.
func (r *CurrencyRegistry) Inherit(parentCode string, attrs domain.CurrencyAttributes) (domain.Currency, error) {
	parent, ok := r.Find(parentCode)
	if !ok {
		return domain.Currency{}, apperrors.NewUnknownCurrency(parentCode)
	}
	parentRec, ok := parent.Record()
	if !ok {
		return domain.Currency{}, apperrors.NewUnknownCurrency(parentCode)
	}
	return r.Register(attrs.Merge(parentRec.Attributes()))
}

// Unregister removes a record addressed by identifier, handle or attribute
// bag. Removal is atomic across both indices. Absence is not an error: the
// boolean reports whether anything was removed.
func (r *CurrencyRegistry) Unregister(value any) bool {
	key := unregisterKey(value)
	if key == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[key]
	if !ok {
		return false
	}
	delete(r.records, key)
	if rec.ISONumeric != nil {
		r.releaseNumericLocked(*rec.ISONumeric, key)
	}
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns a handle for every live record in registration order (the
// insertion order of the table, not priority order).
func (r *CurrencyRegistry) All() []domain.Currency {
	r.mu.RLock()
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	r.mu.RUnlock()

	out := make([]domain.Currency, len(keys))
	for i, k := range keys {
		out[i] = domain.NewCurrency(k, r)
	}
	return out
}

// Count returns the number of live records.
func (r *CurrencyRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Reset rebuilds the table from the seed source, discarding every runtime
// registration and unregistration. The rebuilt table is swapped in under the
// write lock, so readers see either the old state or the fully reseeded one.
func (r *CurrencyRegistry) Reset(ctx context.Context) error {
	seed, err := r.source.LoadCurrencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to load currency seed data: %w", err)
	}

	fresh := &CurrencyRegistry{
		records: make(map[string]*domain.CurrencyRecord, len(seed)),
		numeric: make(map[int]string, len(seed)),
		order:   make([]string, 0, len(seed)),
	}
	for _, attrs := range seed {
		rec, err := domain.NewCurrencyRecord(attrs)
		if err != nil {
			return fmt.Errorf("invalid seed record %q: %w", attrs.ID, err)
		}
		fresh.installLocked(rec)
	}

	r.mu.Lock()
	r.records = fresh.records
	r.numeric = fresh.numeric
	r.order = fresh.order
	r.mu.Unlock()
	return nil
}

// installLocked writes a record into both indices. Caller holds the write
// lock (or owns the registry exclusively, as during Reset's rebuild).
func (r *CurrencyRegistry) installLocked(rec *domain.CurrencyRecord) {
	prev, replacing := r.records[rec.ID]
	r.records[rec.ID] = rec

	if replacing {
		// The replaced record's numeric slot is released unless the new
		// attributes keep the same code.
		if prev.ISONumeric != nil && (rec.ISONumeric == nil || *rec.ISONumeric != *prev.ISONumeric) {
			r.releaseNumericLocked(*prev.ISONumeric, rec.ID)
		}
	} else {
		r.order = append(r.order, rec.ID)
	}
	if rec.ISONumeric != nil {
		// Last writer wins on numeric code collisions.
		r.numeric[*rec.ISONumeric] = rec.ID
	}
}

// releaseNumericLocked frees a numeric slot held by excluded and hands it to
// the earliest-registered live record that still claims the code, if any.
// This keeps the invariant that every live record's numeric code resolves to
// a live record even after its index slot was taken over and released again.
func (r *CurrencyRegistry) releaseNumericLocked(n int, excluded string) {
	if owner, ok := r.numeric[n]; !ok || owner != excluded {
		return
	}
	delete(r.numeric, n)
	for _, key := range r.order {
		if key == excluded {
			continue
		}
		if rec, ok := r.records[key]; ok && rec.ISONumeric != nil && *rec.ISONumeric == n {
			r.numeric[n] = key
			return
		}
	}
}

// unregisterKey extracts a canonical key from the accepted argument shapes.
func unregisterKey(value any) string {
	switch v := value.(type) {
	case string:
		return domain.NormalizeCode(v)
	case domain.Currency:
		return v.Key()
	case domain.CurrencyAttributes:
		if v.ID != "" {
			return domain.NormalizeCode(v.ID)
		}
		if v.ISOCode != nil {
			return domain.NormalizeCode(*v.ISOCode)
		}
		return ""
	case *domain.CurrencyAttributes:
		if v == nil {
			return ""
		}
		return unregisterKey(*v)
	default:
		return ""
	}
}
