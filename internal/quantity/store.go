package quantity

import "sort"

// Store maps quantity names to scalar values.
type Store map[string]float64

func NewStore() Store {
	return make(Store)
}

// Get returns the value of name, or a *NotFoundError if the store does
// not define it.
func (s Store) Get(name string) (float64, error) {
	v, ok := s[name]
	if !ok {
		return 0, &NotFoundError{Name: name}
	}
	return v, nil
}

func (s Store) Set(name string, value float64) {
	s[name] = value
}

// Add accumulates value into name, treating a missing entry as zero.
// Differential modules write their rate contributions with Add so that
// several modules may share one output quantity.
func (s Store) Add(name string, value float64) {
	s[name] += value
}

func (s Store) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Select copies the named entries into a fresh Store, failing on the
// first name the store does not define.
func (s Store) Select(names ...string) (Store, error) {
	out := make(Store, len(names))
	for _, name := range names {
		v, ok := s[name]
		if !ok {
			return nil, &NotFoundError{Name: name}
		}
		out[name] = v
	}
	return out, nil
}

// Keys returns the quantity names in sorted order.
func (s Store) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s Store) Clone() Store {
	out := make(Store, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
