package domain

import "sort"

// Code identifies a currency. Comparison is exact and case-sensitive; a
// Code only means something once the registry has validated it.
type Code string

// Currency is the display metadata for a supported currency.
type Currency struct {
	Code   Code   `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Registry is the closed catalog of supported currencies. It is populated
// once at construction and exposes no mutation afterwards.
type Registry struct {
	currencies map[Code]Currency
}

// NewRegistry builds a registry from a catalog. Later entries with a
// duplicate code win, matching map semantics.
func NewRegistry(catalog []Currency) *Registry {
	m := make(map[Code]Currency, len(catalog))
	for _, c := range catalog {
		m[c.Code] = c
	}
	return &Registry{currencies: m}
}

// Supported reports whether code is in the catalog.
func (r *Registry) Supported(code Code) bool {
	_, ok := r.currencies[code]
	return ok
}

// Lookup returns the currency for code, if registered.
func (r *Registry) Lookup(code Code) (Currency, bool) {
	c, ok := r.currencies[code]
	return c, ok
}

// Codes returns all registered codes in sorted order, for display.
func (r *Registry) Codes() []Code {
	out := make([]Code, 0, len(r.currencies))
	for code := range r.currencies {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
