package engine

import "fmt"

// SymbolCapacity is the fixed number of ticker slots. The table never shrinks
// and never grows past this bound.
const SymbolCapacity = 1024

// SymbolRegistry assigns each distinct ticker a stable slot 0..1023 on first
// use. Registration order is a stable, observable property, so the table is a
// plain slice scanned linearly; the distinct-symbol count is capped at 1024 by
// construction, which keeps the scan cheap.
type SymbolRegistry struct {
	symbols []string
}

// NewSymbolRegistry creates an empty registry
func NewSymbolRegistry() *SymbolRegistry {
	return &SymbolRegistry{
		symbols: make([]string, 0, SymbolCapacity),
	}
}

// Resolve returns the slot for symbol, assigning the next free slot on first
// occurrence. The mapping is permanent. Fails with ErrCapacityExceeded once
// all slots are taken and a new symbol is requested.
func (r *SymbolRegistry) Resolve(symbol string) (int, error) {
	for i, s := range r.symbols {
		if s == symbol {
			return i, nil
		}
	}

	if len(r.symbols) >= SymbolCapacity {
		return -1, fmt.Errorf("cannot register %q: %w", symbol, ErrCapacityExceeded)
	}

	r.symbols = append(r.symbols, symbol)
	return len(r.symbols) - 1, nil
}

// Lookup returns the slot for an already-registered symbol without assigning
// one. Queries for unknown symbols must not consume slots.
func (r *SymbolRegistry) Lookup(symbol string) (int, bool) {
	for i, s := range r.symbols {
		if s == symbol {
			return i, true
		}
	}
	return -1, false
}

// Symbols returns all registered symbols in order of first registration.
func (r *SymbolRegistry) Symbols() []string {
	out := make([]string, len(r.symbols))
	copy(out, r.symbols)
	return out
}

// Count returns the number of registered symbols
func (r *SymbolRegistry) Count() int {
	return len(r.symbols)
}
