package engine

import "errors"

var (
	// ErrInvalidOrderParameters rejects orders with a non-positive quantity or
	// price, a blank symbol, or an unknown side. Nothing is recorded.
	ErrInvalidOrderParameters = errors.New("invalid order parameters")

	// ErrInsufficientShares rejects a sell when held shares for the symbol are
	// fewer than the requested quantity. No partial sell is created.
	ErrInsufficientShares = errors.New("insufficient shares to sell")

	// ErrCapacityExceeded is returned once the symbol registry is full and a
	// new symbol is requested.
	ErrCapacityExceeded = errors.New("symbol registry capacity exceeded")
)
