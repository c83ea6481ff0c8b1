package domain

import "github.com/pkg/errors"

var (
	// ErrDataGap is returned when a SKU has no sales inside the requested window
	ErrDataGap = errors.New("no demand data for sku in window")

	// ErrEmptySeries is returned when a simulation is given no demand points
	ErrEmptySeries = errors.New("demand series is empty")

	// ErrEmptyHistory is returned when statistics are requested over no stock points
	ErrEmptyHistory = errors.New("stock history is empty")

	// ErrInvalidInput is returned for non-finite or out-of-range numeric input
	ErrInvalidInput = errors.New("invalid input")

	// ErrSKUNotFound is returned when the dataset has no inventory row for a SKU
	ErrSKUNotFound = errors.New("sku not found")

	// ErrRunNotFound is returned when a persisted simulation run does not exist
	ErrRunNotFound = errors.New("simulation run not found")
)
