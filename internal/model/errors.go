package model

import "errors"

// Common errors used across the application
var (
	// Catalog errors
	ErrEmptyRegistry  = errors.New("no piece kinds registered")
	ErrNoFrames       = errors.New("piece kind has no rotation frames")
	ErrMalformedFrame = errors.New("malformed frame")
	ErrUnknownKind    = errors.New("unknown piece kind")

	// Storage errors
	ErrGameNotFound = errors.New("game not found")

	// Configuration errors
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrInvalidLookahead = errors.New("lookahead must be at least 1")
	ErrInvalidInterval  = errors.New("gravity interval must be positive")

	// Loop errors
	ErrDispatcherClosed = errors.New("dispatcher is closed")
	ErrUnknownCommand   = errors.New("unknown command")

	// Observer and handler errors
	ErrPanicked = errors.New("handler panicked")

	// Bot errors
	ErrUnknownStrategy = errors.New("unknown bot strategy")
)
