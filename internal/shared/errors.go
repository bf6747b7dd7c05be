package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrUnauthorized = fmt.Errorf("unauthorized")

	// Storage errors
	ErrTaskNotFound = fmt.Errorf("task not found")
	ErrStorage      = fmt.Errorf("storage failure")

	// API and scraper errors
	ErrAPIRequest    = fmt.Errorf("API request failed")
	ErrNoPlayerData  = fmt.Errorf("player data not found in page")
	ErrNoCaptions    = fmt.Errorf("no caption tracks found")
	ErrEmptyCaptions = fmt.Errorf("transcript empty after parsing")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
