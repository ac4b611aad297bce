package trainer

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrNoTargets      = errors.New("no targets")
	ErrInvalidOptions = errors.New("invalid options")
)
