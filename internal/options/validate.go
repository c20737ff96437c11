// Package options holds validation helpers shared by the functional
// options of the public packages.
package options

import (
	"errors"

	"github.com/souhailaS/apistic/oaserrors"
)

// ValidateSingleInputSource returns an error unless exactly one of sources
// is true. noSourceMsg and multiSourceMsg are used as the error text.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}
	switch {
	case count == 0:
		return errors.New(noSourceMsg)
	case count > 1:
		return errors.New(multiSourceMsg)
	}
	return nil
}

// NonNegative returns a ConfigError when value is below zero.
func NonNegative(option string, value int) error {
	if value < 0 {
		return &oaserrors.ConfigError{Option: option, Value: value, Message: "must not be negative"}
	}
	return nil
}

// Positive returns a ConfigError when value is below one.
func Positive(option string, value int) error {
	if value < 1 {
		return &oaserrors.ConfigError{Option: option, Value: value, Message: "must be positive"}
	}
	return nil
}
