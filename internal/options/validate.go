// Package options provides shared utilities for option validation across packages.
package options

import "github.com/erraggy/smdconv/smderrors"

// ValidateSingleInputSource ensures exactly one input source is specified.
// argument names the input in the returned error; sources is a variadic list
// of booleans indicating whether each source is set.
// Returns a *smderrors.MissingArgumentError when no source is set and a
// *smderrors.ConfigurationError when more than one is.
func ValidateSingleInputSource(argument, multiSourceMsg string, sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}

	if sourceCount == 0 {
		return &smderrors.MissingArgumentError{Argument: argument}
	}
	if sourceCount > 1 {
		return &smderrors.ConfigurationError{Option: argument, Message: multiSourceMsg}
	}

	return nil
}
