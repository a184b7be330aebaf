package generation

import "errors"

// Common errors returned by generation providers. None of these are retried
// by the core; retry is the caller's responsibility.
var (
	// ErrProviderUnavailable is returned when the provider client or model was
	// never initialized, typically because configuration or credentials were
	// missing at startup.
	ErrProviderUnavailable = errors.New("generation provider not available")

	// ErrProviderTimeout is returned when the provider call timed out or the
	// provider could not be reached.
	ErrProviderTimeout = errors.New("generation provider timed out or was unreachable")

	// ErrEmptyResult is returned when the provider call succeeded but produced
	// no content.
	ErrEmptyResult = errors.New("generation provider returned no content")

	// ErrProviderFailure is returned for any other provider-side failure; the
	// provider's message is wrapped and passed through.
	ErrProviderFailure = errors.New("generation provider call failed")

	// ErrInvalidSynthesisArgument is returned when the speech provider rejects
	// the request parameters (bad voice or model name). This is a client
	// error, not a server error.
	ErrInvalidSynthesisArgument = errors.New("invalid voice or model parameters")
)
