package domain

import "errors"

// Failure taxonomy for the learn pipeline. Callers branch with errors.Is;
// infrastructure adapters wrap these sentinels with call-site context.
var (
	// ErrInvalidReference means the commit URL matched neither accepted
	// .../commit/<hex> nor .../commits/<hex> shape.
	ErrInvalidReference = errors.New("invalid commit reference")

	// ErrUpstreamUnavailable means the commit API answered with a
	// non-success status.
	ErrUpstreamUnavailable = errors.New("commit API unavailable")

	// ErrGenerationFailed means the model was unreachable, the credential
	// was missing, or the response could not be validated as a rule.
	ErrGenerationFailed = errors.New("rule generation failed")

	// ErrPersistenceFailed means a directory or artifact could not be
	// written. The pipeline never leaves a partial file behind.
	ErrPersistenceFailed = errors.New("rule persistence failed")
)
