// Package plan holds the float-plan computation core: float/drive time
// estimation, plan assembly, and share-code allocation.
package plan

import "errors"

// Error sentinels for the plan core. Handlers map these onto HTTP
// status codes with errors.Is.
var (
	// ErrValidation marks malformed input: bad geometry, missing ids,
	// unknown codes. Rejected before any work happens.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing river, access point, vessel, or
	// shared plan.
	ErrNotFound = errors.New("not found")

	// ErrUpstreamUnavailable marks a routing or gauge collaborator
	// failure. The gauge degrades to an unknown condition; routing
	// fails the whole plan.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrAllocationExhausted is returned when share-code generation
	// keeps colliding past the retry bound. Retryable by the caller.
	ErrAllocationExhausted = errors.New("share code allocation exhausted")

	// ErrDuplicateCode is returned by a SharedPlanStore insert that hit
	// the code uniqueness constraint. The allocator retries on it.
	ErrDuplicateCode = errors.New("share code already exists")
)
