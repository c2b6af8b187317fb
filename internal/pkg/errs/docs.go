// Package errs provides standardized error types for the order service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error kind follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The kinds map directly to the failure taxonomy of the service:
//   - ValueIsRequired / ValueIsInvalid / ValueIsOutOfRange: malformed value
//     objects, rejected at construction time
//   - InvalidStateTransition: status change not permitted by a state machine
//   - ObjectNotFound: unknown order, line, or external reference
//   - Conflict: duplicate business identifier on creation
//   - VersionIsInvalid: lost optimistic-concurrency race on update
//   - Processing: event-handling failure that should be retried
//
// Transport adapters classify errors with errors.Is against the sentinels
// and translate them into stable external status signals.
package errs
