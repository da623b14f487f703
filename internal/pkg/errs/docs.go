// Package errs provides standardized error types for the discount and delivery backend.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The error types map onto the error taxonomy every layer understands:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation errors
//   - ActionIsForbiddenError: authorization errors (role or ownership lacks authority)
//   - StateConflictError: conflict errors (illegal transition, coupon already used)
//   - ObjectNotFoundError: not-found errors
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// Anything that does not unwrap to one of the sentinels is treated as transient by the
// transport layer and surfaced with a retry affordance.
package errs
