package orders

import "errors"

var (
	// ErrNotFound indicates the referenced order does not exist.
	ErrNotFound = errors.New("order not found")

	// ErrInvalidStatus indicates a status value outside the known set.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInvalidTransition indicates a transition the state machine forbids,
	// e.g. cancelling an order that is no longer PENDING.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDuplicateRequest indicates the supplied idempotency key was already used.
	ErrDuplicateRequest = errors.New("duplicate create request")
)
