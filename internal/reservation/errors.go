package reservation

import "errors"

// Local validation errors. These are recovered in place and never reach
// the booking API.
var (
	ErrSeatUnavailable        = errors.New("seat is reserved or not selectable")
	ErrSelectionLimitExceeded = errors.New("selection limit exceeded")
	ErrNothingSelected        = errors.New("no seats selected")
	ErrSubmitInFlight         = errors.New("a submission is already in flight")
	ErrSessionClosed          = errors.New("reservation session is closed")
)

// Submission errors, classified once at the booking API boundary. Each maps
// to a distinct user-facing message and recovery action.
var (
	// ErrSeatsAlreadyTaken means another booking claimed one or more of the
	// requested seats after the reserved set was fetched. The caller should
	// refetch reserved seats and let the user reselect.
	ErrSeatsAlreadyTaken = errors.New("one or more seats were already taken")

	// ErrAuthenticationRequired means the bearer token is missing or was
	// rejected. The caller should redirect to sign-in.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrNetworkUnavailable covers transport failures and timeouts. The
	// caller may offer a manual retry; the submitter never retries on its
	// own because a blind resend risks a double booking.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrServerRejected covers every other rejection. Surfaced verbatim.
	ErrServerRejected = errors.New("server rejected the booking")
)
