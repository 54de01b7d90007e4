package service

import "errors"

// Errors reported by sessions. The transport maps each of them to a status
// so a peer can tell them apart.
var (
	// ErrStoreUnavailable is returned when the external store cannot be
	// opened or fails while being read or written.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrDecode is returned by Commit when a change payload cannot be
	// parsed.
	ErrDecode = errors.New("change payload cannot be decoded")

	// ErrNotFound is returned by Commit when a deletion targets an item the
	// store does not hold.
	ErrNotFound = errors.New("item not found")

	// ErrUnsupportedOperation is returned by Commit for change kinds that
	// cannot be applied.
	ErrUnsupportedOperation = errors.New("unsupported change operation")

	// ErrPersistence is returned when the state table or the anchor cannot
	// be read or written.
	ErrPersistence = errors.New("sync state persistence failed")

	// ErrInvalidSessionState is returned when a session step is invoked out
	// of order.
	ErrInvalidSessionState = errors.New("invalid session state")

	// ErrUnknownCollection is returned for collections that are not
	// configured.
	ErrUnknownCollection = errors.New("unknown collection")
)

// ErrVersionIsNotSpecified is returned when the application version is not
// configured.
var ErrVersionIsNotSpecified = errors.New("app version is not specified")
