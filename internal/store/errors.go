package store

import "errors"

// Sentinel errors returned by item stores and handles. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrItemNotFound is returned when Fetch or Delete targets an id the
	// store does not hold.
	ErrItemNotFound = errors.New("item was not found")

	// ErrUnsupportedKind is returned when a backend is asked for items of a
	// kind it does not keep.
	ErrUnsupportedKind = errors.New("item kind is not supported by this store")

	// ErrBackendClosed is returned by every operation on a backend after
	// Close.
	ErrBackendClosed = errors.New("store backend is closed")

	// ErrHandleNotAcquired is returned by Release when the handle holds no
	// references, which also guards the backend against a double close.
	ErrHandleNotAcquired = errors.New("store handle was not acquired")

	// ErrUnknownResource is returned by the registry for resources it was
	// not configured with.
	ErrUnknownResource = errors.New("unknown store resource")
)

// Low-level database operation errors. These are wrapped by the sqlite
// backend when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRows is returned when scanning result rows fails.
	ErrScanningRows = errors.New("failed to scan item rows")
)
