package adapter

import "errors"

var (
	// ErrUnexpectedStatus is returned for error statuses that have no
	// service counterpart.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrInvalidAddress is returned for a peer address that is not a URL.
	ErrInvalidAddress = errors.New("invalid peer address")
)
