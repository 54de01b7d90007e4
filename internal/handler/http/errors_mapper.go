package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pim-sync/internal/service"
)

type errorStatus struct {
	err    error
	status int
}

// errorStatuses is checked in order: a joined error carrying several
// sentinels gets the status of the first one listed.
var errorStatuses = []errorStatus{
	{ErrInvalidRequestBody, http.StatusBadRequest},
	{service.ErrDecode, http.StatusBadRequest},
	{service.ErrUnknownCollection, http.StatusNotFound},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrInvalidSessionState, http.StatusConflict},
	{service.ErrUnsupportedOperation, http.StatusUnprocessableEntity},
	{service.ErrStoreUnavailable, http.StatusServiceUnavailable},
	{service.ErrPersistence, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			return es.status
		}
	}
	return http.StatusInternalServerError
}
