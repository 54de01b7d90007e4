package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-pim-sync/internal/service"
	"github.com/MKhiriev/go-pim-sync/internal/utils"
	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := errorMessage(resp.Body())
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", service.ErrDecode, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", service.ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", service.ErrInvalidSessionState, body)
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", service.ErrUnsupportedOperation, body)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", service.ErrStoreUnavailable, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", service.ErrPersistence, body)
	default:
		return fmt.Errorf("%w: http %d: %s", ErrUnexpectedStatus, resp.StatusCode(), body)
	}
}

// errorMessage extracts the message of a JSON error body, falling back to
// the raw body.
func errorMessage(body []byte) string {
	var response utils.ErrorResponse
	if err := json.Unmarshal(body, &response); err == nil && response.Error != "" {
		return response.Error
	}
	return strings.TrimSpace(string(body))
}
