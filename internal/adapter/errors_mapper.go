package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-order-desk/models"
	"github.com/go-resty/resty/v2"
)

// mapHTTPError converts a non-2xx response to a sentinel error. When the body
// is a gateway JSON error it is wrapped as *models.APIError so callers can
// reach the field messages with errors.As.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	var sentinel error
	switch resp.StatusCode() {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		sentinel = ErrBadRequest
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrConflict
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		sentinel = ErrBadGateway
	case http.StatusInternalServerError:
		sentinel = ErrInternalServerError
	default:
		sentinel = fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode())
	}

	if apiErr := decodeAPIError(resp); apiErr != nil {
		return fmt.Errorf("%w: %w", sentinel, apiErr)
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("%w: %s", sentinel, body)
}

func decodeAPIError(resp *resty.Response) *models.APIError {
	body := resp.Body()
	if len(body) == 0 || body[0] != '{' {
		return nil
	}

	var apiErr models.APIError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return nil
	}
	if apiErr.Message == "" && len(apiErr.Errors) == 0 {
		return nil
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}
	if apiErr.Status == 0 {
		apiErr.Status = resp.StatusCode()
	}
	return &apiErr
}
