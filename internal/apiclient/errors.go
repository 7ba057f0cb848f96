package apiclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

var (
	// ErrEmptyResponse is returned when a JSON endpoint answers with no body.
	ErrEmptyResponse = errors.New("empty response body")
	// ErrUnknownFormat is returned for export formats other than docx and pdf.
	ErrUnknownFormat = errors.New("unknown export format")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Op     string
	Status int
	Detail string
	Body   []byte
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: backend returned %d", e.Op, e.Status)
}

// NotFound reports whether the backend answered 404.
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

func newAPIError(op string, status int, body []byte) *APIError {
	// FastAPI puts the reason in "detail"; validation errors make it an array.
	detail := gjson.GetBytes(body, "detail")
	msg := ""
	switch {
	case detail.Type == gjson.String:
		msg = detail.String()
	case detail.IsArray():
		msg = detail.Get("0.msg").String()
	}
	return &APIError{Op: op, Status: status, Detail: msg, Body: body}
}

// IsNotFound reports whether err carries a backend 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}
