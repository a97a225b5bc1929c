package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/tunes/internal/shared"
)

// ErrorKind classifies catalog failures for consumers.
type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindHTTPStatus
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindHTTPStatus:
		return "http_status"
	case KindDecode:
		return "decode"
	default:
		return "transport"
	}
}

// TransportError reports a network failure, a timeout, or a cancelled call.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string   { return fmt.Sprintf("transport error: %v", e.Err) }
func (e *TransportError) Unwrap() []error { return []error{shared.ErrAPIRequest, e.Err} }
func (e *TransportError) Kind() ErrorKind { return KindTransport }

// HTTPStatusError reports a response whose status was not 200.
type HTTPStatusError struct {
	Code int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}
func (e *HTTPStatusError) Unwrap() error   { return shared.ErrAPIRequest }
func (e *HTTPStatusError) Kind() ErrorKind { return KindHTTPStatus }

// DecodeError reports a payload that does not match the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string   { return fmt.Sprintf("failed to decode response: %v", e.Err) }
func (e *DecodeError) Unwrap() []error { return []error{shared.ErrAPIRequest, e.Err} }
func (e *DecodeError) Kind() ErrorKind { return KindDecode }

// KindOf classifies err. Errors outside the taxonomy count as transport failures.
func KindOf(err error) ErrorKind {
	var kinded interface{ Kind() ErrorKind }
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return KindTransport
}

// IsCanceled reports whether err stems from a cancelled call.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// UserMessage renders err as a short notice for the error collaborator.
func UserMessage(err error) string {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("%d %s", statusErr.Code, strings.ToLower(http.StatusText(statusErr.Code)))
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return "can't decode data"
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return fmt.Sprintf("network error: %v", transportErr.Err)
	}

	return err.Error()
}
