// Package remote is the boundary to the catalog services. Every call
// returns the catalog envelope, and Unwrap turns it into data or one of
// two error kinds: a domain failure carrying the service's message, or a
// transport failure carrying a generic one.
package remote

import (
	"errors"

	"go.trai.ch/zerr"
)

// UnavailableMessage is shown to users for every transport failure.
const UnavailableMessage = "service unavailable, please try again"

const defaultDomainMessage = "request was rejected"

var (
	// ErrDomain is matched by every domain failure.
	ErrDomain = zerr.New("remote service rejected the request")

	// ErrTransport is matched by every transport failure.
	ErrTransport = zerr.New("remote service unreachable")
)

// Response is the envelope every catalog endpoint answers with.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// OK wraps data in a successful envelope.
func OK[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: data}
}

// Fail builds an unsuccessful envelope with the given message.
func Fail[T any](message string) Response[T] {
	return Response[T]{Message: message}
}

// DomainError is a call that completed with success=false.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap makes errors.Is(err, ErrDomain) hold.
func (e *DomainError) Unwrap() error {
	return ErrDomain
}

// Transport marks err as a transport failure.
func Transport(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTransport) {
		return err
	}
	return errors.Join(ErrTransport, err)
}

// Unwrap converts the outcome of a service call into data or a
// classified error.
func Unwrap[T any](resp Response[T], err error) (T, error) {
	var zero T
	if err != nil {
		var de *DomainError
		if errors.As(err, &de) {
			return zero, err
		}
		return zero, Transport(err)
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = defaultDomainMessage
		}
		return zero, &DomainError{Message: msg}
	}
	return resp.Data, nil
}

// Message renders err for users. Domain failures keep the service's
// message verbatim; everything else becomes UnavailableMessage.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return UnavailableMessage
}

// IsDomain reports whether err is a domain failure.
func IsDomain(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}
