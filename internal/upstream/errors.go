// Package upstream holds what the rate, news and chat clients share: the
// HTTP doer they call through and the typed error they return.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Kind separates failures that never reached the provider from failures the
// provider reported.
type Kind int

const (
	// Transport covers timeouts, DNS failures and refused connections.
	Transport Kind = iota + 1
	// Protocol covers non-2xx statuses and payloads missing expected fields.
	Protocol
)

func (k Kind) String() string {
	switch k {
	case Transport:
		return "transport"
	case Protocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// Error is the failure variant every upstream wrapper returns.
type Error struct {
	Kind     Kind
	Provider string
	// Status is the HTTP status, zero for transport errors.
	Status int
	// Message is the provider's own error text when it sent one.
	Message string
	// Timeout is set when a transport error was a deadline.
	Timeout bool
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == Transport:
		return fmt.Sprintf("%s: request failed: %v", e.Provider, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// TransportError wraps a failure that happened before any response arrived.
func TransportError(provider string, err error) *Error {
	e := &Error{
		Kind:     Transport,
		Provider: provider,
		Err:      err,
		Timeout:  errors.Is(err, context.DeadlineExceeded),
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		e.Timeout = e.Timeout || urlErr.Timeout()
		// The request URL can carry an API key; keep only the cause.
		e.Err = urlErr.Err
	}

	return e
}

// ProtocolError reports a response that could not be used.
func ProtocolError(provider string, status int, message string) *Error {
	return &Error{
		Kind:     Protocol,
		Provider: provider,
		Status:   status,
		Message:  message,
	}
}

// Describe renders err as the reason part of a chat reply.
func Describe(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	switch {
	case e.Kind == Transport && e.Timeout:
		return fmt.Sprintf("сервис %s не ответил вовремя", e.Provider)
	case e.Kind == Transport:
		return fmt.Sprintf("нет связи с сервисом %s (%v)", e.Provider, e.Err)
	case e.Status != 0 && e.Status != http.StatusOK:
		return fmt.Sprintf("сервис %s ответил %d: %s", e.Provider, e.Status, e.Message)
	default:
		return fmt.Sprintf("сервис %s: %s", e.Provider, e.Message)
	}
}
