// Package services provides the typed request layer over the MovieHub backend API.
package services

import (
	"errors"
	"fmt"
	"net/http"
)

// FaultKind classifies a failed backend interaction
type FaultKind int

// Fault kinds surfaced to callers
const (
	FaultConnectivity FaultKind = iota // no response at all
	FaultNotFound                      // 404
	FaultAuth                          // 401 / 403
	FaultServer                        // 5xx
	FaultValidation                    // other 4xx
)

// String returns a short name for the fault kind
func (k FaultKind) String() string {
	switch k {
	case FaultConnectivity:
		return "connectivity"
	case FaultNotFound:
		return "not_found"
	case FaultAuth:
		return "auth"
	case FaultServer:
		return "server"
	case FaultValidation:
		return "validation"
	}
	return "unknown"
}

// Fault is the normalized error returned for every failed request. StatusCode
// is 0 for connectivity faults; Message carries the backend-provided message
// when one was present.
type Fault struct {
	Kind       FaultKind
	StatusCode int
	Message    string
	Err        error
}

func (f *Fault) Error() string {
	if f.Message != "" {
		return fmt.Sprintf("%s fault: %s", f.Kind, f.Message)
	}
	if f.Err != nil {
		return fmt.Sprintf("%s fault: %v", f.Kind, f.Err)
	}
	return fmt.Sprintf("%s fault (status %d)", f.Kind, f.StatusCode)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// UserMessage returns a human-readable cause suitable for display, classified
// by kind rather than echoing the raw backend message.
func (f *Fault) UserMessage() string {
	switch f.Kind {
	case FaultConnectivity:
		return "Could not connect to server. Make sure the backend application is running."
	case FaultNotFound:
		return "The requested content could not be found."
	case FaultAuth:
		return "Authorization error. You may need to log in."
	case FaultServer:
		return "Server error occurred. Please try again later."
	default:
		return "The request was rejected. Check your input and try again."
	}
}

// HasKind reports whether err is a Fault of the given kind
func HasKind(err error, kind FaultKind) bool {
	var f *Fault
	return errors.As(err, &f) && f.Kind == kind
}

// AsFault extracts the Fault from err, if any
func AsFault(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// LoginRequired is returned for operations that need an active session, before
// any request is made.
func LoginRequired() *Fault {
	return &Fault{Kind: FaultAuth, Message: "login required"}
}

func classifyStatus(code int) FaultKind {
	switch {
	case code == http.StatusNotFound:
		return FaultNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return FaultAuth
	case code >= 500:
		return FaultServer
	default:
		return FaultValidation
	}
}
