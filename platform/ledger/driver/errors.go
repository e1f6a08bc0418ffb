/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package driver

import "fmt"

// TransportError reports a request that did not produce a usable response:
// connection failures, timeouts, malformed bodies
type TransportError struct {
	URL string
	Err error
}

func NewTransportError(url string, err error) *TransportError {
	return &TransportError{URL: url, Err: err}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure calling [%s]: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError reports a response with a non-success status
type ServerError struct {
	URL        string
	StatusCode int
	// Code and Message come from the error body, when the server sent one
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	if len(e.Code) == 0 && len(e.Message) == 0 {
		return fmt.Sprintf("server failure calling [%s]: status [%d]", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("server failure calling [%s]: status [%d], code [%s], message [%s]", e.URL, e.StatusCode, e.Code, e.Message)
}

// LogicError reports a broken contract between the streaming engine and a repository
type LogicError struct {
	Reason string
}

func NewLogicError(format string, args ...any) *LogicError {
	return &LogicError{Reason: fmt.Sprintf(format, args...)}
}

func (e *LogicError) Error() string {
	return "pagination invariant violated: " + e.Reason
}
