// Package apperr carries the service error taxonomy: a status the transport
// can map directly plus a caller-safe message and an optional wrapped cause
// that stays server-side.
package apperr

import "net/http"

type Error struct {
	Status int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func BadRequest(msg string) error { return &Error{Status: http.StatusBadRequest, Msg: msg} }
func NotFound(msg string) error   { return &Error{Status: http.StatusNotFound, Msg: msg} }

// Unavailable is a 500 whose message is safe to surface, e.g. the mail relay
// not being configured.
func Unavailable(msg string) error {
	return &Error{Status: http.StatusInternalServerError, Msg: msg}
}

// Internal keeps the cause for the log; callers only ever see msg.
func Internal(msg string, err error) error {
	return &Error{Status: http.StatusInternalServerError, Msg: msg, Err: err}
}
