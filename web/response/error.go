package response

import "github.com/pkg/errors"

// Responder is implemented by errors that carry the response they were
// raised for. HTTP client libraries commonly attach the partial response to
// the failure; resolution recovers it through this interface.
type Responder interface {
	Response() any
}

// Error pairs a transport or framework failure with whatever response came
// with it.
type Error struct {
	Cause error
	Resp  any
}

func NewError(cause error, resp any) *Error {
	return &Error{Cause: cause, Resp: resp}
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return "request failed"
	}
	return e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Response() any { return e.Resp }

// attachedResponse digs through an error chain for a carried response. Each
// link is inspected exactly once and the walk is capped like every other
// unwrap in this package, so malformed chains cannot loop.
func attachedResponse(err error) any {
	for i := 0; err != nil && i < maxUnwrap; i++ {
		if r, ok := err.(Responder); ok {
			if resp := r.Response(); resp != nil {
				return resp
			}
		}
		err = errors.Unwrap(err)
	}
	return nil
}
