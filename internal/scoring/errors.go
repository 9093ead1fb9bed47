package scoring

import (
	"errors"
	"fmt"
)

// ErrTimeout indicates the request did not complete within the client
// timeout.
type ErrTimeout struct {
	Err error
}

func (e *ErrTimeout) Error() string { return fmt.Sprintf("scoring request timed out: %v", e.Err) }

func (e *ErrTimeout) Unwrap() error { return e.Err }

// ErrServer indicates the endpoint answered with a non-2xx status.
type ErrServer struct {
	StatusCode int
	Body       string
}

func (e *ErrServer) Error() string {
	return fmt.Sprintf("scoring server returned %d", e.StatusCode)
}

// ErrNoResponse indicates the endpoint could not be reached.
type ErrNoResponse struct {
	Err error
}

func (e *ErrNoResponse) Error() string {
	return fmt.Sprintf("no response from scoring server: %v", e.Err)
}

func (e *ErrNoResponse) Unwrap() error { return e.Err }

// ErrUnexpected covers everything else, including undecodable payloads.
type ErrUnexpected struct {
	Err error
}

func (e *ErrUnexpected) Error() string {
	return fmt.Sprintf("unexpected scoring failure: %v", e.Err)
}

func (e *ErrUnexpected) Unwrap() error { return e.Err }

// UserMessage maps a client error to the message shown to the learner.
func UserMessage(err error) string {
	var (
		timeout *ErrTimeout
		server  *ErrServer
		noResp  *ErrNoResponse
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &timeout):
		return "Request timeout. Please try again."
	case errors.As(err, &server):
		return fmt.Sprintf("Server error: %d", server.StatusCode)
	case errors.As(err, &noResp):
		return "No response from server. Please check your connection."
	}
	return "An unexpected error occurred."
}
