package docker

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
)

// Kind is the failure class of a runtime call
type Kind int

const (
	// KindAPI means the daemon answered but reported a failure
	KindAPI Kind = iota
	// KindNotFound means the daemon has no such container
	KindNotFound
	// KindUnavailable means the daemon could not be reached in time
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	default:
		return "api_error"
	}
}

// Error is returned by every Client method that talks to the daemon
type Error struct {
	Op   string
	ID   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("docker %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("docker %s %s: %s: %v", e.Op, e.ID, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// classify wraps err with its failure class. nil stays nil.
func classify(op, id string, err error) error {
	if err == nil {
		return nil
	}

	var de *Error
	if errors.As(err, &de) {
		return err
	}

	kind := KindAPI
	var netErr net.Error
	switch {
	case errdefs.IsNotFound(err):
		kind = KindNotFound
	case client.IsErrConnectionFailed(err),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		kind = KindUnavailable
	}

	return &Error{Op: op, ID: id, Kind: kind, Err: err}
}

// KindOf reports the failure class of err. Errors that did not come from
// this package count as API failures.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindAPI
}

// IsNotFound returns true if the daemon reported that the container does not exist
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// IsUnavailable returns true if the daemon could not be reached
func IsUnavailable(err error) bool {
	return err != nil && KindOf(err) == KindUnavailable
}
