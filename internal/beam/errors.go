package beam

import (
	"fmt"

	"github.com/alexiusacademia/gobeam/internal/load"
)

// DomainError reports a length, support or load position outside the beam
// span.
type DomainError struct {
	msg string
}

func (e *DomainError) Error() string {
	return e.msg
}

func domainErrorf(format string, args ...any) error {
	return &DomainError{msg: fmt.Sprintf(format, args...)}
}

// UnsupportedLoadTypeError reports a value passed to AddLoads that is not one
// of the five load kinds. Index is the position within the rejected batch.
type UnsupportedLoadTypeError struct {
	Index int
	Load  load.Load
}

func (e *UnsupportedLoadTypeError) Error() string {
	return fmt.Sprintf("load %d: unsupported load type %T; supported types are "+
		"load.PointH, load.PointV, load.DistributedH, load.DistributedV and load.Torque", e.Index, e.Load)
}

// IntegrationError reports a distributed load whose intensity cannot be
// integrated in closed form. Index is the load's position in the beam's load
// list.
type IntegrationError struct {
	Index int
	Load  load.Load
	Err   error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("load %d (%s): %v", e.Index, e.Load, e.Err)
}

func (e *IntegrationError) Unwrap() error { return e.Err }
