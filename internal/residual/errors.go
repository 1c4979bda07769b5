package residual

import (
	"errors"
	"fmt"
)

// ErrNoTarget is returned when neither fR,1 nor fR,3 is requested.
var ErrNoTarget = errors.New("select at least one target (fR,1 or fR,3)")

// DomainError reports an input for which a prediction formula is
// mathematically undefined (non-positive base of a fractional power,
// zero diameter, non-finite value).
type DomainError struct {
	Target Target
	Field  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s undefined: %s = %g %s", e.Target, e.Field, e.Value, e.Reason)
}

// IsDomainError reports whether err is (or wraps) a DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}
