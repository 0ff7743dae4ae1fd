package keywords

import (
	"errors"
	"fmt"
)

// Parameter errors. Callers receive them wrapped in a *ParamError.
var (
	ErrUnsupportedMetric    = errors.New("unsupported metric")
	ErrUnsupportedDirection = errors.New("unsupported direction")
	ErrUnsupportedIntent    = errors.New("unsupported intent")
	ErrInvalidCriteria      = errors.New("invalid criteria")
)

// ParamError describes a rejected query parameter.
type ParamError struct {
	Param string
	Value string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("unsupported parameter %s=%q: %v", e.Param, e.Value, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// IsParamError reports whether err was caused by a bad caller parameter.
func IsParamError(err error) bool {
	var pe *ParamError
	return errors.As(err, &pe)
}

func paramErr(param, value string, err error) error {
	return &ParamError{Param: param, Value: value, Err: err}
}
