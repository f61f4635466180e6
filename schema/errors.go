package schema

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrSchema matches every SchemaError with errors.Is.
	ErrSchema = errors.New("schema error")
	// ErrUnrecognized is returned in strict mode for values outside an enumeration.
	ErrUnrecognized = errors.New("unrecognized value")
)

// SchemaError reports a structural node missing when an accessor runs,
// which means the base structure was never initialised.
type SchemaError struct {
	Parent string
	Tag    string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: no <%s> node under %s", e.Tag, e.Parent)
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

func unrecognized(what, value string) error {
	return errors.Wrapf(ErrUnrecognized, "%s %q", what, value)
}
