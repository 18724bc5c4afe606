package texttemplate

import (
	"errors"
	"fmt"
)

// ErrTemplateArgument matches every argument error raised by this package.
var ErrTemplateArgument = errors.New("template argument error")

// ArgumentConflictError is returned when two args share a name but disagree
// on whether they are optional.
type ArgumentConflictError struct {
	Name string
}

func (e *ArgumentConflictError) Error() string {
	return fmt.Sprintf("conflicting definitions for argument %q", e.Name)
}

func (e *ArgumentConflictError) Is(target error) bool {
	return target == ErrTemplateArgument
}

// MissingArgumentError is returned by Apply when a required arg has no
// parameter.
type MissingArgumentError struct {
	Name string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing required argument %q", e.Name)
}

func (e *MissingArgumentError) Is(target error) bool {
	return target == ErrTemplateArgument
}
