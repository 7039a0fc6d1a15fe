package compiler

import (
	"fmt"
	"strings"
)

// Diagnostic is one schema validation failure, attributed to the offending
// message and, where applicable, field.
type Diagnostic struct {
	Message string
	Field   string
	Detail  string
}

func (d Diagnostic) Error() string {
	if d.Field != "" {
		return fmt.Sprintf("message %s: field %s: %s", d.Message, d.Field, d.Detail)
	}
	return fmt.Sprintf("message %s: %s", d.Message, d.Detail)
}

// CompileError collects every diagnostic found in one compilation pass, so an
// author gets a complete report rather than the first failure.
type CompileError struct {
	Diagnostics []Diagnostic
}

func (e *CompileError) Error() string {
	lines := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		lines = append(lines, d.Error())
	}
	return fmt.Sprintf("schema has %d errors:\n%s", len(e.Diagnostics), strings.Join(lines, "\n"))
}

// Unwrap exposes the individual diagnostics to errors.Is and errors.As.
func (e *CompileError) Unwrap() []error {
	errs := make([]error, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		errs = append(errs, d)
	}
	return errs
}
