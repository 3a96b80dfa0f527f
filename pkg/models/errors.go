package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies fatal errors of log processing.
type ErrorKind string

const (
	// DecodeError is malformed transport encoding or empty payload.
	DecodeError ErrorKind = "DecodeError"
	// TypeConversionError is a token that can not be converted to declared type.
	TypeConversionError ErrorKind = "TypeConversionError"
	// SchemaMismatchError is disagreement between FieldSchema and log data.
	SchemaMismatchError ErrorKind = "SchemaMismatchError"
	// BackendWriteError is failure of WriteRecords.
	BackendWriteError ErrorKind = "BackendWriteError"
)

// PipelineError is error with ErrorKind. Any PipelineError aborts the invocation.
type PipelineError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (x *PipelineError) Error() string {
	if x.Err == nil {
		return fmt.Sprintf("%s: %s", x.Kind, x.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", x.Kind, x.Msg, x.Err.Error())
}

// Unwrap returns original error
func (x *PipelineError) Unwrap() error { return x.Err }

// NewPipelineError creates PipelineError with formatted message.
func NewPipelineError(kind ErrorKind, msg string, args ...interface{}) error {
	return &PipelineError{
		Kind: kind,
		Msg:  fmt.Sprintf(msg, args...),
	}
}

// WrapPipelineError creates PipelineError from original error.
func WrapPipelineError(kind ErrorKind, err error, msg string, args ...interface{}) error {
	return &PipelineError{
		Kind: kind,
		Msg:  fmt.Sprintf(msg, args...),
		Err:  err,
	}
}

// KindOf looks up ErrorKind from error chain. It returns empty string if no PipelineError.
func KindOf(err error) ErrorKind {
	var perr *PipelineError
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return ""
}
