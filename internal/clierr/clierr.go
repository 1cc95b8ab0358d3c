// Package clierr carries process exit codes and user-facing remediation
// text on errors so main() stays free of error-classification logic.
package clierr

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes exposed by the gitch process.
const (
	CodeOK         = 0
	CodeViolations = 1
	CodeFatal      = 2
)

type ExitCoder interface {
	error
	ExitCode() int
}

// Error is a fatal, unrecoverable error. Besides the short description it
// carries a context line explaining why the run cannot continue and a help
// line telling the user what to do about it.
type Error struct {
	cause   error
	msg     string
	context string
	help    string
	code    int
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.msg)
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	if e.context != "" {
		fmt.Fprintf(&b, "\n  | context: %s", e.context)
	}
	if e.help != "" {
		fmt.Fprintf(&b, "\n  |    help: %s", e.help)
	}
	return b.String()
}

func (e *Error) ExitCode() int { return e.code }

// Unwrap enables errors.Is/As to traverse the underlying cause.
func (e *Error) Unwrap() error { return e.cause }

// Fatal creates an unrecoverable error with context and remediation lines.
func Fatal(msg, context, help string) error {
	return &Error{msg: msg, context: context, help: help, code: CodeFatal}
}

// FatalWrap is like Fatal but preserves the underlying cause for errors.Is/As.
func FatalWrap(cause error, msg, context, help string) error {
	return &Error{cause: cause, msg: msg, context: context, help: help, code: CodeFatal}
}

// SilentError carries an exit code for failures that have already been
// reported to the user, so main() exits without printing anything further.
type SilentError struct {
	code int
}

func (e *SilentError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func (e *SilentError) ExitCode() int { return e.code }

// Silent returns an error carrying only an exit code.
func Silent(code int) error {
	return &SilentError{code: code}
}

// ExitCodeOf extracts an exit code from any error, defaulting to CodeFatal.
// A nil error means success.
func ExitCodeOf(err error) int {
	if err == nil {
		return CodeOK
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return CodeFatal
}
