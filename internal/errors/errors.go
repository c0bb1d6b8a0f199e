package errors

import (
	"errors"
	"fmt"
)

// Exit codes for hgssh4. Gateway failures deliberately share a single
// code: the exit status must not let a caller tell denial kinds apart.
// Only the wrapped server's own exit status is propagated verbatim.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Kind classifies a gateway error for operator diagnosis and tests.
type Kind int

const (
	KindInvalidCommand Kind = iota + 1
	KindNoSuchRepository
	KindBadConfig
	KindAccessDenied
	KindExecutionFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCommand:
		return "invalid command"
	case KindNoSuchRepository:
		return "no such repository"
	case KindBadConfig:
		return "bad config"
	case KindAccessDenied:
		return "access denied"
	case KindExecutionFailure:
		return "execution failure"
	}
	return "unknown"
}

// GatewayError is the base error type for hgssh4.
type GatewayError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// Common error constructors

// InvalidCommand rejects an original command that does not match the
// forced server invocation. The message echoes the offending tokens so
// the operator can see what the client actually sent.
func InvalidCommand(tokens []string) *GatewayError {
	return &GatewayError{
		Kind:    KindInvalidCommand,
		Message: fmt.Sprintf("illegal command %q", tokens),
	}
}

// InvalidCommandMessage rejects an original command with a free-form
// reason (empty command, unparseable quoting).
func InvalidCommandMessage(message string, cause error) *GatewayError {
	return &GatewayError{Kind: KindInvalidCommand, Message: message, Cause: cause}
}

// NoSuchRepository returns an error for a repository token with no
// table entry.
func NoSuchRepository(repo string) *GatewayError {
	return &GatewayError{
		Kind:    KindNoSuchRepository,
		Message: fmt.Sprintf("no such repository: %s", repo),
	}
}

// BadConfig returns an error for an operator configuration defect.
func BadConfig(message string, cause error) *GatewayError {
	return &GatewayError{Kind: KindBadConfig, Message: message, Cause: cause}
}

// AccessDenied returns an error for an identity with no usable grant.
func AccessDenied(identity, repo string) *GatewayError {
	return &GatewayError{
		Kind:    KindAccessDenied,
		Message: fmt.Sprintf("access denied for %s to %s", identity, repo),
	}
}

// ExecutionFailure returns an error for a server process that could not
// be started or died abnormally.
func ExecutionFailure(message string, cause error) *GatewayError {
	return &GatewayError{Kind: KindExecutionFailure, Message: message, Cause: cause}
}

// ExitStatusError carries the wrapped server's own exit status through
// to main. It is not a gateway failure and renders no message of its
// own for a plain non-zero exit.
type ExitStatusError struct {
	Code     int
	Signaled bool
}

func (e *ExitStatusError) Error() string {
	if e.Signaled {
		return fmt.Sprintf("server terminated by signal (exit status %d)", e.Code)
	}
	return fmt.Sprintf("server exit status %d", e.Code)
}

// ExitStatus wraps a normal non-zero exit of the wrapped server.
func ExitStatus(code int) *ExitStatusError {
	return &ExitStatusError{Code: code}
}

// SignalExit wraps a signal-terminated server using the shell
// convention of 128 plus the signal number.
func SignalExit(sig int) *ExitStatusError {
	return &ExitStatusError{Code: 128 + sig, Signaled: true}
}

// KindOf extracts the gateway error kind from an error chain.
func KindOf(err error) (Kind, bool) {
	var gerr *GatewayError
	if errors.As(err, &gerr) {
		return gerr.Kind, true
	}
	return 0, false
}

// GetExitCode extracts the process exit code from an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitStatusError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// UserMessage renders the single caller-visible error line. A missing
// repository and a missing grant must read identically so a caller
// cannot enumerate repositories, and configuration details never reach
// the caller. An empty string means nothing should be printed (the
// wrapped server already reported on its own stderr).
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var exitErr *ExitStatusError
	if errors.As(err, &exitErr) {
		if exitErr.Signaled {
			return exitErr.Error()
		}
		return ""
	}
	var gerr *GatewayError
	if !errors.As(err, &gerr) {
		return err.Error()
	}
	switch gerr.Kind {
	case KindNoSuchRepository, KindAccessDenied:
		return "access denied"
	case KindBadConfig:
		return "configuration error"
	default:
		return gerr.Message
	}
}

// Is checks if an error is of a specific type.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
