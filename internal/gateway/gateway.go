package gateway

import (
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"syscall"

	"github.com/cryslith/hgssh4/internal/access"
	"github.com/cryslith/hgssh4/internal/acl"
	"github.com/cryslith/hgssh4/internal/command"
	"github.com/cryslith/hgssh4/internal/errors"
	"github.com/cryslith/hgssh4/internal/logging"
	"github.com/cryslith/hgssh4/internal/system"
)

// OriginalCommandEnv carries the client's requested command when sshd
// runs a forced command instead.
const OriginalCommandEnv = "SSH_ORIGINAL_COMMAND"

const (
	hgBinary   = "hg"
	sudoBinary = "sudo"
)

// Run executes one gateway invocation for the given authenticated
// identity and ACL file: load the capability table, validate the
// client command, resolve access, and hand the SSH channel to the hg
// server. The first failing stage aborts; nothing is spawned unless
// every stage before it passed.
func Run(ctx context.Context, identity, aclPath string) error {
	table, err := acl.Load(system.DefaultFS(), aclPath)
	if err != nil {
		return err
	}

	repo, err := command.Validate(os.Getenv(OriginalCommandEnv))
	if err != nil {
		return err
	}

	decision, err := access.Resolve(table, repo, identity)
	if err != nil {
		return err
	}

	argv, err := buildArgv(decision, table)
	if err != nil {
		return err
	}

	logging.Debug("serving repository",
		"identity", identity,
		"repo", repo,
		"path", decision.Path,
		"level", string(decision.Level),
		"argv", argv)

	return runServer(ctx, argv)
}

// buildArgv constructs the server invocation as an argument vector.
// Caller-influenced data never passes through a shell: the only
// caller-derived element is the resolved repository path, and it is
// placed in a fixed argv slot.
func buildArgv(decision access.Decision, table *acl.Table) ([]string, error) {
	argv := []string{hgBinary, "-R", decision.Path, "serve", "--stdio"}

	if decision.Level == access.Read {
		if table.SudoUser == "" {
			return nil, errors.BadConfig("read grant configured but no readonly sudo user", nil)
		}
		// The "--" terminator keeps sudo from reading any of the
		// wrapped command's tokens as its own options.
		argv = append([]string{sudoBinary, "--user=" + table.SudoUser, "--"}, argv...)
	}

	return argv, nil
}

// runServer runs the server invocation with the gateway's standard
// streams and folds the child's fate into the gateway's exit status:
// a normal exit code passes through, a signal death maps to 128+N,
// and a failure to start at all is an execution failure.
func runServer(ctx context.Context, argv []string) error {
	err := system.DefaultExecutor().ExecuteInteractive(ctx, argv[0], argv[1:]...)
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return errors.SignalExit(int(ws.Signal()))
		}
		if code := exitErr.ExitCode(); code >= 0 {
			return errors.ExitStatus(code)
		}
		return errors.ExecutionFailure("server terminated abnormally", err)
	}

	return errors.ExecutionFailure("cannot start server process", err)
}
