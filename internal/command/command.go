// Package command validates the untrusted SSH client command against
// the single allowed shape.
package command

import (
	"os"
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/cryslith/hgssh4/internal/errors"
)

// The only command shape the gateway will serve:
//
//	hg -R <repo> serve --stdio
//
// Five tokens, fixed literals everywhere except the repository token.
// Anything else is refused outright; this allow-list is the gateway's
// primary defense against command injection over SSH.
const (
	tool       = "hg"
	repoFlag   = "-R"
	subcommand = "serve"
	stdioFlag  = "--stdio"
)

// Validate tokenizes raw with POSIX shell word splitting and checks it
// against the forced server invocation. It returns the repository
// token, stripped of at most one leading path separator. The token is
// an opaque lookup key into the capability table, never a path.
func Validate(raw string) (string, error) {
	if raw == "" {
		return "", errors.InvalidCommandMessage("no command supplied", nil)
	}

	tokens, err := shellquote.Split(raw)
	if err != nil {
		return "", errors.InvalidCommandMessage("unparseable command", err)
	}

	if len(tokens) != 5 ||
		tokens[0] != tool ||
		tokens[1] != repoFlag ||
		tokens[3] != subcommand ||
		tokens[4] != stdioFlag {
		return "", errors.InvalidCommand(tokens)
	}

	// Some clients request "/repo" where the ACL says "repo".
	return strings.TrimPrefix(tokens[2], string(os.PathSeparator)), nil
}
