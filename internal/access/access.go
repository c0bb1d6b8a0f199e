// Package access decides what a caller may do with a repository.
//
// Resolve is a pure policy function over the capability table: it
// spawns nothing and touches no state beyond resolving the configured
// location string to an absolute path. Every lookup fails closed — a
// missing repository, a missing grant, and an unrecognized grant value
// all deny.
package access

import (
	"fmt"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/cryslith/hgssh4/internal/acl"
	"github.com/cryslith/hgssh4/internal/errors"
)

// Level is a recognized access level. Grant values are matched
// exactly; there is no case folding.
type Level string

const (
	Read  Level = "read"
	Write Level = "write"
)

// Decision is a successful access resolution.
type Decision struct {
	// Path is the repository location resolved to an absolute path.
	Path string

	// Level is the caller's access level.
	Level Level
}

// Resolve looks up repo and identity in the capability table and
// returns the resolved repository path and access level.
//
// No existence check is performed on the path; if it points nowhere,
// hg will say so itself.
func Resolve(table *acl.Table, repo, identity string) (Decision, error) {
	entry, ok := table.Repos[repo]
	if !ok {
		return Decision{}, errors.NoSuchRepository(repo)
	}

	if entry.Location == "" {
		return Decision{}, errors.BadConfig(fmt.Sprintf("no location for repository %s", repo), nil)
	}

	expanded, err := homedir.Expand(entry.Location)
	if err != nil {
		return Decision{}, errors.BadConfig(fmt.Sprintf("cannot expand location for repository %s", repo), err)
	}
	path, err := filepath.Abs(expanded)
	if err != nil {
		return Decision{}, errors.BadConfig(fmt.Sprintf("cannot resolve location for repository %s", repo), err)
	}

	grant, ok := entry.Grants[identity]
	if !ok {
		return Decision{}, errors.AccessDenied(identity, repo)
	}

	switch Level(grant) {
	case Read, Write:
		return Decision{Path: path, Level: Level(grant)}, nil
	}
	// Unrecognized grant values deny, never default to anything.
	return Decision{}, errors.AccessDenied(identity, repo)
}
