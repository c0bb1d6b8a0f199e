// Package acl loads the capability table that maps repositories and
// identities to access levels.
//
// The ACL file is INI:
//
//	[readonly]
//	sudo = hgread
//
//	[repos.myrepo1]
//	location = relative/path/to/repo
//	alice = write
//	bob = read  # read-only access
//
// The table is loaded once per invocation and never mutated. The
// loader records grant values verbatim; validating them is the access
// resolver's job, so an unrecognized value fails closed there instead
// of being coerced or dropped here.
package acl

import (
	"strings"

	"gopkg.in/ini.v1"

	"github.com/cryslith/hgssh4/internal/errors"
	"github.com/cryslith/hgssh4/internal/system"
)

// repoSectionPrefix marks ACL sections describing repositories.
const repoSectionPrefix = "repos."

// locationKey holds the repository's filesystem path inside a repo
// section. Every other key in the section is an identity grant.
const locationKey = "location"

// Repo is one repository entry in the capability table.
type Repo struct {
	// Location is the repository path as written in the ACL, possibly
	// relative or ~-prefixed. Empty means the ACL omitted it.
	Location string

	// Grants maps identity names to their raw grant value.
	Grants map[string]string
}

// Table is the in-memory capability table.
type Table struct {
	// SudoUser is the low-privilege identity impersonated for
	// read-only access. Empty means none is configured.
	SudoUser string

	// Repos maps repository lookup keys to their entries.
	Repos map[string]Repo
}

// Load reads and parses the ACL file at path.
func Load(fsys system.FileSystem, path string) (*Table, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.BadConfig("cannot read ACL file "+path, err)
	}

	file, err := ini.Load(data)
	if err != nil {
		return nil, errors.BadConfig("cannot parse ACL file "+path, err)
	}

	table := &Table{Repos: make(map[string]Repo)}

	if sec, err := file.GetSection("readonly"); err == nil {
		table.SudoUser = sec.Key("sudo").String()
	}

	for _, sec := range file.Sections() {
		name, ok := strings.CutPrefix(sec.Name(), repoSectionPrefix)
		if !ok || name == "" {
			continue
		}

		repo := Repo{Grants: make(map[string]string)}
		for _, key := range sec.Keys() {
			if key.Name() == locationKey {
				repo.Location = key.String()
				continue
			}
			repo.Grants[key.Name()] = key.String()
		}
		table.Repos[name] = repo
	}

	return table, nil
}
