package access

import (
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/cryslith/hgssh4/internal/acl"
	"github.com/cryslith/hgssh4/internal/errors"
)

func testTable() *acl.Table {
	return &acl.Table{
		SudoUser: "hgread",
		Repos: map[string]acl.Repo{
			"myrepo1": {
				Location: "relative/path",
				Grants: map[string]string{
					"alice": "write",
					"bob":   "read",
				},
			},
			"myrepo2": {
				Location: "/srv/hg/myrepo2",
				Grants: map[string]string{
					"alice": "read",
				},
			},
			"broken": {
				Grants: map[string]string{
					"alice": "write",
				},
			},
			"weird-grants": {
				Location: "/srv/hg/weird",
				Grants: map[string]string{
					"a": "Write",
					"b": "READ",
					"c": "admin",
					"d": "",
					"e": "read write",
				},
			},
		},
	}
}

func TestResolve_ReadGrant(t *testing.T) {
	dec, err := Resolve(testTable(), "myrepo2", "alice")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if dec.Level != Read {
		t.Errorf("Level = %q, want %q", dec.Level, Read)
	}
	if dec.Path != "/srv/hg/myrepo2" {
		t.Errorf("Path = %q, want %q", dec.Path, "/srv/hg/myrepo2")
	}
}

func TestResolve_RelativeLocationResolvedAgainstCwd(t *testing.T) {
	dec, err := Resolve(testTable(), "myrepo1", "alice")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if dec.Level != Write {
		t.Errorf("Level = %q, want %q", dec.Level, Write)
	}
	if !filepath.IsAbs(dec.Path) {
		t.Errorf("Path = %q, want absolute", dec.Path)
	}

	cwd, err := filepath.Abs(".")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(cwd, "relative/path")
	if dec.Path != want {
		t.Errorf("Path = %q, want %q", dec.Path, want)
	}
}

func TestResolve_HomeLocationExpanded(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()

	table := &acl.Table{
		Repos: map[string]acl.Repo{
			"r": {
				Location: "~/hg/r",
				Grants:   map[string]string{"alice": "write"},
			},
		},
	}

	dec, err := Resolve(table, "r", "alice")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if want := filepath.Join(home, "hg/r"); dec.Path != want {
		t.Errorf("Path = %q, want %q", dec.Path, want)
	}
}

func TestResolve_UnknownRepository(t *testing.T) {
	_, err := Resolve(testTable(), "nosuch", "alice")
	if err == nil {
		t.Fatal("Resolve should deny an unknown repository")
	}
	if kind, _ := errors.KindOf(err); kind != errors.KindNoSuchRepository {
		t.Errorf("error kind = %v, want %v", kind, errors.KindNoSuchRepository)
	}
}

func TestResolve_MissingLocation(t *testing.T) {
	_, err := Resolve(testTable(), "broken", "alice")
	if err == nil {
		t.Fatal("Resolve should deny a repository with no location")
	}
	if kind, _ := errors.KindOf(err); kind != errors.KindBadConfig {
		t.Errorf("error kind = %v, want %v", kind, errors.KindBadConfig)
	}
}

func TestResolve_NoGrant(t *testing.T) {
	_, err := Resolve(testTable(), "myrepo2", "mallory")
	if err == nil {
		t.Fatal("Resolve should deny an identity with no grant")
	}
	if kind, _ := errors.KindOf(err); kind != errors.KindAccessDenied {
		t.Errorf("error kind = %v, want %v", kind, errors.KindAccessDenied)
	}
}

func TestResolve_UnrecognizedGrantValuesDeny(t *testing.T) {
	// Anything other than the exact strings "read" and "write"
	// denies: case variants, empty values, and junk alike.
	for _, identity := range []string{"a", "b", "c", "d", "e"} {
		t.Run(identity, func(t *testing.T) {
			_, err := Resolve(testTable(), "weird-grants", identity)
			if err == nil {
				t.Fatal("Resolve should deny an unrecognized grant value")
			}
			if kind, _ := errors.KindOf(err); kind != errors.KindAccessDenied {
				t.Errorf("error kind = %v, want %v", kind, errors.KindAccessDenied)
			}
		})
	}
}

func TestResolve_DenialUniformity(t *testing.T) {
	_, missingErr := Resolve(testTable(), "nosuch", "alice")
	_, deniedErr := Resolve(testTable(), "myrepo2", "mallory")

	if errors.UserMessage(missingErr) != errors.UserMessage(deniedErr) {
		t.Errorf("caller-visible messages differ: %q vs %q",
			errors.UserMessage(missingErr), errors.UserMessage(deniedErr))
	}
}
