package mygit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/ginternals/object"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// ErrPathReserved is reported when a checkout skips an entry of the
// working tree because its name is reserved
var ErrPathReserved = errors.New("path is reserved")

// CheckoutState represents the step a checkout is at
type CheckoutState int8

// List of the states of a checkout.
// A checkout goes through Idle, Validating, Purging, Restoring, and
// ends with Updated. Failed can be reached from any state
const (
	CheckoutIdle CheckoutState = iota
	CheckoutValidating
	CheckoutPurging
	CheckoutRestoring
	CheckoutUpdated
	CheckoutFailed
)

// String returns the name of the state
func (s CheckoutState) String() string {
	switch s {
	case CheckoutIdle:
		return "idle"
	case CheckoutValidating:
		return "validating"
	case CheckoutPurging:
		return "purging"
	case CheckoutRestoring:
		return "restoring"
	case CheckoutUpdated:
		return "updated"
	case CheckoutFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int8(s))
	}
}

// PathOutcome represents the result of an operation made on a single
// path of the working tree
type PathOutcome struct {
	Path string
	// Err is nil if the operation succeeded
	Err error
}

// OK returns whether the operation succeeded
func (o PathOutcome) OK() bool {
	return o.Err == nil
}

// CheckoutOptions contains all the optional data used to run a
// checkout
type CheckoutOptions struct {
	// Preserve contains the names of the top-level entries of the
	// working tree that should be neither deleted nor overwritten.
	// The .mygit directory is always preserved
	Preserve []string
}

// CheckoutReport contains what happened during a checkout
type CheckoutReport struct {
	Target ginternals.Oid
	State  CheckoutState
	// Purged contains one outcome per top-level entry of the working
	// tree that was removed (or failed to be)
	Purged []PathOutcome
	// Restored contains one outcome per file or directory of the
	// target tree
	Restored []PathOutcome
}

// Warnings returns all the outcomes that failed
func (report *CheckoutReport) Warnings() []PathOutcome {
	out := []PathOutcome{}
	for _, list := range [][]PathOutcome{report.Purged, report.Restored} {
		for _, o := range list {
			if !o.OK() {
				out = append(out, o)
			}
		}
	}
	return out
}

// Checkout replaces the content of the working tree by the snapshot
// of the given commit, and then moves HEAD to the commit.
//
// The commit and its tree are validated before anything is touched,
// ErrInvalidCommit is returned and the working tree is left untouched
// if they cannot be read.
// Removing the current files and restoring the files of the commit
// are best-effort: failures are logged and reported in the
// CheckoutReport, and the checkout carries on. HEAD is updated once
// the restoration is over
func (r *Repository) Checkout(oid ginternals.Oid, opts CheckoutOptions) (*CheckoutReport, error) {
	report := &CheckoutReport{
		Target:   oid,
		State:    CheckoutIdle,
		Purged:   []PathOutcome{},
		Restored: []PathOutcome{},
	}

	report.State = CheckoutValidating
	tree, err := r.checkoutTarget(oid)
	if err != nil {
		report.State = CheckoutFailed
		return report, err
	}
	reserved, err := r.reservedNames(opts)
	if err != nil {
		report.State = CheckoutFailed
		return report, err
	}

	report.State = CheckoutPurging
	r.purge(report, reserved)

	report.State = CheckoutRestoring
	r.restoreTree(report, tree, r.root, reserved, 0)

	if err = r.dotGit.UpdateHead(oid); err != nil {
		report.State = CheckoutFailed
		return report, xerrors.Errorf("could not move HEAD to %s: %w", oid.String(), err)
	}
	report.State = CheckoutUpdated
	return report, nil
}

// checkoutTarget returns the root tree of the given commit.
// Any failure is reported as ErrInvalidCommit
func (r *Repository) checkoutTarget(oid ginternals.Oid) (*object.Tree, error) {
	invalid := func(err error) error {
		return fmt.Errorf("commit %s: %w: %w", oid.String(), ginternals.ErrInvalidCommit, err)
	}

	o, err := r.dotGit.Object(oid)
	if err != nil {
		return nil, invalid(err)
	}
	c, err := o.AsCommit()
	if err != nil {
		return nil, invalid(err)
	}
	o, err = r.dotGit.Object(c.TreeID())
	if err != nil {
		return nil, invalid(err)
	}
	tree, err := o.AsTree()
	if err != nil {
		return nil, invalid(err)
	}
	return tree, nil
}

// reservedNames returns the top-level names of the working tree a
// checkout should not touch
func (r *Repository) reservedNames(opts CheckoutOptions) (map[string]struct{}, error) {
	cfg, err := r.dotGit.Config()
	if err != nil {
		return nil, xerrors.Errorf("could not read the config: %w", err)
	}

	reserved := map[string]struct{}{}
	if filepath.Dir(r.dotGit.Path()) == r.root {
		reserved[filepath.Base(r.dotGit.Path())] = struct{}{}
	}
	for _, list := range [][]string{opts.Preserve, cfg.Preserve} {
		for _, name := range list {
			reserved[name] = struct{}{}
		}
	}
	return reserved, nil
}

// purge removes every top-level entry of the working tree, except the
// reserved ones
func (r *Repository) purge(report *CheckoutReport, reserved map[string]struct{}) {
	r.purgeDir(report, r.root, reserved)
}

// purgeDir removes the content of dir. The directories containing
// the .mygit directory are emptied instead of being removed
func (r *Repository) purgeDir(report *CheckoutReport, dir string, reserved map[string]struct{}) {
	infos, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		err = ginternals.NewStorageIOError("list", dir, err)
		r.logger.Warn("could not list the working tree", "path", dir, "error", err)
		report.Purged = append(report.Purged, PathOutcome{Path: dir, Err: err})
		return
	}

	for _, info := range infos {
		if _, ok := reserved[info.Name()]; ok && dir == r.root {
			continue
		}
		p := filepath.Join(dir, info.Name())
		if r.isInsideDotGit(p) {
			continue
		}
		if r.containsDotGit(p) {
			r.purgeDir(report, p, reserved)
			continue
		}

		outcome := PathOutcome{Path: p}
		if err := r.fs.RemoveAll(p); err != nil {
			outcome.Err = ginternals.NewStorageIOError("remove", p, err)
			r.logger.Warn("could not remove path", "path", p, "error", err)
		}
		report.Purged = append(report.Purged, outcome)
	}
}

// restoreTree recreates the content of tree inside dir.
// Nothing is returned since all the failures are reported in the
// report
func (r *Repository) restoreTree(report *CheckoutReport, tree *object.Tree, dir string, reserved map[string]struct{}, depth int) {
	for _, e := range tree.Entries() {
		p := filepath.Join(dir, e.Path)
		fail := func(err error) {
			r.logger.Warn("could not restore path", "path", p, "error", err)
			report.Restored = append(report.Restored, PathOutcome{Path: p, Err: err})
		}

		if depth == 0 {
			if _, ok := reserved[e.Path]; ok {
				fail(xerrors.Errorf("%s: %w", p, ErrPathReserved))
				continue
			}
		}
		// the .mygit directory can neither be overwritten nor be
		// replaced by a file
		if r.isInsideDotGit(p) || (!e.IsTree() && r.containsDotGit(p)) {
			fail(xerrors.Errorf("%s: %w", p, ErrPathReserved))
			continue
		}

		if !e.IsTree() {
			if err := r.restoreBlob(e, p); err != nil {
				fail(err)
				continue
			}
			report.Restored = append(report.Restored, PathOutcome{Path: p})
			continue
		}

		if depth >= MaxTreeDepth {
			fail(xerrors.Errorf("%s: %w", p, ErrTreeTooDeep))
			continue
		}
		if err := r.fs.MkdirAll(p, 0o755); err != nil {
			fail(ginternals.NewStorageIOError("create directory", p, err))
			continue
		}
		o, err := r.dotGit.Object(e.ID)
		if err != nil {
			fail(err)
			continue
		}
		subTree, err := o.AsTree()
		if err != nil {
			fail(xerrors.Errorf("could not parse tree %s: %w", e.ID.String(), err))
			continue
		}
		report.Restored = append(report.Restored, PathOutcome{Path: p})
		r.restoreTree(report, subTree, p, reserved, depth+1)
	}
}

// restoreBlob writes the content of the blob targeted by e at path p
func (r *Repository) restoreBlob(e object.TreeEntry, p string) error {
	o, err := r.dotGit.Object(e.ID)
	if err != nil {
		return err
	}
	blob, err := o.AsBlob()
	if err != nil {
		return xerrors.Errorf("could not read blob %s: %w", e.ID.String(), err)
	}

	if err = r.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return ginternals.NewStorageIOError("create directory", filepath.Dir(p), err)
	}
	perm := os.FileMode(0o644)
	if e.Mode == object.ModeExecutable {
		perm = 0o755
	}
	if err = afero.WriteFile(r.fs, p, blob.Bytes(), perm); err != nil {
		return ginternals.NewStorageIOError("write", p, err)
	}
	// WriteFile doesn't change the permissions of an existing file
	if err = r.fs.Chmod(p, perm); err != nil {
		return ginternals.NewStorageIOError("chmod", p, err)
	}
	return nil
}
