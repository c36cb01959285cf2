package mygit

import (
	"strings"
	"time"

	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/ginternals/object"
	"golang.org/x/xerrors"
)

// DefaultCommitMessage is the message used when none is provided
const DefaultCommitMessage = "Initial commit"

// Commit creates a commit from the content of the index, moves HEAD
// to the new commit, records it in the history log, and empties the
// index. The digest of the commit is returned.
// ErrNothingToCommit is returned if the index is empty, in which
// case nothing is written
func (r *Repository) Commit(message string) (ginternals.Oid, error) {
	idx, err := r.dotGit.Index()
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not load the index: %w", err)
	}

	treeID, err := r.BuildFromIndex(idx)
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not build the tree: %w", err)
	}
	if treeID.IsZero() {
		return ginternals.NullOid, ginternals.ErrNothingToCommit
	}

	parentID, err := r.dotGit.Head()
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not get the current commit: %w", err)
	}

	author, err := r.signature()
	if err != nil {
		return ginternals.NullOid, err
	}

	if message == "" {
		message = DefaultCommitMessage
	}
	if !strings.HasSuffix(message, "\n") {
		message += "\n"
	}

	c := object.NewCommit(treeID, author, &object.CommitOptions{
		Message:  message,
		ParentID: parentID,
	})
	oid, err := r.dotGit.WriteObject(c.ToObject())
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not write the commit: %w", err)
	}

	if err = r.dotGit.UpdateHead(oid); err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not move HEAD to %s: %w", oid.String(), err)
	}
	rec := ginternals.NewHistoryRecord(oid, parentID, message, author.Time)
	if err = r.dotGit.AppendHistory(rec); err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not update the history: %w", err)
	}

	idx.Clear()
	if err = r.dotGit.WriteIndex(idx); err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not clear the index: %w", err)
	}
	return oid, nil
}

// signature returns the signature to use for a new commit.
// The values of the config are used, unless they are overridden by
// the env
func (r *Repository) signature() (object.Signature, error) {
	cfg, err := r.dotGit.Config()
	if err != nil {
		return object.Signature{}, xerrors.Errorf("could not read the config: %w", err)
	}

	sig := object.Signature{
		Name:  cfg.UserName,
		Email: cfg.UserEmail,
		Time:  r.now().UTC().Truncate(time.Second),
	}
	if r.opts.AuthorName != "" {
		sig.Name = r.opts.AuthorName
	}
	if r.opts.AuthorEmail != "" {
		sig.Email = r.opts.AuthorEmail
	}
	sig.Name = sanitizeIdent(sig.Name)
	sig.Email = sanitizeIdent(sig.Email)
	return sig, nil
}

// sanitizeIdent removes from s the characters that would make a
// signature unparsable
func sanitizeIdent(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '\n', '\r', 0:
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// Log returns the history of the commits, oldest first
func (r *Repository) Log() ([]ginternals.HistoryRecord, error) {
	return r.dotGit.History()
}
