package mygit

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/nj301365/version-control-system-mygit/env"
	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommit(t *testing.T) {
	t.Parallel()

	t.Run("empty index should not commit", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		r := newTestRepo(t, fs)
		objectsBefore := countFiles(t, fs, r.DotGitPath())

		_, err := r.Commit("nothing")
		require.Error(t, err)
		assert.ErrorIs(t, err, ginternals.ErrNothingToCommit)

		head, err := r.Head()
		require.NoError(t, err)
		assert.True(t, head.IsZero())
		assert.Equal(t, objectsBefore, countFiles(t, fs, r.DotGitPath()), "no object should have been written")

		records, err := r.Log()
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("should chain the commits", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		r := newTestRepo(t, fs)

		writeFile(t, fs, "a.txt", "X")
		_, err := r.Stage("a.txt")
		require.NoError(t, err)
		c1, err := r.Commit("first")
		require.NoError(t, err)

		head, err := r.Head()
		require.NoError(t, err)
		assert.Equal(t, c1, head)

		idx, err := r.dotGit.Index()
		require.NoError(t, err)
		assert.Equal(t, 0, idx.Len(), "the index should have been cleared")

		writeFile(t, fs, "a.txt", "Y")
		_, err = r.Stage("a.txt")
		require.NoError(t, err)
		c2, err := r.Commit("second\n\nwith a body")
		require.NoError(t, err)
		assert.NotEqual(t, c1, c2)

		o, err := r.Object(c2)
		require.NoError(t, err)
		commit2, err := o.AsCommit()
		require.NoError(t, err)
		assert.Equal(t, c1, commit2.ParentID())
		assert.Equal(t, "second\n\nwith a body\n", commit2.Message())

		c1Content, err := r.CatFile(c1, CatFileContent)
		require.NoError(t, err)
		parent, err := r.CatFile(commit2.ParentID(), CatFileContent)
		require.NoError(t, err)
		assert.Equal(t, c1Content, parent)

		o, err = r.Object(c1)
		require.NoError(t, err)
		commit1, err := o.AsCommit()
		require.NoError(t, err)
		assert.True(t, commit1.IsRoot())
		assert.Equal(t, "first\n", commit1.Message())
		assert.Equal(t, "User", commit1.Author().Name)
		assert.Equal(t, "user@example.com", commit1.Author().Email)
		assert.Equal(t, testTime.Unix(), commit1.Author().Time.Unix())

		records, err := r.Log()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, c1, records[0].CommitID)
		assert.True(t, records[0].ParentID.IsZero())
		assert.Equal(t, "first", records[0].Message)
		assert.Equal(t, c2, records[1].CommitID)
		assert.Equal(t, c1, records[1].ParentID)
		assert.Equal(t, "second", records[1].Message)
		assert.Equal(t, testTime, records[1].Time)
	})

	t.Run("empty message should use the default one", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		r := newTestRepo(t, fs)
		writeFile(t, fs, "a.txt", "X")
		_, err := r.Stage("a.txt")
		require.NoError(t, err)

		oid, err := r.Commit("")
		require.NoError(t, err)
		o, err := r.Object(oid)
		require.NoError(t, err)
		c, err := o.AsCommit()
		require.NoError(t, err)
		assert.Equal(t, DefaultCommitMessage+"\n", c.Message())
	})

	t.Run("env should override the author", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		newTestRepo(t, fs)
		r, err := OpenRepositoryWithOptions(testRoot, Options{
			FS:  fs,
			Env: env.NewFromKVList([]string{"MYGIT_AUTHOR_NAME=Ada Lovelace", "MYGIT_AUTHOR_EMAIL=ada@example.com"}),
			Now: func() time.Time { return testTime },
		})
		require.NoError(t, err)
		t.Cleanup(func() {
			require.NoError(t, r.Close())
		})

		writeFile(t, fs, "a.txt", "X")
		_, err = r.Stage("a.txt")
		require.NoError(t, err)
		oid, err := r.Commit("msg")
		require.NoError(t, err)

		o, err := r.Object(oid)
		require.NoError(t, err)
		c, err := o.AsCommit()
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", c.Author().Name)
		assert.Equal(t, "ada@example.com", c.Committer().Email)
	})
}

// countFiles returns the number of files inside dir
func countFiles(t *testing.T, fs afero.Fs, dir string) int {
	t.Helper()

	count := 0
	err := afero.Walk(fs, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			count++
		}
		return nil
	})
	require.NoError(t, err)
	return count
}

func TestCommitSanitizesAuthor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc          string
		name          string
		email         string
		expectedName  string
		expectedEmail string
	}{
		{
			desc:          "angle brackets",
			name:          "Bob <bob>",
			email:         "<bob@example.com>",
			expectedName:  "Bob bob",
			expectedEmail: "bob@example.com",
		},
		{
			desc:          "new lines",
			name:          "Bob\nparent 0000000000000000000000000000000000000000",
			email:         "bob@example.com\r\n",
			expectedName:  "Bobparent 0000000000000000000000000000000000000000",
			expectedEmail: "bob@example.com",
		},
	}
	for i, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			newTestRepo(t, fs)
			r, err := OpenRepositoryWithOptions(testRoot, Options{
				FS:  fs,
				Env: env.NewFromKVList([]string{"MYGIT_AUTHOR_NAME=" + tc.name, "MYGIT_AUTHOR_EMAIL=" + tc.email}),
				Now: func() time.Time { return testTime },
			})
			require.NoError(t, err)
			t.Cleanup(func() {
				require.NoError(t, r.Close())
			})

			writeFile(t, fs, "a.txt", "X")
			_, err = r.Stage("a.txt")
			require.NoError(t, err)
			oid, err := r.Commit("msg")
			require.NoError(t, err)

			// the commit must be readable back and usable by checkout
			o, err := r.Object(oid)
			require.NoError(t, err)
			c, err := o.AsCommit()
			require.NoError(t, err)
			assert.Equal(t, tc.expectedName, c.Author().Name)
			assert.Equal(t, tc.expectedEmail, c.Author().Email)
			assert.Equal(t, "msg\n", c.Message())

			report, err := r.Checkout(oid, CheckoutOptions{})
			require.NoError(t, err)
			assert.Equal(t, CheckoutUpdated, report.State)
		})
	}
}

