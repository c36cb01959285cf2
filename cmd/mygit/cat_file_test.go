package main

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatFileParams(t *testing.T) {
	t.Parallel()

	dir, cleanup := newTestRepo(t)
	t.Cleanup(cleanup)

	testCases := []struct {
		desc string
		args []string
	}{
		{
			desc: "-t cannot be used with -p",
			args: []string{"cat-file", "-p", "-t", "95d09f2b10159347eece71399a7e2e907ea3df4f"},
		},
		{
			desc: "-s cannot be used with -p",
			args: []string{"cat-file", "-p", "-s", "95d09f2b10159347eece71399a7e2e907ea3df4f"},
		},
		{
			desc: "-s cannot be used with -t",
			args: []string{"cat-file", "-t", "-s", "95d09f2b10159347eece71399a7e2e907ea3df4f"},
		},
		{
			desc: "one flag is required",
			args: []string{"cat-file", "95d09f2b10159347eece71399a7e2e907ea3df4f"},
		},
		{
			desc: "an object is required",
			args: []string{"cat-file", "-p"},
		},
		{
			desc: "a single object is allowed",
			args: []string{"cat-file", "-p", "95d09f2b10159347eece71399a7e2e907ea3df4f", "95d09f2b10159347eece71399a7e2e907ea3df4f"},
		},
		{
			desc: "the object must be a valid sha",
			args: []string{"cat-file", "-p", "not-a-sha"},
		},
		{
			desc: "the object must exist",
			args: []string{"cat-file", "-p", "95d09f2b10159347eece71399a7e2e907ea3df4f"},
		},
		{
			desc: "HEAD needs a commit",
			args: []string{"cat-file", "-p", "HEAD"},
		},
	}
	for i, tc := range testCases {
		tc := tc
		i := i
		t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
			t.Parallel()

			_, _, err := runCmd(t, dir, tc.args...)
			require.Error(t, err)
		})
	}
}

func TestCatFile(t *testing.T) {
	t.Parallel()

	dir, cleanup := newTestRepo(t)
	t.Cleanup(cleanup)
	writeTestFile(t, filepath.Join(dir, "file.txt"), "hello world")
	_, _, err := runCmd(t, dir, "hash-object", "-w", "file.txt")
	require.NoError(t, err)

	testCases := []struct {
		desc     string
		flag     string
		expected string
	}{
		{
			desc:     "-p should print the raw content",
			flag:     "-p",
			expected: "hello world",
		},
		{
			desc:     "-s should print the size",
			flag:     "-s",
			expected: "11\n",
		},
		{
			desc:     "-t should print the type",
			flag:     "-t",
			expected: "blob\n",
		},
	}
	for i, tc := range testCases {
		tc := tc
		i := i
		t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
			t.Parallel()

			out, _, err := runCmd(t, dir, "cat-file", tc.flag, "95d09f2b10159347eece71399a7e2e907ea3df4f")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}
