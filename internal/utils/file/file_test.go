package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olxver2025/Inline/internal/utils/file"
)

func TestWriteAtomic(t *testing.T) {
	tests := map[string]struct {
		setup   func(t *testing.T, path string)
		data    []byte
		expErr  bool
		expData string
	}{
		"Writing a new file should create it with the given content.": {
			data:    []byte("hello"),
			expData: "hello",
		},
		"Writing over an existing file should replace its content.": {
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
			},
			data:    []byte("new"),
			expData: "new",
		},
		"Writing empty data should produce an empty file.": {
			data:    []byte{},
			expData: "",
		},
		"Writing into a missing directory should fail.": {
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.RemoveAll(filepath.Dir(path)))
			},
			data:   []byte("x"),
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			path := filepath.Join(t.TempDir(), "target.yaml")
			if test.setup != nil {
				test.setup(t, path)
			}

			err := file.WriteAtomic(path, test.data, 0o644)

			if test.expErr {
				assert.Error(err)
				return
			}

			require.NoError(err)
			got, err := os.ReadFile(path)
			require.NoError(err)
			assert.Equal(test.expData, string(got))

			// No temp leftovers next to the target.
			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(err)
			assert.Len(entries, 1)
		})
	}
}

func TestRemoveTree(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	target := filepath.Join(dir, "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "top.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(target, "a", "b", "deep.txt"), []byte("y"), 0o644))

	// A symlink pointing outside the tree must be removed, never followed.
	outside := filepath.Join(dir, "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))
	require.NoError(t, os.Symlink(outside, filepath.Join(target, "a", "link")))

	err := file.RemoveTree(target)

	assert.NoError(err)
	_, err = os.Lstat(target)
	assert.True(os.IsNotExist(err))
	data, err := os.ReadFile(outside)
	assert.NoError(err)
	assert.Equal("keep", string(data))
}

func TestRemoveTreeFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "single.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	err := file.RemoveTree(path)

	assert.NoError(err)
	_, err = os.Lstat(path)
	assert.True(os.IsNotExist(err))
}

func TestRemoveTreeMissing(t *testing.T) {
	assert := assert.New(t)

	err := file.RemoveTree(filepath.Join(t.TempDir(), "nope"))

	assert.Error(err)
}
