package filewrite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olxver2025/Inline/internal/app/filewrite"
	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/storage/storagemock"
)

func TestServiceWrite(t *testing.T) {
	tests := map[string]struct {
		setup    func(t *testing.T, root string)
		cwd      string
		req      filewrite.Request
		expErr   error
		expPath  string
		expBytes string
	}{
		"Writing a new file in the workspace root should succeed": {
			req:      filewrite.Request{SessionID: "user-1", Path: "hello.txt", Content: []byte("hi")},
			cwd:      ".",
			expPath:  "hello.txt",
			expBytes: "hi",
		},

		"Writing below the session cwd should resolve against it": {
			setup: func(t *testing.T, root string) {
				require.NoError(t, os.MkdirAll(filepath.Join(root, "projects"), 0o755))
			},
			cwd:      "projects",
			req:      filewrite.Request{SessionID: "user-1", Path: "main.py", Content: []byte("print(1)")},
			expPath:  "projects/main.py",
			expBytes: "print(1)",
		},

		"Missing parent directories should be created": {
			cwd:      ".",
			req:      filewrite.Request{SessionID: "user-1", Path: "a/b/c.txt", Content: []byte("deep")},
			expPath:  "a/b/c.txt",
			expBytes: "deep",
		},

		"Overwriting an existing file should replace its content": {
			setup: func(t *testing.T, root string) {
				require.NoError(t, os.WriteFile(filepath.Join(root, "hello.txt"), []byte("old"), 0o644))
			},
			cwd:      ".",
			req:      filewrite.Request{SessionID: "user-1", Path: "hello.txt", Content: []byte("new")},
			expPath:  "hello.txt",
			expBytes: "new",
		},

		"A directory occupying the target name should fail": {
			setup: func(t *testing.T, root string) {
				require.NoError(t, os.MkdirAll(filepath.Join(root, "taken"), 0o755))
			},
			cwd:    ".",
			req:    filewrite.Request{SessionID: "user-1", Path: "taken", Content: []byte("x")},
			expErr: model.ErrNotValid,
		},

		"Traversal outside the workspace should fail": {
			cwd:    ".",
			req:    filewrite.Request{SessionID: "user-1", Path: "../../etc/passwd", Content: []byte("x")},
			expErr: model.ErrPathEscape,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			root := t.TempDir()
			if test.setup != nil {
				test.setup(t, root)
			}

			mRepo := &storagemock.MockRepository{}
			mRepo.On("EnsureSession", mock.Anything, "user-1").Once().Return(&model.Session{ID: "user-1", Root: root, Cwd: test.cwd}, nil)
			mRepo.On("TouchSession", mock.Anything, "user-1").Maybe().Return(nil)

			svc, err := filewrite.NewService(filewrite.ServiceConfig{Repository: mRepo})
			require.NoError(t, err)

			written, err := svc.Write(context.Background(), test.req)

			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				return
			}

			assert.NoError(err)
			assert.Equal(test.expPath, written.Path)
			assert.Equal(len(test.expBytes), written.SizeBytes)

			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(test.expPath)))
			assert.NoError(err)
			assert.Equal(test.expBytes, string(data))
		})
	}
}
