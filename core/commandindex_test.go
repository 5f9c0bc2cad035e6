package core

import (
	"io/fs"
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/josephlewis42/lishp/core/executor"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func memPathFs(t *testing.T, files map[string]fs.FileMode) afero.Fs {
	t.Helper()

	vfs := afero.NewMemMapFs()
	for name, mode := range files {
		if err := afero.WriteFile(vfs, name, nil, mode); err != nil {
			t.Fatal(err)
		}
		if err := vfs.Chmod(name, mode); err != nil {
			t.Fatal(err)
		}
	}
	return vfs
}

func TestCommandIndex_Commands(t *testing.T) {
	vfs := memPathFs(t, map[string]fs.FileMode{
		"/bin/ls":         0755,
		"/bin/README":     0644,
		"/usr/bin/git":    0755,
		"/usr/bin/ls":     0755,
		"/usr/bin/sh":     0700,
		"/opt/bin/mytool": 0755,
	})

	idx := NewCommandIndex(vfs, "/bin:/usr/bin", nil)

	expected := []string{"cd", "get-env", "git", "if", "ls", "pipe", "set-env", "sh", "|"}
	assert.Equal(t, expected, idx.Commands())
}

func TestCommandIndex_SetPath(t *testing.T) {
	vfs := memPathFs(t, map[string]fs.FileMode{
		"/bin/ls":         0755,
		"/opt/bin/mytool": 0755,
	})
	idx := NewCommandIndex(vfs, "/bin", nil)
	assert.Contains(t, idx.Commands(), "ls")

	idx.SetPath("/opt/bin")

	assert.Contains(t, idx.Commands(), "mytool")
	assert.NotContains(t, idx.Commands(), "ls")
	for _, kw := range executor.Keywords {
		assert.Contains(t, idx.Commands(), kw)
	}
}

func TestCommandIndex_Watch(t *testing.T) {
	dir := t.TempDir()
	idx := NewCommandIndex(afero.NewOsFs(), dir, nil)
	assert.NotContains(t, idx.Commands(), "new-tool")

	if err := idx.Watch(); err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	if err := ioutil.WriteFile(filepath.Join(dir, "new-tool"), []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	assert.Eventually(t, func() bool {
		for _, cmd := range idx.Commands() {
			if cmd == "new-tool" {
				return true
			}
		}
		return false
	}, 5*time.Second, 10*time.Millisecond)
}

func TestCommandIndex_Close(t *testing.T) {
	idx := NewCommandIndex(afero.NewMemMapFs(), "", nil)

	// Closing an index that isn't watching is a no-op.
	assert.Nil(t, idx.Close())
}
