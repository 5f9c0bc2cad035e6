package vos

import (
	"errors"
	"io/fs"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

// EnvPath is the name of the search path variable.
const EnvPath = "PATH"

func findExecutable(vfs afero.Fs, file string) error {
	d, err := vfs.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	}
	if isExecutable(d) {
		return nil
	}
	return fs.ErrPermission
}

func isExecutable(info fs.FileInfo) bool {
	m := info.Mode()
	return !m.IsDir() && m&0111 != 0
}

// PathDirs splits a PATH value into its directories. Unix shell semantics: an
// empty element means ".".
func PathDirs(path string) []string {
	var out []string
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		out = append(out, dir)
	}
	return out
}

// LookPath searches for an executable named file in the directories named by
// path. If file contains a slash, it is tried directly and the path is not
// consulted. The result may be an absolute path or a path relative to the
// current directory.
func LookPath(vfs afero.Fs, path, file string) (string, error) {
	if strings.Contains(file, "/") {
		err := findExecutable(vfs, file)
		if err == nil {
			return file, nil
		}
		return "", err
	}
	for _, dir := range PathDirs(path) {
		path := filepath.Join(dir, file)
		if err := findExecutable(vfs, path); err == nil {
			return path, nil
		}
	}
	return "", ErrNotFound
}

// ListExecutables returns the sorted, de-duplicated names of every executable
// file found in the directories of path. Unreadable directories are skipped.
func ListExecutables(vfs afero.Fs, path string) []string {
	seen := make(map[string]bool)
	var out []string

	for _, dir := range PathDirs(path) {
		entries, err := afero.ReadDir(vfs, dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !isExecutable(entry) || seen[entry.Name()] {
				continue
			}
			seen[entry.Name()] = true
			out = append(out, entry.Name())
		}
	}

	sort.Strings(out)
	return out
}
