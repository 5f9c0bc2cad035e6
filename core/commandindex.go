package core

import (
	"io/ioutil"
	"log"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/josephlewis42/lishp/core/executor"
	"github.com/josephlewis42/lishp/core/vos"
	"github.com/spf13/afero"
)

// CommandIndex holds the names the shell can complete in a command position:
// the built-in keywords and every executable on PATH. Once Watch is called the
// index is rebuilt whenever a PATH directory changes.
type CommandIndex struct {
	fs  afero.Fs
	log *log.Logger

	mu       sync.RWMutex
	path     string
	commands []string
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// NewCommandIndex creates an index of the executables on path.
func NewCommandIndex(fsys afero.Fs, path string, logger *log.Logger) *CommandIndex {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}

	idx := &CommandIndex{
		fs:   fsys,
		log:  logger,
		path: path,
	}
	idx.Refresh()
	return idx
}

// Commands returns the sorted names in the index.
func (idx *CommandIndex) Commands() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.commands
}

// Refresh rebuilds the index from the current path.
func (idx *CommandIndex) Refresh() {
	idx.mu.RLock()
	path := idx.path
	idx.mu.RUnlock()

	commands := mergeSorted(vos.ListExecutables(idx.fs, path), executor.Keywords)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.path == path {
		idx.commands = commands
	}
}

// SetPath changes the search path, rebuilding the index and moving the
// watches if it differs from the current one.
func (idx *CommandIndex) SetPath(path string) {
	idx.mu.Lock()
	if idx.path == path {
		idx.mu.Unlock()
		return
	}
	idx.path = path
	watcher := idx.watcher
	idx.mu.Unlock()

	idx.Refresh()
	if watcher != nil {
		idx.rewatch(watcher, path)
	}
}

// Watch starts rebuilding the index in the background when PATH directories
// change. Directories that can't be watched are skipped.
func (idx *CommandIndex) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	idx.mu.Lock()
	if idx.watcher != nil {
		idx.mu.Unlock()
		watcher.Close()
		return nil
	}
	idx.watcher = watcher
	idx.done = make(chan struct{})
	path := idx.path
	done := idx.done
	idx.mu.Unlock()

	idx.rewatch(watcher, path)
	go idx.watchLoop(watcher, done)
	return nil
}

func (idx *CommandIndex) rewatch(watcher *fsnotify.Watcher, path string) {
	for _, dir := range watcher.WatchList() {
		_ = watcher.Remove(dir)
	}

	for _, dir := range vos.PathDirs(path) {
		if err := watcher.Add(dir); err != nil {
			idx.log.Printf("not watching %q: %v", dir, err)
		}
	}
}

func (idx *CommandIndex) watchLoop(watcher *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Chmod) {
				idx.Refresh()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			idx.log.Printf("watching PATH: %v", err)
		}
	}
}

// Close stops watching for changes.
func (idx *CommandIndex) Close() error {
	idx.mu.Lock()
	watcher := idx.watcher
	done := idx.done
	idx.watcher = nil
	idx.mu.Unlock()

	if watcher == nil {
		return nil
	}

	err := watcher.Close()
	<-done
	return err
}

func mergeSorted(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, v := range list {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out
}
