package main

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// fileWatcher reports debounced changes of watched files.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	files  map[string]bool
	timers map[string]*time.Timer
	closed bool

	ch   chan string
	done chan struct{}
	wg   sync.WaitGroup
}

func newFileWatcher(debounce time.Duration, logger *zap.Logger) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating watcher")
	}
	fw := &fileWatcher{
		watcher:  w,
		debounce: debounce,
		logger:   logger,
		files:    make(map[string]bool),
		timers:   make(map[string]*time.Timer),
		ch:       make(chan string, 1),
		done:     make(chan struct{}),
	}
	fw.wg.Add(1)
	go fw.run()
	return fw, nil
}

// Watch adds a file. The parent directory is watched so that
// editors replacing the file by rename are followed.
func (fw *fileWatcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", path)
	}
	fw.mu.Lock()
	fw.files[abs] = true
	fw.mu.Unlock()

	if err := fw.watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "watching %s", abs)
	}
	return nil
}

// Changes returns the channel receiving the path of changed files.
// Changes of a file arriving while the previous one is not received
// are merged.
func (fw *fileWatcher) Changes() <-chan string {
	return fw.ch
}

func (fw *fileWatcher) run() {
	defer fw.wg.Done()
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fw.handle(event.Name)
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func (fw *fileWatcher) handle(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.closed || !fw.files[path] {
		return
	}
	if t, ok := fw.timers[path]; ok {
		t.Stop()
	}
	fw.timers[path] = time.AfterFunc(fw.debounce, func() {
		select {
		case fw.ch <- path:
		case <-fw.done:
		default:
		}
	})
}

func (fw *fileWatcher) Close() error {
	fw.mu.Lock()
	if fw.closed {
		fw.mu.Unlock()
		return nil
	}
	fw.closed = true
	for _, t := range fw.timers {
		t.Stop()
	}
	close(fw.done)
	fw.mu.Unlock()

	err := fw.watcher.Close()
	fw.wg.Wait()
	return err
}
