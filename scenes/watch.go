package scenes

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 150 * time.Millisecond

// Reload is the outcome of reloading a watched scene after it changed on
// disk. Scene is nil when Err is set.
type Reload struct {
	File  string
	Scene *Scene
	Err   error
}

// Watcher reloads one scene file whenever it changes under a directory. A
// burst of writes produces a single reload once the file has been quiet for
// the debounce interval. Only the newest unread Reload is kept.
type Watcher struct {
	fs       *fsnotify.Watcher
	file     string
	debounce time.Duration

	reloads chan Reload
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// WatchScene watches dir for changes to file. file is loaded with LoadScene,
// so dir is normally DiskDir.
func WatchScene(dir, file string, debounce time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(dir); err != nil {
		_ = fs.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fs:       fs,
		file:     file,
		debounce: debounce,
		reloads:  make(chan Reload, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Reloads is closed after Close.
func (w *Watcher) Reloads() <-chan Reload {
	return w.reloads
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
		close(w.reloads)
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.matches(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.publish(Reload{File: w.file, Err: err})
		case <-fire:
			fire = nil
			scene, err := LoadScene(w.file)
			w.publish(Reload{File: w.file, Scene: scene, Err: err})
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) matches(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Base(event.Name) == filepath.Base(w.file)
}

// publish replaces any reload the consumer has not read yet.
func (w *Watcher) publish(r Reload) {
	for {
		select {
		case w.reloads <- r:
			return
		case <-w.reloads:
		case <-w.done:
			return
		}
	}
}
