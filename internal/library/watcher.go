package library

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"exposurestats/internal/config"
	"exposurestats/internal/logger"
)

// Watcher triggers a rescan when the library directory changes. Events are
// debounced so a batch export from the editor causes one rescan, not one
// per file.
type Watcher struct {
	cfg      *config.Config
	log      *logger.Logger
	onChange func()
	debounce time.Duration
	done     chan struct{}
}

func NewWatcher(cfg *config.Config, log *logger.Logger, onChange func()) *Watcher {
	return &Watcher{
		cfg:      cfg,
		log:      log,
		onChange: onChange,
		debounce: 3 * time.Second,
		done:     make(chan struct{}),
	}
}

// Run watches until Stop is called.
func (w *Watcher) Run() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := w.addDirs(fw); err != nil {
		return err
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				// new directories need their own watch
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = fw.Add(ev.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			w.log.Info("library changed, triggering rescan")
			w.onChange()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watcher error: %v", err)
		case <-w.done:
			return nil
		}
	}
}

// Stop ends the watch loop.
func (w *Watcher) Stop() {
	close(w.done)
}

func (w *Watcher) addDirs(fw *fsnotify.Watcher) error {
	return filepath.WalkDir(w.cfg.LibraryPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		for _, avoid := range w.cfg.DirsToAvoid {
			if strings.EqualFold(d.Name(), avoid) {
				return filepath.SkipDir
			}
		}
		return fw.Add(path)
	})
}

// relevant filters events down to sidecar file changes.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op.Has(fsnotify.Chmod) {
		return false
	}
	for _, t := range w.cfg.SidecarTypes {
		if strings.HasSuffix(ev.Name, t) {
			return true
		}
	}
	// directory creation may bring sidecars with it
	return ev.Op.Has(fsnotify.Create) && filepath.Ext(ev.Name) == ""
}
