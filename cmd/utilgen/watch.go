package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 200 * time.Millisecond

// watcher reruns generation when sources or the config change.
type watcher struct {
	fs        *fsnotify.Watcher
	dirs      []string
	generated string
	logger    *slog.Logger
}

func newWatcher(s *session) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &watcher{fs: fw, dirs: watchDirs(s), generated: s.cfg.Output.Filename, logger: s.logger}

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	return w, nil
}

// watchDirs lists the directories of the loaded root packages and of the
// config file.
func watchDirs(s *session) []string {
	var dirs []string

	if s.cfg.Dir != "" {
		dirs = append(dirs, s.cfg.Dir)
	}

	if s.graph != nil {
		for _, p := range s.graph.RootPackages() {
			if p.Dir != "" {
				dirs = append(dirs, p.Dir)
			}
		}
	}

	slices.Sort(dirs)

	return slices.Compact(dirs)
}

func (w *watcher) Close() error {
	return w.fs.Close()
}

// loop calls rerun once a burst of relevant events has settled.
func (w *watcher) loop(ctx context.Context, rerun func()) error {
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}

			if w.relevant(ev) {
				w.logger.Debug("change detected", "file", ev.Name, "op", ev.Op.String())
				fire = time.After(debounce)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}

			w.logger.Warn("watch error", "error", err)
		case <-fire:
			fire = nil

			rerun()
		}
	}
}

// relevant reports whether ev touches a Go source or YAML file other than
// generated output.
func (w *watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}

	base := filepath.Base(ev.Name)
	if base == w.generated || strings.HasSuffix(base, ".unformatted.go") {
		return false
	}

	switch filepath.Ext(base) {
	case ".go", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
