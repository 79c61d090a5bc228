package catalog

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the catalog when files under the root change. It blocks
// until ctx is cancelled; callers run it in a goroutine. Reload failures
// are logged and the previous catalog stays in effect.
func (s *FileStore) Watch(ctx context.Context, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs := []string{
		s.rootPath,
		filepath.Join(s.rootPath, "templates"),
		filepath.Join(s.rootPath, "clauses"),
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("catalog watch skipped", zap.String("dir", dir), zap.Error(err))
		}
	}

	// Editors fire bursts of events per save; collapse them into one
	// reload per quiet interval.
	var reloadTimer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			reloadTimer = time.AfterFunc(250*time.Millisecond, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			if err := s.Load(); err != nil {
				logger.Error("catalog reload failed", zap.Error(err))
				continue
			}
			logger.Info("catalog reloaded",
				zap.Int("templates", len(s.ListTemplates())),
				zap.Int("clauses", len(s.ListClauseTemplates())))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}
