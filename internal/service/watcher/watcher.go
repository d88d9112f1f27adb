package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const DefaultDebounce = time.Second

// Refresher is the only thing the watcher can do to the poller.
type Refresher interface {
	RequestRefresh()
}

// Watcher observes the directory holding the credentials file and asks for
// one refresh per burst of modify/create events.
type Watcher struct {
	dir       string
	delay     time.Duration
	refresher Refresher
	logger    zerolog.Logger
}

func New(credentialsPath string, delay time.Duration, refresher Refresher, logger zerolog.Logger) *Watcher {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Watcher{
		dir:       filepath.Dir(credentialsPath),
		delay:     delay,
		refresher: refresher,
		logger:    logger.With().Str("component", "watcher").Str("dir", filepath.Dir(credentialsPath)).Logger(),
	}
}

// Run blocks until ctx is cancelled. If the watch cannot be established the
// error is logged and returned immediately; polling continues without it.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Error().Err(err).Msg("failed to create file watcher")
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		w.logger.Error().Err(err).Msg("failed to watch credentials dir")
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.logger.Info().Msg("watching credentials dir")

	debounced := debounce.New(w.delay)
	settled := func() {
		if ctx.Err() != nil {
			return
		}
		w.logger.Info().Msg("credentials changed, triggering refresh")
		w.refresher.RequestRefresh()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				debounced(settled)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("file watcher error")
		}
	}
}
