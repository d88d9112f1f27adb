package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/zjregee/usagewidget/internal/config"
	"github.com/zjregee/usagewidget/internal/service/credentials"
	"github.com/zjregee/usagewidget/internal/service/poller"
	"github.com/zjregee/usagewidget/internal/service/storage"
	"github.com/zjregee/usagewidget/internal/service/usage"
	"github.com/zjregee/usagewidget/internal/service/watcher"
)

type App struct {
	ctx     context.Context
	ctxMu   sync.RWMutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	cfg     *config.Config
	store   *storage.DB
	poller  *poller.Poller
	watcher *watcher.Watcher
	emitter poller.Emitter
	logger  zerolog.Logger
}

func NewApp(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	a := &App{}
	if err := a.init(cfg, logger, poller.EmitterFunc(a.emitToFrontend)); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) init(cfg *config.Config, logger zerolog.Logger, emitter poller.Emitter) error {
	store, err := storage.Open(cfg.StoragePath())
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	client := usage.NewHTTPClient(cfg.HTTPTimeout())
	p, err := poller.New(poller.Deps{
		Credentials:     credentials.NewFileReader(cfg.CredentialsPath),
		Primary:         usage.NewClaudeFetcher(client, ""),
		Secondary:       usage.NewCopilotFetcher(client, ""),
		SecondaryConfig: store,
		State:           poller.NewState(),
		Emitter:         emitter,
		Logger:          logger,
	}, cfg.PollIntervalSeconds)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("failed to create poller: %w", err)
	}

	a.cfg = cfg
	a.store = store
	a.poller = p
	a.watcher = watcher.New(cfg.CredentialsPath, cfg.WatchDebounce(), p, logger)
	a.emitter = emitter
	a.logger = logger.With().Str("component", "app").Logger()
	return nil
}

func (a *App) Startup(ctx context.Context) {
	a.ctxMu.Lock()
	a.ctx = ctx
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.ctxMu.Unlock()

	a.wg.Add(2)
	go func() {
		defer a.wg.Done()
		_ = a.poller.Run(runCtx)
	}()
	go func() {
		defer a.wg.Done()
		// Failure is already logged; the timer keeps polling on its own.
		_ = a.watcher.Run(runCtx)
	}()
}

func (a *App) Shutdown(ctx context.Context) {
	a.ctxMu.RLock()
	cancel := a.cancel
	a.ctxMu.RUnlock()

	if cancel != nil {
		cancel()
	}
	a.wg.Wait()

	if err := a.store.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("failed to close storage")
	}
}

func (a *App) context() context.Context {
	a.ctxMu.RLock()
	defer a.ctxMu.RUnlock()
	return a.ctx
}

func (a *App) emitToFrontend(name string, data any) {
	ctx := a.context()
	if ctx == nil {
		return
	}
	runtime.EventsEmit(ctx, name, data)
}
