package app

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjregee/usagewidget/internal/config"
	"github.com/zjregee/usagewidget/internal/models"
	"github.com/zjregee/usagewidget/internal/service/poller"
)

type captureEmitter struct {
	mu       sync.Mutex
	statuses []models.TokenStatus
}

func (c *captureEmitter) Emit(name string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name == models.EventTokenStatus {
		c.statuses = append(c.statuses, data.(models.TokenStatus))
	}
}

func (c *captureEmitter) Statuses() []models.TokenStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.TokenStatus(nil), c.statuses...)
}

func newTestApp(t *testing.T) (*App, *captureEmitter) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.CredentialsPath = filepath.Join(dir, "claude", ".credentials.json")

	emitter := &captureEmitter{}
	a := &App{}
	require.NoError(t, a.init(cfg, zerolog.New(io.Discard), emitter))
	return a, emitter
}

func TestApp_GetUsageBeforeFirstFetch(t *testing.T) {
	a, _ := newTestApp(t)
	defer a.store.Close()

	snap, err := a.GetUsage()
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, poller.ErrNotYetAvailable)
	assert.Equal(t, int64(0), a.GetLastUpdated())
}

func TestApp_SetPollingInterval(t *testing.T) {
	a, _ := newTestApp(t)
	defer a.store.Close()

	require.NoError(t, a.SetPollingInterval(300))
	assert.Equal(t, 300, a.GetPollingInterval())

	assert.ErrorIs(t, a.SetPollingInterval(5), poller.ErrIntervalOutOfRange)
	assert.Equal(t, 300, a.GetPollingInterval())
}

func TestApp_GitHubConfig(t *testing.T) {
	a, _ := newTestApp(t)
	defer a.store.Close()

	cfg, err := a.GetGitHubConfig()
	require.NoError(t, err)
	assert.Nil(t, cfg)

	assert.ErrorIs(t, a.SaveGitHubConfig("octocat", "ghp", 0), models.ErrConfigInvalid)

	require.NoError(t, a.SaveGitHubConfig("octocat", "ghp", 300))
	cfg, err = a.GetGitHubConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "octocat", cfg.Username)

	require.NoError(t, a.ClearGitHubConfig())
	cfg, err = a.GetGitHubConfig()
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestApp_StartupFetchesAndShutdownStops(t *testing.T) {
	a, emitter := newTestApp(t)

	a.Startup(context.Background())

	// No credentials file exists, so the first cycle reports a token error.
	require.Eventually(t, func() bool {
		statuses := emitter.Statuses()
		return len(statuses) == 1 && statuses[0] == models.TokenStatusError
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, a.ForceRefresh())
	require.Eventually(t, func() bool { return len(emitter.Statuses()) == 2 }, time.Second, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		a.Shutdown(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return")
	}
}

func TestApp_WindowCallsBeforeStartup(t *testing.T) {
	a, _ := newTestApp(t)
	defer a.store.Close()

	assert.Error(t, a.SetAlwaysOnTop(true))
	assert.NotPanics(t, a.Quit)
}
