package poller

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/zjregee/usagewidget/internal/models"
	"github.com/zjregee/usagewidget/internal/service/usage"
)

var errBoom = errors.New("boom")

type fakeCredentials struct {
	mu   sync.Mutex
	cred models.Credential
	err  error
}

func (f *fakeCredentials) Read() (models.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cred, f.err
}

type fakePrimary struct {
	mu    sync.Mutex
	calls int
	snap  models.UsageSnapshot
	err   error
	gate  chan struct{}
}

func (f *fakePrimary) FetchPrimary(ctx context.Context, token string) (models.UsageSnapshot, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	snap, err := f.snap, f.err
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return snap, err
}

func (f *fakePrimary) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakePrimary) set(snap models.UsageSnapshot, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap, f.err = snap, err
}

type fakeSecondary struct {
	mu    sync.Mutex
	calls int
	snap  models.SecondarySnapshot
	err   error
}

func (f *fakeSecondary) FetchSecondary(ctx context.Context, cfg models.GitHubConfig) (models.SecondarySnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.snap, f.err
}

type fakeConfigLoader struct {
	cfg *models.GitHubConfig
	err error
}

func (f *fakeConfigLoader) LoadGitHubConfig() (*models.GitHubConfig, error) {
	return f.cfg, f.err
}

type emitted struct {
	name string
	data any
}

type captureEmitter struct {
	mu     sync.Mutex
	events []emitted
}

func (c *captureEmitter) Emit(name string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, emitted{name: name, data: data})
}

func (c *captureEmitter) Events() []emitted {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]emitted(nil), c.events...)
}

func (c *captureEmitter) Statuses() []models.TokenStatus {
	var out []models.TokenStatus
	for _, e := range c.Events() {
		if e.name == models.EventTokenStatus {
			out = append(out, e.data.(models.TokenStatus))
		}
	}
	return out
}

func (c *captureEmitter) Named(name string) []emitted {
	var out []emitted
	for _, e := range c.Events() {
		if e.name == name {
			out = append(out, e)
		}
	}
	return out
}

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func validCredential() models.Credential {
	return models.Credential{AccessToken: "tok", ExpiresAt: fixedNow.Add(time.Hour).UnixMilli()}
}

func primaryFixture() models.UsageSnapshot {
	return models.UsageSnapshot{
		FiveHour: models.UsageMeter{Utilization: 12.5},
		SevenDay: models.UsageMeter{Utilization: 44.0},
	}
}

func secondaryFixture() models.SecondarySnapshot {
	return models.SecondarySnapshot{
		TotalRequests: 120,
		MonthlyLimit:  300,
		Utilization:   usage.Utilization(120, 300),
		ResetsAt:      "2026-11-01T00:00:00Z",
	}
}

type harness struct {
	poller    *Poller
	creds     *fakeCredentials
	primary   *fakePrimary
	secondary *fakeSecondary
	config    *fakeConfigLoader
	emitter   *captureEmitter
}

func newHarness() *harness {
	h := &harness{
		creds:     &fakeCredentials{cred: validCredential()},
		primary:   &fakePrimary{snap: primaryFixture()},
		secondary: &fakeSecondary{snap: secondaryFixture()},
		config:    &fakeConfigLoader{},
		emitter:   &captureEmitter{},
	}
	p, err := New(Deps{
		Credentials:     h.creds,
		Primary:         h.primary,
		Secondary:       h.secondary,
		SecondaryConfig: h.config,
		Emitter:         h.emitter,
		Logger:          zerolog.New(io.Discard),
	}, DefaultIntervalSeconds)
	if err != nil {
		panic(err)
	}
	p.SetNow(func() time.Time { return fixedNow })
	h.poller = p
	return h
}

// start runs the loop in the background and stops it when the test ends.
func (h *harness) start(t interface{ Cleanup(func()) }) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = h.poller.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}
