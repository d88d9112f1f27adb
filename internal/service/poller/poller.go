package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/zjregee/usagewidget/internal/models"
	"github.com/zjregee/usagewidget/internal/service/usage"
)

const (
	MinIntervalSeconds     = 10
	MaxIntervalSeconds     = 600
	DefaultIntervalSeconds = 60
)

var ErrIntervalOutOfRange = errors.New("polling interval out of range")

type CredentialReader interface {
	Read() (models.Credential, error)
}

// SecondaryConfigLoader returns nil when the secondary source is not set up.
type SecondaryConfigLoader interface {
	LoadGitHubConfig() (*models.GitHubConfig, error)
}

type Deps struct {
	Credentials     CredentialReader
	Primary         usage.IPrimaryFetcher
	Secondary       usage.ISecondaryFetcher
	SecondaryConfig SecondaryConfigLoader
	State           *State
	Emitter         Emitter
	Logger          zerolog.Logger
}

// Poller decides when to fetch. It fetches once on Run, then whenever the
// interval elapses, a refresh is requested, or repeats the wait when the
// interval changes.
type Poller struct {
	deps Deps

	intervalMu sync.RWMutex
	interval   int
	intervalCh chan struct{}
	refreshCh  chan struct{}

	now      func() time.Time
	newTimer func(d time.Duration) *time.Timer
	logger   zerolog.Logger
}

func New(deps Deps, intervalSeconds int) (*Poller, error) {
	if err := validateInterval(intervalSeconds); err != nil {
		return nil, err
	}
	if deps.Credentials == nil || deps.Primary == nil {
		return nil, fmt.Errorf("credentials reader and primary fetcher are required")
	}
	if deps.State == nil {
		deps.State = NewState()
	}

	return &Poller{
		deps:       deps,
		interval:   intervalSeconds,
		intervalCh: make(chan struct{}, 1),
		refreshCh:  make(chan struct{}, 1),
		now:        time.Now,
		newTimer:   time.NewTimer,
		logger:     deps.Logger.With().Str("component", "poller").Logger(),
	}, nil
}

// SetNow replaces the time source. Used in tests only.
func (p *Poller) SetNow(fn func() time.Time) {
	p.now = fn
}

// SetTimerFactory replaces how wait timers are created. Used in tests only.
func (p *Poller) SetTimerFactory(fn func(d time.Duration) *time.Timer) {
	p.newTimer = fn
}

func (p *Poller) State() *State {
	return p.deps.State
}

func (p *Poller) Interval() int {
	p.intervalMu.RLock()
	defer p.intervalMu.RUnlock()
	return p.interval
}

// SetInterval takes effect on the next wait. It never triggers a fetch.
func (p *Poller) SetInterval(seconds int) error {
	if err := validateInterval(seconds); err != nil {
		return err
	}

	p.intervalMu.Lock()
	p.interval = seconds
	p.intervalMu.Unlock()

	select {
	case p.intervalCh <- struct{}{}:
	default:
	}

	p.logger.Info().Int("seconds", seconds).Msg("polling interval changed")
	return nil
}

// RequestRefresh asks for a fetch as soon as the loop is free. Requests
// made before the loop consumes the signal collapse into one fetch.
func (p *Poller) RequestRefresh() {
	select {
	case p.refreshCh <- struct{}{}:
	default:
	}
}

// Run fetches immediately and then loops until ctx is cancelled. A cycle
// in flight is never interrupted by a trigger.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info().Int("interval_seconds", p.Interval()).Msg("poller started")
	p.RunOnce(ctx)

	for {
		timer := p.newTimer(time.Duration(p.Interval()) * time.Second)

		select {
		case <-ctx.Done():
			timer.Stop()
			p.logger.Info().Msg("poller stopped")
			return ctx.Err()
		case <-timer.C:
			p.RunOnce(ctx)
		case <-p.refreshCh:
			timer.Stop()
			p.logger.Debug().Msg("refresh requested")
			p.RunOnce(ctx)
		case <-p.intervalCh:
			timer.Stop()
		}
	}
}

func validateInterval(seconds int) error {
	if seconds < MinIntervalSeconds || seconds > MaxIntervalSeconds {
		return fmt.Errorf("%w: polling interval must be between %d and %d seconds, got %d",
			ErrIntervalOutOfRange, MinIntervalSeconds, MaxIntervalSeconds, seconds)
	}
	return nil
}
