package poller

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/zjregee/usagewidget/internal/models"
	"github.com/zjregee/usagewidget/internal/service/credentials"
	"github.com/zjregee/usagewidget/internal/service/usage"
	"github.com/zjregee/usagewidget/internal/utils"
)

// RunOnce performs a single fetch cycle synchronously. Every failure ends
// up as a token-status event; nothing is returned.
func (p *Poller) RunOnce(ctx context.Context) {
	logger := p.logger.With().Str("cycle", utils.ShortID()).Logger()

	cred, err := p.deps.Credentials.Read()
	if err != nil {
		logger.Error().Err(err).Msg("token error")
		p.emit(models.EventTokenStatus, models.TokenStatusError)
		return
	}

	if credentials.IsExpired(cred, p.now(), credentials.DefaultExpiryMargin) {
		logger.Warn().Time("expires_at", cred.Expiry()).Msg("access token expired, run the Claude CLI to refresh it")
		p.emit(models.EventTokenStatus, models.TokenStatusExpired)
		return
	}

	var (
		primary    models.UsageSnapshot
		primaryErr error
		secondary  *models.SecondarySnapshot
		g          errgroup.Group
	)
	g.Go(func() error {
		primary, primaryErr = p.deps.Primary.FetchPrimary(ctx, cred.AccessToken)
		return nil
	})
	g.Go(func() error {
		secondary = p.fetchSecondary(ctx, logger)
		return nil
	})
	_ = g.Wait()

	if primaryErr != nil {
		logger.Error().Err(primaryErr).Msg("primary usage fetch failed")
		p.emit(models.EventTokenStatus, models.TokenStatusFetchError)
		if secondary != nil {
			p.emit(models.EventSecondaryOnlyUpdate, *secondary)
		}
		return
	}

	p.deps.State.Set(primary, p.now())
	p.emit(models.EventUsageUpdate, usage.Combine(primary, secondary))
	p.emit(models.EventTokenStatus, models.TokenStatusOK)

	logger.Debug().
		Float64("five_hour", primary.FiveHour.Utilization).
		Float64("seven_day", primary.SevenDay.Utilization).
		Bool("secondary", secondary != nil).
		Msg("usage updated")
}

// fetchSecondary never fails the cycle; any problem yields nil.
func (p *Poller) fetchSecondary(ctx context.Context, logger zerolog.Logger) *models.SecondarySnapshot {
	if p.deps.Secondary == nil || p.deps.SecondaryConfig == nil {
		return nil
	}

	cfg, err := p.deps.SecondaryConfig.LoadGitHubConfig()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load secondary source config")
		return nil
	}
	if cfg == nil {
		return nil
	}

	snapshot, err := p.deps.Secondary.FetchSecondary(ctx, *cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("secondary usage fetch failed")
		return nil
	}

	return &snapshot
}

func (p *Poller) emit(name string, data any) {
	if p.deps.Emitter != nil {
		p.deps.Emitter.Emit(name, data)
	}
}
