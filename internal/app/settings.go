package app

import (
	"github.com/zjregee/usagewidget/internal/models"
)

func (a *App) GetGitHubConfig() (*models.GitHubConfig, error) {
	return a.store.LoadGitHubConfig()
}

// SaveGitHubConfig stores the secondary source settings and refreshes so
// the new source shows up without waiting for the timer.
func (a *App) SaveGitHubConfig(username string, token string, monthlyLimit float64) error {
	err := a.store.SaveGitHubConfig(&models.GitHubConfig{
		Username:     username,
		Token:        token,
		MonthlyLimit: monthlyLimit,
	})
	if err != nil {
		return err
	}

	a.logger.Info().Str("username", username).Float64("monthly_limit", monthlyLimit).Msg("github config saved")
	a.poller.RequestRefresh()
	return nil
}

func (a *App) ClearGitHubConfig() error {
	if err := a.store.DeleteGitHubConfig(); err != nil {
		return err
	}

	a.poller.RequestRefresh()
	return nil
}
