package storage

import (
	"encoding/json"
	"fmt"

	"github.com/zjregee/usagewidget/internal/models"
)

const githubConfigKey = "settings:github"

// SaveGitHubConfig validates and persists the secondary source settings.
func (d *DB) SaveGitHubConfig(cfg *models.GitHubConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: github config is required", models.ErrConfigInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal github config: %w", err)
	}

	return d.Put([]byte(githubConfigKey), data)
}

// LoadGitHubConfig returns nil without error when no settings were saved.
func (d *DB) LoadGitHubConfig() (*models.GitHubConfig, error) {
	value, err := d.Get([]byte(githubConfigKey))
	if err != nil {
		return nil, err
	}
	if len(value) == 0 {
		return nil, nil
	}

	cfg := &models.GitHubConfig{MonthlyLimit: models.DefaultMonthlyLimit}
	if err := json.Unmarshal(value, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal github config: %w", err)
	}

	return cfg, nil
}

func (d *DB) DeleteGitHubConfig() error {
	return d.Delete([]byte(githubConfigKey))
}
