package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const DefaultMonthlyLimit = 300.0

var ErrConfigInvalid = errors.New("invalid configuration")

var validate = validator.New()

// GitHubConfig identifies the optional secondary usage source.
type GitHubConfig struct {
	Username     string  `json:"username" validate:"required"`
	Token        string  `json:"token" validate:"required"`
	MonthlyLimit float64 `json:"monthly_limit" validate:"gt=0"`
}

func (c *GitHubConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	return nil
}
