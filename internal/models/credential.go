package models

import "time"

type Credential struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

func (c Credential) Expiry() time.Time {
	return time.UnixMilli(c.ExpiresAt)
}
