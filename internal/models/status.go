package models

type TokenStatus string

const (
	TokenStatusOK         TokenStatus = "ok"
	TokenStatusError      TokenStatus = "error"
	TokenStatusExpired    TokenStatus = "expired"
	TokenStatusFetchError TokenStatus = "fetch_error"
)

const (
	EventUsageUpdate         = "usage-update"
	EventTokenStatus         = "token-status"
	EventSecondaryOnlyUpdate = "secondary-only-update"
)
