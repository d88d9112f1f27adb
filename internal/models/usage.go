package models

import "encoding/json"

type UsageMeter struct {
	Utilization float64 `json:"utilization"`
	ResetsAt    *string `json:"resets_at"`
}

type ExtraUsage struct {
	IsEnabled    bool    `json:"is_enabled"`
	MonthlyLimit float64 `json:"monthly_limit"`
	UsedCredits  float64 `json:"used_credits"`
	Utilization  float64 `json:"utilization"`
}

// UsageSnapshot is the primary source's view of rate-limit windows.
// FiveHour and SevenDay are always present; every other meter is optional
// and decodes as nil when the upstream omits it.
type UsageSnapshot struct {
	FiveHour          UsageMeter      `json:"five_hour"`
	SevenDay          UsageMeter      `json:"seven_day"`
	SevenDayOAuthApps *UsageMeter     `json:"seven_day_oauth_apps,omitempty"`
	SevenDayOpus      *UsageMeter     `json:"seven_day_opus,omitempty"`
	SevenDaySonnet    *UsageMeter     `json:"seven_day_sonnet,omitempty"`
	SevenDayCowork    *UsageMeter     `json:"seven_day_cowork,omitempty"`
	IguanaNecktie     json.RawMessage `json:"iguana_necktie,omitempty"`
	ExtraUsage        *ExtraUsage     `json:"extra_usage,omitempty"`
}

type SecondaryUsageItem struct {
	Model         string  `json:"model"`
	GrossQuantity float64 `json:"gross_quantity"`
}

type SecondarySnapshot struct {
	TotalRequests float64              `json:"total_requests"`
	MonthlyLimit  float64              `json:"monthly_limit"`
	Utilization   float64              `json:"utilization"`
	ResetsAt      string               `json:"resets_at"`
	Items         []SecondaryUsageItem `json:"items"`
}

// CombinedSnapshot is the payload of the usage-update event. It is built
// once per cycle and never stored.
type CombinedSnapshot struct {
	Primary   UsageSnapshot      `json:"claude"`
	Secondary *SecondarySnapshot `json:"copilot"`
}
