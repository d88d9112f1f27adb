package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zjregee/usagewidget/internal/models"
)

const (
	DefaultClaudeUsageURL = "https://api.anthropic.com/api/oauth/usage"
	claudeBetaFlag        = "oauth-2025-04-20"
)

var _ IPrimaryFetcher = (*ClaudeFetcher)(nil)

type ClaudeFetcher struct {
	client *http.Client
	url    string
}

func NewClaudeFetcher(client *http.Client, url string) *ClaudeFetcher {
	if url == "" {
		url = DefaultClaudeUsageURL
	}
	return &ClaudeFetcher{client: client, url: url}
}

// claudeResponse mirrors UsageSnapshot but keeps the mandatory windows as
// pointers so their absence can be told apart from a zero reading.
type claudeResponse struct {
	FiveHour          *models.UsageMeter `json:"five_hour"`
	SevenDay          *models.UsageMeter `json:"seven_day"`
	SevenDayOAuthApps *models.UsageMeter `json:"seven_day_oauth_apps"`
	SevenDayOpus      *models.UsageMeter `json:"seven_day_opus"`
	SevenDaySonnet    *models.UsageMeter `json:"seven_day_sonnet"`
	SevenDayCowork    *models.UsageMeter `json:"seven_day_cowork"`
	IguanaNecktie     json.RawMessage    `json:"iguana_necktie"`
	ExtraUsage        *models.ExtraUsage `json:"extra_usage"`
}

func (f *ClaudeFetcher) FetchPrimary(ctx context.Context, token string) (models.UsageSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return models.UsageSnapshot{}, fmt.Errorf("%w: failed to build request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("anthropic-beta", claudeBetaFlag)

	body, err := do(f.client, req)
	if err != nil {
		return models.UsageSnapshot{}, err
	}

	return parseClaudeUsage(body)
}

func parseClaudeUsage(body []byte) (models.UsageSnapshot, error) {
	var resp claudeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.UsageSnapshot{}, fmt.Errorf("%w: failed to parse response: %v. Body: %s", ErrResponseInvalid, err, truncate(string(body)))
	}
	if resp.FiveHour == nil || resp.SevenDay == nil {
		return models.UsageSnapshot{}, fmt.Errorf("%w: five_hour and seven_day are required. Body: %s", ErrResponseInvalid, truncate(string(body)))
	}

	snapshot := models.UsageSnapshot{
		FiveHour:          *resp.FiveHour,
		SevenDay:          *resp.SevenDay,
		SevenDayOAuthApps: resp.SevenDayOAuthApps,
		SevenDayOpus:      resp.SevenDayOpus,
		SevenDaySonnet:    resp.SevenDaySonnet,
		SevenDayCowork:    resp.SevenDayCowork,
		ExtraUsage:        resp.ExtraUsage,
	}
	if len(resp.IguanaNecktie) > 0 && string(resp.IguanaNecktie) != "null" {
		snapshot.IguanaNecktie = resp.IguanaNecktie
	}

	return snapshot, nil
}
