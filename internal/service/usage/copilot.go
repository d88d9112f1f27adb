package usage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/zjregee/usagewidget/internal/models"
)

const (
	DefaultGitHubAPIURL = "https://api.github.com"
	githubAPIVersion    = "2022-11-28"
	githubUserAgent     = "usagewidget"
)

var _ ISecondaryFetcher = (*CopilotFetcher)(nil)

type CopilotFetcher struct {
	client  *http.Client
	baseURL string
	now     func() time.Time
}

func NewCopilotFetcher(client *http.Client, baseURL string) *CopilotFetcher {
	if baseURL == "" {
		baseURL = DefaultGitHubAPIURL
	}
	return &CopilotFetcher{
		client:  client,
		baseURL: baseURL,
		now:     time.Now,
	}
}

// SetNow replaces the time source. Used in tests only.
func (f *CopilotFetcher) SetNow(fn func() time.Time) {
	f.now = fn
}

func (f *CopilotFetcher) FetchSecondary(ctx context.Context, cfg models.GitHubConfig) (models.SecondarySnapshot, error) {
	endpoint := fmt.Sprintf("%s/users/%s/settings/billing/premium_request/usage", f.baseURL, url.PathEscape(cfg.Username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.SecondarySnapshot{}, fmt.Errorf("%w: failed to build request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "token "+cfg.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", githubAPIVersion)
	req.Header.Set("User-Agent", githubUserAgent)

	body, err := do(f.client, req)
	if err != nil {
		return models.SecondarySnapshot{}, err
	}

	return parseCopilotUsage(body, cfg.MonthlyLimit, f.now())
}

func parseCopilotUsage(body []byte, monthlyLimit float64, now time.Time) (models.SecondarySnapshot, error) {
	if !gjson.ValidBytes(body) {
		return models.SecondarySnapshot{}, fmt.Errorf("%w: failed to parse response. Body: %s", ErrResponseInvalid, truncate(string(body)))
	}

	usageItems := gjson.GetBytes(body, "usageItems")
	if !usageItems.IsArray() {
		return models.SecondarySnapshot{}, fmt.Errorf("%w: missing usageItems array", ErrResponseInvalid)
	}

	// Every priced line counts toward the total even without a model name;
	// only named lines are listed.
	var quantities []float64
	items := []models.SecondaryUsageItem{}
	usageItems.ForEach(func(_, item gjson.Result) bool {
		quantity := item.Get("grossQuantity")
		if quantity.Type != gjson.Number {
			return true
		}
		quantities = append(quantities, quantity.Float())

		model := item.Get("model")
		if model.Type == gjson.String {
			items = append(items, models.SecondaryUsageItem{
				Model:         model.String(),
				GrossQuantity: quantity.Float(),
			})
		}
		return true
	})

	totalRequests := lo.Sum(quantities)

	return models.SecondarySnapshot{
		TotalRequests: totalRequests,
		MonthlyLimit:  monthlyLimit,
		Utilization:   Utilization(totalRequests, monthlyLimit),
		ResetsAt:      NextMonthReset(now),
		Items:         items,
	}, nil
}

// NextMonthReset returns midnight UTC on the first day of the month after
// now, formatted as RFC 3339.
func NextMonthReset(now time.Time) string {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
}
