package app

import (
	"github.com/zjregee/usagewidget/internal/models"
)

// GetUsage returns the last snapshot fetched successfully.
func (a *App) GetUsage() (*models.UsageSnapshot, error) {
	snapshot, err := a.poller.State().Latest()
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// GetLastUpdated returns epoch milliseconds of the last successful fetch,
// or 0 if there has been none.
func (a *App) GetLastUpdated() int64 {
	at := a.poller.State().UpdatedAt()
	if at.IsZero() {
		return 0
	}
	return at.UnixMilli()
}

func (a *App) ForceRefresh() error {
	a.poller.RequestRefresh()
	return nil
}

func (a *App) SetPollingInterval(seconds int) error {
	return a.poller.SetInterval(seconds)
}

func (a *App) GetPollingInterval() int {
	return a.poller.Interval()
}
