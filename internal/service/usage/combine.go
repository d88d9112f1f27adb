package usage

import "github.com/zjregee/usagewidget/internal/models"

// Combine pairs a primary snapshot with whatever secondary result the cycle
// produced. Neither input is modified.
func Combine(primary models.UsageSnapshot, secondary *models.SecondarySnapshot) models.CombinedSnapshot {
	return models.CombinedSnapshot{
		Primary:   primary,
		Secondary: secondary,
	}
}

// Utilization is totalRequests as a percentage of monthlyLimit. A
// non-positive limit is rejected when the limit is configured, so it is
// not guarded here.
func Utilization(totalRequests, monthlyLimit float64) float64 {
	return totalRequests / monthlyLimit * 100
}
