package poller

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjregee/usagewidget/internal/models"
)

func TestState_EmptyUntilSet(t *testing.T) {
	s := NewState()
	_, err := s.Latest()
	assert.ErrorIs(t, err, ErrNotYetAvailable)
	assert.True(t, s.UpdatedAt().IsZero())
}

func TestState_ConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	s := NewState()
	s.Set(models.UsageSnapshot{FiveHour: models.UsageMeter{Utilization: 0}, SevenDay: models.UsageMeter{Utilization: 0}}, time.Now())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 500; i++ {
			v := float64(i)
			s.Set(models.UsageSnapshot{FiveHour: models.UsageMeter{Utilization: v}, SevenDay: models.UsageMeter{Utilization: v}}, time.Now())
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				snap, err := s.Latest()
				assert.NoError(t, err)
				assert.Equal(t, snap.FiveHour.Utilization, snap.SevenDay.Utilization)
			}
		}()
	}
	wg.Wait()

	latest, err := s.Latest()
	require.NoError(t, err)
	assert.Equal(t, 500.0, latest.FiveHour.Utilization)
}
