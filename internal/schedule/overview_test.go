package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatistics(t *testing.T) {
	stats := ComputeStatistics(10, 4)
	assert.Equal(t, 10, stats.TotalPresentations)
	assert.Equal(t, 4, stats.ScheduledPresentations)
	assert.Equal(t, 6, stats.UnscheduledPresentations)
	assert.Equal(t, 40, stats.SchedulingProgress)
}

func TestComputeStatisticsRounding(t *testing.T) {
	// 2/3 → 66.67 → 67, округление до ближайшего целого.
	stats := ComputeStatistics(3, 2)
	assert.Equal(t, 67, stats.SchedulingProgress)

	stats = ComputeStatistics(3, 1)
	assert.Equal(t, 33, stats.SchedulingProgress)
}

func TestComputeStatisticsEmptyConference(t *testing.T) {
	stats := ComputeStatistics(0, 0)
	assert.Equal(t, 0, stats.SchedulingProgress, "Ноль докладов — нулевой прогресс, а не ошибка деления")
	assert.Equal(t, 0, stats.UnscheduledPresentations)
}

func TestComputeStatisticsConsistency(t *testing.T) {
	for total := 0; total <= 20; total++ {
		for scheduled := 0; scheduled <= total; scheduled++ {
			stats := ComputeStatistics(total, scheduled)
			assert.Equal(t, stats.TotalPresentations,
				stats.ScheduledPresentations+stats.UnscheduledPresentations,
				"scheduled + unscheduled всегда равно total")
		}
	}
}

func TestComputeStatisticsComplete(t *testing.T) {
	stats := ComputeStatistics(7, 7)
	assert.Equal(t, 100, stats.SchedulingProgress)
}
