package health

import (
	"testing"
	"time"

	"github.com/danivilar/atelier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scoreNow = time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := scoreNow.AddDate(0, 0, -n)
	return &t
}

func floatPtr(v float64) *float64 { return &v }

func TestCompute_PerfectClient(t *testing.T) {
	budget := 2000.0
	s := Compute(Snapshot{
		ClientID:             "c-1",
		ClientName:           "Acme",
		Now:                  scoreNow,
		LastContact:          daysAgo(1),
		TotalTasks:           10,
		CompletedTasks:       10,
		OverdueTasks:         0,
		DigestsLastFourWeeks: 4,
		MonthlyBudget:        &budget,
		TrackedMinThisMonth:  600, // 10h * 40 EUR = 400, well under budget
		OverdueFollowUps:     0,
	})

	assert.Equal(t, 100, s.Total)
	assert.Equal(t, domain.RiskHealthy, s.Risk)
	require.Len(t, s.Factors, 5)
}

func TestCompute_NeglectedClient(t *testing.T) {
	s := Compute(Snapshot{
		ClientID:         "c-2",
		Now:              scoreNow,
		LastContact:      nil, // never contacted
		TotalTasks:       4,
		CompletedTasks:   0,
		OverdueTasks:     4,
		OverdueFollowUps: 5,
	})

	assert.Equal(t, domain.RiskAtRisk, s.Risk)
	assert.Less(t, s.Total, 40)
}

func TestScoreCommunication_RecencyBands(t *testing.T) {
	tests := []struct {
		name        string
		lastContact *time.Time
		want        int
	}{
		{"never", nil, 0},
		{"two days", daysAgo(2), 25},
		{"one week", daysAgo(6), 20},
		{"two weeks", daysAgo(12), 15},
		{"one month", daysAgo(25), 8},
		{"stale", daysAgo(60), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := scoreCommunication(Snapshot{Now: scoreNow, LastContact: tt.lastContact})
			assert.Equal(t, tt.want, f.Points)
		})
	}
}

func TestScoreTasks_NeutralWhenEmpty(t *testing.T) {
	f := scoreTasks(Snapshot{TotalTasks: 0})
	assert.Equal(t, 15, f.Points)
}

func TestScoreTasks_OverduePenaltyCapped(t *testing.T) {
	// Full completion bonus path: 10/10 done, none overdue.
	f := scoreTasks(Snapshot{TotalTasks: 10, CompletedTasks: 10})
	assert.Equal(t, 25, f.Points)

	// Heavy overdue load: penalty caps at 10 and points floor at 0.
	f = scoreTasks(Snapshot{TotalTasks: 10, CompletedTasks: 2, OverdueTasks: 8})
	assert.Equal(t, 0, f.Points)
}

func TestScoreDigests_CappedAtFifteen(t *testing.T) {
	assert.Equal(t, 0, scoreDigests(Snapshot{DigestsLastFourWeeks: 0}).Points)
	assert.Equal(t, 8, scoreDigests(Snapshot{DigestsLastFourWeeks: 2}).Points)
	assert.Equal(t, 15, scoreDigests(Snapshot{DigestsLastFourWeeks: 4}).Points)
	assert.Equal(t, 15, scoreDigests(Snapshot{DigestsLastFourWeeks: 9}).Points)
}

func TestScoreProfitability_Bands(t *testing.T) {
	budget := 1000.0
	tests := []struct {
		name    string
		tracked int // minutes at 40 EUR/h
		want    int
	}{
		{"well under budget", 600, 20}, // 400 EUR, ratio 0.4
		{"approaching", 1200, 15},      // 800 EUR, ratio 0.8
		{"at budget", 1470, 10},        // 980 EUR, ratio 0.98
		{"slightly over", 1650, 5},     // 1100 EUR, ratio 1.1
		{"blown", 3000, 0},             // 2000 EUR, ratio 2.0
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := scoreProfitability(Snapshot{
				MonthlyBudget:       &budget,
				TrackedMinThisMonth: tt.tracked,
			})
			assert.Equal(t, tt.want, f.Points)
		})
	}
}

func TestScoreProfitability_NeutralWithoutBudget(t *testing.T) {
	assert.Equal(t, 10, scoreProfitability(Snapshot{}).Points)
	assert.Equal(t, 10, scoreProfitability(Snapshot{MonthlyBudget: floatPtr(0)}).Points)
}

func TestScoreFollowUps(t *testing.T) {
	assert.Equal(t, 15, scoreFollowUps(Snapshot{OverdueFollowUps: 0}).Points)
	assert.Equal(t, 8, scoreFollowUps(Snapshot{OverdueFollowUps: 2}).Points)
	assert.Equal(t, 0, scoreFollowUps(Snapshot{OverdueFollowUps: 3}).Points)
}

func TestRiskLevelThresholds(t *testing.T) {
	assert.Equal(t, domain.RiskHealthy, riskLevel(70))
	assert.Equal(t, domain.RiskWarning, riskLevel(69))
	assert.Equal(t, domain.RiskWarning, riskLevel(40))
	assert.Equal(t, domain.RiskAtRisk, riskLevel(39))
}
