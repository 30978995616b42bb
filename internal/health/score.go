// Package health computes client health scores from already-loaded data.
// It is pure: callers assemble a Snapshot from storage and get back a
// 0-100 score broken down by factor.
package health

import (
	"time"

	"github.com/danivilar/atelier/internal/domain"
)

// DefaultHourlyCost is the blended EUR/hour rate used to estimate the
// cost of tracked time when no explicit rate is configured.
const DefaultHourlyCost = 40.0

// Snapshot is everything the scorer needs to know about one client.
type Snapshot struct {
	ClientID   string
	ClientName string
	Now        time.Time

	LastContact *time.Time // most recent communication, nil if never

	TotalTasks     int
	CompletedTasks int
	OverdueTasks   int

	DigestsLastFourWeeks int

	MonthlyBudget       *float64
	TrackedMinThisMonth int
	HourlyCost          float64 // 0 means DefaultHourlyCost

	OverdueFollowUps int
}

// Factor is one scored component with its ceiling.
type Factor struct {
	Name   string
	Points int
	Max    int
}

// Score is the computed health result for one client.
type Score struct {
	ClientID   string
	ClientName string
	Total      int // 0-100
	Factors    []Factor
	Risk       domain.RiskLevel
}

// Compute scores a client from five weighted factors: communication
// recency (25), task completion (25), digest coverage (15),
// profitability (20) and follow-up compliance (15).
func Compute(in Snapshot) Score {
	factors := []func(Snapshot) Factor{
		scoreCommunication,
		scoreTasks,
		scoreDigests,
		scoreProfitability,
		scoreFollowUps,
	}

	result := Score{ClientID: in.ClientID, ClientName: in.ClientName}
	for _, f := range factors {
		factor := f(in)
		result.Factors = append(result.Factors, factor)
		result.Total += factor.Points
	}

	if result.Total < 0 {
		result.Total = 0
	}
	if result.Total > 100 {
		result.Total = 100
	}
	result.Risk = riskLevel(result.Total)
	return result
}

func riskLevel(total int) domain.RiskLevel {
	switch {
	case total >= 70:
		return domain.RiskHealthy
	case total >= 40:
		return domain.RiskWarning
	default:
		return domain.RiskAtRisk
	}
}

func scoreCommunication(in Snapshot) Factor {
	f := Factor{Name: "communication", Max: 25}
	if in.LastContact == nil {
		return f
	}
	days := int(in.Now.Sub(*in.LastContact).Hours() / 24)
	switch {
	case days <= 3:
		f.Points = 25
	case days <= 7:
		f.Points = 20
	case days <= 14:
		f.Points = 15
	case days <= 30:
		f.Points = 8
	}
	return f
}

func scoreTasks(in Snapshot) Factor {
	f := Factor{Name: "tasks", Max: 25}
	if in.TotalTasks == 0 {
		f.Points = 15 // neutral, no tasks yet
		return f
	}

	completionRate := float64(in.CompletedTasks) / float64(in.TotalTasks)
	pts := int(completionRate * 20)
	if in.OverdueTasks == 0 {
		pts += 5
	} else {
		penalty := in.OverdueTasks * 3
		if penalty > 10 {
			penalty = 10
		}
		pts -= penalty
		if pts < 0 {
			pts = 0
		}
	}
	f.Points = pts
	return f
}

func scoreDigests(in Snapshot) Factor {
	f := Factor{Name: "digests", Max: 15}
	count := in.DigestsLastFourWeeks
	if count > 4 {
		count = 4
	}
	pts := count * 4
	if pts > 15 {
		pts = 15
	}
	f.Points = pts
	return f
}

func scoreProfitability(in Snapshot) Factor {
	f := Factor{Name: "profitability", Max: 20}
	if in.MonthlyBudget == nil || *in.MonthlyBudget <= 0 {
		f.Points = 10 // neutral, no budget set
		return f
	}

	rate := in.HourlyCost
	if rate <= 0 {
		rate = DefaultHourlyCost
	}
	estimatedCost := float64(in.TrackedMinThisMonth) / 60 * rate
	ratio := estimatedCost / *in.MonthlyBudget
	switch {
	case ratio <= 0.7:
		f.Points = 20
	case ratio <= 0.9:
		f.Points = 15
	case ratio <= 1.0:
		f.Points = 10
	case ratio <= 1.2:
		f.Points = 5
	}
	return f
}

func scoreFollowUps(in Snapshot) Factor {
	f := Factor{Name: "followups", Max: 15}
	switch {
	case in.OverdueFollowUps == 0:
		f.Points = 15
	case in.OverdueFollowUps <= 2:
		f.Points = 8
	}
	return f
}
