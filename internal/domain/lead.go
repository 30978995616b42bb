package domain

import "time"

type Lead struct {
	ID                string
	Name              string
	Company           string
	Email             string
	Status            LeadStatus
	Source            LeadSource
	EstimatedValue    *float64
	NextFollowUp      *time.Time
	Notes             string
	ConvertedClientID string // set when the lead is won and converted
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type LeadActivityType string

const (
	ActivityNote         LeadActivityType = "note"
	ActivityEmailSent    LeadActivityType = "email_sent"
	ActivityCall         LeadActivityType = "call"
	ActivityMeeting      LeadActivityType = "meeting"
	ActivityProposalSent LeadActivityType = "proposal_sent"
	ActivityStatusChange LeadActivityType = "status_change"
	ActivityFollowUpSet  LeadActivityType = "followup_set"
)

type LeadActivity struct {
	ID        string
	LeadID    string
	Type      LeadActivityType
	Body      string
	CreatedAt time.Time
}

// Closed reports whether the lead has left the active pipeline.
func (l *Lead) Closed() bool {
	return l.Status == LeadWon || l.Status == LeadLost
}

// StageIndex returns the position of the lead's status in the canonical
// pipeline order, or -1 for unrecognized statuses.
func (l *Lead) StageIndex() int {
	for i, s := range PipelineStages {
		if s == l.Status {
			return i
		}
	}
	return -1
}
